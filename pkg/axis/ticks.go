package axis

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/ratioplot/pkg/layout"
)

// Ticks picks roughly n evenly spaced round tick values within r.
// Steps are 1, 2, 2.5 or 5 times a power of ten.
func Ticks(r layout.Range, n int) []chart.Tick {
	if n < 2 || !finite(r.Min) || !finite(r.Max) || r.Span() <= 0 {
		return nil
	}
	step := niceStep(r.Span(), n)
	first := math.Ceil(r.Min/step - 1e-9)
	last := math.Floor(r.Max/step + 1e-9)

	var ticks []chart.Tick
	for i := first; i <= last; i++ {
		v := i * step
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v, step)})
	}
	return ticks
}

func niceStep(span float64, n int) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	best, bestScore := mag, math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Max(2, math.Ceil(span/step))
		if score := math.Abs(count - float64(n)); score < bestScore {
			best, bestScore = step, score
		}
	}
	return best
}

// formatTick prints v with just enough decimals to tell neighbouring ticks
// apart.
func formatTick(v, step float64) string {
	if v == 0 {
		return "0"
	}
	decimals := 0
	for ; decimals < 10; decimals++ {
		f := step * math.Pow(10, float64(decimals))
		if math.Abs(f-math.Round(f)) <= 1e-6*math.Max(1, f) {
			break
		}
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// AutoRange returns a range covering the finite values, widened by pad times
// its span on both sides. A constant input is widened by one unit; an empty
// input yields [0, 1].
func AutoRange(values []float64, pad float64) layout.Range {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if finite(v) {
			data = append(data, v)
		}
	}
	lo, err := stats.Min(data)
	if err != nil {
		return layout.Range{Min: 0, Max: 1}
	}
	hi, _ := stats.Max(data)
	if hi == lo {
		return layout.Range{Min: lo - 1, Max: hi + 1}
	}
	d := (hi - lo) * pad
	return layout.Range{Min: lo - d, Max: hi + d}
}
