package compare

import (
	"math"

	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/hist"
	"github.com/matzehuels/ratioplot/pkg/stats"
)

// Params configures Compute.
type Params struct {
	Mode      Mode
	ErrorMode ErrorMode
	C1, C2    float64              // scale factors for primary and secondary; zero means 1
	Ratio     stats.RatioEstimator // used by RatioAsymmetric; nil selects ClopperPearsonRatio
}

// DefaultParams returns plain ratio with symmetric errors and unit scales.
func DefaultParams() Params {
	return Params{Mode: Ratio, ErrorMode: ErrorSymmetric, C1: 1, C2: 1}
}

func (p Params) withDefaults() Params {
	if p.Mode == 0 {
		p.Mode = Ratio
	}
	if p.ErrorMode == 0 {
		p.ErrorMode = ErrorSymmetric
	}
	if p.C1 == 0 {
		p.C1 = 1
	}
	if p.C2 == 0 {
		p.C2 = 1
	}
	if p.Ratio == nil {
		p.Ratio = stats.ClopperPearsonRatio{}
	}
	return p
}

// Compute builds the comparison series.
//
// secondary is required by every mode except FitResidual. fit is only used
// by FitResidual; when nil, the fit attached to the primary's total is used.
// On error no series is returned.
func Compute(primary hist.Drawable, secondary *hist.Histogram, fit hist.Model, p Params) (*Series, error) {
	if primary == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "primary series is required")
	}
	p = p.withDefaults()
	if err := primary.Validate(); err != nil {
		return nil, err
	}
	h1 := primary.Total()

	if p.Mode == FitResidual {
		if fit == nil {
			fit = h1.Fit
		}
		if fit == nil {
			return nil, errors.New(errors.ErrCodeMissingFit, "fit residual of %q needs a fit", h1.Name)
		}
		return fitResidual(h1, fit, p), nil
	}

	if secondary == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mode %s needs a secondary histogram", p.Mode)
	}
	if err := secondary.Validate(); err != nil {
		return nil, err
	}
	if err := hist.SameBinning(h1.Edges, secondary.Edges); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIncompatibleBinning, err, "%q vs %q", h1.Name, secondary.Name)
	}

	switch p.Mode {
	case Ratio:
		return divide(h1, secondary, p), nil
	case RatioAsymmetric:
		return divideAsymmetric(h1, secondary, p), nil
	case Difference:
		return difference(h1, secondary, p), nil
	case DifferenceOverError:
		return differenceOverError(h1, secondary, p), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown comparison mode %v", p.Mode)
}

// binErrors returns the scaled low/high errors of bin i under the error mode.
func binErrors(h *hist.Histogram, i int, c float64, em ErrorMode) (low, high float64) {
	if em == ErrorAsymmetric {
		return math.Abs(c) * h.ErrorLow(i), math.Abs(c) * h.ErrorUp(i)
	}
	e := math.Abs(c) * h.Error(i)
	return e, e
}

func newPoint(h *hist.Histogram, i int) Point {
	return Point{X: h.Center(i), XLow: h.LowEdge(i), XHigh: h.LowEdge(i) + h.Width(i)}
}

func divide(h1, h2 *hist.Histogram, p Params) *Series {
	s := &Series{Mode: p.Mode, ErrorMode: p.ErrorMode}
	for i := range h1.Counts {
		n1, n2 := p.C1*h1.Counts[i], p.C2*h2.Counts[i]
		if n2 == 0 {
			continue
		}
		l1, u1 := binErrors(h1, i, p.C1, p.ErrorMode)
		l2, u2 := binErrors(h2, i, p.C2, p.ErrorMode)

		pt := newPoint(h1, i)
		pt.Y = n1 / n2
		pt.Ref = n2
		// A larger denominator pulls the ratio down, so the low side pairs
		// the numerator's low error with the denominator's high error.
		pt.ErrLow = quotientError(n1, n2, l1, u2)
		pt.ErrHigh = quotientError(n1, n2, u1, l2)
		s.Points = append(s.Points, pt)
	}
	return s
}

// quotientError propagates σ1, σ2 through n1/n2.
func quotientError(n1, n2, s1, s2 float64) float64 {
	a := s1 / n2
	b := n1 * s2 / (n2 * n2)
	return math.Sqrt(a*a + b*b)
}

func divideAsymmetric(h1, h2 *hist.Histogram, p Params) *Series {
	s := &Series{Mode: p.Mode, ErrorMode: p.ErrorMode}
	for i := range h1.Counts {
		n1, n2 := p.C1*h1.Counts[i], p.C2*h2.Counts[i]
		if n2 == 0 {
			continue
		}
		r, lo, hi, ok := p.Ratio.Ratio(n1, n2, stats.OneSigma)
		if !ok {
			continue
		}
		pt := newPoint(h1, i)
		pt.Y = r
		pt.Ref = n2
		pt.ErrLow = r - lo
		pt.ErrHigh = hi - r
		s.Points = append(s.Points, pt)
	}
	return s
}

func difference(h1, h2 *hist.Histogram, p Params) *Series {
	s := &Series{Mode: p.Mode, ErrorMode: p.ErrorMode}
	for i := range h1.Counts {
		n1, n2 := p.C1*h1.Counts[i], p.C2*h2.Counts[i]
		l1, u1 := binErrors(h1, i, p.C1, p.ErrorMode)
		l2, u2 := binErrors(h2, i, p.C2, p.ErrorMode)

		pt := newPoint(h1, i)
		pt.Y = n1 - n2
		pt.Ref = n2
		pt.ErrLow = math.Hypot(l1, u2)
		pt.ErrHigh = math.Hypot(u1, l2)
		s.Points = append(s.Points, pt)
	}
	return s
}

func differenceOverError(h1, h2 *hist.Histogram, p Params) *Series {
	s := &Series{Mode: p.Mode, ErrorMode: p.ErrorMode}
	for i := range h1.Counts {
		n1, n2 := p.C1*h1.Counts[i], p.C2*h2.Counts[i]
		d := n1 - n2

		var sigma float64
		switch p.ErrorMode {
		case ErrorAsymmetric:
			l1, u1 := binErrors(h1, i, p.C1, p.ErrorMode)
			l2, u2 := binErrors(h2, i, p.C2, p.ErrorMode)
			if d > 0 {
				sigma = math.Hypot(l1, u2)
			} else {
				sigma = math.Hypot(u1, l2)
			}
		case ErrorFromFunction:
			sigma = math.Sqrt(math.Max(n2, 0))
		default:
			e1, _ := binErrors(h1, i, p.C1, ErrorSymmetric)
			e2, _ := binErrors(h2, i, p.C2, ErrorSymmetric)
			sigma = math.Hypot(e1, e2)
		}
		if sigma == 0 {
			continue
		}

		pt := newPoint(h1, i)
		pt.Y = d / sigma
		pt.Ref = n2
		pt.ErrLow, pt.ErrHigh = 1, 1
		s.Points = append(s.Points, pt)
	}
	return s
}

func fitResidual(h *hist.Histogram, fit hist.Model, p Params) *Series {
	s := &Series{Mode: p.Mode, ErrorMode: p.ErrorMode}
	for i := range h.Counts {
		x := h.Center(i)
		f := fit.Eval(x)
		n := p.C1 * h.Counts[i]
		res := n - f

		var sigma float64
		switch p.ErrorMode {
		case ErrorAsymmetric:
			low, up := binErrors(h, i, p.C1, p.ErrorMode)
			// The data point sits above the fit: its lower error faces it.
			if res > 0 {
				sigma = low
			} else {
				sigma = up
			}
		case ErrorFromFunction:
			if f > 0 {
				sigma = math.Sqrt(f)
			}
		default:
			sigma, _ = binErrors(h, i, p.C1, ErrorSymmetric)
		}
		if sigma == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}

		pt := newPoint(h, i)
		pt.Y = res / sigma
		pt.Ref = f
		pt.ErrLow, pt.ErrHigh = 1, 1
		s.Points = append(s.Points, pt)
	}
	return s
}
