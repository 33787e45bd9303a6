package compare_test

import (
	"fmt"

	"github.com/matzehuels/ratioplot/pkg/compare"
	"github.com/matzehuels/ratioplot/pkg/hist"
)

func ExampleCompute() {
	edges := []float64{0, 1, 2, 3}
	data, _ := hist.FromCounts("data", edges, []float64{10, 20, 30})
	mc, _ := hist.FromCounts("mc", edges, []float64{10, 20, 30})

	s, _ := compare.Compute(data, mc, nil, compare.DefaultParams())
	for _, p := range s.Points {
		fmt.Printf("x=%.1f ratio=%.2f\n", p.X, p.Y)
	}
	// Output:
	// x=0.5 ratio=1.00
	// x=1.5 ratio=1.00
	// x=2.5 ratio=1.00
}
