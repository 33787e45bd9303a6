package compare

import (
	"slices"

	"github.com/matzehuels/ratioplot/pkg/errors"
)

// GridlineSet holds the y positions of the horizontal reference lines in
// the lower region, sorted and without duplicates.
type GridlineSet struct {
	Positions []float64
}

// Gridlines validates explicit positions or, when none are given, returns
// a single line at the mode's neutral value.
func Gridlines(mode Mode, positions []float64) (GridlineSet, error) {
	if len(positions) == 0 {
		return GridlineSet{Positions: []float64{mode.Neutral()}}, nil
	}
	for _, y := range positions {
		if err := errors.ValidateFinite("gridline position", y); err != nil {
			return GridlineSet{}, err
		}
	}
	p := slices.Clone(positions)
	slices.Sort(p)
	return GridlineSet{Positions: slices.Compact(p)}, nil
}

// Within returns the positions inside [lo, hi]. Lines outside the visible
// range are simply not drawn; they never widen it.
func (g GridlineSet) Within(lo, hi float64) []float64 {
	var out []float64
	for _, y := range g.Positions {
		if y >= lo && y <= hi {
			out = append(out, y)
		}
	}
	return out
}
