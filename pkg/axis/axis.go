package axis

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/ratioplot/pkg/layout"
)

// Default label and title sizes as fractions of the surface height.
const (
	DefaultLabelSize = 0.035
	DefaultTitleSize = 0.04
)

// Axis is a logical axis: a full range, the currently visible sub-range and
// cosmetic attributes.
type Axis struct {
	Title     string
	Full      layout.Range
	Visible   layout.Range
	Divisions int
	LabelSize float64
	TitleSize float64
}

// New returns an axis showing its full range.
func New(title string, full layout.Range, divisions int) Axis {
	if divisions < 2 {
		divisions = 2
	}
	return Axis{
		Title:     title,
		Full:      full,
		Visible:   full,
		Divisions: divisions,
		LabelSize: DefaultLabelSize,
		TitleSize: DefaultTitleSize,
	}
}

// SetRange zooms to r, clamped to the full range. Inverted bounds are
// swapped. Empty or non-finite ranges are ignored and SetRange returns false.
func (a *Axis) SetRange(r layout.Range) bool {
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if !finite(r.Min) || !finite(r.Max) {
		return false
	}
	if !a.Full.IsZero() {
		r.Min = math.Max(r.Min, a.Full.Min)
		r.Max = math.Min(r.Max, a.Full.Max)
	}
	if r.Span() <= 0 {
		return false
	}
	a.Visible = r
	return true
}

// SetFull replaces the full range. An unzoomed axis follows it; a zoomed
// one is clamped into it.
func (a *Axis) SetFull(r layout.Range) {
	zoomed := a.IsZoomed()
	a.Full = r
	if !zoomed || !a.SetRange(a.Visible) {
		a.Visible = r
	}
}

// UnZoom resets the visible range to the full range.
func (a *Axis) UnZoom() { a.Visible = a.Full }

// IsZoomed reports whether the visible range differs from the full range.
func (a Axis) IsZoomed() bool { return !a.Visible.Equal(a.Full) }

// Ticks returns tick marks inside the visible range.
func (a Axis) Ticks() []chart.Tick {
	return Ticks(a.Visible, a.Divisions)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
