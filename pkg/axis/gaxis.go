package axis

import (
	"github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/ratioplot/pkg/layout"
)

// Orientation of a graphical axis.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// GAxis is a graphical axis decoration placed on the overlay region.
// Endpoints are in surface coordinates; Range is the world interval mapped
// onto them.
type GAxis struct {
	Name        string
	Orientation Orientation
	X1, Y1      float64
	X2, Y2      float64
	Range       layout.Range
	Ticks       []chart.Tick

	// Mirror axes sit on the opposite edge with ticks pointing inwards and
	// never carry labels.
	Mirror        bool
	LabelsVisible bool
	LabelSize     float64
	Title         string
	TitleSize     float64

	// HiddenLabel is the index into Ticks whose label is suppressed, or -1.
	HiddenLabel int
}

// TickPosition maps tick i to its surface coordinate along the axis.
func (g GAxis) TickPosition(i int) float64 {
	v := g.Ticks[i].Value
	t := 0.0
	if g.Range.Span() != 0 {
		t = (v - g.Range.Min) / g.Range.Span()
	}
	if g.Orientation == Horizontal {
		return g.X1 + t*(g.X2-g.X1)
	}
	return g.Y1 + t*(g.Y2-g.Y1)
}

// Labels returns the labels that will be drawn, in tick order, with the
// hidden one blanked.
func (g GAxis) Labels() []string {
	if !g.LabelsVisible {
		return nil
	}
	out := make([]string, len(g.Ticks))
	for i, t := range g.Ticks {
		if i != g.HiddenLabel {
			out[i] = t.Label
		}
	}
	return out
}

// along builds the bottom/top (horizontal) or left/right (vertical) axis of
// frame.
func along(name string, o Orientation, frame layout.Rect, r layout.Range, ticks []chart.Tick, mirror bool) GAxis {
	g := GAxis{
		Name:        name,
		Orientation: o,
		Range:       r,
		Ticks:       ticks,
		Mirror:      mirror,
		HiddenLabel: -1,
	}
	switch {
	case o == Horizontal && !mirror:
		g.X1, g.Y1, g.X2, g.Y2 = frame.Left, frame.Bottom, frame.Right, frame.Bottom
	case o == Horizontal:
		g.X1, g.Y1, g.X2, g.Y2 = frame.Left, frame.Top, frame.Right, frame.Top
	case !mirror:
		g.X1, g.Y1, g.X2, g.Y2 = frame.Left, frame.Bottom, frame.Left, frame.Top
	default:
		g.X1, g.Y1, g.X2, g.Y2 = frame.Right, frame.Bottom, frame.Right, frame.Top
	}
	return g
}
