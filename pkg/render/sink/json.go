package sink

import (
	"encoding/json"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/compare"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
)

type jsonOutput struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Title  string     `json:"title,omitempty"`
	Mode   string     `json:"mode"`
	Upper  jsonPanel  `json:"upper"`
	Lower  jsonPanel  `json:"lower"`
	Axes   []jsonAxis `json:"axes"`
}

type jsonPanel struct {
	Frame  [4]float64  `json:"frame"` // left, bottom, right, top
	X      [2]float64  `json:"x"`
	Y      [2]float64  `json:"y"`
	Layers []jsonLayer `json:"layers"`
}

type jsonLayer struct {
	Name      string      `json:"name"`
	Kind      string      `json:"kind"`
	Stroke    string      `json:"stroke,omitempty"`
	Fill      string      `json:"fill,omitempty"`
	ErrorBars bool        `json:"error_bars,omitempty"`
	Points    []jsonPoint `json:"points"`
}

type jsonPoint struct {
	X       float64 `json:"x"`
	XLow    float64 `json:"x_low"`
	XHigh   float64 `json:"x_high"`
	Y       float64 `json:"y"`
	ErrLow  float64 `json:"err_low"`
	ErrHigh float64 `json:"err_high"`
}

type jsonAxis struct {
	Name   string     `json:"name"`
	From   [2]float64 `json:"from"`
	To     [2]float64 `json:"to"`
	Range  [2]float64 `json:"range"`
	Ticks  []float64  `json:"ticks"`
	Labels []string   `json:"labels,omitempty"`
	Title  string     `json:"title,omitempty"`
	Mirror bool       `json:"mirror,omitempty"`
}

// RenderJSON serializes the scene. Points with non-finite coordinates are
// dropped and infinite error bars are written as zero, since JSON has no
// representation for either.
func RenderJSON(s *ratioplot.Scene) ([]byte, error) {
	out := jsonOutput{
		Width:  s.Width,
		Height: s.Height,
		Title:  s.Title,
		Mode:   s.Mode.String(),
		Upper:  toJSONPanel(s.Upper),
		Lower:  toJSONPanel(s.Lower),
	}
	for _, a := range s.Axes {
		out.Axes = append(out.Axes, toJSONAxis(a))
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONPanel(p ratioplot.Panel) jsonPanel {
	jp := jsonPanel{
		Frame: [4]float64{p.Frame.Left, p.Frame.Bottom, p.Frame.Right, p.Frame.Top},
		X:     [2]float64{p.X.Min, p.X.Max},
		Y:     [2]float64{p.Y.Min, p.Y.Max},
	}
	for _, l := range p.Layers {
		jl := jsonLayer{
			Name:      l.Name,
			Kind:      l.Kind.String(),
			ErrorBars: l.ErrorBars,
			Points:    toJSONPoints(l.Points),
		}
		if !l.Stroke.IsZero() {
			jl.Stroke = hex(l.Stroke)
		}
		if !l.Fill.IsZero() {
			jl.Fill = hex(l.Fill)
		}
		jp.Layers = append(jp.Layers, jl)
	}
	return jp
}

func toJSONPoints(pts []compare.Point) []jsonPoint {
	out := make([]jsonPoint, 0, len(pts))
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		out = append(out, jsonPoint{
			X:       p.X,
			XLow:    p.XLow,
			XHigh:   p.XHigh,
			Y:       p.Y,
			ErrLow:  finiteOrZero(p.ErrLow),
			ErrHigh: finiteOrZero(p.ErrHigh),
		})
	}
	return out
}

func toJSONAxis(a axis.GAxis) jsonAxis {
	ja := jsonAxis{
		Name:   a.Name,
		From:   [2]float64{a.X1, a.Y1},
		To:     [2]float64{a.X2, a.Y2},
		Range:  [2]float64{a.Range.Min, a.Range.Max},
		Labels: a.Labels(),
		Mirror: a.Mirror,
	}
	if a.LabelsVisible {
		ja.Title = a.Title
	}
	for _, t := range a.Ticks {
		ja.Ticks = append(ja.Ticks, t.Value)
	}
	return ja
}

func finiteOrZero(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}
