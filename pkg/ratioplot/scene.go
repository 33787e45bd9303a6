package ratioplot

import (
	"slices"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/compare"
	"github.com/matzehuels/ratioplot/pkg/hist"
	"github.com/matzehuels/ratioplot/pkg/layout"
)

// fitSamples is the number of points a fit curve is sampled at.
const fitSamples = 200

// Kind is how a layer is drawn.
type Kind int

const (
	// Step draws a histogram outline, filled when Fill is set.
	Step Kind = iota
	// Markers draws a marker per point, with error bars if requested.
	Markers
	// Line joins the points.
	Line
	// BandFill fills the area between each point's Low and High.
	BandFill
	// Gridline draws a dashed horizontal line across the frame.
	Gridline
)

func (k Kind) String() string {
	return [...]string{"step", "markers", "line", "band", "gridline"}[k]
}

// Layer is one drawn element in world coordinates.
type Layer struct {
	Name      string
	Kind      Kind
	Points    []compare.Point
	Stroke    drawing.Color
	Fill      drawing.Color
	ErrorBars bool
}

// Panel is everything drawn inside one region, bottom layer first.
type Panel struct {
	Bounds layout.Rect
	Frame  layout.Rect
	X, Y   layout.Range
	Layers []Layer
}

// ToSurface maps a world point into surface coordinates.
func (p Panel) ToSurface(x, y float64) (sx, sy float64) {
	sx, sy = p.Frame.Left, p.Frame.Bottom
	if p.X.Span() != 0 {
		sx += (x - p.X.Min) / p.X.Span() * p.Frame.Width()
	}
	if p.Y.Span() != 0 {
		sy += (y - p.Y.Min) / p.Y.Span() * p.Frame.Height()
	}
	return sx, sy
}

// Scene is the complete set of drawing instructions for one Draw call.
// Coordinates are normalized to the surface, origin bottom left.
type Scene struct {
	Width, Height float64
	Title         string
	Mode          compare.Mode
	Upper, Lower  Panel
	Axes          []axis.GAxis
}

func (p *RatioPlot) scene() *Scene {
	w, h := p.manager.SurfaceSize()
	s := &Scene{
		Width:  w,
		Height: h,
		Title:  p.primary.Total().Title,
		Mode:   p.params.Mode,
		Upper:  panelOf(p.manager.Upper()),
		Lower:  panelOf(p.manager.Lower()),
		Axes:   slices.Clone(p.decorations),
	}
	s.Upper.Layers = p.upperLayers()
	s.Lower.Layers = p.lowerLayers(s.Lower)
	return s
}

func panelOf(r *layout.Region) Panel {
	return Panel{Bounds: r.Bounds(), Frame: r.Frame(), X: r.XRange(), Y: r.YRange()}
}

func (p *RatioPlot) upperLayers() []Layer {
	var layers []Layer
	if st, ok := p.primary.(*hist.Stack); ok {
		cum := st.Cumulative()
		// Tallest layer first so lower members stay visible.
		for k := len(cum) - 1; k >= 0; k-- {
			m := st.Members[k]
			pts := make([]compare.Point, m.NBins())
			for i := range pts {
				pts[i] = binPoint(m, i, cum[k][i], 0, 0)
			}
			layers = append(layers, Layer{
				Name:   m.Name,
				Kind:   Step,
				Points: pts,
				Stroke: chart.ColorBlack,
				Fill:   chart.GetDefaultColor(k),
			})
		}
	} else {
		layers = append(layers, p.histLayer(p.primary.Total(), p.primaryOpt, chart.ColorBlue))
	}

	switch {
	case p.secondary != nil:
		layers = append(layers, p.histLayer(p.secondary, p.secondaryOpt, chart.ColorBlack))
	case p.Fit() != nil:
		layers = append(layers, p.fitLayer())
	}
	return layers
}

func (p *RatioPlot) lowerLayers(panel Panel) []Layer {
	var layers []Layer
	if p.showBands {
		layers = append(layers,
			Layer{Name: "outer band", Kind: BandFill, Points: slices.Clone(p.outer.Points), Fill: p.bandColors[1]},
			Layer{Name: "inner band", Kind: BandFill, Points: slices.Clone(p.inner.Points), Fill: p.bandColors[0]},
		)
	}
	if p.showGrid {
		for _, y := range p.grid.Within(panel.Y.Min, panel.Y.Max) {
			layers = append(layers, Layer{
				Name:   "gridline",
				Kind:   Gridline,
				Points: []compare.Point{{X: panel.X.Min, Y: y}, {X: panel.X.Max, Y: y}},
				Stroke: chart.ColorAlternateGray,
			})
		}
	}
	kind, bars := styleOf(p.graphOpt)
	layers = append(layers, Layer{
		Name:      p.params.Mode.String(),
		Kind:      kind,
		Points:    slices.Clone(p.series.Points),
		Stroke:    chart.ColorBlack,
		ErrorBars: bars,
	})
	return layers
}

func (p *RatioPlot) histLayer(h *hist.Histogram, opt string, color drawing.Color) Layer {
	kind, bars := styleOf(opt)
	pts := make([]compare.Point, h.NBins())
	for i := range pts {
		lo, up := h.Error(i), h.Error(i)
		if p.params.ErrorMode == compare.ErrorAsymmetric {
			lo, up = h.ErrorLow(i), h.ErrorUp(i)
		}
		pts[i] = binPoint(h, i, h.Content(i), lo, up)
	}
	return Layer{Name: h.Name, Kind: kind, Points: pts, Stroke: color, ErrorBars: bars}
}

func (p *RatioPlot) fitLayer() Layer {
	fit := p.Fit()
	edges := p.primary.Binning()
	lo, hi := edges[0], edges[len(edges)-1]
	pts := make([]compare.Point, fitSamples)
	for i := range pts {
		x := lo + (hi-lo)*float64(i)/float64(fitSamples-1)
		pts[i] = compare.Point{X: x, Y: fit.Eval(x)}
	}
	kind, _ := styleOf(p.secondaryOpt)
	if kind != Markers {
		kind = Line
	}
	return Layer{Name: "fit", Kind: kind, Points: pts, Stroke: chart.ColorRed}
}

func binPoint(h *hist.Histogram, i int, y, lo, up float64) compare.Point {
	return compare.Point{
		X:       h.Center(i),
		XLow:    h.LowEdge(i),
		XHigh:   h.LowEdge(i) + h.Width(i),
		Y:       y,
		ErrLow:  lo,
		ErrHigh: up,
	}
}

// styleOf maps a draw option to a layer kind: "hist" draws steps, "L" or
// "C" a line and anything else markers. "X" suppresses error bars on
// markers; lines only get them with "E".
func styleOf(opt string) (Kind, bool) {
	o := strings.ToLower(opt)
	if take(&o, "hist") {
		return Step, false
	}
	noBars := strings.Contains(o, "x")
	if strings.ContainsAny(o, "lc") {
		return Line, strings.Contains(o, "e") && !noBars
	}
	return Markers, !noBars
}
