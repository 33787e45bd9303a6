package ratioplot

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/compare"
	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/hist"
	"github.com/matzehuels/ratioplot/pkg/layout"
	"github.com/matzehuels/ratioplot/pkg/stats"
)

// Default confidence band colours: green for the inner band, yellow for
// the outer one.
var (
	DefaultInnerBandColor = drawing.ColorLime
	DefaultOuterBandColor = drawing.ColorYellow
)

// RatioPlot is a dual-region comparison plot. It is not safe for
// concurrent use.
type RatioPlot struct {
	primary   hist.Drawable
	secondary *hist.Histogram
	fit       hist.Model
	params    compare.Params
	interval  stats.IntervalEstimator

	primaryOpt, secondaryOpt, graphOpt string

	cl1, cl2   float64
	bandColors [2]drawing.Color
	showBands  bool
	showGrid   bool
	grid       compare.GridlineSet

	// Derived, replaced only by a successful BuildLowerPlot.
	built        bool
	series       *compare.Series
	inner, outer compare.Band

	manager     *layout.Manager
	axes        *axis.Coordinator
	decorations []axis.GAxis

	logger *log.Logger
}

// New creates a ratio plot comparing primary with secondary. Both must
// share one binning.
func New(primary hist.Drawable, secondary *hist.Histogram, opt Options) (*RatioPlot, error) {
	if primary == nil || secondary == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "ratio plot needs a primary and a secondary histogram")
	}
	if err := primary.Validate(); err != nil {
		return nil, err
	}
	h1 := primary.Total()
	if err := secondary.Validate(); err != nil {
		return nil, err
	}
	if err := hist.SameBinning(h1.Edges, secondary.Edges); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIncompatibleBinning, err, "%q vs %q", h1.Name, secondary.Name)
	}
	mode, em := ParseOption(opt.Option)
	return newPlot(primary, secondary, nil, mode, em, opt), nil
}

// NewFitResidual creates a ratio plot of the residuals of primary with
// respect to fit. A nil fit selects the fit attached to primary; if there
// is none, drawing fails with MISSING_FIT until SetFitResult supplies one.
func NewFitResidual(primary *hist.Histogram, fit hist.Model, opt Options) (*RatioPlot, error) {
	if primary == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fit residual plot needs a histogram")
	}
	if err := primary.Validate(); err != nil {
		return nil, err
	}
	_, em := ParseOption(opt.Option)
	if opt.SecondaryDrawOpt == "" {
		opt.SecondaryDrawOpt = DefaultFitDrawOpt
	}
	return newPlot(primary, nil, fit, compare.FitResidual, em, opt), nil
}

func newPlot(primary hist.Drawable, secondary *hist.Histogram, fit hist.Model, mode compare.Mode, em compare.ErrorMode, opt Options) *RatioPlot {
	logger := opt.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	geom := opt.Geometry
	if geom == (layout.Geometry{}) {
		geom = layout.DefaultGeometry()
	}

	p := &RatioPlot{
		primary:      primary,
		secondary:    secondary,
		fit:          fit,
		params:       compare.Params{Mode: mode, ErrorMode: em, C1: 1, C2: 1, Ratio: opt.Ratio},
		interval:     opt.Interval,
		primaryOpt:   orDefault(opt.PrimaryDrawOpt, DefaultPrimaryDrawOpt),
		secondaryOpt: orDefault(opt.SecondaryDrawOpt, DefaultSecondaryDrawOpt),
		graphOpt:     orDefault(opt.GraphDrawOpt, DefaultGraphDrawOpt),
		cl1:          stats.OneSigma,
		cl2:          stats.TwoSigma,
		bandColors:   [2]drawing.Color{DefaultInnerBandColor, DefaultOuterBandColor},
		showBands:    true,
		showGrid:     true,
		logger:       logger,
	}
	p.grid, _ = compare.Gridlines(mode, nil)

	edges := primary.Binning()
	x := axis.New("x", layout.Range{Min: edges[0], Max: edges[len(edges)-1]}, 8)
	upY := axis.New("entries", p.upperRange(), 6)
	lowY := axis.New(lowerTitle(mode), initialLowerRange(mode), 4)

	p.manager = layout.NewManager(geom, logger)
	p.axes = axis.NewCoordinator(p.manager, x, upY, lowY, logger)
	p.applyDrawFlags(parseDrawOption(opt.Option))
	p.manager.Observe(p)
	p.manager.OnChange(p.refresh)
	p.axes.OnChange(p.refresh)
	p.refresh()
	return p
}

// BuildLowerPlot computes the comparison series and its confidence bands.
// Draw calls it on first use. On error the previous series is kept.
func (p *RatioPlot) BuildLowerPlot() error {
	s, err := compare.Compute(p.primary, p.secondary, p.fit, p.params)
	if err != nil {
		return err
	}
	inner, outer, err := compare.Bands(s, p.cl1, p.cl2, p.interval)
	if err != nil {
		return err
	}
	p.series, p.inner, p.outer = s, inner, outer
	p.built = true
	p.logger.Debug("built lower plot", "mode", s.Mode, "points", s.Len())
	p.updateLowerRange()
	return nil
}

// Draw builds the lower plot if needed, applies the draw option and
// returns the drawing instructions for the current state.
func (p *RatioPlot) Draw(opt string) (*Scene, error) {
	if !p.built {
		if err := p.BuildLowerPlot(); err != nil {
			return nil, err
		}
	}
	p.applyDrawFlags(parseDrawOption(opt))
	p.updateLowerRange()
	p.refresh()
	return p.scene(), nil
}

func (p *RatioPlot) applyDrawFlags(f drawFlags) {
	if f.grid != nil {
		p.showGrid = *f.grid
	}
	if f.confint != nil {
		p.showBands = *f.confint
	}
	if f.hide != nil {
		p.axes.SetHideLabelMode(*f.hide)
	}
}

// OnRangeChanged implements layout.Observer.
func (p *RatioPlot) OnRangeChanged() { p.axes.SyncRanges() }

// OnRegionResized implements layout.Observer.
func (p *RatioPlot) OnRegionResized() { p.manager.SyncMargins() }

// OnUnzoomed resets the shared x axis to its full range.
func (p *RatioPlot) OnUnzoomed() { p.axes.Unzoom() }

// Zoom sets the visible x range of both regions.
func (p *RatioPlot) Zoom(lo, hi float64) bool {
	return p.axes.Zoom(layout.Range{Min: lo, Max: hi})
}

func (p *RatioPlot) refresh() {
	p.decorations = p.axes.Decorations()
}

// upperRange covers the primary and secondary contents with their errors.
// Counts start at zero.
func (p *RatioPlot) upperRange() layout.Range {
	h1 := p.primary.Total()
	vals := make([]float64, 0, 2*h1.NBins())
	nonNeg := true
	for i := range h1.NBins() {
		v := p.primary.ValueAt(h1.Center(i))
		vals = append(vals, v+h1.ErrorUp(i))
		if p.secondary != nil {
			vals = append(vals, p.secondary.Content(i)+p.secondary.ErrorUp(i))
			nonNeg = nonNeg && p.secondary.Content(i) >= 0
		}
		nonNeg = nonNeg && v >= 0
	}
	r := axis.AutoRange(vals, 0.1)
	if nonNeg {
		r.Min = 0
	}
	return r
}

func (p *RatioPlot) updateLowerRange() {
	if !p.built {
		return
	}
	vals := []float64{p.params.Mode.Neutral()}
	for _, pt := range p.series.Points {
		vals = append(vals, pt.Low(), pt.High())
	}
	if p.showBands {
		for _, b := range []compare.Band{p.inner, p.outer} {
			for _, pt := range b.Points {
				vals = append(vals, pt.Low(), pt.High())
			}
		}
	}
	r := axis.AutoRange(vals, 0.1)
	if p.params.Mode.IsRatio() && r.Min < 0 && slices.Min(vals) >= 0 {
		r.Min = 0
	}
	p.axes.SetLowYFull(r)
}

func lowerTitle(m compare.Mode) string {
	switch m {
	case compare.Difference:
		return "difference"
	case compare.DifferenceOverError:
		return "(h1-h2)/σ"
	case compare.FitResidual:
		return "residual/σ"
	}
	return "ratio"
}

func initialLowerRange(m compare.Mode) layout.Range {
	switch {
	case m.IsRatio():
		return layout.Range{Min: 0, Max: 2}
	case m.IsSignificance():
		return layout.Range{Min: -3, Max: 3}
	}
	return layout.Range{Min: -1, Max: 1}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
