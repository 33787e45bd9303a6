package ratioplot

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/compare"
	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/hist"
	"github.com/matzehuels/ratioplot/pkg/layout"
)

// SetUpTopMargin sets the top margin of the upper region.
func (p *RatioPlot) SetUpTopMargin(v float64) error { return p.manager.SetUpTopMargin(v) }

// SetUpBottomMargin sets the bottom margin of the upper region.
func (p *RatioPlot) SetUpBottomMargin(v float64) error { return p.manager.SetUpBottomMargin(v) }

// SetLowTopMargin sets the top margin of the lower region.
func (p *RatioPlot) SetLowTopMargin(v float64) error { return p.manager.SetLowTopMargin(v) }

// SetLowBottomMargin sets the bottom margin of the lower region.
func (p *RatioPlot) SetLowBottomMargin(v float64) error { return p.manager.SetLowBottomMargin(v) }

// SetLeftMargin sets the left margin of both regions.
func (p *RatioPlot) SetLeftMargin(v float64) error { return p.manager.SetLeftMargin(v) }

// SetRightMargin sets the right margin of both regions.
func (p *RatioPlot) SetRightMargin(v float64) error { return p.manager.SetRightMargin(v) }

// SetSeparationMargin sets the gap between the two plotted areas.
func (p *RatioPlot) SetSeparationMargin(v float64) error { return p.manager.SetSeparationMargin(v) }

// SetGeometry replaces the split fraction, margins and inset at once. An
// invalid geometry is rejected and the current one kept.
func (p *RatioPlot) SetGeometry(g layout.Geometry) error { return p.manager.SetGeometry(g) }

// SetSplitFraction moves the boundary between the regions, clamped to
// [0.01, 0.99].
func (p *RatioPlot) SetSplitFraction(sf float64) { p.manager.SetSplitFraction(sf) }

// SetSurfaceSize records the drawing surface size in pixels.
func (p *RatioPlot) SetSurfaceSize(w, h float64) error { return p.manager.SetSurfaceSize(w, h) }

// SetConfidenceLevels sets the inner and outer band levels. Invalid levels
// are rejected and the previous ones kept.
func (p *RatioPlot) SetConfidenceLevels(cl1, cl2 float64) error {
	if err := errors.ValidateConfidenceLevels(cl1, cl2); err != nil {
		return err
	}
	p.cl1, p.cl2 = cl1, cl2
	if !p.built {
		return nil
	}
	inner, outer, err := compare.Bands(p.series, cl1, cl2, p.interval)
	if err != nil {
		return err
	}
	p.inner, p.outer = inner, outer
	p.updateLowerRange()
	return nil
}

// SetConfidenceIntervalColors sets the fill colours of the inner and outer
// bands.
func (p *RatioPlot) SetConfidenceIntervalColors(inner, outer drawing.Color) {
	p.bandColors = [2]drawing.Color{inner, outer}
}

// SetGridlines replaces the gridline positions. No positions restores the
// single line at the neutral value.
func (p *RatioPlot) SetGridlines(positions ...float64) error {
	g, err := compare.Gridlines(p.params.Mode, positions)
	if err != nil {
		return err
	}
	p.grid = g
	return nil
}

// SetC1 sets the scale factor of the primary.
func (p *RatioPlot) SetC1(c float64) error {
	if err := validScale("c1", c); err != nil {
		return err
	}
	prev := p.params
	p.params.C1 = c
	return p.rebuild(func() { p.params = prev })
}

// SetC2 sets the scale factor of the secondary.
func (p *RatioPlot) SetC2(c float64) error {
	if err := validScale("c2", c); err != nil {
		return err
	}
	prev := p.params
	p.params.C2 = c
	return p.rebuild(func() { p.params = prev })
}

// SetFitResult replaces the fit used for residuals. If the lower plot was
// already built it is rebuilt; on failure the previous fit is restored.
func (p *RatioPlot) SetFitResult(fit hist.Model) error {
	prev := p.fit
	p.fit = fit
	return p.rebuild(func() { p.fit = prev })
}

// SetHideLabelMode selects the label collision policy.
func (p *RatioPlot) SetHideLabelMode(m axis.HideLabelMode) {
	p.axes.SetHideLabelMode(m)
	p.refresh()
}

// SetAxisTitles sets the x, upper y and lower y titles. Empty strings keep
// the current title.
func (p *RatioPlot) SetAxisTitles(x, upY, lowY string) {
	p.axes.SetTitles(x, upY, lowY)
	p.refresh()
}

// SetDrawOptions replaces the draw options of the primary, the secondary
// (or fit) and the comparison graph. Empty strings keep the current one.
func (p *RatioPlot) SetDrawOptions(primary, secondary, graph string) {
	p.primaryOpt = orDefault(primary, p.primaryOpt)
	p.secondaryOpt = orDefault(secondary, p.secondaryOpt)
	p.graphOpt = orDefault(graph, p.graphOpt)
}

// rebuild recomputes an already built lower plot, calling undo if that
// fails. Unbuilt plots are computed lazily by Draw.
func (p *RatioPlot) rebuild(undo func()) error {
	if !p.built {
		return nil
	}
	if err := p.BuildLowerPlot(); err != nil {
		undo()
		return err
	}
	return nil
}

func validScale(name string, c float64) error {
	if err := errors.ValidateFinite(name, c); err != nil {
		return err
	}
	if c == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s must not be zero", name)
	}
	return nil
}
