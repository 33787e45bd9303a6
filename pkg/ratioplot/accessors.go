package ratioplot

import (
	"slices"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/compare"
	"github.com/matzehuels/ratioplot/pkg/hist"
	"github.com/matzehuels/ratioplot/pkg/layout"
)

// XAxis returns the shared x axis.
func (p *RatioPlot) XAxis() axis.Axis { return p.axes.XAxis() }

// UpYAxis returns the y axis of the upper region.
func (p *RatioPlot) UpYAxis() axis.Axis { return p.axes.UpYAxis() }

// LowYAxis returns the y axis of the lower region.
func (p *RatioPlot) LowYAxis() axis.Axis { return p.axes.LowYAxis() }

// UpperRegion returns the upper region. Hosts drive resize and zoom events
// through its setters.
func (p *RatioPlot) UpperRegion() *layout.Region { return p.manager.Upper() }

// LowerRegion returns the lower region.
func (p *RatioPlot) LowerRegion() *layout.Region { return p.manager.Lower() }

// OverlayRegion returns the transparent full-surface region hosting the
// axis decorations.
func (p *RatioPlot) OverlayRegion() *layout.Region { return p.manager.Overlay() }

// Geometry returns the current layout.
func (p *RatioPlot) Geometry() layout.Geometry { return p.manager.Geometry() }

// SplitFraction returns the boundary between the regions.
func (p *RatioPlot) SplitFraction() float64 { return p.manager.SplitFraction() }

// SeparationMargin returns the gap between the plotted areas.
func (p *RatioPlot) SeparationMargin() float64 { return p.manager.SeparationMargin() }

// Mode returns the comparison mode.
func (p *RatioPlot) Mode() compare.Mode { return p.params.Mode }

// ErrorMode returns the error mode.
func (p *RatioPlot) ErrorMode() compare.ErrorMode { return p.params.ErrorMode }

// C1 returns the primary scale factor.
func (p *RatioPlot) C1() float64 { return p.params.C1 }

// C2 returns the secondary scale factor.
func (p *RatioPlot) C2() float64 { return p.params.C2 }

// ConfidenceLevels returns the inner and outer band levels.
func (p *RatioPlot) ConfidenceLevels() (cl1, cl2 float64) { return p.cl1, p.cl2 }

// Primary returns the primary drawable.
func (p *RatioPlot) Primary() hist.Drawable { return p.primary }

// Secondary returns the secondary histogram, nil for fit residuals.
func (p *RatioPlot) Secondary() *hist.Histogram { return p.secondary }

// Fit returns the fit in effect for residuals, if any.
func (p *RatioPlot) Fit() hist.Model {
	if p.fit != nil {
		return p.fit
	}
	if h, ok := p.primary.(*hist.Histogram); ok && h.Fit != nil {
		return h.Fit
	}
	return nil
}

// Gridlines returns the configured gridline positions.
func (p *RatioPlot) Gridlines() compare.GridlineSet {
	return compare.GridlineSet{Positions: slices.Clone(p.grid.Positions)}
}

// RatioSeries returns a copy of the comparison series, or nil before the
// lower plot is built.
func (p *RatioPlot) RatioSeries() *compare.Series {
	if !p.built {
		return nil
	}
	s := *p.series
	s.Points = slices.Clone(s.Points)
	return &s
}

// Bands returns copies of the inner and outer confidence bands.
func (p *RatioPlot) Bands() (inner, outer compare.Band) {
	inner, outer = p.inner, p.outer
	inner.Points = slices.Clone(inner.Points)
	outer.Points = slices.Clone(outer.Points)
	return inner, outer
}

// Decorations returns the current graphical axes.
func (p *RatioPlot) Decorations() []axis.GAxis { return slices.Clone(p.decorations) }
