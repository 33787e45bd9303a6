package config

import (
	"github.com/charmbracelet/log"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/layout"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
	"github.com/matzehuels/ratioplot/pkg/render/sink"
)

// PlotOptions returns the construction options selected by c.
func (c *Config) PlotOptions(logger *log.Logger) ratioplot.Options {
	return ratioplot.Options{
		Option:           c.Option,
		PrimaryDrawOpt:   c.Draw.Primary,
		SecondaryDrawOpt: c.Draw.Secondary,
		GraphDrawOpt:     c.Draw.Graph,
		Logger:           logger,
	}
}

// Apply configures rp. It stops at the first rejected setting; settings
// applied before it stay in effect.
func (c *Config) Apply(rp *ratioplot.RatioPlot) error {
	if c.Width > 0 || c.Height > 0 {
		w, h := c.Width, c.Height
		if w == 0 {
			w = layout.DefaultSurfaceSize
		}
		if h == 0 {
			h = layout.DefaultSurfaceSize
		}
		if err := rp.SetSurfaceSize(w, h); err != nil {
			return err
		}
	}

	if g, changed := c.Geometry.merge(rp.Geometry()); changed {
		if err := rp.SetGeometry(g); err != nil {
			return err
		}
	}

	if l := c.Confidence.Levels; len(l) == 2 {
		if err := rp.SetConfidenceLevels(l[0], l[1]); err != nil {
			return err
		}
	}
	if c.Confidence.InnerColor != "" || c.Confidence.OuterColor != "" {
		inner, outer := ratioplot.DefaultInnerBandColor, ratioplot.DefaultOuterBandColor
		if c.Confidence.InnerColor != "" {
			inner = drawing.ParseColor(c.Confidence.InnerColor)
		}
		if c.Confidence.OuterColor != "" {
			outer = drawing.ParseColor(c.Confidence.OuterColor)
		}
		rp.SetConfidenceIntervalColors(inner, outer)
	}

	if len(c.Gridlines) > 0 {
		if err := rp.SetGridlines(c.Gridlines...); err != nil {
			return err
		}
	}
	if c.Scale.C1 != nil {
		if err := rp.SetC1(*c.Scale.C1); err != nil {
			return err
		}
	}
	if c.Scale.C2 != nil {
		if err := rp.SetC2(*c.Scale.C2); err != nil {
			return err
		}
	}

	if c.Labels.Hide != "" {
		m, err := axis.ParseHideLabelMode(c.Labels.Hide)
		if err != nil {
			return err
		}
		rp.SetHideLabelMode(m)
	}
	rp.SetAxisTitles(c.Labels.XTitle, c.Labels.UpYTitle, c.Labels.LowYTitle)
	rp.SetDrawOptions(c.Draw.Primary, c.Draw.Secondary, c.Draw.Graph)
	return nil
}

// SVGOptions returns the sink options selected by the [style] table.
func (c *Config) SVGOptions() []sink.SVGOption {
	var opts []sink.SVGOption
	if c.Style.Font != "" {
		opts = append(opts, sink.WithFont(c.Style.Font))
	}
	if c.Style.Background != "" {
		opts = append(opts, sink.WithBackground(drawing.ParseColor(c.Style.Background)))
	}
	return opts
}

// merge overlays the set fields on g. The separation margin is applied
// after the individual margins.
func (g Geometry) merge(base layout.Geometry) (layout.Geometry, bool) {
	changed := false
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}
	set(&base.SplitFraction, g.SplitFraction)
	set(&base.UpTop, g.UpTopMargin)
	set(&base.UpBottom, g.UpBottomMargin)
	set(&base.LowTop, g.LowTopMargin)
	set(&base.LowBottom, g.LowBottomMargin)
	set(&base.Left, g.LeftMargin)
	set(&base.Right, g.RightMargin)
	set(&base.Inset, g.Inset)
	if g.SeparationMargin != nil {
		base = base.WithSeparationMargin(*g.SeparationMargin)
		changed = true
	}
	return base, changed
}
