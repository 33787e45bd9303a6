package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/hist"
	rpio "github.com/matzehuels/ratioplot/pkg/io"
	"github.com/matzehuels/ratioplot/pkg/observability"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
)

// NewPlot constructs and styles the ratio plot for in without drawing it.
// Documents without a secondary histogram produce fit residuals.
func NewPlot(in *rpio.Input, opts Options) (*ratioplot.RatioPlot, error) {
	style := opts.style()
	plotOpts := style.PlotOptions(opts.Logger)
	plotOpts.Option = opts.Option

	var (
		rp  *ratioplot.RatioPlot
		err error
	)
	if in.Secondary != nil {
		rp, err = ratioplot.New(in.Primary, in.Secondary, plotOpts)
	} else {
		h, ok := in.Primary.(*hist.Histogram)
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingFit, "a stacked primary needs a secondary histogram")
		}
		rp, err = ratioplot.NewFitResidual(h, in.Fit, plotOpts)
	}
	if err != nil {
		return nil, err
	}

	rp.SetAxisTitles(in.XTitle, in.YTitle, "")
	if err := style.Apply(rp); err != nil {
		return nil, err
	}
	if err := rp.SetSurfaceSize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	return rp, nil
}

// Build constructs the plot and draws its scene.
func Build(ctx context.Context, in *rpio.Input, opts Options) (*ratioplot.RatioPlot, *ratioplot.Scene, error) {
	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, opts.Option)
	start := time.Now()

	rp, scene, err := build(in, opts)

	points := 0
	if rp != nil {
		points = rp.RatioSeries().Len()
	}
	hooks.OnComputeComplete(ctx, opts.Option, points, time.Since(start), err)
	return rp, scene, err
}

func build(in *rpio.Input, opts Options) (*ratioplot.RatioPlot, *ratioplot.Scene, error) {
	rp, err := NewPlot(in, opts)
	if err != nil {
		return nil, nil, err
	}
	scene, err := rp.Draw(opts.DrawOption)
	if err != nil {
		return nil, nil, err
	}
	if in.Title != "" {
		scene.Title = in.Title
	}
	return rp, scene, nil
}
