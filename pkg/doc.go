// Package pkg provides the core libraries for ratioplot, a two-panel
// histogram comparison plot.
//
// # Overview
//
// A ratio plot draws a primary histogram (or a stack of histograms) with a
// secondary histogram or a fitted function in an upper region, and a derived
// comparison in a lower region that shares the x axis. The pkg directory is
// organized into four areas:
//
//  1. Domain logic: [hist], [stats], [compare], [layout], [axis], [ratioplot]
//  2. Input and styling: [io], [config]
//  3. Output: [render] and [render/sink]
//  4. Infrastructure: [pipeline], [cache], [server], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML document
//	         ↓
//	    [io] package (decode + validate into histograms and a fit)
//	         ↓
//	    [ratioplot] package (compare, bands, layout, shared axes)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/ratioplot/pkg/hist"
//	    "github.com/matzehuels/ratioplot/pkg/ratioplot"
//	    "github.com/matzehuels/ratioplot/pkg/render/sink"
//	)
//
//	data := hist.MustNew("data", hist.Uniform(20, 0, 10))
//	mc := hist.MustNew("mc", hist.Uniform(20, 0, 10))
//	// ... fill both
//
//	rp, _ := ratioplot.New(data, mc, ratioplot.Options{Option: "diffsig"})
//	scene, _ := rp.Draw("grid")
//	svg := sink.RenderSVG(scene)
//
// # Main Packages
//
// [hist] - Binned histograms with sum-of-weights-squared errors, stacks and
// fitted models.
//
// [stats] - Poisson confidence intervals and ratio error estimators.
//
// [compare] - The comparison series (ratio, difference, difference over
// error, fit residual), confidence bands and default gridlines.
//
// [layout] - Upper, lower and overlay regions, the split fraction and the
// margins, kept consistent through a re-entrancy guard.
//
// [axis] - The shared x axis and the eight graphical axes boxing both
// regions, including label hiding where the regions meet.
//
// [ratioplot] - The facade tying the above together.
//
// [pipeline] - Parse → build → render with artifact caching, shared by the
// CLI and the HTTP service.
package pkg
