// Package ratioplot draws a primary histogram against a reference in two
// stacked regions: the distributions on top and their comparison below.
//
// A [RatioPlot] ties together the comparison engine ([compare.Compute]),
// the confidence bands ([compare.Bands]), the region layout
// ([layout.Manager]) and the shared axes ([axis.Coordinator]). It is built
// once per comparison; the lower plot is computed on the first [RatioPlot.Draw]
// and only recomputed when the scale factors, the fit or the confidence
// levels change.
//
// # Options
//
// The option string passed at construction selects the comparison:
//
//	divsym   plain ratio with quotient errors (default)
//	pois     ratio with asymmetric Poisson errors
//	diff     difference
//	diffsig  difference over combined error
//	errasym  asymmetric bin errors
//	errfunc  errors from the fit function (fit residuals only)
//
// The string passed to Draw toggles decorations:
//
//	grid / nogrid          gridlines in the lower region
//	confint / noconfint    confidence bands
//	hideup / hidelow       hide a colliding y label (conditional)
//	fhideup / fhidelow     always hide it
//	nohide                 never hide
//
// Keywords are case-insensitive and may appear anywhere in the string.
//
// # Events
//
// A RatioPlot observes both regions. When the host resizes or zooms a
// region it calls the region's setters, which call back into
// [RatioPlot.OnRegionResized] and [RatioPlot.OnRangeChanged]; the plot
// reconciles the other region and rebuilds the axis decorations.
//
//	rp, err := ratioplot.New(data, mc, ratioplot.Options{Option: "pois"})
//	if err != nil {
//		return err
//	}
//	rp.SetSplitFraction(0.35)
//	scene, err := rp.Draw("grid fhidelow")
package ratioplot
