// Package hist provides the binned data a ratio plot compares.
//
// A [Histogram] is a one-dimensional set of bins with contents, optional
// sums of squared weights and an optional attached fit [Model]. A [Stack]
// is an ordered collection of histograms sharing one binning, drawn on top
// of each other.
//
// The comparison engine never cares which of the two it is looking at: both
// satisfy [Drawable], which exposes the binning, point evaluation and the
// summed histogram.
//
//	h := hist.MustNew("data", []float64{0, 1, 2, 3})
//	h.Fill(0.5, 1)
//	st, _ := hist.NewStack("mc", bkg, sig)
//	var d hist.Drawable = st
//	total := d.Total()
package hist
