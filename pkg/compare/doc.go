// Package compare computes the lower panel of a ratio plot.
//
// [Compute] turns a primary series and either a secondary histogram or a
// fitted model into a [Series] using one of five [Mode]s. [Bands] derives the
// nested confidence bands drawn around the neutral line, and [Gridlines]
// plans the horizontal reference lines.
//
// Bins for which the comparison is undefined (a zero denominator, a zero
// error in a significance mode) are left out of the series rather than set
// to zero or NaN, so a renderer never sees an undefined point.
//
// The statistical estimators are injected through [Params] and [Bands];
// nil selects the defaults from package stats.
package compare
