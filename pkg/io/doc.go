// Package io reads and writes histogram documents, the input format of the
// ratioplot CLI and HTTP service.
//
// # Format
//
// A document holds a primary (a single histogram or a stack) and either a
// secondary histogram or a fit attached to the primary. JSON and YAML
// carry the same fields:
//
//	{
//	  "title": "m_{jj}",
//	  "x_title": "mass [GeV]",
//	  "primary": {"name": "data", "bins": {"n": 4, "lo": 0, "hi": 4},
//	              "counts": [12, 20, 27, 0]},
//	  "secondary": {"name": "mc", "bins": {"n": 4, "lo": 0, "hi": 4},
//	                "counts": [10, 20, 30, 5]}
//	}
//
// Binning is given either as explicit "edges" or as a uniform "bins"
// block. "sumw2" marks a weighted histogram. A fit is
// {"kind": "pol"|"gaus"|"expo", "params": [...]}:
//
//   - pol: coefficients p0, p1, ... of p0 + p1·x + ...
//   - gaus: amplitude, mean, sigma
//   - expo: constant, slope of exp(c + s·x)
//
// # Import
//
// Use [Import] for files (format chosen by extension) or [Read] for any
// io.Reader. Decoding errors carry INVALID_FORMAT; structural errors carry
// INVALID_INPUT or INCOMPATIBLE_BINNING.
//
// # Export
//
// [Write] encodes a [Document]; [FromHistogram] converts a histogram back
// into its document form, so an import/export round trip is lossless.
package io
