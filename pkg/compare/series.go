package compare

import "math"

// Point is one entry of a comparison series.
type Point struct {
	X, XLow, XHigh  float64 // bin center and edges
	Y               float64
	ErrLow, ErrHigh float64
	// Ref is the reference count behind the point: the scaled denominator
	// or the fit value. Confidence bands are derived from it.
	Ref float64
}

// Low returns Y − ErrLow.
func (p Point) Low() float64 { return p.Y - p.ErrLow }

// High returns Y + ErrHigh.
func (p Point) High() float64 { return p.Y + p.ErrHigh }

// Series is the derived comparison series drawn in the lower region.
type Series struct {
	Mode      Mode
	ErrorMode ErrorMode
	Points    []Point
}

// Len returns the number of points.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Extent returns the smallest Low and the largest High over all points,
// ignoring infinite error bars. ok is false for an empty series.
func (s *Series) Extent() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range s.Points {
		if l := p.Low(); !math.IsInf(l, 0) {
			lo = math.Min(lo, l)
		}
		if h := p.High(); !math.IsInf(h, 0) {
			hi = math.Max(hi, h)
		}
	}
	return lo, hi, lo <= hi
}

// Band is a confidence band around the neutral line. Every point has Y at
// the neutral value; ErrLow/ErrHigh are the band's half-widths.
type Band struct {
	CL     float64
	Points []Point
}
