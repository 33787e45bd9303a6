package layout

import "math"

// eps is the tolerance for comparing normalized coordinates.
const eps = 1e-9

// Rect is an axis-aligned rectangle in normalized surface coordinates.
type Rect struct {
	Left, Right float64
	Bottom, Top float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Bottom + r.Top) / 2 }

// Equal compares two rectangles within eps.
func (r Rect) Equal(o Rect) bool {
	return near(r.Left, o.Left) && near(r.Right, o.Right) &&
		near(r.Bottom, o.Bottom) && near(r.Top, o.Top)
}

// Margins are fractions of a region's width (Left, Right) or height
// (Top, Bottom).
type Margins struct {
	Top, Bottom float64
	Left, Right float64
}

// Range is a closed interval in world (data) coordinates.
type Range struct {
	Min, Max float64
}

// Span returns Max − Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool { return r.Min == 0 && r.Max == 0 }

// Equal compares two ranges relative to their span.
func (r Range) Equal(o Range) bool {
	tol := eps * math.Max(1, math.Max(math.Abs(r.Span()), math.Abs(o.Span())))
	return math.Abs(r.Min-o.Min) <= tol && math.Abs(r.Max-o.Max) <= tol
}

func near(a, b float64) bool { return math.Abs(a-b) <= eps }
