package layout

import (
	"github.com/matzehuels/ratioplot/pkg/errors"
)

// Observer receives the notifications a host event loop dispatches when
// the user interacts with a region.
type Observer interface {
	// OnRangeChanged is called after a region's visible range changed.
	OnRangeChanged()
	// OnRegionResized is called after a region's bounds or margins changed.
	OnRegionResized()
}

// Region is one drawing area of the surface.
//
// The setters model host interaction (dragging an edge, zooming) and notify
// the observer synchronously after the change is applied.
type Region struct {
	name     string
	bounds   Rect
	margins  Margins
	x, y     Range
	observer Observer
}

// NewRegion creates a region with the given bounds and no margins.
func NewRegion(name string, bounds Rect) *Region {
	return &Region{name: name, bounds: bounds}
}

// Observe attaches o. A nil observer silences notifications.
func (r *Region) Observe(o Observer) { r.observer = o }

// Name returns the region name.
func (r *Region) Name() string { return r.name }

// Bounds returns the region's rectangle on the surface.
func (r *Region) Bounds() Rect { return r.bounds }

// Margins returns the region's margins.
func (r *Region) Margins() Margins { return r.margins }

// XRange returns the visible horizontal world range.
func (r *Region) XRange() Range { return r.x }

// YRange returns the visible vertical world range.
func (r *Region) YRange() Range { return r.y }

// Frame returns the plotted area: the bounds shrunk by the margins.
func (r *Region) Frame() Rect {
	b, m := r.bounds, r.margins
	return Rect{
		Left:   b.Left + m.Left*b.Width(),
		Right:  b.Right - m.Right*b.Width(),
		Bottom: b.Bottom + m.Bottom*b.Height(),
		Top:    b.Top - m.Top*b.Height(),
	}
}

// ToSurface maps a world point into surface coordinates.
func (r *Region) ToSurface(x, y float64) (sx, sy float64) {
	return r.XToSurface(x), r.YToSurface(y)
}

// XToSurface maps a world x into surface coordinates.
func (r *Region) XToSurface(x float64) float64 {
	f := r.Frame()
	if r.x.Span() == 0 {
		return f.Left
	}
	return f.Left + (x-r.x.Min)/r.x.Span()*f.Width()
}

// YToSurface maps a world y into surface coordinates.
func (r *Region) YToSurface(y float64) float64 {
	f := r.Frame()
	if r.y.Span() == 0 {
		return f.Bottom
	}
	return f.Bottom + (y-r.y.Min)/r.y.Span()*f.Height()
}

// SetBounds moves the region and notifies OnRegionResized.
func (r *Region) SetBounds(b Rect) {
	if b.Equal(r.bounds) {
		return
	}
	r.bounds = b
	if r.observer != nil {
		r.observer.OnRegionResized()
	}
}

// SetMargins changes the margins and notifies OnRegionResized. Margins that
// would leave no plotted area are rejected.
func (r *Region) SetMargins(m Margins) error {
	if err := validateMargins(r.name, m); err != nil {
		return err
	}
	if m == r.margins {
		return nil
	}
	r.margins = m
	if r.observer != nil {
		r.observer.OnRegionResized()
	}
	return nil
}

// SetXRange zooms the horizontal range and notifies OnRangeChanged.
func (r *Region) SetXRange(x Range) {
	if x.Equal(r.x) {
		return
	}
	r.x = x
	if r.observer != nil {
		r.observer.OnRangeChanged()
	}
}

// SetYRange zooms the vertical range and notifies OnRangeChanged.
func (r *Region) SetYRange(y Range) {
	if y.Equal(r.y) {
		return
	}
	r.y = y
	if r.observer != nil {
		r.observer.OnRangeChanged()
	}
}

func validateMargins(name string, m Margins) error {
	for _, v := range []float64{m.Top, m.Bottom, m.Left, m.Right} {
		if err := errors.ValidateMargin(name+" margin", v); err != nil {
			return err
		}
	}
	if m.Top+m.Bottom >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "%s: top+bottom margins %v leave no plotted height", name, m.Top+m.Bottom)
	}
	if m.Left+m.Right >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "%s: left+right margins %v leave no plotted width", name, m.Left+m.Right)
	}
	return nil
}
