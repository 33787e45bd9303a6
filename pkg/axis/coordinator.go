package axis

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ratioplot/pkg/layout"
)

// Coordinator keeps the shared x axis and the per-region y axes in step
// with the regions of a layout.Manager.
type Coordinator struct {
	manager  *layout.Manager
	x        Axis
	upY      Axis
	lowY     Axis
	mode     HideLabelMode
	measurer TextMeasurer
	logger   *log.Logger
	onChange func()
}

// NewCoordinator binds the axes to the manager's regions and pushes their
// visible ranges. A nil logger discards output.
func NewCoordinator(m *layout.Manager, x, upY, lowY Axis, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	c := &Coordinator{
		manager:  m,
		x:        x,
		upY:      upY,
		lowY:     lowY,
		measurer: BasicMeasurer{},
		logger:   logger,
	}
	c.guarded(c.push)
	return c
}

// OnChange registers fn to run at the end of every pass that changed a
// range, still inside the guard.
func (c *Coordinator) OnChange(fn func()) { c.onChange = fn }

// SetMeasurer replaces the label measurer.
func (c *Coordinator) SetMeasurer(tm TextMeasurer) {
	if tm == nil {
		tm = BasicMeasurer{}
	}
	c.measurer = tm
}

// SetHideLabelMode selects the label collision policy.
func (c *Coordinator) SetHideLabelMode(m HideLabelMode) { c.mode = m }

// HideLabelMode returns the label collision policy.
func (c *Coordinator) HideLabelMode() HideLabelMode { return c.mode }

// XAxis returns a snapshot of the shared x axis.
func (c *Coordinator) XAxis() Axis { return c.x }

// UpYAxis returns a snapshot of the upper y axis.
func (c *Coordinator) UpYAxis() Axis { return c.upY }

// LowYAxis returns a snapshot of the lower y axis.
func (c *Coordinator) LowYAxis() Axis { return c.lowY }

// SetTitles sets the x, upper y and lower y titles. Empty strings keep the
// current title.
func (c *Coordinator) SetTitles(x, upY, lowY string) {
	for _, t := range []struct {
		axis  *Axis
		title string
	}{{&c.x, x}, {&c.upY, upY}, {&c.lowY, lowY}} {
		if t.title != "" {
			t.axis.Title = t.title
		}
	}
}

// SetUpYFull replaces the upper y axis' full range.
func (c *Coordinator) SetUpYFull(r layout.Range) bool {
	return c.guarded(func() { c.upY.SetFull(r); c.push() })
}

// SetLowYFull replaces the lower y axis' full range.
func (c *Coordinator) SetLowYFull(r layout.Range) bool {
	return c.guarded(func() { c.lowY.SetFull(r); c.push() })
}

// Zoom sets the shared visible x range and pushes it to both regions.
func (c *Coordinator) Zoom(r layout.Range) bool {
	return c.guarded(func() {
		if !c.x.SetRange(r) {
			c.logger.Debug("ignored empty zoom", "min", r.Min, "max", r.Max)
		}
		c.push()
	})
}

// SyncRanges reconciles the shared x axis with the regions after the host
// zoomed one of them. The region whose visible x range differs from the
// shared axis wins, the upper region first. Y ranges are adopted per region.
// It reports false when dropped by the guard.
func (c *Coordinator) SyncRanges() bool {
	ran := c.guarded(func() {
		up, low := c.manager.Upper(), c.manager.Lower()
		switch {
		case !up.XRange().Equal(c.x.Visible):
			c.x.SetRange(up.XRange())
		case !low.XRange().Equal(c.x.Visible):
			c.x.SetRange(low.XRange())
		}
		c.upY.SetRange(up.YRange())
		c.lowY.SetRange(low.YRange())
		c.push()
	})
	if !ran {
		c.logger.Debug("dropped nested range sync", "phase", c.manager.Guard().Phase())
	}
	return ran
}

// Unzoom resets the shared x axis to its full range on both regions.
func (c *Coordinator) Unzoom() bool {
	return c.guarded(func() {
		c.x.UnZoom()
		c.push()
	})
}

func (c *Coordinator) guarded(fn func()) bool {
	return c.manager.Guard().Run(layout.RecomputingRange, func() {
		fn()
		if c.onChange != nil {
			c.onChange()
		}
	})
}

// push writes the axes' visible ranges to the regions.
func (c *Coordinator) push() {
	up, low := c.manager.Upper(), c.manager.Lower()
	up.SetXRange(c.x.Visible)
	low.SetXRange(c.x.Visible)
	up.SetYRange(c.upY.Visible)
	low.SetYRange(c.lowY.Visible)
}

// Decorations returns the eight graphical axes boxing both regions:
// upper x, upper x mirror, upper y, upper y mirror, then the same for the
// lower region.
func (c *Coordinator) Decorations() []GAxis {
	upF, lowF := c.manager.Upper().Frame(), c.manager.Lower().Frame()
	xt, upT, lowT := c.x.Ticks(), c.upY.Ticks(), c.lowY.Ticks()

	upX := along("upper-x", Horizontal, upF, c.x.Visible, xt, false)
	upXM := along("upper-x-mirror", Horizontal, upF, c.x.Visible, xt, true)
	upY := along("upper-y", Vertical, upF, c.upY.Visible, upT, false)
	upYM := along("upper-y-mirror", Vertical, upF, c.upY.Visible, upT, true)
	lowX := along("lower-x", Horizontal, lowF, c.x.Visible, xt, false)
	lowXM := along("lower-x-mirror", Horizontal, lowF, c.x.Visible, xt, true)
	lowY := along("lower-y", Vertical, lowF, c.lowY.Visible, lowT, false)
	lowYM := along("lower-y-mirror", Vertical, lowF, c.lowY.Visible, lowT, true)

	c.label(&upY, c.upY)
	c.label(&lowY, c.lowY)
	c.label(&lowX, c.x)
	c.hideLabels(&upY, &lowY)

	return []GAxis{upX, upXM, upY, upYM, lowX, lowXM, lowY, lowYM}
}

func (c *Coordinator) label(g *GAxis, a Axis) {
	g.LabelsVisible = true
	g.LabelSize = a.LabelSize
	g.Title = a.Title
	g.TitleSize = a.TitleSize
}

func (c *Coordinator) hideLabels(up, low *GAxis) {
	if len(up.Ticks) == 0 || len(low.Ticks) == 0 {
		return
	}
	top := len(low.Ticks) - 1
	switch c.mode {
	case NoHide:
	case ForceHideUp:
		up.HiddenLabel = 0
	case ForceHideLow:
		low.HiddenLabel = top
	case HideUp, HideLow:
		if !c.LabelsCollide(*up, *low) {
			return
		}
		if c.mode == HideUp {
			up.HiddenLabel = 0
		} else {
			low.HiddenLabel = top
		}
		c.logger.Debug("hid colliding label", "mode", c.mode)
	}
}

// LabelsCollide reports whether the lowest label of up and the highest
// label of low overlap vertically at the current surface size. Labels are
// centred on their ticks.
func (c *Coordinator) LabelsCollide(up, low GAxis) bool {
	if len(up.Ticks) == 0 || len(low.Ticks) == 0 {
		return false
	}
	_, h := c.manager.SurfaceSize()
	top := len(low.Ticks) - 1

	_, upH := c.measurer.Measure(up.Ticks[0].Label, up.LabelSize*h)
	_, lowH := c.measurer.Measure(low.Ticks[top].Label, low.LabelSize*h)
	gap := (up.TickPosition(0) - low.TickPosition(top)) * h
	return gap < (upH+lowH)/2
}
