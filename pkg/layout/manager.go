package layout

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ratioplot/pkg/errors"
)

// DefaultSurfaceSize is the edge length in pixels of the square surface
// assumed until the host reports its real size.
const DefaultSurfaceSize = 600

// Manager partitions the surface into the upper, lower and overlay regions
// and keeps their margins consistent.
//
// Every public mutation runs as a single guarded pass. Region notifications
// fired from inside a pass come back through the observer and are dropped
// by the guard.
type Manager struct {
	geom          Geometry
	width, height float64

	upper, lower, overlay *Region

	guard    *Guard
	logger   *log.Logger
	onChange func()
}

// NewManager creates the three regions for geom. Invalid geometry falls
// back to [DefaultGeometry]. A nil logger discards output.
func NewManager(geom Geometry, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := geom.Validate(); err != nil {
		logger.Warn("invalid geometry, using defaults", "error", err)
		geom = DefaultGeometry()
	}
	m := &Manager{
		geom:    geom,
		width:   DefaultSurfaceSize,
		height:  DefaultSurfaceSize,
		upper:   NewRegion("upper", Rect{}),
		lower:   NewRegion("lower", Rect{}),
		overlay: NewRegion("overlay", Rect{Left: 0, Right: 1, Bottom: 0, Top: 1}),
		guard:   &Guard{},
		logger:  logger,
	}
	m.overlay.x = Range{Min: 0, Max: 1}
	m.overlay.y = Range{Min: 0, Max: 1}
	m.applyPads()
	m.applyMargins()
	return m
}

// Observe attaches o to the upper and lower regions.
func (m *Manager) Observe(o Observer) {
	m.upper.Observe(o)
	m.lower.Observe(o)
}

// OnChange registers fn to run at the end of every pass that changed the
// geometry, still inside the guard.
func (m *Manager) OnChange(fn func()) { m.onChange = fn }

// Upper returns the upper region.
func (m *Manager) Upper() *Region { return m.upper }

// Lower returns the lower region.
func (m *Manager) Lower() *Region { return m.lower }

// Overlay returns the transparent full-surface region.
func (m *Manager) Overlay() *Region { return m.overlay }

// Guard returns the guard shared by all synchronization passes.
func (m *Manager) Guard() *Guard { return m.guard }

// Geometry returns a snapshot of the current geometry.
func (m *Manager) Geometry() Geometry { return m.geom }

// SplitFraction returns the boundary between the regions.
func (m *Manager) SplitFraction() float64 { return m.geom.SplitFraction }

// SeparationMargin returns the absolute gap between the plotted areas.
func (m *Manager) SeparationMargin() float64 { return m.geom.SeparationMargin() }

// SurfaceSize returns the surface size in pixels.
func (m *Manager) SurfaceSize() (w, h float64) { return m.width, m.height }

// SetSplitFraction moves the boundary between the regions. Values outside
// [MinSplitFraction, MaxSplitFraction], or too close to the inset for a
// region to keep MinRegionHeight, are clamped. Stored margins are not
// touched, so the gap between the plotted areas keeps its proportions.
func (m *Manager) SetSplitFraction(sf float64) {
	if math.IsNaN(sf) {
		m.logger.Warn("ignoring split fraction", "value", sf)
		return
	}
	if c := m.geom.ClampSplit(sf); c != sf {
		m.logger.Debug("clamped split fraction", "requested", sf, "applied", c)
		sf = c
	}
	m.layout(func(g *Geometry) { g.SplitFraction = sf })
}

// SetUpTopMargin sets the top margin of the upper region.
func (m *Manager) SetUpTopMargin(v float64) error {
	return m.update(func(g *Geometry) { g.UpTop = v })
}

// SetUpBottomMargin sets the bottom margin of the upper region.
func (m *Manager) SetUpBottomMargin(v float64) error {
	return m.update(func(g *Geometry) { g.UpBottom = v })
}

// SetLowTopMargin sets the top margin of the lower region.
func (m *Manager) SetLowTopMargin(v float64) error {
	return m.update(func(g *Geometry) { g.LowTop = v })
}

// SetLowBottomMargin sets the bottom margin of the lower region.
func (m *Manager) SetLowBottomMargin(v float64) error {
	return m.update(func(g *Geometry) { g.LowBottom = v })
}

// SetLeftMargin sets the left margin of both regions.
func (m *Manager) SetLeftMargin(v float64) error {
	return m.update(func(g *Geometry) { g.Left = v })
}

// SetRightMargin sets the right margin of both regions.
func (m *Manager) SetRightMargin(v float64) error {
	return m.update(func(g *Geometry) { g.Right = v })
}

// SetSeparationMargin sets the absolute gap between the plotted areas by
// rewriting the upper bottom and lower top margins.
func (m *Manager) SetSeparationMargin(v float64) error {
	if err := errors.ValidateMargin("separation margin", v); err != nil {
		return err
	}
	return m.update(func(g *Geometry) { *g = g.WithSeparationMargin(v) })
}

// SetGeometry replaces the whole geometry at once.
func (m *Manager) SetGeometry(geom Geometry) error {
	geom.SplitFraction = geom.ClampSplit(geom.SplitFraction)
	return m.update(func(g *Geometry) { *g = geom })
}

// SetSurfaceSize records the surface size in pixels. The horizontal inset
// depends on the aspect ratio.
func (m *Manager) SetSurfaceSize(w, h float64) error {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "surface size %vx%v must be positive", w, h)
	}
	m.guard.Run(Layout, func() {
		m.width, m.height = w, h
		m.applyPads()
		m.changed()
	})
	return nil
}

// SyncMargins reconciles the geometry after the host resized a region or
// dragged one of its margins. Whichever region moved away from the stored
// geometry wins: its split position and margins are adopted and re-applied
// to both regions. It reports false when dropped by the guard.
func (m *Manager) SyncMargins() bool {
	ran := m.guard.Run(RecomputingGeometry, func() {
		m.adoptSplit()
		m.adoptMargins()
		m.applyPads()
		m.applyMargins()
		m.changed()
	})
	if !ran {
		m.logger.Debug("dropped nested resize", "phase", m.guard.Phase())
	}
	return ran
}

func (m *Manager) adoptSplit() {
	sf := m.geom.SplitFraction
	switch {
	case !near(m.upper.bounds.Bottom, sf):
		m.geom.SplitFraction = m.geom.ClampSplit(m.upper.bounds.Bottom)
	case !near(m.lower.bounds.Top, sf):
		m.geom.SplitFraction = m.geom.ClampSplit(m.lower.bounds.Top)
	}
}

func (m *Manager) adoptMargins() {
	up, low, g := m.upper.margins, m.lower.margins, &m.geom

	// Shared sides: the upper region is checked first.
	switch {
	case !near(up.Left, g.Left):
		g.Left = up.Left
	case !near(low.Left, g.Left):
		g.Left = low.Left
	}
	switch {
	case !near(up.Right, g.Right):
		g.Right = up.Right
	case !near(low.Right, g.Right):
		g.Right = low.Right
	}

	g.UpTop, g.UpBottom = up.Top, up.Bottom
	g.LowTop, g.LowBottom = low.Top, low.Bottom
}

// layout runs a caller-initiated change that cannot fail.
func (m *Manager) layout(fn func(g *Geometry)) {
	m.guard.Run(Layout, func() {
		fn(&m.geom)
		m.applyPads()
		m.applyMargins()
		m.changed()
	})
}

// update applies fn to a copy of the geometry and commits it only if the
// result is valid.
func (m *Manager) update(fn func(g *Geometry)) error {
	next := m.geom
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	m.layout(func(g *Geometry) { *g = next })
	return nil
}

func (m *Manager) applyPads() {
	pm, sf := m.geom.Inset, m.geom.SplitFraction
	f := m.height / m.width
	m.upper.SetBounds(Rect{Left: pm * f, Right: 1 - pm*f, Bottom: sf, Top: 1 - pm})
	m.lower.SetBounds(Rect{Left: pm * f, Right: 1 - pm*f, Bottom: pm, Top: sf})
}

func (m *Manager) applyMargins() {
	// Both sets were validated when committed to m.geom.
	if err := m.upper.SetMargins(m.geom.UpperMargins()); err != nil {
		m.logger.Error("apply upper margins", "error", err)
	}
	if err := m.lower.SetMargins(m.geom.LowerMargins()); err != nil {
		m.logger.Error("apply lower margins", "error", err)
	}
}

func (m *Manager) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}
