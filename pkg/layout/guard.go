package layout

import "fmt"

// Phase is the state of the synchronization state machine.
type Phase int

const (
	// Idle accepts a new pass.
	Idle Phase = iota
	// Layout is a caller-initiated geometry change (split fraction, margins).
	Layout
	// RecomputingRange handles a zoom or unzoom of either region.
	RecomputingRange
	// RecomputingGeometry handles a region resize or margin drag.
	RecomputingGeometry
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Layout:
		return "layout"
	case RecomputingRange:
		return "recomputing-range"
	case RecomputingGeometry:
		return "recomputing-geometry"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Guard rejects nested passes. It is not safe for concurrent use; the whole
// ratio plot is driven from a single event loop.
type Guard struct {
	phase   Phase
	dropped int
}

// Run executes fn in phase p and returns true, unless another pass is in
// progress, in which case fn is dropped and Run returns false.
func (g *Guard) Run(p Phase, fn func()) bool {
	if g.phase != Idle {
		g.dropped++
		return false
	}
	g.phase = p
	defer func() { g.phase = Idle }()
	fn()
	return true
}

// Phase returns the current phase.
func (g *Guard) Phase() Phase { return g.phase }

// Dropped returns how many nested triggers have been dropped so far.
func (g *Guard) Dropped() int { return g.dropped }
