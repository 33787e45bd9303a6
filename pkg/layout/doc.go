// Package layout owns the geometry of a ratio plot's drawing surface.
//
// # Regions
//
// The surface is split at [Geometry.SplitFraction] into an upper [Region]
// covering [split, 1] and a lower one covering [0, split]. A third,
// transparent overlay region spans the whole surface; shared decorations
// (axes, labels) are placed on it so they are not clipped by either region.
//
// All coordinates are normalized surface coordinates in [0, 1] with the
// origin at the bottom left. Margins are fractions of their region's own
// width or height.
//
// # Synchronization
//
// Regions notify an [Observer] whenever the host resizes them, edits a
// margin or zooms their visible range. The [Manager] reacts by adopting the
// change and re-applying it to both regions, which itself fires more
// notifications. A shared [Guard] breaks that loop: while one pass is
// running, every nested trigger is dropped (not queued).
//
//	m := layout.NewManager(layout.DefaultGeometry(), nil)
//	m.Observe(plot)
//	m.SetSplitFraction(0.25)
//	frame := m.Lower().Frame()
package layout
