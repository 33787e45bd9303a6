// Package axis coordinates the axes of a ratio plot.
//
// One logical x [Axis] is shared by both regions; it is the single source of
// truth for the visible horizontal range. Each region owns its own y axis.
//
// The [Coordinator] keeps the regions' visible x ranges identical: when the
// host zooms either region, the one that moved away from the shared axis
// wins and its range is pushed to the other region in the same pass.
// Passes run inside the layout guard, so the notifications fired while
// pushing are dropped.
//
// [Coordinator.Decorations] returns the eight graphical axes ([GAxis]) that
// box both regions: x and y on each region, plus a mirrored copy of each on
// the opposite edge. Labels are only drawn on the lower x axis and on the
// two primary y axes. When the lowest upper y label and the highest lower y
// label would overlap across the region boundary, [HideLabelMode] decides
// which one is suppressed.
package axis
