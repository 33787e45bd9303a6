// Package sink writes a ratio plot scene in an output format.
//
// [RenderSVG] draws both panels clipped to their frames, then the axis
// decorations on top so they are never clipped. [RenderPNG] and [RenderPDF]
// rasterize that SVG; [RenderJSON] dumps the scene for other front ends.
package sink
