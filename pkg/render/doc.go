// Package render turns ratio plot scenes into files.
//
// The [sink] subpackage writes a [ratioplot.Scene] as SVG or JSON. PNG and
// PDF are produced from the SVG by the external rsvg-convert tool (from
// librsvg) through [ToPNG] and [ToPDF]:
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/ratioplot/pkg/render/sink
// [ratioplot.Scene]: github.com/matzehuels/ratioplot/pkg/ratioplot#Scene
package render
