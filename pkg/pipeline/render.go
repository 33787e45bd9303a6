package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/ratioplot/pkg/observability"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
	"github.com/matzehuels/ratioplot/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, scene *ratioplot.Scene, opts Options) (map[string][]byte, error) {
	svgOpts := opts.style().SVGOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, scene, format, svgOpts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, scene *ratioplot.Scene, format string, svgOpts []sink.SVGOption) (data []byte, err error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err) }()

	switch format {
	case FormatSVG:
		return sink.RenderSVG(scene, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, scene, sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		return sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(scene)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
