package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
)

const (
	tickLength   = 0.012 // fraction of the surface height
	markerRadius = 3.0
	strokeWidth  = 1.5
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	font       string
	background drawing.Color
	title      bool
}

// WithFont sets the font family of labels and titles.
func WithFont(family string) SVGOption { return func(r *svgRenderer) { r.font = family } }

// WithBackground sets the surface fill.
func WithBackground(c drawing.Color) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithoutTitle suppresses the plot title.
func WithoutTitle() SVGOption { return func(r *svgRenderer) { r.title = false } }

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s *ratioplot.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{font: "Helvetica, Arial, sans-serif", background: drawing.ColorWhite, title: true}
	for _, opt := range opts {
		opt(&r)
	}
	c := canvas{w: s.Width, h: s.Height}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		c.w, c.h, c.w, c.h, escapeXML(r.font))
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" %s/>`+"\n", c.w, c.h, fill(r.background))

	renderPanel(&buf, c, "upper", s.Upper)
	renderPanel(&buf, c, "lower", s.Lower)
	for _, a := range s.Axes {
		renderAxis(&buf, c, a)
	}
	if r.title && s.Title != "" {
		x, y := c.pt(0.5, s.Upper.Bounds.Top)
		fmt.Fprintf(&buf, `  <text class="title" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="hanging" font-size="%.1f">%s</text>`+"\n",
			x, y+4, c.h*axis.DefaultTitleSize, escapeXML(s.Title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// canvas maps normalized surface coordinates to SVG pixels (y down).
type canvas struct{ w, h float64 }

func (c canvas) pt(x, y float64) (float64, float64) { return x * c.w, (1 - y) * c.h }

func renderPanel(buf *bytes.Buffer, c canvas, id string, p ratioplot.Panel) {
	f := p.Frame
	x, y := c.pt(f.Left, f.Top)
	fmt.Fprintf(buf, `  <clipPath id="clip-%s"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
		id, x, y, f.Width()*c.w, f.Height()*c.h)
	fmt.Fprintf(buf, `  <g class="panel" id="%s" clip-path="url(#clip-%s)">`+"\n", id, id)
	for _, l := range p.Layers {
		renderLayer(buf, c, p, l)
	}
	buf.WriteString("  </g>\n")
}

func renderLayer(buf *bytes.Buffer, c canvas, p ratioplot.Panel, l ratioplot.Layer) {
	// Keep infinite error bars and values on the surface.
	lo, hi := p.Y.Min-p.Y.Span(), p.Y.Max+p.Y.Span()
	at := func(x, y float64) (float64, float64) {
		return c.pt(p.ToSurface(x, clamp(y, lo, hi)))
	}

	switch l.Kind {
	case ratioplot.Step:
		renderStep(buf, l, at, p.Y.Min)
	case ratioplot.BandFill:
		for _, pt := range l.Points {
			x1, y1 := at(pt.XLow, pt.High())
			x2, y2 := at(pt.XHigh, pt.Low())
			fmt.Fprintf(buf, `    <rect class="band" x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`+"\n",
				x1, y1, x2-x1, y2-y1, fill(l.Fill))
		}
	case ratioplot.Gridline:
		if len(l.Points) < 2 {
			return
		}
		x1, y1 := at(l.Points[0].X, l.Points[0].Y)
		x2, y2 := at(l.Points[len(l.Points)-1].X, l.Points[len(l.Points)-1].Y)
		fmt.Fprintf(buf, `    <line class="gridline" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s stroke-dasharray="4 3"/>`+"\n",
			x1, y1, x2, y2, stroke(l.Stroke))
	case ratioplot.Line:
		buf.WriteString(`    <polyline class="line" fill="none" ` + stroke(l.Stroke) + fmt.Sprintf(` stroke-width="%.1f" points="`, strokeWidth))
		for i, pt := range l.Points {
			if !finite(pt.Y) {
				continue
			}
			x, y := at(pt.X, pt.Y)
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "%.2f,%.2f", x, y)
		}
		buf.WriteString(`"/>` + "\n")
		if l.ErrorBars {
			renderErrorBars(buf, l, at)
		}
	default:
		if l.ErrorBars {
			renderErrorBars(buf, l, at)
		}
		for _, pt := range l.Points {
			x, y := at(pt.X, pt.Y)
			fmt.Fprintf(buf, `    <circle class="marker" cx="%.2f" cy="%.2f" r="%.1f" %s/>`+"\n", x, y, markerRadius, fill(l.Stroke))
		}
	}
}

func renderStep(buf *bytes.Buffer, l ratioplot.Layer, at func(x, y float64) (float64, float64), base float64) {
	if len(l.Points) == 0 {
		return
	}
	var d bytes.Buffer
	x, y := at(l.Points[0].XLow, base)
	fmt.Fprintf(&d, "M%.2f %.2f", x, y)
	for _, pt := range l.Points {
		x1, y1 := at(pt.XLow, pt.Y)
		x2, _ := at(pt.XHigh, pt.Y)
		fmt.Fprintf(&d, " L%.2f %.2f L%.2f %.2f", x1, y1, x2, y1)
	}
	last := l.Points[len(l.Points)-1]
	x, y = at(last.XHigh, base)
	fmt.Fprintf(&d, " L%.2f %.2f", x, y)

	paint := `fill="none"`
	if !l.Fill.IsZero() {
		paint = fill(l.Fill)
	}
	fmt.Fprintf(buf, `    <path class="step" d="%s" %s %s stroke-width="%.1f"/>`+"\n", d.String(), paint, stroke(l.Stroke), strokeWidth)
}

func renderErrorBars(buf *bytes.Buffer, l ratioplot.Layer, at func(x, y float64) (float64, float64)) {
	for _, pt := range l.Points {
		x, y1 := at(pt.X, pt.Low())
		_, y2 := at(pt.X, pt.High())
		fmt.Fprintf(buf, `    <line class="error" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s/>`+"\n", x, y1, x, y2, stroke(l.Stroke))
		if pt.XHigh > pt.XLow {
			xl, y := at(pt.XLow, pt.Y)
			xh, _ := at(pt.XHigh, pt.Y)
			fmt.Fprintf(buf, `    <line class="error" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s/>`+"\n", xl, y, xh, y, stroke(l.Stroke))
		}
	}
}

func renderAxis(buf *bytes.Buffer, c canvas, a axis.GAxis) {
	x1, y1 := c.pt(a.X1, a.Y1)
	x2, y2 := c.pt(a.X2, a.Y2)
	fmt.Fprintf(buf, `  <g class="axis" id="%s">`+"\n", a.Name)
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#000"/>`+"\n", x1, y1, x2, y2)

	tl := tickLength * c.h
	labelPx := a.LabelSize * c.h
	labels := a.Labels()
	for i := range a.Ticks {
		pos := a.TickPosition(i)
		var tx, ty, dx, dy float64
		if a.Orientation == axis.Horizontal {
			tx, ty = c.pt(pos, a.Y1)
			dy = -tl // inward is up for the bottom axis
			if a.Mirror {
				dy = tl
			}
		} else {
			tx, ty = c.pt(a.X1, pos)
			dx = tl
			if a.Mirror {
				dx = -tl
			}
		}
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#000"/>`+"\n", tx, ty, tx+dx, ty+dy)

		if i >= len(labels) || labels[i] == "" {
			continue
		}
		if a.Orientation == axis.Horizontal {
			fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="hanging" font-size="%.1f">%s</text>`+"\n",
				tx, ty+tl/2, labelPx, escapeXML(labels[i]))
		} else {
			fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="middle" font-size="%.1f">%s</text>`+"\n",
				tx-tl/2, ty, labelPx, escapeXML(labels[i]))
		}
	}

	if a.LabelsVisible && a.Title != "" {
		titlePx := a.TitleSize * c.h
		if a.Orientation == axis.Horizontal {
			fmt.Fprintf(buf, `    <text class="axis-title" x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="hanging" font-size="%.1f">%s</text>`+"\n",
				x2, y2+labelPx+tl, titlePx, escapeXML(a.Title))
		} else {
			tx := x1 - 3.5*labelPx
			fmt.Fprintf(buf, `    <text class="axis-title" x="%.2f" y="%.2f" text-anchor="end" font-size="%.1f" transform="rotate(-90 %.2f %.2f)">%s</text>`+"\n",
				tx, y2, titlePx, tx, y2, escapeXML(a.Title))
		}
	}
	buf.WriteString("  </g>\n")
}

func fill(c drawing.Color) string {
	return fmt.Sprintf(`fill="%s" fill-opacity="%.2f"`, hex(c), float64(c.A)/255)
}

func stroke(c drawing.Color) string {
	return fmt.Sprintf(`stroke="%s" stroke-opacity="%.2f"`, hex(c), float64(c.A)/255)
}

func hex(c drawing.Color) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
