package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
)

// Terminal cells are roughly twice as tall as wide.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

type cell struct {
	r     rune
	style lipgloss.Style
}

// canvas rasterizes a scene onto a grid of terminal cells. Surface
// coordinates have their origin at the bottom left; rows count from the top.
type canvas struct {
	cols, rows int
	cells      [][]cell
	plain      lipgloss.Style
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: max(cols, 1), rows: max(rows, 1), plain: lipgloss.NewStyle()}
	c.cells = make([][]cell, c.rows)
	for i := range c.cells {
		c.cells[i] = make([]cell, c.cols)
		for j := range c.cells[i] {
			c.cells[i][j] = cell{r: ' ', style: c.plain}
		}
	}
	return c
}

func (c *canvas) col(sx float64) int { return int(math.Round(sx * float64(c.cols-1))) }
func (c *canvas) row(sy float64) int { return int(math.Round((1 - sy) * float64(c.rows-1))) }

func (c *canvas) set(col, row int, r rune, st lipgloss.Style) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] = cell{r: r, style: st}
}

func (c *canvas) text(col, row int, s string, st lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(col+i, row, r, st)
	}
}

func (c *canvas) hline(row, c1, c2 int, r rune, st lipgloss.Style) {
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	for col := c1; col <= c2; col++ {
		c.set(col, row, r, st)
	}
}

func (c *canvas) vline(col, r1, r2 int, r rune, st lipgloss.Style) {
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	for row := r1; row <= r2; row++ {
		c.set(col, row, r, st)
	}
}

// String renders the grid, one styled cell at a time.
func (c *canvas) String() string {
	var b strings.Builder
	for i, line := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range line {
			b.WriteString(cl.style.Render(string(cl.r)))
		}
	}
	return b.String()
}

// drawScene paints both panels and the axis decorations.
func (c *canvas) drawScene(s *ratioplot.Scene) {
	c.drawPanel(s.Upper)
	c.drawPanel(s.Lower)
	for _, a := range s.Axes {
		c.drawAxis(a)
	}
}

// panelPainter clips world points to one panel's frame.
type panelPainter struct {
	c *canvas
	p ratioplot.Panel
}

func (pp panelPainter) at(x, y float64) (col, row int, ok bool) {
	if !finite(x) || !finite(y) {
		return 0, 0, false
	}
	sx, sy := pp.p.ToSurface(x, y)
	f := pp.p.Frame
	sx = math.Min(math.Max(sx, f.Left), f.Right)
	sy = math.Min(math.Max(sy, f.Bottom), f.Top)
	return pp.c.col(sx), pp.c.row(sy), true
}

func (c *canvas) drawPanel(p ratioplot.Panel) {
	pp := panelPainter{c: c, p: p}
	for _, l := range p.Layers {
		switch l.Kind {
		case ratioplot.BandFill:
			st := colorStyle(l.Fill)
			for _, pt := range l.Points {
				c1, r1, ok1 := pp.at(pt.XLow, pt.High())
				c2, r2, ok2 := pp.at(pt.XHigh, pt.Low())
				if !ok1 || !ok2 {
					continue
				}
				for col := c1; col <= c2; col++ {
					c.vline(col, r1, r2, '░', st)
				}
			}
		case ratioplot.Gridline:
			if len(l.Points) == 2 {
				c1, row, ok1 := pp.at(l.Points[0].X, l.Points[0].Y)
				c2, _, ok2 := pp.at(l.Points[1].X, l.Points[1].Y)
				if ok1 && ok2 {
					c.hline(row, c1, c2, '┈', colorStyle(l.Stroke))
				}
			}
		case ratioplot.Step:
			c.drawStep(pp, l)
		case ratioplot.Markers:
			st := colorStyle(l.Stroke)
			for _, pt := range l.Points {
				col, row, ok := pp.at(pt.X, pt.Y)
				if !ok {
					continue
				}
				if l.ErrorBars {
					_, lo, okLo := pp.at(pt.X, pt.Low())
					_, hi, okHi := pp.at(pt.X, pt.High())
					if okLo && okHi {
						c.vline(col, hi, lo, '│', st)
					}
				}
				c.set(col, row, '●', st)
			}
		case ratioplot.Line:
			c.drawLine(pp, l)
		}
	}
}

func (c *canvas) drawStep(pp panelPainter, l ratioplot.Layer) {
	stroke := colorStyle(l.Stroke)
	fill := colorStyle(l.Fill)
	filled := l.Fill.A > 0
	base := pp.p.Y.Min
	if pp.p.Y.Min <= 0 && pp.p.Y.Max >= 0 {
		base = 0
	}
	for _, pt := range l.Points {
		c1, row, ok1 := pp.at(pt.XLow, pt.Y)
		c2, _, ok2 := pp.at(pt.XHigh, pt.Y)
		_, baseRow, okB := pp.at(pt.X, base)
		if !ok1 || !ok2 {
			continue
		}
		if filled && okB && row < baseRow {
			for col := c1; col <= c2; col++ {
				c.vline(col, row+1, baseRow, '▒', fill)
			}
		}
		c.hline(row, c1, c2, '▔', stroke)
	}
}

func (c *canvas) drawLine(pp panelPainter, l ratioplot.Layer) {
	st := colorStyle(l.Stroke)
	for i := 1; i < len(l.Points); i++ {
		a, b := l.Points[i-1], l.Points[i]
		c1, r1, ok1 := pp.at(a.X, a.Y)
		c2, r2, ok2 := pp.at(b.X, b.Y)
		if !ok1 || !ok2 {
			continue
		}
		steps := max(abs(c2-c1), abs(r2-r1), 1)
		for k := 0; k <= steps; k++ {
			t := float64(k) / float64(steps)
			col := c1 + int(math.Round(t*float64(c2-c1)))
			row := r1 + int(math.Round(t*float64(r2-r1)))
			c.set(col, row, '•', st)
		}
	}
}

func (c *canvas) drawAxis(a axis.GAxis) {
	st := StyleDim
	c1, r1 := c.col(a.X1), c.row(a.Y1)
	c2, r2 := c.col(a.X2), c.row(a.Y2)
	labels := a.Labels()

	if a.Orientation == axis.Horizontal {
		c.hline(r1, c1, c2, '─', st)
		for i := range a.Ticks {
			col := c.col(a.TickPosition(i))
			c.set(col, r1, '┼', st)
			if i < len(labels) && labels[i] != "" {
				c.text(col-len(labels[i])/2, r1+1, labels[i], StyleValue)
			}
		}
		if a.Title != "" && !a.Mirror {
			c.text(c2-len(a.Title)+1, r1+2, a.Title, StyleHighlight)
		}
		return
	}

	c.vline(c1, r1, r2, '│', st)
	for i := range a.Ticks {
		row := c.row(a.TickPosition(i))
		c.set(c1, row, '┼', st)
		if i < len(labels) && labels[i] != "" {
			c.text(c1-len(labels[i])-1, row, labels[i], StyleValue)
		}
	}
	if a.Title != "" && !a.Mirror {
		c.text(max(c1-len(a.Title)/2, 0), r2-1, a.Title, StyleHighlight)
	}
}

// surfaceSize converts a terminal grid into pixels for the layout.
func surfaceSize(cols, rows int) (w, h float64) {
	return float64(max(cols, 1) * cellWidthPx), float64(max(rows, 1) * cellHeightPx)
}

func colorStyle(col drawing.Color) lipgloss.Style {
	if col.IsZero() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
