package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestView(t *testing.T) viewModel {
	t.Helper()
	input := writeDoc(t, "run.json", testDoc)
	c := New(&bytes.Buffer{}, LogInfo)
	rp, title, err := c.loadPlot(context.Background(), input, "", "", "")
	if err != nil {
		t.Fatalf("loadPlot() error: %v", err)
	}
	m := newViewModel(rp, title, filepath.Join(t.TempDir(), "view.svg"), c.Logger)
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(m viewModel, msg tea.Msg) viewModel {
	next, _ := m.Update(msg)
	return next.(viewModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewLoading(t *testing.T) {
	input := writeDoc(t, "run.json", testDoc)
	c := New(&bytes.Buffer{}, LogInfo)
	rp, _, err := c.loadPlot(context.Background(), input, "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	m := newViewModel(rp, "t", "", nil)
	if got := m.View(); got != "loading..." {
		t.Errorf("View() before resize = %q, want loading...", got)
	}
}

func TestViewResize(t *testing.T) {
	m := newTestView(t)

	if m.scene == nil {
		t.Fatal("resize should draw a scene")
	}
	if m.scene.Width != 800 || m.scene.Height != 37*16 {
		t.Errorf("surface = %vx%v, want 800x592", m.scene.Width, m.scene.Height)
	}
	out := m.View()
	if !strings.Contains(out, "spectrum") {
		t.Error("View() should show the title")
	}
	if lines := len(strings.Split(out, "\n")); lines != 40 {
		t.Errorf("View() has %d lines, want 40", lines)
	}
}

func TestViewZoom(t *testing.T) {
	m := newTestView(t)

	m = send(m, key("+"))
	x := m.plot.XAxis()
	if !x.IsZoomed() {
		t.Fatal("+ should zoom the x axis")
	}
	if x.Visible.Min != 1 || x.Visible.Max != 3 {
		t.Errorf("visible = %v, want [1, 3]", x.Visible)
	}
	if got := m.plot.LowerRegion().XRange(); got != x.Visible {
		t.Errorf("lower x range = %v, want %v", got, x.Visible)
	}

	m = send(m, key("right"))
	if x := m.plot.XAxis().Visible; x.Min != 1.5 || x.Max != 3.5 {
		t.Errorf("after pan visible = %v, want [1.5, 3.5]", x)
	}
	m = send(m, key("right"))
	m = send(m, key("right"))
	if x := m.plot.XAxis().Visible; x.Max != 4 || x.Span() != 2 {
		t.Errorf("pan should stop at the edge, visible = %v", x)
	}

	m = send(m, key("0"))
	if m.plot.XAxis().IsZoomed() {
		t.Error("0 should unzoom")
	}
}

func TestViewSplitDrag(t *testing.T) {
	m := newTestView(t)
	before := m.plot.SplitFraction()

	m = send(m, key("up"))
	if got, want := m.plot.SplitFraction(), before+splitStep; !near(got, want) {
		t.Errorf("SplitFraction() = %v, want %v", got, want)
	}
	if got := m.plot.LowerRegion().Bounds().Top; !near(got, before+splitStep) {
		t.Errorf("lower top = %v, want it to follow the split", got)
	}

	m = send(m, key("down"))
	m = send(m, key("down"))
	if got, want := m.plot.SplitFraction(), before-splitStep; !near(got, want) {
		t.Errorf("SplitFraction() = %v, want %v", got, want)
	}
}

func TestViewMarginDrag(t *testing.T) {
	m := newTestView(t)
	before := m.plot.Geometry().Left

	m = send(m, key("]"))
	if got := m.plot.Geometry().Left; !near(got, before+marginStep) {
		t.Errorf("Left = %v, want %v", got, before+marginStep)
	}
	if got := m.plot.UpperRegion().Margins().Left; !near(got, before+marginStep) {
		t.Errorf("upper left margin = %v, want it shared", got)
	}
}

func TestViewToggles(t *testing.T) {
	m := newTestView(t)

	countKind := func(name string) int {
		n := 0
		for _, l := range m.scene.Lower.Layers {
			if strings.Contains(l.Name, name) {
				n++
			}
		}
		return n
	}
	if countKind("band") != 2 {
		t.Fatalf("bands shown = %d, want 2", countKind("band"))
	}

	m = send(m, key("b"))
	if countKind("band") != 0 {
		t.Error("b should hide the bands")
	}
	m = send(m, key("g"))
	if countKind("gridline") != 0 {
		t.Error("g should hide the gridlines")
	}

	m = send(m, key("h"))
	if m.status != "hideup" {
		t.Errorf("status = %q, want hideup", m.status)
	}
	m = send(m, key("h"))
	m = send(m, key("h"))
	if got := m.scene.Axes[2].HiddenLabel; got != 0 {
		t.Errorf("fhideup hidden label = %d, want 0", got)
	}
}

func TestViewSave(t *testing.T) {
	m := newTestView(t)
	m = send(m, key("s"))
	if m.err != nil {
		t.Fatalf("save error: %v", m.err)
	}
	data, err := os.ReadFile(m.output)
	if err != nil {
		t.Fatalf("saved file: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("saved file is not SVG")
	}
}

func TestViewQuit(t *testing.T) {
	m := newTestView(t)
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := m.Update(k); cmd == nil {
			t.Errorf("%q should quit", k.String())
		}
	}
}

func TestCanvas(t *testing.T) {
	cv := newCanvas(10, 5)
	cv.hline(0, 0, 9, '-', cv.plain)
	cv.vline(0, 0, 4, '|', cv.plain)
	cv.set(20, 20, 'x', cv.plain)

	lines := strings.Split(cv.String(), "\n")
	if len(lines) != 5 {
		t.Fatalf("rows = %d, want 5", len(lines))
	}
	if lines[0] != "|---------" {
		t.Errorf("row 0 = %q", lines[0])
	}
	if cv.col(1) != 9 || cv.row(1) != 0 || cv.row(0) != 4 {
		t.Error("surface corners should map to grid corners")
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
