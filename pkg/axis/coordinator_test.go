package axis

import (
	"testing"

	"github.com/matzehuels/ratioplot/pkg/layout"
)

// host dispatches region notifications the way a ratio plot does.
type host struct {
	m *layout.Manager
	c *Coordinator
}

func (h *host) OnRangeChanged()  { h.c.SyncRanges() }
func (h *host) OnRegionResized() { h.m.SyncMargins() }

func newCoordinator(t *testing.T) (*layout.Manager, *Coordinator) {
	t.Helper()
	m := layout.NewManager(layout.DefaultGeometry(), nil)
	c := NewCoordinator(m,
		New("x", layout.Range{Min: 0, Max: 3}, 6),
		New("entries", layout.Range{Min: 0, Max: 40}, 6),
		New("ratio", layout.Range{Min: 0, Max: 2}, 4),
		nil)
	m.Observe(&host{m: m, c: c})
	return m, c
}

func TestNewCoordinatorPushesRanges(t *testing.T) {
	m, _ := newCoordinator(t)
	want := layout.Range{Min: 0, Max: 3}
	if got := m.Upper().XRange(); got != want {
		t.Errorf("upper x = %v, want %v", got, want)
	}
	if got := m.Lower().YRange(); got != (layout.Range{Min: 0, Max: 2}) {
		t.Errorf("lower y = %v, want [0, 2]", got)
	}
}

func TestZoomPropagatesFromEitherRegion(t *testing.T) {
	tests := []struct {
		name  string
		zoom  func(m *layout.Manager)
		other func(m *layout.Manager) layout.Range
	}{
		{
			name:  "upper zoomed",
			zoom:  func(m *layout.Manager) { m.Upper().SetXRange(layout.Range{Min: 1, Max: 2}) },
			other: func(m *layout.Manager) layout.Range { return m.Lower().XRange() },
		},
		{
			name:  "lower zoomed",
			zoom:  func(m *layout.Manager) { m.Lower().SetXRange(layout.Range{Min: 1, Max: 2}) },
			other: func(m *layout.Manager) layout.Range { return m.Upper().XRange() },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, c := newCoordinator(t)
			tt.zoom(m)

			want := layout.Range{Min: 1, Max: 2}
			if got := tt.other(m); got != want {
				t.Errorf("other region x = %v, want %v", got, want)
			}
			if got := c.XAxis().Visible; got != want {
				t.Errorf("XAxis().Visible = %v, want %v", got, want)
			}
			if m.Guard().Phase() != layout.Idle {
				t.Errorf("Phase() = %v, want idle", m.Guard().Phase())
			}
		})
	}
}

func TestZoomClampsToFullRange(t *testing.T) {
	m, c := newCoordinator(t)
	m.Upper().SetXRange(layout.Range{Min: -1, Max: 2})

	want := layout.Range{Min: 0, Max: 2}
	if got := c.XAxis().Visible; got != want {
		t.Errorf("XAxis().Visible = %v, want %v", got, want)
	}
	if got := m.Upper().XRange(); got != want {
		t.Errorf("upper x = %v, want %v", got, want)
	}
}

func TestUnzoom(t *testing.T) {
	m, c := newCoordinator(t)
	c.Zoom(layout.Range{Min: 0.5, Max: 1})
	if !c.Unzoom() {
		t.Fatal("Unzoom() = false")
	}
	full := layout.Range{Min: 0, Max: 3}
	if got := m.Lower().XRange(); got != full {
		t.Errorf("lower x = %v, want %v", got, full)
	}
	if c.XAxis().IsZoomed() {
		t.Error("XAxis().IsZoomed() = true")
	}
}

func TestSyncRangesAdoptsRegionY(t *testing.T) {
	m, c := newCoordinator(t)
	m.Lower().SetYRange(layout.Range{Min: 0.5, Max: 1.5})
	if got := c.LowYAxis().Visible; got != (layout.Range{Min: 0.5, Max: 1.5}) {
		t.Errorf("LowYAxis().Visible = %v, want [0.5, 1.5]", got)
	}
	if got := c.UpYAxis().Visible; got != (layout.Range{Min: 0, Max: 40}) {
		t.Errorf("UpYAxis().Visible = %v, want unchanged", got)
	}
}

func TestOnChangeRunsInsideGuard(t *testing.T) {
	m, c := newCoordinator(t)
	var phases []layout.Phase
	c.OnChange(func() { phases = append(phases, m.Guard().Phase()) })

	c.Zoom(layout.Range{Min: 1, Max: 2})
	if len(phases) != 1 || phases[0] != layout.RecomputingRange {
		t.Errorf("OnChange phases = %v, want [recomputing-range]", phases)
	}
}

func TestDecorations(t *testing.T) {
	m, c := newCoordinator(t)
	decs := c.Decorations()

	names := []string{
		"upper-x", "upper-x-mirror", "upper-y", "upper-y-mirror",
		"lower-x", "lower-x-mirror", "lower-y", "lower-y-mirror",
	}
	if len(decs) != len(names) {
		t.Fatalf("Decorations() returned %d axes, want %d", len(decs), len(names))
	}
	labelled := map[string]bool{"upper-y": true, "lower-x": true, "lower-y": true}
	for i, d := range decs {
		if d.Name != names[i] {
			t.Errorf("decoration %d = %q, want %q", i, d.Name, names[i])
		}
		if d.LabelsVisible != labelled[d.Name] {
			t.Errorf("%s LabelsVisible = %v, want %v", d.Name, d.LabelsVisible, labelled[d.Name])
		}
	}

	upF, lowF := m.Upper().Frame(), m.Lower().Frame()
	if decs[0].Y1 != upF.Bottom || decs[1].Y1 != upF.Top {
		t.Errorf("upper x axes at y=%v,%v; want %v,%v", decs[0].Y1, decs[1].Y1, upF.Bottom, upF.Top)
	}
	if decs[6].X1 != lowF.Left || decs[7].X1 != lowF.Right {
		t.Errorf("lower y axes at x=%v,%v; want %v,%v", decs[6].X1, decs[7].X1, lowF.Left, lowF.Right)
	}
	if decs[0].X1 != decs[4].X1 || decs[0].X2 != decs[4].X2 {
		t.Error("upper and lower x axes are not aligned")
	}
}

func TestDecorationsFollowZoom(t *testing.T) {
	m, c := newCoordinator(t)
	m.Lower().SetXRange(layout.Range{Min: 1, Max: 2})

	for _, d := range c.Decorations() {
		if d.Orientation != Horizontal {
			continue
		}
		if d.Range != (layout.Range{Min: 1, Max: 2}) {
			t.Errorf("%s range = %v, want [1, 2]", d.Name, d.Range)
		}
	}
}

func TestHideLabelModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     HideLabelMode
		touching bool
		wantUp   int
		wantLow  int
	}{
		{"hidelow apart", HideLow, false, -1, -1},
		{"hidelow touching", HideLow, true, -1, 4},
		{"hideup touching", HideUp, true, 0, -1},
		{"nohide touching", NoHide, true, -1, -1},
		{"force up apart", ForceHideUp, false, 0, -1},
		{"force low apart", ForceHideLow, false, -1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, c := newCoordinator(t)
			if tt.touching {
				if err := m.SetSeparationMargin(0); err != nil {
					t.Fatalf("SetSeparationMargin() error = %v", err)
				}
			}
			c.SetHideLabelMode(tt.mode)

			decs := c.Decorations()
			up, low := decs[2], decs[6]
			if up.HiddenLabel != tt.wantUp {
				t.Errorf("upper HiddenLabel = %d, want %d", up.HiddenLabel, tt.wantUp)
			}
			if low.HiddenLabel != tt.wantLow {
				t.Errorf("lower HiddenLabel = %d, want %d", low.HiddenLabel, tt.wantLow)
			}
		})
	}
}

func TestLabelsHiddenInLabels(t *testing.T) {
	_, c := newCoordinator(t)
	c.SetHideLabelMode(ForceHideLow)
	labels := c.Decorations()[6].Labels()
	if len(labels) != 5 || labels[4] != "" || labels[3] != "1.5" {
		t.Errorf("Labels() = %q, want last label blanked", labels)
	}
}

type wideMeasurer struct{}

func (wideMeasurer) Measure(string, float64) (float64, float64) { return 10, 1000 }

func TestLabelsCollideUsesMeasurer(t *testing.T) {
	_, c := newCoordinator(t)
	decs := c.Decorations()
	if c.LabelsCollide(decs[2], decs[6]) {
		t.Fatal("default labels collide with default margins")
	}
	c.SetMeasurer(wideMeasurer{})
	if !c.LabelsCollide(decs[2], decs[6]) {
		t.Error("LabelsCollide() = false with huge labels")
	}
}
