package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/hist"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
	"github.com/matzehuels/ratioplot/pkg/render/sink"
)

const styleTOML = `
option = "diff"
draw_option = "nogrid"
width = 800
height = 400
gridlines = [-5, 0, 5]

[geometry]
split_fraction = 0.4
left_margin = 0.15

[confidence]
levels = [0.5, 0.9]
outer_color = "#ff0000"

[scale]
c2 = 2

[labels]
hide = "nohide"
x_title = "mass"

[draw]
graph = "LX"

[style]
font = "Helvetica"
background = "#ffffff"
`

func newPlot(t *testing.T, opt ratioplot.Options) *ratioplot.RatioPlot {
	t.Helper()
	edges := hist.Uniform(4, 0, 4)
	h1, err := hist.FromCounts("data", edges, []float64{12, 20, 27, 4})
	if err != nil {
		t.Fatal(err)
	}
	h2, err := hist.FromCounts("mc", edges, []float64{10, 20, 30, 5})
	if err != nil {
		t.Fatal(err)
	}
	rp, err := ratioplot.New(h1, h2, opt)
	if err != nil {
		t.Fatalf("ratioplot.New: %v", err)
	}
	return rp
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(styleTOML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Option != "diff" || c.Width != 800 {
		t.Errorf("Option, Width = %q, %v", c.Option, c.Width)
	}
	if c.Geometry.SplitFraction == nil || *c.Geometry.SplitFraction != 0.4 {
		t.Errorf("SplitFraction = %v, want 0.4", c.Geometry.SplitFraction)
	}
	if c.Geometry.UpTopMargin != nil {
		t.Error("unset margin should stay nil")
	}
	if c.Scale.C1 != nil || c.Scale.C2 == nil || *c.Scale.C2 != 2 {
		t.Errorf("Scale = %+v", c.Scale)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `option = `},
		{"unknown key", `colour = "red"`},
		{"split out of range", "[geometry]\nsplit_fraction = 1.5"},
		{"one level", "[confidence]\nlevels = [0.5]"},
		{"decreasing levels", "[confidence]\nlevels = [0.9, 0.5]"},
		{"level above one", "[confidence]\nlevels = [0.5, 1.5]"},
		{"bad colour", "[confidence]\ninner_color = \"notacolour\""},
		{"bad hide mode", "[labels]\nhide = \"sometimes\""},
		{"zero scale", "[scale]\nc1 = 0.0"},
		{"negative width", "width = -1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte(styleTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load: %v", err)
	}
	if _, err := Load(path + ".missing"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestApply(t *testing.T) {
	c, err := Parse([]byte(styleTOML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rp := newPlot(t, c.PlotOptions(nil))
	if err := c.Apply(rp); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := rp.SplitFraction(); got != 0.4 {
		t.Errorf("SplitFraction() = %v, want 0.4", got)
	}
	if got := rp.Geometry().Left; got != 0.15 {
		t.Errorf("Geometry().Left = %v, want 0.15", got)
	}
	if cl1, cl2 := rp.ConfidenceLevels(); cl1 != 0.5 || cl2 != 0.9 {
		t.Errorf("ConfidenceLevels() = %v, %v, want 0.5, 0.9", cl1, cl2)
	}
	if got := rp.C2(); got != 2 {
		t.Errorf("C2() = %v, want 2", got)
	}
	if got := rp.Gridlines().Positions; len(got) != 3 {
		t.Errorf("Gridlines() = %v, want 3 positions", got)
	}
	if got := rp.XAxis().Title; got != "mass" {
		t.Errorf("XAxis().Title = %q, want mass", got)
	}

	scene, err := rp.Draw(c.DrawOption)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if scene.Width != 800 || scene.Height != 400 {
		t.Errorf("scene size = %vx%v, want 800x400", scene.Width, scene.Height)
	}
	for _, l := range scene.Lower.Layers {
		if l.Kind == ratioplot.Gridline {
			t.Error("nogrid should suppress gridlines")
		}
		if l.Name == "outer band" && (l.Fill.R != 255 || l.Fill.G != 0 || l.Fill.B != 0) {
			t.Errorf("outer band fill = %v, want red", l.Fill)
		}
	}
}

func TestApplyKeepsDefaults(t *testing.T) {
	rp := newPlot(t, ratioplot.Options{})
	before := rp.Geometry()

	var c Config
	if err := c.Apply(rp); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rp.Geometry() != before {
		t.Errorf("Geometry() = %+v, want %+v", rp.Geometry(), before)
	}
	if cl1, _ := rp.ConfidenceLevels(); math.Abs(cl1-0.6826894921370859) > 1e-12 {
		t.Errorf("ConfidenceLevels() inner = %v, want one sigma", cl1)
	}
}

func TestApplySeparationMargin(t *testing.T) {
	c, err := Parse([]byte("[geometry]\nseparation_margin = 0.04"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rp := newPlot(t, ratioplot.Options{})
	if err := c.Apply(rp); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := rp.SeparationMargin(); math.Abs(got-0.04) > 1e-9 {
		t.Errorf("SeparationMargin() = %v, want 0.04", got)
	}
}

func TestApplyHideMode(t *testing.T) {
	c := Config{Labels: Labels{Hide: "fhideup"}}
	rp := newPlot(t, ratioplot.Options{})
	if err := c.Apply(rp); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	decos := rp.Decorations()
	if len(decos) != 8 {
		t.Fatalf("Decorations() = %d axes, want 8", len(decos))
	}
	if got := decos[2].HiddenLabel; got != 0 {
		t.Errorf("upper-y HiddenLabel = %d, want 0", got)
	}
}

func TestSVGOptions(t *testing.T) {
	c := Config{Style: Style{Font: "Courier", Background: "black"}}
	if got := len(c.SVGOptions()); got != 2 {
		t.Errorf("SVGOptions() = %d options, want 2", got)
	}
	rp := newPlot(t, ratioplot.Options{})
	scene, err := rp.Draw("")
	if err != nil {
		t.Fatal(err)
	}
	if out := sink.RenderSVG(scene, c.SVGOptions()...); len(out) == 0 {
		t.Error("RenderSVG returned nothing")
	}
}

func TestEncode(t *testing.T) {
	c, err := Parse([]byte(styleTOML))
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode()): %v", err)
	}
	if again.Option != c.Option || *again.Geometry.SplitFraction != *c.Geometry.SplitFraction {
		t.Errorf("round trip changed config: %+v", again)
	}
}
