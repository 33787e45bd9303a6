package compare

import (
	"math"
	"testing"

	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/stats"
)

func TestBandsNest(t *testing.T) {
	modes := []Mode{Ratio, RatioAsymmetric, Difference, DifferenceOverError}
	h1 := mustHist(t, "h1", 3, 40, 0, 250)
	h2 := mustHist(t, "h2", 5, 38, 7, 260)

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			s, err := Compute(h1, h2, nil, Params{Mode: mode})
			if err != nil {
				t.Fatal(err)
			}
			inner, outer, err := Bands(s, 0.6827, 0.9545, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(inner.Points) != len(outer.Points) {
				t.Fatalf("band sizes differ: %d vs %d", len(inner.Points), len(outer.Points))
			}
			for i := range inner.Points {
				in, out := inner.Points[i], outer.Points[i]
				if in.Y != mode.Neutral() || out.Y != mode.Neutral() {
					t.Errorf("band not centered on neutral value %v", mode.Neutral())
				}
				if out.ErrLow < in.ErrLow || out.ErrHigh < in.ErrHigh {
					t.Errorf("point %d: outer (%v, %v) narrower than inner (%v, %v)",
						i, out.ErrLow, out.ErrHigh, in.ErrLow, in.ErrHigh)
				}
			}
		})
	}
}

func TestBandsStrictlyNarrowerInner(t *testing.T) {
	s := &Series{Mode: Ratio, Points: []Point{
		{X: 0.5, Y: 1, Ref: 100},
		{X: 1.5, Y: 1, Ref: 100},
	}}
	inner, outer, err := Bands(s, 0.6827, 0.9545, stats.Garwood{})
	if err != nil {
		t.Fatal(err)
	}
	for i := range inner.Points {
		iw := inner.Points[i].ErrLow + inner.Points[i].ErrHigh
		ow := outer.Points[i].ErrLow + outer.Points[i].ErrHigh
		if !(iw < ow) {
			t.Errorf("point %d: inner width %v not below outer width %v", i, iw, ow)
		}
	}
}

func TestBandsNarrowWithStatistics(t *testing.T) {
	s := &Series{Mode: Ratio, Points: []Point{{Ref: 10}, {Ref: 1000}}}
	inner, _, err := Bands(s, 0.6827, 0.9545, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !(inner.Points[1].ErrHigh < inner.Points[0].ErrHigh) {
		t.Errorf("band should narrow as the denominator grows: %v vs %v",
			inner.Points[0].ErrHigh, inner.Points[1].ErrHigh)
	}
}

func TestBandsSkipEmptyReference(t *testing.T) {
	s := &Series{Mode: FitResidual, Points: []Point{{Ref: 0}, {Ref: 4}}}
	inner, outer, err := Bands(s, 0.5, 0.9, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(inner.Points) != 1 || len(outer.Points) != 1 {
		t.Errorf("sizes = %d/%d, want 1/1", len(inner.Points), len(outer.Points))
	}
}

func TestBandsInvalidLevels(t *testing.T) {
	s := &Series{Mode: Ratio}
	tests := []struct {
		name     string
		cl1, cl2 float64
	}{
		{"misordered", 0.95, 0.68},
		{"equal", 0.68, 0.68},
		{"above one", 0.68, 1.2},
		{"zero", 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Bands(s, tt.cl1, tt.cl2, nil)
			if !errors.Is(err, errors.ErrCodeInvalidConfidenceLevel) {
				t.Errorf("Bands(%v, %v) error = %v, want INVALID_CONFIDENCE_LEVEL", tt.cl1, tt.cl2, err)
			}
		})
	}
}

func TestGridlines(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		positions []float64
		want      []float64
	}{
		{"ratio default", Ratio, nil, []float64{1}},
		{"pois default", RatioAsymmetric, nil, []float64{1}},
		{"difference default", Difference, nil, []float64{0}},
		{"residual default", FitResidual, nil, []float64{0}},
		{"explicit sorted", Ratio, []float64{1.5, 0.5, 1, 1}, []float64{0.5, 1, 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Gridlines(tt.mode, tt.positions)
			if err != nil {
				t.Fatal(err)
			}
			if len(g.Positions) != len(tt.want) {
				t.Fatalf("Positions = %v, want %v", g.Positions, tt.want)
			}
			for i := range tt.want {
				if g.Positions[i] != tt.want[i] {
					t.Errorf("Positions = %v, want %v", g.Positions, tt.want)
				}
			}
		})
	}
}

func TestGridlinesRejectNonFinite(t *testing.T) {
	if _, err := Gridlines(Ratio, []float64{1, math.NaN()}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestGridlinesWithin(t *testing.T) {
	g := GridlineSet{Positions: []float64{0.5, 1, 1.5, 3}}
	got := g.Within(0.8, 2)
	if len(got) != 2 || got[0] != 1 || got[1] != 1.5 {
		t.Errorf("Within(0.8, 2) = %v, want [1 1.5]", got)
	}
}
