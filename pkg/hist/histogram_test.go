package hist

import (
	"math"
	"testing"

	"github.com/matzehuels/ratioplot/pkg/errors"
)

func TestFindBin(t *testing.T) {
	h := MustNew("h", []float64{0, 1, 2, 4})
	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"first edge", 0, 0},
		{"inside first", 0.5, 0},
		{"inner edge", 1, 1},
		{"wide bin", 3.9, 2},
		{"last edge", 4, 2},
		{"below", -0.1, -1},
		{"above", 4.1, -1},
		{"nan", math.NaN(), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.FindBin(tt.x); got != tt.want {
				t.Errorf("FindBin(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestFillAndErrors(t *testing.T) {
	h := MustNew("h", Uniform(2, 0, 2))
	h.Fill(0.5, 1)
	h.Fill(0.5, 1)
	h.Fill(0.5, 1)
	h.Fill(0.5, 1)
	h.Fill(7, 1)

	if h.Content(0) != 4 {
		t.Errorf("Content(0) = %v, want 4", h.Content(0))
	}
	if h.Error(0) != 2 {
		t.Errorf("Error(0) = %v, want 2", h.Error(0))
	}
	if h.Weighted() {
		t.Error("unit-weight histogram reported as weighted")
	}
	if !(h.ErrorUp(0) > h.ErrorLow(0)) {
		t.Errorf("Poisson errors should be asymmetric: low %v up %v", h.ErrorLow(0), h.ErrorUp(0))
	}

	h.Fill(1.5, 2)
	if !h.Weighted() {
		t.Error("weighted fill not detected")
	}
	if h.Error(1) != 2 {
		t.Errorf("Error(1) = %v, want 2", h.Error(1))
	}
	if h.ErrorLow(1) != h.ErrorUp(1) {
		t.Error("weighted bins should use symmetric errors")
	}
}

func TestScaled(t *testing.T) {
	h, err := FromCounts("h", []float64{0, 1, 2}, []float64{4, 9})
	if err != nil {
		t.Fatal(err)
	}
	s := h.Scaled(2)
	if s.Content(1) != 18 {
		t.Errorf("Content(1) = %v, want 18", s.Content(1))
	}
	if s.Error(1) != 6 {
		t.Errorf("Error(1) = %v, want 6", s.Error(1))
	}
	if h.Content(1) != 9 {
		t.Error("Scaled modified the original")
	}
}

func TestFromCountsMismatch(t *testing.T) {
	_, err := FromCounts("h", []float64{0, 1, 2}, []float64{1})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestSameBinning(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float64
		wantErr bool
	}{
		{"equal", []float64{0, 1, 2}, []float64{0, 1, 2}, false},
		{"within tolerance", []float64{0, 1, 2}, []float64{0, 1 + 1e-12, 2}, false},
		{"different count", []float64{0, 1, 2}, []float64{0, 1}, true},
		{"shifted edge", []float64{0, 1, 2}, []float64{0, 1.5, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SameBinning(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SameBinning() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeIncompatibleBinning) {
				t.Errorf("code = %v, want INCOMPATIBLE_BINNING", errors.GetCode(err))
			}
		})
	}
}

func TestStackTotal(t *testing.T) {
	a, _ := FromCounts("a", []float64{0, 1, 2}, []float64{9, 1})
	b, _ := FromCounts("b", []float64{0, 1, 2}, []float64{16, 3})
	st, err := NewStack("mc", a, b)
	if err != nil {
		t.Fatal(err)
	}

	var d Drawable = st
	tot := d.Total()
	if tot.Content(0) != 25 || tot.Content(1) != 4 {
		t.Errorf("Total counts = %v, want [25 4]", tot.Counts)
	}
	if tot.Error(0) != 5 {
		t.Errorf("Total error(0) = %v, want 5", tot.Error(0))
	}
	if d.ValueAt(0.5) != 25 {
		t.Errorf("ValueAt(0.5) = %v, want 25", d.ValueAt(0.5))
	}
	cum := st.Cumulative()
	if cum[0][0] != 9 || cum[1][0] != 25 {
		t.Errorf("Cumulative = %v", cum)
	}
}

func TestStackRejectsForeignBinning(t *testing.T) {
	a := MustNew("a", []float64{0, 1, 2})
	b := MustNew("b", []float64{0, 2, 4})
	if _, err := NewStack("mc", a, b); !errors.Is(err, errors.ErrCodeIncompatibleBinning) {
		t.Errorf("NewStack() error = %v, want INCOMPATIBLE_BINNING", err)
	}
}

func TestModels(t *testing.T) {
	tests := []struct {
		name string
		m    Model
		x    float64
		want float64
	}{
		{"poly", Poly{1, 2, 3}, 2, 17},
		{"constant poly", Poly{5}, 100, 5},
		{"gaus peak", Gaus{Amplitude: 10, Mean: 1, Sigma: 2}, 1, 10},
		{"gaus zero width", Gaus{Amplitude: 10}, 0, 0},
		{"expo", Expo{Constant: 0, Slope: 1}, 0, 1},
		{"func", Func(func(x float64) float64 { return x * x }), 3, 9},
		{"sum", Sum{Poly{1}, Poly{0, 1}}, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Eval(tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Eval(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestStackRejectsMalformedMember(t *testing.T) {
	edges := []float64{0, 1, 2}
	good := &Histogram{Name: "a", Edges: edges, Counts: []float64{1, 2}}
	short := &Histogram{Name: "b", Edges: edges, Counts: []float64{1}}

	if _, err := NewStack("mc", good, short); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewStack() error = %v, want INVALID_INPUT", err)
	}

	st := &Stack{Name: "mc", Members: []*Histogram{good, short}}
	if err := st.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() error = %v, want INVALID_INPUT", err)
	}
	if err := (&Stack{Name: "empty"}).Validate(); err == nil {
		t.Error("Validate() on an empty stack should fail")
	}
}

func TestValidateRejectsNonFiniteContents(t *testing.T) {
	edges := []float64{0, 1, 2}
	tests := []struct {
		name  string
		h     *Histogram
		valid bool
	}{
		{"finite", &Histogram{Edges: edges, Counts: []float64{1, 2}}, true},
		{"nan count", &Histogram{Edges: edges, Counts: []float64{math.NaN(), 2}}, false},
		{"inf count", &Histogram{Edges: edges, Counts: []float64{1, math.Inf(1)}}, false},
		{"inf sumw2", &Histogram{Edges: edges, Counts: []float64{1, 2}, SumW2: []float64{1, math.Inf(1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.h.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
