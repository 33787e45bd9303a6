package errors

import (
	"math"
	"testing"
)

func TestValidateConfidenceLevels(t *testing.T) {
	tests := []struct {
		name    string
		cl1     float64
		cl2     float64
		wantErr bool
	}{
		{"one and two sigma", 0.6827, 0.9545, false},
		{"close levels", 0.5, 0.51, false},

		{"equal", 0.9, 0.9, true},
		{"misordered", 0.95, 0.68, true},
		{"zero", 0, 0.5, true},
		{"one", 0.5, 1, true},
		{"negative", -0.1, 0.5, true},
		{"nan", math.NaN(), 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfidenceLevels(tt.cl1, tt.cl2)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfidenceLevels(%v, %v) error = %v, wantErr %v", tt.cl1, tt.cl2, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfidenceLevel) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfidenceLevel)
			}
		})
	}
}

func TestValidateFraction(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"middle", 0.3, false},
		{"small", 0.001, false},

		{"zero", 0, true},
		{"one", 1, true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFraction("split", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFraction(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMargin(t *testing.T) {
	if err := ValidateMargin("top", 0); err != nil {
		t.Errorf("ValidateMargin(0) error = %v, want nil", err)
	}
	if err := ValidateMargin("top", 1); err == nil {
		t.Error("ValidateMargin(1) should fail")
	}
	if err := ValidateMargin("top", -0.01); err == nil {
		t.Error("ValidateMargin(-0.01) should fail")
	}
}

func TestValidateEdges(t *testing.T) {
	tests := []struct {
		name    string
		edges   []float64
		wantErr bool
	}{
		{"uniform", []float64{0, 1, 2, 3}, false},
		{"variable", []float64{0, 0.5, 2, 10}, false},

		{"single edge", []float64{1}, true},
		{"decreasing", []float64{0, 2, 1}, true},
		{"duplicate", []float64{0, 1, 1}, true},
		{"nan", []float64{0, math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEdges(tt.edges)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEdges(%v) error = %v, wantErr %v", tt.edges, err, tt.wantErr)
			}
		})
	}
}
