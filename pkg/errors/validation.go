package errors

import (
	"math"
)

// ValidateConfidenceLevels checks that 0 < cl1 < cl2 < 1.
// The inner band must use the smaller level so it nests inside the outer one.
func ValidateConfidenceLevels(cl1, cl2 float64) error {
	for _, cl := range []float64{cl1, cl2} {
		if math.IsNaN(cl) || cl <= 0 || cl >= 1 {
			return New(ErrCodeInvalidConfidenceLevel, "confidence level %v outside (0,1)", cl)
		}
	}
	if cl1 >= cl2 {
		return New(ErrCodeInvalidConfidenceLevel, "inner level %v must be below outer level %v", cl1, cl2)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidateFraction checks that v lies in the open interval (0,1).
func ValidateFraction(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 || v >= 1 {
		return New(ErrCodeInvalidInput, "%s must be in (0,1), got %v", name, v)
	}
	return nil
}

// ValidateMargin checks that a region margin lies in [0,1).
func ValidateMargin(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 || v >= 1 {
		return New(ErrCodeInvalidInput, "%s must be in [0,1), got %v", name, v)
	}
	return nil
}

// ValidateEdges checks that bin edges are finite and strictly increasing.
func ValidateEdges(edges []float64) error {
	if len(edges) < 2 {
		return New(ErrCodeInvalidInput, "need at least 2 bin edges, got %d", len(edges))
	}
	for i, e := range edges {
		if err := ValidateFinite("bin edge", e); err != nil {
			return err
		}
		if i > 0 && e <= edges[i-1] {
			return New(ErrCodeInvalidInput, "bin edges must increase: edge %d (%v) <= edge %d (%v)", i, e, i-1, edges[i-1])
		}
	}
	return nil
}
