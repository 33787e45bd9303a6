package compare

import "fmt"

// Mode selects how the primary and the reference are compared.
type Mode int

const (
	// Ratio divides the scaled primary by the scaled secondary with
	// quotient error propagation.
	Ratio Mode = iota + 1
	// RatioAsymmetric divides with Poisson-consistent asymmetric errors.
	RatioAsymmetric
	// Difference subtracts the scaled secondary from the scaled primary.
	Difference
	// FitResidual is (primary − fit)/error.
	FitResidual
	// DifferenceOverError is (primary − secondary)/combined error.
	DifferenceOverError
)

var modeNames = map[Mode]string{
	Ratio:               "ratio",
	RatioAsymmetric:     "pois",
	Difference:          "diff",
	FitResidual:         "fitres",
	DifferenceOverError: "diffsig",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// IsRatio reports whether the mode produces a quotient.
func (m Mode) IsRatio() bool { return m == Ratio || m == RatioAsymmetric }

// IsSignificance reports whether the mode is expressed in units of the
// error (residual pulls).
func (m Mode) IsSignificance() bool { return m == FitResidual || m == DifferenceOverError }

// Neutral returns the value at which primary and reference agree: 1 for
// ratios, 0 for everything else.
func (m Mode) Neutral() float64 {
	if m.IsRatio() {
		return 1
	}
	return 0
}

// ErrorMode selects how per-bin errors enter the comparison.
type ErrorMode int

const (
	// ErrorSymmetric uses the symmetric bin error.
	ErrorSymmetric ErrorMode = iota + 1
	// ErrorAsymmetric uses the lower or upper bin error, whichever faces
	// the reference.
	ErrorAsymmetric
	// ErrorFromFunction uses √(reference value) as the error.
	ErrorFromFunction
)

func (e ErrorMode) String() string {
	switch e {
	case ErrorSymmetric:
		return "sym"
	case ErrorAsymmetric:
		return "asym"
	case ErrorFromFunction:
		return "func"
	}
	return fmt.Sprintf("ErrorMode(%d)", int(e))
}
