package hist

import (
	"fmt"
	"math"
	"strings"
)

// Model is a fitted function that can be evaluated at a point.
type Model interface {
	Eval(x float64) float64
}

// Func adapts a plain function to Model.
type Func func(x float64) float64

// Eval implements Model.
func (f Func) Eval(x float64) float64 { return f(x) }

// Poly is a polynomial p[0] + p[1]·x + p[2]·x² + ...
type Poly []float64

// Eval implements Model.
func (p Poly) Eval(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

func (p Poly) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = fmt.Sprintf("%g", c)
	}
	return "pol" + fmt.Sprint(len(p)-1) + "(" + strings.Join(parts, ", ") + ")"
}

// Gaus is A·exp(−½((x−μ)/σ)²).
type Gaus struct {
	Amplitude float64
	Mean      float64
	Sigma     float64
}

// Eval implements Model.
func (g Gaus) Eval(x float64) float64 {
	if g.Sigma == 0 {
		return 0
	}
	z := (x - g.Mean) / g.Sigma
	return g.Amplitude * math.Exp(-0.5*z*z)
}

func (g Gaus) String() string {
	return fmt.Sprintf("gaus(%g, %g, %g)", g.Amplitude, g.Mean, g.Sigma)
}

// Expo is exp(c + s·x).
type Expo struct {
	Constant float64
	Slope    float64
}

// Eval implements Model.
func (e Expo) Eval(x float64) float64 { return math.Exp(e.Constant + e.Slope*x) }

func (e Expo) String() string {
	return fmt.Sprintf("expo(%g, %g)", e.Constant, e.Slope)
}

// Sum adds several models.
type Sum []Model

// Eval implements Model.
func (s Sum) Eval(x float64) float64 {
	var y float64
	for _, m := range s {
		y += m.Eval(x)
	}
	return y
}
