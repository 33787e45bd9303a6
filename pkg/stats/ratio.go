package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// RatioEstimator estimates num/den together with a confidence interval
// [lo, hi] at level cl. ok is false when the ratio is undefined.
type RatioEstimator interface {
	Ratio(num, den, cl float64) (r, lo, hi float64, ok bool)
}

// ClopperPearsonRatio treats num and den as Poisson counts. Conditioning on
// num+den, num is binomial with p = λ₁/(λ₁+λ₂), so the Clopper-Pearson
// interval for p maps onto λ₁/λ₂ = p/(1−p).
type ClopperPearsonRatio struct{}

// Ratio implements RatioEstimator.
func (ClopperPearsonRatio) Ratio(num, den, cl float64) (r, lo, hi float64, ok bool) {
	if den <= 0 || num < 0 || math.IsNaN(num) || math.IsNaN(den) {
		return 0, 0, 0, false
	}
	alpha := 1 - cl
	r = num / den

	pLo := 0.0
	if num > 0 {
		pLo = distuv.Beta{Alpha: num, Beta: den + 1}.Quantile(alpha / 2)
	}
	pHi := distuv.Beta{Alpha: num + 1, Beta: den}.Quantile(1 - alpha/2)

	lo = pLo / (1 - pLo)
	if pHi >= 1 {
		hi = math.Inf(1)
	} else {
		hi = pHi / (1 - pHi)
	}
	return r, math.Min(lo, r), math.Max(hi, r), true
}

// PropagatedRatio is the plain quotient with Gaussian error propagation on
// √num and √den, scaled to the requested level.
type PropagatedRatio struct{}

// Ratio implements RatioEstimator.
func (PropagatedRatio) Ratio(num, den, cl float64) (r, lo, hi float64, ok bool) {
	if den <= 0 || math.IsNaN(num) || math.IsNaN(den) {
		return 0, 0, 0, false
	}
	r = num / den
	sigma := math.Sqrt(math.Abs(num)/(den*den) + num*num/(den*den*den))
	half := CLToSigma(cl) * sigma
	return r, r - half, r + half, true
}
