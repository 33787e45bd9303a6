package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Standard Gaussian coverage probabilities.
const (
	OneSigma = 0.6826894921370859
	TwoSigma = 0.9544997361036416
)

// IntervalEstimator computes a two-sided confidence interval [lo, hi] for an
// observed count n at confidence level cl.
type IntervalEstimator interface {
	Interval(n, cl float64) (lo, hi float64)
}

// Garwood is the exact central Poisson interval:
//
//	lo = ½·χ²(α/2; 2n)    hi = ½·χ²(1−α/2; 2n+2)
//
// Negative counts are treated as zero.
type Garwood struct{}

// Interval implements IntervalEstimator.
func (Garwood) Interval(n, cl float64) (lo, hi float64) {
	if n < 0 || math.IsNaN(n) {
		n = 0
	}
	alpha := 1 - cl
	if n > 0 {
		lo = 0.5 * distuv.ChiSquared{K: 2 * n}.Quantile(alpha/2)
	}
	hi = 0.5 * distuv.ChiSquared{K: 2 * (n + 1)}.Quantile(1-alpha/2)
	return lo, hi
}

// NormalApprox is the symmetric Gaussian approximation n ± z·√n, with the
// lower edge clipped at zero.
type NormalApprox struct{}

// Interval implements IntervalEstimator.
func (NormalApprox) Interval(n, cl float64) (lo, hi float64) {
	if n < 0 || math.IsNaN(n) {
		n = 0
	}
	half := CLToSigma(cl) * math.Sqrt(n)
	return math.Max(0, n-half), n + half
}

// PoissonErrors returns the 1σ Garwood errors below and above n.
func PoissonErrors(n float64) (low, up float64) {
	lo, hi := Garwood{}.Interval(n, OneSigma)
	if n < 0 {
		n = 0
	}
	return n - lo, hi - n
}

// CLToSigma converts a two-sided coverage probability into the number of
// Gaussian standard deviations it spans.
func CLToSigma(cl float64) float64 {
	return distuv.UnitNormal.Quantile(0.5 + cl/2)
}

// SigmaToCL converts a number of Gaussian standard deviations into the
// two-sided coverage probability.
func SigmaToCL(k float64) float64 {
	return 2*distuv.UnitNormal.CDF(k) - 1
}
