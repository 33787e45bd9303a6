// Package stats provides the statistical estimators the comparison engine
// delegates to.
//
// Two strategies are pluggable:
//
//   - [IntervalEstimator] returns a confidence interval for a single count.
//     The default, [Garwood], is the exact (central) Poisson interval built
//     from chi-square quantiles. [NormalApprox] is the symmetric n ± z·√n
//     approximation.
//   - [RatioEstimator] returns a ratio of two counts together with an
//     asymmetric interval. The default, [ClopperPearsonRatio], conditions on
//     the total count and maps the Clopper-Pearson binomial interval onto the
//     ratio of the two Poisson means.
//
// All quantiles come from gonum's distuv package.
package stats
