package compare

import (
	"math"

	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/stats"
)

// Bands derives the inner (cl1) and outer (cl2) confidence bands around the
// neutral value of s.Mode.
//
// Each band point is the interval of the point's reference count at the
// given level, so the bands narrow as the reference statistics grow:
//
//	ratio modes:        [lo/n, hi/n]
//	Difference:         [lo−n, hi−n]
//	significance modes: [(lo−n)/√n, (hi−n)/√n]
//
// Points with n ≤ 0 are left out in ratio and significance modes. est nil
// selects stats.Garwood.
func Bands(s *Series, cl1, cl2 float64, est stats.IntervalEstimator) (inner, outer Band, err error) {
	if err := errors.ValidateConfidenceLevels(cl1, cl2); err != nil {
		return Band{}, Band{}, err
	}
	if s == nil {
		return Band{}, Band{}, errors.New(errors.ErrCodeInvalidInput, "no series to wrap")
	}
	if est == nil {
		est = stats.Garwood{}
	}
	inner = Band{CL: cl1, Points: make([]Point, 0, len(s.Points))}
	outer = Band{CL: cl2, Points: make([]Point, 0, len(s.Points))}

	neutral := s.Mode.Neutral()
	for _, pt := range s.Points {
		n := pt.Ref
		if (s.Mode.IsRatio() || s.Mode.IsSignificance()) && n <= 0 {
			continue
		}
		inner.Points = append(inner.Points, bandPoint(pt, s.Mode, neutral, n, cl1, est))
		outer.Points = append(outer.Points, bandPoint(pt, s.Mode, neutral, n, cl2, est))
	}
	return inner, outer, nil
}

func bandPoint(src Point, mode Mode, neutral, n, cl float64, est stats.IntervalEstimator) Point {
	lo, hi := est.Interval(n, cl)
	nn := math.Max(n, 0)

	pt := Point{X: src.X, XLow: src.XLow, XHigh: src.XHigh, Y: neutral, Ref: n}
	switch {
	case mode.IsRatio():
		pt.ErrLow = 1 - lo/n
		pt.ErrHigh = hi/n - 1
	case mode.IsSignificance():
		sd := math.Sqrt(n)
		pt.ErrLow = (nn - lo) / sd
		pt.ErrHigh = (hi - nn) / sd
	default:
		pt.ErrLow = nn - lo
		pt.ErrHigh = hi - nn
	}
	return pt
}
