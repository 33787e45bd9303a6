package layout

import (
	"math"

	"github.com/matzehuels/ratioplot/pkg/errors"
)

// Split fraction limits. Values outside are clamped, not rejected.
const (
	MinSplitFraction = 0.01
	MaxSplitFraction = 0.99
)

// MinRegionHeight is the smallest height either region keeps between the
// split and the inset.
const MinRegionHeight = 0.005

// MaxInset is the largest inset that leaves room for both regions.
const MaxInset = 0.5 - MinRegionHeight

// Geometry is the complete description of how the surface is partitioned.
// Left and Right are shared by both regions so their vertical axes line up.
type Geometry struct {
	SplitFraction float64 `toml:"split_fraction" json:"split_fraction"`

	UpTop     float64 `toml:"up_top_margin" json:"up_top_margin"`
	UpBottom  float64 `toml:"up_bottom_margin" json:"up_bottom_margin"`
	LowTop    float64 `toml:"low_top_margin" json:"low_top_margin"`
	LowBottom float64 `toml:"low_bottom_margin" json:"low_bottom_margin"`
	Left      float64 `toml:"left_margin" json:"left_margin"`
	Right     float64 `toml:"right_margin" json:"right_margin"`

	// Inset is the blank border kept around both regions, as a fraction of
	// the surface height. Horizontally it is scaled by the aspect ratio so
	// the border looks even.
	Inset float64 `toml:"inset" json:"inset"`
}

// DefaultGeometry returns the stock ratio plot layout.
func DefaultGeometry() Geometry {
	return Geometry{
		SplitFraction: 0.3,
		UpTop:         0.1,
		UpBottom:      0.05,
		LowTop:        0.05,
		LowBottom:     0.3,
		Left:          0.1,
		Right:         0.1,
		Inset:         0.0025,
	}
}

// UpperMargins returns the margins applied to the upper region.
func (g Geometry) UpperMargins() Margins {
	return Margins{Top: g.UpTop, Bottom: g.UpBottom, Left: g.Left, Right: g.Right}
}

// LowerMargins returns the margins applied to the lower region.
func (g Geometry) LowerMargins() Margins {
	return Margins{Top: g.LowTop, Bottom: g.LowBottom, Left: g.Left, Right: g.Right}
}

// SeparationMargin is the absolute vertical gap between the two plotted
// areas, as a fraction of the surface height.
func (g Geometry) SeparationMargin() float64 {
	return g.UpBottom*(1-g.SplitFraction) + g.LowTop*g.SplitFraction
}

// WithSeparationMargin splits the absolute gap m evenly between the two
// inner margins at the current split fraction.
func (g Geometry) WithSeparationMargin(m float64) Geometry {
	g.UpBottom = m / 2 / (1 - g.SplitFraction)
	g.LowTop = m / 2 / g.SplitFraction
	return g
}

// Validate reports margins that leave either region without a plotted area.
func (g Geometry) Validate() error {
	if err := errors.ValidateFraction("split fraction", g.SplitFraction); err != nil {
		return errors.New(errors.ErrCodeInvalidSplitFraction, "%s", err.Error())
	}
	if err := validateMargins("upper", g.UpperMargins()); err != nil {
		return err
	}
	if err := validateMargins("lower", g.LowerMargins()); err != nil {
		return err
	}
	if g.Inset < 0 || g.Inset >= MaxInset || g.Inset >= math.Min(g.SplitFraction, 1-g.SplitFraction) {
		return errors.New(errors.ErrCodeInvalidInput, "inset %v collapses a region", g.Inset)
	}
	return nil
}

// ClampSplit limits sf to [MinSplitFraction, MaxSplitFraction], narrowed
// so that both regions keep at least MinRegionHeight inside the inset.
func (g Geometry) ClampSplit(sf float64) float64 {
	lo := math.Max(MinSplitFraction, g.Inset+MinRegionHeight)
	hi := math.Min(MaxSplitFraction, 1-g.Inset-MinRegionHeight)
	return math.Min(hi, math.Max(lo, sf))
}
