package ratioplot

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/compare"
	"github.com/matzehuels/ratioplot/pkg/layout"
	"github.com/matzehuels/ratioplot/pkg/stats"
)

// Default draw options.
const (
	DefaultPrimaryDrawOpt   = "hist"
	DefaultSecondaryDrawOpt = "E"
	DefaultGraphDrawOpt     = "AP"
	DefaultFitDrawOpt       = "L"
)

// Options configures a RatioPlot.
type Options struct {
	// Option selects the comparison mode and error mode. Draw option
	// keywords (grid, confint, hideup, ...) found here set the initial
	// decoration state; later Draw options override them.
	Option string

	// Draw options for the primary, the secondary (or fit) and the
	// comparison graph.
	PrimaryDrawOpt   string
	SecondaryDrawOpt string
	GraphDrawOpt     string

	// Geometry overrides the default layout when non-zero.
	Geometry layout.Geometry

	// Interval estimates the confidence bands. Nil selects stats.Garwood.
	Interval stats.IntervalEstimator
	// Ratio estimates asymmetric ratio errors in "pois" mode. Nil selects
	// stats.ClopperPearsonRatio.
	Ratio stats.RatioEstimator

	Logger *log.Logger
}

// ParseOption extracts the comparison mode and the error mode from an
// option string. Unknown words are ignored.
func ParseOption(opt string) (compare.Mode, compare.ErrorMode) {
	o := strings.ToLower(opt)
	mode, em := compare.Ratio, compare.ErrorSymmetric

	// diffsig must be consumed before diff matches inside it.
	switch {
	case take(&o, "diffsig"):
		mode = compare.DifferenceOverError
	case take(&o, "diff"):
		mode = compare.Difference
	case take(&o, "pois"):
		mode = compare.RatioAsymmetric
	case take(&o, "divsym"):
		mode = compare.Ratio
	}
	switch {
	case take(&o, "errasym"):
		em = compare.ErrorAsymmetric
	case take(&o, "errfunc"):
		em = compare.ErrorFromFunction
	}
	return mode, em
}

// drawFlags are the decorations toggled by a Draw option string. Nil
// pointers leave the current setting alone.
type drawFlags struct {
	grid    *bool
	confint *bool
	hide    *axis.HideLabelMode
}

func parseDrawOption(opt string) drawFlags {
	o := strings.ToLower(opt)
	var f drawFlags

	// Negated and forced forms contain the plain keywords.
	switch {
	case take(&o, "nogrid"):
		f.grid = ptr(false)
	case take(&o, "grid"):
		f.grid = ptr(true)
	}
	switch {
	case take(&o, "noconfint"):
		f.confint = ptr(false)
	case take(&o, "confint"):
		f.confint = ptr(true)
	}
	for _, kw := range []struct {
		word string
		mode axis.HideLabelMode
	}{
		{"fhideup", axis.ForceHideUp},
		{"fhidelow", axis.ForceHideLow},
		{"hideup", axis.HideUp},
		{"hidelow", axis.HideLow},
		{"nohide", axis.NoHide},
	} {
		if take(&o, kw.word) {
			f.hide = ptr(kw.mode)
			break
		}
	}
	return f
}

// take removes the first occurrence of kw from *s and reports whether it
// was present.
func take(s *string, kw string) bool {
	i := strings.Index(*s, kw)
	if i < 0 {
		return false
	}
	*s = (*s)[:i] + (*s)[i+len(kw):]
	return true
}

func ptr[T any](v T) *T { return &v }
