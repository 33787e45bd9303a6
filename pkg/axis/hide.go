package axis

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/ratioplot/pkg/errors"
)

// HideLabelMode decides which y label is suppressed when the lowest upper
// label and the highest lower label meet at the region boundary.
type HideLabelMode int

const (
	// HideLow hides the lower region's top label if the two overlap.
	HideLow HideLabelMode = iota
	// HideUp hides the upper region's bottom label if the two overlap.
	HideUp
	// NoHide never hides a label.
	NoHide
	// ForceHideUp always hides the upper region's bottom label.
	ForceHideUp
	// ForceHideLow always hides the lower region's top label.
	ForceHideLow
)

var hideNames = map[HideLabelMode]string{
	HideLow:      "hidelow",
	HideUp:       "hideup",
	NoHide:       "nohide",
	ForceHideUp:  "fhideup",
	ForceHideLow: "fhidelow",
}

func (m HideLabelMode) String() string {
	if s, ok := hideNames[m]; ok {
		return s
	}
	return fmt.Sprintf("HideLabelMode(%d)", int(m))
}

// ParseHideLabelMode parses a mode name as printed by String.
func ParseHideLabelMode(s string) (HideLabelMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range hideNames {
		if name == s {
			return m, nil
		}
	}
	return HideLow, errors.New(errors.ErrCodeInvalidOption, "unknown label mode %q", s)
}

// TextMeasurer reports the rendered size in pixels of text drawn with a
// font of the given pixel height.
type TextMeasurer interface {
	Measure(text string, size float64) (w, h float64)
}

// BasicMeasurer measures with the fixed 7x13 bitmap face, scaled linearly
// to the requested size.
type BasicMeasurer struct{}

// Measure implements TextMeasurer.
func (BasicMeasurer) Measure(text string, size float64) (w, h float64) {
	face := basicfont.Face7x13
	scale := size / float64(face.Metrics().Height.Ceil())
	adv := font.MeasureString(face, text)
	return float64(adv) / 64 * scale, size
}
