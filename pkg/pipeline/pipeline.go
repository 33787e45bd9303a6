// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode a histogram document (JSON or YAML)
//  2. Build: construct the ratio plot, apply the style and draw a scene
//  3. Render: encode the scene as SVG, PNG, PDF or JSON
//
// Rendered artifacts are cached by the hash of the input document and the
// options that affect the output, so a repeated request skips all three
// stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   data,
//	    Option:  "diffsig",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ratioplot/pkg/cache"
	"github.com/matzehuels/ratioplot/pkg/config"
	"github.com/matzehuels/ratioplot/pkg/errors"
	rpio "github.com/matzehuels/ratioplot/pkg/io"
	"github.com/matzehuels/ratioplot/pkg/layout"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = layout.DefaultSurfaceSize

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = layout.DefaultSurfaceSize

	// MaxSize bounds the surface width and height in pixels.
	MaxSize = 8192
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input is the raw histogram document.
	Input       []byte `json:"-"`
	InputFormat string `json:"input_format,omitempty"`

	// Option selects the comparison; DrawOption toggles grid, bands and
	// label hiding. Empty values fall back to the style.
	Option     string `json:"option,omitempty"`
	DrawOption string `json:"draw_option,omitempty"`

	Width   float64        `json:"width,omitempty"`
	Height  float64        `json:"height,omitempty"`
	Formats []string       `json:"formats,omitempty"`
	Style   *config.Config `json:"style,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID string

	// InputHash is the cache key of the input document.
	InputHash string

	// Plot and Scene are nil when every artifact came from the cache.
	Plot  *ratioplot.RatioPlot
	Scene *ratioplot.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Bins       int
	Points     int
	ParseTime  time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateInputFormat checks that a document format is valid.
func ValidateInputFormat(format string) error {
	if format != rpio.FormatJSON && format != rpio.FormatYAML {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid input_format: %q (must be one of: json, yaml)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Input) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input document is required")
	}
	if o.InputFormat == "" {
		o.InputFormat = rpio.FormatJSON
	}
	if err := ValidateInputFormat(o.InputFormat); err != nil {
		return err
	}

	if o.Style == nil {
		o.Style = &config.Config{}
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}
	if o.Option == "" {
		o.Option = o.Style.Option
	}
	if o.DrawOption == "" {
		o.DrawOption = o.Style.DrawOption
	}

	o.SetRenderDefaults()
	if !(o.Width > 0 && o.Width <= MaxSize) || !(o.Height > 0 && o.Height <= MaxSize) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid size %vx%v, each side must be in (0, %d]", o.Width, o.Height, MaxSize)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = slices.Compact(o.Formats)
	if o.Width == 0 {
		o.Width = orDefault(o.Style, func(c *config.Config) float64 { return c.Width }, DefaultWidth)
	}
	if o.Height == 0 {
		o.Height = orDefault(o.Style, func(c *config.Config) float64 { return c.Height }, DefaultHeight)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// RenderKeyOpts returns cache key options for one output format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	k := cache.RenderKeyOpts{
		Option:     o.Option,
		DrawOption: o.DrawOption,
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
	}
	if o.Style != nil {
		if data, err := o.Style.Encode(); err == nil {
			k.Style = cache.Hash(data)
		}
	}
	return k
}

func (o *Options) style() *config.Config {
	if o.Style == nil {
		return &config.Config{}
	}
	return o.Style
}

func orDefault(c *config.Config, get func(*config.Config) float64, def float64) float64 {
	if c != nil {
		if v := get(c); v > 0 {
			return v
		}
	}
	return def
}
