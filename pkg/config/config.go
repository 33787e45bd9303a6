// Package config loads plot style files.
//
// A style file is TOML. Every key is optional; unset keys leave the plot
// defaults untouched:
//
//	option = "diffsig"
//	draw_option = "grid fhideup"
//	width = 800
//	height = 600
//	gridlines = [-2, 0, 2]
//
//	[geometry]
//	split_fraction = 0.35
//	separation_margin = 0.02
//
//	[confidence]
//	levels = [0.68, 0.95]
//	inner_color = "#00ff00"
//	outer_color = "#ffff00"
//
//	[scale]
//	c1 = 1.0
//	c2 = 0.5
//
//	[labels]
//	hide = "hidelow"
//	x_title = "m [GeV]"
//
//	[draw]
//	primary = "hist"
//	secondary = "E"
//	graph = "AP"
//
//	[style]
//	font = "Helvetica"
//	background = "white"
package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/ratioplot/pkg/axis"
	"github.com/matzehuels/ratioplot/pkg/errors"
)

// Config is a decoded style file.
type Config struct {
	Option     string    `toml:"option,omitempty" json:"option,omitempty"`
	DrawOption string    `toml:"draw_option,omitempty" json:"draw_option,omitempty"`
	Width      float64   `toml:"width,omitempty" json:"width,omitempty" validate:"gte=0,lte=8192"`
	Height     float64   `toml:"height,omitempty" json:"height,omitempty" validate:"gte=0,lte=8192"`
	Gridlines  []float64 `toml:"gridlines,omitempty" json:"gridlines,omitempty"`

	Geometry   Geometry   `toml:"geometry,omitempty" json:"geometry,omitempty"`
	Confidence Confidence `toml:"confidence,omitempty" json:"confidence,omitempty"`
	Scale      Scale      `toml:"scale,omitempty" json:"scale,omitempty"`
	Labels     Labels     `toml:"labels,omitempty" json:"labels,omitempty"`
	Draw       Draw       `toml:"draw,omitempty" json:"draw,omitempty"`
	Style      Style      `toml:"style,omitempty" json:"style,omitempty"`
}

// Geometry overrides parts of the layout. Nil fields keep the default.
type Geometry struct {
	SplitFraction    *float64 `toml:"split_fraction,omitempty" json:"split_fraction,omitempty" validate:"omitempty,gt=0,lt=1"`
	UpTopMargin      *float64 `toml:"up_top_margin,omitempty" json:"up_top_margin,omitempty" validate:"omitempty,gte=0,lt=1"`
	UpBottomMargin   *float64 `toml:"up_bottom_margin,omitempty" json:"up_bottom_margin,omitempty" validate:"omitempty,gte=0,lt=1"`
	LowTopMargin     *float64 `toml:"low_top_margin,omitempty" json:"low_top_margin,omitempty" validate:"omitempty,gte=0,lt=1"`
	LowBottomMargin  *float64 `toml:"low_bottom_margin,omitempty" json:"low_bottom_margin,omitempty" validate:"omitempty,gte=0,lt=1"`
	LeftMargin       *float64 `toml:"left_margin,omitempty" json:"left_margin,omitempty" validate:"omitempty,gte=0,lt=1"`
	RightMargin      *float64 `toml:"right_margin,omitempty" json:"right_margin,omitempty" validate:"omitempty,gte=0,lt=1"`
	SeparationMargin *float64 `toml:"separation_margin,omitempty" json:"separation_margin,omitempty" validate:"omitempty,gte=0,lt=1"`
	Inset            *float64 `toml:"inset,omitempty" json:"inset,omitempty" validate:"omitempty,gte=0,lt=0.495"`
}

// Confidence configures the bands around the comparison graph.
type Confidence struct {
	Levels     []float64 `toml:"levels,omitempty" json:"levels,omitempty" validate:"omitempty,len=2,dive,gt=0,lt=1"`
	InnerColor string    `toml:"inner_color,omitempty" json:"inner_color,omitempty" validate:"omitempty,color"`
	OuterColor string    `toml:"outer_color,omitempty" json:"outer_color,omitempty" validate:"omitempty,color"`
}

// Scale holds the primary (c1) and secondary (c2) scale factors.
type Scale struct {
	C1 *float64 `toml:"c1,omitempty" json:"c1,omitempty" validate:"omitempty,ne=0"`
	C2 *float64 `toml:"c2,omitempty" json:"c2,omitempty" validate:"omitempty,ne=0"`
}

// Labels configures axis titles and label collision handling.
type Labels struct {
	Hide      string `toml:"hide,omitempty" json:"hide,omitempty" validate:"omitempty,hidemode"`
	XTitle    string `toml:"x_title,omitempty" json:"x_title,omitempty"`
	UpYTitle  string `toml:"up_y_title,omitempty" json:"up_y_title,omitempty"`
	LowYTitle string `toml:"low_y_title,omitempty" json:"low_y_title,omitempty"`
}

// Draw holds the per-series draw options.
type Draw struct {
	Primary   string `toml:"primary,omitempty" json:"primary,omitempty"`
	Secondary string `toml:"secondary,omitempty" json:"secondary,omitempty"`
	Graph     string `toml:"graph,omitempty" json:"graph,omitempty"`
}

// Style is passed to the SVG sink.
type Style struct {
	Font       string `toml:"font,omitempty" json:"font,omitempty"`
	Background string `toml:"background,omitempty" json:"background,omitempty" validate:"omitempty,color"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		return !drawing.ParseColor(fl.Field().String()).IsZero()
	})
	_ = validate.RegisterValidation("hidemode", func(fl validator.FieldLevel) bool {
		_, err := axis.ParseHideLabelMode(fl.Field().String())
		return err == nil
	})
}

// Load reads and validates the style file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a style file. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if l := c.Confidence.Levels; len(l) == 2 && l[0] >= l[1] {
		return errors.New(errors.ErrCodeInvalidConfig, "confidence levels %v must increase", l)
	}
	return nil
}

// Encode returns the canonical TOML form of c.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}
