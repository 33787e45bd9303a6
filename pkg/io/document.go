package io

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/hist"
)

// Document is the decoded form of an input file.
type Document struct {
	Title     string      `json:"title,omitempty" yaml:"title,omitempty"`
	XTitle    string      `json:"x_title,omitempty" yaml:"x_title,omitempty"`
	YTitle    string      `json:"y_title,omitempty" yaml:"y_title,omitempty"`
	Primary   *HistSpec   `json:"primary,omitempty" yaml:"primary,omitempty"`
	Stack     []*HistSpec `json:"stack,omitempty" yaml:"stack,omitempty" validate:"omitempty,dive,required"`
	Secondary *HistSpec   `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// HistSpec describes one histogram.
type HistSpec struct {
	Name   string    `json:"name" yaml:"name" validate:"required"`
	Title  string    `json:"title,omitempty" yaml:"title,omitempty"`
	Edges  []float64 `json:"edges,omitempty" yaml:"edges,omitempty" validate:"omitempty,min=2"`
	Bins   *BinSpec  `json:"bins,omitempty" yaml:"bins,omitempty"`
	Counts []float64 `json:"counts" yaml:"counts" validate:"required"`
	SumW2  []float64 `json:"sumw2,omitempty" yaml:"sumw2,omitempty"`
	Fit    *FitSpec  `json:"fit,omitempty" yaml:"fit,omitempty"`
}

// BinSpec is a uniform binning.
type BinSpec struct {
	N  int     `json:"n" yaml:"n" validate:"gt=0"`
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi" validate:"gtfield=Lo"`
}

// FitSpec is a fitted model attached to a histogram.
type FitSpec struct {
	Kind   string    `json:"kind" yaml:"kind" validate:"oneof=pol gaus expo"`
	Params []float64 `json:"params" yaml:"params" validate:"min=1"`
}

// Input is a validated document ready for plotting.
type Input struct {
	Title, XTitle, YTitle string

	// Primary is the histogram or stack drawn in the upper region.
	Primary hist.Drawable
	// Secondary is nil for fit-residual documents.
	Secondary *hist.Histogram
	// Fit is the model attached to a single-histogram primary, if any.
	Fit hist.Model
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the document structure.
func (d *Document) Validate() error {
	switch {
	case d.Primary == nil && len(d.Stack) == 0:
		return errors.New(errors.ErrCodeInvalidInput, "document needs a primary or a stack")
	case d.Primary != nil && len(d.Stack) > 0:
		return errors.New(errors.ErrCodeInvalidInput, "primary and stack are mutually exclusive")
	}
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid document")
	}
	for _, s := range d.specs() {
		if (s.Edges == nil) == (s.Bins == nil) {
			return errors.New(errors.ErrCodeInvalidInput, "%s: exactly one of edges and bins is required", s.Name)
		}
	}
	if d.Secondary == nil && (d.Primary == nil || d.Primary.Fit == nil) {
		return errors.New(errors.ErrCodeMissingFit, "document has neither a secondary histogram nor a fit on the primary")
	}
	return nil
}

func (d *Document) specs() []*HistSpec {
	out := append([]*HistSpec(nil), d.Stack...)
	if d.Primary != nil {
		out = append(out, d.Primary)
	}
	if d.Secondary != nil {
		out = append(out, d.Secondary)
	}
	return out
}

// Build validates d and constructs the histograms.
func (d *Document) Build() (*Input, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	in := &Input{Title: d.Title, XTitle: d.XTitle, YTitle: d.YTitle}

	if d.Primary != nil {
		h, err := d.Primary.Histogram()
		if err != nil {
			return nil, err
		}
		if h.Title == "" {
			h.Title = d.Title
		}
		in.Primary, in.Fit = h, h.Fit
	} else {
		members := make([]*hist.Histogram, len(d.Stack))
		for i, s := range d.Stack {
			h, err := s.Histogram()
			if err != nil {
				return nil, err
			}
			members[i] = h
		}
		st, err := hist.NewStack(d.Title, members...)
		if err != nil {
			return nil, err
		}
		in.Primary = st
	}

	if d.Secondary != nil {
		h, err := d.Secondary.Histogram()
		if err != nil {
			return nil, err
		}
		in.Secondary = h
	}
	return in, nil
}

// Histogram constructs the histogram described by s.
func (s *HistSpec) Histogram() (*hist.Histogram, error) {
	edges := s.Edges
	if s.Bins != nil {
		edges = hist.Uniform(s.Bins.N, s.Bins.Lo, s.Bins.Hi)
	}
	h, err := hist.FromCounts(s.Name, edges, s.Counts)
	if err != nil {
		return nil, err
	}
	h.Title = s.Title
	if s.SumW2 != nil {
		if len(s.SumW2) != h.NBins() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %d sumw2 entries for %d bins", s.Name, len(s.SumW2), h.NBins())
		}
		h.SumW2 = append([]float64(nil), s.SumW2...)
	}
	if s.Fit != nil {
		m, err := s.Fit.Model()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: fit", s.Name)
		}
		h.Fit = m
	}
	return h, nil
}

// Model constructs the fitted function.
func (f *FitSpec) Model() (hist.Model, error) {
	p := f.Params
	switch strings.ToLower(f.Kind) {
	case "pol":
		if len(p) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pol needs at least one coefficient")
		}
		return hist.Poly(append([]float64(nil), p...)), nil
	case "gaus":
		if len(p) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "gaus needs 3 parameters, got %d", len(p))
		}
		return hist.Gaus{Amplitude: p[0], Mean: p[1], Sigma: p[2]}, nil
	case "expo":
		if len(p) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "expo needs 2 parameters, got %d", len(p))
		}
		return hist.Expo{Constant: p[0], Slope: p[1]}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown fit kind %q", f.Kind)
}

// FromHistogram returns the document form of h. Fits of a type other than
// Poly, Gaus or Expo are dropped.
func FromHistogram(h *hist.Histogram) *HistSpec {
	s := &HistSpec{
		Name:   h.Name,
		Title:  h.Title,
		Edges:  append([]float64(nil), h.Edges...),
		Counts: append([]float64(nil), h.Counts...),
	}
	if h.SumW2 != nil {
		s.SumW2 = append([]float64(nil), h.SumW2...)
	}
	switch m := h.Fit.(type) {
	case hist.Poly:
		s.Fit = &FitSpec{Kind: "pol", Params: append([]float64(nil), m...)}
	case hist.Gaus:
		s.Fit = &FitSpec{Kind: "gaus", Params: []float64{m.Amplitude, m.Mean, m.Sigma}}
	case hist.Expo:
		s.Fit = &FitSpec{Kind: "expo", Params: []float64{m.Constant, m.Slope}}
	}
	return s
}
