package hist

import (
	"math"
	"slices"

	"github.com/matzehuels/ratioplot/pkg/errors"
)

// Stack is an ordered collection of histograms with identical binning,
// drawn cumulatively. The first member sits at the bottom.
type Stack struct {
	Name    string
	Members []*Histogram
}

// NewStack creates a stack from members sharing one binning.
func NewStack(name string, members ...*Histogram) (*Stack, error) {
	s := &Stack{Name: name}
	for _, m := range members {
		if err := s.Add(m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a member on top of the stack.
func (s *Stack) Add(h *Histogram) error {
	if h == nil {
		return errors.New(errors.ErrCodeInvalidInput, "stack %q: nil member", s.Name)
	}
	if err := h.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "stack %q", s.Name)
	}
	if len(s.Members) > 0 {
		if err := SameBinning(s.Members[0].Edges, h.Edges); err != nil {
			return errors.Wrap(errors.ErrCodeIncompatibleBinning, err, "stack %q: member %q", s.Name, h.Name)
		}
	}
	s.Members = append(s.Members, h)
	return nil
}

// Validate checks every member and their common binning. Stacks built
// with NewStack or Add are already valid.
func (s *Stack) Validate() error {
	if len(s.Members) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "stack %q has no members", s.Name)
	}
	for _, m := range s.Members {
		if m == nil {
			return errors.New(errors.ErrCodeInvalidInput, "stack %q: nil member", s.Name)
		}
		if err := m.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "stack %q", s.Name)
		}
		if err := SameBinning(s.Members[0].Edges, m.Edges); err != nil {
			return errors.Wrap(errors.ErrCodeIncompatibleBinning, err, "stack %q: member %q", s.Name, m.Name)
		}
	}
	return nil
}

// Binning implements Drawable.
func (s *Stack) Binning() []float64 {
	if len(s.Members) == 0 {
		return nil
	}
	return s.Members[0].Edges
}

// ValueAt implements Drawable.
func (s *Stack) ValueAt(x float64) float64 {
	var v float64
	for _, m := range s.Members {
		v += m.ValueAt(x)
	}
	return v
}

// Total implements Drawable. Squared weights add, so the error of the sum
// is the quadrature sum of the member errors.
func (s *Stack) Total() *Histogram {
	if len(s.Members) == 0 {
		return &Histogram{Name: s.Name}
	}
	first := s.Members[0]
	t := &Histogram{
		Name:   s.Name,
		Edges:  slices.Clone(first.Edges),
		Counts: make([]float64, first.NBins()),
		SumW2:  make([]float64, first.NBins()),
	}
	for _, m := range s.Members {
		for i := range t.Counts {
			t.Counts[i] += m.Counts[i]
			e := m.Error(i)
			t.SumW2[i] += e * e
		}
	}
	return t
}

// Cumulative returns, per member, the running sum of contents up to and
// including that member. Used to draw the stack layers.
func (s *Stack) Cumulative() [][]float64 {
	out := make([][]float64, len(s.Members))
	var run []float64
	for k, m := range s.Members {
		if run == nil {
			run = make([]float64, m.NBins())
		}
		for i, c := range m.Counts {
			run[i] += c
		}
		out[k] = slices.Clone(run)
	}
	return out
}

// Max returns the largest summed bin content.
func (s *Stack) Max() float64 {
	m := math.Inf(-1)
	for _, c := range s.Total().Counts {
		m = math.Max(m, c)
	}
	return m
}
