package hist

import (
	"math"
	"slices"
	"sort"

	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/stats"
)

// edgeTolerance is the relative tolerance used when comparing bin edges.
const edgeTolerance = 1e-9

// Drawable is anything that can be drawn as the primary series of a ratio
// plot: a single histogram or a stack of them.
type Drawable interface {
	// Binning returns the bin edges (len = bins+1).
	Binning() []float64
	// ValueAt returns the (summed) content of the bin containing x, or 0
	// when x lies outside the binning.
	ValueAt(x float64) float64
	// Total returns the summed histogram. Callers must not modify it.
	Total() *Histogram
	// Validate reports inconsistent bins or contents.
	Validate() error
}

// Histogram is a one-dimensional binned series.
type Histogram struct {
	Name   string
	Title  string
	Edges  []float64 // bin edges, strictly increasing
	Counts []float64 // bin contents
	SumW2  []float64 // sums of squared weights; nil means unweighted
	Fit    Model     // optional fitted model
}

// New creates an empty histogram with the given bin edges.
func New(name string, edges []float64) (*Histogram, error) {
	if err := errors.ValidateEdges(edges); err != nil {
		return nil, err
	}
	return &Histogram{
		Name:   name,
		Edges:  slices.Clone(edges),
		Counts: make([]float64, len(edges)-1),
	}, nil
}

// MustNew is like New but panics on invalid edges. Intended for tests and
// literals.
func MustNew(name string, edges []float64) *Histogram {
	h, err := New(name, edges)
	if err != nil {
		panic(err)
	}
	return h
}

// FromCounts creates a histogram with the given edges and contents.
func FromCounts(name string, edges, counts []float64) (*Histogram, error) {
	h, err := New(name, edges)
	if err != nil {
		return nil, err
	}
	if len(counts) != h.NBins() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %d counts for %d bins", name, len(counts), h.NBins())
	}
	copy(h.Counts, counts)
	return h, nil
}

// Uniform returns n equal-width bin edges spanning [lo, hi].
func Uniform(n int, lo, hi float64) []float64 {
	edges := make([]float64, n+1)
	w := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + float64(i)*w
	}
	edges[n] = hi
	return edges
}

// Validate checks internal consistency.
func (h *Histogram) Validate() error {
	if err := errors.ValidateEdges(h.Edges); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "histogram %q", h.Name)
	}
	if len(h.Counts) != len(h.Edges)-1 {
		return errors.New(errors.ErrCodeInvalidInput, "histogram %q: %d counts for %d bins", h.Name, len(h.Counts), len(h.Edges)-1)
	}
	if h.SumW2 != nil && len(h.SumW2) != len(h.Counts) {
		return errors.New(errors.ErrCodeInvalidInput, "histogram %q: %d sumw2 entries for %d bins", h.Name, len(h.SumW2), len(h.Counts))
	}
	for _, c := range h.Counts {
		if err := errors.ValidateFinite("bin content", c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "histogram %q", h.Name)
		}
	}
	for _, w := range h.SumW2 {
		if err := errors.ValidateFinite("sum of squared weights", w); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "histogram %q", h.Name)
		}
	}
	return nil
}

// NBins returns the number of bins.
func (h *Histogram) NBins() int { return len(h.Counts) }

// Binning implements Drawable.
func (h *Histogram) Binning() []float64 { return h.Edges }

// Total implements Drawable.
func (h *Histogram) Total() *Histogram { return h }

// ValueAt implements Drawable.
func (h *Histogram) ValueAt(x float64) float64 {
	i := h.FindBin(x)
	if i < 0 {
		return 0
	}
	return h.Counts[i]
}

// FindBin returns the index of the bin containing x, or -1 if x is outside
// [first edge, last edge). The last edge itself belongs to the last bin.
func (h *Histogram) FindBin(x float64) int {
	n := len(h.Edges)
	if n < 2 || math.IsNaN(x) || x < h.Edges[0] || x > h.Edges[n-1] {
		return -1
	}
	if x == h.Edges[n-1] {
		return n - 2
	}
	return sort.Search(n, func(k int) bool { return h.Edges[k] > x }) - 1
}

// Fill adds weight w to the bin containing x. Out-of-range values are dropped.
func (h *Histogram) Fill(x, w float64) {
	i := h.FindBin(x)
	if i < 0 {
		return
	}
	if h.SumW2 == nil && w != 1 {
		h.SumW2 = slices.Clone(h.Counts)
	}
	h.Counts[i] += w
	if h.SumW2 != nil {
		h.SumW2[i] += w * w
	}
}

// Content returns the content of bin i.
func (h *Histogram) Content(i int) float64 { return h.Counts[i] }

// Center returns the center of bin i.
func (h *Histogram) Center(i int) float64 { return (h.Edges[i] + h.Edges[i+1]) / 2 }

// LowEdge returns the lower edge of bin i.
func (h *Histogram) LowEdge(i int) float64 { return h.Edges[i] }

// Width returns the width of bin i.
func (h *Histogram) Width(i int) float64 { return h.Edges[i+1] - h.Edges[i] }

// Weighted reports whether the histogram carries explicit squared weights
// that differ from its contents.
func (h *Histogram) Weighted() bool {
	if h.SumW2 == nil {
		return false
	}
	for i, w2 := range h.SumW2 {
		if w2 != h.Counts[i] {
			return true
		}
	}
	return false
}

// Error returns the symmetric error of bin i: √ΣW² for weighted
// histograms, √|content| otherwise.
func (h *Histogram) Error(i int) float64 {
	if h.SumW2 != nil {
		return math.Sqrt(h.SumW2[i])
	}
	return math.Sqrt(math.Abs(h.Counts[i]))
}

// ErrorLow returns the lower error of bin i. Unweighted bins use the 1σ
// Poisson interval, weighted bins fall back to Error.
func (h *Histogram) ErrorLow(i int) float64 {
	if h.Weighted() {
		return h.Error(i)
	}
	low, _ := stats.PoissonErrors(h.Counts[i])
	return low
}

// ErrorUp returns the upper error of bin i. See ErrorLow.
func (h *Histogram) ErrorUp(i int) float64 {
	if h.Weighted() {
		return h.Error(i)
	}
	_, up := stats.PoissonErrors(h.Counts[i])
	return up
}

// Integral returns the sum of all bin contents.
func (h *Histogram) Integral() float64 {
	var s float64
	for _, c := range h.Counts {
		s += c
	}
	return s
}

// Clone returns a deep copy. The fit model is shared.
func (h *Histogram) Clone() *Histogram {
	c := *h
	c.Edges = slices.Clone(h.Edges)
	c.Counts = slices.Clone(h.Counts)
	c.SumW2 = slices.Clone(h.SumW2)
	return &c
}

// Scaled returns a copy with every content multiplied by c and squared
// weights by c².
func (h *Histogram) Scaled(c float64) *Histogram {
	s := h.Clone()
	if c == 1 {
		return s
	}
	if s.SumW2 == nil {
		s.SumW2 = make([]float64, len(s.Counts))
		for i, v := range h.Counts {
			s.SumW2[i] = math.Abs(v)
		}
	}
	for i := range s.Counts {
		s.Counts[i] *= c
		s.SumW2[i] *= c * c
	}
	return s
}

// SameBinning returns an ErrCodeIncompatibleBinning error unless a and b
// have the same number of bins and matching edges.
func SameBinning(a, b []float64) error {
	if len(a) != len(b) {
		return errors.New(errors.ErrCodeIncompatibleBinning, "bin counts differ: %d vs %d", len(a)-1, len(b)-1)
	}
	for i := range a {
		scale := math.Max(1, math.Max(math.Abs(a[i]), math.Abs(b[i])))
		if math.Abs(a[i]-b[i]) > edgeTolerance*scale {
			return errors.New(errors.ErrCodeIncompatibleBinning, "edge %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	return nil
}
