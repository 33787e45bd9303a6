package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/ratioplot/pkg/errors"
	"github.com/matzehuels/ratioplot/pkg/hist"
)

const ratioJSON = `{
  "title": "spectrum",
  "x_title": "x",
  "primary": {"name": "data", "bins": {"n": 4, "lo": 0, "hi": 4}, "counts": [12, 20, 27, 0]},
  "secondary": {"name": "mc", "edges": [0, 1, 2, 3, 4], "counts": [10, 20, 30, 5], "sumw2": [5, 10, 15, 2.5]}
}`

const fitYAML = `
title: fit
primary:
  name: data
  edges: [0, 1, 2]
  counts: [4, 9]
  fit:
    kind: pol
    params: [1, 2]
`

func TestReadJSON(t *testing.T) {
	in, err := Read(strings.NewReader(ratioJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if in.Title != "spectrum" || in.XTitle != "x" {
		t.Errorf("titles = %q, %q", in.Title, in.XTitle)
	}
	h := in.Primary.Total()
	if h.NBins() != 4 || h.Content(2) != 27 {
		t.Errorf("primary = %v, want 4 bins with 27 in bin 2", h.Counts)
	}
	if h.Title != "spectrum" {
		t.Errorf("primary title = %q, want document title", h.Title)
	}
	if in.Secondary == nil || !in.Secondary.Weighted() {
		t.Fatal("secondary should be weighted")
	}
	if in.Fit != nil {
		t.Errorf("Fit = %v, want nil", in.Fit)
	}
}

func TestReadYAMLFit(t *testing.T) {
	in, err := Read(strings.NewReader(fitYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if in.Secondary != nil {
		t.Error("Secondary should be nil")
	}
	if in.Fit == nil {
		t.Fatal("Fit should be set")
	}
	if got := in.Fit.Eval(2); got != 5 {
		t.Errorf("Fit.Eval(2) = %v, want 5", got)
	}
}

func TestReadStack(t *testing.T) {
	doc := `{
	  "stack": [
	    {"name": "a", "edges": [0, 1, 2], "counts": [1, 2]},
	    {"name": "b", "edges": [0, 1, 2], "counts": [3, 4]}
	  ],
	  "secondary": {"name": "data", "edges": [0, 1, 2], "counts": [4, 6]}
	}`
	in, err := Read(strings.NewReader(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	st, ok := in.Primary.(*hist.Stack)
	if !ok {
		t.Fatalf("Primary = %T, want *hist.Stack", in.Primary)
	}
	if got := st.ValueAt(1.5); got != 6 {
		t.Errorf("ValueAt(1.5) = %v, want 6", got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format string
		code   errors.Code
	}{
		{"malformed", `{"primary":`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"primry": {}}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unknown format", `{}`, "toml", errors.ErrCodeInvalidFormat},
		{"empty", `{}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"no binning", `{"primary": {"name": "a", "counts": [1]}, "secondary": {"name": "b", "edges": [0, 1], "counts": [1]}}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"no comparison", `{"primary": {"name": "a", "edges": [0, 1], "counts": [1]}}`, FormatJSON, errors.ErrCodeMissingFit},
		{"bad fit kind", `{"primary": {"name": "a", "edges": [0, 1], "counts": [1], "fit": {"kind": "landau", "params": [1]}}}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"gaus arity", `{"primary": {"name": "a", "edges": [0, 1], "counts": [1], "fit": {"kind": "gaus", "params": [1]}}}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"count mismatch", `{"primary": {"name": "a", "edges": [0, 1, 2], "counts": [1]}, "secondary": {"name": "b", "edges": [0, 1, 2], "counts": [1, 2]}}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"stack binning", `{"stack": [{"name": "a", "edges": [0, 1], "counts": [1]}, {"name": "b", "edges": [0, 2], "counts": [1]}], "secondary": {"name": "c", "edges": [0, 1], "counts": [1]}}`, FormatJSON, errors.ErrCodeIncompatibleBinning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc), tt.format)
			if err == nil {
				t.Fatal("Read() succeeded, want error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"a.json", FormatJSON},
		{"a.yaml", FormatYAML},
		{"dir/A.YML", FormatYAML},
		{"noext", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	h := hist.MustNew("data", []float64{0, 1, 2, 4})
	copy(h.Counts, []float64{3, 5, 7})
	h.Fit = hist.Gaus{Amplitude: 7, Mean: 2, Sigma: 1}

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&Document{Primary: FromHistogram(h)}, &buf, format); err != nil {
				t.Fatalf("Write: %v", err)
			}
			in, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			got := in.Primary.Total()
			if err := hist.SameBinning(got.Edges, h.Edges); err != nil {
				t.Errorf("binning changed: %v", err)
			}
			for i := range h.Counts {
				if got.Counts[i] != h.Counts[i] {
					t.Errorf("Counts[%d] = %v, want %v", i, got.Counts[i], h.Counts[i])
				}
			}
			if in.Fit != h.Fit {
				t.Errorf("Fit = %v, want %v", in.Fit, h.Fit)
			}
		})
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fit.yaml")
	if err := os.WriteFile(path, []byte(fitYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(path); err != nil {
		t.Errorf("Import(%s): %v", path, err)
	}

	_, err := Import(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
