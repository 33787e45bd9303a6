package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ratioplot/pkg/cache"
	"github.com/matzehuels/ratioplot/pkg/pipeline"
)

const doc = `{
  "primary": {"name": "data", "bins": {"n": 4, "lo": 0, "hi": 4}, "counts": [12, 20, 27, 4]},
  "secondary": {"name": "mc", "bins": {"n": 4, "lo": 0, "hi": 4}, "counts": [10, 20, 30, 5]}
}`

const yamlDoc = `
primary: {name: data, edges: [0, 1, 2], counts: [4, 9]}
secondary: {name: mc, edges: [0, 1, 2], counts: [5, 8]}
`

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(fc, nil, logger), logger, cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func renderBody(t *testing.T, req RenderRequest) string {
	t.Helper()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("X-Request-ID = %q, want a UUID", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, Config{})
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}
}

func TestRenderSVG(t *testing.T) {
	ts := newTestServer(t, Config{})
	body := renderBody(t, RenderRequest{Document: json.RawMessage(doc), Option: "diff"})

	resp := post(t, ts.URL+"/v1/render", "application/json", body)
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body %s", resp.StatusCode, b)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("response is not svg")
	}

	again := post(t, ts.URL+"/v1/render", "application/json", body)
	if got := again.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
}

func TestRenderJSONFormatQuery(t *testing.T) {
	ts := newTestServer(t, Config{})
	body := renderBody(t, RenderRequest{Document: json.RawMessage(doc)})

	resp := post(t, ts.URL+"/v1/render?format=json", "application/json", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var scene map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&scene); err != nil {
		t.Errorf("body is not JSON: %v", err)
	}
}

func TestRenderYAML(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp := post(t, ts.URL+"/v1/render?format=json&width=800&height=400", "application/yaml", yamlDoc)
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body %s", resp.StatusCode, b)
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t, Config{MaxBodyBytes: 4096})
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
	}{
		{"malformed request", "application/json", `{`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"missing document", "application/json", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "application/json", renderBody(t, RenderRequest{Document: json.RawMessage(doc), Format: "gif"}), http.StatusBadRequest, "INVALID_FORMAT"},
		{"binning", "application/json", renderBody(t, RenderRequest{Document: json.RawMessage(
			`{"primary": {"name": "a", "edges": [0, 1], "counts": [1]}, "secondary": {"name": "b", "edges": [0, 2], "counts": [1]}}`)}),
			http.StatusBadRequest, "INCOMPATIBLE_BINNING"},
		{"bad width", "application/yaml", yamlDoc, http.StatusBadRequest, "INVALID_INPUT"},
		{"oversized raster", "application/json", renderBody(t, RenderRequest{Document: json.RawMessage(doc), Format: "png", Width: 1e7}), http.StatusBadRequest, "INVALID_INPUT"},
		{"too large", "application/json", `{"document": "` + strings.Repeat("x", 5000) + `"}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := ts.URL + "/v1/render"
			if tt.name == "bad width" {
				url += "?width=wide"
			}
			resp := post(t, url, tt.contentType, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.wantCode, body.Error)
			}
			if body.RequestID == "" {
				t.Error("error response should carry the request id")
			}
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a metrics handler", resp.StatusCode)
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("up 1\n")) })
	ts = newTestServer(t, Config{Metrics: ok})
	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), logger, Config{Addr: "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() = %v, want nil after cancel", err)
	}
}
