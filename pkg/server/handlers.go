package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/ratioplot/pkg/buildinfo"
	"github.com/matzehuels/ratioplot/pkg/config"
	"github.com/matzehuels/ratioplot/pkg/errors"
	rpio "github.com/matzehuels/ratioplot/pkg/io"
	"github.com/matzehuels/ratioplot/pkg/pipeline"
)

// RenderRequest is the JSON body of POST /v1/render.
type RenderRequest struct {
	Document   json.RawMessage `json:"document"`
	Format     string          `json:"format,omitempty"`
	Option     string          `json:"option,omitempty"`
	DrawOption string          `json:"draw_option,omitempty"`
	Width      float64         `json:"width,omitempty"`
	Height     float64         `json:"height,omitempty"`
	Style      *config.Config  `json:"style,omitempty"`
	Refresh    bool            `json:"refresh,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	req, inputFormat, err := decodeRequest(r, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Input:       req.Document,
		InputFormat: inputFormat,
		Option:      req.Option,
		DrawOption:  req.DrawOption,
		Width:       req.Width,
		Height:      req.Height,
		Formats:     []string{req.Format},
		Style:       req.Style,
		Refresh:     req.Refresh,
		Logger:      s.logger.With("request", RequestID(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("X-Render-ID", res.ID)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[req.Format])
}

// decodeRequest reads a JSON request, or a YAML document with options in
// the query string.
func decodeRequest(r *http.Request, body []byte) (RenderRequest, string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "yaml") {
		q := r.URL.Query()
		req := RenderRequest{
			Document:   body,
			Format:     q.Get("format"),
			Option:     q.Get("option"),
			DrawOption: q.Get("draw_option"),
			Refresh:    q.Get("refresh") == "true",
		}
		var err error
		if req.Width, err = queryFloat(q.Get("width")); err != nil {
			return req, "", err
		}
		if req.Height, err = queryFloat(q.Get("height")); err != nil {
			return req, "", err
		}
		return req, rpio.FormatYAML, nil
	}

	var req RenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return req, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	if len(req.Document) == 0 {
		return req, "", errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	if f := r.URL.Query().Get("format"); f != "" {
		req.Format = f
	}
	return req, rpio.FormatJSON, nil
}

func queryFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "query value %q", s)
	}
	return v, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
