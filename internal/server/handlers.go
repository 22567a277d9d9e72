package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mvoelker/tourmaline/pkg/cache"
	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/parse"
	"github.com/mvoelker/tourmaline/pkg/pipeline"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// ---- Solve ----

type solveReq struct {
	Name        string      `json:"name,omitempty"`
	Labels      []string    `json:"labels,omitempty"`
	Matrix      [][]float64 `json:"matrix,omitempty"`
	Text        string      `json:"text,omitempty"`
	Parallelism int         `json:"parallelism,omitempty"`
	TimeoutMs   int64       `json:"timeoutMs,omitempty"`
}

type solveResp struct {
	RunID      string    `json:"runId,omitempty"`
	Tour       tsp.Tour  `json:"tour,omitempty"`
	Stops      []string  `json:"stops,omitempty"`
	Cost       float64   `json:"cost"`
	Legs       []tsp.Leg `json:"legs,omitempty"`
	Cached     bool      `json:"cached"`
	DurationMs int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
	Code       string    `json:"code,omitempty"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(solveResp{
			Error: "invalid JSON: " + err.Error(),
			Code:  string(apperrors.ErrCodeInvalidInput),
		})
		return
	}

	inst, err := buildInstance(req.Name, req.Labels, req.Matrix, req.Text)
	if err != nil {
		s.writeSolveError(w, err)
		return
	}

	opts := pipeline.Options{
		Parallelism: req.Parallelism,
		Timeout:     time.Duration(req.TimeoutMs) * time.Millisecond,
		Logger:      s.logger,
	}

	start := time.Now()
	sol, cached, err := s.runner.SolveWithCacheInfo(r.Context(), inst, opts)
	if err != nil {
		s.writeSolveError(w, err)
		return
	}

	_ = json.NewEncoder(w).Encode(solveResp{
		RunID:      uuid.NewString(),
		Tour:       sol.Tour,
		Stops:      stops(inst, sol),
		Cost:       sol.Cost,
		Legs:       sol.Legs,
		Cached:     cached,
		DurationMs: time.Since(start).Milliseconds(),
	})
}

// ---- Render ----

type renderReq struct {
	Name     string      `json:"name,omitempty"`
	Labels   []string    `json:"labels,omitempty"`
	Matrix   [][]float64 `json:"matrix,omitempty"`
	Text     string      `json:"text,omitempty"`
	Format   string      `json:"format,omitempty"`
	View     string      `json:"view,omitempty"`
	Width    float64     `json:"width,omitempty"`
	Height   float64     `json:"height,omitempty"`
	Detailed bool        `json:"detailed,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid JSON"))
		return
	}

	inst, err := buildInstance(req.Name, req.Labels, req.Matrix, req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		View:     req.View,
		Formats:  []string{format},
		Width:    req.Width,
		Height:   req.Height,
		Detailed: req.Detailed,
		Logger:   s.logger,
	}

	sol, _, err := s.runner.SolveWithCacheInfo(r.Context(), inst, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), inst, sol, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	body := artifacts[format]
	w.Header().Set("Content-Type", contentTypeFor(format))
	w.Header().Set("ETag", `"`+cache.Hash(body)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// ---- Health ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ---- Helpers ----

// buildInstance constructs the instance from either a raw matrix or
// instance text. Exactly one of the two must be present.
func buildInstance(name string, labels []string, matrix [][]float64, text string) (*tsp.Instance, error) {
	switch {
	case text != "" && matrix != nil:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "matrix and text are mutually exclusive")
	case text != "":
		return parse.ReadText(text, name)
	case matrix != nil:
		m, err := tsp.NewMatrix(matrix)
		if err != nil {
			return nil, wrapMatrixErr(err)
		}
		inst, err := tsp.NewInstance(name, m, labels)
		if err != nil {
			return nil, wrapMatrixErr(err)
		}
		return inst, nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "matrix or text is required")
	}
}

func wrapMatrixErr(err error) error {
	code := apperrors.ErrCodeInvalidMatrix
	if errors.Is(err, tsp.ErrResourceExhausted) {
		code = apperrors.ErrCodeResourceExhausted
	}
	return apperrors.Wrap(code, err, "invalid instance")
}

// stops maps the tour indices to display labels.
func stops(inst *tsp.Instance, sol *tsp.Solution) []string {
	out := make([]string, len(sol.Tour))
	for i, city := range sol.Tour {
		out[i] = inst.Labels[city]
	}
	return out
}

// statusForError maps the error taxonomy to HTTP status codes. Malformed
// requests are 400, well-formed but unsolvable ones 422, and solves cut
// short by the request deadline 503.
func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidView, apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeInvalidMatrix, apperrors.ErrCodeResourceExhausted:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage flattens a coded error into a user-facing message, keeping
// the cause detail but dropping the code prefix.
func errorMessage(err error) string {
	var e *apperrors.Error
	if errors.As(err, &e) && e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return apperrors.UserMessage(err)
}

// writeSolveError writes a solve error as a JSON solveResp. The JSON
// content type is already set by the caller.
func (s *Server) writeSolveError(w http.ResponseWriter, err error) {
	w.WriteHeader(statusForError(err))
	_ = json.NewEncoder(w).Encode(solveResp{
		Error: errorMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}

// writeError writes a generic JSON error body, setting the content type
// for handlers that normally respond with non-JSON artifacts.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusForError(err))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": errorMessage(err),
		"code":  string(apperrors.GetCode(err)),
	})
}

// contentTypeFor returns the response content type for a render format.
func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatJSON:
		return "application/json; charset=utf-8"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
