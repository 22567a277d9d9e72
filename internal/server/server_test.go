package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mvoelker/tourmaline/pkg/cache"
	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/pipeline"
)

// exampleMatrix has the optimal tour 0 -> 2 -> 3 -> 1 -> 0 with cost 80.
var exampleMatrix = [][]float64{
	{0, 10, 15, 20},
	{10, 0, 35, 25},
	{15, 35, 0, 30},
	{20, 25, 30, 0},
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger)
	ts := httptest.NewServer(New(runner, logger).Router())
	t.Cleanup(func() {
		ts.Close()
		_ = runner.Close()
	})
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeSolve(t *testing.T, resp *http.Response) solveResp {
	t.Helper()
	var out solveResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHandleSolveMatrix(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/solve", solveReq{
		Labels: []string{"A", "B", "C", "D"},
		Matrix: exampleMatrix,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	out := decodeSolve(t, resp)
	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if out.Cost != 80 {
		t.Errorf("cost = %v, want 80", out.Cost)
	}
	if len(out.Tour) != 5 {
		t.Errorf("tour length = %d, want 5", len(out.Tour))
	}
	if len(out.Stops) != 5 || out.Stops[0] != "A" || out.Stops[4] != "A" {
		t.Errorf("stops = %v, want closed tour from A", out.Stops)
	}
	if len(out.Legs) != 4 {
		t.Errorf("legs = %d, want 4", len(out.Legs))
	}
	if out.RunID == "" {
		t.Error("runId should be set")
	}
	if out.Cached {
		t.Error("first solve should not be cached")
	}
}

func TestHandleSolveCachesRepeats(t *testing.T) {
	ts := newTestServer(t)

	first := decodeSolve(t, postJSON(t, ts.URL+"/api/solve", solveReq{Matrix: exampleMatrix}))
	if first.Cached {
		t.Error("first solve should be a cache miss")
	}

	second := decodeSolve(t, postJSON(t, ts.URL+"/api/solve", solveReq{Matrix: exampleMatrix}))
	if !second.Cached {
		t.Error("second identical solve should hit the cache")
	}
	if second.Cost != first.Cost {
		t.Errorf("cached cost = %v, want %v", second.Cost, first.Cost)
	}
	if second.RunID == first.RunID {
		t.Error("each request should mint a fresh runId")
	}
}

func TestHandleSolveText(t *testing.T) {
	ts := newTestServer(t)

	text := "Berlin Hamburg Munich\n0 10 15\n10 0 35\n15 35 0\n"
	out := decodeSolve(t, postJSON(t, ts.URL+"/api/solve", solveReq{Text: text}))

	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if out.Cost != 60 {
		t.Errorf("cost = %v, want 60 (only cycle over 3 cities)", out.Cost)
	}
	if out.Stops[0] != "Berlin" {
		t.Errorf("stops = %v, want tour from Berlin", out.Stops)
	}
}

func TestHandleSolveErrors(t *testing.T) {
	ts := newTestServer(t)

	asymmetric := [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{9, 3, 0},
	}

	tests := []struct {
		name       string
		req        solveReq
		wantStatus int
		wantCode   apperrors.Code
	}{
		{
			name:       "missing input",
			req:        solveReq{},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ErrCodeInvalidInput,
		},
		{
			name:       "both inputs",
			req:        solveReq{Matrix: exampleMatrix, Text: "0 1\n1 0"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ErrCodeInvalidInput,
		},
		{
			name:       "asymmetric matrix",
			req:        solveReq{Matrix: asymmetric},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.ErrCodeInvalidMatrix,
		},
		{
			name:       "single city",
			req:        solveReq{Matrix: [][]float64{{0}}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.ErrCodeInvalidMatrix,
		},
		{
			name:       "short text matrix",
			req:        solveReq{Text: "Berlin Hamburg\n0 10"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/solve", tt.req)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			out := decodeSolve(t, resp)
			if out.Error == "" {
				t.Error("error message should be set")
			}
			if out.Code != string(tt.wantCode) {
				t.Errorf("code = %q, want %q", out.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleSolveBadJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/solve", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleSolveMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/solve")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestHandleRenderSVG(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/render", renderReq{
		Name:   "square4",
		Matrix: exampleMatrix,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if etag := resp.Header.Get("ETag"); etag != `"`+cache.Hash(body)+`"` {
		t.Errorf("ETag = %q, want quoted hash of the body", etag)
	}
	if !strings.HasPrefix(string(body), "<svg") {
		t.Errorf("body should be an SVG document, got %q", string(body[:min(len(body), 40)]))
	}
}

func TestHandleRenderText(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/render", renderReq{
		Labels: []string{"A", "B", "C", "D"},
		Matrix: exampleMatrix,
		Format: "txt",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "Minimum cost: 80") {
		t.Errorf("text artifact should state the cost, got:\n%s", body)
	}
}

func TestHandleRenderDOT(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/render", renderReq{
		Labels: []string{"Berlin", "Hamburg", "Munich", "Cologne"},
		Matrix: exampleMatrix,
		View:   "nodelink",
		Format: "dot",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q, want text/vnd.graphviz", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(body), "digraph tour {") {
		t.Errorf("body should be a DOT document, got %q", string(body[:min(len(body), 40)]))
	}
	if !strings.Contains(string(body), "Berlin") {
		t.Error("DOT output should name the cities")
	}
}

func TestHandleRenderBadFormat(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/render", renderReq{
		Matrix: exampleMatrix,
		Format: "bmp",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["code"] != string(apperrors.ErrCodeInvalidFormat) {
		t.Errorf("code = %q, want %q", out["code"], apperrors.ErrCodeInvalidFormat)
	}
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["status"] != "ok" {
		t.Errorf("status = %q, want ok", out["status"])
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{apperrors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{apperrors.ErrCodeInvalidView, http.StatusBadRequest},
		{apperrors.ErrCodeInvalidMatrix, http.StatusUnprocessableEntity},
		{apperrors.ErrCodeResourceExhausted, http.StatusUnprocessableEntity},
		{apperrors.ErrCodeCanceled, http.StatusServiceUnavailable},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := apperrors.New(tt.code, "boom")
			if got := statusForError(err); got != tt.want {
				t.Errorf("statusForError(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestBuildInstance(t *testing.T) {
	inst, err := buildInstance("x", []string{"A", "B"}, [][]float64{{0, 5}, {5, 0}}, "")
	if err != nil {
		t.Fatalf("buildInstance() error: %v", err)
	}
	if inst.Matrix.Dim() != 2 || inst.Labels[0] != "A" {
		t.Errorf("instance = %+v", inst)
	}

	if _, err := buildInstance("", nil, nil, ""); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("empty input should be INVALID_INPUT, got %v", err)
	}
}
