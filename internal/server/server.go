// Package server exposes the solve pipeline over HTTP.
//
// The API is small and JSON-first: POST /api/solve computes the optimal
// tour for a matrix or instance text, POST /api/render returns a rendered
// artifact, and GET /healthz answers liveness probes. Solutions are
// memoized in the runner's cache for the lifetime of the process; nothing
// is persisted across restarts.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvoelker/tourmaline/pkg/pipeline"
)

const (
	// requestTimeout bounds a single request including the solve itself.
	// Held-Karp on 20 cities finishes well inside this on any hardware
	// that can address the tables.
	requestTimeout = 60 * time.Second

	// shutdownTimeout is the grace period for in-flight requests.
	shutdownTimeout = 5 * time.Second

	readHeaderTimeout = 5 * time.Second
)

// Server routes solve and render requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around the given runner. A nil logger falls back
// to the package default.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP handler with the standard middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/render", s.handleRender)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully, letting in-flight solves finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		s.logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
			"reqId", middleware.GetReqID(r.Context()),
		)
	})
}
