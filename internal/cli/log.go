package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ctxKey is a private type for context keys to avoid collisions.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a context carrying the given logger.
func withLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// loggerFromContext extracts the logger from a context, falling back to
// the package default when none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return logger
	}
	return log.Default()
}

// newLogger creates a logger suitable for command output.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// solverLogHooks logs solver progress at debug level, one line per DP
// layer. Registered only for verbose runs; the default hooks are no-ops.
type solverLogHooks struct {
	logger *log.Logger
}

func (h *solverLogHooks) OnSolveStart(ctx context.Context, cities, workers int) {
	h.logger.Debug("solve started", "cities", cities, "workers", workers)
}

func (h *solverLogHooks) OnLayerComplete(ctx context.Context, layer, layers, states int) {
	h.logger.Debug("layer complete", "layer", layer, "layers", layers, "states", states)
}

func (h *solverLogHooks) OnSolveComplete(ctx context.Context, cities int, cost float64, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("solve failed", "cities", cities, "error", err)
		return
	}
	h.logger.Debug("solve complete", "cities", cities, "cost", cost, "duration", duration.Round(time.Millisecond))
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration. It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time
// as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Wrote 3 artifacts (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
