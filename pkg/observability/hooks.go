// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline execution, solver progress, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolverHooks(&mySolverHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnSolveStart(ctx, n, workers)
//	// ... fill DP layers ...
//	observability.Solver().OnSolveComplete(ctx, n, cost, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the solve pipeline.
type PipelineHooks interface {
	// Parse events
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, cities int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives progress events from the Held-Karp solver.
// Layer events fire once per mask-cardinality layer, so an n-city solve
// emits at most n-1 OnLayerComplete calls. Implementations must be fast:
// they run on the solving goroutine between layers.
type SolverHooks interface {
	// OnSolveStart records the beginning of a solve (n cities, worker count).
	OnSolveStart(ctx context.Context, cities, workers int)

	// OnLayerComplete records completion of one mask-cardinality layer.
	// layer counts visited cities including the fixed start; layers run
	// from 2 up to cities.
	OnLayerComplete(ctx context.Context, layer, layers, states int)

	// OnSolveComplete records the end of a solve with the optimal cost.
	// cost is meaningless when err is non-nil.
	OnSolveComplete(ctx context.Context, cities int, cost float64, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolveStart(context.Context, int, int)         {}
func (NoopSolverHooks) OnLayerComplete(context.Context, int, int, int) {}
func (NoopSolverHooks) OnSolveComplete(context.Context, int, float64, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	solverHooks   SolverHooks   = NoopSolverHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any solve operations.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	solverHooks = NoopSolverHooks{}
	cacheHooks = NoopCacheHooks{}
}
