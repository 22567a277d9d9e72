package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mvoelker/tourmaline/pkg/cache"
	"github.com/mvoelker/tourmaline/pkg/observability"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// SolveTTL overrides the lifetime of cached solutions.
	// Zero selects [cache.TTLSolve]. Artifacts always use
	// [cache.TTLArtifact]; they are cheap to re-render from a cached
	// solution.
	SolveTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	obs := observability.Pipeline()

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	obs.OnParseStart(ctx, opts.Source())
	inst, err := Parse(opts)
	result.Stats.ParseTime = time.Since(parseStart)
	if err != nil {
		obs.OnParseComplete(ctx, opts.Source(), 0, result.Stats.ParseTime, err)
		return nil, err
	}
	result.Instance = inst
	result.Stats.Cities = inst.Dim()
	obs.OnParseComplete(ctx, opts.Source(), inst.Dim(), result.Stats.ParseTime, nil)

	r.Logger.Info("parsed instance",
		"name", inst.Name,
		"cities", inst.Dim(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Solve
	solveStart := time.Now()
	sol, solveHit, err := r.SolveWithCacheInfo(ctx, inst, opts)
	if err != nil {
		return nil, err
	}
	result.Solution = sol
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved instance",
		"cost", sol.Cost,
		"states", sol.Stats.States,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	obs.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, inst, sol, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		obs.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	obs.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo solves an instance with caching and returns cache hit info.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, inst *tsp.Instance, opts Options) (*tsp.Solution, bool, error) {
	opts.SetSolveDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SolveKey(inst.Matrix.Rows())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var sol tsp.Solution
			if err := json.Unmarshal(data, &sol); err == nil {
				return &sol, true, nil // Cache hit
			}
			// If deserialization fails, fall through to re-solve
		}
	}

	sol, err := Solve(ctx, inst, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(sol); err == nil {
		ttl := r.SolveTTL
		if ttl == 0 {
			ttl = cache.TTLSolve
		}
		_ = r.Cache.Set(ctx, cacheKey, data, ttl)
	}

	return sol, false, nil // Cache miss
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, inst *tsp.Instance, opts Options) (*tsp.Solution, error) {
	sol, _, err := r.SolveWithCacheInfo(ctx, inst, opts)
	return sol, err
}

// Parse reads the instance named by the options. Parsing is local and
// cheap, so it is never cached.
func (r *Runner) Parse(opts Options) (*tsp.Instance, error) {
	r.applyLogger(&opts)
	return Parse(opts)
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, inst *tsp.Instance, sol *tsp.Solution, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	instKey := r.Keyer.InstanceKey(inst.Name, inst.Labels, inst.Matrix.Rows())

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(instKey, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered, err := Render(inst, sol, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(instKey, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, inst *tsp.Instance, sol *tsp.Solution, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, inst, sol, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
