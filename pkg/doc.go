// Package pkg provides the core libraries for Tourmaline, an exact solver
// for the symmetric travelling salesman problem.
//
// # Overview
//
// Tourmaline reads a distance matrix, finds the provably optimal tour with
// the Held-Karp dynamic program, and renders the result. The pkg directory
// is organized into four main areas:
//
//  1. [tsp] - Domain logic (distance matrices, the Held-Karp solver, tours)
//  2. [parse] - Instance input formats (labeled, bare, TSPLIB)
//  3. [render] - Visualization (route diagrams, node-link graphs)
//  4. [pipeline] - Orchestration (parse → solve → render)
//
// # Architecture
//
// The typical data flow through Tourmaline:
//
//	Instance file / request body
//	         ↓
//	    [parse] package (detect format, build the matrix)
//	         ↓
//	    [tsp] package (Held-Karp over subset bitmasks)
//	         ↓
//	    [render] package (route or node-link view)
//	         ↓
//	    SVG/PDF/PNG/JSON/DOT/text output
//
// # Quick Start
//
// Solve an instance and render the optimal tour:
//
//	import (
//	    "context"
//	    "github.com/mvoelker/tourmaline/pkg/parse"
//	    "github.com/mvoelker/tourmaline/pkg/render/route"
//	    "github.com/mvoelker/tourmaline/pkg/tsp"
//	)
//
//	// 1. Parse the instance
//	inst, _ := parse.ReadFile("cities.txt")
//
//	// 2. Solve it exactly
//	sol, _ := tsp.Solve(context.Background(), inst.Matrix)
//
//	// 3. Render the tour
//	svg := route.RenderSVG(inst, sol)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [tsp] - The exact solver. A [tsp.Matrix] validates symmetry, a zero
// diagonal, and non-negative finite weights; [tsp.Solve] runs Held-Karp
// layer by layer over subset bitmasks, optionally across several workers,
// and returns a [tsp.Solution] carrying the tour, its cost, the individual
// legs, and solve statistics.
//
// [parse] - Input formats. Detects and reads the labeled and bare
// whitespace matrix formats plus TSPLIB EXPLICIT/FULL_MATRIX files, and
// returns a validated [tsp.Instance].
//
// ## Visualization
//
// [render/route] - The route view: stops on a circle with the tour drawn
// as directed edges. Output formats: SVG, PDF, PNG, JSON, and plain text.
//
// [render/nodelink] - Node-link diagrams of the tour using Graphviz.
// Output formats: DOT, SVG, PDF, and PNG.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG)
// and collision-free output paths.
//
// ## Infrastructure
//
// [pipeline] - Complete solve pipeline (parse → solve → render) used by
// both the CLI and the HTTP server. Ensures consistent defaults, limits,
// and caching across all entry points.
//
// [cache] - In-memory result cache with TTL and LRU eviction, keyed by a
// canonical hash of the instance and the solve or render options. A null
// implementation disables caching without changing call sites.
//
// [errors] - Structured errors with stable machine-readable codes, safe
// user messages, and cause chaining.
//
// [observability] - Hook interfaces for solver, cache, and pipeline
// events. The default hooks are no-ops; tests and the CLI's debug mode
// register their own.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Common Workflows
//
// Build an instance from an in-memory matrix:
//
//	m, _ := tsp.NewMatrix([][]float64{
//	    {0, 10, 15},
//	    {10, 0, 35},
//	    {15, 35, 0},
//	})
//	inst, _ := tsp.NewInstance("triangle", m, []string{"A", "B", "C"})
//
// Bound the solve:
//
//	sol, err := tsp.Solve(ctx, inst.Matrix,
//	    tsp.WithParallelism(4),
//	    tsp.WithMemoryLimit(256<<20),
//	)
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "cities.txt",
//	    View:    pipeline.ViewRoute,
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/tsp/...       # Specific package
//	go test -run Example        # Examples only
//
// [tsp]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/tsp
// [parse]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/parse
// [render]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/render
// [render/route]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/render/route
// [render/nodelink]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/cache
// [errors]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/mvoelker/tourmaline/pkg/buildinfo
package pkg
