// Package pipeline provides the core solve pipeline for Tourmaline.
//
// This package implements the complete parse → solve → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read and validate a distance matrix from a file or inline text
//  2. Solve: Compute the optimal tour with Held-Karp dynamic programming
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT, text)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "cities.txt",
//	    View:    "route",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse only
//	inst, err := runner.Parse(opts)
//
//	// Solve an existing instance
//	sol, err := runner.Solve(ctx, inst, opts)
//
//	// Render an existing solution
//	artifacts, err := runner.Render(ctx, inst, sol, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mvoelker/tourmaline/pkg/cache"
	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/render/route"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = route.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = route.DefaultHeight

	// DefaultParallelism selects one solver worker per CPU. The parallel
	// fill returns bit-identical results to the serial one, so this only
	// affects wall time.
	DefaultParallelism = 0

	// DefaultTimeout places no deadline on the solve. Entry points that
	// serve untrusted input (the HTTP API) set their own.
	DefaultTimeout = 0
)

// DefaultView is the default visualization view.
const DefaultView = ViewRoute

// View constants for visualization views.
const (
	ViewRoute    = "route"
	ViewNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatText: true,
}

// ValidViews is the set of supported visualization views.
var ValidViews = map[string]bool{
	ViewRoute:    true,
	ViewNodelink: true,
}

// viewFormats lists the formats each view can produce. The route plot has
// no DOT representation, and the nodelink diagram has no JSON or text one.
var viewFormats = map[string]map[string]bool{
	ViewRoute: {
		FormatSVG:  true,
		FormatPNG:  true,
		FormatPDF:  true,
		FormatJSON: true,
		FormatText: true,
	},
	ViewNodelink: {
		FormatSVG: true,
		FormatPNG: true,
		FormatPDF: true,
		FormatDOT: true,
	},
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the solve pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Input names an instance file; Text carries the
	// instance inline. Exactly one must be set. Name overrides the
	// instance name for inline text.
	Input string `json:"input,omitempty"`
	Text  string `json:"text,omitempty"`
	Name  string `json:"name,omitempty"`

	// Solve options
	Parallelism int           `json:"parallelism,omitempty"`
	MemoryLimit int64         `json:"memory_limit,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty"`
	Refresh     bool          `json:"refresh,omitempty"` // bypass cached solutions and artifacts

	// Render options
	View     string   `json:"view,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // nodelink: include city indices in labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Instance is the parsed problem instance.
	Instance *tsp.Instance

	// Solution is the optimal tour.
	Solution *tsp.Solution

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cities     int
	ParseTime  time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solution came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return apperrors.New(apperrors.ErrCodeInvalidView,
			"invalid view: %q (must be one of: route, nodelink)", view)
	}
	return nil
}

// ValidateFormatForView checks that a view can produce a format.
func ValidateFormatForView(view, format string) error {
	if err := ValidateView(view); err != nil {
		return err
	}
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if !viewFormats[view][format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"view %q cannot produce format %q", view, format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetSolveDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Input == "" && o.Text == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "input path or inline text is required")
	}
	if o.Input != "" && o.Text != "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "input path and inline text are mutually exclusive")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetSolveDefaults sets default values for solving. The zero values already
// select the solver defaults (one worker per CPU is applied by the solve
// stage, the memory limit by the solver itself), so this only fills the
// logger.
func (o *Options) SetSolveDefaults() {
	if o.Parallelism < 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := ValidateFormatForView(o.View, f); err != nil {
			return err
		}
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		View:     o.View,
		Format:   format,
		Width:    o.Width,
		Height:   o.Height,
		Detailed: o.Detailed,
	}
}

// IsRoute returns true if this is a route visualization.
func (o *Options) IsRoute() bool {
	return o.View == "" || o.View == ViewRoute
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.View == ViewNodelink
}

// Source names where the instance came from, for logging and observability.
func (o *Options) Source() string {
	if o.Input != "" {
		return o.Input
	}
	return "inline"
}
