// Package render provides visualization rendering for solved tours.
//
// # Overview
//
// This package contains the rendering pipeline that transforms tour
// solutions into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Route plots (in [route] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//   - Collision-free output paths via [UniquePath]
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// route and node-link renderers.
//
//	svg := route.RenderSVG(inst, sol, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Route Plots
//
// The [route] subpackage draws the cities on a circle with the optimal
// tour traced between them. This is the primary visualization style.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the tour as a Graphviz diagram with
// cities as boxes and legs as labeled arrows.
//
//	dot := nodelink.ToDOT(inst, sol, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// # Output Paths
//
// [UniquePath] picks a filename that does not collide with existing files,
// appending _1, _2, ... to the base name. The CLI uses it so repeated runs
// never overwrite earlier results.
//
// [route]: github.com/mvoelker/tourmaline/pkg/render/route
// [nodelink]: github.com/mvoelker/tourmaline/pkg/render/nodelink
package render
