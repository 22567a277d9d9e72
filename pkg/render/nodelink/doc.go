// Package nodelink renders solved tours as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// cities appear as boxes connected by arrows along the tour. It's an
// alternative to the route plot for cases where leg distances should be
// readable directly off the edges.
//
// # Usage
//
// Convert a solution to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(inst, sol, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the city index
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses circular layout (layout=circo) with rounded box
// nodes, echoing the route plot's circular arrangement. Edges follow the
// travel direction and are labeled with the leg distance.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
