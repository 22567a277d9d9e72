// Package route renders solved tours as circular route plots.
//
// # Overview
//
// A route plot places the cities evenly on a circle and traces the optimal
// tour between them: blue dots with labels, a red closed polyline, and an
// arrowhead partway along each leg showing travel direction. The layout is
// purely presentational; leg lengths on screen do not encode matrix
// distances.
//
// # Usage
//
// Render SVG directly, or convert to PNG/PDF:
//
//	svg := route.RenderSVG(inst, sol)
//	png, err := route.RenderPNG(inst, sol, route.WithScale(2))
//	pdf, err := route.RenderPDF(inst, sol)
//
// # Sinks
//
//   - [RenderSVG]: hand-built SVG, no external dependencies
//   - [RenderPNG], [RenderPDF]: SVG converted via rsvg-convert (librsvg)
//   - [RenderJSON]: solution plus layout coordinates for external tools
//   - [RenderText]: plain-text tour summary
//
// # Layout
//
// [Circle] computes the positions: city i sits at angle 2*pi*i/n - pi/2 on
// a circle inscribed in the frame, so city 0 is always at twelve o'clock
// and the cities follow clockwise in index order.
package route
