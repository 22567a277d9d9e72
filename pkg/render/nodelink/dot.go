package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/mvoelker/tourmaline/pkg/render"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the city index in node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts a solved tour to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using
// [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Nodes are keyed by city index so duplicate display labels cannot
// collide; each tour edge carries its leg distance as a label.
func ToDOT(inst *tsp.Instance, sol *tsp.Solution, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tour {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=16, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i := 0; i < inst.Dim(); i++ {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", i, fmtLabel(inst, i, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, leg := range sol.Legs {
		fmt.Fprintf(&buf, "  %d -> %d [label=%q];\n", leg.From, leg.To, formatDistance(leg.Distance))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(inst *tsp.Instance, i int, detailed bool) string {
	if !detailed {
		return inst.Label(i)
	}
	return fmt.Sprintf("%s\ncity %d", inst.Label(i), i)
}

func formatDistance(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz <svg> tag so the viewBox starts
// at the origin and the pixel size matches it, which keeps the output
// responsive when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
