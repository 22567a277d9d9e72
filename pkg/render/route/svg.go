package route

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// Arrowheads sit three quarters of the way along each leg so the travel
// direction reads without crowding the city dots.
const (
	arrowPosition = 0.75
	arrowLength   = 12.0
	arrowBarb     = 0.5 // radians off the leg direction
	minArrowLeg   = 1.0 // px; skip arrowheads on degenerate legs
)

// Style controls colors and stroke weights of the route plot.
type Style struct {
	Background string
	DotColor   string
	DotRadius  float64
	PathColor  string
	PathWidth  float64
	TextColor  string
}

// DefaultStyle is the classic look: blue stops, red tour, white canvas.
func DefaultStyle() Style {
	return Style{
		Background: "#ffffff",
		DotColor:   "#0000ff",
		DotRadius:  8,
		PathColor:  "#ff0000",
		PathWidth:  3,
		TextColor:  "#000000",
	}
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width   float64
	height  float64
	style   Style
	title   string
	noTitle bool
}

// WithSize overrides the default 800x600 frame.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithStyle replaces the default colors and stroke weights.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle replaces the generated "Optimal tour: <cost>" title line.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithoutTitle suppresses the title line entirely.
func WithoutTitle() SVGOption { return func(r *svgRenderer) { r.noTitle = true } }

// RenderSVG draws the instance's cities on a circle with the solved tour
// traced between them: dots with labels, a closed polyline, and an
// arrowhead on each leg showing travel direction.
func RenderSVG(inst *tsp.Instance, sol *tsp.Solution, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	l := Circle(inst.Dim(), r.width, r.height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.style.Background)

	renderTour(&buf, l, sol.Tour, r.style)
	renderStops(&buf, l, inst, r.style)

	if !r.noTitle {
		title := r.title
		if title == "" {
			title = fmt.Sprintf("Optimal tour: %.1f", sol.Cost)
		}
		fmt.Fprintf(&buf, `  <text x="%.1f" y="26" text-anchor="middle" font-family="Arial" font-size="24" fill="%s">%s</text>`+"\n",
			l.Width/2, r.style.TextColor, escapeXML(title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: DefaultWidth, height: DefaultHeight, style: DefaultStyle()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderTour(buf *bytes.Buffer, l Layout, tour tsp.Tour, s Style) {
	if len(tour) < 2 {
		return
	}

	coords := make([]string, len(tour))
	for i, city := range tour {
		p := l.Points[city]
		coords[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		strings.Join(coords, " "), s.PathColor, s.PathWidth)

	for i := 0; i+1 < len(tour); i++ {
		renderArrowhead(buf, l.Points[tour[i]], l.Points[tour[i+1]], s)
	}
}

// renderArrowhead draws two barbs meeting at a point partway along the
// leg from a to b.
func renderArrowhead(buf *bytes.Buffer, a, b Point, s Style) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < minArrowLeg {
		return
	}

	tipX := a.X + arrowPosition*dx
	tipY := a.Y + arrowPosition*dy
	ux, uy := dx/length, dy/length

	sin, cos := math.Sin(arrowBarb), math.Cos(arrowBarb)
	b1x := tipX - arrowLength*(ux*cos-uy*sin)
	b1y := tipY - arrowLength*(ux*sin+uy*cos)
	b2x := tipX - arrowLength*(ux*cos+uy*sin)
	b2y := tipY - arrowLength*(uy*cos-ux*sin)

	fmt.Fprintf(buf, `  <path d="M %.1f %.1f L %.1f %.1f M %.1f %.1f L %.1f %.1f" stroke="%s" stroke-width="2" fill="none"/>`+"\n",
		tipX, tipY, b1x, b1y, tipX, tipY, b2x, b2y, s.PathColor)
}

func renderStops(buf *bytes.Buffer, l Layout, inst *tsp.Instance, s Style) {
	for i, p := range l.Points {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			p.X, p.Y, s.DotRadius, s.DotColor)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="Arial" font-size="15" fill="%s">%s</text>`+"\n",
			p.X, p.Y-s.DotRadius-6, s.TextColor, escapeXML(inst.Label(i)))
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// escapeXML guards user-supplied labels; ValidateLabel rejects control
// characters but markup characters are legal label content.
func escapeXML(s string) string { return xmlEscaper.Replace(s) }
