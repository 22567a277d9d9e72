package route

import "math"

// Default frame dimensions for route plots.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

const (
	frameMargin = 40.0
	titleBand   = 40.0
)

// Point is a city position in the output frame, in SVG coordinates
// (origin top-left, y growing downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout holds the scaled position of every city.
type Layout struct {
	Width  float64
	Height float64
	Points []Point
}

// Circle places n cities evenly on a circle inscribed in a width-by-height
// frame, leaving room for the title band at the top. City i sits at angle
// 2*pi*i/n - pi/2, putting city 0 at twelve o'clock with the rest
// following clockwise.
func Circle(n int, width, height float64) Layout {
	cx := width / 2
	cy := (height + titleBand) / 2
	radius := math.Min(width, height-titleBand)/2 - frameMargin

	points := make([]Point, n)
	for i := range points {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		points[i] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return Layout{Width: width, Height: height, Points: points}
}
