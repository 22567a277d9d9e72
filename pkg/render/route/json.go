package route

import (
	"encoding/json"

	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	width  float64
	height float64
}

// WithJSONSize overrides the frame used for stop coordinates.
func WithJSONSize(width, height float64) JSONOption {
	return func(r *jsonRenderer) { r.width, r.height = width, height }
}

type jsonOutput struct {
	Name   string     `json:"name,omitempty"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Cost   float64    `json:"cost"`
	Tour   []int      `json:"tour"`
	Stops  []jsonStop `json:"stops"`
	Legs   []tsp.Leg  `json:"legs"`
}

type jsonStop struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// RenderJSON exports the solution together with the plot coordinates as a
// pretty-printed JSON document, for external visualization tools that want
// the same circular layout the SVG sink draws.
func RenderJSON(inst *tsp.Instance, sol *tsp.Solution, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}

	l := Circle(inst.Dim(), r.width, r.height)
	stops := make([]jsonStop, inst.Dim())
	for i := range stops {
		stops[i] = jsonStop{
			Index: i,
			Label: inst.Label(i),
			X:     l.Points[i].X,
			Y:     l.Points[i].Y,
		}
	}

	out := jsonOutput{
		Name:   inst.Name,
		Width:  r.width,
		Height: r.height,
		Cost:   sol.Cost,
		Tour:   sol.Tour,
		Stops:  stops,
		Legs:   sol.Legs,
	}
	return json.MarshalIndent(out, "", "  ")
}
