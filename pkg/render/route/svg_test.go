package route

import (
	"strings"
	"testing"

	"github.com/mvoelker/tourmaline/pkg/tsp"
)

func testInstance(t *testing.T, labels []string) *tsp.Instance {
	t.Helper()
	m, err := tsp.NewMatrix([][]float64{
		{0, 10, 15, 20},
		{10, 0, 35, 25},
		{15, 35, 0, 30},
		{20, 25, 30, 0},
	})
	if err != nil {
		t.Fatalf("NewMatrix() error = %v", err)
	}
	inst, err := tsp.NewInstance("square4", m, labels)
	if err != nil {
		t.Fatalf("NewInstance() error = %v", err)
	}
	return inst
}

func testSolution(t *testing.T, inst *tsp.Instance) *tsp.Solution {
	t.Helper()
	tour := tsp.Tour{0, 2, 3, 1, 0}
	return &tsp.Solution{
		Tour: tour,
		Cost: tour.Cost(inst.Matrix),
		Legs: tour.Legs(inst.Matrix),
	}
}

func TestRenderSVG(t *testing.T) {
	inst := testInstance(t, []string{"Berlin", "Hamburg", "Munich", "Cologne"})
	sol := testSolution(t, inst)

	svg := string(RenderSVG(inst, sol))

	if !strings.HasPrefix(svg, "<svg ") {
		t.Errorf("output does not start with <svg: %.60q", svg)
	}
	if !strings.Contains(svg, `width="800" height="600"`) {
		t.Error("missing default 800x600 frame")
	}
	if got := strings.Count(svg, "<circle"); got != 4 {
		t.Errorf("city dots = %d, want 4", got)
	}
	if !strings.Contains(svg, "<polyline points=") {
		t.Error("missing tour polyline")
	}
	if got := strings.Count(svg, `<path d=`); got != 4 {
		t.Errorf("arrowheads = %d, want one per leg (4)", got)
	}
	if !strings.Contains(svg, "Optimal tour: 80.0") {
		t.Error("missing cost title")
	}
	for _, label := range inst.Labels {
		if !strings.Contains(svg, ">"+label+"<") {
			t.Errorf("missing label %q", label)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	inst := testInstance(t, nil)
	sol := testSolution(t, inst)

	t.Run("size", func(t *testing.T) {
		svg := string(RenderSVG(inst, sol, WithSize(400, 300)))
		if !strings.Contains(svg, `width="400" height="300"`) {
			t.Error("WithSize not applied")
		}
	})

	t.Run("custom title", func(t *testing.T) {
		svg := string(RenderSVG(inst, sol, WithTitle("Road trip")))
		if !strings.Contains(svg, ">Road trip<") {
			t.Error("WithTitle not applied")
		}
	})

	t.Run("no title", func(t *testing.T) {
		svg := string(RenderSVG(inst, sol, WithoutTitle()))
		if strings.Contains(svg, "Optimal tour") {
			t.Error("WithoutTitle still renders title")
		}
	})

	t.Run("style", func(t *testing.T) {
		s := DefaultStyle()
		s.DotColor = "#00ff00"
		svg := string(RenderSVG(inst, sol, WithStyle(s)))
		if !strings.Contains(svg, `fill="#00ff00"`) {
			t.Error("WithStyle dot color not applied")
		}
	})
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	inst := testInstance(t, []string{"A&B", "<East>", `"West"`, "Plain"})
	sol := testSolution(t, inst)

	svg := string(RenderSVG(inst, sol))

	if !strings.Contains(svg, "A&amp;B") {
		t.Error("ampersand not escaped")
	}
	if !strings.Contains(svg, "&lt;East&gt;") {
		t.Error("angle brackets not escaped")
	}
	if strings.Contains(svg, "<East>") {
		t.Error("raw angle brackets leaked into markup")
	}
}
