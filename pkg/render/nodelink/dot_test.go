package nodelink

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

func testSolution(inst *tsp.Instance) *tsp.Solution {
	tour := tsp.Tour{0, 2, 3, 1, 0}
	return &tsp.Solution{
		Tour: tour,
		Cost: tour.Cost(inst.Matrix),
		Legs: tour.Legs(inst.Matrix),
	}
}

func TestToDOT(t *testing.T) {
	inst := testInstance(t, []string{"Berlin", "Hamburg", "Munich", "Cologne"})
	sol := testSolution(inst)

	dot := ToDOT(inst, sol, Options{})

	if !strings.HasPrefix(dot, "digraph tour {") {
		t.Errorf("unexpected preamble: %.40q", dot)
	}
	if !strings.Contains(dot, "layout=circo;") {
		t.Error("missing circo layout directive")
	}
	if !strings.Contains(dot, `0 [label="Berlin"];`) {
		t.Error("missing node declaration for city 0")
	}
	if !strings.Contains(dot, `0 -> 2 [label="15"];`) {
		t.Error("missing first tour edge with distance label")
	}
	if !strings.Contains(dot, `1 -> 0 [label="10"];`) {
		t.Error("missing closing tour edge")
	}
	if got := strings.Count(dot, " -> "); got != 4 {
		t.Errorf("edge count = %d, want 4", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	inst := testInstance(t, []string{"Berlin", "Hamburg", "Munich", "Cologne"})
	sol := testSolution(inst)

	dot := ToDOT(inst, sol, Options{Detailed: true})

	if !strings.Contains(dot, `city 0`) {
		t.Error("detailed labels should include the city index")
	}
}

func TestToDOTEscapesLabels(t *testing.T) {
	inst := testInstance(t, []string{`He said "hi"`, "B", "C", "D"})
	sol := testSolution(inst)

	dot := ToDOT(inst, sol, Options{})

	if !strings.Contains(dot, `\"hi\"`) {
		t.Error("quotes in labels must be escaped for DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="139pt" height="188pt" viewBox="0.00 0.00 139.00 188.00" xmlns="http://www.w3.org/2000/svg">` +
		`<g></g></svg>`)

	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 139.00 188.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="139" height="188"`) {
		t.Errorf("pixel size not rewritten: %s", out)
	}
	if strings.Contains(out, "pt") {
		t.Errorf("point units survived: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg><g></g></svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("input without viewBox should pass through, got %s", got)
	}
}
