package tsp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTour is returned by [Tour.Validate] when a tour does not
// describe a closed walk through all n cities starting and ending at city 0.
var ErrMalformedTour = errors.New("malformed tour")

// Tour is a closed visiting order over city indices: it starts at city 0,
// visits every other city exactly once, and returns to city 0, so a tour
// over n cities has exactly n+1 entries. Tours produced by [Solve] always
// satisfy [Tour.Validate]; the type exists so collaborators can carry the
// order around without re-deriving its shape.
type Tour []int

// Validate checks that the tour is a closed permutation walk over n cities.
// It verifies length n+1, endpoints at city 0, indices in range, and that
// every city appears exactly once between the endpoints.
func (t Tour) Validate(n int) error {
	if len(t) != n+1 {
		return fmt.Errorf("%w: length %d, want %d", ErrMalformedTour, len(t), n+1)
	}
	if t[0] != 0 || t[n] != 0 {
		return fmt.Errorf("%w: must start and end at city 0", ErrMalformedTour)
	}
	seen := make([]bool, n)
	seen[0] = true
	for _, c := range t[1:n] {
		if c < 0 || c >= n {
			return fmt.Errorf("%w: city %d out of range", ErrMalformedTour, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: city %d visited twice", ErrMalformedTour, c)
		}
		seen[c] = true
	}
	return nil
}

// Cost sums the tour's leg distances over the matrix.
// The tour must be valid for m's dimension; call [Tour.Validate] first when
// the tour comes from outside the solver.
func (t Tour) Cost(m *Matrix) float64 {
	total := 0.0
	for i := 0; i+1 < len(t); i++ {
		total += m.At(t[i], t[i+1])
	}
	return total
}

// Reversed returns the same cycle walked in the opposite direction,
// still anchored at city 0: [0 1 3 2 0] becomes [0 2 3 1 0].
func (t Tour) Reversed() Tour {
	rev := make(Tour, len(t))
	for i, c := range t {
		rev[len(t)-1-i] = c
	}
	return rev
}

// SameCycle reports whether two tours describe the same undirected cycle.
// With the start fixed at city 0 the only remaining freedom is direction,
// so tours are equivalent when they are equal or one is the other reversed.
// Useful in tests, where any optimal-cost tour is acceptable.
func SameCycle(a, b Tour) bool {
	if len(a) != len(b) {
		return false
	}
	if equalTours(a, b) {
		return true
	}
	return equalTours(a, b.Reversed())
}

func equalTours(a, b Tour) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the tour as "0 -> 1 -> 3 -> 2 -> 0".
func (t Tour) String() string {
	parts := make([]string, len(t))
	for i, c := range t {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, " -> ")
}

// Format renders the tour with display labels: "Berlin -> Hamburg -> Berlin".
// Indices without a label fall back to the bare index.
func (t Tour) Format(labels []string) string {
	parts := make([]string, len(t))
	for i, c := range t {
		if c >= 0 && c < len(labels) {
			parts[i] = labels[c]
		} else {
			parts[i] = strconv.Itoa(c)
		}
	}
	return strings.Join(parts, " -> ")
}

// Leg is one directed segment of a tour with its distance.
type Leg struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Distance float64 `json:"distance"`
}

// Legs expands the tour into its n segments over the matrix.
func (t Tour) Legs(m *Matrix) []Leg {
	if len(t) < 2 {
		return nil
	}
	legs := make([]Leg, len(t)-1)
	for i := range legs {
		legs[i] = Leg{From: t[i], To: t[i+1], Distance: m.At(t[i], t[i+1])}
	}
	return legs
}
