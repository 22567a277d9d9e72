package tsp

import "fmt"

// Instance bundles a distance matrix with display labels for its cities.
// Labels are presentation data only; the solver works purely on indices.
type Instance struct {
	// Name identifies the instance, typically the source filename or the
	// NAME field of a TSPLIB file. May be empty.
	Name string

	// Matrix is the validated distance matrix. Never nil.
	Matrix *Matrix

	// Labels holds one display label per city, index-aligned with the
	// matrix. Always exactly Matrix.Dim() entries.
	Labels []string
}

// NewInstance pairs a matrix with labels. When labels is nil or empty,
// default labels "City 1" … "City n" are generated. A non-empty labels
// slice must have exactly one entry per city.
func NewInstance(name string, m *Matrix, labels []string) (*Instance, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrInvalidMatrix)
	}
	n := m.Dim()
	if len(labels) == 0 {
		labels = DefaultLabels(n)
	}
	if len(labels) != n {
		return nil, fmt.Errorf("%w: %d labels for %d cities", ErrInvalidMatrix, len(labels), n)
	}
	out := make([]string, n)
	copy(out, labels)
	return &Instance{Name: name, Matrix: m, Labels: out}, nil
}

// DefaultLabels returns the autogenerated labels "City 1" … "City n".
// Numbering is 1-based because the labels are for humans; indices stay 0-based.
func DefaultLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("City %d", i+1)
	}
	return labels
}

// Dim returns the number of cities in the instance.
func (in *Instance) Dim() int { return in.Matrix.Dim() }

// Label returns the display label of city i, falling back to the index
// when i is out of range. Renderers use this so a malformed index never
// panics mid-draw.
func (in *Instance) Label(i int) string {
	if i < 0 || i >= len(in.Labels) {
		return fmt.Sprintf("#%d", i)
	}
	return in.Labels[i]
}
