package tsp

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinCities is the smallest solvable instance. A single city has no tour.
	MinCities = 2

	// MaxCities bounds the instance size. The DP state space is 2ⁿ·n, so
	// every additional city doubles memory and more than doubles work;
	// 20 cities already put the solve tables near 190 MB.
	MaxCities = 20

	// symmetryTol is the absolute tolerance used when comparing d[i][j]
	// against d[j][i]. Integer-valued inputs compare exactly; the tolerance
	// only matters for distances that went through float formatting.
	symmetryTol = 1e-9
)

var (
	// ErrInvalidMatrix is the umbrella for all matrix validation failures.
	// Every specific validation error below wraps it, so callers can match
	// the whole family with errors.Is(err, ErrInvalidMatrix).
	ErrInvalidMatrix = errors.New("invalid distance matrix")

	// ErrResourceExhausted is the umbrella for size and memory bound
	// violations: instances above [MaxCities] and DP tables that would
	// exceed the solve's memory limit.
	ErrResourceExhausted = errors.New("resource bounds exceeded")

	// ErrNotSquare is returned by [NewMatrix] when a row's length differs
	// from the number of rows.
	ErrNotSquare = fmt.Errorf("%w: matrix is not square", ErrInvalidMatrix)

	// ErrTooFewCities is returned by [NewMatrix] for instances below
	// [MinCities]. An empty or single-city instance has no tour to find.
	ErrTooFewCities = fmt.Errorf("%w: need at least 2 cities", ErrInvalidMatrix)

	// ErrTooManyCities is returned by [NewMatrix] for instances above
	// [MaxCities], before any table allocation happens.
	ErrTooManyCities = fmt.Errorf("%w: instance exceeds the maximum city count", ErrResourceExhausted)

	// ErrNegativeWeight is returned by [NewMatrix] when any entry is
	// negative. Distances are lengths; negative lengths are input errors,
	// and Held-Karp's optimality argument assumes non-negativity.
	ErrNegativeWeight = fmt.Errorf("%w: negative distance", ErrInvalidMatrix)

	// ErrNonFinite is returned by [NewMatrix] when any entry is NaN or
	// ±Inf. The matrix must describe a complete graph with real distances.
	ErrNonFinite = fmt.Errorf("%w: non-finite distance", ErrInvalidMatrix)

	// ErrNonzeroDiagonal is returned by [NewMatrix] when d[i][i] != 0.
	ErrNonzeroDiagonal = fmt.Errorf("%w: diagonal must be zero", ErrInvalidMatrix)

	// ErrAsymmetric is returned by [NewMatrix] when d[i][j] != d[j][i].
	// Only the symmetric TSP is supported; directed distance models are
	// out of scope.
	ErrAsymmetric = fmt.Errorf("%w: matrix is not symmetric", ErrInvalidMatrix)
)

// Matrix is a validated symmetric distance matrix over n cities.
// Entries are stored row-major in a flat slice, so the distance from i to j
// lives at index i*n+j. A Matrix can only be obtained through [NewMatrix],
// which establishes the invariants the solver relies on: square shape,
// n in [MinCities, MaxCities], zero diagonal, symmetry, and finite
// non-negative entries. The matrix is immutable after construction.
type Matrix struct {
	n int
	d []float64
}

// NewMatrix validates rows and returns an immutable distance matrix.
//
// Validation is staged so the cheapest checks run first and the error names
// the first offending position:
//
//  1. Dimension: len(rows) in [MinCities, MaxCities], every row of length n
//  2. Diagonal: d[i][i] == 0
//  3. Entries: finite and non-negative
//  4. Symmetry: d[i][j] == d[j][i] within a small absolute tolerance
//
// On failure one of [ErrNotSquare], [ErrTooFewCities], [ErrTooManyCities],
// [ErrNonzeroDiagonal], [ErrNegativeWeight], [ErrNonFinite], or
// [ErrAsymmetric] is returned, each wrapping [ErrInvalidMatrix]
// (or [ErrResourceExhausted] for ErrTooManyCities). The input slice is
// copied; the caller may reuse it.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n < MinCities {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewCities, n)
	}
	if n > MaxCities {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCities, n, MaxCities)
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
	}

	for i := range rows {
		if rows[i][i] != 0 {
			return nil, fmt.Errorf("%w: d[%d][%d] = %g", ErrNonzeroDiagonal, i, i, rows[i][i])
		}
	}

	for i := range rows {
		for j, v := range rows[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: d[%d][%d] = %g", ErrNonFinite, i, j, v)
			}
			if v < 0 {
				return nil, fmt.Errorf("%w: d[%d][%d] = %g", ErrNegativeWeight, i, j, v)
			}
		}
	}

	// Upper triangle only; the lower follows by the same comparison.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(rows[i][j]-rows[j][i]) > symmetryTol {
				return nil, fmt.Errorf("%w: d[%d][%d] = %g but d[%d][%d] = %g",
					ErrAsymmetric, i, j, rows[i][j], j, i, rows[j][i])
			}
		}
	}

	d := make([]float64, n*n)
	for i, row := range rows {
		copy(d[i*n:(i+1)*n], row)
	}
	return &Matrix{n: n, d: d}, nil
}

// Dim returns the number of cities n.
func (m *Matrix) Dim() int { return m.n }

// At returns the distance between cities i and j.
// Panics if either index is out of [0, n).
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(fmt.Sprintf("tsp: matrix index (%d,%d) out of range for dimension %d", i, j, m.n))
	}
	return m.d[i*m.n+j]
}

// Rows returns a fresh nested-slice copy of the matrix, suitable for JSON
// encoding or handing to code that expects [][]float64. Mutating the copy
// does not affect the Matrix.
func (m *Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = make([]float64, m.n)
		copy(rows[i], m.d[i*m.n:(i+1)*m.n])
	}
	return rows
}
