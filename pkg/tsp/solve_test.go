package tsp

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
)

// exampleRows is the classic four-city instance with optimal cost 80
// (0 -> 1 -> 3 -> 2 -> 0 or its reverse).
var exampleRows = [][]float64{
	{0, 10, 15, 20},
	{10, 0, 35, 25},
	{15, 35, 0, 30},
	{20, 25, 30, 0},
}

func TestSolveExample(t *testing.T) {
	m := mustMatrix(t, exampleRows)

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if sol.Cost != 80 {
		t.Errorf("Cost = %v, want 80", sol.Cost)
	}
	if err := sol.Tour.Validate(4); err != nil {
		t.Errorf("Tour %v invalid: %v", sol.Tour, err)
	}
	if want := (Tour{0, 1, 3, 2, 0}); !SameCycle(sol.Tour, want) {
		t.Errorf("Tour = %v, want the cycle %v (either direction)", sol.Tour, want)
	}
	if got := sol.Tour.Cost(m); got != sol.Cost {
		t.Errorf("Tour re-costed to %v, Solution.Cost is %v", got, sol.Cost)
	}
	if len(sol.Legs) != 4 {
		t.Errorf("Legs count = %d, want 4", len(sol.Legs))
	}
}

func TestSolveTwoCities(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{0, 7},
		{7, 0},
	})

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	want := Tour{0, 1, 0}
	if !equalTours(sol.Tour, want) {
		t.Errorf("Tour = %v, want %v", sol.Tour, want)
	}
	if sol.Cost != 14 {
		t.Errorf("Cost = %v, want 14", sol.Cost)
	}
	if sol.Stats.TableBytes != 0 {
		t.Errorf("TableBytes = %d, want 0 for the two-city shortcut", sol.Stats.TableBytes)
	}
}

func TestSolveMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 3; n <= 8; n++ {
		m := mustMatrix(t, randomRows(rng, n))

		sol, err := Solve(context.Background(), m)
		if err != nil {
			t.Fatalf("n=%d: Solve() error = %v", n, err)
		}

		want := bruteForceCost(m)
		if sol.Cost != want {
			t.Errorf("n=%d: Cost = %v, brute force found %v", n, sol.Cost, want)
		}
		if err := sol.Tour.Validate(n); err != nil {
			t.Errorf("n=%d: Tour %v invalid: %v", n, sol.Tour, err)
		}
	}
}

func TestSolveRingDistances(t *testing.T) {
	// On a ring metric (distance = steps around the circle) the optimal
	// tour walks the ring once, so the cost equals the city count.
	for _, n := range []int{4, 7, 12} {
		m := mustMatrix(t, ringRows(n))

		sol, err := Solve(context.Background(), m)
		if err != nil {
			t.Fatalf("n=%d: Solve() error = %v", n, err)
		}
		if sol.Cost != float64(n) {
			t.Errorf("n=%d: Cost = %v, want %d", n, sol.Cost, n)
		}
	}
}

func TestSolveDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := mustMatrix(t, randomRows(rng, 9))

	first, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		again, err := Solve(context.Background(), m)
		if err != nil {
			t.Fatalf("repeat %d: Solve() error = %v", i, err)
		}
		if again.Cost != first.Cost {
			t.Errorf("repeat %d: Cost = %v, want %v", i, again.Cost, first.Cost)
		}
		if !equalTours(again.Tour, first.Tour) {
			t.Errorf("repeat %d: Tour = %v, want %v", i, again.Tour, first.Tour)
		}
	}
}

func TestSolveParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	m := mustMatrix(t, randomRows(rng, 11))

	serial, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("serial Solve() error = %v", err)
	}

	for _, workers := range []int{2, 4, 8} {
		parallel, err := Solve(context.Background(), m, WithParallelism(workers))
		if err != nil {
			t.Fatalf("workers=%d: Solve() error = %v", workers, err)
		}
		if parallel.Cost != serial.Cost {
			t.Errorf("workers=%d: Cost = %v, serial found %v", workers, parallel.Cost, serial.Cost)
		}
		if !equalTours(parallel.Tour, serial.Tour) {
			t.Errorf("workers=%d: Tour = %v, serial found %v", workers, parallel.Tour, serial.Tour)
		}
		if parallel.Stats.Workers != workers {
			t.Errorf("workers=%d: Stats.Workers = %d", workers, parallel.Stats.Workers)
		}
	}
}

func TestSolveMemoryLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := mustMatrix(t, randomRows(rng, 12))

	_, err := Solve(context.Background(), m, WithMemoryLimit(1<<10))
	if !errors.Is(err, ErrResourceExhausted) {
		t.Errorf("Solve() error = %v, want ErrResourceExhausted", err)
	}
}

func TestSolveCanceledContext(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := mustMatrix(t, randomRows(rng, 6))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, m)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Solve() error = %v, want context.Canceled", err)
	}
}

func TestSolveNilMatrix(t *testing.T) {
	_, err := Solve(context.Background(), nil)
	if !errors.Is(err, ErrInvalidMatrix) {
		t.Errorf("Solve(nil) error = %v, want ErrInvalidMatrix", err)
	}
}

func TestSolveStats(t *testing.T) {
	m := mustMatrix(t, exampleRows)

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	// For n=4: layer 2 has 3 masks x 1 state, layer 3 has 3 x 2,
	// layer 4 has 1 x 3.
	if sol.Stats.States != 12 {
		t.Errorf("States = %d, want 12", sol.Stats.States)
	}
	if sol.Stats.TableBytes != estimateTableBytes(4) {
		t.Errorf("TableBytes = %d, want %d", sol.Stats.TableBytes, estimateTableBytes(4))
	}
	if sol.Stats.Duration <= 0 {
		t.Error("Duration should be positive")
	}
	if sol.Stats.Workers != 1 {
		t.Errorf("Workers = %d, want 1", sol.Stats.Workers)
	}
}

// ---- helpers ----

func mustMatrix(t *testing.T, rows [][]float64) *Matrix {
	t.Helper()
	m, err := NewMatrix(rows)
	if err != nil {
		t.Fatalf("NewMatrix() error = %v", err)
	}
	return m
}

// randomRows builds a symmetric matrix with integer-valued distances in
// [1, 100) and a zero diagonal.
func randomRows(rng *rand.Rand, n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := float64(1 + rng.Intn(99))
			rows[i][j] = d
			rows[j][i] = d
		}
	}
	return rows
}

// ringRows builds the ring metric: distance = min steps around the circle.
func ringRows(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			steps := i - j
			if steps < 0 {
				steps = -steps
			}
			if n-steps < steps {
				steps = n - steps
			}
			rows[i][j] = float64(steps)
		}
	}
	return rows
}

// bruteForceCost tries every permutation of cities 1..n-1 and returns the
// cheapest closed-tour cost. Exponential, so tests keep n small.
func bruteForceCost(m *Matrix) float64 {
	n := m.Dim()
	rest := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		rest = append(rest, i)
	}

	best := math.Inf(1)
	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			cost := m.At(0, rest[0])
			for i := 0; i+1 < len(rest); i++ {
				cost += m.At(rest[i], rest[i+1])
			}
			cost += m.At(rest[len(rest)-1], 0)
			if cost < best {
				best = cost
			}
			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)
	return best
}
