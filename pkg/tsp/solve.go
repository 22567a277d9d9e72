package tsp

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"sync"
	"time"

	"github.com/mvoelker/tourmaline/pkg/observability"
)

// DefaultMemoryLimit caps the DP and parent table allocation of a single
// solve. The worst case (20 cities) needs roughly 190 MB including the mask
// index, so the default leaves headroom without letting a solve take the
// process down on small machines. Override per solve with [WithMemoryLimit].
const DefaultMemoryLimit int64 = 256 << 20

// Stats describes the work a solve performed.
type Stats struct {
	// Duration is the wall-clock time of the whole solve including
	// validation and reconstruction.
	Duration time.Duration `json:"duration"`

	// States counts the (mask, last) DP cells that were filled.
	States int `json:"states"`

	// TableBytes is the memory allocated for the DP, parent, and mask
	// index tables. Zero for the two-city shortcut.
	TableBytes int64 `json:"tableBytes"`

	// Workers is the number of goroutines that filled DP layers.
	Workers int `json:"workers"`
}

// Solution is the result of a successful solve: the optimal tour, its cost,
// the per-leg breakdown, and solve statistics. Solutions are immutable.
type Solution struct {
	Tour  Tour    `json:"tour"`
	Cost  float64 `json:"cost"`
	Legs  []Leg   `json:"legs"`
	Stats Stats   `json:"stats"`
}

// SolveOption configures a single solve invocation.
type SolveOption func(*solver)

// WithParallelism sets the number of goroutines used to fill each DP layer.
// Values below 2 select the single-threaded fill. Masks within one
// cardinality layer are independent, so workers partition them with a
// barrier between layers; the result is identical to the serial fill.
func WithParallelism(workers int) SolveOption {
	return func(s *solver) {
		if workers > 1 {
			s.workers = workers
		}
	}
}

// WithMemoryLimit overrides [DefaultMemoryLimit] for one solve.
// Solves whose tables would exceed the limit fail with
// [ErrResourceExhausted] before allocating anything.
func WithMemoryLimit(bytes int64) SolveOption {
	return func(s *solver) {
		if bytes > 0 {
			s.memLimit = bytes
		}
	}
}

type solver struct {
	workers  int
	memLimit int64
}

// Solve computes the optimal closed tour through all cities of m using
// Held-Karp dynamic programming over visited-set bitmasks.
//
// The DP state is the pair (mask, last): the minimum cost of a path that
// starts at city 0, visits exactly the cities in mask, and currently stands
// at last. States are stored in a flat array indexed mask*n+last. Masks are
// processed in increasing cardinality, so every state only reads states of
// strictly smaller masks that are already final. After the last layer the
// tour is closed over the return edge to city 0 and the visiting order is
// recovered from recorded predecessors.
//
// Complexity is O(n²·2ⁿ) time and O(n·2ⁿ) space. With [MaxCities] = 20 a
// solve stays in the low seconds on commodity hardware.
//
// Ties between equal-cost candidates resolve to the lowest city index, so
// repeated solves of the same matrix return the identical tour and cost.
// When multiple optimal tours exist, which one is returned is an
// implementation detail; only the cost is canonical.
//
// ctx is checked between cardinality layers; cancellation returns ctx.Err().
// Failure modes: [ErrInvalidMatrix] for a nil matrix (constructed matrices
// are valid by construction) and [ErrResourceExhausted] when the tables
// would exceed the memory limit. Both are detected before any table is
// allocated, and no partial result is ever returned.
func Solve(ctx context.Context, m *Matrix, opts ...SolveOption) (*Solution, error) {
	s := solver{workers: 1, memLimit: DefaultMemoryLimit}
	for _, opt := range opts {
		opt(&s)
	}

	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrInvalidMatrix)
	}
	n := m.Dim()
	if n < MinCities {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewCities, n)
	}
	if n > MaxCities {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCities, n, MaxCities)
	}

	obs := observability.Solver()
	obs.OnSolveStart(ctx, n, s.workers)
	start := time.Now()

	sol, err := s.run(ctx, m)
	if err != nil {
		obs.OnSolveComplete(ctx, n, 0, time.Since(start), err)
		return nil, err
	}

	sol.Stats.Duration = time.Since(start)
	sol.Stats.Workers = s.workers
	obs.OnSolveComplete(ctx, n, sol.Cost, sol.Stats.Duration, nil)
	return sol, nil
}

func (s *solver) run(ctx context.Context, m *Matrix) (*Solution, error) {
	n := m.Dim()

	// Two cities have exactly one tour: out and back.
	if n == 2 {
		tour := Tour{0, 1, 0}
		return &Solution{
			Tour: tour,
			Cost: 2 * m.At(0, 1),
			Legs: tour.Legs(m),
		}, nil
	}

	tableBytes := estimateTableBytes(n)
	if tableBytes > s.memLimit {
		return nil, fmt.Errorf("%w: %d cities need %d MB, limit %d MB",
			ErrResourceExhausted, n, tableBytes>>20, s.memLimit>>20)
	}

	full := 1<<n - 1

	// dp[mask*n+last] = min cost to visit exactly mask, ending at last.
	// parent mirrors dp with the predecessor that achieved the minimum.
	dp := make([]float64, (full+1)*n)
	for i := range dp {
		dp[i] = math.Inf(1)
	}
	parent := make([]int8, (full+1)*n)
	for i := range parent {
		parent[i] = -1
	}
	dp[1*n+0] = 0 // visited {0}, standing at 0

	// Masks grouped by cardinality; only masks containing the start city
	// are ever populated. Ascending numeric order inside each layer keeps
	// the tie-break stable.
	layers := make([][]uint32, n+1)
	for mask := 3; mask <= full; mask += 2 {
		k := bits.OnesCount32(uint32(mask))
		layers[k] = append(layers[k], uint32(mask))
	}

	obs := observability.Solver()
	states := 0
	for k := 2; k <= n; k++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		masks := layers[k]
		if s.workers > 1 {
			fillLayerParallel(dp, parent, masks, m, s.workers)
		} else {
			for _, mask := range masks {
				fillMask(dp, parent, int(mask), m)
			}
		}

		// Each mask of cardinality k has k-1 candidate last cities.
		states += len(masks) * (k - 1)
		obs.OnLayerComplete(ctx, k, n, states)
	}

	// Close the tour over the return edge to city 0.
	fullRow := full * n
	best := math.Inf(1)
	bestLast := -1
	for last := 1; last < n; last++ {
		if c := dp[fullRow+last] + m.d[last*n+0]; c < best {
			best = c
			bestLast = last
		}
	}
	if bestLast < 0 {
		// Unreachable for a validated matrix; every state is finite.
		return nil, fmt.Errorf("tsp: no closed tour found")
	}

	tour := reconstruct(parent, n, bestLast)
	return &Solution{
		Tour: tour,
		Cost: best,
		Legs: tour.Legs(m),
		Stats: Stats{
			States:     states,
			TableBytes: tableBytes,
		},
	}, nil
}

// fillMask computes dp and parent for every last city of one mask.
// Each (mask, last) cell is written exactly once, by exactly one caller,
// which is what makes the per-layer parallel fill race-free.
func fillMask(dp []float64, parent []int8, mask int, m *Matrix) {
	n := m.n
	row := mask * n
	for last := 1; last < n; last++ {
		if mask&(1<<last) == 0 {
			continue
		}
		prev := mask ^ (1 << last)
		prevRow := prev * n
		best := math.Inf(1)
		bestFrom := int8(-1)
		for from := 0; from < n; from++ {
			if prev&(1<<from) == 0 {
				continue
			}
			if c := dp[prevRow+from] + m.d[from*n+last]; c < best {
				best = c
				bestFrom = int8(from)
			}
		}
		dp[row+last] = best
		parent[row+last] = bestFrom
	}
}

// fillLayerParallel partitions one cardinality layer across workers.
// Workers stride over the mask list, so ownership of each (mask, last)
// cell is unique; the WaitGroup is the barrier before the next layer.
func fillLayerParallel(dp []float64, parent []int8, masks []uint32, m *Matrix, workers int) {
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < len(masks); i += workers {
				fillMask(dp, parent, int(masks[i]), m)
			}
		}(w)
	}
	wg.Wait()
}

// reconstruct recovers the visiting order by walking predecessors backward
// from the full mask, clearing the current city's bit at each step until
// only the start city remains. Pure function over the parent table; always
// returns exactly n+1 entries.
func reconstruct(parent []int8, n, last int) Tour {
	tour := make(Tour, n+1)
	tour[n] = 0
	mask := 1<<n - 1
	for i := n - 1; i >= 1; i-- {
		tour[i] = last
		prev := parent[mask*n+last]
		mask ^= 1 << last
		last = int(prev)
	}
	tour[0] = 0
	return tour
}

// estimateTableBytes returns the allocation a solve of dimension n needs:
// 8 bytes per dp cell, 1 per parent cell, plus the uint32 mask index.
func estimateTableBytes(n int) int64 {
	cells := int64(1) << n * int64(n)
	index := int64(1) << n * 4
	return cells*9 + index
}
