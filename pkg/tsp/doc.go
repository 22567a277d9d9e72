// Package tsp solves the symmetric Traveling Salesman Problem exactly for
// small instances using Held-Karp dynamic programming over bitmasks.
//
// # Overview
//
// The package is built around three types:
//
//   - [Matrix]: a validated symmetric distance matrix, the solver's input
//   - [Tour]: a closed visiting order anchored at city 0
//   - [Solution]: tour, optimal cost, leg breakdown, and solve statistics
//
// A solve is one call:
//
//	m, err := tsp.NewMatrix(rows)
//	if err != nil { ... }
//	sol, err := tsp.Solve(ctx, m)
//	if err != nil { ... }
//	fmt.Println(sol.Tour, sol.Cost)
//
// # Algorithm
//
// Held-Karp enumerates visited-city subsets as bitmasks. For every pair
// (mask, last) it records the cheapest path that starts at city 0, visits
// exactly the cities in mask, and ends at last. Masks are filled in order
// of increasing cardinality, so each state only depends on finished states.
// The optimal tour cost is the cheapest full-mask state plus the return
// edge to city 0; the visiting order falls out of recorded predecessors.
//
// The state space is 2ⁿ·n, which is why [MaxCities] caps instances at 20:
// the algorithm is exact and exponential, not a heuristic. Within the cap a
// solve is fast; at the cap it allocates a table of roughly 190 MB, guarded
// by the solve's memory limit.
//
// # Validation
//
// Matrices only exist validated: [NewMatrix] rejects non-square input,
// dimensions outside [MinCities, MaxCities], negative, non-finite or
// asymmetric entries, and non-zero diagonals. All validation errors wrap
// [ErrInvalidMatrix] except the city-count cap, which wraps
// [ErrResourceExhausted] like the memory guard does. Nothing is allocated
// before validation passes.
//
// # Concurrency
//
// [Solve] is single-threaded by default. [WithParallelism] partitions each
// mask-cardinality layer across workers with a barrier between layers;
// every DP cell is written by exactly one worker, and the parallel fill
// produces bit-identical results to the serial one. Distinct solves are
// independent and safe to run concurrently.
package tsp
