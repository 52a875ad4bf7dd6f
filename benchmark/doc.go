// Package benchmark compares the two-level method with the deepest useful
// hierarchy across several grid resolutions.
//
// What:
//
//   - For every N, Run solves the manufactured problem twice: once with
//     lmax = 1 (two-level) and once with lmax = MaxLevels(N), which coarsens
//     down to an 8×8 grid.
//   - Solves run concurrently on an errgroup bounded by WithParallelism;
//     each solve owns its hierarchy, so nothing is shared between goroutines.
//   - Rows come back sorted by N; presentation lives in package report and
//     persistence in package store.
//
// Errors:
//
//   - ErrNoSizes: empty size list.
//   - ErrParallelism: parallelism < 1.
//   - Solver errors (for example multigrid.ErrInvalidGridSize) and context
//     cancellation are returned as-is, wrapped with the offending N.
package benchmark
