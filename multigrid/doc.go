// Package multigrid solves the 2D Poisson equation −Δu = f on the unit square
// with homogeneous Dirichlet boundaries by geometric multigrid.
//
// What:
//
//   - Assemble builds the 5-point negative Laplacian of one level in CSR form.
//   - Relax applies weighted-Jacobi smoothing sweeps.
//   - Restrict / Prolong move grid vectors between a level and the next coarser one.
//   - NewCoarseSolver factorizes the coarsest operator (banded Cholesky or dense LU).
//   - BuildHierarchy assembles every level once; Hierarchy.Cycle runs one V-cycle.
//   - Solve / SolveSystem drive V-cycles until the residual norm drops below
//     tolerance, exceeds the divergence threshold, or the cycle budget runs out.
//
// Levels:
//
//	level 0        N        h = 1/(N+1)    finest
//	level 1        N/2
//	...
//	level lmax     N/2^lmax               exact solve
//
// Every level above the coarsest must have an even N ≥ 2; BuildHierarchy
// reports ErrInvalidGridSize otherwise, before anything is assembled.
//
// V-cycle (level l < lmax):
//
//  1. ν Jacobi sweeps on A_l·x = b.
//  2. r = b − A_l·x, restricted to level l+1.
//  3. Recurse from a zero initial guess on level l+1.
//  4. Prolong the coarse result and add it to x.
//  5. ν Jacobi sweeps.
//
// On level lmax the system is solved exactly instead.
//
// Concurrency:
//
//	A Hierarchy is read-only after construction. Each Cycle call allocates its
//	own per-level vectors, so one hierarchy can serve concurrent solves. A
//	single solve is sequential.
//
// Errors:
//
//   - ErrInvalidGridSize: N cannot be halved lmax times, or odd N in a transfer.
//   - ErrCoarseSolve: the coarsest factorization or solve failed.
//   - ErrInvalidOption: nonsensical options.
//   - ErrDimensionMismatch: a vector does not match its level.
//
// Divergence is not an error: Result.Status reports it.
package multigrid
