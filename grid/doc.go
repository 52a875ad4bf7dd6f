// Package grid describes the uniform interior mesh of the unit square and
// builds the discrete right-hand side of the Poisson problem on it.
//
// What:
//
//   - An N×N interior grid with spacing h = 1/(N+1); boundary points are the
//     homogeneous Dirichlet boundary and are never stored.
//   - Grid vectors are flat []float64 in row-major order: index = i*N + j for
//     row i (the y direction) and column j (the x direction).
//   - Source is a pluggable f(x, y); Initialize samples it at the interior points.
//   - ManufacturedSource / ManufacturedSolution give a problem with a known
//     closed form, u(x,y) = sin(πx)·sin(πy), for exact-error checks.
//
// Complexity:
//
//   - Points:     O(N).
//   - Initialize: O(N²) time and memory.
//   - MaxError:   O(N²).
//
// Errors:
//
//   - ErrInvalidSize: N < 1.
//   - ErrNilSource: a nil Source was supplied.
//   - ErrLength: a grid vector does not have N² entries.
package grid
