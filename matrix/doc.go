// Package matrix provides the small linear-algebra core behind the multigrid
// solver.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with safe At/Set accessors, used as
//     the workspace of the dense coarse-grid solver.
//   - CSR and CSRBuilder: an immutable compressed-sparse-row operator for
//     stencil matrices (five nonzeros per row for the 2D Laplacian).
//   - LU / LUSolve: Doolittle factorization without pivoting and the matching
//     forward/backward substitution.
//   - Residual helpers (Residual, ResidualTo, ResidualNorm) that accept any
//     Operator, dense or sparse.
//   - Validators shared by all kernels (shape, vector length, symmetry, finiteness).
//
// All kernels return sentinel errors from errors.go, wrapped with an operation
// tag; check them with errors.Is. Nothing panics on user-triggered misuse.
//
// Loops run in a fixed order, so results are bit-for-bit reproducible for
// the same inputs.
package matrix
