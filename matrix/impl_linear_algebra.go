// SPDX-License-Identifier: MIT

// Package matrix: linear-algebra kernels of the solver.
//
//   - LU / LUSolve: Doolittle factorization and triangular solves, the
//     backend of the dense coarse-grid solver.
//   - ResidualTo / Residual / ResidualNorm: r = b − A·x for any Operator.
//
// Every kernel validates through validators.go and tags failures with its
// operation name via matrixErrorf. Flat-slice vector arithmetic goes through
// gonum/floats.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Zero values used as accumulator seeds and pivot sentinels.
const (
	NormZero  = 0.0
	ZeroSum   = 0.0
	ZeroPivot = 0.0
)

// Operation tags for error wrapping.
const (
	opLU       = "LU"
	opLUSolve  = "LUSolve"
	opMatVec   = "MatVec"
	opResidual = "Residual"
)

// matrixErrorf prefixes a non-nil err with tag, keeping it matchable by errors.Is.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// LU factors a square operator as A = L·U, L unit lower triangular, without
// pivoting. That is safe when every leading minor is nonsingular, which holds
// for the SPD discrete Laplacian.
//
// A *Dense is read in place; a *CSR is expanded with ToDense (subject to
// MaxDenseElements); any other Operator is copied through At.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrTooLarge, ErrSingular (zero
// pivot).
//
// Complexity: O(n³) time, O(n²) space.
func LU(m Operator) (*Dense, *Dense, error) {
	if m == nil {
		return nil, nil, matrixErrorf(opLU, ErrNilMatrix)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	a, err := denseOf(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	n := a.r
	L, _ := NewDense(n, n)
	U, _ := NewDense(n, n)
	for i := 0; i < n; i++ {
		L.data[i*n+i] = 1
		li := L.data[i*n : (i+1)*n]

		// Row i of U.
		for j := i; j < n; j++ {
			sum := ZeroSum
			for k := 0; k < i; k++ {
				sum += li[k] * U.data[k*n+j]
			}
			U.data[i*n+j] = a.data[i*n+j] - sum
		}

		pivot := U.data[i*n+i]
		if pivot == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, fmt.Errorf("pivot %d: %w", i, ErrSingular))
		}

		// Column i of L.
		for j := i + 1; j < n; j++ {
			lj := L.data[j*n : (j+1)*n]
			sum := ZeroSum
			for k := 0; k < i; k++ {
				sum += lj[k] * U.data[k*n+i]
			}
			lj[i] = (a.data[j*n+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// denseOf returns m as a *Dense without copying when it already is one.
func denseOf(m Operator) (*Dense, error) {
	switch t := m.(type) {
	case *Dense:
		return t, nil
	case *CSR:
		return t.ToDense()
	}
	d, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	for i := 0; i < d.r; i++ {
		for j := 0; j < d.c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			d.data[i*d.c+j] = v
		}
	}

	return d, nil
}

// LUSolve solves L·U·x = b for x given Doolittle factors from LU.
//
// Implementation:
//   - Stage 1: forward substitution L·y = b (top-down; L has unit diagonal).
//   - Stage 2: backward substitution U·x = y (bottom-up; zero pivots rejected).
//
// Inputs:
//   - L, U: n×n factors as returned by LU.
//   - b   : right-hand side of length n (not mutated).
//
// Returns:
//   - []float64: a freshly allocated solution vector.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n^2), Space O(n).
func LUSolve(L, U *Dense, b []float64) ([]float64, error) {
	if L == nil || U == nil {
		return nil, matrixErrorf(opLUSolve, ErrNilMatrix)
	}
	if err := ValidateSquare(L); err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}
	n := L.r
	if U.r != n || U.c != n {
		return nil, matrixErrorf(opLUSolve, ErrDimensionMismatch)
	}
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}

	var (
		i, k       int
		base       int
		sum, pivot float64
		x          = make([]float64, n)
	)
	// Forward: y overwrites x in place.
	for i = 0; i < n; i++ {
		base = i * n
		sum = ZeroSum
		for k = 0; k < i; k++ {
			sum += L.data[base+k] * x[k]
		}
		x[i] = b[i] - sum
	}
	// Backward.
	for i = n - 1; i >= 0; i-- {
		base = i * n
		sum = ZeroSum
		for k = i + 1; k < n; k++ {
			sum += U.data[base+k] * x[k]
		}
		pivot = U.data[base+i]
		if pivot == ZeroPivot {
			return nil, matrixErrorf(opLUSolve, ErrSingular)
		}
		x[i] = (x[i] - sum) / pivot
	}

	return x, nil
}

// ResidualTo writes r = b − A·x into dst.
// dst must not alias x; it may alias b.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(nnz) for CSR, O(n²) for Dense; Space O(1).
func ResidualTo(dst []float64, a Operator, x, b []float64) error {
	if err := ValidateNotNil(a); err != nil {
		return matrixErrorf(opResidual, err)
	}
	if err := ValidateVecLen(b, a.Rows()); err != nil {
		return matrixErrorf(opResidual, err)
	}
	if err := ValidateVecLen(dst, a.Rows()); err != nil {
		return matrixErrorf(opResidual, err)
	}
	// ax lives in dst; b is read before dst[i] is overwritten only when they differ,
	// so compute A·x into a scratch copy when dst aliases b.
	if len(dst) > 0 && &dst[0] == &b[0] {
		ax := make([]float64, len(dst))
		if err := a.MulVecTo(ax, x); err != nil {
			return matrixErrorf(opResidual, err)
		}
		floats.Sub(dst, ax)
		return nil
	}
	if err := a.MulVecTo(dst, x); err != nil {
		return matrixErrorf(opResidual, err)
	}
	floats.SubTo(dst, b, dst)

	return nil
}

// Residual returns a freshly allocated r = b − A·x.
// Complexity: see ResidualTo.
func Residual(a Operator, x, b []float64) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opResidual, err)
	}
	r := make([]float64, a.Rows())
	if err := ResidualTo(r, a, x, b); err != nil {
		return nil, err
	}

	return r, nil
}

// ResidualNorm returns the Euclidean norm ‖b − A·x‖₂.
// Complexity: see ResidualTo.
func ResidualNorm(a Operator, x, b []float64) (float64, error) {
	r, err := Residual(a, x, b)
	if err != nil {
		return NormZero, err
	}

	return floats.Norm(r, 2), nil
}
