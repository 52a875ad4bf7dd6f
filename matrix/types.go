// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense and sparse storages.
// This file holds the Operator interface and package-level numeric
// constants. Errors live in errors.go, validators in validators.go.
package matrix

// DefaultValidateNaNInf is the default numeric policy for Dense.Set and the
// CSR builder: NaN and ±Inf are rejected with ErrNaNInf.
const DefaultValidateNaNInf = true

// MaxDenseElements caps ToDense materialization of sparse operators
// (rows*cols). 1<<22 elements is 32 MiB of float64.
const MaxDenseElements = 1 << 22

// Operator is a read-only linear map y = A·x. Both *Dense and *CSR satisfy it,
// so residual helpers and validators work on either storage.
type Operator interface {
	// Rows returns the length of the output vector.
	Rows() int

	// Cols returns the length of the input vector.
	Cols() int

	// At returns A[i,j] (zero for unstored sparse entries).
	At(i, j int) (float64, error)

	// MulVecTo writes A·x into dst. dst and x must not alias.
	// Returns ErrDimensionMismatch when len(x) != Cols() or len(dst) != Rows().
	MulVecTo(dst, x []float64) error
}
