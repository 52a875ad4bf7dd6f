// SPDX-License-Identifier: MIT

package multigrid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mgpoisson/matrix"
	"gonum.org/v1/gonum/floats"
)

// Relax performs `sweeps` weighted-Jacobi sweeps on A·x = b,
//
//	x ← x + ω·D⁻¹·(b − A·x),   D = diag(A),
//
// and returns the updated vector. x and b are not modified.
//
// Relax is a smoother: it damps short-wavelength error in a few sweeps and is
// not meant to be run to convergence.
//
// Errors:
//   - ErrInvalidOption for a non-finite or non-positive omega or negative sweeps.
//   - matrix.ErrDimensionMismatch / matrix.ErrNilMatrix for bad shapes.
//   - matrix.ErrSingular when A has a zero on its diagonal.
//
// Complexity:
//   - Time O(sweeps·nnz), Space O(n).
func Relax(a *matrix.CSR, x, b []float64, omega float64, sweeps int) ([]float64, error) {
	if a == nil {
		return nil, mgErrorf(opRelax, matrix.ErrNilMatrix)
	}
	if !(omega > 0) || math.IsInf(omega, 0) {
		return nil, mgErrorf(opRelax, fmt.Errorf("omega=%g: %w", omega, ErrInvalidOption))
	}
	if sweeps < 0 {
		return nil, mgErrorf(opRelax, fmt.Errorf("sweeps=%d: %w", sweeps, ErrInvalidOption))
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, mgErrorf(opRelax, err)
	}
	if err := matrix.ValidateVecLen(x, a.Rows()); err != nil {
		return nil, mgErrorf(opRelax, err)
	}
	if err := matrix.ValidateVecLen(b, a.Rows()); err != nil {
		return nil, mgErrorf(opRelax, err)
	}
	invDiag, err := inverseDiagonal(a)
	if err != nil {
		return nil, mgErrorf(opRelax, err)
	}

	out := make([]float64, len(x))
	copy(out, x)
	if err = jacobi(a, invDiag, out, b, omega, sweeps, make([]float64, len(x))); err != nil {
		return nil, mgErrorf(opRelax, err)
	}

	return out, nil
}

// inverseDiagonal returns 1/A[i,i]; a zero diagonal entry is ErrSingular.
func inverseDiagonal(a *matrix.CSR) ([]float64, error) {
	d := a.Diagonal()
	for i, v := range d {
		if v == 0 {
			return nil, fmt.Errorf("diagonal[%d]: %w", i, matrix.ErrSingular)
		}
		d[i] = 1 / v
	}

	return d, nil
}

// jacobi relaxes x in place; r is caller-owned scratch of length n.
// Shapes are assumed valid.
func jacobi(a *matrix.CSR, invDiag, x, b []float64, omega float64, sweeps int, r []float64) error {
	for s := 0; s < sweeps; s++ {
		if err := matrix.ResidualTo(r, a, x, b); err != nil {
			return err
		}
		floats.Mul(r, invDiag)
		floats.AddScaled(x, omega, r)
	}

	return nil
}
