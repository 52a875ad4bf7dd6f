// SPDX-License-Identifier: MIT

// Package multigrid - grid transfer operators.
//
// Both operators act on row-major grid vectors and require an even fine size
// n; the coarse grid is (n/2)×(n/2) and coarse cell (i,j) sits on fine cell
// (2i,2j).
//
// Restriction weighting:
//
//	c[i,j] = ( f[2i,2j] + ½·(f[2i+1,2j] + f[2i,2j+1]) + ¼·f[2i+1,2j+1] ) / 4
//
// The weights sum to 2.25 while the divisor is 4, so this is not the textbook
// 9-point full-weighting stencil. Convergence rates in the tests are pinned
// to this weighting.
//
// Prolongation:
//   - inject f[2i,2j] = c[i,j];
//   - odd rows 1,3,..,n−3: average of the even rows above and below (all columns);
//   - odd columns 1,3,..,n−3: average of the even columns left and right (all rows).
//
// The last fine row and column (index n−1) are never written and stay zero.
package multigrid

import "fmt"

// checkTransfer validates an even fine size and the vector length.
func checkTransfer(n, got, want int) error {
	if n < 2 || n%2 != 0 {
		return fmt.Errorf("fine n=%d must be even and >= 2: %w", n, ErrInvalidGridSize)
	}
	if got != want {
		return fmt.Errorf("len=%d, want %d: %w", got, want, ErrDimensionMismatch)
	}

	return nil
}

// Restrict maps an n×n fine-grid vector to a fresh (n/2)×(n/2) coarse vector.
//
// Errors:
//   - ErrInvalidGridSize if n is odd or < 2.
//   - ErrDimensionMismatch if len(fine) != n².
//
// Complexity: O(n²).
func Restrict(fine []float64, n int) ([]float64, error) {
	if err := checkTransfer(n, len(fine), n*n); err != nil {
		return nil, mgErrorf(opRestrict, err)
	}
	nc := n / 2
	coarse := make([]float64, nc*nc)
	restrictTo(coarse, fine, n)

	return coarse, nil
}

// restrictTo writes the restriction of fine into coarse; shapes are assumed valid.
func restrictTo(coarse, fine []float64, n int) {
	nc := n / 2
	var i, j, r0, r1 int
	for i = 0; i < nc; i++ {
		r0 = 2 * i * n // fine row 2i
		r1 = r0 + n    // fine row 2i+1
		for j = 0; j < nc; j++ {
			coarse[i*nc+j] = (fine[r0+2*j] +
				0.5*(fine[r1+2*j]+fine[r0+2*j+1]) +
				0.25*fine[r1+2*j+1]) / 4
		}
	}
}

// Prolong maps an (n/2)×(n/2) coarse-grid vector to a fresh n×n fine vector.
//
// Errors:
//   - ErrInvalidGridSize if n is odd or < 2.
//   - ErrDimensionMismatch if len(coarse) != (n/2)².
//
// Complexity: O(n²).
func Prolong(coarse []float64, n int) ([]float64, error) {
	nc := n / 2
	if err := checkTransfer(n, len(coarse), nc*nc); err != nil {
		return nil, mgErrorf(opProlong, err)
	}
	fine := make([]float64, n*n)
	prolongTo(fine, coarse, n)

	return fine, nil
}

// prolongTo overwrites fine with the prolongation of coarse; shapes are assumed valid.
func prolongTo(fine, coarse []float64, n int) {
	clear(fine)
	nc := n / 2
	var i, j int
	for i = 0; i < nc; i++ {
		for j = 0; j < nc; j++ {
			fine[2*i*n+2*j] = coarse[i*nc+j]
		}
	}
	for i = 1; i < n-1; i += 2 {
		for j = 0; j < n; j++ {
			fine[i*n+j] = 0.5 * (fine[(i-1)*n+j] + fine[(i+1)*n+j])
		}
	}
	for i = 0; i < n; i++ {
		for j = 1; j < n-1; j += 2 {
			fine[i*n+j] = 0.5 * (fine[i*n+j-1] + fine[i*n+j+1])
		}
	}
}
