// SPDX-License-Identifier: MIT

package multigrid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mgpoisson/grid"
	"github.com/katalvlaran/mgpoisson/matrix"
)

// stencilNNZ is the maximum number of nonzeros per row of the 5-point stencil.
const stencilNNZ = 5

// Assemble builds the discrete negative Laplacian for an n×n interior grid
// with spacing h, using the 5-point stencil:
//
//	A[k,k]          =  4/h²
//	A[k,neighbour]  = −1/h²   for each up/down/left/right interior neighbour
//
// Neighbours outside the interior are the zero Dirichlet boundary and add
// nothing. The result is symmetric positive definite for every n ≥ 1.
//
// Errors:
//   - ErrInvalidGridSize if n < 1.
//   - ErrInvalidOption if h is not finite and positive.
//
// Complexity:
//   - Time O(n²·log n), Space O(5n²).
func Assemble(n int, h float64) (*matrix.CSR, error) {
	if n < 1 {
		return nil, mgErrorf(opAssemble, fmt.Errorf("n=%d: %w", n, ErrInvalidGridSize))
	}
	if !(h > 0) || math.IsInf(h, 0) {
		return nil, mgErrorf(opAssemble, fmt.Errorf("h=%g: %w", h, ErrInvalidOption))
	}

	size := n * n
	b, err := matrix.NewCSRBuilder(size, size, stencilNNZ*size)
	if err != nil {
		return nil, mgErrorf(opAssemble, err)
	}
	inv := 1 / (h * h)
	diag, off := 4*inv, -inv

	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			k = grid.Index(n, i, j)
			if err = b.Add(k, k, diag); err != nil {
				return nil, mgErrorf(opAssemble, err)
			}
			// up, down, left, right
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				if !grid.InBounds(n, i+d[0], j+d[1]) {
					continue
				}
				if err = b.Add(k, grid.Index(n, i+d[0], j+d[1]), off); err != nil {
					return nil, mgErrorf(opAssemble, err)
				}
			}
		}
	}

	return b.Build(), nil
}
