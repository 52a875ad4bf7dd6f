package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/mgpoisson/matrix"
)

// ExampleCSRBuilder assembles a 1D Laplacian and solves it densely.
func ExampleCSRBuilder() {
	const n = 3
	b, _ := matrix.NewCSRBuilder(n, n, 3*n)
	for i := 0; i < n; i++ {
		_ = b.Add(i, i, 2)
		if i > 0 {
			_ = b.Add(i, i-1, -1)
			_ = b.Add(i-1, i, -1)
		}
	}
	a := b.Build()
	fmt.Println("nnz:", a.NNZ(), "bandwidth:", a.Bandwidth())

	L, U, _ := matrix.LU(a)
	x, _ := matrix.LUSolve(L, U, []float64{1, 0, 1})
	fmt.Printf("x = [%.2f %.2f %.2f]\n", x[0], x[1], x[2])

	r, _ := matrix.ResidualNorm(a, x, []float64{1, 0, 1})
	fmt.Printf("residual < 1e-12: %v\n", r < 1e-12)
	// Output:
	// nnz: 7 bandwidth: 1
	// x = [1.00 1.00 1.00]
	// residual < 1e-12: true
}
