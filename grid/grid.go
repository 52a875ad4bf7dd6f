package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Spacing returns the mesh spacing h = 1/(n+1) for n interior points.
// Complexity: O(1).
func Spacing(n int) float64 {
	return 1 / float64(n+1)
}

// Index returns the row-major offset of interior point (i, j) on an n×n grid.
// Complexity: O(1).
func Index(n, i, j int) int {
	return i*n + j
}

// Coordinates is the inverse of Index: it returns (i, j) for offset k.
// Complexity: O(1).
func Coordinates(n, k int) (i, j int) {
	return k / n, k % n
}

// InBounds reports whether (i, j) is an interior point of an n×n grid.
// Complexity: O(1).
func InBounds(n, i, j int) bool {
	return i >= 0 && i < n && j >= 0 && j < n
}

// Points returns the n interior coordinates h, 2h, ..., 1-h along one axis.
// Returns ErrInvalidSize if n < 1.
// Complexity: O(n).
func Points(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("Points(%d): %w", n, ErrInvalidSize)
	}
	h := Spacing(n)
	pts := make([]float64, n)
	if n == 1 {
		pts[0] = h // the single midpoint, 0.5
		return pts, nil
	}
	floats.Span(pts, h, 1-h)

	return pts, nil
}

// Sample evaluates f at every interior point and returns the grid vector
// v[i*n+j] = f(x_j, y_i), i.e. rows follow y and columns follow x.
//
// Errors:
//   - ErrInvalidSize if n < 1; ErrNilSource if f is nil.
//
// Complexity: O(n²) time and memory.
func Sample(n int, f Source) ([]float64, error) {
	if f == nil {
		return nil, ErrNilSource
	}
	pts, err := Points(n)
	if err != nil {
		return nil, err
	}
	v := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v[Index(n, i, j)] = f(pts[j], pts[i])
		}
	}

	return v, nil
}

// Initialize builds the finest-grid problem for n interior points: it
// computes h and samples the source at the interior mesh spanning (h, 1-h).
// It is a pure function of its arguments.
//
// Errors:
//   - ErrInvalidSize if n < 1; ErrNilSource if src is nil.
func Initialize(n int, src Source) (*Problem, error) {
	b, err := Sample(n, src)
	if err != nil {
		return nil, fmt.Errorf("Initialize: %w", err)
	}

	return &Problem{N: n, H: Spacing(n), B: b}, nil
}

// MaxError returns max |x[k] − exact(x_j, y_i)| over all interior points,
// the discrete infinity-norm error against a closed-form solution.
//
// Errors:
//   - ErrInvalidSize, ErrNilSource, ErrLength (len(x) != n²).
func MaxError(n int, x []float64, exact Source) (float64, error) {
	if n >= 1 && len(x) != n*n {
		return 0, fmt.Errorf("MaxError: len %d for n=%d: %w", len(x), n, ErrLength)
	}
	ref, err := Sample(n, exact)
	if err != nil {
		return 0, fmt.Errorf("MaxError: %w", err)
	}
	worst := 0.0
	for k, v := range ref {
		worst = math.Max(worst, math.Abs(x[k]-v))
	}

	return worst, nil
}
