package grid

// Source is a scalar field f(x, y) on the unit square.
type Source func(x, y float64) float64

// Problem is the discrete Poisson problem on the finest grid.
// It is immutable once built by Initialize.
type Problem struct {
	// N is the interior point count per direction.
	N int
	// H is the mesh spacing 1/(N+1).
	H float64
	// B is the right-hand side sampled at interior points, length N².
	B []float64
}

// Len returns the number of unknowns, N².
func (p *Problem) Len() int { return p.N * p.N }
