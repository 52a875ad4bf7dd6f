package grid

import "math"

// ManufacturedSource is f(x,y) = 2π²·sin(πx)·sin(πy), the right-hand side of
// −Δu = f whose exact solution is ManufacturedSolution.
func ManufacturedSource(x, y float64) float64 {
	return 2 * math.Pi * math.Pi * math.Sin(math.Pi*x) * math.Sin(math.Pi*y)
}

// ManufacturedSolution is u(x,y) = sin(πx)·sin(πy). It vanishes on the
// boundary of the unit square.
func ManufacturedSolution(x, y float64) float64 {
	return math.Sin(math.Pi*x) * math.Sin(math.Pi*y)
}

// ZeroSource is f ≡ 0; the exact discrete solution is the zero vector.
func ZeroSource(_, _ float64) float64 { return 0 }

// Constant returns the source f ≡ c.
func Constant(c float64) Source {
	return func(_, _ float64) float64 { return c }
}
