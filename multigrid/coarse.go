// SPDX-License-Identifier: MIT

package multigrid

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/mgpoisson/matrix"
	"gonum.org/v1/gonum/mat"
)

// MaxDenseCoarseUnknowns caps the coarsest level for CoarseLU; a dense
// factorization above it costs O(n³) time and O(n²) memory.
const MaxDenseCoarseUnknowns = 1024

// CoarseMethod selects the direct solver used on the coarsest level.
type CoarseMethod int

const (
	// CoarseCholesky factorizes the banded SPD operator with gonum (bandwidth N).
	CoarseCholesky CoarseMethod = iota

	// CoarseLU materializes the operator densely and uses Doolittle LU.
	// Limited to MaxDenseCoarseUnknowns unknowns.
	CoarseLU
)

var coarseNames = [...]string{
	CoarseCholesky: "cholesky",
	CoarseLU:       "lu",
}

func (m CoarseMethod) valid() bool { return m >= 0 && int(m) < len(coarseNames) }

// String returns the lowercase method name.
func (m CoarseMethod) String() string {
	if !m.valid() {
		return fmt.Sprintf("CoarseMethod(%d)", int(m))
	}

	return coarseNames[m]
}

// ParseCoarseMethod accepts "cholesky" or "lu" (case-insensitive).
func ParseCoarseMethod(s string) (CoarseMethod, error) {
	for m, name := range coarseNames {
		if strings.EqualFold(s, name) {
			return CoarseMethod(m), nil
		}
	}

	return 0, fmt.Errorf("coarse method %q: %w", s, ErrInvalidOption)
}

// CoarseSolver solves A·x = b exactly for one fixed operator A.
// Implementations are factorized once and safe for concurrent Solve calls.
type CoarseSolver interface {
	// Solve returns a fresh x with A·x = b. b is not modified.
	Solve(b []float64) ([]float64, error)
	// Size returns the number of unknowns.
	Size() int
}

// NewCoarseSolver factorizes a with the given method.
//
// Errors:
//   - ErrCoarseSolve if a is not positive definite, is ill-conditioned or singular.
//   - ErrInvalidOption for an unknown method, or CoarseLU above MaxDenseCoarseUnknowns.
func NewCoarseSolver(method CoarseMethod, a *matrix.CSR) (CoarseSolver, error) {
	if a == nil {
		return nil, mgErrorf(opFactorize, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, mgErrorf(opFactorize, err)
	}
	switch method {
	case CoarseCholesky:
		return newBandCholesky(a)
	case CoarseLU:
		return newDenseLU(a)
	default:
		return nil, mgErrorf(opFactorize, fmt.Errorf("coarse method %d: %w", int(method), ErrInvalidOption))
	}
}

// bandCholesky wraps gonum's banded Cholesky factorization.
type bandCholesky struct {
	n  int
	ch mat.BandCholesky
}

func newBandCholesky(a *matrix.CSR) (*bandCholesky, error) {
	n := a.Rows()
	k := min(a.Bandwidth(), n-1)
	sb := mat.NewSymBandDense(n, k, nil)
	a.Do(func(i, j int, v float64) {
		if j >= i {
			sb.SetSymBand(i, j, v)
		}
	})

	c := &bandCholesky{n: n}
	if !c.ch.Factorize(sb) {
		return nil, mgErrorf(opFactorize, fmt.Errorf("operator is not positive definite: %w", ErrCoarseSolve))
	}
	if cond := c.ch.Cond(); cond > mat.ConditionTolerance {
		return nil, mgErrorf(opFactorize, fmt.Errorf("condition number %.3g: %w", cond, ErrCoarseSolve))
	}

	return c, nil
}

func (c *bandCholesky) Size() int { return c.n }

func (c *bandCholesky) Solve(b []float64) ([]float64, error) {
	if len(b) != c.n {
		return nil, mgErrorf(opCoarse, fmt.Errorf("len=%d, want %d: %w", len(b), c.n, ErrDimensionMismatch))
	}
	x := make([]float64, c.n)
	if err := c.ch.SolveVecTo(mat.NewVecDense(c.n, x), mat.NewVecDense(c.n, b)); err != nil {
		return nil, mgErrorf(opCoarse, fmt.Errorf("%w: %w", ErrCoarseSolve, err))
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return nil, mgErrorf(opCoarse, fmt.Errorf("%w: %w", ErrCoarseSolve, err))
	}

	return x, nil
}

// denseLU keeps the Doolittle factors of a small coarse operator.
type denseLU struct {
	n    int
	l, u *matrix.Dense
}

func newDenseLU(a *matrix.CSR) (*denseLU, error) {
	n := a.Rows()
	if n > MaxDenseCoarseUnknowns {
		return nil, mgErrorf(opFactorize, fmt.Errorf("lu with %d unknowns (max %d): %w",
			n, MaxDenseCoarseUnknowns, ErrInvalidOption))
	}
	l, u, err := matrix.LU(a)
	if err != nil {
		return nil, mgErrorf(opFactorize, fmt.Errorf("%w: %w", ErrCoarseSolve, err))
	}

	return &denseLU{n: n, l: l, u: u}, nil
}

func (c *denseLU) Size() int { return c.n }

func (c *denseLU) Solve(b []float64) ([]float64, error) {
	if len(b) != c.n {
		return nil, mgErrorf(opCoarse, fmt.Errorf("len=%d, want %d: %w", len(b), c.n, ErrDimensionMismatch))
	}
	x, err := matrix.LUSolve(c.l, c.u, b)
	if err != nil {
		return nil, mgErrorf(opCoarse, fmt.Errorf("%w: %w", ErrCoarseSolve, err))
	}
	if err = matrix.ValidateFinite(x); err != nil {
		return nil, mgErrorf(opCoarse, fmt.Errorf("%w: %w", ErrCoarseSolve, err))
	}

	return x, nil
}
