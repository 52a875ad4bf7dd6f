// SPDX-License-Identifier: MIT

package multigrid

import (
	"fmt"

	"github.com/katalvlaran/mgpoisson/grid"
	"github.com/katalvlaran/mgpoisson/matrix"
)

// Level is one grid of the hierarchy. Level 0 is the finest.
type Level struct {
	Index int         // 0..lmax
	N     int         // interior points per direction
	H     float64     // mesh spacing 1/(N+1)
	A     *matrix.CSR // assembled 5-point operator, N²×N²

	invDiag []float64 // 1/diag(A), used by the smoother
}

// Len returns the number of unknowns on the level, N².
func (l Level) Len() int { return l.N * l.N }

// Hierarchy is an immutable stack of levels plus the factorized coarsest
// operator. It may be shared by concurrent Cycle calls.
type Hierarchy struct {
	levels []*Level
	coarse CoarseSolver
	opts   Options
}

// CheckGridSize reports whether n interior points can be halved lmax times:
// every level above the coarsest must have an even N ≥ 2.
//
// Errors:
//   - ErrInvalidGridSize with the offending level in the message.
//   - ErrInvalidOption if lmax < 0.
func CheckGridSize(n, lmax int) error {
	if lmax < 0 {
		return fmt.Errorf("levels=%d: %w", lmax, ErrInvalidOption)
	}
	if n < 1 {
		return fmt.Errorf("n=%d must be >= 1: %w", n, ErrInvalidGridSize)
	}
	size := n
	for l := 0; l < lmax; l++ {
		if size < 2 || size%2 != 0 {
			return fmt.Errorf("n=%d cannot be coarsened %d times (level %d has N=%d): %w",
				n, lmax, l, size, ErrInvalidGridSize)
		}
		size /= 2
	}

	return nil
}

// BuildHierarchy assembles lmax+1 levels starting from n interior points,
// halving N at each level, and factorizes the coarsest operator.
// The levels argument overrides any WithLevels option.
//
// Errors:
//   - ErrInvalidGridSize before any assembly if n cannot be halved lmax times.
//   - ErrInvalidOption for invalid options.
//   - ErrCoarseSolve if the coarsest factorization fails.
//
// Complexity:
//   - Assembly O(Σ N_l²·log N_l); Cholesky O(N_c⁴) on the coarsest N_c.
func BuildHierarchy(n, levels int, opts ...Option) (*Hierarchy, error) {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithLevels(levels))
	o, err := gatherOptions(DefaultOptions(), all...)
	if err != nil {
		return nil, mgErrorf(opBuild, err)
	}

	return buildHierarchy(n, o)
}

func buildHierarchy(n int, o Options) (*Hierarchy, error) {
	if err := CheckGridSize(n, o.Levels); err != nil {
		return nil, mgErrorf(opBuild, err)
	}

	h := &Hierarchy{levels: make([]*Level, 0, o.Levels+1), opts: o}
	size := n
	for l := 0; l <= o.Levels; l++ {
		lv := &Level{Index: l, N: size, H: grid.Spacing(size)}
		a, err := Assemble(lv.N, lv.H)
		if err != nil {
			return nil, mgErrorf(opBuild, err)
		}
		lv.A = a
		if lv.invDiag, err = inverseDiagonal(a); err != nil {
			return nil, mgErrorf(opBuild, err)
		}
		o.Logger.Debug("level assembled", "level", l, "n", lv.N, "h", lv.H, "nnz", a.NNZ())
		h.levels = append(h.levels, lv)
		size /= 2
	}

	coarse, err := NewCoarseSolver(o.Coarse, h.levels[o.Levels].A)
	if err != nil {
		return nil, mgErrorf(opBuild, err)
	}
	h.coarse = coarse
	o.Logger.Debug("coarse operator factorized", "method", o.Coarse.String(), "unknowns", coarse.Size())

	return h, nil
}

// N returns the finest interior point count.
func (h *Hierarchy) N() int { return h.levels[0].N }

// Depth returns the number of levels, lmax+1.
func (h *Hierarchy) Depth() int { return len(h.levels) }

// Coarsest returns lmax, the index of the coarsest level.
func (h *Hierarchy) Coarsest() int { return len(h.levels) - 1 }

// Level returns a copy of level i.
// Returns ErrInvalidOption when i is outside 0..lmax.
func (h *Hierarchy) Level(i int) (Level, error) {
	if i < 0 || i >= len(h.levels) {
		return Level{}, fmt.Errorf("level %d of %d: %w", i, len(h.levels), ErrInvalidOption)
	}

	return *h.levels[i], nil
}

// Options returns the options the hierarchy was built with.
func (h *Hierarchy) Options() Options { return h.opts }
