// SPDX-License-Identifier: MIT

package multigrid

import (
	"fmt"

	"github.com/katalvlaran/mgpoisson/matrix"
	"gonum.org/v1/gonum/floats"
)

// levelWork holds the live vectors of one level during a single V-cycle.
// Every Cycle call allocates its own set; nothing is shared across levels,
// cycles or goroutines.
type levelWork struct {
	x, b []float64 // current iterate and right-hand side
	r, e []float64 // residual and prolonged correction (unused on the coarsest level)
}

func (h *Hierarchy) newWork() []levelWork {
	ws := make([]levelWork, len(h.levels))
	last := len(h.levels) - 1
	for l, lv := range h.levels {
		n := lv.Len()
		ws[l].x = make([]float64, n)
		ws[l].b = make([]float64, n)
		if l < last {
			ws[l].r = make([]float64, n)
			ws[l].e = make([]float64, n)
		}
	}

	return ws
}

// Cycle runs one V-cycle from level 0 on A₀·x = b and returns the new
// iterate. x and b are not modified.
//
// Errors:
//   - ErrDimensionMismatch if len(x) or len(b) is not N².
//   - ErrCoarseSolve if the coarsest solve produces non-finite values.
func (h *Hierarchy) Cycle(x, b []float64) ([]float64, error) {
	return h.cycle(x, b, h.opts.Omega, h.opts.Sweeps)
}

func (h *Hierarchy) cycle(x, b []float64, omega float64, sweeps int) ([]float64, error) {
	n := h.levels[0].Len()
	if len(x) != n || len(b) != n {
		return nil, mgErrorf(opCycle, fmt.Errorf("len(x)=%d len(b)=%d, want %d: %w",
			len(x), len(b), n, ErrDimensionMismatch))
	}
	ws := h.newWork()
	copy(ws[0].x, x)
	copy(ws[0].b, b)
	if err := h.vcycle(0, ws, omega, sweeps); err != nil {
		return nil, mgErrorf(opCycle, err)
	}

	return ws[0].x, nil
}

// vcycle recurses from level l to the coarsest level. ws[l].x is updated in place.
func (h *Hierarchy) vcycle(l int, ws []levelWork, omega float64, sweeps int) error {
	w := &ws[l]
	if l == len(h.levels)-1 {
		// Exact solve; any pre-smoothed iterate would be discarded, so skip it.
		sol, err := h.coarse.Solve(w.b)
		if err != nil {
			return err
		}
		copy(w.x, sol)
		return nil
	}

	lv := h.levels[l]
	if err := jacobi(lv.A, lv.invDiag, w.x, w.b, omega, sweeps, w.r); err != nil {
		return err
	}
	if err := matrix.ResidualTo(w.r, lv.A, w.x, w.b); err != nil {
		return err
	}

	next := &ws[l+1]
	restrictTo(next.b, w.r, lv.N)
	clear(next.x)
	if err := h.vcycle(l+1, ws, omega, sweeps); err != nil {
		return err
	}
	prolongTo(w.e, next.x, lv.N)
	floats.Add(w.x, w.e)

	return jacobi(lv.A, lv.invDiag, w.x, w.b, omega, sweeps, w.r)
}
