// SPDX-License-Identifier: MIT

package multigrid

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/mgpoisson/grid"
	"github.com/katalvlaran/mgpoisson/matrix"
)

// Status tells why the convergence loop stopped.
type Status int

const (
	// StatusMaxCycles means the cycle budget ran out above tolerance.
	StatusMaxCycles Status = iota
	// StatusConverged means the residual norm fell below tolerance.
	StatusConverged
	// StatusDiverged means the residual norm exceeded the divergence threshold
	// or became NaN.
	StatusDiverged
)

// String returns a short lowercase label.
func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusDiverged:
		return "diverged"
	case StatusMaxCycles:
		return "max cycles"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the plain-data outcome of a solve.
// Divergence and an exhausted budget are reported here, not as errors.
type Result struct {
	N         int           // finest interior points per direction
	Levels    int           // lmax
	X         []float64     // final finest-level iterate, length N²
	Residuals []float64     // ‖b − A₀·x‖₂ after each cycle, in order
	Elapsed   time.Duration // wall-clock time of the cycle loop
	Status    Status
}

// Cycles returns the number of completed V-cycles.
func (r *Result) Cycles() int { return len(r.Residuals) }

// FinalResidual returns the last residual norm, or NaN if no cycle ran.
func (r *Result) FinalResidual() float64 {
	if len(r.Residuals) == 0 {
		return math.NaN()
	}

	return r.Residuals[len(r.Residuals)-1]
}

// Converged reports Status == StatusConverged.
func (r *Result) Converged() bool { return r.Status == StatusConverged }

// Solve sets up the Poisson problem for n interior points with the configured
// source, builds the hierarchy and runs the convergence loop from x = 0.
//
// Errors:
//   - ErrInvalidOption, ErrInvalidGridSize (before any cycle), ErrCoarseSolve.
func Solve(n int, opts ...Option) (*Result, error) {
	o, err := gatherOptions(DefaultOptions(), opts...)
	if err != nil {
		return nil, mgErrorf(opSolve, err)
	}
	h, err := buildHierarchy(n, o)
	if err != nil {
		return nil, mgErrorf(opSolve, err)
	}
	p, err := grid.Initialize(n, o.Source)
	if err != nil {
		return nil, mgErrorf(opSolve, err)
	}

	return solveSystem(h, p.B, o)
}

// SolveSystem runs the convergence loop on A₀·x = b for a prebuilt hierarchy.
// opts are applied over the hierarchy's own options; Levels and Coarse are
// structural and ignored here.
//
// Errors:
//   - ErrInvalidOption for a nil hierarchy or invalid options.
//   - ErrDimensionMismatch if len(b) is not N².
//   - ErrCoarseSolve if a coarse solve fails mid-loop.
func SolveSystem(h *Hierarchy, b []float64, opts ...Option) (*Result, error) {
	if h == nil {
		return nil, mgErrorf(opSolveSys, fmt.Errorf("nil hierarchy: %w", ErrInvalidOption))
	}
	o, err := gatherOptions(h.opts, opts...)
	if err != nil {
		return nil, mgErrorf(opSolveSys, err)
	}

	return solveSystem(h, b, o)
}

func solveSystem(h *Hierarchy, b []float64, o Options) (*Result, error) {
	a0 := h.levels[0].A
	if len(b) != a0.Rows() {
		return nil, mgErrorf(opSolve, fmt.Errorf("len(b)=%d, want %d: %w", len(b), a0.Rows(), ErrDimensionMismatch))
	}

	var (
		log  = o.Logger.With("n", h.N(), "levels", h.Coarsest())
		obs  = observers(o.Observers)
		x    = make([]float64, len(b))
		res  = &Result{N: h.N(), Levels: h.Coarsest(), Residuals: make([]float64, 0, o.MaxCycles), Status: StatusMaxCycles}
		norm float64
		err  error
	)
	start := time.Now()
	for c := 1; c <= o.MaxCycles; c++ {
		if x, err = h.cycle(x, b, o.Omega, o.Sweeps); err != nil {
			return nil, mgErrorf(opSolve, fmt.Errorf("cycle %d: %w", c, err))
		}
		if norm, err = matrix.ResidualNorm(a0, x, b); err != nil {
			return nil, mgErrorf(opSolve, err)
		}
		res.Residuals = append(res.Residuals, norm)
		log.Debug("v-cycle", "cycle", c, "residual", norm)
		obs.OnCycle(c, norm)

		if norm < o.Tolerance {
			res.Status = StatusConverged
			break
		}
		if norm > o.DivergenceThreshold || math.IsNaN(norm) {
			res.Status = StatusDiverged
			break
		}
	}
	res.Elapsed = time.Since(start)
	res.X = x

	log.Info("solve finished",
		"status", res.Status.String(),
		"cycles", res.Cycles(),
		"residual", res.FinalResidual(),
		"elapsed", res.Elapsed)
	obs.OnFinish(res)

	return res, nil
}
