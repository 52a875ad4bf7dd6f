// SPDX-License-Identifier: MIT

// Package multigrid: functional configuration for hierarchy construction and
// the convergence loop. This file defines:
//   - documented defaults (constants),
//   - Options (exported, inspectable) and Option setters,
//   - gatherOptions, which applies setters over the defaults and validates.
//
// Unlike programmer-only knobs, these values usually come from a config file
// or the command line, so invalid values are reported as ErrInvalidOption
// instead of panicking.
package multigrid

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/mgpoisson/grid"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultLevels is the index of the coarsest level (two-level method).
	DefaultLevels = 1

	// DefaultMaxCycles bounds the outer loop.
	DefaultMaxCycles = 50

	// DefaultTolerance stops the loop once ‖b − A·x‖₂ drops below it.
	DefaultTolerance = 1e-7

	// DefaultOmega is the weighted-Jacobi factor that best damps the
	// highest-frequency mode of the 2D five-point Laplacian.
	DefaultOmega = 2.0 / 3.0

	// DefaultSweeps is the number of pre- and post-smoothing sweeps (ν).
	DefaultSweeps = 3

	// DefaultDivergenceThreshold terminates the loop as diverged once the
	// residual norm exceeds it.
	DefaultDivergenceThreshold = 1e10

	// DefaultCoarse is the coarsest-level direct solver.
	DefaultCoarse = CoarseCholesky
)

// Option mutates Options. Setters never fail; gatherOptions validates the result.
type Option func(*Options)

// Options is the effective solver configuration.
//
// Fields:
//   - Levels              — index of the coarsest level (lmax); 0 means a direct solve.
//   - MaxCycles           — upper bound on outer V-cycles (≥ 1).
//   - Tolerance           — convergence threshold on the residual norm (> 0).
//   - Omega               — Jacobi relaxation factor (finite, > 0).
//   - Sweeps              — smoothing sweeps before and after the correction (≥ 0).
//   - DivergenceThreshold — residual norm above which the loop stops as diverged.
//   - Coarse              — direct solver for the coarsest level.
//   - Source              — right-hand side f(x, y) used by Solve.
//   - Logger              — structured logger; nil means discard.
//   - Observers           — progress hooks, called in registration order.
type Options struct {
	Levels              int
	MaxCycles           int
	Tolerance           float64
	Omega               float64
	Sweeps              int
	DivergenceThreshold float64
	Coarse              CoarseMethod
	Source              grid.Source
	Logger              *slog.Logger
	Observers           []Observer
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Levels:              DefaultLevels,
		MaxCycles:           DefaultMaxCycles,
		Tolerance:           DefaultTolerance,
		Omega:               DefaultOmega,
		Sweeps:              DefaultSweeps,
		DivergenceThreshold: DefaultDivergenceThreshold,
		Coarse:              DefaultCoarse,
		Source:              grid.ManufacturedSource,
	}
}

// WithLevels sets the coarsest level index lmax.
func WithLevels(lmax int) Option { return func(o *Options) { o.Levels = lmax } }

// WithMaxCycles sets the outer cycle budget.
func WithMaxCycles(n int) Option { return func(o *Options) { o.MaxCycles = n } }

// WithTolerance sets the residual-norm convergence threshold.
func WithTolerance(tol float64) Option { return func(o *Options) { o.Tolerance = tol } }

// WithOmega sets the weighted-Jacobi relaxation factor.
func WithOmega(omega float64) Option { return func(o *Options) { o.Omega = omega } }

// WithSweeps sets ν, the pre- and post-smoothing sweep count.
func WithSweeps(nu int) Option { return func(o *Options) { o.Sweeps = nu } }

// WithDivergenceThreshold sets the residual norm treated as divergence.
func WithDivergenceThreshold(v float64) Option {
	return func(o *Options) { o.DivergenceThreshold = v }
}

// WithCoarse selects the coarsest-level direct solver.
func WithCoarse(m CoarseMethod) Option { return func(o *Options) { o.Coarse = m } }

// WithSource sets the right-hand side used by Solve.
func WithSource(f grid.Source) Option { return func(o *Options) { o.Source = f } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithObserver appends a progress observer. Nil observers are ignored.
func WithObserver(ob Observer) Option {
	return func(o *Options) {
		if ob != nil {
			o.Observers = append(o.Observers, ob)
		}
	}
}

// gatherOptions applies opts over base and validates the result.
func gatherOptions(base Options, opts ...Option) (Options, error) {
	o := base
	// Observers are appended; detach from the caller's backing array.
	o.Observers = append([]Observer(nil), base.Observers...)
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}

	return o, nil
}

// Validate reports ErrInvalidOption for nonsensical values.
func (o Options) Validate() error {
	switch {
	case o.Levels < 0:
		return fmt.Errorf("levels=%d must be >= 0: %w", o.Levels, ErrInvalidOption)
	case o.MaxCycles < 1:
		return fmt.Errorf("max cycles=%d must be >= 1: %w", o.MaxCycles, ErrInvalidOption)
	case !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0):
		return fmt.Errorf("tolerance=%g must be finite and > 0: %w", o.Tolerance, ErrInvalidOption)
	case !(o.Omega > 0) || math.IsInf(o.Omega, 0):
		return fmt.Errorf("omega=%g must be finite and > 0: %w", o.Omega, ErrInvalidOption)
	case o.Sweeps < 0:
		return fmt.Errorf("sweeps=%d must be >= 0: %w", o.Sweeps, ErrInvalidOption)
	case !(o.DivergenceThreshold > o.Tolerance):
		return fmt.Errorf("divergence threshold=%g must exceed tolerance: %w", o.DivergenceThreshold, ErrInvalidOption)
	case !o.Coarse.valid():
		return fmt.Errorf("coarse method %d: %w", int(o.Coarse), ErrInvalidOption)
	case o.Source == nil:
		return fmt.Errorf("nil source: %w", ErrInvalidOption)
	}

	return nil
}
