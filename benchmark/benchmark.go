package benchmark

import (
	"cmp"
	"context"
	"fmt"
	"math/bits"
	"slices"

	"github.com/katalvlaran/mgpoisson/multigrid"
	"golang.org/x/sync/errgroup"
)

// coarsestN is the grid size the max-level hierarchy coarsens down to.
const coarsestN = 8

// MaxLevels returns floor(log2(n/8)), the lmax that coarsens n down to an
// 8×8 grid, or 0 when n < 16.
func MaxLevels(n int) int {
	q := n / coarsestN
	if q < 1 {
		return 0
	}

	return bits.Len(uint(q)) - 1
}

// Run benchmarks every size in sizes (DefaultSizes when nil) with a two-level
// and a max-level hierarchy and returns one Row per size, sorted by N.
//
// The solver has no cancellation point inside a solve; ctx is checked before
// each solve starts, and the first error cancels the solves still queued.
func Run(ctx context.Context, sizes []int, opts ...Option) ([]Row, error) {
	if sizes == nil {
		sizes = DefaultSizes
	}
	if len(sizes) == 0 {
		return nil, ErrNoSizes
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.parallelism < 1 {
		return nil, fmt.Errorf("parallelism=%d: %w", cfg.parallelism, ErrParallelism)
	}

	rows := make([]Row, len(sizes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallelism)

	for i, n := range sizes {
		rows[i].N = n
		g.Go(func() error {
			return cfg.solve(gctx, n, 1, &rows[i].TwoLevel)
		})
		g.Go(func() error {
			return cfg.solve(gctx, n, MaxLevels(n), &rows[i].MaxLevel)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(rows, func(a, b Row) int { return cmp.Compare(a.N, b.N) })

	return rows, nil
}

// solve runs one configuration and stores the outcome in out.
func (c config) solve(ctx context.Context, n, lmax int, out *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := make([]multigrid.Option, 0, len(c.solver)+1)
	opts = append(opts, c.solver...)
	opts = append(opts, multigrid.WithLevels(lmax))

	res, err := multigrid.Solve(n, opts...)
	if err != nil {
		return fmt.Errorf("N=%d lmax=%d: %w", n, lmax, err)
	}
	*out = Result{
		Levels:    lmax,
		Cycles:    res.Cycles(),
		Residual:  res.FinalResidual(),
		Elapsed:   res.Elapsed,
		Status:    res.Status,
		Residuals: res.Residuals,
	}
	c.logger.Info("benchmark run",
		"n", n,
		"levels", lmax,
		"status", res.Status.String(),
		"cycles", out.Cycles,
		"residual", out.Residual,
		"elapsed", out.Elapsed)

	return nil
}
