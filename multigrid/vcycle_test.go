package multigrid_test

import (
	"slices"
	"sync"
	"testing"

	"github.com/katalvlaran/mgpoisson/grid"
	"github.com/katalvlaran/mgpoisson/matrix"
	"github.com/katalvlaran/mgpoisson/multigrid"
	"github.com/stretchr/testify/require"
)

// TestCycleKeepsExactSolution: a V-cycle started from the exact discrete
// solution leaves the residual at rounding level.
func TestCycleKeepsExactSolution(t *testing.T) {
	const n = 16
	h, err := multigrid.BuildHierarchy(n, 1)
	require.NoError(t, err)
	p, err := grid.Initialize(n, grid.ManufacturedSource)
	require.NoError(t, err)
	lv, err := h.Level(0)
	require.NoError(t, err)

	direct, err := multigrid.NewCoarseSolver(multigrid.CoarseCholesky, lv.A)
	require.NoError(t, err)
	exact, err := direct.Solve(p.B)
	require.NoError(t, err)
	before, err := matrix.ResidualNorm(lv.A, exact, p.B)
	require.NoError(t, err)

	x, err := h.Cycle(exact, p.B)
	require.NoError(t, err)
	after, err := matrix.ResidualNorm(lv.A, x, p.B)
	require.NoError(t, err)

	require.Less(t, before, 1e-8)
	require.Less(t, after, 1e-8)
	require.InDeltaSlice(t, exact, x, 1e-10)
}

// TestCycleDirectOnly: with lmax = 0 one cycle is an exact solve.
func TestCycleDirectOnly(t *testing.T) {
	const n = 8
	h, err := multigrid.BuildHierarchy(n, 0)
	require.NoError(t, err)
	p, err := grid.Initialize(n, grid.ManufacturedSource)
	require.NoError(t, err)

	x, err := h.Cycle(make([]float64, n*n), p.B)
	require.NoError(t, err)
	lv, err := h.Level(0)
	require.NoError(t, err)
	r, err := matrix.ResidualNorm(lv.A, x, p.B)
	require.NoError(t, err)
	require.Less(t, r, 1e-9)
}

func TestCycleInputsUntouched(t *testing.T) {
	const n = 8
	h, err := multigrid.BuildHierarchy(n, 2)
	require.NoError(t, err)
	p, err := grid.Initialize(n, grid.ManufacturedSource)
	require.NoError(t, err)

	x := make([]float64, n*n)
	b := slices.Clone(p.B)
	out, err := h.Cycle(x, b)
	require.NoError(t, err)
	require.Equal(t, make([]float64, n*n), x)
	require.Equal(t, p.B, b)
	require.NotEqual(t, x, out)

	_, err = h.Cycle(x[:5], b)
	require.ErrorIs(t, err, multigrid.ErrDimensionMismatch)
}

// TestCycleConcurrent shares one hierarchy between goroutines; every
// goroutine must get the same deterministic iterate.
func TestCycleConcurrent(t *testing.T) {
	const n = 16
	h, err := multigrid.BuildHierarchy(n, 2)
	require.NoError(t, err)
	p, err := grid.Initialize(n, grid.ManufacturedSource)
	require.NoError(t, err)

	want, err := h.Cycle(make([]float64, n*n), p.B)
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([][]float64, 8)
	errs := make([]error, 8)
	for g := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[g], errs[g] = h.Cycle(make([]float64, n*n), p.B)
		}()
	}
	wg.Wait()
	for g := range got {
		require.NoError(t, errs[g])
		require.Equal(t, want, got[g])
	}
}
