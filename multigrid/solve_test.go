package multigrid_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/mgpoisson/grid"
	"github.com/katalvlaran/mgpoisson/multigrid"
	"github.com/stretchr/testify/require"
)

// recorder is a test Observer.
type recorder struct {
	cycles    []int
	residuals []float64
	finished  *multigrid.Result
	finishes  int
}

func (r *recorder) OnCycle(c int, res float64) {
	r.cycles = append(r.cycles, c)
	r.residuals = append(r.residuals, res)
}

func (r *recorder) OnFinish(res *multigrid.Result) {
	r.finished = res
	r.finishes++
}

// TestSolveTwoLevelConverges: N=16, lmax=1 with the defaults reaches 1e-7
// well inside 50 cycles and matches sin(πx)sin(πy) to O(h²).
func TestSolveTwoLevelConverges(t *testing.T) {
	const n = 16
	res, err := multigrid.Solve(n,
		multigrid.WithLevels(1),
		multigrid.WithOmega(2.0/3.0),
		multigrid.WithSweeps(3),
		multigrid.WithTolerance(1e-7),
		multigrid.WithMaxCycles(50),
	)
	require.NoError(t, err)
	require.Equal(t, multigrid.StatusConverged, res.Status)
	require.True(t, res.Converged())
	require.Less(t, res.Cycles(), 50)
	require.Less(t, res.FinalResidual(), 1e-7)
	require.Len(t, res.X, n*n)
	require.Equal(t, n, res.N)
	require.Equal(t, 1, res.Levels)
	require.Positive(t, res.Elapsed)

	for c := 1; c < len(res.Residuals); c++ {
		require.Less(t, res.Residuals[c], res.Residuals[c-1], "cycle %d", c+1)
	}

	h := grid.Spacing(n)
	maxErr, err := grid.MaxError(n, res.X, grid.ManufacturedSolution)
	require.NoError(t, err)
	require.Less(t, maxErr, 2*h*h)
}

// TestSolveDiverges: omega=5 blows the smoother up; the loop stops on the
// divergence threshold and returns partial results without an error.
func TestSolveDiverges(t *testing.T) {
	res, err := multigrid.Solve(16, multigrid.WithLevels(1), multigrid.WithOmega(5))
	require.NoError(t, err)
	require.Equal(t, multigrid.StatusDiverged, res.Status)
	require.LessOrEqual(t, res.Cycles(), 5)
	require.Greater(t, res.FinalResidual(), multigrid.DefaultDivergenceThreshold)
	require.Len(t, res.X, 256)
}

func TestSolveMaxCycles(t *testing.T) {
	rec := &recorder{}
	res, err := multigrid.Solve(16, multigrid.WithMaxCycles(3), multigrid.WithObserver(rec))
	require.NoError(t, err)
	require.Equal(t, multigrid.StatusMaxCycles, res.Status)
	require.Equal(t, 3, res.Cycles())
	require.Equal(t, []int{1, 2, 3}, rec.cycles)
	require.Equal(t, res.Residuals, rec.residuals)
	require.Equal(t, 1, rec.finishes)
	require.Same(t, res, rec.finished)
}

// TestSolveCoarseMethodsAgree: the choice of direct solver does not change
// the iteration beyond rounding.
func TestSolveCoarseMethodsAgree(t *testing.T) {
	chol, err := multigrid.Solve(16, multigrid.WithCoarse(multigrid.CoarseCholesky))
	require.NoError(t, err)
	lu, err := multigrid.Solve(16, multigrid.WithCoarse(multigrid.CoarseLU))
	require.NoError(t, err)

	require.Equal(t, chol.Cycles(), lu.Cycles())
	if diff := cmp.Diff(chol.X, lu.X, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("solutions differ (-cholesky +lu):\n%s", diff)
	}
}

// TestSolveDeeperHierarchy only asserts steady progress: with this
// restriction weighting deeper hierarchies contract more slowly.
func TestSolveDeeperHierarchy(t *testing.T) {
	res, err := multigrid.Solve(32, multigrid.WithLevels(2))
	require.NoError(t, err)
	require.NotEqual(t, multigrid.StatusDiverged, res.Status)
	require.Less(t, res.FinalResidual(), res.Residuals[0]*1e-3)
}

func TestSolveSystem(t *testing.T) {
	h, err := multigrid.BuildHierarchy(8, 1)
	require.NoError(t, err)

	// Zero right-hand side: zero is exact after the first cycle.
	res, err := multigrid.SolveSystem(h, make([]float64, 64))
	require.NoError(t, err)
	require.Equal(t, multigrid.StatusConverged, res.Status)
	require.Equal(t, 1, res.Cycles())
	require.Zero(t, res.FinalResidual())

	b, err := grid.Sample(8, grid.Constant(1))
	require.NoError(t, err)
	res, err = multigrid.SolveSystem(h, b, multigrid.WithTolerance(1e-6))
	require.NoError(t, err)
	require.True(t, res.Converged())

	_, err = multigrid.SolveSystem(nil, b)
	require.ErrorIs(t, err, multigrid.ErrInvalidOption)
	_, err = multigrid.SolveSystem(h, b[:10])
	require.ErrorIs(t, err, multigrid.ErrDimensionMismatch)
	_, err = multigrid.SolveSystem(h, b, multigrid.WithMaxCycles(0))
	require.ErrorIs(t, err, multigrid.ErrInvalidOption)
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name string
		n    int
		opts []multigrid.Option
		want error
	}{
		{"OddFine", 15, nil, multigrid.ErrInvalidGridSize},
		{"TooDeep", 16, []multigrid.Option{multigrid.WithLevels(5)}, multigrid.ErrInvalidGridSize},
		{"NegativeLevels", 16, []multigrid.Option{multigrid.WithLevels(-1)}, multigrid.ErrInvalidOption},
		{"ZeroTolerance", 16, []multigrid.Option{multigrid.WithTolerance(0)}, multigrid.ErrInvalidOption},
		{"InfOmega", 16, []multigrid.Option{multigrid.WithOmega(math.Inf(1))}, multigrid.ErrInvalidOption},
		{"NegativeSweeps", 16, []multigrid.Option{multigrid.WithSweeps(-2)}, multigrid.ErrInvalidOption},
		{"ThresholdBelowTol", 16, []multigrid.Option{multigrid.WithDivergenceThreshold(1e-9)}, multigrid.ErrInvalidOption},
		{"NilSource", 16, []multigrid.Option{multigrid.WithSource(nil)}, multigrid.ErrInvalidOption},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := multigrid.Solve(tc.n, tc.opts...)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSolveLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := multigrid.Solve(8, multigrid.WithMaxCycles(2), multigrid.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "level assembled")
	require.Contains(t, out, "msg=v-cycle")
	require.Contains(t, out, "cycle=2")
	require.Contains(t, out, `msg="solve finished"`)
	require.Contains(t, out, `status="max cycles"`)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "converged", multigrid.StatusConverged.String())
	require.Equal(t, "diverged", multigrid.StatusDiverged.String())
	require.Equal(t, "max cycles", multigrid.StatusMaxCycles.String())
	require.Equal(t, "Status(9)", multigrid.Status(9).String())

	var empty multigrid.Result
	require.True(t, math.IsNaN(empty.FinalResidual()))
}
