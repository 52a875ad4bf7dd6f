package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/mgpoisson/metrics"
	"github.com/katalvlaran/mgpoisson/multigrid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectorObservesSolve(t *testing.T) {
	c := metrics.NewCollector(nil)

	res, err := multigrid.Solve(8, multigrid.WithMaxCycles(3), multigrid.WithObserver(c))
	require.NoError(t, err)

	want := `
# HELP mgpoisson_cycles_total Total number of V-cycles executed
# TYPE mgpoisson_cycles_total counter
mgpoisson_cycles_total 3
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(want), "mgpoisson_cycles_total"))

	want = `
# HELP mgpoisson_solves_total Total number of finished solves by termination status
# TYPE mgpoisson_solves_total counter
mgpoisson_solves_total{status="max cycles"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(want), "mgpoisson_solves_total"))

	n, err := testutil.GatherAndCount(c.Registry(), "mgpoisson_residual_norm", "mgpoisson_solve_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.NotEmpty(t, res.Residuals)
}

func TestCollectorDirect(t *testing.T) {
	c := metrics.NewCollector(nil)
	c.OnCycle(1, 0.5)
	c.OnCycle(2, 0.25)
	c.OnFinish(&multigrid.Result{Status: multigrid.StatusConverged, Elapsed: 2 * time.Millisecond})
	c.OnFinish(nil)

	want := `
# HELP mgpoisson_residual_norm Euclidean residual norm after the most recent V-cycle
# TYPE mgpoisson_residual_norm gauge
mgpoisson_residual_norm 0.25
# HELP mgpoisson_solves_total Total number of finished solves by termination status
# TYPE mgpoisson_solves_total counter
mgpoisson_solves_total{status="converged"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(want),
		"mgpoisson_residual_norm", "mgpoisson_solves_total"))
}

// TestCollectorsIndependent: each collector has its own registry.
func TestCollectorsIndependent(t *testing.T) {
	a, b := metrics.NewCollector(nil), metrics.NewCollector(nil)
	a.OnCycle(1, 1)

	n, err := testutil.GatherAndCount(b.Registry(), "mgpoisson_residual_norm")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	want := "# HELP mgpoisson_cycles_total Total number of V-cycles executed\n# TYPE mgpoisson_cycles_total counter\nmgpoisson_cycles_total 0\n"
	require.NoError(t, testutil.GatherAndCompare(b.Registry(), strings.NewReader(want), "mgpoisson_cycles_total"))
}

func TestWriteTextfile(t *testing.T) {
	c := metrics.NewCollector(nil)
	c.OnCycle(1, 3)

	path := filepath.Join(t.TempDir(), "mgsolve.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "mgpoisson_cycles_total 1")

	require.Error(t, c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")))
}
