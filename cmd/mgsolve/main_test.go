package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/mgpoisson/config"
	"github.com/katalvlaran/mgpoisson/report"
	"github.com/katalvlaran/mgpoisson/store"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "mgsolve version ")
}

func TestSolveWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "res.png")
	html := filepath.Join(dir, "res.html")
	prom := filepath.Join(dir, "mgsolve.prom")

	out, logs, err := run(t, "solve", "-n", "16", "--levels", "1",
		"--plot", png, "--html", html, "--metrics-file", prom, "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, out, "N=16 levels=1")
	require.Contains(t, out, "cycle   1  residual")
	require.Contains(t, out, "status: converged after 26 cycles")
	require.Contains(t, logs, "v-cycle")
	require.Contains(t, logs, "plot written")

	for _, p := range []string{png, html, prom} {
		fi, err := os.Stat(p)
		require.NoError(t, err, p)
		require.Positive(t, fi.Size(), p)
	}
	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	require.Contains(t, string(metrics), "mgpoisson_cycles_total 26")
}

func TestSolveLogsArePlainWhenRedirected(t *testing.T) {
	_, logs, err := run(t, "solve", "-n", "8", "--levels", "1", "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, logs, "v-cycle")
	require.NotContains(t, logs, "\x1b[")
}

func TestSolveSelectsSource(t *testing.T) {
	out, _, err := run(t, "solve", "-n", "8", "--levels", "1", "--source", "zero")
	require.NoError(t, err)
	require.Contains(t, out, "status: converged after 1 cycles, residual 0.000e+00, max error 0.000e+00")

	out, _, err = run(t, "solve", "-n", "8", "--levels", "1", "--source", "constant", "--source-value", "4")
	require.NoError(t, err)
	require.Contains(t, out, "status: ")
	require.NotContains(t, out, "max error")

	_, _, err = run(t, "solve", "--source", "gaussian")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSolveUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mgsolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver: {n: 8, levels: 1, max_cycles: 2}\n"), 0o600))

	out, _, err := run(t, "--config", path, "solve")
	require.NoError(t, err)
	require.Contains(t, out, "N=8 levels=1")
	require.Contains(t, out, "status: max cycles after 2 cycles")

	// Flags win over the file.
	out, _, err = run(t, "--config", path, "solve", "--max-cycles", "3")
	require.NoError(t, err)
	require.Contains(t, out, "after 3 cycles")
}

func TestSolveRejectsBadInput(t *testing.T) {
	_, _, err := run(t, "solve", "-n", "15", "--levels", "1")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = run(t, "solve", "--log-level", "loud")
	require.Error(t, err)

	_, _, err = run(t, "solve", "extra")
	require.Error(t, err)
}

func TestBench(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "mg.csv")
	dbPath := filepath.Join(dir, "runs.db")
	plots := filepath.Join(dir, "plots")

	out, _, err := run(t, "bench", "--sizes", "32,16", "--parallel", "2",
		"--csv", csvPath, "--db", dbPath, "--plot-dir", plots)
	require.NoError(t, err)
	require.Contains(t, out, "MaxL levels")
	require.Contains(t, out, "run id: ")

	fh, err := os.Open(csvPath)
	require.NoError(t, err)
	defer fh.Close()
	recs, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, report.CSVHeader, recs[0])
	require.Equal(t, "16", recs[1][0])
	require.Equal(t, "32", recs[2][0])

	for _, n := range []string{"16", "32"} {
		_, err = os.Stat(filepath.Join(plots, "mg_convergence_N"+n+".png"))
		require.NoError(t, err)
	}

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	ids, err := db.RunIDs(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, 1)
	rows, err := db.Rows(context.Background(), ids[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 2, rows[1].MaxLevel.Levels)
}
