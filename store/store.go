package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/mgpoisson/benchmark"
	"github.com/katalvlaran/mgpoisson/multigrid"
	_ "modernc.org/sqlite"
)

// schema.sql creates the benchmark_runs table and its index.
//
//go:embed schema.sql
var schemaSQL string

// Hierarchy labels stored in the hierarchy column.
const (
	twoLevel = "two_level"
	maxLevel = "max_level"
)

// Store is a SQLite-backed benchmark archive.
type Store struct {
	*sql.DB
}

// NewRunID returns a fresh random run id.
func NewRunID() string { return uuid.NewString() }

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db}, nil
}

// SaveRows stores every row under runID in one transaction. Saving the same
// (runID, N) again replaces the earlier records.
func (s *Store) SaveRows(ctx context.Context, runID string, rows []benchmark.Row) error {
	if strings.TrimSpace(runID) == "" {
		return ErrEmptyRunID
	}
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO benchmark_runs
			(run_id, n, hierarchy, levels, cycles, residual, elapsed_ns, status, residuals)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		for _, rec := range []struct {
			kind string
			run  benchmark.Result
		}{{twoLevel, r.TwoLevel}, {maxLevel, r.MaxLevel}} {
			hist, err := json.Marshal(finite(rec.run.Residuals))
			if err != nil {
				return fmt.Errorf("encode residuals N=%d: %w", r.N, err)
			}
			_, err = stmt.ExecContext(ctx, runID, r.N, rec.kind, rec.run.Levels, rec.run.Cycles,
				finiteValue(rec.run.Residual), rec.run.Elapsed.Nanoseconds(), int(rec.run.Status), string(hist))
			if err != nil {
				return fmt.Errorf("insert N=%d %s: %w", r.N, rec.kind, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Rows loads the rows stored under runID, sorted by N.
func (s *Store) Rows(ctx context.Context, runID string) ([]benchmark.Row, error) {
	if strings.TrimSpace(runID) == "" {
		return nil, ErrEmptyRunID
	}
	rs, err := s.QueryContext(ctx, `
		SELECT n, hierarchy, levels, cycles, residual, elapsed_ns, status, residuals
		FROM benchmark_runs
		WHERE run_id = ?
		ORDER BY n, hierarchy
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	defer rs.Close()

	var rows []benchmark.Row
	for rs.Next() {
		var (
			n, levels, cycles, status int
			kind, hist                string
			residual                  float64
			elapsed                   int64
		)
		if err = rs.Scan(&n, &kind, &levels, &cycles, &residual, &elapsed, &status, &hist); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		run := benchmark.Result{
			Levels:   levels,
			Cycles:   cycles,
			Residual: residual,
			Elapsed:  time.Duration(elapsed),
			Status:   multigrid.Status(status),
		}
		if err = json.Unmarshal([]byte(hist), &run.Residuals); err != nil {
			return nil, fmt.Errorf("decode residuals N=%d: %w", n, err)
		}

		if len(rows) == 0 || rows[len(rows)-1].N != n {
			rows = append(rows, benchmark.Row{N: n})
		}
		row := &rows[len(rows)-1]
		if kind == twoLevel {
			row.TwoLevel = run
		} else {
			row.MaxLevel = run
		}
	}
	if err = rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate run %s: %w", runID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}

	return rows, nil
}

// RunIDs lists stored run ids, most recent first.
func (s *Store) RunIDs(ctx context.Context) ([]string, error) {
	rs, err := s.QueryContext(ctx, `
		SELECT run_id
		FROM benchmark_runs
		GROUP BY run_id
		ORDER BY MAX(created_at) DESC, run_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query run ids: %w", err)
	}
	defer rs.Close()

	var ids []string
	for rs.Next() {
		var id string
		if err = rs.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rs.Err()
}

// JSON has no NaN or Inf; diverged runs store them as the largest float.
func finite(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = finiteValue(x)
	}

	return out
}

func finiteValue(x float64) float64 {
	switch {
	case math.IsNaN(x), x > math.MaxFloat64:
		return math.MaxFloat64
	case x < -math.MaxFloat64:
		return -math.MaxFloat64
	}

	return x
}
