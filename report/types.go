package report

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mgpoisson/benchmark"
	"github.com/katalvlaran/mgpoisson/multigrid"
)

// ErrNoSeries indicates that no series (or only empty ones) were given.
var ErrNoSeries = errors.New("report: no residual series")

// Series is one labelled residual history.
type Series struct {
	Label     string
	Residuals []float64
}

// NewSeries labels the residual history of res.
func NewSeries(label string, res *multigrid.Result) Series {
	if res == nil {
		return Series{Label: label}
	}

	return Series{Label: label, Residuals: res.Residuals}
}

// BenchmarkSeries returns the two residual histories of a benchmark row.
func BenchmarkSeries(row benchmark.Row) []Series {
	return []Series{
		{Label: fmt.Sprintf("Two-level (N=%d)", row.N), Residuals: row.TwoLevel.Residuals},
		{Label: fmt.Sprintf("%d-level (N=%d)", row.MaxLevel.Levels+1, row.N), Residuals: row.MaxLevel.Residuals},
	}
}

// checkSeries reports ErrNoSeries unless at least one series has data.
func checkSeries(series []Series) error {
	for _, s := range series {
		if len(s.Residuals) > 0 {
			return nil
		}
	}

	return ErrNoSeries
}
