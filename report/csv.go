package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/mgpoisson/benchmark"
)

// CSVHeader is the first record written by WriteCSV.
var CSVHeader = []string{
	"N",
	"2L_Cycles", "2L_MinRes", "2L_Time",
	"MaxL_Cycles", "MaxL_MinRes", "MaxL_Time",
}

// WriteCSV writes one record per benchmark row. Residuals use %g and times
// are seconds.
func WriteCSV(w io.Writer, rows []benchmark.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{strconv.Itoa(r.N)}
		rec = append(rec, runFields(r.TwoLevel)...)
		rec = append(rec, runFields(r.MaxLevel)...)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row N=%d: %w", r.N, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func runFields(run benchmark.Result) []string {
	return []string{
		strconv.Itoa(run.Cycles),
		strconv.FormatFloat(run.Residual, 'g', -1, 64),
		strconv.FormatFloat(run.Elapsed.Seconds(), 'f', 6, 64),
	}
}
