// Package report renders solver output for people: a semilog residual plot
// (PNG, gonum/plot), an interactive residual chart (HTML, go-echarts) and a
// CSV table of benchmark rows.
//
// Residual histories are plotted against the V-cycle number starting at 1.
// Non-positive residuals cannot be drawn on a log axis; they are dropped from
// the PNG and left as gaps in the HTML chart.
//
// Errors:
//   - ErrNoSeries when nothing would be drawn.
//   - I/O and encoder errors are wrapped with the failing step.
package report
