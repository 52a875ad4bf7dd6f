package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot size of the residual PNG.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// PlotResiduals writes a semilog residual plot to path. The image format
// follows the file extension (png, svg, pdf, ...).
func PlotResiduals(path, title string, series ...Series) error {
	p, err := residualPlot(title, series)
	if err != nil {
		return err
	}
	if err = p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}

	return nil
}

// WritePlot encodes the residual plot as PNG to w.
func WritePlot(w io.Writer, title string, series ...Series) error {
	p, err := residualPlot(title, series)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return fmt.Errorf("encode plot: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}

	return nil
}

// residualPlot builds the plot shared by PlotResiduals and WritePlot.
func residualPlot(title string, series []Series) (*plot.Plot, error) {
	if err := checkSeries(series); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "V-cycle"
	p.Y.Label.Text = "Residual norm"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, s := range series {
		pts := positivePoints(s.Residuals)
		if len(pts) == 0 {
			continue
		}
		line, marks, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		marks.Color = plotutil.Color(i)
		marks.Shape = plotutil.Shape(i)

		p.Add(line, marks)
		p.Legend.Add(s.Label, line, marks)
		drawn++
	}
	// Every series held only zeros: nothing fits on a log axis.
	if drawn == 0 {
		return nil, ErrNoSeries
	}
	p.Legend.Top = true

	return p, nil
}

// positivePoints maps residual k (0-based) to (k+1, r), skipping r <= 0 and
// non-finite values.
func positivePoints(residuals []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(residuals))
	for k, r := range residuals {
		if !(r > 0) || r > maxPlottable {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(k + 1), Y: r})
	}

	return pts
}

// maxPlottable excludes +Inf from the log axis.
const maxPlottable = 1e300
