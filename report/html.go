package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes a self-contained interactive line chart of the residual
// histories to w, with a logarithmic y-axis.
func RenderHTML(w io.Writer, title string, series ...Series) error {
	if err := checkSeries(series); err != nil {
		return err
	}

	longest := 0
	for _, s := range series {
		longest = max(longest, len(s.Residuals))
	}
	cycles := make([]string, longest)
	for k := range cycles {
		cycles[k] = strconv.Itoa(k + 1)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "560px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("series=%d cycles=%d", len(series), longest)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "V-cycle", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Residual norm", Type: "log"}),
	)
	line.SetXAxis(cycles)

	for _, s := range series {
		data := make([]opts.LineData, len(s.Residuals))
		for k, r := range s.Residuals {
			if r > 0 && r <= maxPlottable {
				data[k] = opts.LineData{Value: r}
			} else {
				data[k] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(s.Label, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}
