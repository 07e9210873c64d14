package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cxd309/lapsim/internal/engine"
)

// SaveHTML writes the interactive chart page to path.
func SaveHTML(table *engine.SegmentTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteHTML(table, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteHTML renders the speed and force charts as one go-echarts page.
func WriteHTML(table *engine.SegmentTable, w io.Writer) error {
	xs := make([]string, len(table.Rows))
	for i, r := range table.Rows {
		xs[i] = strconv.FormatFloat(r.X, 'f', 1, 64)
	}

	subtitle := fmt.Sprintf("lap %.3f s, %d rows, max %.2f m/s",
		table.Summary.LapTime, table.Summary.Rows, table.Summary.MaxSpeed)

	page := components.NewPage()
	page.AddCharts(
		lineChart(table, xs, "Speed profile", subtitle, "Speed (m/s)", speedSeries),
		lineChart(table, xs, "Longitudinal forces", subtitle, "Force (N)", forceSeries),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering chart page: %w", err)
	}
	return nil
}

func lineChart(table *engine.SegmentTable, xs []string, title, subtitle, yName string, cols []series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Lap simulation", Width: "1200px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	line.SetXAxis(xs)
	for _, col := range cols {
		data := make([]opts.LineData, len(table.Rows))
		for i, r := range table.Rows {
			data[i] = opts.LineData{Value: col.value(r)}
		}
		line.AddSeries(col.name, data)
	}
	return line
}
