package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cxd309/lapsim/internal/engine"
)

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
}

// SavePNG writes speed_profile.png and forces.png into dir.
func SavePNG(table *engine.SegmentTable, dir string) ([]string, error) {
	charts := []struct {
		file   string
		title  string
		yLabel string
		series []series
	}{
		{"speed_profile.png", "Speed profile", "Speed (m/s)", speedSeries},
		{"forces.png", "Longitudinal forces", "Force (N)", forceSeries},
	}

	var written []string
	for _, c := range charts {
		p, err := linePlot(table, c.title, c.yLabel, c.series)
		if err != nil {
			return written, fmt.Errorf("%s: %w", c.file, err)
		}
		path := filepath.Join(dir, c.file)
		if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
			return written, fmt.Errorf("saving %s: %w", c.file, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func linePlot(table *engine.SegmentTable, title, yLabel string, cols []series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (lap %.2f s)", title, table.Summary.LapTime)
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for i, col := range cols {
		pts := make(plotter.XYs, len(table.Rows))
		for j, r := range table.Rows {
			pts[j] = plotter.XY{X: r.X, Y: col.value(r)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s line: %w", col.name, err)
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(col.name, line)
	}
	p.Legend.Top = true
	return p, nil
}
