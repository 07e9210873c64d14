// Package report renders a simulated segment table as charts: a speed profile
// (both directional sweeps and the final speed against distance) and the
// longitudinal force budget.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cxd309/lapsim/internal/engine"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatHTML = "html"
	FormatBoth = "both"
)

// ParseFormat normalises a format name, rejecting unknown ones.
func ParseFormat(name string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(name))
	switch f {
	case FormatPNG, FormatHTML, FormatBoth:
		return f, nil
	default:
		return "", fmt.Errorf("unknown plot format %q (want %s, %s or %s)", name, FormatPNG, FormatHTML, FormatBoth)
	}
}

// Render writes the charts for table into dir in the given format and
// returns the paths written. dir is created if missing.
func Render(table *engine.SegmentTable, dir, format string) ([]string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("segment table is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating plot dir: %w", err)
	}

	var written []string
	if f == FormatPNG || f == FormatBoth {
		paths, err := SavePNG(table, dir)
		if err != nil {
			return written, err
		}
		written = append(written, paths...)
	}
	if f == FormatHTML || f == FormatBoth {
		path := filepath.Join(dir, "lap.html")
		if err := SaveHTML(table, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// series is one named column of the table.
type series struct {
	name  string
	value func(engine.Segment) float64
}

var speedSeries = []series{
	{"Accel-limited speed", func(s engine.Segment) float64 { return s.AccelSpeed }},
	{"Decel-limited speed", func(s engine.Segment) float64 { return s.DecelSpeed }},
	{"Final speed", func(s engine.Segment) float64 { return s.FinalSpeed }},
}

var forceSeries = []series{
	{"Motor force", func(s engine.Segment) float64 { return s.FMotor }},
	{"Drag force", func(s engine.Segment) float64 { return s.FDrag }},
	{"Traction limit", func(s engine.Segment) float64 { return s.FTraction }},
	{"Actual force", func(s engine.Segment) float64 { return s.FActual }},
}
