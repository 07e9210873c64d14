package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/lapsim/internal/engine"
	"github.com/cxd309/lapsim/internal/report"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lapsim.cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0.0, cfg.MeshSize)
	assert.Equal(t, string(engine.PassThrough), cfg.SweepPolicy)
	assert.Equal(t, "", cfg.Output.Path)
	assert.False(t, cfg.Output.Indent)
	assert.Equal(t, "", cfg.Plot.Dir)
	assert.Equal(t, report.FormatPNG, cfg.Plot.Format)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `{
		"logLevel": "debug",
		"meshSize": 0.5,
		"sweepPolicy": "reset-at-apex",
		"output": { "indent": true },
		"plot": { "dir": "/tmp/plots", "format": "HTML" }
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.5, cfg.MeshSize)
	assert.Equal(t, "reset-at-apex", cfg.SweepPolicy)
	assert.True(t, cfg.Output.Indent)
	assert.Equal(t, "/tmp/plots", cfg.Plot.Dir)
	assert.Equal(t, report.FormatHTML, cfg.Plot.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `{ "plot": { "dir": "from-file" } }`)
	t.Setenv("LAPSIM_PLOT_DIR", "from-env")
	t.Setenv("LAPSIM_LOGLEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Plot.Dir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/lapsim.cfg.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"negative mesh", `{"meshSize": -1}`, "meshSize"},
		{"unknown policy", `{"sweepPolicy": "sideways"}`, "unknown sweep policy"},
		{"unknown plot format", `{"plot": {"format": "svg"}}`, "plot.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"meshSize": 5, "sweepPolicy": "reset-at-apex"}`))
	require.NoError(t, err)
	assert.Len(t, cfg.EngineOptions(), 2)
}
