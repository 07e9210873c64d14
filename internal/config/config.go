// Package config loads run settings for the lapsim command.
//
// Settings come from built-in defaults, an optional JSON config file and
// LAPSIM_-prefixed environment variables, in increasing priority.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/cxd309/lapsim/internal/engine"
	"github.com/cxd309/lapsim/internal/report"
)

// EnvPrefix is the prefix for environment overrides, e.g. LAPSIM_PLOT_DIR.
const EnvPrefix = "LAPSIM"

// OutputConfig controls how the result table is written.
type OutputConfig struct {
	Path   string `json:"path" mapstructure:"path"` // empty writes to stdout
	Indent bool   `json:"indent" mapstructure:"indent"`
}

// PlotConfig controls chart rendering. An empty Dir disables plotting.
type PlotConfig struct {
	Dir    string `json:"dir" mapstructure:"dir"`
	Format string `json:"format" mapstructure:"format"`
}

// Config holds all run settings.
type Config struct {
	LogLevel    string       `json:"logLevel" mapstructure:"logLevel"`
	MeshSize    float64      `json:"meshSize" mapstructure:"meshSize"` // metres; 0 keeps the input file's value
	SweepPolicy string       `json:"sweepPolicy" mapstructure:"sweepPolicy"`
	Output      OutputConfig `json:"output" mapstructure:"output"`
	Plot        PlotConfig   `json:"plot" mapstructure:"plot"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("meshSize", 0.0)
	v.SetDefault("sweepPolicy", string(engine.PassThrough))

	v.SetDefault("output.path", "")
	v.SetDefault("output.indent", false)

	v.SetDefault("plot.dir", "")
	v.SetDefault("plot.format", report.FormatPNG)
}

// Load reads configuration from the JSON file at path, if path is non-empty,
// on top of the defaults and under environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// AutomaticEnv only applies to Get calls, so resolve every key explicitly
	// rather than going through Unmarshal.
	cfg := &Config{
		LogLevel:    v.GetString("logLevel"),
		MeshSize:    v.GetFloat64("meshSize"),
		SweepPolicy: v.GetString("sweepPolicy"),
		Output: OutputConfig{
			Path:   v.GetString("output.path"),
			Indent: v.GetBool("output.indent"),
		},
		Plot: PlotConfig{
			Dir:    v.GetString("plot.dir"),
			Format: v.GetString("plot.format"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.MeshSize < 0 || math.IsNaN(c.MeshSize) || math.IsInf(c.MeshSize, 0) {
		return fmt.Errorf("meshSize must be a non-negative finite number, got %g", c.MeshSize)
	}
	if _, err := engine.ParseSweepPolicy(c.SweepPolicy); err != nil {
		return err
	}
	format, err := report.ParseFormat(c.Plot.Format)
	if err != nil {
		return fmt.Errorf("plot.format: %w", err)
	}
	c.Plot.Format = format
	return nil
}

// EngineOptions converts the settings that affect the simulation into engine options.
func (c *Config) EngineOptions() []engine.Option {
	policy, _ := engine.ParseSweepPolicy(c.SweepPolicy)
	return []engine.Option{
		engine.WithSweepPolicy(policy),
		engine.WithMeshSize(c.MeshSize),
	}
}
