// Command lapsim reads a SimulationInput JSON from -input, the first argument,
// or stdin, runs the lap simulation, and writes the SimulationResult JSON to
// stdout or the configured output path. Charts are rendered when a plot
// directory is configured.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/cxd309/lapsim/internal/config"
	"github.com/cxd309/lapsim/internal/engine"
	"github.com/cxd309/lapsim/internal/logging"
	"github.com/cxd309/lapsim/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lapsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "path to a JSON config file")
		inputPath  = fs.String("input", "", "simulation input JSON (default: first argument or stdin)")
		plotDir    = fs.String("plot", "", "directory to write charts into (overrides plot.dir)")
		plotFormat = fs.String("format", "", "chart format: png, html or both (overrides plot.format)")
		meshSize   = fs.Float64("mesh", 0, "mesh size in metres (overrides meshSize and the input file)")
		indent     = fs.Bool("indent", false, "indent the JSON output")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return 1
	}
	if *plotDir != "" {
		cfg.Plot.Dir = *plotDir
	}
	if *plotFormat != "" {
		cfg.Plot.Format = *plotFormat
	}
	if *meshSize != 0 {
		cfg.MeshSize = *meshSize
	}
	if *indent {
		cfg.Output.Indent = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return 1
	}

	log := logging.New(cfg.LogLevel, stderr)

	path := *inputPath
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	data, err := readInput(path, stdin)
	if err != nil {
		log.Error().Err(err).Msg("error reading input")
		return 1
	}

	result, err := simulate(data, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("simulation error")
		return 1
	}

	if err := writeResult(result, cfg.Output, stdout); err != nil {
		log.Error().Err(err).Msg("error writing output")
		return 1
	}

	if cfg.Plot.Dir != "" {
		paths, err := report.Render(result.Output, cfg.Plot.Dir, cfg.Plot.Format)
		if err != nil {
			log.Error().Err(err).Msg("error rendering charts")
			return 1
		}
		log.Info().Strs("files", paths).Msg("charts written")
	}
	return 0
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func simulate(data []byte, cfg *config.Config, log zerolog.Logger) (engine.SimulationResult, error) {
	var input engine.SimulationInput
	if err := json.Unmarshal(data, &input); err != nil {
		return engine.SimulationResult{}, fmt.Errorf("invalid input JSON: %w", err)
	}

	opts := append(cfg.EngineOptions(), engine.WithLogger(log))
	sim, err := engine.New(input, opts...)
	if err != nil {
		return engine.SimulationResult{}, err
	}
	result, err := sim.Run()
	if err != nil {
		return engine.SimulationResult{}, err
	}

	s := result.Output.Summary
	log.Info().
		Str("simulation_id", result.Meta.SimulationID).
		Int("rows", s.Rows).
		Float64("lap_time", s.LapTime).
		Float64("max_speed", s.MaxSpeed).
		Int("clamped_rows", len(result.Output.Warnings)).
		Msg("simulation finished")
	return result, nil
}

func writeResult(result engine.SimulationResult, out config.OutputConfig, stdout io.Writer) error {
	w := stdout
	if out.Path != "" {
		f, err := os.Create(out.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if out.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
