package engine

import (
	"fmt"

	"github.com/rs/zerolog"
)

// SweepPolicy selects how the longitudinal sweeps treat turn rows.
type SweepPolicy string

const (
	// PassThrough leaves the running speed untouched across turn rows, so a
	// straight picks up from the speed reached at the end of the previous one.
	PassThrough SweepPolicy = "pass-through"
	// ResetAtApex resets the running speed to the apex speed at every turn
	// row, so each straight accelerates out of and brakes into its corners.
	ResetAtApex SweepPolicy = "reset-at-apex"
)

// ParseSweepPolicy converts a policy name into a SweepPolicy. An empty name
// selects PassThrough.
func ParseSweepPolicy(name string) (SweepPolicy, error) {
	switch SweepPolicy(name) {
	case "", PassThrough:
		return PassThrough, nil
	case ResetAtApex:
		return ResetAtApex, nil
	default:
		return "", fmt.Errorf("unknown sweep policy %q (want %q or %q)", name, PassThrough, ResetAtApex)
	}
}

type options struct {
	log      zerolog.Logger
	policy   SweepPolicy
	meshSize float64
}

func defaultOptions() options {
	return options{log: zerolog.Nop(), policy: PassThrough}
}

// Option configures a simulation run.
type Option func(*options)

// WithLogger sets the logger used for stage diagnostics and range warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSweepPolicy selects how the sweeps treat turn rows.
func WithSweepPolicy(p SweepPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithMeshSize overrides the mesh size of a SimulationInput. Zero keeps the
// input's value.
func WithMeshSize(size float64) Option {
	return func(o *options) { o.meshSize = size }
}
