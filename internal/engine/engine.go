// Package engine implements the lap simulation pipeline.
//
// A run builds one segment table and fills it in four stages:
//
//  1. Mesh - the track is cut into positions at most one mesh step apart,
//     each tagged with its section, kind, step and corner radius.
//
//  2. Apex - every turn row gets the highest speed lateral grip allows on
//     its radius.
//
//  3. Longitudinal - a forward sweep bounds speed by what the car can reach
//     accelerating out of the past, a backward sweep by what it can still
//     shed braking into the reference turn; the final speed is their minimum.
//
//  4. Derive - time, RPM, torque and forces follow row by row from the
//     final speed.
package engine

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cxd309/lapsim/internal/kinematics"
	"github.com/cxd309/lapsim/internal/powertrain"
	"github.com/cxd309/lapsim/internal/simerr"
	"github.com/cxd309/lapsim/internal/track"
	"github.com/cxd309/lapsim/internal/vehicle"
)

// Simulator holds validated inputs for one simulation run.
type Simulator struct {
	meta   SimulationMeta
	params vehicle.Params
	track  track.Track
	curve  powertrain.TorqueCurve
	model  kinematics.MotionModel
	log    zerolog.Logger
	policy SweepPolicy
}

// New constructs a Simulator from a SimulationInput, validating every input
// before any computation. An empty simulation ID is replaced by a fresh UUID.
func New(input SimulationInput, opts ...Option) (*Simulator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	params, err := vehicle.ParamsFromMap(input.Parameters)
	if err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}

	meta := input.Meta
	if o.meshSize != 0 {
		meta.MeshSize = o.meshSize
	}
	if meta.SimulationID == "" {
		meta.SimulationID = uuid.NewString()
	}

	return newSimulator(meta, params, input.Track, input.TorqueCurve, o)
}

func newSimulator(meta SimulationMeta, params vehicle.Params, trk track.Track, curve powertrain.TorqueCurve, o options) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}
	if err := curve.Validate(); err != nil {
		return nil, fmt.Errorf("torque curve: %w", err)
	}
	policy, err := ParseSweepPolicy(string(o.policy))
	if err != nil {
		return nil, simerr.Configf("sweep_policy", "%v", err)
	}
	return &Simulator{
		meta:   meta,
		params: params,
		track:  trk,
		curve:  curve,
		model:  params.Grip(),
		log:    o.log.With().Str("simulation_id", meta.SimulationID).Logger(),
		policy: policy,
	}, nil
}

// Simulate runs the full pipeline over trk and returns the populated segment
// table. The inputs are only read. On any error no table is returned.
func Simulate(meshSize float64, params vehicle.Params, trk track.Track, curve powertrain.TorqueCurve, opts ...Option) (*SegmentTable, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	sim, err := newSimulator(SimulationMeta{MeshSize: meshSize}, params, trk, curve, o)
	if err != nil {
		return nil, err
	}
	return sim.simulate()
}

// Run executes the simulation and returns the result.
func (s *Simulator) Run() (SimulationResult, error) {
	table, err := s.simulate()
	if err != nil {
		return SimulationResult{}, err
	}
	return SimulationResult{Meta: s.meta, Output: table}, nil
}

func (s *Simulator) simulate() (*SegmentTable, error) {
	mesh, err := track.NewMesh(s.track, s.meta.MeshSize, s.params.TurnRadius)
	if err != nil {
		return nil, fmt.Errorf("meshing track: %w", err)
	}
	s.log.Debug().Int("rows", mesh.Len()).Float64("mesh_size", mesh.MeshSize).Msg("track meshed")

	rows := make([]Segment, mesh.Len())
	for i, p := range mesh.Points {
		rows[i].Point = p
	}

	solveApex(rows, s.model)

	ref := mesh.LastIndexOf(s.track.ReferenceTurn)
	if ref < 0 {
		return nil, &simerr.DegenerateTrackError{Reason: fmt.Sprintf("reference turn %q has no mesh rows", s.track.ReferenceTurn)}
	}
	sweepForward(rows, s.model, s.policy)
	sweepBackward(rows, s.model, s.policy, rows[ref].DecelSpeed)
	for i := range rows {
		rows[i].FinalSpeed = math.Min(rows[i].AccelSpeed, rows[i].DecelSpeed)
	}

	warnings, err := derive(rows, s.params, s.curve)
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		lo, hi := s.curve.Range()
		s.log.Warn().
			Int("rows", len(warnings)).
			Float64("min_rpm", lo).
			Float64("max_rpm", hi).
			Msg("rpm outside torque curve, torque clamped to endpoints")
	}

	table := &SegmentTable{Rows: rows, Warnings: warnings}
	table.Summary = summarize(rows)
	s.log.Debug().
		Float64("lap_time", table.Summary.LapTime).
		Float64("max_speed", table.Summary.MaxSpeed).
		Msg("simulation complete")
	return table, nil
}

// solveApex writes the grip-limited cornering speed into both directional
// columns of every turn row.
func solveApex(rows []Segment, m kinematics.MotionModel) {
	for i := range rows {
		r := &rows[i]
		switch r.Kind {
		case track.KindTurn:
			v := m.ApexSpeed(r.Radius)
			r.AccelSpeed, r.DecelSpeed = v, v
		case track.KindStraight:
			// filled by the sweeps
		}
	}
}

// sweepForward folds over the rows in travel order from rest, growing the
// accel-limited speed at straight rows by each row's own step.
func sweepForward(rows []Segment, m kinematics.MotionModel, policy SweepPolicy) {
	v := 0.0
	for i := range rows {
		r := &rows[i]
		switch r.Kind {
		case track.KindStraight:
			v = m.AccelerateOver(v, r.DX)
			r.AccelSpeed = v
		case track.KindTurn:
			if policy == ResetAtApex {
				v = r.AccelSpeed
			}
		}
	}
}

// sweepBackward folds over the rows from the end of the track to the start,
// seeded with the reference turn's apex speed. At a straight row the speed
// grows by the row's own step, the distance covered arriving at it.
func sweepBackward(rows []Segment, m kinematics.MotionModel, policy SweepPolicy, seed float64) {
	v := seed
	for i := len(rows) - 1; i >= 0; i-- {
		r := &rows[i]
		switch r.Kind {
		case track.KindStraight:
			v = m.BrakeInto(v, r.DX)
			r.DecelSpeed = v
		case track.KindTurn:
			if policy == ResetAtApex {
				v = r.DecelSpeed
			}
		}
	}
}

// derive fills the time, RPM, torque and force columns from the final speed.
// A non-positive final speed past the start marker aborts the run.
func derive(rows []Segment, p vehicle.Params, curve powertrain.TorqueCurve) ([]simerr.RangeWarning, error) {
	var warnings []simerr.RangeWarning
	lo, hi := curve.Range()
	traction := p.TractionLimit()

	dts := make([]float64, len(rows))
	for i := range rows {
		r := &rows[i]
		if i > 0 {
			if !(r.FinalSpeed > 0) || math.IsInf(r.FinalSpeed, 0) {
				return nil, &simerr.NumericDegeneracyError{Row: i, Field: "final_speed", Value: r.FinalSpeed}
			}
			dts[i] = r.DX / r.FinalSpeed
		}
		r.TimeDelta = dts[i]
		r.FTraction = traction

		r.RPM = p.RPM(r.FinalSpeed)
		torque, clamped := curve.At(r.RPM)
		if clamped {
			warnings = append(warnings, simerr.RangeWarning{Row: i, RPM: r.RPM, Min: lo, Max: hi})
		}
		r.EngineTorque = torque
		r.FMotor = p.MotorForce(torque)
		r.FDrag = p.DragForce(r.FinalSpeed)
		r.FApplied = r.FMotor - r.FDrag
		r.FActual = math.Min(r.FApplied, r.FTraction)
	}

	cum := floats.CumSum(make([]float64, len(dts)), dts)
	for i := range rows {
		rows[i].TimeSinceStart = cum[i]
	}
	return warnings, nil
}

func summarize(rows []Segment) Summary {
	n := len(rows)
	speeds := make([]float64, n)
	dxs := make([]float64, n)
	rpms := make([]float64, n)
	for i, r := range rows {
		speeds[i] = r.FinalSpeed
		dxs[i] = r.DX
		rpms[i] = r.RPM
	}

	s := Summary{
		LapTime:  rows[n-1].TimeSinceStart,
		Distance: rows[n-1].X,
		MaxSpeed: floats.Max(speeds),
		MaxRPM:   floats.Max(rpms),
		Rows:     n,
	}
	if n > 1 {
		s.MinSpeed = floats.Min(speeds[1:])
		s.MeanSpeed = stat.Mean(speeds[1:], dxs[1:])
	}
	return s
}

// RunJSON is the primary entry point for the CLI and WASM targets.
// It accepts a JSON-encoded SimulationInput, runs the simulation, and returns a
// JSON-encoded SimulationResult.
func RunJSON(jsonInput string, opts ...Option) (string, error) {
	var input SimulationInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	sim, err := New(input, opts...)
	if err != nil {
		return "", err
	}

	result, err := sim.Run()
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
