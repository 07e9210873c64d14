package engine

import (
	"github.com/cxd309/lapsim/internal/powertrain"
	"github.com/cxd309/lapsim/internal/simerr"
	"github.com/cxd309/lapsim/internal/track"
)

// SimulationMeta holds the identity and resolution parameters for a simulation run.
type SimulationMeta struct {
	SimulationID string  `json:"simulation_id"`
	MeshSize     float64 `json:"mesh_size"` // metres
}

// SimulationInput is the JSON-serialisable input to the engine.
// Parameters is keyed by the names in vehicle.Keys.
type SimulationInput struct {
	Meta        SimulationMeta         `json:"simulation_meta"`
	Parameters  map[string]float64     `json:"parameters"`
	Track       track.Track            `json:"track"`
	TorqueCurve powertrain.TorqueCurve `json:"motor_torque_curve"`
}

// Segment is one row of the segment table. The embedded mesh point is written
// by the mesher; the remaining fields are written stage by stage.
type Segment struct {
	track.Point

	// Apex and longitudinal solvers.
	AccelSpeed float64 `json:"accel_speed"` // m/s
	DecelSpeed float64 `json:"decel_speed"` // m/s
	FinalSpeed float64 `json:"final_speed"` // m/s

	// Kinematics and force deriver.
	TimeDelta      float64 `json:"time_delta"`       // seconds
	TimeSinceStart float64 `json:"time_since_start"` // seconds
	FTraction      float64 `json:"f_traction"`       // N
	RPM            float64 `json:"rpm"`
	EngineTorque   float64 `json:"engine_torque"` // N·m
	FMotor         float64 `json:"f_motor"`       // N
	FDrag          float64 `json:"f_drag"`        // N
	FApplied       float64 `json:"f_applied"`     // N
	FActual        float64 `json:"f_actual"`      // N
}

// Summary aggregates a completed segment table.
type Summary struct {
	LapTime   float64 `json:"lap_time"`   // seconds
	Distance  float64 `json:"distance"`   // metres
	MaxSpeed  float64 `json:"max_speed"`  // m/s
	MinSpeed  float64 `json:"min_speed"`  // m/s, excluding the start marker
	MeanSpeed float64 `json:"mean_speed"` // m/s, distance-weighted
	MaxRPM    float64 `json:"max_rpm"`
	Rows      int     `json:"rows"`
}

// SegmentTable is the complete output of one simulation: one row per mesh
// position in traversal order. It is owned by the caller once returned.
type SegmentTable struct {
	Rows     []Segment             `json:"rows"`
	Summary  Summary               `json:"summary"`
	Warnings []simerr.RangeWarning `json:"warnings,omitempty"`
}

// Column returns one float column of the table, selected by f.
func (t *SegmentTable) Column(f func(Segment) float64) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = f(r)
	}
	return out
}

// SimulationResult is the JSON-serialisable output of a simulation run.
type SimulationResult struct {
	Meta   SimulationMeta `json:"simulation_meta"`
	Output *SegmentTable  `json:"output"`
}
