// Package kinematics defines the MotionModel interface for the grip-limited
// point-mass physics used by the lap simulation, along with built-in
// implementations.
//
// The speed solvers in the engine only talk to MotionModel, so a different
// grip envelope (for instance separate braking and traction limits) can be
// added here without touching the sweep code.
package kinematics

// MotionModel is the physics contract every kinematics implementation must satisfy.
// All distance values are in metres, velocities in m/s.
type MotionModel interface {
	// ApexSpeed returns the maximum steady cornering speed on a turn of radius r.
	// Returns 0 for r <= 0.
	ApexSpeed(r float64) float64

	// AccelerateOver returns the speed reached after accelerating from v over dx metres.
	AccelerateOver(v, dx float64) float64

	// BrakeInto returns the highest speed from which the vehicle can still slow to v
	// within dx metres. The backward sweep uses it to grow the braking envelope
	// away from a corner.
	BrakeInto(v, dx float64) float64

	// BrakingDistanceTo returns the distance needed to slow from v to targetV.
	// Returns 0 if v <= targetV.
	BrakingDistanceTo(v, targetV float64) float64
}
