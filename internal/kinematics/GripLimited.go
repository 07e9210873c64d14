package kinematics

import "math"

// StandardGravity is the gravitational acceleration used throughout the simulation, m/s².
const StandardGravity = 9.81

// GripLimited implements MotionModel for a vehicle whose lateral and
// longitudinal acceleration are both bounded by the same friction circle
// radius, expressed as a multiple of g.
type GripLimited struct {
	GGRadius float64 `json:"gg_radius"` // sustained acceleration, multiples of g
	Gravity  float64 `json:"gravity"`   // m/s²; StandardGravity when zero
}

// NewGripLimited returns a GripLimited model at standard gravity.
func NewGripLimited(ggRadius float64) GripLimited {
	return GripLimited{GGRadius: ggRadius, Gravity: StandardGravity}
}

// Accel returns the available acceleration magnitude, m/s².
func (g GripLimited) Accel() float64 {
	gravity := g.Gravity
	if gravity == 0 {
		gravity = StandardGravity
	}
	return g.GGRadius * gravity
}

func (g GripLimited) ApexSpeed(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Sqrt(g.Accel() * r)
}

func (g GripLimited) AccelerateOver(v, dx float64) float64 {
	return math.Sqrt(v*v + 2*g.Accel()*dx)
}

// BrakeInto is symmetric with AccelerateOver because the braking limit equals
// the traction limit in this model.
func (g GripLimited) BrakeInto(v, dx float64) float64 {
	return math.Sqrt(v*v + 2*g.Accel()*dx)
}

func (g GripLimited) BrakingDistanceTo(v, targetV float64) float64 {
	a := g.Accel()
	if a <= 0 {
		return math.Inf(1)
	}
	if v <= targetV {
		return 0
	}
	return (v*v - targetV*targetV) / (2 * a)
}
