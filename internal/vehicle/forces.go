package vehicle

import (
	"math"

	"github.com/cxd309/lapsim/internal/kinematics"
)

// TractionLimit returns the maximum longitudinal force the tyres can transmit, N.
func (p Params) TractionLimit() float64 {
	return p.TireFriction * p.Mass * kinematics.StandardGravity
}

// RPM returns the motor speed at road speed v (m/s).
func (p Params) RPM(v float64) float64 {
	return (60 * p.DriveRatio * v) / (2 * math.Pi * p.TireRadius)
}

// MotorForce returns the tractive force at the contact patch for a motor torque, N.
func (p Params) MotorForce(torque float64) float64 {
	return torque * p.DriveRatio * p.DrivetrainEff / p.TireRadius
}

// DragForce returns the aerodynamic drag at road speed v (m/s), N.
func (p Params) DragForce(v float64) float64 {
	return 0.5 * AirDensity * p.DragCoeff * p.FrontalArea * v * v
}

// Grip returns the grip-limited motion model for these parameters.
func (p Params) Grip() kinematics.GripLimited {
	return kinematics.NewGripLimited(p.GGRadius)
}
