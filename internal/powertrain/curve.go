// Package powertrain provides the motor torque curve lookup.
package powertrain

import (
	"fmt"
	"math"
	"sort"

	"github.com/cxd309/lapsim/internal/simerr"
)

// TorqueCurve is a motor torque curve sampled at strictly increasing RPM.
// Lookups interpolate linearly between samples and clamp to the endpoint
// torque outside the sampled range.
type TorqueCurve struct {
	RPM    []float64 `json:"rpm"`
	Torque []float64 `json:"torque"` // N·m
}

// NewTorqueCurve copies and validates the given samples.
func NewTorqueCurve(rpm, torque []float64) (TorqueCurve, error) {
	c := TorqueCurve{
		RPM:    append([]float64(nil), rpm...),
		Torque: append([]float64(nil), torque...),
	}
	if err := c.Validate(); err != nil {
		return TorqueCurve{}, err
	}
	return c, nil
}

// Validate checks that the curve can be used for interpolation.
func (c TorqueCurve) Validate() error {
	if len(c.RPM) != len(c.Torque) {
		return simerr.Configf("motor_torque_curve", "rpm and torque lengths differ (%d vs %d)", len(c.RPM), len(c.Torque))
	}
	if len(c.RPM) < 2 {
		return simerr.Configf("motor_torque_curve", "need at least 2 samples, got %d", len(c.RPM))
	}
	for i := range c.RPM {
		if math.IsNaN(c.RPM[i]) || math.IsInf(c.RPM[i], 0) {
			return simerr.Configf(fmt.Sprintf("motor_torque_curve.rpm[%d]", i), "must be finite, got %g", c.RPM[i])
		}
		if math.IsNaN(c.Torque[i]) || math.IsInf(c.Torque[i], 0) {
			return simerr.Configf(fmt.Sprintf("motor_torque_curve.torque[%d]", i), "must be finite, got %g", c.Torque[i])
		}
		if i > 0 && c.RPM[i] <= c.RPM[i-1] {
			return simerr.Configf(fmt.Sprintf("motor_torque_curve.rpm[%d]", i), "rpm must be strictly increasing (%g after %g)", c.RPM[i], c.RPM[i-1])
		}
	}
	return nil
}

// Range returns the lowest and highest sampled RPM.
func (c TorqueCurve) Range() (lo, hi float64) {
	return c.RPM[0], c.RPM[len(c.RPM)-1]
}

// At returns the torque at rpm. clamped is true when rpm lies outside the
// sampled range and the endpoint torque was returned.
func (c TorqueCurve) At(rpm float64) (torque float64, clamped bool) {
	n := len(c.RPM)
	if rpm <= c.RPM[0] {
		return c.Torque[0], rpm < c.RPM[0]
	}
	if rpm >= c.RPM[n-1] {
		return c.Torque[n-1], rpm > c.RPM[n-1]
	}

	// First sample strictly above rpm; i is in [1, n-1] here.
	i := sort.Search(n, func(j int) bool { return c.RPM[j] > rpm })
	x0, x1 := c.RPM[i-1], c.RPM[i]
	y0, y1 := c.Torque[i-1], c.Torque[i]
	return y0 + (y1-y0)*(rpm-x0)/(x1-x0), false
}
