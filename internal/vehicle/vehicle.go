// Package vehicle defines the vehicle and simulation parameters consumed by the
// lap simulation, and the per-row force relations derived from them.
package vehicle

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/cxd309/lapsim/internal/simerr"
)

// AirDensity is the air density used for aerodynamic drag, kg/m³.
const AirDensity = 1.225

// Parameter keys, as they appear in parameter maps and JSON input.
const (
	KeyGGRadius      = "gg radius"
	KeyTurnRadius    = "t1 radius"
	KeyMass          = "mass"
	KeyTireFriction  = "tire friction coeff"
	KeyDriveRatio    = "drive ratio"
	KeyDrivetrainEff = "drivetrain eff"
	KeyTireRadius    = "tire radius"
	KeyDragCoeff     = "drag coeff"
	KeyFrontalArea   = "frontal area"
)

// Keys lists every required parameter key in validation order.
var Keys = []string{
	KeyGGRadius, KeyTurnRadius, KeyMass, KeyTireFriction, KeyDriveRatio,
	KeyDrivetrainEff, KeyTireRadius, KeyDragCoeff, KeyFrontalArea,
}

// Params holds the static parameters of a vehicle and its simulation.
type Params struct {
	GGRadius      float64 // lateral/longitudinal grip, multiples of g
	TurnRadius    float64 // default corner radius, metres
	Mass          float64 // kg
	TireFriction  float64 // tyre-road friction coefficient
	DriveRatio    float64 // overall gear/drive ratio
	DrivetrainEff float64 // 0 < eff <= 1
	TireRadius    float64 // rolling radius, metres
	DragCoeff     float64 // Cd
	FrontalArea   float64 // m²
}

// fields maps each key to its field so decoding and encoding share one table.
func (p *Params) fields() map[string]*float64 {
	return map[string]*float64{
		KeyGGRadius:      &p.GGRadius,
		KeyTurnRadius:    &p.TurnRadius,
		KeyMass:          &p.Mass,
		KeyTireFriction:  &p.TireFriction,
		KeyDriveRatio:    &p.DriveRatio,
		KeyDrivetrainEff: &p.DrivetrainEff,
		KeyTireRadius:    &p.TireRadius,
		KeyDragCoeff:     &p.DragCoeff,
		KeyFrontalArea:   &p.FrontalArea,
	}
}

// ParamsFromMap builds Params from a key/value map. Every key in Keys is
// required and no other key is accepted; the first offending key is named
// in the returned ConfigurationError.
func ParamsFromMap(m map[string]float64) (Params, error) {
	var p Params
	fields := p.fields()

	var unknown []string
	for k := range m {
		if _, ok := fields[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Params{}, simerr.Configf(unknown[0], "unknown parameter")
	}

	for _, k := range Keys {
		v, ok := m[k]
		if !ok {
			return Params{}, simerr.Configf(k, "missing parameter")
		}
		*fields[k] = v
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Map returns the parameters as a key/value map.
func (p Params) Map() map[string]float64 {
	out := make(map[string]float64, len(Keys))
	for k, f := range p.fields() {
		out[k] = *f
	}
	return out
}

// Validate checks every parameter against its physical range.
func (p Params) Validate() error {
	fields := p.fields()
	for _, k := range Keys {
		v := *fields[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return simerr.Configf(k, "must be finite, got %g", v)
		}
		switch k {
		case KeyDragCoeff, KeyFrontalArea:
			if v < 0 {
				return simerr.Configf(k, "must be non-negative, got %g", v)
			}
		case KeyDrivetrainEff:
			if v <= 0 || v > 1 {
				return simerr.Configf(k, "must be in (0, 1], got %g", v)
			}
		default:
			if v <= 0 {
				return simerr.Configf(k, "must be positive, got %g", v)
			}
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Params.
// The input is an object keyed by the parameter names in Keys.
func (p *Params) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	parsed, err := ParamsFromMap(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON implements json.Marshaler for Params.
func (p Params) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}
