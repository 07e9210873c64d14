package vehicle

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/cxd309/lapsim/internal/simerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap() map[string]float64 {
	return map[string]float64{
		"gg radius":           1.5,
		"t1 radius":           20,
		"mass":                300,
		"tire friction coeff": 1.4,
		"drive ratio":         4,
		"drivetrain eff":      0.9,
		"tire radius":         0.25,
		"drag coeff":          0.8,
		"frontal area":        1.1,
	}
}

func TestParamsFromMap(t *testing.T) {
	p, err := ParamsFromMap(sampleMap())
	require.NoError(t, err)

	assert.Equal(t, Params{
		GGRadius: 1.5, TurnRadius: 20, Mass: 300, TireFriction: 1.4, DriveRatio: 4,
		DrivetrainEff: 0.9, TireRadius: 0.25, DragCoeff: 0.8, FrontalArea: 1.1,
	}, p)
	assert.Equal(t, sampleMap(), p.Map())
}

func TestParamsFromMap_MissingKey(t *testing.T) {
	for _, key := range Keys {
		t.Run(key, func(t *testing.T) {
			m := sampleMap()
			delete(m, key)

			_, err := ParamsFromMap(m)
			var cfgErr *simerr.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, key, cfgErr.Field)
			assert.Equal(t, "missing parameter", cfgErr.Reason)
		})
	}
}

func TestParamsFromMap_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value float64
	}{
		{KeyMass, 0},
		{KeyGGRadius, -1},
		{KeyDrivetrainEff, 1.2},
		{KeyDrivetrainEff, 0},
		{KeyTireRadius, math.NaN()},
		{KeyDragCoeff, -0.1},
		{KeyFrontalArea, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := sampleMap()
			m[tt.key] = tt.value

			_, err := ParamsFromMap(m)
			var cfgErr *simerr.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.key, cfgErr.Field)
		})
	}
}

func TestParamsFromMap_ZeroDragAllowed(t *testing.T) {
	m := sampleMap()
	m[KeyDragCoeff] = 0
	m[KeyFrontalArea] = 0
	_, err := ParamsFromMap(m)
	assert.NoError(t, err)
}

func TestParamsFromMap_UnknownKey(t *testing.T) {
	m := sampleMap()
	m["wing angle"] = 12

	_, err := ParamsFromMap(m)
	var cfgErr *simerr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "wing angle", cfgErr.Field)
}

func TestParams_JSONRoundTrip(t *testing.T) {
	in := `{"gg radius":1.5,"t1 radius":20,"mass":300,"tire friction coeff":1.4,"drive ratio":4,
		"drivetrain eff":0.9,"tire radius":0.25,"drag coeff":0.8,"frontal area":1.1}`

	var p Params
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.Equal(t, 300.0, p.Mass)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestParams_JSONMissingKey(t *testing.T) {
	var p Params
	err := json.Unmarshal([]byte(`{"gg radius":1.5}`), &p)

	var cfgErr *simerr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, KeyTurnRadius, cfgErr.Field)
}

func TestParams_Forces(t *testing.T) {
	p, err := ParamsFromMap(sampleMap())
	require.NoError(t, err)

	assert.InDelta(t, 1.4*300*9.81, p.TractionLimit(), 1e-9)
	assert.InDelta(t, 60*4*10/(2*math.Pi*0.25), p.RPM(10), 1e-9)
	assert.Zero(t, p.RPM(0))
	assert.InDelta(t, 200*4*0.9/0.25, p.MotorForce(200), 1e-9)
	assert.InDelta(t, 0.5*1.225*0.8*1.1*400, p.DragForce(20), 1e-9)
	assert.InDelta(t, 1.5*9.81, p.Grip().Accel(), 1e-12)
}
