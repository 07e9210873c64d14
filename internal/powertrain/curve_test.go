package powertrain

import (
	"errors"
	"math"
	"testing"

	"github.com/cxd309/lapsim/internal/simerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/interp"
)

func sampleCurve(t *testing.T) TorqueCurve {
	t.Helper()
	c, err := NewTorqueCurve(
		[]float64{1000, 2500, 4000, 5500, 7000},
		[]float64{180, 230, 240, 210, 150},
	)
	require.NoError(t, err)
	return c
}

func TestTorqueCurve_AtSamples(t *testing.T) {
	c := sampleCurve(t)
	for i, rpm := range c.RPM {
		got, clamped := c.At(rpm)
		assert.Equal(t, c.Torque[i], got)
		assert.False(t, clamped)
	}
}

func TestTorqueCurve_AtMidpoint(t *testing.T) {
	c := sampleCurve(t)
	got, clamped := c.At(1750)
	assert.InDelta(t, 205, got, 1e-12)
	assert.False(t, clamped)
}

func TestTorqueCurve_ClampsOutsideRange(t *testing.T) {
	c := sampleCurve(t)

	below, clamped := c.At(0)
	assert.Equal(t, 180.0, below)
	assert.True(t, clamped)

	above, clamped := c.At(9000)
	assert.Equal(t, 150.0, above)
	assert.True(t, clamped)

	lo, hi := c.Range()
	assert.Equal(t, 1000.0, lo)
	assert.Equal(t, 7000.0, hi)
}

func TestTorqueCurve_MatchesPiecewiseLinear(t *testing.T) {
	c := sampleCurve(t)

	var pl interp.PiecewiseLinear
	require.NoError(t, pl.Fit(c.RPM, c.Torque))

	for rpm := 1000.0; rpm <= 7000; rpm += 37.5 {
		got, _ := c.At(rpm)
		assert.InDeltaf(t, pl.Predict(rpm), got, 1e-9, "rpm %g", rpm)
	}
}

func TestNewTorqueCurve_CopiesInput(t *testing.T) {
	rpm := []float64{0, 1000}
	torque := []float64{10, 20}
	c, err := NewTorqueCurve(rpm, torque)
	require.NoError(t, err)

	rpm[1] = 5
	torque[0] = 99
	assert.Equal(t, []float64{0, 1000}, c.RPM)
	assert.Equal(t, []float64{10, 20}, c.Torque)
}

func TestNewTorqueCurve_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		rpm    []float64
		torque []float64
		field  string
	}{
		{"length mismatch", []float64{0, 1}, []float64{1}, "motor_torque_curve"},
		{"single sample", []float64{0}, []float64{1}, "motor_torque_curve"},
		{"empty", nil, nil, "motor_torque_curve"},
		{"not increasing", []float64{0, 100, 100}, []float64{1, 2, 3}, "motor_torque_curve.rpm[2]"},
		{"nan torque", []float64{0, 100}, []float64{1, math.NaN()}, "motor_torque_curve.torque[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTorqueCurve(tt.rpm, tt.torque)
			var cfgErr *simerr.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
