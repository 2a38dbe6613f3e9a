package mr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitPowerLaw(t *testing.T) {
	curve := make(MSDCurve, 50)
	for i := range curve {
		lag := float64(i + 1)
		curve[i] = MSDRecord{Lag: i + 1, LagTime: lag, MSD: 3.0 * math.Pow(lag, 1.5)}
	}
	fit, err := FitPowerLaw(curve)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, fit.Exponent, 1e-6)
	assert.InDelta(t, 3.0, fit.Coefficient, 1e-6)
	assert.InDelta(t, 3.0*math.Pow(2, 1.5), fit.Predict(2.0), 1e-6)
}

func TestFitPowerLawDomain(t *testing.T) {
	bad := []MSDCurve{
		{{Lag: 1, LagTime: 1, MSD: 1}, {Lag: 2, LagTime: 2, MSD: 0}},
		{{Lag: 0, LagTime: 0, MSD: 1}, {Lag: 1, LagTime: 1, MSD: 1}},
		{{Lag: 1, LagTime: 1, MSD: -1}, {Lag: 2, LagTime: 2, MSD: 2}},
		{{Lag: 1, LagTime: 1, MSD: 1}},
		{},
	}
	for i, curve := range bad {
		_, err := FitPowerLaw(curve)
		require.Error(t, err, "curve %d", i)
		assert.Equal(t, KindMathDomain, KindOf(err), "curve %d", i)
	}
}

func TestCartToPolar(t *testing.T) {
	r, theta := CartToPolar(3, 4, false)
	assert.InDelta(t, 5.0, r, eps)
	assert.InDelta(t, math.Atan2(4, 3), theta, eps)

	r, theta = CartToPolar(0, -2, true)
	assert.InDelta(t, 2.0, r, eps)
	assert.InDelta(t, -90.0, theta, eps)
}
