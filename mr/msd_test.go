package mr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplacement(t *testing.T) {
	series := []float64{1, 4, 9, 16, 25}
	assert.Equal(t, []float64{3, 5, 7, 9}, Displacement(series, 1))
	assert.Equal(t, []float64{8, 12, 16}, Displacement(series, 2))
	assert.Equal(t, []float64{24}, Displacement(series, 4))

	for _, lag := range []int{5, 6, 100} {
		d := Displacement(series, lag)
		assert.NotNil(t, d)
		assert.Len(t, d, 0)
	}
	for lag := 1; lag < 8; lag++ {
		expected := len(series) - lag
		if expected < 0 {
			expected = 0
		}
		assert.Len(t, Displacement(series, lag), expected, "lag %d", lag)
	}
	assert.Panics(t, func() { Displacement(series, 0) })
	assert.Panics(t, func() { Displacement(series, -3) })
}

func ballisticTrajectory(frames int) Trajectory {
	samples := make([]Sample, frames)
	for i := range samples {
		samples[i] = Sample{Frame: i, X: float64(i), Y: 7.0}
	}
	return Trajectory{Samples: samples}
}

func TestMSDSimple(t *testing.T) {
	// 11 frames: span is 10, so the default max interval (50) is capped to 10
	curve, err := MSD(ballisticTrajectory(11), 0.5, 10.0)
	require.NoError(t, err)
	require.Len(t, curve, 10)
	for i, record := range curve {
		lag := i + 1
		assert.Equal(t, lag, record.Lag)
		assert.InDelta(t, float64(lag)/10.0, record.LagTime, eps)
		assert.InDelta(t, 0.25*float64(lag*lag), record.MSD, eps)
		assert.Zero(t, record.N)
		assert.Zero(t, record.MeanDX)
	}
}

func TestMSDLagTimesIncreasing(t *testing.T) {
	traj := walkTrajectory(21, 300, 0.0)
	curve, err := MSD(traj, 0.1, 24.0, WithMaxInterval(30))
	require.NoError(t, err)
	require.Len(t, curve, 30)
	for i := 1; i < len(curve); i++ {
		assert.Greater(t, curve[i].LagTime, curve[i-1].LagTime)
	}
	assert.InDelta(t, 30.0/24.0, curve[len(curve)-1].LagTime, eps)
}

func TestMSDDetailed(t *testing.T) {
	curve, err := MSD(ballisticTrajectory(11), 0.5, 10.0, WithDetail(), WithMaxInterval(5))
	require.NoError(t, err)
	require.Len(t, curve, 5)

	// count of displacements is 11 - lag; N = round_half_even(2*count/lag)
	correctN := []float64{20, 9, 5, 4, 2}
	for i, record := range curve {
		lag := float64(i + 1)
		assert.InDelta(t, 0.5*lag, record.MeanDX, eps)
		assert.InDelta(t, 0.0, record.MeanDY, eps)
		assert.InDelta(t, 0.5*lag, record.MeanDR, eps)
		assert.InDelta(t, 0.25*lag*lag, record.MeanSqDX, eps)
		assert.InDelta(t, 0.0, record.MeanSqDY, eps)
		assert.InDelta(t, record.MSD, record.MeanSqDR, eps)
		assert.Equal(t, correctN[i], record.N, "lag %v", lag)
	}
}

func TestMSDInterpolatesGaps(t *testing.T) {
	traj := Trajectory{Samples: []Sample{
		{Frame: 0, X: 0},
		{Frame: 1, X: 1},
		{Frame: 3, X: 3},
		{Frame: 4, X: 4},
	}}
	curve, err := MSD(traj, 1.0, 1.0)
	require.NoError(t, err)
	require.Len(t, curve, 4)
	assert.InDelta(t, 1.0, curve[0].MSD, eps)
	assert.InDelta(t, 16.0, curve[3].MSD, eps)
}

func TestMSDTooShort(t *testing.T) {
	_, err := MSD(Trajectory{Samples: []Sample{{Frame: 1}}}, 1.0, 1.0)
	require.Error(t, err)
	assert.Equal(t, KindMathDomain, KindOf(err))
}
