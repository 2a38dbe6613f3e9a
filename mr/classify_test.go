package mr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyScenario(t *testing.T) {
	localized := jitterTrajectory(1, 1000, 0.1)
	localized.Probe = 1
	diffusive := walkTrajectory(2, 10000, 0.0)
	diffusive.Probe = 2
	subdiffusive := walkTrajectory(4, 10000, 1.8)
	subdiffusive.Probe = 3

	exponent, err := Exponent(localized)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, exponent, 0.2)
	exponent, err = Exponent(diffusive)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, exponent, 0.1)
	exponent, err = Exponent(subdiffusive)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, exponent, 0.1)

	ok, err := IsLocalized(localized, DefaultLocalizedThreshold)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = IsDiffusive(localized, DefaultDiffusiveThreshold)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsDiffusive(diffusive, DefaultDiffusiveThreshold)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = IsLocalized(diffusive, DefaultLocalizedThreshold)
	require.NoError(t, err)
	assert.False(t, ok)

	d, l, s, err := SplitBranches([]Trajectory{subdiffusive, diffusive, localized}, DefaultDiffusiveThreshold, DefaultLocalizedThreshold)
	require.NoError(t, err)
	require.Len(t, d, 1)
	require.Len(t, l, 1)
	require.Len(t, s, 1)
	assert.Equal(t, 2, d[0].Probe)
	assert.Equal(t, 1, l[0].Probe)
	assert.Equal(t, 3, s[0].Probe)
}

func TestSplitBranchesIsPartition(t *testing.T) {
	trajs := make([]Trajectory, 0, 12)
	for i := 0; i < 4; i++ {
		trajs = append(trajs, jitterTrajectory(uint64(10+i), 400, 0.5))
		trajs = append(trajs, walkTrajectory(uint64(20+i), 2000, 0.0))
		trajs = append(trajs, walkTrajectory(uint64(30+i), 2000, 1.8))
	}
	for i := range trajs {
		trajs[i].Probe = i
	}
	// overlapping thresholds must not put a probe in two buckets
	for _, thresholds := range [][2]float64{{0.85, 0.4}, {0.3, 0.9}, {0.6, 0.6}} {
		d, l, s, err := SplitBranches(trajs, thresholds[0], thresholds[1])
		require.NoError(t, err)
		assert.Equal(t, len(trajs), len(d)+len(l)+len(s))
		seen := make(map[int]int)
		for _, bucket := range [][]Trajectory{d, l, s} {
			for _, traj := range bucket {
				seen[traj.Probe]++
			}
		}
		require.Len(t, seen, len(trajs))
		for probe, times := range seen {
			assert.Equal(t, 1, times, "probe %d", probe)
		}
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Localized, Classify(0.1, 0.85, 0.4))
	assert.Equal(t, Diffusive, Classify(0.9, 0.85, 0.4))
	assert.Equal(t, Subdiffusive, Classify(0.6, 0.85, 0.4))
	assert.Equal(t, Subdiffusive, Classify(0.4, 0.85, 0.4))
	assert.Equal(t, Subdiffusive, Classify(0.85, 0.85, 0.4))
	assert.Equal(t, Localized, Classify(0.5, 0.3, 0.9))
	assert.Equal(t, "subdiffusive", Subdiffusive.String())
}

func TestIsUnphysical(t *testing.T) {
	// unit steps in pixels; at 0.1 micron per pixel lag-1 msd is about 0.02 micron^2
	traj := walkTrajectory(41, 500, 0.0)
	ok, err := IsUnphysical(traj, 0.1, 30.0, DefaultUnphysicalThreshold)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsUnphysical(traj, 1.0, 30.0, DefaultUnphysicalThreshold)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClassifyStationaryFails(t *testing.T) {
	// zero msd is outside of the log domain
	traj := Trajectory{Samples: []Sample{{Frame: 0, X: 1}, {Frame: 1, X: 1}, {Frame: 2, X: 1}}}
	_, err := IsLocalized(traj, DefaultLocalizedThreshold)
	require.Error(t, err)
	assert.Equal(t, KindMathDomain, KindOf(err))
	_, _, _, err = SplitBranches([]Trajectory{traj}, DefaultDiffusiveThreshold, DefaultLocalizedThreshold)
	require.Error(t, err)
}
