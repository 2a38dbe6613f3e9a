package mr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrackArray() TrackArray {
	return TrackArray{
		{Probe: 0, Sample: Sample{Frame: 0, X: 1.0, Y: 2.0, Mass: 10}},
		{Probe: 0, Sample: Sample{Frame: 1, X: 1.5, Y: 2.5, Mass: 11}},
		{Probe: 0, Sample: Sample{Frame: 3, X: 2.0, Y: 3.0, Mass: 12}},
		{Probe: 2, Sample: Sample{Frame: 1, X: 10.0, Y: 20.0}},
		{Probe: 2, Sample: Sample{Frame: 2, X: 11.0, Y: 21.0}},
		{Probe: 5, Sample: Sample{Frame: 7, X: 0.0, Y: 0.0, Ecc: 0.2}},
	}
}

func TestSplitByProbe(t *testing.T) {
	probes, err := SplitByProbe(sampleTrackArray())
	require.NoError(t, err)
	require.Len(t, probes, 3)

	assert.Equal(t, 0, probes[0].Probe)
	assert.Equal(t, 3, probes[0].Len())
	assert.Equal(t, 3, probes[0].LastFrame())
	assert.Equal(t, 2, probes[1].Probe)
	assert.Equal(t, 2, probes[1].Len())
	assert.Equal(t, 5, probes[2].Probe)
	assert.Equal(t, 0.2, probes[2].Samples[0].Ecc)
}

func TestSplitByProbeEmpty(t *testing.T) {
	probes, err := SplitByProbe(TrackArray{})
	require.NoError(t, err)
	assert.Empty(t, probes)
}

func TestSplitByProbeUnsorted(t *testing.T) {
	ta := sampleTrackArray()
	ta[3], ta[5] = ta[5], ta[3]
	_, err := SplitByProbe(ta)
	require.Error(t, err)
	assert.Equal(t, KindValue, KindOf(err))

	ta = sampleTrackArray()
	ta[1].Frame = 0
	_, err = SplitByProbe(ta)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValue))
}

func TestSplitByProbeNoAliasing(t *testing.T) {
	ta := sampleTrackArray()
	probes, err := SplitByProbe(ta)
	require.NoError(t, err)
	probes[0].Samples[0].X = 1000
	assert.Equal(t, 1.0, ta[0].X)
}

func TestCastProbesRoundTrip(t *testing.T) {
	ta := sampleTrackArray()
	asProbes, err := CastProbes(ta, StyleProbes)
	require.NoError(t, err)
	probes, ok := asProbes.(ProbeList)
	require.True(t, ok)
	require.Len(t, probes, 3)

	back, err := CastProbes(probes, StyleTrackArray)
	require.NoError(t, err)
	assert.Equal(t, ta, back)
}

func TestCastProbesUnchanged(t *testing.T) {
	ta := sampleTrackArray()
	same, err := CastProbes(ta, StyleTrackArray)
	require.NoError(t, err)
	assert.Equal(t, ta, same)

	probes, err := ta.Probes()
	require.NoError(t, err)
	sameProbes, err := CastProbes(probes, StyleProbes)
	require.NoError(t, err)
	assert.Equal(t, probes, sameProbes)
}

func TestCastProbesErrors(t *testing.T) {
	_, err := CastProbes(nil, StyleProbes)
	require.Error(t, err)
	assert.Equal(t, KindType, KindOf(err))

	_, err = CastProbes(sampleTrackArray(), OutputStyle("rows"))
	require.Error(t, err)
	assert.Equal(t, KindValue, KindOf(err))

	_, err = ParseOutputStyle("Probes")
	require.Error(t, err)
	assert.Equal(t, KindValue, KindOf(err))

	style, err := ParseOutputStyle("track array")
	require.NoError(t, err)
	assert.Equal(t, StyleTrackArray, style)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.False(t, IsKind(nil, KindUnknown))
}
