package mr

// Sample is a single observation of a probe at some frame.
// Mass, Size and Ecc are optional (zero when the tracker does not report them).
type Sample struct {
	Frame int
	X     float64
	Y     float64
	Mass  float64
	Size  float64
	Ecc   float64
}

// Detection is one row of a Track Array: [probe_id, frame, x, y, mass, size, ecc]
type Detection struct {
	Probe int
	Sample
}

// Trajectory is the ordered sequence of samples of a single probe.
// Frames are strictly increasing but may contain gaps.
type Trajectory struct {
	Probe   int
	Samples []Sample
}

// Len returns number of samples
func (traj Trajectory) Len() int {
	return len(traj.Samples)
}

// FirstFrame returns frame of the first sample. Trajectory must not be empty.
func (traj Trajectory) FirstFrame() int {
	return traj.Samples[0].Frame
}

// LastFrame returns frame of the last sample. Trajectory must not be empty.
func (traj Trajectory) LastFrame() int {
	return traj.Samples[len(traj.Samples)-1].Frame
}

// Clone returns a deep copy of trajectory
func (traj Trajectory) Clone() Trajectory {
	samples := make([]Sample, len(traj.Samples))
	copy(samples, traj.Samples)
	return Trajectory{
		Probe:   traj.Probe,
		Samples: samples,
	}
}

// Probes is the closed set of shapes the probe data can take: TrackArray or ProbeList.
type Probes interface {
	isProbes()
}

// TrackArray is a flat list of detections of all probes.
// Sorted by probe identifier, then by frame; detections of a probe are contiguous.
type TrackArray []Detection

// ProbeList is a list of per-probe trajectories
type ProbeList []Trajectory

func (TrackArray) isProbes() {}
func (ProbeList) isProbes()  {}

// OutputStyle selects the shape CastProbes produces
type OutputStyle string

const (
	StyleTrackArray = OutputStyle("track array")
	StyleProbes     = OutputStyle("probes")
)

// ParseOutputStyle accepts exactly "track array" or "probes"
func ParseOutputStyle(s string) (OutputStyle, error) {
	switch OutputStyle(s) {
	case StyleTrackArray, StyleProbes:
		return OutputStyle(s), nil
	default:
		return "", newError(KindValue, "parse output style", "output style must be %q or %q, got %q", StyleTrackArray, StyleProbes, s)
	}
}

// Validate checks ordering of the track array: probe identifiers never decrease
// and frames strictly increase inside every probe.
func (ta TrackArray) Validate() error {
	for i := 1; i < len(ta); i++ {
		prev, cur := ta[i-1], ta[i]
		if cur.Probe < prev.Probe {
			return newError(KindValue, "validate track array", "probe id decreases at row %d (%d after %d)", i, cur.Probe, prev.Probe)
		}
		if cur.Probe == prev.Probe && cur.Frame <= prev.Frame {
			return newError(KindValue, "validate track array", "frame does not increase at row %d for probe %d (%d after %d)", i, cur.Probe, cur.Frame, prev.Frame)
		}
	}
	return nil
}

// SplitByProbe splits the track array at every strict increase of the probe identifier.
// Returned trajectories own their samples.
func SplitByProbe(ta TrackArray) (ProbeList, error) {
	if err := ta.Validate(); err != nil {
		return nil, err
	}
	probes := make(ProbeList, 0)
	start := 0
	for i := 1; i <= len(ta); i++ {
		if i < len(ta) && ta[i].Probe <= ta[i-1].Probe {
			continue
		}
		samples := make([]Sample, i-start)
		for j := start; j < i; j++ {
			samples[j-start] = ta[j].Sample
		}
		probes = append(probes, Trajectory{
			Probe:   ta[start].Probe,
			Samples: samples,
		})
		start = i
	}
	return probes, nil
}

// Probes is shorthand for SplitByProbe
func (ta TrackArray) Probes() (ProbeList, error) {
	return SplitByProbe(ta)
}

// TrackArray concatenates trajectories into a single track array, in list order
func (probes ProbeList) TrackArray() TrackArray {
	total := 0
	for _, traj := range probes {
		total += len(traj.Samples)
	}
	ta := make(TrackArray, 0, total)
	for _, traj := range probes {
		for _, sample := range traj.Samples {
			ta = append(ta, Detection{Probe: traj.Probe, Sample: sample})
		}
	}
	return ta
}

// CastProbes returns the input in requested shape.
// Input already in that shape is returned unchanged.
func CastProbes(input Probes, style OutputStyle) (Probes, error) {
	switch style {
	case StyleTrackArray:
		switch v := input.(type) {
		case TrackArray:
			return v, nil
		case ProbeList:
			return v.TrackArray(), nil
		}
	case StyleProbes:
		switch v := input.(type) {
		case ProbeList:
			return v, nil
		case TrackArray:
			return SplitByProbe(v)
		}
	default:
		return nil, newError(KindValue, "cast probes", "output style must be %q or %q, got %q", StyleTrackArray, StyleProbes, style)
	}
	return nil, newError(KindType, "cast probes", "input must be either track array or list of probes, got %T", input)
}
