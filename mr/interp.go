package mr

import (
	"gonum.org/v1/gonum/interp"
)

// channels are the per-sample values Interp interpolates independently
var channels = [5]func(s *Sample) *float64{
	func(s *Sample) *float64 { return &s.X },
	func(s *Sample) *float64 { return &s.Y },
	func(s *Sample) *float64 { return &s.Mass },
	func(s *Sample) *float64 { return &s.Size },
	func(s *Sample) *float64 { return &s.Ecc },
}

// Interp fills the missing frames of trajectory by linear interpolation.
// Result has one sample for every frame in [first frame, last frame]; every channel
// (x, y, mass, size, ecc) is interpolated independently. Observed frames keep their
// values as is. No extrapolation happens.
func Interp(traj Trajectory) (Trajectory, error) {
	n := len(traj.Samples)
	if n < 2 {
		return Trajectory{}, newError(KindMathDomain, "interp", "need at least 2 samples to interpolate probe %d, got %d", traj.Probe, n)
	}
	frames := make([]float64, n)
	for i, sample := range traj.Samples {
		if i > 0 && sample.Frame <= traj.Samples[i-1].Frame {
			return Trajectory{}, newError(KindMathDomain, "interp", "probe %d: frames are not strictly increasing at sample %d", traj.Probe, i)
		}
		frames[i] = float64(sample.Frame)
	}

	first, last := traj.FirstFrame(), traj.LastFrame()
	full := make([]Sample, last-first+1)
	observed := make([]bool, len(full))
	for i := range full {
		full[i].Frame = first + i
	}
	for _, sample := range traj.Samples {
		idx := sample.Frame - first
		full[idx] = sample
		observed[idx] = true
	}
	if n == len(full) {
		return Trajectory{Probe: traj.Probe, Samples: full}, nil
	}

	values := make([]float64, n)
	for _, channel := range channels {
		for i := range traj.Samples {
			values[i] = *channel(&traj.Samples[i])
		}
		var pl interp.PiecewiseLinear
		if err := pl.Fit(frames, values); err != nil {
			return Trajectory{}, newError(KindMathDomain, "interp", "probe %d: %v", traj.Probe, err)
		}
		for i := range full {
			if observed[i] {
				continue
			}
			*channel(&full[i]) = pl.Predict(float64(full[i].Frame))
		}
	}
	return Trajectory{
		Probe:   traj.Probe,
		Samples: full,
	}, nil
}
