package mr

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DriftRecord is a point of drift (or drift uncertainty) curve
type DriftRecord struct {
	Frame int
	X     float64
	Y     float64
	// N is the number of pooled lag-1 displacements (uncertainty curve only).
	// Interpolated for frames without displacements, zero at the origin.
	N float64
}

// DriftCurve is cumulative ensemble displacement in pixels, ordered by frame.
// The first record is the origin of integration and is always (0, 0).
type DriftCurve []DriftRecord

// UncertaintyCurve has the same frames as DriftCurve and holds the per-frame
// standard deviation of lag-1 displacements across probes.
type UncertaintyCurve []DriftRecord

// StandardError returns the standard error of the mean drift increment, std/sqrt(N), per frame.
// Records with no pooled displacements are kept as is.
func (curve UncertaintyCurve) StandardError() UncertaintyCurve {
	ans := make(UncertaintyCurve, len(curve))
	for i, record := range curve {
		ans[i] = record
		if record.N > 0 {
			ans[i].X = record.X / math.Sqrt(record.N)
			ans[i].Y = record.Y / math.Sqrt(record.N)
		}
	}
	return ans
}

// Polar returns magnitude and direction of the cumulative drift for every record
func (curve DriftCurve) Polar(degrees bool) (r []float64, theta []float64) {
	r = make([]float64, len(curve))
	theta = make([]float64, len(curve))
	for i, record := range curve {
		r[i], theta[i] = CartToPolar(record.X, record.Y, degrees)
	}
	return r, theta
}

type frameSteps struct {
	dx []float64
	dy []float64
}

// Drift estimates the ensemble drift x(t) from lag-1 displacements of all trajectories.
// Displacements across a gap (missed frame) are excluded. Frames without any lag-1
// displacement are filled by linear interpolation of neighbouring increments.
func Drift(trajs []Trajectory) (DriftCurve, UncertaintyCurve, error) {
	pooled := make(map[int]*frameSteps)
	for _, traj := range trajs {
		for i := 1; i < len(traj.Samples); i++ {
			prev, cur := traj.Samples[i-1], traj.Samples[i]
			if cur.Frame-prev.Frame != 1 {
				continue
			}
			steps, ok := pooled[cur.Frame]
			if !ok {
				steps = &frameSteps{}
				pooled[cur.Frame] = steps
			}
			steps.dx = append(steps.dx, cur.X-prev.X)
			steps.dy = append(steps.dy, cur.Y-prev.Y)
		}
	}
	if len(pooled) == 0 {
		return DriftCurve{}, UncertaintyCurve{}, nil
	}

	frames := make([]int, 0, len(pooled))
	for frame := range pooled {
		frames = append(frames, frame)
	}
	sort.Ints(frames)

	// Trajectories reuse Interp to fill the frames absent from the lag-1 set
	increments := Trajectory{Samples: make([]Sample, len(frames))}
	deviations := Trajectory{Samples: make([]Sample, len(frames))}
	for i, frame := range frames {
		steps := pooled[frame]
		meanX, stdX := stat.PopMeanStdDev(steps.dx, nil)
		meanY, stdY := stat.PopMeanStdDev(steps.dy, nil)
		increments.Samples[i] = Sample{Frame: frame, X: meanX, Y: meanY}
		// Mass channel carries the pool size through interpolation
		deviations.Samples[i] = Sample{Frame: frame, X: stdX, Y: stdY, Mass: float64(len(steps.dx))}
	}
	if len(frames) > 1 {
		var err error
		increments, err = Interp(increments)
		if err != nil {
			return nil, nil, err
		}
		deviations, err = Interp(deviations)
		if err != nil {
			return nil, nil, err
		}
	}

	n := len(increments.Samples)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, sample := range increments.Samples {
		xs[i] = sample.X
		ys[i] = sample.Y
	}
	floats.CumSum(xs, xs)
	floats.CumSum(ys, ys)

	origin := increments.FirstFrame() - 1
	drift := make(DriftCurve, 0, n+1)
	uncertainty := make(UncertaintyCurve, 0, n+1)
	drift = append(drift, DriftRecord{Frame: origin})
	uncertainty = append(uncertainty, DriftRecord{Frame: origin})
	for i := 0; i < n; i++ {
		drift = append(drift, DriftRecord{Frame: increments.Samples[i].Frame, X: xs[i], Y: ys[i]})
		dev := deviations.Samples[i]
		uncertainty = append(uncertainty, DriftRecord{Frame: dev.Frame, X: dev.X, Y: dev.Y, N: dev.Mass})
	}
	Diagf("drift estimated over frames %d..%d from %d probes", origin, drift[len(drift)-1].Frame, len(trajs))
	return drift, uncertainty, nil
}

// SubtractDrift returns copies of trajectories with the drift subtracted out.
// A nil drift is estimated from trajs first. Only frames present both in the drift
// curve and in a trajectory are shifted; inputs are never modified.
func SubtractDrift(trajs []Trajectory, drift DriftCurve) ([]Trajectory, error) {
	if drift == nil {
		var err error
		drift, _, err = Drift(trajs)
		if err != nil {
			return nil, err
		}
	}
	offsets := make(map[int]DriftRecord, len(drift))
	for _, record := range drift {
		offsets[record.Frame] = record
	}
	corrected := make([]Trajectory, len(trajs))
	for i, traj := range trajs {
		corrected[i] = traj.Clone()
		samples := corrected[i].Samples
		for j := range samples {
			offset, ok := offsets[samples[j].Frame]
			if !ok {
				continue
			}
			samples[j].X -= offset.X
			samples[j].Y -= offset.Y
		}
	}
	return corrected, nil
}
