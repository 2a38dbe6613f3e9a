package mr

import (
	"sort"
)

// EnsembleMSD averages per-probe MSD curves at matching lags.
// Input is in pixels and frames, output is in microns and seconds.
// Records are grouped by integer lag, never by floating point lag time.
func EnsembleMSD(trajs []Trajectory, micronsPerPixel, framesPerSecond float64, opts ...MSDOption) (MSDCurve, error) {
	Diagf("%.3f microns per pixel, %.3f fps", micronsPerPixel, framesPerSecond)
	opts = append(opts[:len(opts):len(opts)], func(o *msdOptions) { o.detail = false })
	curves, err := mapTrajectories(trajs, func(traj Trajectory) (MSDCurve, error) {
		return MSD(traj, micronsPerPixel, framesPerSecond, opts...)
	})
	if err != nil {
		return nil, err
	}

	type accumulator struct {
		lagTime float64
		msd     float64
		count   int
	}
	groups := make(map[int]*accumulator)
	for _, curve := range curves {
		for _, record := range curve {
			acc, ok := groups[record.Lag]
			if !ok {
				acc = &accumulator{}
				groups[record.Lag] = acc
			}
			acc.lagTime += record.LagTime
			acc.msd += record.MSD
			acc.count++
		}
	}

	lags := make([]int, 0, len(groups))
	for lag := range groups {
		lags = append(lags, lag)
	}
	sort.Ints(lags)
	ensemble := make(MSDCurve, len(lags))
	for i, lag := range lags {
		acc := groups[lag]
		n := float64(acc.count)
		ensemble[i] = MSDRecord{
			Lag:     lag,
			LagTime: acc.lagTime / n,
			MSD:     acc.msd / n,
		}
	}
	return ensemble, nil
}

// EnsembleFit computes the ensemble MSD curve and its power-law fit
func EnsembleFit(trajs []Trajectory, micronsPerPixel, framesPerSecond float64, opts ...MSDOption) (MSDCurve, PowerLaw, error) {
	curve, err := EnsembleMSD(trajs, micronsPerPixel, framesPerSecond, opts...)
	if err != nil {
		return nil, PowerLaw{}, err
	}
	fit, err := FitPowerLaw(curve)
	if err != nil {
		return curve, PowerLaw{}, err
	}
	Diagf("ensemble power law: exponent %.3f, coefficient %.4g", fit.Exponent, fit.Coefficient)
	return curve, fit, nil
}
