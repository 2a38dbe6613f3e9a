package mr

const (
	// DefaultDiffusiveThreshold: exponent above it means diffusive motion
	DefaultDiffusiveThreshold = 0.85
	// DefaultLocalizedThreshold: exponent below it means localized motion
	DefaultLocalizedThreshold = 0.4
	// DefaultUnphysicalThreshold is the largest plausible MSD at lag 1 (microns^2)
	DefaultUnphysicalThreshold = 0.08
)

// MotionClass is mobility class of a probe
type MotionClass uint8

const (
	Diffusive MotionClass = iota
	Localized
	Subdiffusive
)

func (c MotionClass) String() string {
	switch c {
	case Diffusive:
		return "diffusive"
	case Localized:
		return "localized"
	case Subdiffusive:
		return "subdiffusive"
	default:
		return "unknown"
	}
}

// Exponent returns the power-law exponent of unit-less MSD (1 micron per pixel, 1 fps)
func Exponent(traj Trajectory) (float64, error) {
	curve, err := MSD(traj, 1.0, 1.0)
	if err != nil {
		return 0, err
	}
	fit, err := FitPowerLaw(curve)
	if err != nil {
		return 0, err
	}
	return fit.Exponent, nil
}

// IsLocalized reports whether probe's motion is localized: exponent < threshold
func IsLocalized(traj Trajectory, threshold float64) (bool, error) {
	exponent, err := Exponent(traj)
	if err != nil {
		return false, err
	}
	return exponent < threshold, nil
}

// IsDiffusive reports whether probe's motion is diffusive: exponent > threshold
func IsDiffusive(traj Trajectory, threshold float64) (bool, error) {
	exponent, err := Exponent(traj)
	if err != nil {
		return false, err
	}
	return exponent > threshold, nil
}

// IsUnphysical reports whether the first MSD point is unphysically high.
// This is sometimes an artifact of uneven drift.
func IsUnphysical(traj Trajectory, micronsPerPixel, framesPerSecond, threshold float64) (bool, error) {
	curve, err := MSD(traj, micronsPerPixel, framesPerSecond, WithMaxInterval(1))
	if err != nil {
		return false, err
	}
	if len(curve) == 0 {
		return false, nil
	}
	return curve[0].MSD > threshold, nil
}

// Classify maps exponent to a motion class. Localized wins over diffusive
// when thresholds overlap, so every exponent gets exactly one class.
func Classify(exponent, diffusiveThreshold, localizedThreshold float64) MotionClass {
	switch {
	case exponent < localizedThreshold:
		return Localized
	case exponent > diffusiveThreshold:
		return Diffusive
	default:
		return Subdiffusive
	}
}

// SplitBranches sorts probes into three disjoint lists by mobility.
// Every trajectory lands in exactly one of them.
func SplitBranches(trajs []Trajectory, diffusiveThreshold, localizedThreshold float64) (diffusive, localized, subdiffusive []Trajectory, err error) {
	exponents, err := mapTrajectories(trajs, Exponent)
	if err != nil {
		return nil, nil, nil, err
	}
	diffusive = make([]Trajectory, 0)
	localized = make([]Trajectory, 0)
	subdiffusive = make([]Trajectory, 0)
	for i, exponent := range exponents {
		switch Classify(exponent, diffusiveThreshold, localizedThreshold) {
		case Diffusive:
			diffusive = append(diffusive, trajs[i])
		case Localized:
			localized = append(localized, trajs[i])
		default:
			subdiffusive = append(subdiffusive, trajs[i])
		}
	}
	Diagf("%d diffusive, %d localized, %d subdiffusive", len(diffusive), len(localized), len(subdiffusive))
	return diffusive, localized, subdiffusive, nil
}
