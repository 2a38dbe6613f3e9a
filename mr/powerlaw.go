package mr

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PowerLaw is msd = Coefficient * lagTime^Exponent
type PowerLaw struct {
	Exponent    float64
	Coefficient float64
}

// Predict evaluates the power law at given lag time
func (pl PowerLaw) Predict(lagTime float64) float64 {
	return pl.Coefficient * math.Pow(lagTime, pl.Exponent)
}

// FitPowerLaw fits a power law to MSD curve by ordinary least squares of ln(msd) on ln(lag time).
// There is no additive constant: msd = 0 + coefficient * lagTime^exponent.
func FitPowerLaw(curve MSDCurve) (PowerLaw, error) {
	if len(curve) < 2 {
		return PowerLaw{}, newError(KindMathDomain, "fit power law", "need at least 2 points, got %d", len(curve))
	}
	logT := make([]float64, len(curve))
	logM := make([]float64, len(curve))
	for i, record := range curve {
		if !(record.LagTime > 0) || !(record.MSD > 0) {
			return PowerLaw{}, newError(KindMathDomain, "fit power law", "non-positive value at lag %d: lag time %v, msd %v", record.Lag, record.LagTime, record.MSD)
		}
		logT[i] = math.Log(record.LagTime)
		logM[i] = math.Log(record.MSD)
	}
	intercept, slope := stat.LinearRegression(logT, logM, nil, false)
	return PowerLaw{
		Exponent:    slope,
		Coefficient: math.Exp(intercept),
	}, nil
}

// CartToPolar converts Cartesian x, y to r, theta. Theta is in radians unless degrees is set.
func CartToPolar(x, y float64, degrees bool) (r, theta float64) {
	conversion := 1.0
	if degrees {
		conversion = 180.0 / math.Pi
	}
	return math.Hypot(x, y), conversion * math.Atan2(y, x)
}
