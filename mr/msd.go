package mr

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultMaxInterval is the largest lag (in frames) MSD evaluates by default
const DefaultMaxInterval = 50

// MSDRecord is one point of an MSD curve. Input is in pixels and frames,
// output is in microns and seconds.
type MSDRecord struct {
	// Lag in frames. Ensemble grouping is keyed by this value.
	Lag int
	// LagTime is Lag / framesPerSecond
	LagTime float64
	// MSD is the mean of dx^2 + dy^2
	MSD float64

	// Fields below are filled in detailed mode only

	MeanDX float64
	MeanDY float64
	// MeanDR is the mean of dx + dy
	MeanDR float64
	// Second moments (about zero) of the displacements: <dx^2>, <dy^2>, <dx^2 + dy^2>
	MeanSqDX float64
	MeanSqDY float64
	MeanSqDR float64
	// N estimates the number of statistically independent displacements: round(2*count/lag)
	N float64
}

// MSDCurve is a list of MSD records ordered by increasing lag
type MSDCurve []MSDRecord

// LagTimes returns lag times of the curve
func (curve MSDCurve) LagTimes() []float64 {
	ans := make([]float64, len(curve))
	for i := range curve {
		ans[i] = curve[i].LagTime
	}
	return ans
}

// Values returns MSD values of the curve
func (curve MSDCurve) Values() []float64 {
	ans := make([]float64, len(curve))
	for i := range curve {
		ans[i] = curve[i].MSD
	}
	return ans
}

type msdOptions struct {
	maxInterval int
	detail      bool
}

// MSDOption tunes MSD computation
type MSDOption func(*msdOptions)

// WithMaxInterval sets the largest lag in frames. Non-positive values keep the default.
func WithMaxInterval(maxInterval int) MSDOption {
	return func(o *msdOptions) {
		if maxInterval > 0 {
			o.maxInterval = maxInterval
		}
	}
}

// WithDetail makes MSD fill every field of MSDRecord
func WithDetail() MSDOption {
	return func(o *msdOptions) {
		o.detail = true
	}
}

func newMSDOptions(opts []MSDOption) msdOptions {
	options := msdOptions{
		maxInterval: DefaultMaxInterval,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Displacement returns series[i+lag] - series[i] for every valid i.
// Empty (not nil) result for lag >= len(series).
// Lag below 1 is a programming error and panics; MSD never passes one.
func Displacement(series []float64, lag int) []float64 {
	if lag < 1 {
		panic("mr: displacement lag must be positive")
	}
	if lag >= len(series) {
		return []float64{}
	}
	ans := make([]float64, len(series)-lag)
	floats.SubTo(ans, series[lag:], series[:len(series)-lag])
	return ans
}

// MSD computes the mean squared displacement of trajectory for lags 1..maxInterval.
// maxInterval is capped to the frame span of the trajectory. Gaps are interpolated first,
// so a lag always references truly adjacent frames.
func MSD(traj Trajectory, micronsPerPixel, framesPerSecond float64, opts ...MSDOption) (MSDCurve, error) {
	options := newMSDOptions(opts)
	full, err := Interp(traj)
	if err != nil {
		return nil, err
	}
	span := full.LastFrame() - full.FirstFrame()
	maxInterval := options.maxInterval
	if maxInterval > span {
		maxInterval = span
	}

	xs := make([]float64, len(full.Samples))
	ys := make([]float64, len(full.Samples))
	for i, sample := range full.Samples {
		xs[i] = micronsPerPixel * sample.X
		ys[i] = micronsPerPixel * sample.Y
	}

	curve := make(MSDCurve, 0, maxInterval)
	for lag := 1; lag <= maxInterval; lag++ {
		dx := Displacement(xs, lag)
		dy := Displacement(ys, lag)
		record := MSDRecord{
			Lag:     lag,
			LagTime: float64(lag) / framesPerSecond,
		}
		sqdx := make([]float64, len(dx))
		floats.MulTo(sqdx, dx, dx)
		sqdy := make([]float64, len(dy))
		floats.MulTo(sqdy, dy, dy)
		sqdr := make([]float64, len(dx))
		floats.AddTo(sqdr, sqdx, sqdy)
		record.MSD = stat.Mean(sqdr, nil)
		if options.detail {
			dr := make([]float64, len(dx))
			floats.AddTo(dr, dx, dy)
			record.MeanDX = stat.Mean(dx, nil)
			record.MeanDY = stat.Mean(dy, nil)
			record.MeanDR = stat.Mean(dr, nil)
			record.MeanSqDX = stat.Mean(sqdx, nil)
			record.MeanSqDY = stat.Mean(sqdy, nil)
			record.MeanSqDR = record.MSD
			record.N = math.RoundToEven(2 * float64(len(dx)) / float64(lag))
		}
		curve = append(curve, record)
	}
	return curve, nil
}
