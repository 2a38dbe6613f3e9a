package mot

import (
	"math"

	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/LdDl/mr-go/mr"
)

// Particle is a probe being linked across frames.
// Recorded samples are raw detections: Kalman filter (when enabled) only drives the
// predicted position used for gating and never alters the stored track.
type Particle struct {
	id                    uuid.UUID
	track                 []mr.Sample
	predictedNextPosition Point
	noMatchTimes          int
	tracker               *kalman_filter.Kalman2D
}

// NewParticle creates particle from its first detection without motion prediction
func NewParticle(first mr.Sample) *Particle {
	return &Particle{
		id:                    uuid.New(),
		track:                 []mr.Sample{first},
		predictedNextPosition: NewPointFrom(first),
	}
}

// NewParticleWithTime creates particle which predicts its next position via 2D Kalman filter.
// dt is the time between frames.
func NewParticleWithTime(first mr.Sample, dt float64) *Particle {
	/* Kalman filter props: no control input, Brownian-like acceleration noise */
	ux := 0.0
	uy := 0.0
	stdDevA := 1.0
	stdDevMx := 0.5
	stdDevMy := 0.5
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(first.X, first.Y))
	particle := NewParticle(first)
	particle.tracker = kf
	return particle
}

// GetID returns particle's identifier
func (particle *Particle) GetID() uuid.UUID {
	return particle.id
}

// GetTrack returns particle's samples. Be careful: this is not copy of track, but reference to it
func (particle *Particle) GetTrack() []mr.Sample {
	return particle.track
}

// Len returns number of frames particle was seen at
func (particle *Particle) Len() int {
	return len(particle.track)
}

// Last returns the latest detection of particle
func (particle *Particle) Last() mr.Sample {
	return particle.track[len(particle.track)-1]
}

// GetPredicted returns predicted position for the next frame
func (particle *Particle) GetPredicted() Point {
	return particle.predictedNextPosition
}

// GetNoMatchTimes returns number of frames since particle was seen last time
func (particle *Particle) GetNoMatchTimes() int {
	return particle.noMatchTimes
}

// IncNoMatch increases particle's no match times
func (particle *Particle) IncNoMatch() {
	particle.noMatchTimes++
}

// PredictNextPosition executes Kalman filter's first step. Without filter the
// prediction is the last seen position.
func (particle *Particle) PredictNextPosition() {
	if particle.tracker == nil {
		particle.predictedNextPosition = NewPointFrom(particle.Last())
		return
	}
	particle.tracker.Predict()
	stateX, stateY := particle.tracker.GetState()
	particle.predictedNextPosition.X = stateX
	particle.predictedNextPosition.Y = stateY
}

// DistanceTo returns the smaller of distances from the last seen and predicted positions to point
func (particle *Particle) DistanceTo(pt Point) float64 {
	dist := euclideanDistance(NewPointFrom(particle.Last()), pt)
	distPredicted := euclideanDistance(particle.predictedNextPosition, pt)
	return math.Min(dist, distPredicted)
}

// Update appends detection to particle's track and corrects Kalman filter state
func (particle *Particle) Update(sample mr.Sample) error {
	if sample.Frame <= particle.Last().Frame {
		return errors.Errorf("frame %d is not after the last frame %d of particle %s", sample.Frame, particle.Last().Frame, particle.id)
	}
	if particle.tracker != nil {
		err := particle.tracker.Update(sample.X, sample.Y)
		if err != nil {
			return errors.Wrap(err, "Can't update particle tracker")
		}
	}
	particle.track = append(particle.track, sample)
	particle.noMatchTimes = 0
	return nil
}
