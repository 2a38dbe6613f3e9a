package mot

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/LdDl/mr-go/mr"
)

// DetectionSource provides raw detections (features) for a selection
type DetectionSource interface {
	Detections(ctx context.Context, selection mr.Selection) ([]mr.Sample, error)
}

// Tracker links detections from a source into track arrays. It implements mr.Tracker.
type Tracker struct {
	source    DetectionSource
	algorithm MatchingAlgorithm
	dt        float64
}

// TrackerOption tunes Tracker
type TrackerOption func(*Tracker)

// WithAlgorithm sets matching algorithm. Default is greedy
func WithAlgorithm(algorithm MatchingAlgorithm) TrackerOption {
	return func(t *Tracker) {
		t.algorithm = algorithm
	}
}

// WithPrediction enables Kalman prediction of positions with given time between frames
func WithPrediction(dt float64) TrackerOption {
	return func(t *Tracker) {
		t.dt = dt
	}
}

// NewTracker creates tracker on top of detection source
func NewTracker(source DetectionSource, opts ...TrackerOption) *Tracker {
	tracker := &Tracker{
		source:    source,
		algorithm: MatchingAlgorithmGreedy,
	}
	for _, opt := range opts {
		opt(tracker)
	}
	return tracker
}

// Open starts new tracking session
func (tracker *Tracker) Open(ctx context.Context) (mr.TrackerSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't open tracker session")
	}
	s := &session{
		id:      uuid.New(),
		tracker: tracker,
	}
	mr.Opsf("opened tracker session %s (%s matching)", s.id, tracker.algorithm)
	return s, nil
}

type session struct {
	id      uuid.UUID
	tracker *Tracker
	mu      sync.Mutex
	closed  bool
}

// Track loads detections of the selection and links them
func (s *session) Track(ctx context.Context, selection mr.Selection, params mr.LinkParams) (mr.TrackArray, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, errors.Errorf("tracker session %s is closed", s.id)
	}
	if params.MaxDisplacement <= 0 {
		return nil, errors.Errorf("max displacement must be positive, got %v", params.MaxDisplacement)
	}
	if params.Memory < 0 {
		return nil, errors.Errorf("memory must not be negative, got %d", params.Memory)
	}

	detections, err := s.tracker.source.Detections(ctx, selection)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load detections in session %s", s.id)
	}
	mr.Opsf("session %s: loaded %d detections, now linking", s.id, len(detections))

	linker := NewLinker(params, s.tracker.algorithm, s.tracker.dt)
	ta, err := linker.Link(detections)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't link detections in session %s", s.id)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "session %s", s.id)
	}
	mr.Opsf("session %s: linked %d probes out of %d tracks", s.id, countProbes(ta), len(linker.Particles()))
	return ta, nil
}

// Close ends the session. Closing twice is an error
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.Errorf("tracker session %s is already closed", s.id)
	}
	s.closed = true
	mr.Opsf("closed tracker session %s", s.id)
	return nil
}

func countProbes(ta mr.TrackArray) int {
	if len(ta) == 0 {
		return 0
	}
	return ta[len(ta)-1].Probe + 1
}

var _ mr.Tracker = (*Tracker)(nil)
