package mr

import (
	"context"
)

// DefaultMemory is how many frames a probe may go missing and still be linked
const DefaultMemory = 3

// LinkParams are the linking parameters passed to a Tracker
type LinkParams struct {
	// MaxDisplacement is the largest distance (pixels) a probe can move between frames
	MaxDisplacement float64
	// MinAppearances drops probes seen in fewer frames
	MinAppearances int
	// Memory is gap tolerance in frames
	Memory int
}

// Selection describes which stored detections a Tracker links.
// Zero values mean "no constraint".
type Selection struct {
	Trial      int
	Stack      int
	FrameStart int
	FrameEnd   int
	MinMass    float64
}

// Tracker is the upstream producer of track arrays. Core operations never call it;
// errors it returns are not *Error.
type Tracker interface {
	Open(ctx context.Context) (TrackerSession, error)
}

// TrackerSession is a single open session of a Tracker. It must be closed.
type TrackerSession interface {
	Track(ctx context.Context, selection Selection, params LinkParams) (TrackArray, error)
	Close() error
}
