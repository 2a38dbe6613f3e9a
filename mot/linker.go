package mot

import (
	"fmt"
	"sort"

	"github.com/arthurkushman/go-hungarian"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/LdDl/mr-go/mr"
)

// MatchingAlgorithm is for algorithm type for matching detections to particles
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmGreedy links the closest particle/detection pairs first
	MatchingAlgorithmGreedy MatchingAlgorithm = iota
	// MatchingAlgorithmHungarian finds the gated assignment with maximum total score (Kuhn-Munkres seed, then exact refinement)
	MatchingAlgorithmHungarian
)

func (alg MatchingAlgorithm) String() string {
	switch alg {
	case MatchingAlgorithmGreedy:
		return "greedy"
	case MatchingAlgorithmHungarian:
		return "hungarian"
	default:
		return fmt.Sprintf("unknown(%d)", uint16(alg))
	}
}

// ParseMatchingAlgorithm accepts "greedy" or "hungarian"
func ParseMatchingAlgorithm(s string) (MatchingAlgorithm, error) {
	switch s {
	case "greedy":
		return MatchingAlgorithmGreedy, nil
	case "hungarian":
		return MatchingAlgorithmHungarian, nil
	default:
		return 0, errors.Errorf("unknown matching algorithm %q", s)
	}
}

// DefaultMinAppearances is the smallest track length kept by default. Shorter tracks can't be interpolated.
const DefaultMinAppearances = 2

// Linker links per-frame detections into trajectories.
// Frames must be fed in increasing order.
type Linker struct {
	// Max distance (pixels) between positions of a particle in consecutive observations
	maxDisplacement float64
	// Max number of frames a particle may be missing and still be linked. Default 3
	memory int
	// Tracks shorter than this are dropped. Default 2
	minAppearances int
	// Algorithm to use for matching
	algorithm MatchingAlgorithm
	// Time between frames for Kalman prediction. Zero disables prediction
	dt float64
	// Live particles
	Objects map[uuid.UUID]*Particle
	// Live particle identifiers in order of creation
	order []uuid.UUID
	// Every particle ever created, in order of creation
	all       []*Particle
	lastFrame int
	started   bool
}

// NewLinkerDefault creates linker with default memory and min appearances and greedy matching
func NewLinkerDefault(maxDisplacement float64) *Linker {
	return NewLinker(mr.LinkParams{
		MaxDisplacement: maxDisplacement,
		MinAppearances:  DefaultMinAppearances,
		Memory:          mr.DefaultMemory,
	}, MatchingAlgorithmGreedy, 0)
}

// NewLinker creates new instance of Linker. dt > 0 enables Kalman prediction of positions.
func NewLinker(params mr.LinkParams, algorithm MatchingAlgorithm, dt float64) *Linker {
	return &Linker{
		maxDisplacement: params.MaxDisplacement,
		memory:          params.Memory,
		minAppearances:  params.MinAppearances,
		algorithm:       algorithm,
		dt:              dt,
		Objects:         make(map[uuid.UUID]*Particle),
		order:           make([]uuid.UUID, 0),
		all:             make([]*Particle, 0),
	}
}

// MatchObjects links detections of a single frame to live particles
func (linker *Linker) MatchObjects(frame int, detections []mr.Sample) error {
	if linker.started && frame <= linker.lastFrame {
		return errors.Errorf("frame %d is not after the last linked frame %d", frame, linker.lastFrame)
	}
	elapsed := 1
	if linker.started {
		elapsed = frame - linker.lastFrame
	}

	// Retire particles which can't be linked anymore and predict positions of the others
	live := linker.order[:0]
	for _, particleID := range linker.order {
		particle := linker.Objects[particleID]
		if frame-particle.Last().Frame-1 > linker.memory {
			delete(linker.Objects, particleID)
			continue
		}
		for i := 0; i < elapsed; i++ {
			particle.PredictNextPosition()
		}
		live = append(live, particleID)
	}
	linker.order = live

	matches := linker.performMatching(detections)
	matchedParticles := make(map[uuid.UUID]struct{}, len(matches))
	for detIdx, detection := range detections {
		particleID, ok := matches[detIdx]
		if !ok {
			linker.register(detection)
			continue
		}
		err := linker.Objects[particleID].Update(detection)
		if err != nil {
			return errors.Wrapf(err, "Can't update particle with id %s", particleID.String())
		}
		matchedParticles[particleID] = struct{}{}
	}

	// Particles registered in this frame are not in live
	for _, particleID := range live {
		if _, ok := matchedParticles[particleID]; ok {
			continue
		}
		linker.Objects[particleID].IncNoMatch()
	}
	linker.lastFrame = frame
	linker.started = true
	return nil
}

func (linker *Linker) register(detection mr.Sample) {
	var particle *Particle
	if linker.dt > 0 {
		particle = NewParticleWithTime(detection, linker.dt)
	} else {
		particle = NewParticle(detection)
	}
	linker.Objects[particle.GetID()] = particle
	linker.order = append(linker.order, particle.GetID())
	linker.all = append(linker.all, particle)
}

// candidates returns every particle/detection pair within max displacement
func (linker *Linker) candidates(detections []mr.Sample) []candidateLink {
	links := make([]candidateLink, 0)
	for _, particleID := range linker.order {
		particle := linker.Objects[particleID]
		for detIdx, detection := range detections {
			dist := particle.DistanceTo(NewPointFrom(detection))
			if dist <= linker.maxDisplacement {
				links = append(links, candidateLink{
					particleID: particleID,
					detection:  detIdx,
					distance:   dist,
				})
			}
		}
	}
	return links
}

// performMatching returns particle identifier for every linked detection index
func (linker *Linker) performMatching(detections []mr.Sample) map[int]uuid.UUID {
	links := linker.candidates(detections)
	if len(links) == 0 {
		return map[int]uuid.UUID{}
	}
	switch linker.algorithm {
	case MatchingAlgorithmHungarian:
		return linker.performHungarianMatching(links)
	case MatchingAlgorithmGreedy:
		return linker.performGreedyMatching(links)
	default:
		return linker.performGreedyMatching(links)
	}
}

// performGreedyMatching pops the closest pairs first.
// Since we are using min-heap, every particle and every detection is reserved by its closest free counterpart.
func (linker *Linker) performGreedyMatching(links []candidateLink) map[int]uuid.UUID {
	priorityQueue := make(linkHeap, 0, len(links))
	for _, link := range links {
		priorityQueue.Push(link)
	}
	matches := make(map[int]uuid.UUID)
	// We need to prevent double update of particles
	reservedParticles := make(map[uuid.UUID]struct{})
	for priorityQueue.Len() > 0 {
		link := priorityQueue.Pop()
		if _, ok := reservedParticles[link.particleID]; ok {
			continue
		}
		if _, ok := matches[link.detection]; ok {
			continue
		}
		matches[link.detection] = link.particleID
		reservedParticles[link.particleID] = struct{}{}
	}
	return matches
}

// performHungarianMatching solves assignment on the gated pairs only and returns the maximum total score.
// Score of a pair is maxDisplacement - distance + 1, so any gated pair beats leaving both unlinked.
func (linker *Linker) performHungarianMatching(links []candidateLink) map[int]uuid.UUID {
	rowOf := make(map[uuid.UUID]int)
	rows := make([]uuid.UUID, 0)
	colOf := make(map[int]int)
	cols := make([]int, 0)
	for _, link := range links {
		if _, ok := rowOf[link.particleID]; !ok {
			rowOf[link.particleID] = len(rows)
			rows = append(rows, link.particleID)
		}
		if _, ok := colOf[link.detection]; !ok {
			colOf[link.detection] = len(cols)
			cols = append(cols, link.detection)
		}
	}

	// Rectangular matrix - pad to make it square. Padding is done with 0.0 values (no link)
	size := maxInt(len(rows), len(cols))
	scores := make([][]float64, size)
	gated := make([][]bool, size)
	for i := range scores {
		scores[i] = make([]float64, size)
		gated[i] = make([]bool, size)
	}
	for _, link := range links {
		i, j := rowOf[link.particleID], colOf[link.detection]
		scores[i][j] = linker.maxDisplacement - link.distance + 1
		gated[i][j] = true
	}

	// SolveMax is a reduction heuristic and may miss the optimum: use it as a starting point only
	solution := newAssignment(scores, gated, len(rows), len(cols))
	solution.seed(hungarian.SolveMax(scores))
	solution.optimize()

	matches := make(map[int]uuid.UUID)
	for rowIdx, colIdx := range solution.rowMatch {
		if colIdx != -1 {
			matches[cols[colIdx]] = rows[rowIdx]
		}
	}
	return matches
}

// Particles returns every particle seen so far (live and retired) in order of creation
func (linker *Linker) Particles() []*Particle {
	return linker.all
}

// TrackArray returns the linked tracks. Tracks shorter than min appearances are dropped,
// the rest are numbered 0..n-1 in order of first appearance.
func (linker *Linker) TrackArray() mr.TrackArray {
	ta := make(mr.TrackArray, 0)
	probeID := 0
	for _, particle := range linker.all {
		if particle.Len() < linker.minAppearances {
			continue
		}
		for _, sample := range particle.GetTrack() {
			ta = append(ta, mr.Detection{Probe: probeID, Sample: sample})
		}
		probeID++
	}
	return ta
}

// Link feeds detections of every frame (in any order) to the linker and returns the track array
func (linker *Linker) Link(detections []mr.Sample) (mr.TrackArray, error) {
	sorted := make([]mr.Sample, len(detections))
	copy(sorted, detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frame < sorted[j].Frame
	})
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].Frame == sorted[start].Frame {
			end++
		}
		err := linker.MatchObjects(sorted[start].Frame, sorted[start:end])
		if err != nil {
			return nil, errors.Wrapf(err, "Can't link frame %d", sorted[start].Frame)
		}
		start = end
	}
	return linker.TrackArray(), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
