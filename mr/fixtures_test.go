package mr

import (
	"math"
)

const (
	eps = 0.00001
)

// splitmix is a tiny deterministic generator so synthetic data does not depend on math/rand
type splitmix struct {
	state uint64
}

func (s *splitmix) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (s *splitmix) float() float64 {
	return float64(s.next()>>11) * (1.0 / (1 << 53))
}

// norm is Box-Muller standard normal
func (s *splitmix) norm() float64 {
	u1 := 1.0 - s.float()
	u2 := s.float()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// jitterTrajectory is a probe stuck around (100, 100)
func jitterTrajectory(seed uint64, n int, sigma float64) Trajectory {
	rng := &splitmix{state: seed}
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{Frame: i, X: 100 + sigma*rng.norm()}
	}
	for i := range samples {
		samples[i].Y = 100 + sigma*rng.norm()
	}
	return Trajectory{Samples: samples}
}

// walkTrajectory is a Gaussian random walk with unit steps plus static localization noise
func walkTrajectory(seed uint64, n int, noise float64) Trajectory {
	rng := &splitmix{state: seed}
	samples := make([]Sample, n)
	x, y := 0.0, 0.0
	for i := range samples {
		if i > 0 {
			x += rng.norm()
			y += rng.norm()
		}
		samples[i] = Sample{Frame: i, X: x + noise*rng.norm(), Y: y + noise*rng.norm()}
	}
	return Trajectory{Samples: samples}
}

// driftingPopulation builds probes sharing drift (dx, dy) per frame plus unit random steps.
// Some frames are dropped to create gaps.
func driftingPopulation(seed uint64, probes, frames int, dx, dy float64) []Trajectory {
	rng := &splitmix{state: seed}
	trajs := make([]Trajectory, probes)
	for p := 0; p < probes; p++ {
		start := p % 10
		x := 20 * rng.float()
		y := 20 * rng.float()
		samples := make([]Sample, 0, frames)
		for t := start; t < start+frames; t++ {
			if t > start {
				x += dx + rng.norm()
				y += dy + rng.norm()
			}
			if (p+t)%37 == 0 && t != start {
				continue
			}
			samples = append(samples, Sample{Frame: t, X: x, Y: y})
		}
		trajs[p] = Trajectory{Probe: p, Samples: samples}
	}
	return trajs
}
