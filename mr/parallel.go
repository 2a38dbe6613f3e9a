package mr

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// mapTrajectories applies fn to every trajectory concurrently.
// Results keep the input order. Returns after every call finished (or the first error).
func mapTrajectories[T any](trajs []Trajectory, fn func(Trajectory) (T, error)) ([]T, error) {
	results := make([]T, len(trajs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range trajs {
		i := i
		g.Go(func() error {
			res, err := fn(trajs[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
