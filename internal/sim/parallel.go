package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Factory builds an independent loop for the given seed.
type Factory func(seed int64) (*Loop, error)

// Ensemble runs independent loops concurrently. Each loop owns its own
// random source, so runs share no state and results are reproducible per seed.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
	workers   int
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart, workers: runtime.NumCPU()}
}

// SetWorkers bounds the number of loops running at once.
func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

// Run executes all loops and returns results in seed order.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			seed := e.seedStart + int64(idx)
			loop, err := e.factory(seed)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", idx, seed, err)
			}
			res, err := loop.Run(ctx)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", idx, seed, err)
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
