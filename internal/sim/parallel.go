package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Factory builds an independent simulator for run i. Each run must own its
// scene; nothing is shared between goroutines.
type Factory func(i int, cfg Config) (*Simulator, error)

type Ensemble struct {
	factory Factory
	workers int
}

// NewEnsemble runs at most workers simulations at once; workers <= 0 means
// no limit.
func NewEnsemble(factory Factory, workers int) *Ensemble {
	return &Ensemble{factory: factory, workers: workers}
}

func (e *Ensemble) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}

	for i, cfg := range cfgs {
		g.Go(func() error {
			s, err := e.factory(i, cfg)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			res, err := s.Run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
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
