package automation

import (
	"context"
	"fmt"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/experiment"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// MonteCarloConfig repeats a preset with the rack jittered by a different
// seed on every trial.
type MonteCarloConfig struct {
	Preset    string
	Jitter    float64
	NumTrials int
	Duration  float64
	Seed      int64
	Workers   int
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID  int
	Seed     int64
	Pocketed []int
	Contacts int
}

// RunMonteCarlo executes the trials concurrently, one scene per trial.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	base, err := registry.GetPreset(cfg.Preset)
	if err != nil {
		return nil, err
	}
	if cfg.Duration > 0 {
		base.Run.Duration = cfg.Duration
	}
	base.Rack.Jitter = cfg.Jitter
	if err := base.Validate(); err != nil {
		return nil, err
	}

	configs := make([]*config.Config, cfg.NumTrials)
	runs := make([]sim.Config, cfg.NumTrials)
	for i := range configs {
		c := base.Clone()
		c.Run.Seed = cfg.Seed + int64(i)
		configs[i] = c
		runs[i] = c.SimConfig()
	}

	factory := func(i int, _ sim.Config) (*sim.Simulator, error) {
		exp := experiment.New(configs[i])
		if err := exp.Setup(nil); err != nil {
			return nil, err
		}
		return exp.GetSimulator(), nil
	}

	results, err := sim.NewEnsemble(factory, cfg.Workers).Run(ctx, runs)
	if err != nil {
		return nil, fmt.Errorf("monte carlo: %w", err)
	}

	out := make([]MonteCarloResult, len(results))
	for i, r := range results {
		out[i] = MonteCarloResult{
			TrialID:  i,
			Seed:     configs[i].Run.Seed,
			Pocketed: r.Pocketed,
			Contacts: r.Count(sim.EventBall),
		}
	}
	return out, nil
}

// MonteCarloStats summarises pocketed counts across trials.
func MonteCarloStats(results []MonteCarloResult) (mean float64, best int) {
	if len(results) == 0 {
		return 0, -1
	}
	best = 0
	total := 0
	for i, r := range results {
		total += len(r.Pocketed)
		if len(r.Pocketed) > len(results[best].Pocketed) {
			best = i
		}
	}
	return float64(total) / float64(len(results)), best
}
