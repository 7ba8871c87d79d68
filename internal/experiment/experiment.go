package experiment

import (
	"context"
	"fmt"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup validates the configuration, racks a fresh scene and attaches the
// given metrics.
func (e *Experiment) Setup(metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	scene := sim.NewScene(e.cfg.TableGeometry())
	if err := scene.Reset(e.cfg.RackConfig()); err != nil {
		return fmt.Errorf("rack: %w", err)
	}

	e.simulator = sim.New(scene, e.cfg.Physics)
	e.simulator.SetWeapons(e.cfg.WeaponMap())
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}

// RunConfig is the one-call form used by batch tools: setup with the
// registry's default metrics, then run.
func RunConfig(ctx context.Context, r *Registry, cfg *config.Config) (*sim.Result, error) {
	exp := New(cfg)
	if err := exp.Setup(r.DefaultMetrics()); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
