package automation

import (
	"context"
	"fmt"
	"io"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/analysis"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/experiment"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/metrics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// ParameterSweep runs a preset across a range of one tunable value
type ParameterSweep struct {
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from one point of a sweep
type SweepResult struct {
	ParamValue float64
	Pocketed   int
	Contacts   int
	PeakEnergy float64
	SettleTime float64
}

// SettleThreshold is the total kinetic energy below which a table counts
// as at rest.
const SettleThreshold = 1e-3

// SetParam applies a named knob to cfg.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "gravity":
		cfg.Physics.Gravity = v
	case "friction":
		cfg.Physics.Friction = v
	case "gap":
		cfg.Rack.Gap = v
	case "mass":
		cfg.Rack.Mass = v
	case "yaw", "pitch", "distance":
		if len(cfg.Shots) == 0 {
			return fmt.Errorf("%s: preset has no shots", name)
		}
		s := &cfg.Shots[0]
		switch name {
		case "yaw":
			s.Yaw = v
		case "pitch":
			s.Pitch = v
		default:
			s.Distance = v
		}
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, out io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	if out == nil {
		out = io.Discard
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg, err := registry.GetPreset(sweep.Preset)
		if err != nil {
			return nil, err
		}
		if err := SetParam(cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		trace := metrics.NewEnergyTrace()
		peak := metrics.NewPeakEnergy()
		exp := experiment.New(cfg)
		if err := exp.Setup([]sim.Metric{trace, peak}); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Pocketed:   len(result.Pocketed),
			Contacts:   result.Count(sim.EventBall),
			PeakEnergy: peak.Value(),
			SettleTime: analysis.SettleTime(trace.Values, trace.Times, SettleThreshold),
		})

		fmt.Fprintf(out, "Sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
