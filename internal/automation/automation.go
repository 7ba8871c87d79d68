package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/experiment"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/storage"
)

// Scenario defines a scripted sequence of table runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one preset, optionally overriding its timing, rack
// seed and shots. Zero values keep the preset's own.
type ScenarioStep struct {
	Preset   string              `yaml:"preset"`
	Weapon   string              `yaml:"weapon"`
	Duration float64             `yaml:"duration"`
	Dt       float64             `yaml:"dt"`
	Seed     int64               `yaml:"seed"`
	Jitter   float64             `yaml:"jitter"`
	Shots    []config.ShotConfig `yaml:"shots"`
	SaveAs   string              `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// StepConfig resolves a step against its preset.
func StepConfig(registry *experiment.Registry, step ScenarioStep) (*config.Config, error) {
	preset := step.Preset
	if preset == "" {
		preset = "break"
	}
	cfg, err := registry.GetPreset(preset)
	if err != nil {
		return nil, err
	}
	if step.Duration > 0 {
		cfg.Run.Duration = step.Duration
	}
	if step.Dt > 0 {
		cfg.Run.Dt = step.Dt
	}
	if step.Seed != 0 {
		cfg.Run.Seed = step.Seed
	}
	if step.Jitter > 0 {
		cfg.Rack.Jitter = step.Jitter
	}
	if len(step.Shots) > 0 {
		cfg.Shots = step.Shots
	}
	if step.Weapon != "" {
		for i := range cfg.Shots {
			cfg.Shots[i].Weapon = step.Weapon
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps with save_as are persisted
// through store when it is non-nil. Progress goes to out.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, store *storage.Store, out io.Writer) ([]*sim.Result, error) {
	if out == nil {
		out = io.Discard
	}
	results := make([]*sim.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Preset)

		cfg, err := StepConfig(registry, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry.DefaultMetrics()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, result)

		if step.SaveAs != "" && store != nil {
			info := storage.RunInfo{
				Name:     step.SaveAs,
				Preset:   cfg.Preset,
				Weapon:   step.Weapon,
				Dt:       cfg.Run.Dt,
				Duration: cfg.Run.Duration,
				Seed:     cfg.Run.Seed,
			}
			if _, err := store.Save(info, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			fmt.Fprintf(out, "  saved as %s\n", step.SaveAs)
		}
	}

	return results, nil
}
