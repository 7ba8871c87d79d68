package automation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/experiment"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/storage"
)

const scenarioYAML = `
name: warmup
description: drop then a soft break
steps:
  - preset: drop
    duration: 1
  - preset: soft_break
    duration: 1.5
    weapon: rifle
    save_as: soft
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Name != "warmup" || len(s.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", s)
	}
	if s.Steps[1].SaveAs != "soft" || s.Steps[1].Weapon != "rifle" {
		t.Errorf("step fields lost: %+v", s.Steps[1])
	}

	if _, err := ParseScenario([]byte("name: empty\n")); err == nil {
		t.Error("expected error for a scenario without steps")
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestStepConfigOverrides(t *testing.T) {
	cfg, err := StepConfig(experiment.NewRegistry(), ScenarioStep{
		Preset:   "break",
		Duration: 3,
		Seed:     9,
		Weapon:   "pistol",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Run.Duration != 3 || cfg.Run.Seed != 9 {
		t.Errorf("overrides not applied: %+v", cfg.Run)
	}
	if cfg.Shots[0].Weapon != "pistol" {
		t.Errorf("weapon not applied: %+v", cfg.Shots)
	}

	if _, err := StepConfig(experiment.NewRegistry(), ScenarioStep{Preset: "masse"}); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestRunScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())
	var out bytes.Buffer

	results, err := RunScenario(context.Background(), s, experiment.NewRegistry(), store, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Count(sim.EventShot) != 1 {
		t.Errorf("expected the break step to fire once")
	}
	if !strings.Contains(out.String(), "saved as soft") {
		t.Errorf("missing save line in output:\n%s", out.String())
	}
	if _, err := store.Load("soft"); err != nil {
		t.Errorf("saved run not found: %v", err)
	}
}

func TestSetParam(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := SetParam(cfg, "friction", 0.3); err != nil || cfg.Physics.Friction != 0.3 {
		t.Errorf("friction not set: %v", err)
	}
	if err := SetParam(cfg, "yaw", 1); err == nil {
		t.Error("expected error for yaw without shots")
	}
	if err := SetParam(cfg, "spin", 1); err == nil {
		t.Error("expected unknown parameter error")
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{Preset: "drop", ParamName: "gravity", ParamMin: 5, ParamMax: 15, NumSteps: 3}
	results, err := RunSweep(context.Background(), sweep, experiment.NewRegistry(), nil)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[2].ParamValue != 15 {
		t.Errorf("expected last value 15, got %f", results[2].ParamValue)
	}
	// Falling from the same height, stronger gravity means a harder landing.
	if results[2].PeakEnergy <= results[0].PeakEnergy {
		t.Errorf("peak energy should grow with gravity: %+v", results)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	cfg := &MonteCarloConfig{Preset: "break", Jitter: 0.001, NumTrials: 3, Duration: 1, Seed: 100, Workers: 2}
	results, err := RunMonteCarlo(context.Background(), cfg, experiment.NewRegistry())
	if err != nil {
		t.Fatalf("monte carlo: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(100+i) {
			t.Errorf("trial %d has seed %d", i, r.Seed)
		}
	}

	mean, best := MonteCarloStats(results)
	if mean < 0 || best < 0 || best >= 3 {
		t.Errorf("unexpected stats mean=%f best=%d", mean, best)
	}
}

func TestMonteCarloStatsEmpty(t *testing.T) {
	if mean, best := MonteCarloStats(nil); mean != 0 || best != -1 {
		t.Errorf("unexpected stats for empty input: %f %d", mean, best)
	}
}
