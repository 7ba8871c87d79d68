package optim

import (
	"context"
	"testing"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
)

func TestGridPoints(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2}, {10, 20, 30}})
	points := g.Points()
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	if points[0]["a"] != 1 || points[0]["b"] != 10 {
		t.Errorf("unexpected first point %v", points[0])
	}
	if points[5]["a"] != 2 || points[5]["b"] != 30 {
		t.Errorf("unexpected last point %v", points[5])
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Linspace[%d] = %f, want %f", i, got[i], want[i])
		}
	}
	if len(Linspace(3, 4, 1)) != 1 {
		t.Error("expected a single value")
	}
}

func TestAimBuilder(t *testing.T) {
	build := AimBuilder("break")
	cfg, err := build(map[string]float64{"yaw": 0.2, "multiplier": 8})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Shots[0].Yaw != 0.2 {
		t.Errorf("yaw not applied: %+v", cfg.Shots[0])
	}
	if w := cfg.WeaponMap()[cfg.Shots[0].Weapon]; w.OpeningMultiplier != 8 {
		t.Errorf("multiplier not applied: %+v", w)
	}

	if _, err := build(map[string]float64{"english": 1}); err == nil {
		t.Error("expected unknown parameter error")
	}
	if _, err := AimBuilder("drop")(nil); err == nil {
		t.Error("expected error for a preset without shots")
	}
}

func TestSearchMaximizesShotEnergy(t *testing.T) {
	build := func(params map[string]float64) (*config.Config, error) {
		cfg, err := AimBuilder("break")(params)
		if err != nil {
			return nil, err
		}
		cfg.Run.Duration = 0.3
		return cfg, nil
	}

	g := NewGridSearch([]string{"multiplier"}, [][]float64{{2, 6, 4}}).Maximize().Workers(2)
	best, val, err := g.Search(context.Background(), build, "peak_energy")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if best["multiplier"] != 6 {
		t.Errorf("expected the strongest shot to win, got %v (%f)", best, val)
	}
}

func TestSearchMismatchedRanges(t *testing.T) {
	g := NewGridSearch([]string{"yaw", "pitch"}, [][]float64{{0}})
	if _, _, err := g.Search(context.Background(), AimBuilder("break"), "pocketed"); err == nil {
		t.Error("expected error")
	}
}

func TestSearchUnknownMetric(t *testing.T) {
	g := NewGridSearch([]string{"yaw"}, [][]float64{{0}})
	if _, _, err := g.Search(context.Background(), AimBuilder("break"), "style"); err == nil {
		t.Error("expected unknown metric error")
	}
}
