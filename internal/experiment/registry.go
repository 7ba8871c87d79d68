package experiment

import (
	"fmt"
	"sort"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/metrics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["kinetic_energy"] = func() sim.Metric { return metrics.NewKineticEnergy() }
	r.metrics["peak_energy"] = func() sim.Metric { return metrics.NewPeakEnergy() }
	r.metrics["momentum"] = func() sim.Metric { return metrics.NewMomentum() }
	r.metrics["containment"] = func() sim.Metric { return metrics.NewContainment(metrics.ContainmentTolerance) }
	r.metrics["pocketed"] = func() sim.Metric { return metrics.NewPocketed() }
	r.metrics["final_energy"] = func() sim.Metric { return metrics.NewEnergyTrace() }

	return r
}

func (r *Registry) GetPreset(name string) (*config.Config, error) {
	return config.GetPreset(name)
}

func (r *Registry) ListPresets() []string {
	return config.ListPresets()
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return metrics.Default()
}

// Weapons lists the arsenal of cfg, or the built-in one for nil.
func (r *Registry) Weapons(cfg *config.Config) map[string]sim.Weapon {
	if cfg == nil {
		return sim.DefaultWeapons()
	}
	return cfg.WeaponMap()
}
