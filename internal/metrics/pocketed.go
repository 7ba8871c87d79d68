package metrics

import "github.com/Mlschwarzbold/SinucaBalistica/internal/sim"

// Pocketed counts bodies below the playing surface at the last sample.
type Pocketed struct {
	count int
}

func NewPocketed() *Pocketed { return &Pocketed{} }

func (p *Pocketed) Name() string { return "pocketed" }

func (p *Pocketed) Observe(s *sim.Scene, t float64) {
	p.count = len(s.Sunk())
}

func (p *Pocketed) Value() float64 { return float64(p.count) }

func (p *Pocketed) Reset() { p.count = 0 }

// Default returns the metric set attached to every experiment.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewPeakEnergy(),
		NewMomentum(),
		NewContainment(ContainmentTolerance),
		NewPocketed(),
	}
}
