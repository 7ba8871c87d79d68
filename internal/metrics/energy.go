package metrics

import (
	"math"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// KineticEnergy averages the total kinetic energy of the scene over a run.
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s *sim.Scene, t float64) {
	e.totalEnergy += s.KineticEnergy()
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

type PeakEnergy struct {
	name string
	peak float64
}

func NewPeakEnergy() *PeakEnergy {
	return &PeakEnergy{name: "peak_energy"}
}

func (p *PeakEnergy) Name() string { return p.name }

func (p *PeakEnergy) Observe(s *sim.Scene, t float64) {
	p.peak = math.Max(p.peak, s.KineticEnergy())
}

func (p *PeakEnergy) Value() float64 { return p.peak }

func (p *PeakEnergy) Reset() { p.peak = 0 }

// EnergyTrace keeps the full kinetic energy history for spectral analysis.
// Its value is the energy at the last sample.
type EnergyTrace struct {
	Times  []float64
	Values []float64
}

func NewEnergyTrace() *EnergyTrace { return &EnergyTrace{} }

func (e *EnergyTrace) Name() string { return "final_energy" }

func (e *EnergyTrace) Observe(s *sim.Scene, t float64) {
	e.Times = append(e.Times, t)
	e.Values = append(e.Values, s.KineticEnergy())
}

func (e *EnergyTrace) Value() float64 {
	if len(e.Values) == 0 {
		return 0
	}
	return e.Values[len(e.Values)-1]
}

func (e *EnergyTrace) Reset() {
	e.Times = e.Times[:0]
	e.Values = e.Values[:0]
}
