package metrics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// Momentum reports the magnitude of the total planar momentum at the last
// observed step. Vertical momentum is dominated by gravity and the felt.
type Momentum struct {
	name  string
	value float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(s *sim.Scene, t float64) {
	var p mgl64.Vec3
	for _, b := range s.Bodies {
		p = p.Add(physics.Planarize(b.Velocity).Mul(b.Mass))
	}
	m.value = p.Len()
}

func (m *Momentum) Value() float64 { return m.value }

func (m *Momentum) Reset() { m.value = 0 }
