package metrics

import (
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// ContainmentTolerance absorbs the overshoot of a ball integrated past a
// rail in the same tick it is clamped back on the next one.
const ContainmentTolerance = 0.05

// Containment is the fraction of samples in which every body was either
// between the rails or inside a pocket. Anything else means a ball tunnelled
// out of the table.
type Containment struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(s *sim.Scene, t float64) {
	c.samples++
	bounds := s.Table.Bounds
	bounds.XPlus += c.tolerance
	bounds.XMinus -= c.tolerance
	bounds.ZPlus += c.tolerance
	bounds.ZMinus -= c.tolerance

	for _, b := range s.Bodies {
		if bounds.Contains(b.Position, b.Radius) {
			continue
		}
		if s.Table.PocketAt(b.Position) >= 0 {
			continue
		}
		c.violations++
		break
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
