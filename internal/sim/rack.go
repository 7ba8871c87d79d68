package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// RackConfig describes the triangle formation and the cue ball.
type RackConfig struct {
	Rows   int        `yaml:"rows" json:"rows"`
	Radius float64    `yaml:"radius" json:"radius"`
	Mass   float64    `yaml:"mass" json:"mass"`
	Gap    float64    `yaml:"gap" json:"gap"`
	Apex   mgl64.Vec3 `yaml:"apex" json:"apex"`
	Cue    mgl64.Vec3 `yaml:"cue" json:"cue"`

	// Jitter displaces every racked ball by up to this much on X and Z,
	// drawn from a generator seeded with Seed.
	Jitter float64 `yaml:"jitter" json:"jitter"`
	Seed   int64   `yaml:"seed" json:"seed"`
}

func DefaultRack() RackConfig {
	return RackConfig{
		Rows:   5,
		Radius: 0.03,
		Mass:   10,
		Gap:    0.01,
		Apex:   mgl64.Vec3{0.3, 1.01, 0},
		Cue:    mgl64.Vec3{-0.5, 1.01, 0},
	}
}

// RackPositions lays out row i (1..Rows) with i balls centred on the apex
// Z, rows stepping along +X by the triangle height of the ball spacing.
func RackPositions(rack RackConfig) []mgl64.Vec3 {
	spacing := 2*rack.Radius + rack.Gap
	rowStep := spacing * math.Sqrt(3) / 2

	var rng *rand.Rand
	if rack.Jitter > 0 {
		rng = rand.New(rand.NewPCG(uint64(rack.Seed), 0x5eed))
	}

	pos := make([]mgl64.Vec3, 0, rack.Rows*(rack.Rows+1)/2)
	for row := 1; row <= rack.Rows; row++ {
		x := rack.Apex.X() + float64(row-1)*rowStep
		z0 := rack.Apex.Z() - float64(row-1)*spacing/2
		for i := 0; i < row; i++ {
			p := mgl64.Vec3{x, rack.Apex.Y(), z0 + float64(i)*spacing}
			if rng != nil {
				p[0] += (rng.Float64()*2 - 1) * rack.Jitter
				p[2] += (rng.Float64()*2 - 1) * rack.Jitter
			}
			pos = append(pos, p)
		}
	}
	return pos
}

// Reset clears the scene and racks it: the cue ball first, so it gets id 0,
// then the triangle.
func (s *Scene) Reset(rack RackConfig) error {
	if rack.Rows < 0 {
		return fmt.Errorf("rack rows must be non-negative, got %d", rack.Rows)
	}
	s.Clear()
	if _, err := s.Spawn(rack.Radius, rack.Mass, rack.Cue); err != nil {
		return fmt.Errorf("cue ball: %w", err)
	}
	for i, p := range RackPositions(rack) {
		if _, err := s.Spawn(rack.Radius, rack.Mass, p); err != nil {
			return fmt.Errorf("rack ball %d: %w", i, err)
		}
	}
	return nil
}
