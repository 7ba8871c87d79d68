package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
)

// Scene owns the body collection, the table it lives on and the id counter.
// Bodies are never removed; pocketed balls keep being simulated under the
// table.
type Scene struct {
	Bodies []*physics.Body
	Table  *physics.Table

	nextID  int
	opening bool
}

func NewScene(table *physics.Table) *Scene {
	if table == nil {
		table = physics.DefaultTable()
	}
	return &Scene{Table: table, opening: true}
}

// Spawn adds a resting body with the next id.
func (s *Scene) Spawn(radius, mass float64, pos mgl64.Vec3) (*physics.Body, error) {
	b, err := physics.NewBody(s.nextID, radius, mass, pos)
	if err != nil {
		return nil, err
	}
	s.nextID++
	s.Bodies = append(s.Bodies, b)
	return b, nil
}

// Clear drops every body and restarts ids at zero.
func (s *Scene) Clear() {
	s.Bodies = nil
	s.nextID = 0
	s.opening = true
}

// First is the body the camera follows, or nil for an empty scene.
func (s *Scene) First() *physics.Body {
	if len(s.Bodies) == 0 {
		return nil
	}
	return s.Bodies[0]
}

func (s *Scene) Body(id int) *physics.Body {
	for _, b := range s.Bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Opening reports whether no shot has landed since the last reset.
func (s *Scene) Opening() bool { return s.opening }

// Snapshot records the current state of every body.
func (s *Scene) Snapshot(t float64) Frame {
	f := Frame{Time: t, Bodies: make([]BodyState, len(s.Bodies))}
	for i, b := range s.Bodies {
		f.Bodies[i] = BodyState{
			ID:       b.ID,
			Position: b.Position,
			Velocity: b.Velocity,
			InPocket: s.Table.PocketAt(b.Position) >= 0,
		}
	}
	return f
}

// Clone deep-copies the bodies. The table is shared since nothing mutates it.
func (s *Scene) Clone() *Scene {
	c := &Scene{
		Bodies:  make([]*physics.Body, len(s.Bodies)),
		Table:   s.Table,
		nextID:  s.nextID,
		opening: s.opening,
	}
	for i, b := range s.Bodies {
		cp := *b
		c.Bodies[i] = &cp
	}
	return c
}

// KineticEnergy sums ½mv² over all bodies.
func (s *Scene) KineticEnergy() float64 {
	e := 0.0
	for _, b := range s.Bodies {
		e += b.KineticEnergy()
	}
	return e
}

// Sunk returns the ids of bodies below the playing surface.
func (s *Scene) Sunk() []int {
	var ids []int
	for _, b := range s.Bodies {
		if s.Table.Sunk(b) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
