package physics

import "github.com/go-gl/mathgl/mgl64"

// Bounds holds the axis-aligned planes that confine the balls. The floor is
// kept on Table because pockets interrupt it.
type Bounds struct {
	XPlus  float64 `yaml:"x_plus" json:"x_plus"`
	XMinus float64 `yaml:"x_minus" json:"x_minus"`
	ZPlus  float64 `yaml:"z_plus" json:"z_plus"`
	ZMinus float64 `yaml:"z_minus" json:"z_minus"`
	YPlus  float64 `yaml:"y_plus" json:"y_plus"`
}

// Contains reports whether the sphere at p with radius r fits between the rails.
func (b Bounds) Contains(p mgl64.Vec3, r float64) bool {
	return p.X()+r <= b.XPlus && p.X()-r >= b.XMinus &&
		p.Z()+r <= b.ZPlus && p.Z()-r >= b.ZMinus
}

// Table is the static geometry the balls collide with. It is never mutated
// by the simulation.
type Table struct {
	Bounds       Bounds
	Floor        float64
	PocketRadius float64
	PocketDepth  float64
	Pockets      []mgl64.Vec3
}

// Default table geometry.
const (
	DefaultXPlus        = 1.125
	DefaultXMinus       = -0.86
	DefaultZPlus        = 0.5
	DefaultZMinus       = -0.525
	DefaultYPlus        = 20.0
	DefaultFloor        = 0.98
	DefaultPocketRadius = 0.09
	DefaultPocketDepth  = 1.5
)

// NewTable builds a table with the six standard pockets: the four corners
// and the midpoints of the two long rails, all at floor height.
func NewTable(b Bounds, floor, pocketRadius, pocketDepth float64) *Table {
	midX := (b.XPlus + b.XMinus) / 2
	return &Table{
		Bounds:       b,
		Floor:        floor,
		PocketRadius: pocketRadius,
		PocketDepth:  pocketDepth,
		Pockets: []mgl64.Vec3{
			{b.XPlus, floor, b.ZPlus},
			{b.XPlus, floor, b.ZMinus},
			{b.XMinus, floor, b.ZPlus},
			{b.XMinus, floor, b.ZMinus},
			{midX, floor, b.ZPlus},
			{midX, floor, b.ZMinus},
		},
	}
}

func DefaultTable() *Table {
	return NewTable(Bounds{
		XPlus:  DefaultXPlus,
		XMinus: DefaultXMinus,
		ZPlus:  DefaultZPlus,
		ZMinus: DefaultZMinus,
		YPlus:  DefaultYPlus,
	}, DefaultFloor, DefaultPocketRadius, DefaultPocketDepth)
}

// PocketBottom is the height balls come to rest at inside a pocket.
func (t *Table) PocketBottom() float64 {
	return t.Floor - t.PocketDepth
}

// PocketAt returns the index of the pocket whose cylinder contains p, or -1.
func (t *Table) PocketAt(p mgl64.Vec3) int {
	for i, pocket := range t.Pockets {
		if PointInCylinder(p, pocket, t.PocketRadius) {
			return i
		}
	}
	return -1
}

// Sunk reports whether a body has dropped below the playing surface.
func (t *Table) Sunk(b *Body) bool {
	return b.Position.Y()+b.Radius < t.Floor
}
