package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Gravity is the downward acceleration applied to vertical velocity.
	Gravity = 10.0

	// WallRestitution scales the reflected normal velocity on rails and ceiling.
	WallRestitution = 0.5

	// FloorRestitution scales the reflected vertical velocity on the felt and pocket bottoms.
	FloorRestitution = 0.2

	// RollingThreshold is the planar speed above which a body visibly rolls.
	RollingThreshold = 0.1

	// RollRate converts travelled distance into radians of visual rotation.
	RollRate = 10.0
)

// Kind tags what a body represents. Balls are the only kind today.
type Kind uint8

const (
	KindBall Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Axis selects a world axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Body is a movable sphere.
type Body struct {
	ID       int
	Kind     Kind
	Radius   float64
	Mass     float64
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	// Orientation accumulates the rolling animation. It never feeds back
	// into collision geometry.
	Orientation mgl64.Quat
}

// NewBody creates a resting ball. Radius and mass must be positive.
func NewBody(id int, radius, mass float64, pos mgl64.Vec3) (*Body, error) {
	b := &Body{
		ID:          id,
		Kind:        KindBall,
		Radius:      radius,
		Mass:        mass,
		Position:    pos,
		Orientation: mgl64.QuatIdent(),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate reports contract violations: non-positive radius or mass, or a
// non-finite position or velocity.
func (b *Body) Validate() error {
	if !(b.Radius > 0) || !(b.Mass > 0) {
		return fmt.Errorf("body %d (r=%g, m=%g): %w", b.ID, b.Radius, b.Mass, ErrInvalidBody)
	}
	if !finite(b.Position) || !finite(b.Velocity) {
		return fmt.Errorf("body %d: %w", b.ID, ErrInvalidState)
	}
	return nil
}

// SetVelocity replaces the movement vector.
func (b *Body) SetVelocity(x, y, z float64) {
	b.Velocity = mgl64.Vec3{x, y, z}
}

// Advance moves the body along its velocity for dt seconds and spins the
// visual orientation while it rolls.
func (b *Body) Advance(dt float64) {
	if dt == 0 {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	if Planarize(b.Velocity).Len() > RollingThreshold {
		angle := b.Velocity.Len() * dt * RollRate
		b.rotate(rollAxis, angle)
	}
}

func (b *Body) rotate(axis mgl64.Vec3, angle float64) {
	b.Orientation = b.Orientation.Mul(mgl64.QuatRotate(angle, axis)).Normalize()
}

// ApplyFriction removes a constant amount coef of speed, opposite to the
// current velocity. Near rest this overshoots and the body jitters around
// zero; only an exactly zero velocity is left alone.
func (b *Body) ApplyFriction(coef float64) {
	if b.Velocity.Len() == 0 {
		return
	}
	friction := safeNormalize(b.Velocity).Mul(-coef)
	b.Velocity = b.Velocity.Add(friction)
}

// ApplyGravity accelerates the body downward for dt seconds.
func (b *Body) ApplyGravity(g, dt float64) {
	b.Velocity[1] -= g * dt
}

// ReflectAxis flips the velocity component along axis and scales it by
// restitution.
func (b *Body) ReflectAxis(axis Axis, restitution float64) {
	b.Velocity[axis] = -b.Velocity[axis] * restitution
}

// ReflectNormal mirrors the velocity about the plane with normal n. The
// normal does not need to be unit length; a zero normal is ignored.
func (b *Body) ReflectNormal(n mgl64.Vec3) {
	normal := safeNormalize(n)
	b.Velocity = b.Velocity.Sub(normal.Mul(2 * b.Velocity.Dot(normal)))
}

// KineticEnergy returns ½·m·|v|².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
}

// Transform is the model matrix a renderer places the unit sphere mesh with.
func (b *Body) Transform() mgl64.Mat4 {
	p := b.Position
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl64.Scale3D(b.Radius, b.Radius, b.Radius)).
		Mul4(b.Orientation.Mat4())
}

// Distance returns the distance between the centres of two bodies.
func Distance(a, b *Body) float64 {
	return Dist(a.Position, b.Position)
}
