package physics

import "github.com/go-gl/mathgl/mgl64"

// MinSeparation is the centre distance below which two spheres are treated
// as coincident and collide along +X.
const MinSeparation = 1e-9

var fallbackNormal = mgl64.Vec3{1, 0, 0}

// ResolveCollision applies the elastic two-body response to a and b when
// they overlap and pushes them apart by half the penetration each. It
// returns false, touching nothing, when the spheres are separated.
func ResolveCollision(a, b *Body) bool {
	dist := Distance(a, b)
	penetration := a.Radius + b.Radius - dist
	if penetration <= 0 {
		return false
	}

	// Centre offsets, b to a and a to b. Coincident centres collide along +X.
	sepA := a.Position.Sub(b.Position)
	if dist < MinSeparation {
		sepA = fallbackNormal
		dist = 1
	}
	sepB := sepA.Mul(-1)
	dist2 := dist * dist
	total := a.Mass + b.Mass

	scalarA := 2 * b.Mass / total * a.Velocity.Sub(b.Velocity).Dot(sepA) / dist2
	scalarB := 2 * a.Mass / total * b.Velocity.Sub(a.Velocity).Dot(sepB) / dist2

	if scalarA != 0 {
		a.Velocity = a.Velocity.Sub(sepA.Mul(scalarA))
	}
	if scalarB != 0 {
		b.Velocity = b.Velocity.Sub(sepB.Mul(scalarB))
	}

	normal := sepA.Mul(1 / dist)
	push := normal.Mul(penetration / 2)
	a.Position = a.Position.Add(push)
	b.Position = b.Position.Sub(push)
	return true
}
