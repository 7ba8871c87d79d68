package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shot impulse weights.
const (
	ShotKeep    = 0.5
	ShotRecoil  = 0.4
	ShotPush    = 5.0
	ShotForward = 0.6
)

// NoHit is the contact point returned when a ray misses.
var NoHit = mgl64.Vec3{-1, -1, -1}

// RaySphereHit intersects the ray origin + t*dir with a sphere and returns
// the near contact point and its signed distance along the ray. A miss, or a
// zero direction, yields NoHit and -1. The distance is negative when the
// sphere lies behind the origin.
func RaySphereHit(center mgl64.Vec3, radius float64, origin, dir mgl64.Vec3) (mgl64.Vec3, float64) {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	if a == 0 {
		return NoHit, -1
	}
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return NoHit, -1
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	return origin.Add(dir.Mul(t)), t * math.Sqrt(a)
}

type Hit struct {
	Body     *Body
	Contact  mgl64.Vec3
	Distance float64
}

// Raycast returns the nearest body the ray hits in front of its origin.
// Ties keep the earlier body.
func Raycast(bodies []*Body, origin, dir mgl64.Vec3) (Hit, bool) {
	var best Hit
	found := false
	for _, b := range bodies {
		contact, d := RaySphereHit(b.Position, b.Radius, origin, dir)
		if d < 0 {
			continue
		}
		if !found || d < best.Distance {
			best = Hit{Body: b, Contact: contact, Distance: d}
			found = true
		}
	}
	return best, found
}

// ApplyShotImpulse blends the body's velocity with a kick away from the
// impact point and a push along the shooter's view direction.
func ApplyShotImpulse(b *Body, contact, view mgl64.Vec3, multiplier float64) {
	away := safeNormalize(contact.Sub(b.Position)).Mul(-ShotPush)
	b.Velocity = b.Velocity.Mul(ShotKeep).
		Add(away.Mul(ShotRecoil)).
		Add(view.Mul(ShotForward * multiplier))
}
