package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// Up is the world vertical.
	Up = mgl64.Vec3{0, 1, 0}

	// rollAxis is the fixed skew axis used for the rolling animation.
	rollAxis = mgl64.Vec3{1, 2, 1}.Normalize()
)

// Planarize drops the vertical component of v.
func Planarize(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// Dist returns the euclidean distance between two points.
func Dist(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// PlanarDist returns the distance between a and b projected on the XZ plane.
func PlanarDist(a, b mgl64.Vec3) float64 {
	return Dist(Planarize(a), Planarize(b))
}

// safeNormalize is mgl64's Normalize without the division by zero.
func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
