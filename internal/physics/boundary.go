package physics

import "github.com/go-gl/mathgl/mgl64"

// CollideWithBounds clamps the body inside the rails and the ceiling. Planes
// are handled one at a time in the order x+, x-, z+, z-, y+, so a corner
// contact reflects both components in sequence. It reports whether any
// plane was touched.
func CollideWithBounds(b *Body, bounds Bounds) bool {
	hit := false
	p := &b.Position

	if p[0]+b.Radius > bounds.XPlus {
		p[0] = bounds.XPlus - b.Radius
		b.ReflectAxis(AxisX, WallRestitution)
		hit = true
	}
	if p[0]-b.Radius < bounds.XMinus {
		p[0] = bounds.XMinus + b.Radius
		b.ReflectAxis(AxisX, WallRestitution)
		hit = true
	}
	if p[2]+b.Radius > bounds.ZPlus {
		p[2] = bounds.ZPlus - b.Radius
		b.ReflectAxis(AxisZ, WallRestitution)
		hit = true
	}
	if p[2]-b.Radius < bounds.ZMinus {
		p[2] = bounds.ZMinus + b.Radius
		b.ReflectAxis(AxisZ, WallRestitution)
		hit = true
	}
	if p[1]+b.Radius > bounds.YPlus {
		p[1] = bounds.YPlus - b.Radius
		b.ReflectAxis(AxisY, WallRestitution)
		hit = true
	}
	return hit
}

// CollideWithFloor rests the body on the surface at height floor.
func CollideWithFloor(b *Body, floor float64) bool {
	if b.Position[1]-b.Radius < floor {
		b.Position[1] = floor + b.Radius
		b.ReflectAxis(AxisY, FloorRestitution)
		return true
	}
	return false
}

// PointInCylinder reports whether p lies inside the infinite vertical
// cylinder of the given radius around center.
func PointInCylinder(p, center mgl64.Vec3, radius float64) bool {
	return PlanarDist(p, center) < radius
}

// CollideWithHole handles one pocket: a floor at tableHeight-depth, and the
// cylindrical rim around pocket. It returns true whenever the body is inside
// the pocket cylinder, whether or not the rim pushed it.
func CollideWithHole(b *Body, pocket mgl64.Vec3, pocketRadius, tableHeight, depth float64) bool {
	bottom := tableHeight - depth
	if b.Position[1]-b.Radius < bottom {
		b.Position[1] = bottom + b.Radius
		b.ReflectAxis(AxisY, FloorRestitution)
	}

	d := PlanarDist(b.Position, pocket)
	if d >= pocketRadius {
		return false
	}
	if d < pocketRadius-b.Radius {
		return true
	}

	dir := safeNormalize(Planarize(b.Position).Sub(Planarize(pocket)))
	contact := pocket.Add(dir.Mul(pocketRadius))
	if b.Position.Y() <= tableHeight {
		contact[1] = b.Position.Y()
	}

	offset := Dist(b.Position, contact) - b.Radius
	if offset <= 0 {
		b.Position = b.Position.Add(dir.Mul(offset))
		b.ReflectNormal(contact.Sub(b.Position))
	}
	return true
}

// Resolve runs every pocket test and, when the body is in none of them,
// the rail and floor constraints.
func (t *Table) Resolve(b *Body) (inPocket bool) {
	for _, pocket := range t.Pockets {
		inPocket = CollideWithHole(b, pocket, t.PocketRadius, t.Floor, t.PocketDepth) || inPocket
	}
	if !inPocket {
		CollideWithBounds(b, t.Bounds)
		CollideWithFloor(b, t.Floor)
	}
	return inPocket
}
