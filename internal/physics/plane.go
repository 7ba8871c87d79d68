package physics

// TimeToPlane returns how long until the sphere surface reaches the plane
// axis = offset. dir 1 measures to the trailing surface, which is the face
// that meets a lower bound such as x-; any other value measures to the
// leading surface. It returns -1 when the body does not move along axis.
func TimeToPlane(b *Body, axis Axis, dir int, offset float64) float64 {
	v := b.Velocity[axis]
	if v == 0 {
		return -1
	}
	p := b.Position[axis]
	if dir == 1 {
		return (offset - p + b.Radius) / v
	}
	return (offset - p - b.Radius) / v
}

// Rail names one of the four side planes of Bounds.
type Rail int

const (
	RailXPlus Rail = iota
	RailXMinus
	RailZPlus
	RailZMinus
)

func (r Rail) String() string {
	switch r {
	case RailXPlus:
		return "x+"
	case RailXMinus:
		return "x-"
	case RailZPlus:
		return "z+"
	case RailZMinus:
		return "z-"
	}
	return "?"
}

// NextRail predicts which rail b reaches first if it keeps its velocity.
// ok is false when the body is not heading towards any rail.
func NextRail(b *Body, bd Bounds) (rail Rail, t float64, ok bool) {
	candidates := []struct {
		rail   Rail
		axis   Axis
		dir    int
		offset float64
	}{
		{RailXPlus, AxisX, 0, bd.XPlus},
		{RailXMinus, AxisX, 1, bd.XMinus},
		{RailZPlus, AxisZ, 0, bd.ZPlus},
		{RailZMinus, AxisZ, 1, bd.ZMinus},
	}
	t = -1
	for _, c := range candidates {
		ct := TimeToPlane(b, c.axis, c.dir, c.offset)
		if ct <= 0 {
			continue
		}
		if !ok || ct < t {
			rail, t, ok = c.rail, ct, true
		}
	}
	return rail, t, ok
}
