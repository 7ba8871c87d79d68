package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye, Target mgl64.Vec3
	FOV         float64 // vertical, radians
	Near, Far   float64
	Zoom        float64 // multiplies the aim distance
}

func NewCamera() *Camera {
	return &Camera{FOV: math.Pi / 3, Near: 0.01, Far: 50, Zoom: 2}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Max(0.5, c.Zoom/1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Min(20, c.Zoom*1.2) }

// Follow places the camera where the aim's orbit puts it around target.
func (c *Camera) Follow(aim sim.Aim, target mgl64.Vec3) {
	c.Target = target
	c.Eye = target.Sub(aim.ViewDirection().Mul(aim.Distance * c.Zoom))
}

func (c *Camera) matrix(aspect float64) mgl64.Mat4 {
	view := mgl64.LookAtV(c.Eye, c.Target, worldUp)
	return mgl64.Perspective(c.FOV, aspect, c.Near, c.Far).Mul4(view)
}

// Project maps a world point to sub-pixel coordinates on a sw×sh screen.
// It returns the clip depth and whether the point is in front of the camera
// and on screen.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	clip := c.matrix(float64(sw) / float64(sh)).Mul4x1(p.Vec4(1))
	if clip.W() <= c.Near {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	sx := int(math.Round((ndc.X() + 1) / 2 * float64(sw-1)))
	sy := int(math.Round((1 - ndc.Y()) / 2 * float64(sh-1)))
	return sx, sy, clip.W(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// right is the screen-horizontal world direction.
func (c *Camera) right() mgl64.Vec3 {
	fwd := c.Target.Sub(c.Eye)
	r := fwd.Cross(worldUp)
	if r.Len() == 0 {
		return mgl64.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }

// AddRing adds a horizontal n-gon of radius r around center.
func (w *Wireframe) AddRing(center mgl64.Vec3, r float64, n int) {
	for i := 0; i < n; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(n)
		a1 := 2 * math.Pi * float64(i+1) / float64(n)
		w.AddEdge(
			center.Add(mgl64.Vec3{r * math.Cos(a0), 0, r * math.Sin(a0)}),
			center.Add(mgl64.Vec3{r * math.Cos(a1), 0, r * math.Sin(a1)}),
		)
	}
}

// TableWireframe outlines the rails and pockets at floor height.
func TableWireframe(t *physics.Table) *Wireframe {
	w := NewWireframe()
	b, y := t.Bounds, t.Floor
	corners := []mgl64.Vec3{
		{b.XMinus, y, b.ZMinus}, {b.XPlus, y, b.ZMinus},
		{b.XPlus, y, b.ZPlus}, {b.XMinus, y, b.ZPlus},
	}
	for i := range corners {
		w.AddEdge(corners[i], corners[(i+1)%len(corners)])
	}
	for _, p := range t.Pockets {
		w.AddRing(mgl64.Vec3{p.X(), y, p.Z()}, t.PocketRadius, 12)
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far-to-near. Edges with an endpoint behind
// the camera are skipped.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Dots()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if d1 <= 0 || d2 <= 0 || !(v1 || v2) {
			continue
		}
		proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// RenderBalls draws every body as a screen-space circle scaled by depth.
func RenderBalls(c *Canvas, bodies []*physics.Body, cam *Camera) {
	cw, ch := c.Dots()
	right := cam.right()
	for _, b := range bodies {
		x, y, d, ok := cam.Project(b.Position, cw, ch)
		if d <= 0 || !ok {
			continue
		}
		ex, ey, _, _ := cam.Project(b.Position.Add(right.Mul(b.Radius)), cw, ch)
		r := int(math.Hypot(float64(ex-x), float64(ey-y)))
		c.Circle(x, y, r)
	}
}
