package physics_test

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
)

func ball(id int, pos, vel mgl64.Vec3) *physics.Body {
	b, err := physics.NewBody(id, 0.03, 10, pos)
	Expect(err).NotTo(HaveOccurred())
	b.Velocity = vel
	return b
}

var _ = Describe("Body", func() {
	Describe("NewBody", func() {
		It("rejects non-positive radius and mass", func() {
			_, err := physics.NewBody(0, 0, 1, mgl64.Vec3{})
			Expect(errors.Is(err, physics.ErrInvalidBody)).To(BeTrue())

			_, err = physics.NewBody(0, 0.1, -1, mgl64.Vec3{})
			Expect(errors.Is(err, physics.ErrInvalidBody)).To(BeTrue())
		})

		It("starts at rest with identity orientation", func() {
			b := ball(3, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{})
			Expect(b.ID).To(Equal(3))
			Expect(b.Kind).To(Equal(physics.KindBall))
			Expect(b.Orientation).To(Equal(mgl64.QuatIdent()))
		})
	})

	Describe("Validate", func() {
		It("flags non-finite state", func() {
			b := ball(0, mgl64.Vec3{}, mgl64.Vec3{math.NaN(), 0, 0})
			Expect(errors.Is(b.Validate(), physics.ErrInvalidState)).To(BeTrue())
		})
	})

	Describe("Advance", func() {
		It("is a no-op for dt = 0", func() {
			b := ball(0, mgl64.Vec3{0.1, 1, 0.2}, mgl64.Vec3{3, 0, -1})
			before := *b
			b.Advance(0)
			Expect(*b).To(Equal(before))
		})

		It("is reproducible and matches one long step", func() {
			vel := mgl64.Vec3{0.5, 0, -0.25}
			const dt, n = 0.125, 8

			stepped := ball(0, mgl64.Vec3{}, vel)
			again := ball(1, mgl64.Vec3{}, vel)
			for i := 0; i < n; i++ {
				stepped.Advance(dt)
				again.Advance(dt)
			}
			Expect(stepped.Position).To(Equal(again.Position))
			Expect(stepped.Orientation).To(Equal(again.Orientation))

			once := ball(2, mgl64.Vec3{}, vel)
			once.Advance(n * dt)
			for i := range 3 {
				Expect(stepped.Position[i]).To(BeNumerically("~", once.Position[i], 1e-12))
			}
		})

		It("rolls only above the planar speed threshold", func() {
			slow := ball(0, mgl64.Vec3{}, mgl64.Vec3{0.05, 3, 0})
			slow.Advance(0.1)
			Expect(slow.Orientation).To(Equal(mgl64.QuatIdent()))

			fast := ball(1, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
			fast.Advance(0.1)
			Expect(fast.Orientation.ApproxEqual(mgl64.QuatIdent())).To(BeFalse())
			Expect(fast.Orientation.Len()).To(BeNumerically("~", 1, 1e-9))
		})
	})

	Describe("ApplyFriction", func() {
		It("removes a constant amount of speed", func() {
			b := ball(0, mgl64.Vec3{}, mgl64.Vec3{0, 0, 2})
			b.ApplyFriction(0.5)
			Expect(b.Velocity.Z()).To(BeNumerically("~", 1.5, 1e-12))
		})

		It("overshoots near rest instead of clamping", func() {
			b := ball(0, mgl64.Vec3{}, mgl64.Vec3{0.01, 0, 0})
			b.ApplyFriction(0.03)
			Expect(b.Velocity.X()).To(BeNumerically("~", -0.02, 1e-12))
		})

		It("leaves a body at rest untouched", func() {
			b := ball(0, mgl64.Vec3{}, mgl64.Vec3{})
			b.ApplyFriction(0.03)
			Expect(b.Velocity).To(Equal(mgl64.Vec3{}))
		})
	})

	It("applies gravity to the vertical component only", func() {
		b := ball(0, mgl64.Vec3{}, mgl64.Vec3{1, 0, 1})
		b.ApplyGravity(physics.Gravity, 0.1)
		Expect(b.Velocity).To(Equal(mgl64.Vec3{1, -1, 1}))
	})

	It("reflects about a normal", func() {
		b := ball(0, mgl64.Vec3{}, mgl64.Vec3{1, -1, 0})
		b.ReflectNormal(mgl64.Vec3{0, 5, 0})
		expectVec(b.Velocity, mgl64.Vec3{1, 1, 0})
	})

	It("places the mesh at the body position scaled by radius", func() {
		b := ball(0, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{})
		m := b.Transform()
		Expect(m.Col(3)).To(Equal(mgl64.Vec4{1, 2, 3, 1}))
		Expect(m.At(0, 0)).To(BeNumerically("~", 0.03, 1e-12))
	})

	It("measures distance between centres", func() {
		a := ball(0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{})
		b := ball(1, mgl64.Vec3{3, 4, 0}, mgl64.Vec3{})
		Expect(physics.Distance(a, b)).To(BeNumerically("~", 5, 1e-12))
	})
})
