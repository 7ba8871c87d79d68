package physics_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
)

func expectVec(got, want mgl64.Vec3) {
	ExpectWithOffset(1, got.Sub(want).Len()).To(BeNumerically("<", 1e-9), "got %v, want %v", got, want)
}

var _ = Describe("ResolveCollision", func() {
	It("transfers velocity between equal masses", func() {
		a, _ := physics.NewBody(0, 0.03, 30, mgl64.Vec3{0, 1, 0})
		b, _ := physics.NewBody(1, 0.03, 30, mgl64.Vec3{0.05, 1, 0})
		a.Velocity = mgl64.Vec3{1, 0, 0}

		Expect(physics.ResolveCollision(a, b)).To(BeTrue())
		expectVec(a.Velocity, mgl64.Vec3{})
		expectVec(b.Velocity, mgl64.Vec3{1, 0, 0})
		Expect(physics.Distance(a, b)).To(BeNumerically("~", 0.06, 1e-12))
	})

	It("swaps head-on velocities", func() {
		a := ball(0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 2})
		b := ball(1, mgl64.Vec3{0, 0, 0.05}, mgl64.Vec3{0, 0, -2})
		physics.ResolveCollision(a, b)
		expectVec(a.Velocity, mgl64.Vec3{0, 0, -2})
		expectVec(b.Velocity, mgl64.Vec3{0, 0, 2})
	})

	It("conserves momentum for unequal masses", func() {
		a, _ := physics.NewBody(0, 0.03, 10, mgl64.Vec3{0, 0, 0})
		b, _ := physics.NewBody(1, 0.05, 40, mgl64.Vec3{0.05, 0.02, 0.03})
		a.Velocity = mgl64.Vec3{2, 0, 1}
		b.Velocity = mgl64.Vec3{-1, 0, 0}
		before := a.Velocity.Mul(a.Mass).Add(b.Velocity.Mul(b.Mass))
		energy := a.KineticEnergy() + b.KineticEnergy()

		physics.ResolveCollision(a, b)
		after := a.Velocity.Mul(a.Mass).Add(b.Velocity.Mul(b.Mass))
		expectVec(after, before)
		Expect(a.KineticEnergy() + b.KineticEnergy()).To(BeNumerically("~", energy, 1e-9))
	})

	DescribeTable("separates overlapping pairs to touching distance",
		func(pa, pb mgl64.Vec3, ra, rb float64) {
			a, _ := physics.NewBody(0, ra, 1, pa)
			b, _ := physics.NewBody(1, rb, 2, pb)
			Expect(physics.ResolveCollision(a, b)).To(BeTrue())
			Expect(physics.Distance(a, b)).To(BeNumerically("~", ra+rb, 1e-12))
		},
		Entry("along x", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.04, 0, 0}, 0.03, 0.03),
		Entry("diagonal", mgl64.Vec3{0.1, 1, 0.1}, mgl64.Vec3{0.11, 1.01, 0.12}, 0.03, 0.02),
		Entry("deep", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0.001, 0}, 0.5, 0.5),
	)

	It("does nothing for separated bodies", func() {
		a := ball(0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})
		b := ball(1, mgl64.Vec3{0.06, 0, 0}, mgl64.Vec3{-1, 0, 0})
		pa, pb := *a, *b
		Expect(physics.ResolveCollision(a, b)).To(BeFalse())
		Expect(*a).To(Equal(pa))
		Expect(*b).To(Equal(pb))
	})

	It("splits coincident bodies along +X", func() {
		a := ball(0, mgl64.Vec3{0.2, 1, 0.2}, mgl64.Vec3{})
		b := ball(1, mgl64.Vec3{0.2, 1, 0.2}, mgl64.Vec3{})
		Expect(physics.ResolveCollision(a, b)).To(BeTrue())
		for _, v := range []mgl64.Vec3{a.Position, b.Position, a.Velocity, b.Velocity} {
			for _, c := range v {
				Expect(math.IsNaN(c)).To(BeFalse())
			}
		}
		Expect(a.Position.X()).To(BeNumerically(">", b.Position.X()))
		Expect(physics.Distance(a, b)).To(BeNumerically("~", 0.06, 1e-12))
	})
})
