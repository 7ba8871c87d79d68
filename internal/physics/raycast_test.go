package physics_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
)

var _ = Describe("Raycast", func() {
	Describe("RaySphereHit", func() {
		It("returns the near surface point when aimed at the centre", func() {
			contact, d := physics.RaySphereHit(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, 2})
			expectVec(contact, mgl64.Vec3{0, 0, -1})
			Expect(d).To(BeNumerically("~", 4, 1e-12))
		})

		It("returns the sentinel on a miss", func() {
			contact, d := physics.RaySphereHit(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{0, 3, -5}, mgl64.Vec3{0, 0, 1})
			Expect(contact).To(Equal(physics.NoHit))
			Expect(d).To(Equal(-1.0))
		})

		It("returns the sentinel for a zero direction", func() {
			contact, d := physics.RaySphereHit(mgl64.Vec3{}, 1, mgl64.Vec3{0, 0, -5}, mgl64.Vec3{})
			Expect(contact).To(Equal(physics.NoHit))
			Expect(d).To(Equal(-1.0))
		})

		It("gives a negative distance for a sphere behind the origin", func() {
			_, d := physics.RaySphereHit(mgl64.Vec3{0, 0, -3}, 1, mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
			Expect(d).To(BeNumerically("<", 0))
		})
	})

	Describe("Raycast", func() {
		origin := mgl64.Vec3{0, 1, -2}
		dir := mgl64.Vec3{0, 0, 1}

		It("picks the nearest body in front", func() {
			far := ball(0, mgl64.Vec3{0, 1, 1}, mgl64.Vec3{})
			near := ball(1, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{})
			hit, ok := physics.Raycast([]*physics.Body{far, near}, origin, dir)
			Expect(ok).To(BeTrue())
			Expect(hit.Body).To(BeIdenticalTo(near))
			Expect(hit.Distance).To(BeNumerically("~", 1.97, 1e-12))
		})

		It("is not blocked by a body behind the origin", func() {
			behind := ball(0, mgl64.Vec3{0, 1, -3}, mgl64.Vec3{})
			ahead := ball(1, mgl64.Vec3{0, 1, 1}, mgl64.Vec3{})
			hit, ok := physics.Raycast([]*physics.Body{behind, ahead}, origin, dir)
			Expect(ok).To(BeTrue())
			Expect(hit.Body).To(BeIdenticalTo(ahead))
		})

		It("keeps the first of two equally distant bodies", func() {
			first := ball(0, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{})
			twin := ball(1, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{})
			hit, _ := physics.Raycast([]*physics.Body{first, twin}, origin, dir)
			Expect(hit.Body).To(BeIdenticalTo(first))
		})

		It("reports a miss", func() {
			b := ball(0, mgl64.Vec3{1, 1, 0}, mgl64.Vec3{})
			_, ok := physics.Raycast([]*physics.Body{b}, origin, dir)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("ApplyShotImpulse", func() {
		It("blends current velocity, recoil and view push", func() {
			b := ball(0, mgl64.Vec3{}, mgl64.Vec3{0, 0, 0})
			physics.ApplyShotImpulse(b, mgl64.Vec3{0, 0, -0.03}, mgl64.Vec3{0, 0, 1}, 1)
			expectVec(b.Velocity, mgl64.Vec3{0, 0, 2.6})
		})

		It("scales the view push by the multiplier", func() {
			b := ball(0, mgl64.Vec3{}, mgl64.Vec3{2, 0, 0})
			physics.ApplyShotImpulse(b, mgl64.Vec3{0, 0.03, 0}, mgl64.Vec3{1, 0, 0}, 4)
			expectVec(b.Velocity, mgl64.Vec3{1 + 2.4, -2, 0})
		})
	})
})

var _ = Describe("TimeToPlane", func() {
	It("uses the radius sign selected by dir", func() {
		b := ball(0, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0})
		Expect(physics.TimeToPlane(b, physics.AxisX, 1, 1)).To(BeNumerically("~", 1.03, 1e-12))
		Expect(physics.TimeToPlane(b, physics.AxisX, -1, 1)).To(BeNumerically("~", 0.97, 1e-12))
	})

	It("returns -1 for a still axis", func() {
		b := ball(0, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0})
		Expect(physics.TimeToPlane(b, physics.AxisZ, 1, 0.5)).To(Equal(-1.0))
	})
})

var _ = Describe("NextRail", func() {
	bounds := physics.DefaultTable().Bounds

	It("picks the closest rail ahead", func() {
		b := ball(0, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0.1})
		rail, t, ok := physics.NextRail(b, bounds)
		Expect(ok).To(BeTrue())
		Expect(rail).To(Equal(physics.RailXPlus))
		Expect(t).To(BeNumerically("~", (1.125-0.03)/1, 1e-12))
	})

	It("handles rails approached from above", func() {
		b := ball(0, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -1})
		rail, t, ok := physics.NextRail(b, bounds)
		Expect(ok).To(BeTrue())
		Expect(rail).To(Equal(physics.RailZMinus))
		Expect(t).To(BeNumerically("~", 0.495, 1e-12))
	})

	It("reports nothing for a resting ball", func() {
		_, _, ok := physics.NextRail(ball(0, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{}), bounds)
		Expect(ok).To(BeFalse())
	})
})
