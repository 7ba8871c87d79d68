package physics_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
)

var _ = Describe("Table constraints", func() {
	var table *physics.Table

	BeforeEach(func() {
		table = physics.DefaultTable()
	})

	It("has six pockets at floor height", func() {
		Expect(table.Pockets).To(HaveLen(6))
		for _, p := range table.Pockets {
			Expect(p.Y()).To(Equal(table.Floor))
		}
		Expect(table.PocketBottom()).To(BeNumerically("~", 0.98-1.5, 1e-12))
	})

	Describe("CollideWithBounds", func() {
		It("reflects and damps velocity on the x+ rail", func() {
			b := ball(0, mgl64.Vec3{1.12, 1.01, 0}, mgl64.Vec3{2, 0, 0})
			Expect(physics.CollideWithBounds(b, table.Bounds)).To(BeTrue())
			Expect(b.Position.X()).To(BeNumerically("~", 1.125-0.03, 1e-12))
			Expect(b.Velocity.X()).To(BeNumerically("~", -1.0, 1e-12))
		})

		It("resolves a corner one axis at a time", func() {
			b := ball(0, mgl64.Vec3{-0.87, 1.01, -0.53}, mgl64.Vec3{-1, 0, -2})
			Expect(physics.CollideWithBounds(b, table.Bounds)).To(BeTrue())
			Expect(b.Position.X()).To(BeNumerically("~", -0.86+0.03, 1e-12))
			Expect(b.Position.Z()).To(BeNumerically("~", -0.525+0.03, 1e-12))
			Expect(b.Velocity).To(Equal(mgl64.Vec3{0.5, 0, 1}))
		})

		It("bounces off the ceiling", func() {
			b := ball(0, mgl64.Vec3{0, 19.99, 0}, mgl64.Vec3{0, 4, 0})
			physics.CollideWithBounds(b, table.Bounds)
			Expect(b.Velocity.Y()).To(BeNumerically("~", -2, 1e-12))
		})

		It("ignores a body well inside", func() {
			b := ball(0, mgl64.Vec3{0, 1.01, 0}, mgl64.Vec3{1, 0, 1})
			Expect(physics.CollideWithBounds(b, table.Bounds)).To(BeFalse())
			Expect(b.Velocity).To(Equal(mgl64.Vec3{1, 0, 1}))
		})
	})

	Describe("CollideWithFloor", func() {
		It("rests the body on the felt with low restitution", func() {
			b := ball(0, mgl64.Vec3{0, 0.99, 0}, mgl64.Vec3{0, -1, 0})
			Expect(physics.CollideWithFloor(b, table.Floor)).To(BeTrue())
			Expect(b.Position.Y()).To(BeNumerically("~", 1.01, 1e-12))
			Expect(b.Velocity.Y()).To(BeNumerically("~", 0.2, 1e-12))
		})
	})

	Describe("CollideWithHole", func() {
		pocket := mgl64.Vec3{0, 0.98, 0}

		It("reports a body inside the cylinder at any height", func() {
			for _, y := range []float64{-3, 0.5, 1.01, 15} {
				b := ball(0, mgl64.Vec3{0.05, y, 0}, mgl64.Vec3{})
				Expect(physics.CollideWithHole(b, pocket, 0.09, 0.98, 1.5)).To(BeTrue())
			}
		})

		It("reports a body outside the cylinder", func() {
			b := ball(0, mgl64.Vec3{0.2, 1.01, 0}, mgl64.Vec3{})
			Expect(physics.CollideWithHole(b, pocket, 0.09, 0.98, 1.5)).To(BeFalse())
		})

		It("catches a sunk body on the pocket bottom", func() {
			b := ball(0, mgl64.Vec3{0, -1, 0}, mgl64.Vec3{0, -5, 0})
			physics.CollideWithHole(b, pocket, 0.09, 0.98, 1.5)
			Expect(b.Position.Y()).To(BeNumerically("~", 0.98-1.5+0.03, 1e-12))
			Expect(b.Velocity.Y()).To(BeNumerically("~", 1, 1e-12))
		})

		It("pushes a falling body back off the rim wall", func() {
			b := ball(0, mgl64.Vec3{0.075, 0.9, 0}, mgl64.Vec3{1, 0, 0})
			Expect(physics.CollideWithHole(b, pocket, 0.09, 0.98, 1.5)).To(BeTrue())
			Expect(b.Position.X()).To(BeNumerically("~", 0.06, 1e-12))
			Expect(b.Velocity.X()).To(BeNumerically("~", -1, 1e-12))
		})

		It("leaves a ball rolling over the rim edge alone while clear of it", func() {
			b := ball(0, mgl64.Vec3{0.07, 1.01, 0}, mgl64.Vec3{-1, 0, 0})
			Expect(physics.CollideWithHole(b, pocket, 0.09, 0.98, 1.5)).To(BeTrue())
			Expect(b.Position).To(Equal(mgl64.Vec3{0.07, 1.01, 0}))
			Expect(b.Velocity).To(Equal(mgl64.Vec3{-1, 0, 0}))
		})

		It("does not correct a body fully inside", func() {
			b := ball(0, mgl64.Vec3{0.01, 0.5, 0}, mgl64.Vec3{1, 0, 0})
			physics.CollideWithHole(b, pocket, 0.09, 0.98, 1.5)
			Expect(b.Position.X()).To(Equal(0.01))
		})
	})

	Describe("Resolve", func() {
		It("skips rails for a body inside a corner pocket", func() {
			corner := table.Pockets[0]
			b := ball(0, mgl64.Vec3{corner.X(), 0.8, corner.Z()}, mgl64.Vec3{0, -1, 0})
			Expect(table.Resolve(b)).To(BeTrue())
			Expect(b.Position).To(Equal(mgl64.Vec3{corner.X(), 0.8, corner.Z()}))
		})

		It("applies rails and floor elsewhere", func() {
			b := ball(0, mgl64.Vec3{1.2, 0.9, 0}, mgl64.Vec3{1, -1, 0})
			Expect(table.Resolve(b)).To(BeFalse())
			Expect(b.Position.X()).To(BeNumerically("~", 1.095, 1e-12))
			Expect(b.Position.Y()).To(BeNumerically("~", 1.01, 1e-12))
			Expect(b.Velocity.X()).To(BeNumerically("<", 0))
			Expect(b.Velocity.Y()).To(BeNumerically(">", 0))
		})

		It("locates pockets", func() {
			Expect(table.PocketAt(table.Pockets[4])).To(Equal(4))
			Expect(table.PocketAt(mgl64.Vec3{0, 1, 0})).To(Equal(-1))
		})
	})
})
