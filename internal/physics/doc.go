// Package physics implements the sphere kernel of the table simulation.
//
// Every simulated object is a [Body]: a sphere with a mass, a radius, a
// position, a velocity and a purely visual orientation. The package provides
// the operations a tick is made of:
//
//   - [Body.Advance], [Body.ApplyFriction], [Body.ApplyGravity]: integration
//   - [Table.Resolve]: pocket, rail, ceiling and floor constraints
//   - [ResolveCollision]: elastic sphere-sphere response
//   - [RaySphereHit] and [Raycast]: hit-scan probes for shooting
//
// # Example
//
//	table := physics.DefaultTable()
//	table.Resolve(ball)
//	ball.Advance(dt)
//	ball.ApplyFriction(0.6 * dt)
//	ball.ApplyGravity(physics.Gravity, dt)
//
// # Thread Safety
//
// Nothing in this package synchronises. A tick mutates bodies in place and
// later pairs observe positions written by earlier pairs, so callers that
// fan out work must give each goroutine its own bodies.
package physics
