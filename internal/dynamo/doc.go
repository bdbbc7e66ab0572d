// Package dynamo provides the core types shared by the simulation packages.
//
// The package defines the parameters and exported data of a gravitational
// N-body session:
//
//   - [Params]: gravitational constant, step size, force floor, trail capacity
//   - [Frame]: read-only snapshot of every body at one tick
//   - [BodyFrame]: mass, kinematic state and trail of a single body
//   - Sentinel errors such as [ErrInvalidMass] and [ErrInconsistentState]
//
// # Example
//
//	p := dynamo.DefaultParams()
//	reg := physics.NewRegistry(p.TrailCapacity)
//	reg.CreateBody(100, r3.Vec{X: 2}, r3.Vec{})
//	integ := integrators.NewSymplecticEuler(p)
//	_ = integ.Tick(reg)
//
// # Thread Safety
//
// Frames are plain values and safe to share once built. Registries are NOT
// thread-safe; hosts that mutate from more than one goroutine go through
// [sim.Simulator], which serializes every mutating call.
package dynamo
