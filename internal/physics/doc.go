// Package physics holds the body registry and the gravitational force law.
//
//   - [Registry]: ordered bodies with index-aligned [Trail]s
//   - [PairForce], [AccumulateForces]: Newtonian attraction with a distance floor
//   - [Energy], [Momentum], [AngularMomentum]: conservation diagnostics
//
// # Degenerate geometry
//
// Bodies closer than the configured minimum distance feel the force computed
// at that distance. Coincident bodies feel no force from each other, so a
// tick never produces NaN or Inf from separation alone.
package physics
