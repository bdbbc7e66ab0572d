package integrators

import (
	"fmt"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// SymplecticEuler advances a registry by one fixed step with semi-implicit
// Euler: velocity is updated from the accumulated force first, and the new
// velocity moves the position.
type SymplecticEuler struct {
	params dynamo.Params
	forces []r3.Vec
}

func NewSymplecticEuler(p dynamo.Params) *SymplecticEuler {
	return &SymplecticEuler{params: p}
}

func (e *SymplecticEuler) Params() dynamo.Params { return e.params }

// Tick integrates every body once and appends its new position to its trail.
// Forces are computed before any body moves, so an error leaves the registry
// untouched.
func (e *SymplecticEuler) Tick(reg *physics.Registry) error {
	bodies, trails := reg.Entries()
	if len(bodies) != len(trails) {
		return fmt.Errorf("%w: %d bodies, %d trails", dynamo.ErrInconsistentState, len(bodies), len(trails))
	}

	if cap(e.forces) < len(bodies) {
		e.forces = make([]r3.Vec, len(bodies))
	}
	forces := e.forces[:len(bodies)]
	physics.AccumulateForces(bodies, forces, e.params)

	dt := e.params.Dt
	for i, b := range bodies {
		m := b.Mass()
		acc := r3.Vec{X: forces[i].X / m, Y: forces[i].Y / m, Z: forces[i].Z / m}
		b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, acc))
		b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
		trails[i].Push(b.Position)
	}
	return nil
}
