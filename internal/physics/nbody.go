package physics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Energy returns kinetic plus pairwise potential energy. The potential uses
// the same distance floor as the force law.
func Energy(bodies []Body, p dynamo.Params) float64 {
	ke := 0.0
	pe := 0.0
	for i := range bodies {
		ke += bodies[i].KineticEnergy()
		for j := i + 1; j < len(bodies); j++ {
			r := math.Max(r3.Norm(r3.Sub(bodies[j].Position, bodies[i].Position)), p.MinDistance)
			pe -= p.G * bodies[i].mass * bodies[j].mass / r
		}
	}
	return ke + pe
}

func Momentum(bodies []Body) r3.Vec {
	var total r3.Vec
	for i := range bodies {
		total = r3.Add(total, r3.Scale(bodies[i].mass, bodies[i].Velocity))
	}
	return total
}

func AngularMomentum(bodies []Body) r3.Vec {
	var total r3.Vec
	for i := range bodies {
		total = r3.Add(total, r3.Scale(bodies[i].mass, r3.Cross(bodies[i].Position, bodies[i].Velocity)))
	}
	return total
}

// CenterOfMass returns the mass-weighted mean position, or the origin for an
// empty system.
func CenterOfMass(bodies []Body) r3.Vec {
	var sum r3.Vec
	mass := 0.0
	for i := range bodies {
		sum = r3.Add(sum, r3.Scale(bodies[i].mass, bodies[i].Position))
		mass += bodies[i].mass
	}
	if mass == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/mass, sum)
}

// CircularOrbitSpeed returns the speed each of two equal masses m needs to
// orbit their common centre on a circle of separation d.
func CircularOrbitSpeed(g, m, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return math.Sqrt(g * m / (2 * d))
}

// FromFrame rebuilds read-only bodies from an exported frame so the
// diagnostics above can run on recorded data.
func FromFrame(f dynamo.Frame) []Body {
	out := make([]Body, len(f.Bodies))
	for i, b := range f.Bodies {
		out[i] = Body{mass: b.Mass, Position: b.Position, Velocity: b.Velocity}
	}
	return out
}
