package physics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// PairForce returns the gravitational force on a from b. The distance used in
// the inverse-square law is floored at p.MinDistance, and coincident bodies
// exert no force on each other.
func PairForce(a, b *Body, p dynamo.Params) r3.Vec {
	diff := r3.Sub(b.Position, a.Position)
	dir, dist, ok := direction(diff)
	if !ok {
		return r3.Vec{}
	}
	clamped := math.Max(dist, p.MinDistance)
	magnitude := p.G * (a.mass * b.mass) / (clamped * clamped)
	return r3.Scale(magnitude, dir)
}

// direction splits v into a unit vector and its length. The components are
// divided by the largest magnitude first so subnormal separations still
// yield a finite direction.
func direction(v r3.Vec) (r3.Vec, float64, bool) {
	s := math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
	if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return r3.Vec{}, 0, false
	}
	scaled := r3.Vec{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
	n := r3.Norm(scaled)
	return r3.Vec{X: scaled.X / n, Y: scaled.Y / n, Z: scaled.Z / n}, s * n, true
}

// AccumulateForces sums the pairwise forces on every body into forces, which
// must have the same length as bodies. Each unordered pair is visited once and
// contributes equal and opposite forces.
func AccumulateForces(bodies []*Body, forces []r3.Vec, p dynamo.Params) {
	for i := range forces {
		forces[i] = r3.Vec{}
	}
	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			f := PairForce(bodies[i], bodies[j], p)
			forces[i] = r3.Add(forces[i], f)
			forces[j] = r3.Sub(forces[j], f)
		}
	}
}
