package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Handle identifies a body by its insertion index.
type Handle int

// Registry owns the simulated bodies and their trails. Bodies and trails are
// kept index-aligned: a body is appended together with an empty trail and
// neither is ever removed.
//
// Registry is not safe for concurrent use.
type Registry struct {
	bodies        []*Body
	trails        []*Trail
	trailCapacity int
}

func NewRegistry(trailCapacity int) *Registry {
	if trailCapacity < 1 {
		trailCapacity = dynamo.DefaultTrailCapacity
	}
	return &Registry{trailCapacity: trailCapacity}
}

// CreateBody appends a body with an empty trail. Invalid input leaves the
// registry unchanged.
func (r *Registry) CreateBody(mass float64, position, velocity r3.Vec) (Handle, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return -1, fmt.Errorf("%w: got %g", dynamo.ErrInvalidMass, mass)
	}
	if !dynamo.IsFinite(position) || !dynamo.IsFinite(velocity) {
		return -1, fmt.Errorf("%w: position %v velocity %v", dynamo.ErrInvalidState, position, velocity)
	}
	r.bodies = append(r.bodies, &Body{mass: mass, Position: position, Velocity: velocity})
	r.trails = append(r.trails, NewTrail(r.trailCapacity))
	return Handle(len(r.bodies) - 1), nil
}

func (r *Registry) Len() int           { return len(r.bodies) }
func (r *Registry) TrailCapacity() int { return r.trailCapacity }

// Bodies returns a copy of every body in insertion order.
func (r *Registry) Bodies() []Body {
	out := make([]Body, len(r.bodies))
	for i, b := range r.bodies {
		out[i] = *b
	}
	return out
}

// Body returns a copy of the body named by h.
func (r *Registry) Body(h Handle) (Body, error) {
	if int(h) < 0 || int(h) >= len(r.bodies) {
		return Body{}, fmt.Errorf("%w: %d", dynamo.ErrUnknownBody, h)
	}
	return *r.bodies[h], nil
}

// Trail returns a copy of the trail of h, oldest first.
func (r *Registry) Trail(h Handle) ([]r3.Vec, error) {
	if int(h) < 0 || int(h) >= len(r.trails) {
		return nil, fmt.Errorf("%w: %d", dynamo.ErrUnknownBody, h)
	}
	return r.trails[h].Points(), nil
}

// Entries exposes the live bodies and trails to the integrator.
// Callers must not retain or resize the returned slices.
func (r *Registry) Entries() ([]*Body, []*Trail) {
	return r.bodies, r.trails
}

// Snapshot builds the outbound view of every body and its trail.
func (r *Registry) Snapshot() []dynamo.BodyFrame {
	out := r.States()
	for i := range out {
		if i < len(r.trails) {
			out[i].Trail = r.trails[i].Points()
		}
	}
	return out
}

// States is Snapshot without trails.
func (r *Registry) States() []dynamo.BodyFrame {
	out := make([]dynamo.BodyFrame, len(r.bodies))
	for i, b := range r.bodies {
		out[i] = dynamo.BodyFrame{
			Mass:     b.mass,
			Position: b.Position,
			Velocity: b.Velocity,
		}
	}
	return out
}
