package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Reference scene configuration.
const (
	DefaultG             = 0.5
	DefaultDt            = 0.016
	DefaultMinDistance   = 0.1
	DefaultTrailCapacity = 100
)

// Params holds the constants that are fixed for a session.
type Params struct {
	G             float64
	Dt            float64
	MinDistance   float64
	TrailCapacity int
}

func DefaultParams() Params {
	return Params{
		G:             DefaultG,
		Dt:            DefaultDt,
		MinDistance:   DefaultMinDistance,
		TrailCapacity: DefaultTrailCapacity,
	}
}

// Validate reports the first parameter outside its valid range.
func (p Params) Validate() error {
	switch {
	case math.IsNaN(p.G) || math.IsInf(p.G, 0) || p.G < 0:
		return fmt.Errorf("%w: G must be non-negative, got %g", ErrParameterBounds, p.G)
	case !(p.Dt > 0) || math.IsInf(p.Dt, 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, p.Dt)
	case !(p.MinDistance > 0) || math.IsInf(p.MinDistance, 0):
		return fmt.Errorf("%w: min distance must be positive, got %g", ErrParameterBounds, p.MinDistance)
	case p.TrailCapacity < 1:
		return fmt.Errorf("%w: trail capacity must be at least 1, got %d", ErrParameterBounds, p.TrailCapacity)
	}
	return nil
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// BodyFrame is the outbound view of one body.
type BodyFrame struct {
	Mass     float64
	Position r3.Vec
	Velocity r3.Vec
	Trail    []r3.Vec
}

// Frame is the outbound view of the whole system after a tick.
type Frame struct {
	Step   int
	Time   float64
	Bodies []BodyFrame
}

// Positions returns the body positions in registry order.
func (f Frame) Positions() []r3.Vec {
	out := make([]r3.Vec, len(f.Bodies))
	for i, b := range f.Bodies {
		out[i] = b.Position
	}
	return out
}

// IsValid reports whether every position and velocity in the frame is finite.
func (f Frame) IsValid() bool {
	for _, b := range f.Bodies {
		if !IsFinite(b.Position) || !IsFinite(b.Velocity) {
			return false
		}
	}
	return true
}

// Observer receives the frame produced by every tick.
type Observer interface {
	OnTick(f Frame)
}

// Metric accumulates a scalar summary over the frames of a run.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}
