package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Body is a point mass. Mass is fixed at creation; Position and Velocity
// are advanced in place by the integrator.
type Body struct {
	mass     float64
	Position r3.Vec
	Velocity r3.Vec
}

func (b *Body) Mass() float64 { return b.mass }

// Radius is the display radius, cbrt(mass)/10.
func (b *Body) Radius() float64 { return math.Cbrt(b.mass) * 0.1 }

// KineticEnergy returns 0.5*m*|v|^2.
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.mass * r3.Norm2(b.Velocity)
}
