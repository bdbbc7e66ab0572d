package metrics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bounded reports the fraction of frames in which every body stayed within
// radius of the origin.
type Bounded struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewBounded(radius float64) *Bounded {
	return &Bounded{
		name:   "bounded",
		radius: radius,
	}
}

func (s *Bounded) Name() string {
	return s.name
}

func (s *Bounded) Observe(f dynamo.Frame) {
	s.samples++
	for _, b := range f.Bodies {
		if r3.Norm(b.Position) > s.radius {
			s.violations++
			break
		}
	}
}

func (s *Bounded) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Bounded) Reset() {
	s.violations = 0
	s.samples = 0
}

// Separation records the range of distances between two bodies. Value is the
// spread max-min relative to the first observed distance.
type Separation struct {
	i, j     int
	first    float64
	min, max float64
	samples  int
}

func NewSeparation(i, j int) *Separation {
	return &Separation{i: i, j: j}
}

func (s *Separation) Name() string { return "separation_spread" }

func (s *Separation) Observe(f dynamo.Frame) {
	if s.i >= len(f.Bodies) || s.j >= len(f.Bodies) {
		return
	}
	d := r3.Norm(r3.Sub(f.Bodies[s.i].Position, f.Bodies[s.j].Position))
	if s.samples == 0 {
		s.first, s.min, s.max = d, d, d
	}
	s.samples++
	s.min = math.Min(s.min, d)
	s.max = math.Max(s.max, d)
}

func (s *Separation) Range() (float64, float64) { return s.min, s.max }

func (s *Separation) Value() float64 {
	if s.samples == 0 || s.first == 0 {
		return 0
	}
	return (s.max - s.min) / s.first
}

func (s *Separation) Reset() {
	*s = Separation{i: s.i, j: s.j}
}

// Defaults returns the metrics recorded for every stored run.
func Defaults(p dynamo.Params) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(p),
		NewMomentumDrift(),
		NewBounded(50),
		NewSeparation(0, 1),
	}
}
