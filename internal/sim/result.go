package sim

import "github.com/san-kum/nbodysim/internal/dynamo"

type Result struct {
	Frames      []dynamo.Frame
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

func (r *Result) Times() []float64 {
	times := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		times[i] = f.Time
	}
	return times
}

// States flattens every frame to x, y, z, vx, vy, vz per body.
func (r *Result) States() [][]float64 {
	states := make([][]float64, len(r.Frames))
	for i, f := range r.Frames {
		row := make([]float64, 0, len(f.Bodies)*6)
		for _, b := range f.Bodies {
			row = append(row,
				b.Position.X, b.Position.Y, b.Position.Z,
				b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
		}
		states[i] = row
	}
	return states
}

func (r *Result) Final() (dynamo.Frame, bool) {
	if len(r.Frames) == 0 {
		return dynamo.Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}
