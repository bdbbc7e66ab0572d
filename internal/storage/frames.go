package storage

import (
	"github.com/san-kum/nbodysim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadFrames rebuilds the recorded frames of a run from its states and the
// masses in its metadata. Trails are not stored and come back empty.
func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, *RunMetadata, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	return FramesFromStates(states, times, meta.Masses), meta, nil
}

// FramesFromStates is the inverse of sim.Result.States. Rows shorter than
// the mass list hold only the bodies that existed at that step.
func FramesFromStates(states [][]float64, times []float64, masses []float64) []dynamo.Frame {
	frames := make([]dynamo.Frame, len(states))
	for i, row := range states {
		n := min(len(row)/6, len(masses))
		f := dynamo.Frame{Step: i, Bodies: make([]dynamo.BodyFrame, n)}
		if i < len(times) {
			f.Time = times[i]
		}
		for b := 0; b < n; b++ {
			v := row[b*6 : b*6+6]
			f.Bodies[b] = dynamo.BodyFrame{
				Mass:     masses[b],
				Position: r3.Vec{X: v[0], Y: v[1], Z: v[2]},
				Velocity: r3.Vec{X: v[3], Y: v[4], Z: v[5]},
			}
		}
		frames[i] = f
	}
	return frames
}
