package analysis

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrNoBodies = errors.New("analysis: configuration has no seed bodies to perturb")

// LyapunovExponent estimates a finite-time largest Lyapunov exponent for
// cfg by running it alongside a copy whose first body is displaced along x
// by perturbation. A positive value indicates sensitive dependence.
//
//	λ ≈ (1/T) * ln(|δ(T)| / |δ(0)|)
//
// δ is the phase-space distance over every body's position and velocity.
func LyapunovExponent(ctx context.Context, cfg *config.Config, steps int, perturbation float64) (float64, error) {
	if len(cfg.Bodies) == 0 {
		return 0, ErrNoBodies
	}
	if steps <= 0 || !(perturbation > 0) {
		return 0, dynamo.ErrParameterBounds
	}

	base, err := sim.FromConfig(cfg)
	if err != nil {
		return 0, err
	}
	shifted := cfg.Clone()
	shifted.Bodies[0].Position[0] += perturbation
	twin, err := sim.FromConfig(shifted)
	if err != nil {
		return 0, err
	}

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := base.Tick(); err != nil {
			return 0, err
		}
		if err := twin.Tick(); err != nil {
			return 0, err
		}
	}

	sep := PhaseDistance(base.Frame(), twin.Frame())
	if sep == 0 {
		return 0, nil
	}
	return math.Log(sep/perturbation) / (float64(steps) * cfg.Dt), nil
}

// PhaseDistance is the euclidean distance between two frames over the
// bodies they share.
func PhaseDistance(a, b dynamo.Frame) float64 {
	n := min(len(a.Bodies), len(b.Bodies))
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += r3.Norm2(r3.Sub(a.Bodies[i].Position, b.Bodies[i].Position))
		sum += r3.Norm2(r3.Sub(a.Bodies[i].Velocity, b.Bodies[i].Velocity))
	}
	return math.Sqrt(sum)
}
