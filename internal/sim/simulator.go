package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// Simulator is the host-side driver of a session. It owns the registry and
// serializes every mutating call, so an input handler may add bodies while a
// render loop ticks.
type Simulator struct {
	mu        sync.Mutex
	params    dynamo.Params
	reg       *physics.Registry
	integ     *integrators.SymplecticEuler
	rng       *rand.Rand
	step      int
	t         float64
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(p dynamo.Params, seed int64) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		params:    p,
		reg:       physics.NewRegistry(p.TrailCapacity),
		integ:     integrators.NewSymplecticEuler(p),
		rng:       rand.New(rand.NewSource(seed)),
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}, nil
}

// FromConfig builds a simulator seeded with the configured bodies followed by
// cfg.RandomBodies random ones.
func FromConfig(cfg *config.Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := New(cfg.Params(), cfg.Seed)
	if err != nil {
		return nil, err
	}
	for i, b := range cfg.Bodies {
		if _, err := s.AddBody(b.Mass, b.Pos(), b.Vel()); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	for i := 0; i < cfg.RandomBodies; i++ {
		if _, err := s.AddRandomBody(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *Simulator) AddObserver(o dynamo.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Simulator) Params() dynamo.Params { return s.params }

func (s *Simulator) AddBody(mass float64, pos, vel r3.Vec) (physics.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.CreateBody(mass, pos, vel)
}

// AddRandomBody adds a body drawn from the simulator's seeded source.
func (s *Simulator) AddRandomBody() (physics.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mass, pos, vel := RandomBody(s.rng)
	return s.reg.CreateBody(mass, pos, vel)
}

// RandomBody draws a mass in [50, 1050), a position uniform in the ball of
// radius 4 and a velocity uniform in [-1, 1) per axis.
func RandomBody(rng *rand.Rand) (float64, r3.Vec, r3.Vec) {
	mass := 50 + rng.Float64()*1000

	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(2*rng.Float64() - 1)
	r := 4 * math.Cbrt(rng.Float64())
	pos := r3.Vec{
		X: r * math.Sin(phi) * math.Cos(theta),
		Y: r * math.Sin(phi) * math.Sin(theta),
		Z: r * math.Cos(phi),
	}

	vel := r3.Vec{
		X: rng.Float64()*2 - 1,
		Y: rng.Float64()*2 - 1,
		Z: rng.Float64()*2 - 1,
	}
	return mass, pos, vel
}

// Tick advances the session by one step and hands the new frame to every
// observer and metric.
func (s *Simulator) Tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.tick()
	return err
}

// tick advances one step. Metrics and the returned frame carry positions
// only; observers receive the full frame with trails.
func (s *Simulator) tick() (dynamo.Frame, error) {
	if err := s.integ.Tick(s.reg); err != nil {
		return dynamo.Frame{}, &dynamo.SimulationError{Step: s.step, Time: s.t, Wrapped: err}
	}
	s.step++
	s.t = float64(s.step) * s.params.Dt

	f := s.frame(false)
	for _, m := range s.metrics {
		m.Observe(f)
	}
	if len(s.observers) > 0 {
		full := s.frame(true)
		for _, o := range s.observers {
			o.OnTick(full)
		}
	}
	return f, nil
}

func (s *Simulator) frame(withTrails bool) dynamo.Frame {
	f := dynamo.Frame{Step: s.step, Time: s.t}
	if withTrails {
		f.Bodies = s.reg.Snapshot()
	} else {
		f.Bodies = s.reg.States()
	}
	return f
}

// Frame returns the current outbound snapshot.
func (s *Simulator) Frame() dynamo.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame(true)
}

func (s *Simulator) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Len()
}

func (s *Simulator) Bodies() []physics.Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Bodies()
}

func (s *Simulator) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}

func (s *Simulator) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Simulator) Energy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return physics.Energy(s.reg.Bodies(), s.params)
}

// Run ticks the session steps times, recording every frame. Recorded frames
// carry no trails except the last one. It stops early with the partial
// result when ctx is done.
func (s *Simulator) Run(ctx context.Context, steps int) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrParameterBounds, steps)
	}

	s.mu.Lock()
	for _, m := range s.metrics {
		m.Reset()
	}
	initial := s.frame(false)
	for _, m := range s.metrics {
		m.Observe(initial)
	}
	initialEnergy := physics.Energy(s.reg.Bodies(), s.params)
	s.mu.Unlock()

	result := &Result{
		Frames:  make([]dynamo.Frame, 0, steps+1),
		Metrics: make(map[string]float64),
	}
	result.Frames = append(result.Frames, initial)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, initialEnergy)
			return result, ctx.Err()
		default:
		}

		s.mu.Lock()
		f, err := s.tick()
		s.mu.Unlock()
		if err != nil {
			s.finish(result, initialEnergy)
			return result, err
		}
		result.Frames = append(result.Frames, f)
		result.StepsTaken++
	}

	s.finish(result, initialEnergy)
	return result, nil
}

func (s *Simulator) finish(result *Result, initialEnergy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(result.Frames); n > 0 {
		last := &result.Frames[n-1]
		if last.Step == s.step && len(last.Bodies) == s.reg.Len() {
			*last = s.frame(true)
		}
	}
	final := physics.Energy(s.reg.Bodies(), s.params)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(final-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
