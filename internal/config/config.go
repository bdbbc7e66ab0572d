package config

import (
	"fmt"
	"os"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps = 1000
	DefaultSeed  = 1
)

type Config struct {
	Name          string       `yaml:"name,omitempty"`
	G             float64      `yaml:"g"`
	Dt            float64      `yaml:"dt"`
	MinDistance   float64      `yaml:"min_distance"`
	TrailCapacity int          `yaml:"trail_capacity"`
	Steps         int          `yaml:"steps"`
	Seed          int64        `yaml:"seed"`
	RandomBodies  int          `yaml:"random_bodies"`
	Bodies        []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
}

func (b BodyConfig) Pos() r3.Vec { return r3.Vec{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]} }
func (b BodyConfig) Vel() r3.Vec { return r3.Vec{X: b.Velocity[0], Y: b.Velocity[1], Z: b.Velocity[2]} }

// ReferenceBodies is the three-body seed set of the reference scene.
func ReferenceBodies() []BodyConfig {
	return []BodyConfig{
		{Mass: 100, Position: [3]float64{2, 0, 0}},
		{Mass: 100, Position: [3]float64{0, 2, 0}},
		{Mass: 100, Position: [3]float64{0, 0, 2}},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Name:          "reference",
		G:             dynamo.DefaultG,
		Dt:            dynamo.DefaultDt,
		MinDistance:   dynamo.DefaultMinDistance,
		TrailCapacity: dynamo.DefaultTrailCapacity,
		Steps:         DefaultSteps,
		Seed:          DefaultSeed,
		Bodies:        ReferenceBodies(),
	}
}

// Load reads a YAML file over the defaults. A file that lists bodies
// replaces the default seed set rather than extending it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Bodies == nil {
		cfg.Bodies = ReferenceBodies()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		G:             c.G,
		Dt:            c.Dt,
		MinDistance:   c.MinDistance,
		TrailCapacity: c.TrailCapacity,
	}
}

// Validate checks the physics parameters and every seed body.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", dynamo.ErrParameterBounds, c.Steps)
	}
	if c.RandomBodies < 0 {
		return fmt.Errorf("%w: random_bodies must be non-negative, got %d", dynamo.ErrParameterBounds, c.RandomBodies)
	}
	for i, b := range c.Bodies {
		if !(b.Mass > 0) {
			return fmt.Errorf("body %d: %w: got %g", i, dynamo.ErrInvalidMass, b.Mass)
		}
	}
	return nil
}

// Clone returns a deep copy so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cp
}
