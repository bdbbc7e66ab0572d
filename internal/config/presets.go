package config

import (
	"math"
	"sort"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

func binary() *Config {
	cfg := DefaultConfig()
	cfg.Name = "binary"
	cfg.Steps = 2000
	// circular orbit: v = sqrt(G*m/(2*d)) for two equal masses at separation d
	const m, d = 100.0, 2.0
	v := math.Sqrt(cfg.G * m / (2 * d))
	cfg.Bodies = []BodyConfig{
		{Mass: m, Position: [3]float64{d / 2, 0, 0}, Velocity: [3]float64{0, v, 0}},
		{Mass: m, Position: [3]float64{-d / 2, 0, 0}, Velocity: [3]float64{0, -v, 0}},
	}
	return cfg
}

func pair() *Config {
	cfg := DefaultConfig()
	cfg.Name = "pair"
	cfg.Steps = 200
	cfg.Bodies = []BodyConfig{
		{Mass: 100, Position: [3]float64{2, 0, 0}},
		{Mass: 100, Position: [3]float64{0, 2, 0}},
	}
	return cfg
}

func cluster() *Config {
	cfg := DefaultConfig()
	cfg.Name = "cluster"
	cfg.Steps = 3000
	cfg.Seed = 7
	cfg.RandomBodies = 5
	return cfg
}

// figureEight is the Chenciner-Montgomery choreography: three equal masses
// chasing each other along one figure-eight curve (G = m = 1).
func figureEight() *Config {
	cfg := DefaultConfig()
	cfg.Name = "figure8"
	cfg.G = 1
	cfg.Dt = 0.001
	cfg.MinDistance = 0.01
	cfg.Steps = 6326
	const x, y = 0.97000436, -0.24308753
	const vx, vy = -0.93240737, -0.86473146
	cfg.Bodies = []BodyConfig{
		{Mass: 1, Position: [3]float64{x, y, 0}, Velocity: [3]float64{-vx / 2, -vy / 2, 0}},
		{Mass: 1, Position: [3]float64{-x, -y, 0}, Velocity: [3]float64{-vx / 2, -vy / 2, 0}},
		{Mass: 1, Velocity: [3]float64{vx, vy, 0}},
	}
	return cfg
}

func slowMotion() *Config {
	cfg := DefaultConfig()
	cfg.Name = "slow"
	cfg.Dt = dynamo.DefaultDt / 4
	cfg.Steps = 4000
	return cfg
}

var Presets = map[string]func() *Config{
	"reference": DefaultConfig,
	"binary":    binary,
	"pair":      pair,
	"cluster":   cluster,
	"figure8":   figureEight,
	"slow":      slowMotion,
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
