package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownParam is returned for a name outside ParamNames.
var ErrUnknownParam = errors.New("config: unknown parameter")

// ParamNames lists the scalar session fields addressable by name, in
// display order.
var ParamNames = []string{"g", "dt", "min_distance", "trail_capacity", "random_bodies", "seed"}

// Param reads a scalar field by its YAML name.
func (c *Config) Param(name string) (float64, error) {
	switch name {
	case "g":
		return c.G, nil
	case "dt":
		return c.Dt, nil
	case "min_distance":
		return c.MinDistance, nil
	case "trail_capacity":
		return float64(c.TrailCapacity), nil
	case "random_bodies":
		return float64(c.RandomBodies), nil
	case "seed":
		return float64(c.Seed), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// SetParam writes a scalar field by its YAML name. Integer fields are rounded.
// The result is not validated; call Validate before use.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "g":
		c.G = v
	case "dt":
		c.Dt = v
	case "min_distance":
		c.MinDistance = v
	case "trail_capacity":
		c.TrailCapacity = int(math.Round(v))
	case "random_bodies":
		c.RandomBodies = int(math.Round(v))
	case "seed":
		c.Seed = int64(math.Round(v))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}
