package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset and overrides named parameters.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Steps  int                `yaml:"steps"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

// Config resolves the step's preset and applies its overrides.
func (s ScenarioStep) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "reference"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	if s.Steps > 0 {
		cfg.Steps = s.Steps
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, cfg.Validate()
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// StepResult pairs a scenario step's resolved config with its run.
type StepResult struct {
	Config *config.Config
	Result *sim.Result
}

// RunScenario executes all steps in a scenario, recording the default
// metrics for each. progress may be nil.
func RunScenario(ctx context.Context, scenario *Scenario, progress io.Writer) ([]StepResult, error) {
	if progress == nil {
		progress = io.Discard
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(progress, "running step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Name)

		s, err := sim.FromConfig(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		for _, m := range metrics.Defaults(cfg.Params()) {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, cfg.Steps)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs one configuration across a range of a named parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Steps     int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue    float64
	EnergyDrift   float64
	MomentumDrift float64
	Bounded       float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, progress io.Writer) ([]SweepResult, error) {
	if progress == nil {
		progress = io.Discard
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one point, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		s, err := sim.FromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}
		for _, m := range metrics.Defaults(cfg.Params()) {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, sweep.Steps)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue:    paramVal,
			EnergyDrift:   result.Metrics["energy_drift"],
			MomentumDrift: result.Metrics["momentum_drift"],
			Bounded:       result.Metrics["bounded"],
		})

		fmt.Fprintf(progress, "sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// MonteCarloConfig perturbs every seed body's position and velocity by up
// to ±Perturbation per axis.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Steps        int
	Radius       float64
	Seed         int64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID     int
	EnergyDrift float64
	Stable      bool // every body stayed within Radius
}

// RunMonteCarlo executes multiple trials with random perturbations
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, progress io.Writer) ([]MonteCarloResult, error) {
	if progress == nil {
		progress = io.Discard
	}
	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	rng := rand.New(rand.NewSource(cfg.Seed))

	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialCfg := cfg.Base.Clone()
		for i := range trialCfg.Bodies {
			b := &trialCfg.Bodies[i]
			for k := 0; k < 3; k++ {
				b.Position[k] += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
				b.Velocity[k] += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
			}
		}

		s, err := sim.FromConfig(trialCfg)
		if err != nil {
			return nil, err
		}
		bounded := metrics.NewBounded(cfg.Radius)
		s.AddMetric(bounded)

		result, err := s.Run(ctx, cfg.Steps)
		if err != nil {
			return nil, err
		}

		results = append(results, MonteCarloResult{
			TrialID:     trial,
			EnergyDrift: result.EnergyDrift,
			Stable:      bounded.Value() == 1,
		})

		if (trial+1)%10 == 0 {
			fmt.Fprintf(progress, "monte carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
