package automation

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/nbodysim/internal/config"
)

const scenarioYAML = `name: drift check
description: reference at two step sizes
steps:
  - preset: reference
    steps: 20
    save_as: coarse
  - preset: reference
    steps: 20
    params:
      dt: 0.004
    save_as: fine
`

func TestLoadAndRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(sc.Steps))
	}

	var out bytes.Buffer
	results, err := RunScenario(context.Background(), sc, &out)
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[1].Config.Dt != 0.004 || results[1].Config.Name != "fine" {
		t.Errorf("overrides not applied: %+v", results[1].Config)
	}
	if results[0].Result.StepsTaken != 20 {
		t.Errorf("steps taken = %d, want 20", results[0].Result.StepsTaken)
	}
	if _, ok := results[0].Result.Metrics["energy_drift"]; !ok {
		t.Error("default metrics missing")
	}
	if !strings.Contains(out.String(), "step 2/2") {
		t.Errorf("progress output = %q", out.String())
	}
}

func TestScenarioStepErrors(t *testing.T) {
	if _, err := (ScenarioStep{Preset: "nope"}).Config(); err == nil {
		t.Error("expected unknown preset error")
	}
	bad := ScenarioStep{Params: map[string]float64{"mass": 1}}
	if _, err := bad.Config(); !errors.Is(err, config.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Base:      config.DefaultConfig(),
		ParamName: "dt",
		ParamMin:  0.002,
		ParamMax:  0.016,
		NumSteps:  3,
		Steps:     50,
	}
	results, err := RunSweep(context.Background(), sweep, nil)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].ParamValue != 0.002 || math.Abs(results[2].ParamValue-0.016) > 1e-12 {
		t.Errorf("param range = [%g, %g]", results[0].ParamValue, results[2].ParamValue)
	}
	if sweep.Base.Dt != 0.016 {
		t.Error("sweep mutated the base config")
	}
}

func TestRunSweepSinglePoint(t *testing.T) {
	sweep := &ParameterSweep{Base: config.DefaultConfig(), ParamName: "g", ParamMin: 1, ParamMax: 9, NumSteps: 1, Steps: 5}
	results, err := RunSweep(context.Background(), sweep, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ParamValue != 1 {
		t.Errorf("results = %+v", results)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	mc := &MonteCarloConfig{
		Base:         config.GetPreset("binary"),
		Perturbation: 0.01,
		NumTrials:    4,
		Steps:        100,
		Radius:       50,
		Seed:         3,
	}
	results, err := RunMonteCarlo(context.Background(), mc, nil)
	if err != nil {
		t.Fatalf("RunMonteCarlo: %v", err)
	}
	stable, unstable := MonteCarloStats(results)
	if stable+unstable != 4 {
		t.Errorf("stats cover %d trials, want 4", stable+unstable)
	}
	if stable != 4 {
		t.Errorf("near-circular binary escaped in %d trials", unstable)
	}
}
