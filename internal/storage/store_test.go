package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/sim"
)

func runReference(t *testing.T, steps int) (*config.Config, *sim.Result) {
	t.Helper()
	cfg := config.DefaultConfig()
	s, err := sim.FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range metrics.Defaults(cfg.Params()) {
		s.AddMetric(m)
	}
	result, err := s.Run(context.Background(), steps)
	if err != nil {
		t.Fatal(err)
	}
	return cfg, result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result := runReference(t, 5)
	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "reference" {
		t.Errorf("expected name 'reference', got '%s'", meta.Name)
	}
	if meta.Steps != 5 || len(meta.Masses) != 3 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if _, ok := meta.Metrics["energy_drift"]; !ok {
		t.Error("energy_drift metric not stored")
	}
	if math.Abs(meta.Duration()-5*cfg.Dt) > 1e-12 {
		t.Errorf("unexpected duration %f", meta.Duration())
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 6 || len(times) != 6 {
		t.Fatalf("expected 6 rows, got %d/%d", len(states), len(times))
	}
	if len(states[0]) != 18 {
		t.Errorf("expected 18 columns, got %d", len(states[0]))
	}

	want := result.States()
	for i := range want {
		for j := range want[i] {
			if states[i][j] != want[i][j] {
				t.Fatalf("state [%d][%d] = %v, want %v", i, j, states[i][j], want[i][j])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg, result := runReference(t, 2)
	if _, err := st.Save(cfg, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(cfg, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	cfg, result := runReference(t, 1)
	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, statesFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	cfg, result := runReference(t, 3)
	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.ID != runID || len(data.States) != 4 {
		t.Errorf("unexpected export: id=%s rows=%d", data.ID, len(data.States))
	}
	if len(data.Columns) != 18 || data.Columns[0] != "b0_x" {
		t.Errorf("unexpected columns %v", data.Columns)
	}
}

func TestStateHeader(t *testing.T) {
	h := StateHeader(2)
	if len(h) != 13 || h[0] != "time" || h[12] != "b1_vz" {
		t.Errorf("unexpected header %v", h)
	}
}

func TestLoadFrames(t *testing.T) {
	st := New(t.TempDir())
	cfg, result := runReference(t, 4)
	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatal(err)
	}

	frames, meta, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("LoadFrames: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("meta id = %s, want %s", meta.ID, runID)
	}
	if len(frames) != len(result.Frames) {
		t.Fatalf("frames = %d, want %d", len(frames), len(result.Frames))
	}
	want := result.Frames[4].Bodies[2]
	got := frames[4].Bodies[2]
	if got.Mass != want.Mass || got.Position != want.Position || got.Velocity != want.Velocity {
		t.Errorf("frame 4 body 2 = %+v, want %+v", got, want)
	}
}

func TestFramesFromStatesShortRows(t *testing.T) {
	states := [][]float64{
		{1, 2, 3, 4, 5, 6},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	}
	frames := FramesFromStates(states, []float64{0, 0.1}, []float64{10, 20})
	if len(frames[0].Bodies) != 1 || len(frames[1].Bodies) != 2 {
		t.Errorf("body counts = %d, %d; want 1, 2", len(frames[0].Bodies), len(frames[1].Bodies))
	}
	if frames[1].Bodies[1].Mass != 20 || frames[1].Time != 0.1 {
		t.Errorf("unexpected frame %+v", frames[1])
	}
}
