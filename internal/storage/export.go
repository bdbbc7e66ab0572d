package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	G           float64            `json:"g"`
	Dt          float64            `json:"dt"`
	MinDistance float64            `json:"min_distance"`
	Steps       int                `json:"steps"`
	Masses      []float64          `json:"masses"`
	Columns     []string           `json:"columns"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run, metadata and states, as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:          meta.ID,
		Name:        meta.Name,
		G:           meta.G,
		Dt:          meta.Dt,
		MinDistance: meta.MinDistance,
		Steps:       meta.Steps,
		Masses:      meta.Masses,
		Columns:     StateHeader(len(meta.Masses))[1:],
		Times:       times,
		States:      states,
		Metrics:     meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
