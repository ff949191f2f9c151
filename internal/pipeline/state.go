package pipeline

import (
	"encoding/json"
	"os"
	"time"
)

// RunState is the small on-disk record of the last pipeline run, used
// for operator inspection and the RUN_ON_START decision in deployments
// that restart often.
type RunState struct {
	LastRunID  string         `json:"last_run_id"`
	LastRunAt  time.Time      `json:"last_run_at"`
	LastStatus string         `json:"last_status"`
	RowCounts  map[string]int `json:"row_counts"`
}

// LoadState reads the run state from a JSON file. Returns a zero state if the file doesn't exist.
func LoadState(filePath string) (*RunState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &RunState{}, nil
		}
		return nil, err
	}
	var state RunState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the run state to a JSON file.
func SaveState(filePath string, state *RunState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
