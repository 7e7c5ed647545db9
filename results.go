package streambench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RunResult is the machine readable record of one full run: the
// configuration, the host, the per-kernel statistics, and the
// validation verdict.
type RunResult struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`

	Config Config  `json:"config"`
	System SysInfo `json:"system"`

	Seed               int64   `json:"seed,omitempty"`
	Threads            int     `json:"threads"`
	ClockGranularityUS int     `json:"clock_granularity_us"`
	EstimatedPassUS    float64 `json:"estimated_pass_us,omitempty"`

	Kernels []Stat     `json:"kernels"`
	Perf    *PerfStats `json:"perf,omitempty"`

	Validated        bool          `json:"validated"`
	ValidationChecks []BufferCheck `json:"validation_checks,omitempty"`
}

// NewRunResult stamps a fresh result with a unique run ID.
func NewRunResult(cfg Config) *RunResult {
	return &RunResult{
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
		Config:    cfg,
	}
}

// Save writes the result as indented JSON into dir, one file per run,
// and returns the file path.
func (r *RunResult) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	short := r.RunID
	if len(short) > 8 {
		short = short[:8]
	}
	timestamp := r.Timestamp.Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("stream_%s_%s.json", timestamp, short))

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write result: %w", err)
	}

	return path, nil
}

// LoadRunResult reads a result file written by Save.
func LoadRunResult(path string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	var r RunResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse result %s: %w", path, err)
	}

	return &r, nil
}
