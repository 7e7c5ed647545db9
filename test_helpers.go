package streambench

import (
	"testing"
)

// NewBenchOrFail builds a Bench and fails the test if setup fails.
// The worker pool is shut down when the test finishes.
func NewBenchOrFail(t testing.TB, cfg Config) *Bench {
	t.Helper()
	bn, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to set up benchmark: %v", err)
	}
	t.Cleanup(bn.Close)
	return bn
}

// ValidateOrFail validates a finished run and fails the test on any
// check out of tolerance.
func ValidateOrFail(t testing.TB, bn *Bench) *ValidationReport {
	t.Helper()
	rep := bn.Validate(true)
	if err := rep.Err(); err != nil {
		t.Fatalf("Validation failed: %v", err)
	}
	return rep
}

// smallConfig returns a fast test setup: tiny arrays, few trials, a
// fixed seed.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.ArraySize = 1000
	cfg.IndexArraySize = 1000
	cfg.Trials = 5
	cfg.Seed = 1
	return cfg
}
