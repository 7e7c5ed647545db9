//go:build !linux

// Package streambench perf counter stubs for non-Linux platforms
package streambench

import "fmt"

// PerfMonitor is a stub on platforms without perf_event_open.
type PerfMonitor struct{}

// NewPerfMonitor returns a monitor whose Start always fails.
func NewPerfMonitor() *PerfMonitor {
	return &PerfMonitor{}
}

// Start reports that hardware counters are unavailable here.
func (pm *PerfMonitor) Start() error {
	return fmt.Errorf("hardware counters require Linux perf events")
}

// Stop returns zeroed stats.
func (pm *PerfMonitor) Stop() *PerfStats {
	return &PerfStats{}
}
