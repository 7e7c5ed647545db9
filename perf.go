// Package streambench hardware performance counter integration
package streambench

import (
	"fmt"
	"strings"
)

// PerfStats holds hardware counter totals sampled across one timed
// run, summed over every CPU. LLC read misses under-count DRAM
// traffic while the hardware prefetchers are active, so no bandwidth
// figure is derived from them.
type PerfStats struct {
	Cycles       uint64 `json:"cycles"`
	Instructions uint64 `json:"instructions"`
	CacheRefs    uint64 `json:"cache_refs"`
	CacheMisses  uint64 `json:"cache_misses"`
	L1DMisses    uint64 `json:"l1d_read_misses"`
	LLCMisses    uint64 `json:"llc_read_misses"`

	// Derived metrics
	IPC      float64 `json:"ipc"`
	MissRate float64 `json:"cache_miss_rate"`
}

func (s *PerfStats) set(name string, value uint64) {
	switch name {
	case "cycles":
		s.Cycles = value
	case "instructions":
		s.Instructions = value
	case "cache-references":
		s.CacheRefs = value
	case "cache-misses":
		s.CacheMisses = value
	case "L1d-read-misses":
		s.L1DMisses = value
	case "LLC-read-misses":
		s.LLCMisses = value
	}
}

func (s *PerfStats) derive() {
	if s.Cycles > 0 {
		s.IPC = float64(s.Instructions) / float64(s.Cycles)
	}
	if s.CacheRefs > 0 {
		s.MissRate = float64(s.CacheMisses) / float64(s.CacheRefs)
	}
}

// String formats the counters for the report.
func (s *PerfStats) String() string {
	var sb strings.Builder

	sb.WriteString("Hardware counters (all CPUs, whole timed run):\n")
	if s.Cycles > 0 {
		sb.WriteString(fmt.Sprintf("  CPU Cycles:        %d\n", s.Cycles))
		sb.WriteString(fmt.Sprintf("  Instructions:      %d\n", s.Instructions))
		sb.WriteString(fmt.Sprintf("  IPC:               %.2f\n", s.IPC))
	}
	if s.CacheRefs > 0 {
		sb.WriteString(fmt.Sprintf("  Cache References:  %d\n", s.CacheRefs))
		sb.WriteString(fmt.Sprintf("  Cache Misses:      %d\n", s.CacheMisses))
		sb.WriteString(fmt.Sprintf("  Cache Miss Rate:   %.2f%%\n", s.MissRate*100))
	}
	if s.L1DMisses > 0 {
		sb.WriteString(fmt.Sprintf("  L1D Read Misses:   %d\n", s.L1DMisses))
	}
	if s.LLCMisses > 0 {
		sb.WriteString(fmt.Sprintf("  LLC Read Misses:   %d\n", s.LLCMisses))
	}

	return sb.String()
}
