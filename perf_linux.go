//go:build linux

// Package streambench Linux perf_event_open counter sampling
package streambench

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

type perfEvent struct {
	name   string
	typ    uint32
	config uint64
}

func cacheConfig(cache, op, result uint64) uint64 {
	return cache | op<<8 | result<<16
}

// perfEventSet is the fixed set of counters sampled around the trial
// loop. The cache read misses are the ones that matter for a memory
// benchmark; cycles and instructions give context.
func perfEventSet() []perfEvent {
	return []perfEvent{
		{"cycles", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CPU_CYCLES},
		{"instructions", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_INSTRUCTIONS},
		{"cache-references", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_REFERENCES},
		{"cache-misses", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_MISSES},
		{"L1d-read-misses", unix.PERF_TYPE_HW_CACHE,
			cacheConfig(unix.PERF_COUNT_HW_CACHE_L1D, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS)},
		{"LLC-read-misses", unix.PERF_TYPE_HW_CACHE,
			cacheConfig(unix.PERF_COUNT_HW_CACHE_LL, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS)},
	}
}

type perfCounter struct {
	fd    int
	event int
}

// PerfMonitor samples hardware counters system-wide, one descriptor
// per event per CPU, so the worker threads are all covered. Opening
// system-wide counters needs perf_event_paranoid <= 0 or CAP_PERFMON.
type PerfMonitor struct {
	events   []perfEvent
	counters []perfCounter
}

// NewPerfMonitor returns a monitor for the standard event set.
func NewPerfMonitor() *PerfMonitor {
	return &PerfMonitor{events: perfEventSet()}
}

// Start opens and enables the counters. On failure every descriptor
// opened so far is released and the monitor is safe to Start again.
func (pm *PerfMonitor) Start() error {
	pm.release()

	attrSize := uint32(unsafe.Sizeof(unix.PerfEventAttr{}))
	for cpu := 0; cpu < runtime.NumCPU(); cpu++ {
		for i, ev := range pm.events {
			attr := unix.PerfEventAttr{
				Type:   ev.typ,
				Size:   attrSize,
				Config: ev.config,
				Bits:   unix.PerfBitDisabled,
			}

			fd, err := unix.PerfEventOpen(&attr, -1, cpu, -1, unix.PERF_FLAG_FD_CLOEXEC)
			if err != nil {
				pm.release()
				return fmt.Errorf("failed to open perf event %s on cpu %d (check perf_event_paranoid): %w", ev.name, cpu, err)
			}
			pm.counters = append(pm.counters, perfCounter{fd: fd, event: i})
		}
	}

	for _, c := range pm.counters {
		if err := unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
			pm.release()
			return fmt.Errorf("failed to reset perf counters: %w", err)
		}
		if err := unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
			pm.release()
			return fmt.Errorf("failed to enable perf counters: %w", err)
		}
	}

	return nil
}

// Stop disables the counters, reads them out and releases the
// descriptors. Calling Stop without a successful Start returns
// zeroed stats.
func (pm *PerfMonitor) Stop() *PerfStats {
	totals := make([]uint64, len(pm.events))
	for _, c := range pm.counters {
		unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_DISABLE, 0)

		var buf [8]byte
		if n, err := unix.Read(c.fd, buf[:]); err == nil && n == len(buf) {
			totals[c.event] += binary.NativeEndian.Uint64(buf[:])
		}
	}
	pm.release()

	stats := &PerfStats{}
	for i, ev := range pm.events {
		stats.set(ev.name, totals[i])
	}
	stats.derive()
	return stats
}

func (pm *PerfMonitor) release() {
	for _, c := range pm.counters {
		unix.Close(c.fd)
	}
	pm.counters = nil
}
