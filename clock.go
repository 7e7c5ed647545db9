package streambench

import "time"

// tickSamples is how many spaced readings the granularity probe takes.
const tickSamples = 20

// Clock measures wall time as seconds since a fixed origin. Readings
// come from the runtime monotonic clock, so they never move backwards
// when the system time is adjusted.
type Clock struct {
	origin time.Time
}

// NewClock returns a clock anchored at the current instant.
func NewClock() *Clock {
	return &Clock{origin: time.Now()}
}

// Now returns seconds elapsed since the clock's origin.
func (c *Clock) Now() float64 {
	return time.Since(c.origin).Seconds()
}

// EstimateGranularity probes the effective resolution of the clock in
// microseconds. It collects tickSamples readings, each spun forward
// until the clock visibly advances, and returns the smallest gap seen
// between consecutive readings. A result of zero means the clock
// resolves finer than one microsecond.
func (c *Clock) EstimateGranularity() int {
	var samples [tickSamples]float64

	for i := 0; i < tickSamples; i++ {
		t1 := c.Now()
		t2 := c.Now()
		for t2-t1 < 1e-6 {
			t2 = c.Now()
		}
		samples[i] = t2
	}

	minDelta := 1000000
	for i := 1; i < tickSamples; i++ {
		delta := int(1e6 * (samples[i] - samples[i-1]))
		if delta < 0 {
			delta = 0
		}
		if delta < minDelta {
			minDelta = delta
		}
	}
	return minDelta
}
