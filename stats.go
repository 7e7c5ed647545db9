package streambench

import "math"

// Stat is the summary of one kernel across all measured trials.
type Stat struct {
	Kernel   string  `json:"kernel"`
	Bytes    int64   `json:"bytes_per_pass"`
	BestRate float64 `json:"best_rate_mbs"`
	AvgTime  float64 `json:"avg_time_s"`
	MinTime  float64 `json:"min_time_s"`
	MaxTime  float64 `json:"max_time_s"`
}

// Summarize reduces the timing table to per-kernel statistics. The
// first trial never counts: it absorbs cold caches and lazy page
// mapping. Bandwidth comes from the best time, because the slower
// passes measure interference rather than the machine.
//
// Rates are decimal megabytes per second, 1 MB/s = 1.0e6 bytes/s.
func (bn *Bench) Summarize() []Stat {
	stats := make([]Stat, len(bn.kernels))

	for ki, k := range bn.kernels {
		minT, maxT := math.MaxFloat64, 0.0
		sum := 0.0
		for trial := 1; trial < bn.cfg.Trials; trial++ {
			t := bn.times[ki][trial]
			sum += t
			if t < minT {
				minT = t
			}
			if t > maxT {
				maxT = t
			}
		}

		stats[ki] = Stat{
			Kernel:   k.Label,
			Bytes:    k.Bytes,
			BestRate: 1.0e-06 * float64(k.Bytes) / minT,
			AvgTime:  sum / float64(bn.cfg.Trials-1),
			MinTime:  minT,
			MaxTime:  maxT,
		}
	}

	return stats
}
