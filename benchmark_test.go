package streambench

import (
	"fmt"
	"testing"
)

// benchConfig sizes the arrays well past L3 so the kernels measure
// memory, not cache.
func benchConfig() Config {
	cfg := DefaultConfig()
	cfg.ArraySize = 1 << 22
	cfg.IndexArraySize = 1 << 22
	cfg.Trials = 2
	cfg.Seed = 1
	return cfg
}

func BenchmarkKernels(b *testing.B) {
	for _, precision := range []Precision{Float32, Float64} {
		cfg := benchConfig()
		cfg.Precision = precision
		cfg.Gather = true
		cfg.Scatter = true
		cfg.IndirectDot = true

		bn, err := New(cfg)
		if err != nil {
			b.Fatalf("Failed to set up benchmark: %v", err)
		}

		for _, k := range bn.Kernels() {
			k := k
			b.Run(fmt.Sprintf("%s_%s", k.Label, precision), func(b *testing.B) {
				b.SetBytes(k.Bytes)
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					bn.pool.Run(k.Iters, k.run)
					if k.finish != nil {
						k.finish()
					}
				}

				// Same convention as the report tables: 1e-6 * bytes/s.
				rate := 1.0e-06 * float64(k.Bytes) * float64(b.N) / b.Elapsed().Seconds()
				b.ReportMetric(rate, "MB/s")
			})
		}

		bn.Close()
	}
}

func BenchmarkTriadScaling(b *testing.B) {
	for _, workers := range []int{1, 2, 4, 8} {
		cfg := benchConfig()
		cfg.Threads = workers

		bn, err := New(cfg)
		if err != nil {
			b.Fatalf("Failed to set up benchmark: %v", err)
		}
		triad := bn.Kernels()[3]

		b.Run(fmt.Sprintf("Workers_%d", workers), func(b *testing.B) {
			b.SetBytes(triad.Bytes)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				bn.pool.Run(triad.Iters, triad.run)
			}
		})

		bn.Close()
	}
}

func BenchmarkPermutedGather(b *testing.B) {
	// Sequential and permuted index orders bracket the cost of
	// irregular access.
	for _, permute := range []bool{false, true} {
		cfg := benchConfig()
		cfg.Gather = true
		cfg.PermuteIndex = permute

		bn, err := New(cfg)
		if err != nil {
			b.Fatalf("Failed to set up benchmark: %v", err)
		}
		gather := bn.Kernels()[4]

		name := "Sequential"
		if permute {
			name = "Permuted"
		}
		b.Run(name, func(b *testing.B) {
			b.SetBytes(gather.Bytes)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				bn.pool.Run(gather.Iters, gather.run)
			}
		})

		bn.Close()
	}
}
