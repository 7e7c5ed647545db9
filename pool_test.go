package streambench

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolDefaultSize(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if pool.Size() != runtime.NumCPU() {
		t.Errorf("Size() = %d, want %d", pool.Size(), runtime.NumCPU())
	}
}

func TestWorkerPoolCoversRange(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const iters = 1000
	marks := make([]int32, iters)
	pool.Run(iters, func(lo, hi, _ int) {
		for j := lo; j < hi; j++ {
			marks[j]++
		}
	})

	for j, m := range marks {
		if m != 1 {
			t.Fatalf("element %d visited %d times, want 1", j, m)
		}
	}
}

// Every worker must be invoked on every pass, even with an empty
// range, so per-worker state is always refreshed.
func TestWorkerPoolInvokesEveryWorker(t *testing.T) {
	pool := NewWorkerPool(8)
	defer pool.Close()

	var calls atomic.Int64
	seen := make([]atomic.Bool, 8)
	pool.Run(2, func(lo, hi, w int) {
		calls.Add(1)
		seen[w].Store(true)
		if lo > hi {
			t.Errorf("worker %d got inverted range [%d, %d)", w, lo, hi)
		}
	})

	if calls.Load() != 8 {
		t.Fatalf("fn invoked %d times, want 8", calls.Load())
	}
	for w := range seen {
		if !seen[w].Load() {
			t.Errorf("worker %d never invoked", w)
		}
	}
}

func TestWorkerPoolEmptyRun(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var calls atomic.Int64
	pool.Run(0, func(lo, hi, _ int) {
		calls.Add(1)
		if lo != hi {
			t.Errorf("expected empty range, got [%d, %d)", lo, hi)
		}
	})

	if calls.Load() != 2 {
		t.Errorf("fn invoked %d times, want 2", calls.Load())
	}
}

func TestWorkerPoolReuse(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var total atomic.Int64
	for pass := 0; pass < 10; pass++ {
		pool.Run(100, func(lo, hi, _ int) {
			total.Add(int64(hi - lo))
		})
	}

	if total.Load() != 1000 {
		t.Errorf("covered %d iterations over 10 passes, want 1000", total.Load())
	}
}
