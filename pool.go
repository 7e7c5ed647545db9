package streambench

import (
	"runtime"
	"sync"
)

// WorkerPool manages a fixed pool of worker goroutines for kernel
// execution. The workers live for the whole benchmark so no goroutine
// startup cost lands inside a timed window.
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}

	// Start workers
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// worker processes tasks until the pool is closed
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
	}
}

// Size returns the number of workers in the pool.
func (wp *WorkerPool) Size() int {
	return wp.workers
}

// Run partitions [0, iters) into one contiguous range per worker,
// executes fn on all of them, and returns once every range has
// finished. Every worker is invoked exactly once per call, with an
// empty range when there is not enough work to go around, so fn may
// key per-worker state off the worker index.
func (wp *WorkerPool) Run(iters int, fn func(lo, hi, worker int)) {
	// Cache-aware scheduling: each worker owns one contiguous range
	// so hardware prefetchers see pure sequential streams.
	perWorker := (iters + wp.workers - 1) / wp.workers

	var barrier sync.WaitGroup
	barrier.Add(wp.workers)

	for workerID := 0; workerID < wp.workers; workerID++ {
		wID := workerID
		lo := wID * perWorker
		hi := lo + perWorker
		if lo > iters {
			lo = iters
		}
		if hi > iters {
			hi = iters
		}

		wp.tasks <- func() {
			defer barrier.Done()
			fn(lo, hi, wID)
		}
	}

	barrier.Wait()
}

// Close shuts down the pool and waits for all workers to exit
func (wp *WorkerPool) Close() {
	close(wp.tasks)
	wp.wg.Wait()
}
