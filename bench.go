package streambench

import (
	"math/rand"
	"time"
)

// dotPartial is one worker's share of the indirect dot product,
// padded out to a full cache line so neighboring workers never share
// one.
type dotPartial struct {
	v float64
	_ [56]byte
}

// Bench owns the arrays, worker pool, clock and timing table of one
// benchmark run.
type Bench struct {
	cfg   Config
	clock *Clock
	pool  *WorkerPool
	arena *Arena
	seed  int64

	// A, B and C are the dense kernel operands. D is the gather
	// target and scatter source, E the scatter target, Idx the index
	// array. D, E and Idx stay zero unless the matching kernels are
	// enabled.
	A, B, C Buffer
	D, E    Buffer
	Idx     Buffer

	// X is the indirect dot product of the most recent pass, held in
	// the configured element precision.
	X float64

	partials []dotPartial
	kernels  []Kernel
	times    [][]float64 // seconds, indexed [kernel][trial]

	warmed     bool
	estimateUS float64
}

// New validates the configuration, allocates the arena, carves the
// arrays out of it, and fills them in parallel so that first-touch
// page placement puts each range near the worker that will use it.
func New(cfg Config) (*Bench, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bn := &Bench{
		cfg:   cfg,
		clock: NewClock(),
		pool:  NewWorkerPool(cfg.Threads),
		seed:  cfg.Seed,
	}
	if bn.seed == 0 {
		bn.seed = time.Now().UnixNano()
	}

	if err := bn.carve(); err != nil {
		bn.pool.Close()
		return nil, err
	}

	bn.partials = make([]dotPartial, bn.pool.Size())
	bn.kernels = buildKernels(bn)

	bn.times = make([][]float64, len(bn.kernels))
	for i := range bn.times {
		bn.times[i] = make([]float64, cfg.Trials)
	}

	bn.initArrays()
	if cfg.Irregular() && cfg.PermuteIndex {
		bn.permuteIndex()
	}

	return bn, nil
}

// carve allocates the arena and slices it into per-array buffers.
// The float arrays come first and every slot stride is a multiple of
// the element size, so the float views stay naturally aligned for
// any configured offset. The index array sits last.
func (bn *Bench) carve() error {
	cfg := bn.cfg
	es := cfg.Precision.ElemSize()

	strideN := (cfg.ArraySize + cfg.Offset) * es
	strideM := (cfg.IndexArraySize + cfg.Offset) * es
	strideIdx := (cfg.IndexArraySize + cfg.Offset) * indexSize

	total := 3 * strideN
	if cfg.Irregular() {
		total += strideM + strideIdx
	}
	if cfg.Scatter {
		total += strideN
	}

	arena, err := NewArena(total)
	if err != nil {
		return err
	}
	bn.arena = arena

	if bn.A, err = arena.Alloc(strideN); err != nil {
		return err
	}
	if bn.B, err = arena.Alloc(strideN); err != nil {
		return err
	}
	if bn.C, err = arena.Alloc(strideN); err != nil {
		return err
	}
	if !cfg.Irregular() {
		return nil
	}
	if bn.D, err = arena.Alloc(strideM); err != nil {
		return err
	}
	if cfg.Scatter {
		if bn.E, err = arena.Alloc(strideN); err != nil {
			return err
		}
	}
	bn.Idx, err = arena.Alloc(strideIdx)
	return err
}

// initArrays seeds the arrays with their canonical starting values:
// A=1, B=2, C=0, D=1, E=0, Idx[j] = j mod ArraySize.
func (bn *Bench) initArrays() {
	if bn.cfg.Precision == Float32 {
		bn.init32()
		return
	}
	bn.init64()
}

func (bn *Bench) init64() {
	n, m := bn.cfg.ArraySize, bn.cfg.IndexArraySize

	a := bn.A.Float64()[:n:n]
	b := bn.B.Float64()[:n:n]
	c := bn.C.Float64()[:n:n]
	bn.pool.Run(n, func(lo, hi, _ int) {
		for j := lo; j < hi; j++ {
			a[j] = 1.0
			b[j] = 2.0
			c[j] = 0.0
		}
	})

	if !bn.cfg.Irregular() {
		return
	}

	d := bn.D.Float64()[:m:m]
	idx := bn.Idx.Int32()[:m:m]
	bn.pool.Run(m, func(lo, hi, _ int) {
		for j := lo; j < hi; j++ {
			d[j] = 1.0
			idx[j] = int32(j % n)
		}
	})

	if bn.cfg.Scatter {
		e := bn.E.Float64()[:n:n]
		bn.pool.Run(n, func(lo, hi, _ int) {
			for j := lo; j < hi; j++ {
				e[j] = 0.0
			}
		})
	}
}

func (bn *Bench) init32() {
	n, m := bn.cfg.ArraySize, bn.cfg.IndexArraySize

	a := bn.A.Float32()[:n:n]
	b := bn.B.Float32()[:n:n]
	c := bn.C.Float32()[:n:n]
	bn.pool.Run(n, func(lo, hi, _ int) {
		for j := lo; j < hi; j++ {
			a[j] = 1.0
			b[j] = 2.0
			c[j] = 0.0
		}
	})

	if !bn.cfg.Irregular() {
		return
	}

	d := bn.D.Float32()[:m:m]
	idx := bn.Idx.Int32()[:m:m]
	bn.pool.Run(m, func(lo, hi, _ int) {
		for j := lo; j < hi; j++ {
			d[j] = 1.0
			idx[j] = int32(j % n)
		}
	})

	if bn.cfg.Scatter {
		e := bn.E.Float32()[:n:n]
		bn.pool.Run(n, func(lo, hi, _ int) {
			for j := lo; j < hi; j++ {
				e[j] = 0.0
			}
		})
	}
}

// permuteIndex shuffles the index array into a uniformly random
// permutation of its initial contents, reproducible from the seed.
func (bn *Bench) permuteIndex() {
	idx := bn.Idx.Int32()[:bn.cfg.IndexArraySize]
	rng := rand.New(rand.NewSource(bn.seed))
	rng.Shuffle(len(idx), func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
}

// WarmUp times one doubling pass over A and records an estimate of
// how many microseconds a single kernel pass will take. The doubling
// is part of the validated value trajectory, so Run performs it
// implicitly if the caller has not.
func (bn *Bench) WarmUp() float64 {
	if bn.warmed {
		return bn.estimateUS
	}
	bn.warmed = true

	t := bn.clock.Now()
	bn.doubleA()
	t = bn.clock.Now() - t

	bn.estimateUS = 1e6 * t
	return bn.estimateUS
}

func (bn *Bench) doubleA() {
	n := bn.cfg.ArraySize
	if bn.cfg.Precision == Float32 {
		a := bn.A.Float32()[:n:n]
		bn.pool.Run(n, func(lo, hi, _ int) {
			for j := lo; j < hi; j++ {
				a[j] = 2.0 * a[j]
			}
		})
		return
	}
	a := bn.A.Float64()[:n:n]
	bn.pool.Run(n, func(lo, hi, _ int) {
		for j := lo; j < hi; j++ {
			a[j] = 2.0 * a[j]
		}
	})
}

// Config returns the run's configuration.
func (bn *Bench) Config() Config {
	return bn.cfg
}

// Seed returns the seed that drove the index permutation.
func (bn *Bench) Seed() int64 {
	return bn.seed
}

// Threads returns the resolved worker count.
func (bn *Bench) Threads() int {
	return bn.pool.Size()
}

// MemoryBytes returns the size of the backing arena.
func (bn *Bench) MemoryBytes() int64 {
	return int64(bn.arena.Size())
}

// Kernels returns the kernel descriptors in execution order.
func (bn *Bench) Kernels() []Kernel {
	return bn.kernels
}

// EstimateGranularity measures the timer resolution in microseconds.
func (bn *Bench) EstimateGranularity() int {
	return bn.clock.EstimateGranularity()
}

// Close shuts down the worker pool. The arrays remain readable.
func (bn *Bench) Close() {
	bn.pool.Close()
}
