package streambench

// KernelID identifies one benchmark kernel.
type KernelID int

const (
	KernelCopy KernelID = iota
	KernelScale
	KernelAdd
	KernelTriad
	KernelGather
	KernelScatter
	KernelIndirectDot
)

// scalar is the multiplier used by the Scale and Triad kernels.
const scalar = 3.0

// Kernel is one timed loop: a report label, the memory traffic of a
// full pass, an iteration count, and the loop body. Dense kernels
// iterate over the array size, irregular kernels over the index
// array size.
type Kernel struct {
	ID    KernelID
	Label string
	Bytes int64
	Iters int

	// run executes iterations [lo, hi) as the given worker.
	run func(lo, hi, worker int)

	// finish combines per-worker state after the pass barrier. It
	// executes inside the timed window. Nil for all but the dot.
	finish func()
}

// buildKernels binds the loop bodies to the run's buffers, in the
// fixed order Copy, Scale, Add, Triad, then any enabled irregular
// kernels.
func buildKernels(bn *Bench) []Kernel {
	if bn.cfg.Precision == Float32 {
		return buildKernels32(bn)
	}
	return buildKernels64(bn)
}

func buildKernels64(bn *Bench) []Kernel {
	n := bn.cfg.ArraySize
	m := bn.cfg.IndexArraySize
	es := int64(bn.cfg.Precision.ElemSize())

	a := bn.A.Float64()[:n:n]
	b := bn.B.Float64()[:n:n]
	c := bn.C.Float64()[:n:n]

	kernels := []Kernel{
		{
			ID: KernelCopy, Label: "Copy", Bytes: 2 * es * int64(n), Iters: n,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					c[j] = a[j]
				}
			},
		},
		{
			ID: KernelScale, Label: "Scale", Bytes: 2 * es * int64(n), Iters: n,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					b[j] = scalar * c[j]
				}
			},
		},
		{
			ID: KernelAdd, Label: "Add", Bytes: 3 * es * int64(n), Iters: n,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					c[j] = a[j] + b[j]
				}
			},
		},
		{
			ID: KernelTriad, Label: "Triad", Bytes: 3 * es * int64(n), Iters: n,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					a[j] = b[j] + scalar*c[j]
				}
			},
		},
	}

	if !bn.cfg.Irregular() {
		return kernels
	}

	d := bn.D.Float64()[:m:m]
	idx := bn.Idx.Int32()[:m:m]

	// Every irregular kernel touches one value array through the
	// index array, so they share a traffic figure.
	irregularBytes := es*int64(min(n, m)) + es*int64(m) + indexSize*int64(m)

	if bn.cfg.Gather {
		kernels = append(kernels, Kernel{
			ID: KernelGather, Label: "Gather", Bytes: irregularBytes, Iters: m,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					d[j] = a[idx[j]]
				}
			},
		})
	}

	if bn.cfg.Scatter {
		e := bn.E.Float64()[:n:n]
		kernels = append(kernels, Kernel{
			ID: KernelScatter, Label: "Scatter", Bytes: irregularBytes, Iters: m,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					e[idx[j]] = d[j]
				}
			},
		})
	}

	if bn.cfg.IndirectDot {
		kernels = append(kernels, Kernel{
			ID: KernelIndirectDot, Label: "Ind.dot", Bytes: irregularBytes, Iters: m,
			run: func(lo, hi, w int) {
				var sum float64
				for j := lo; j < hi; j++ {
					sum += d[j] * b[idx[j]]
				}
				bn.partials[w].v = sum
			},
			finish: func() {
				var x float64
				for i := range bn.partials {
					x += bn.partials[i].v
				}
				bn.X = x
			},
		})
	}

	return kernels
}

func buildKernels32(bn *Bench) []Kernel {
	n := bn.cfg.ArraySize
	m := bn.cfg.IndexArraySize
	es := int64(bn.cfg.Precision.ElemSize())

	a := bn.A.Float32()[:n:n]
	b := bn.B.Float32()[:n:n]
	c := bn.C.Float32()[:n:n]

	kernels := []Kernel{
		{
			ID: KernelCopy, Label: "Copy", Bytes: 2 * es * int64(n), Iters: n,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					c[j] = a[j]
				}
			},
		},
		{
			ID: KernelScale, Label: "Scale", Bytes: 2 * es * int64(n), Iters: n,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					b[j] = scalar * c[j]
				}
			},
		},
		{
			ID: KernelAdd, Label: "Add", Bytes: 3 * es * int64(n), Iters: n,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					c[j] = a[j] + b[j]
				}
			},
		},
		{
			ID: KernelTriad, Label: "Triad", Bytes: 3 * es * int64(n), Iters: n,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					a[j] = b[j] + scalar*c[j]
				}
			},
		},
	}

	if !bn.cfg.Irregular() {
		return kernels
	}

	d := bn.D.Float32()[:m:m]
	idx := bn.Idx.Int32()[:m:m]

	irregularBytes := es*int64(min(n, m)) + es*int64(m) + indexSize*int64(m)

	if bn.cfg.Gather {
		kernels = append(kernels, Kernel{
			ID: KernelGather, Label: "Gather", Bytes: irregularBytes, Iters: m,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					d[j] = a[idx[j]]
				}
			},
		})
	}

	if bn.cfg.Scatter {
		e := bn.E.Float32()[:n:n]
		kernels = append(kernels, Kernel{
			ID: KernelScatter, Label: "Scatter", Bytes: irregularBytes, Iters: m,
			run: func(lo, hi, _ int) {
				for j := lo; j < hi; j++ {
					e[idx[j]] = d[j]
				}
			},
		})
	}

	if bn.cfg.IndirectDot {
		kernels = append(kernels, Kernel{
			ID: KernelIndirectDot, Label: "Ind.dot", Bytes: irregularBytes, Iters: m,
			run: func(lo, hi, w int) {
				// Accumulate in element precision so the parallel
				// sum rounds the same way the reference does.
				var sum float32
				for j := lo; j < hi; j++ {
					sum += d[j] * b[idx[j]]
				}
				bn.partials[w].v = float64(sum)
			},
			finish: func() {
				var x float32
				for i := range bn.partials {
					x += float32(bn.partials[i].v)
				}
				bn.X = float64(x)
			},
		})
	}

	return kernels
}
