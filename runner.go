package streambench

// Run executes every kernel Trials times in a fixed order, recording
// the wall time of each pass. The timed window brackets the whole
// pass: fan-out, loop bodies, the join barrier, and any combine step.
//
// Nothing here can fail. A pass that beats the clock resolution shows
// up as a zero time and an infinite rate in the summary, which is the
// caller's cue to grow the arrays.
func (bn *Bench) Run() {
	if !bn.warmed {
		bn.WarmUp()
	}

	for trial := 0; trial < bn.cfg.Trials; trial++ {
		for ki := range bn.kernels {
			k := &bn.kernels[ki]

			t0 := bn.clock.Now()
			bn.pool.Run(k.Iters, k.run)
			if k.finish != nil {
				k.finish()
			}
			bn.times[ki][trial] = bn.clock.Now() - t0
		}
	}
}
