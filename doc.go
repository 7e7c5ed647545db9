// Package streambench measures sustained memory bandwidth with the
// classic STREAM kernels: Copy, Scale, Add, and Triad, optionally
// extended with the irregular-access kernels Gather, Scatter, and an
// indirect dot product.
//
// The benchmark allocates arrays much larger than cache, runs every
// kernel a configured number of times through a fixed worker pool,
// and reports the best observed bandwidth per kernel, excluding the
// first trial so cold caches and first-touch page faults do not skew
// the numbers. After measurement, a single threaded scalar simulation
// re-derives the value every array element must hold and checks the
// observed arrays against it within a precision dependent tolerance.
//
// Basic usage:
//
//	cfg := streambench.DefaultConfig()
//	cfg.ArraySize = 20_000_000
//
//	bench, err := streambench.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer bench.Close()
//
//	bench.Run()
//	for _, s := range bench.Summarize() {
//		fmt.Printf("%s %.1f MB/s\n", s.Kernel, s.BestRate)
//	}
//	if rep := bench.Validate(false); !rep.OK() {
//		fmt.Print(rep)
//	}
package streambench
