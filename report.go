package streambench

import (
	"fmt"
	"io"
)

// hline matches the separator width of the classic report.
const hline = "-------------------------------------------------------------\n"

const (
	mib = 1024.0 * 1024.0
	gib = 1024.0 * 1024.0 * 1024.0
)

// WriteHeader prints the run banner: element size, array geometry,
// memory footprint, trial policy, and host facts.
func (bn *Bench) WriteHeader(w io.Writer, info SysInfo, version string) {
	cfg := bn.cfg
	es := float64(cfg.Precision.ElemSize())
	n := float64(cfg.ArraySize)
	m := float64(cfg.IndexArraySize)

	fmt.Fprint(w, hline)
	if version != "" {
		fmt.Fprintf(w, "STREAM benchmark (streambench %s)\n", version)
	} else {
		fmt.Fprint(w, "STREAM benchmark (streambench)\n")
	}
	fmt.Fprint(w, hline)

	fmt.Fprintf(w, "This run uses %d bytes per array element (%s).\n",
		cfg.Precision.ElemSize(), cfg.Precision)
	if cfg.Irregular() {
		fmt.Fprintf(w, "Array indices take %d bytes each.\n", indexSize)
	}
	fmt.Fprint(w, hline)

	fmt.Fprintf(w, "Array size = %d (elements), Offset = %d (elements)\n",
		cfg.ArraySize, cfg.Offset)
	fmt.Fprintf(w, "Memory per array = %.1f MiB (= %.1f GiB).\n", es*n/mib, es*n/gib)
	if cfg.Irregular() {
		fmt.Fprintf(w, "Index array size = %d (elements)\n", cfg.IndexArraySize)
		fmt.Fprintf(w, "Memory per indexed array = %.1f MiB (= %.1f GiB).\n",
			es*m/mib, es*m/gib)
		fmt.Fprintf(w, "Memory per index array = %.1f MiB (= %.1f GiB).\n",
			indexSize*m/mib, indexSize*m/gib)
	}
	total := float64(bn.MemoryBytes())
	fmt.Fprintf(w, "Total memory required = %.1f MiB (= %.1f GiB).\n", total/mib, total/gib)

	fmt.Fprintf(w, "Each kernel will be executed %d times.\n", cfg.Trials)
	fmt.Fprint(w, " The *best* time for each kernel (excluding the first iteration)\n")
	fmt.Fprint(w, " will be used to compute the reported bandwidth.\n")
	fmt.Fprintf(w, "Number of threads = %d\n", bn.Threads())
	if cfg.Irregular() && cfg.PermuteIndex {
		fmt.Fprintf(w, "The index array is randomly permuted (seed = %d).\n", bn.Seed())
	}
	fmt.Fprint(w, hline)

	writeHostInfo(w, info)
	if info.AvailMemory > 0 && bn.MemoryBytes() > int64(info.AvailMemory) {
		fmt.Fprint(w, "WARNING -- the working set exceeds the memory currently available.\n")
	}
	fmt.Fprint(w, hline)
}

func writeHostInfo(w io.Writer, info SysInfo) {
	fmt.Fprintf(w, "Host: %s/%s, %s\n", info.OS, info.Arch, info.GoVersion)
	if info.CPUModel != "" {
		fmt.Fprintf(w, "CPU: %s\n", info.CPUModel)
	}
	if info.PhysicalCPUs > 0 {
		fmt.Fprintf(w, "Cores: %d logical, %d physical\n", info.LogicalCPUs, info.PhysicalCPUs)
	} else {
		fmt.Fprintf(w, "Cores: %d logical\n", info.LogicalCPUs)
	}
	if info.TotalMemory > 0 {
		fmt.Fprintf(w, "Memory: %.1f GiB total, %.1f GiB available\n",
			float64(info.TotalMemory)/gib, float64(info.AvailMemory)/gib)
	}
	fmt.Fprintf(w, "SIMD: %s\n", info.SIMD)
}

// WriteCalibration prints the measured clock resolution, the
// estimated cost of one kernel pass, and the classic guidance about
// trusting the numbers.
func WriteCalibration(w io.Writer, quantum int, estimateUS float64) {
	if quantum >= 1 {
		fmt.Fprintf(w, "Your clock granularity/precision appears to be %d microseconds.\n", quantum)
	} else {
		fmt.Fprint(w, "Your clock granularity appears to be less than one microsecond.\n")
		quantum = 1
	}
	fmt.Fprintf(w, "Each test below will take on the order of %d microseconds.\n", int(estimateUS))
	fmt.Fprintf(w, "   (= %d clock ticks)\n", int(estimateUS/float64(quantum)))
	fmt.Fprint(w, "Increase the size of the arrays if this shows that\n")
	fmt.Fprint(w, "you are not getting at least 20 clock ticks per test.\n")
	fmt.Fprint(w, hline)
	fmt.Fprint(w, "WARNING -- The above is only a rough guideline.\n")
	fmt.Fprint(w, "For best results, please be sure you know the\n")
	fmt.Fprint(w, "precision of your system timer.\n")
	fmt.Fprint(w, hline)
}

// WriteStatsTable prints the per kernel bandwidth table.
func WriteStatsTable(w io.Writer, stats []Stat) {
	fmt.Fprint(w, "Function    Best Rate MB/s  Avg time     Min time     Max time\n")
	for _, s := range stats {
		fmt.Fprintf(w, "%-11s%12.1f  %11.6f  %11.6f  %11.6f\n",
			s.Kernel+":", s.BestRate, s.AvgTime, s.MinTime, s.MaxTime)
	}
	fmt.Fprint(w, hline)
}

// WritePerfStats prints the hardware counter section. Nothing is
// printed when the counters were never collected.
func WritePerfStats(w io.Writer, s *PerfStats) {
	if s == nil {
		return
	}
	fmt.Fprint(w, s.String())
	fmt.Fprint(w, hline)
}

// WriteVerdict prints the validation outcome and closes the report.
func WriteVerdict(w io.Writer, rep *ValidationReport) {
	fmt.Fprint(w, rep.String())
	fmt.Fprint(w, hline)
}
