// Command compare diffs two benchmark result files kernel by kernel
// and flags bandwidth regressions. It exits nonzero when a kernel got
// slower than the regression threshold allows, so it slots into CI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/LynnColeArt/streambench"
)

type ComparisonResult struct {
	Kernel string
	Status string // "PASS", "SLOWER", "FASTER", "MISSING"

	BaselineRate  float64 // MB/s
	CurrentRate   float64 // MB/s
	SpeedupFactor float64

	Message string
}

func main() {
	var (
		baselineFile = flag.String("baseline", "baseline.json", "Baseline result file")
		currentFile  = flag.String("current", "current.json", "Current result file")
		perfRegress  = flag.Float64("perf-regress", 1.1, "Regression threshold (1.1 = 10% slower fails)")
	)
	flag.Parse()

	baseline, err := streambench.LoadRunResult(*baselineFile)
	if err != nil {
		log.Fatalf("Failed to load baseline: %v", err)
	}

	current, err := streambench.LoadRunResult(*currentFile)
	if err != nil {
		log.Fatalf("Failed to load current results: %v", err)
	}

	warnOnMismatch(baseline, current)

	comparisons := compareResults(baseline, current, *perfRegress)
	printSummary(baseline, current, comparisons)

	for _, comp := range comparisons {
		if comp.Status == "SLOWER" || comp.Status == "MISSING" {
			os.Exit(1)
		}
	}
}

// warnOnMismatch flags comparisons that are not apples to apples.
func warnOnMismatch(baseline, current *streambench.RunResult) {
	if baseline.Config.ArraySize != current.Config.ArraySize {
		fmt.Printf("WARNING: array sizes differ (%d vs %d)\n",
			baseline.Config.ArraySize, current.Config.ArraySize)
	}
	if baseline.Config.Precision != current.Config.Precision {
		fmt.Printf("WARNING: precisions differ (%s vs %s)\n",
			baseline.Config.Precision, current.Config.Precision)
	}
	if baseline.Threads != current.Threads {
		fmt.Printf("WARNING: thread counts differ (%d vs %d)\n",
			baseline.Threads, current.Threads)
	}
	if !baseline.Validated || !current.Validated {
		fmt.Println("WARNING: comparing results that did not validate")
	}
}

func compareResults(baseline, current *streambench.RunResult, perfRegress float64) []ComparisonResult {
	// Create map for easy lookup
	currentMap := make(map[string]streambench.Stat)
	for _, s := range current.Kernels {
		currentMap[s.Kernel] = s
	}

	comparisons := make([]ComparisonResult, 0, len(baseline.Kernels))

	for _, base := range baseline.Kernels {
		comp := ComparisonResult{
			Kernel:       base.Kernel,
			BaselineRate: base.BestRate,
		}

		curr, exists := currentMap[base.Kernel]
		if !exists {
			comp.Status = "MISSING"
			comp.Message = "Kernel missing in current results"
			comparisons = append(comparisons, comp)
			continue
		}

		comp.CurrentRate = curr.BestRate
		comp.SpeedupFactor = curr.BestRate / base.BestRate

		switch {
		case comp.SpeedupFactor < 1.0/perfRegress:
			comp.Status = "SLOWER"
			comp.Message = fmt.Sprintf("Bandwidth regression: %.2fx slower", 1.0/comp.SpeedupFactor)
		case comp.SpeedupFactor > 1.2:
			comp.Status = "FASTER"
			comp.Message = fmt.Sprintf("Bandwidth improvement: %.2fx faster", comp.SpeedupFactor)
		default:
			comp.Status = "PASS"
		}

		comparisons = append(comparisons, comp)
	}

	return comparisons
}

func printSummary(baseline, current *streambench.RunResult, comparisons []ComparisonResult) {
	fmt.Println("=== Bandwidth Comparison ===")
	fmt.Println()
	fmt.Printf("Baseline: %s (%s)\n", baseline.RunID, baseline.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current:  %s (%s)\n", current.RunID, current.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println()

	// Count by status
	statusCount := make(map[string]int)
	for _, comp := range comparisons {
		statusCount[comp.Status]++
	}

	fmt.Printf("Total kernels: %d\n", len(comparisons))
	fmt.Printf("  PASS:    %d\n", statusCount["PASS"])
	fmt.Printf("  SLOWER:  %d\n", statusCount["SLOWER"])
	fmt.Printf("  FASTER:  %d\n", statusCount["FASTER"])
	fmt.Printf("  MISSING: %d\n", statusCount["MISSING"])
	fmt.Println()

	if statusCount["SLOWER"] > 0 || statusCount["FASTER"] > 0 || statusCount["MISSING"] > 0 {
		fmt.Println("CHANGES:")
		for _, comp := range comparisons {
			if comp.Status != "PASS" {
				fmt.Printf("  %s: %s\n", comp.Kernel, comp.Message)
			}
		}
		fmt.Println()
	}

	fmt.Println("DETAILED RESULTS:")
	fmt.Printf("%-12s %-8s %15s %15s %8s\n",
		"Kernel", "Status", "Baseline MB/s", "Current MB/s", "Speedup")
	fmt.Println(strings.Repeat("-", 62))

	for _, comp := range comparisons {
		fmt.Printf("%-12s %-8s %15.1f %15.1f %7.2fx\n",
			comp.Kernel,
			comp.Status,
			comp.BaselineRate,
			comp.CurrentRate,
			comp.SpeedupFactor)
	}
}
