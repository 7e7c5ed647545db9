package streambench

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteHeaderContent(t *testing.T) {
	cfg := smallConfig()
	cfg.Gather = true
	cfg.PermuteIndex = true
	cfg.Seed = 5
	bn := NewBenchOrFail(t, cfg)

	var buf bytes.Buffer
	bn.WriteHeader(&buf, CollectSysInfo(), "v1.2.3")
	out := buf.String()

	for _, want := range []string{
		"v1.2.3",
		"Array size = 1000 (elements), Offset = 0 (elements)",
		"8 bytes per array element",
		"Index array size = 1000 (elements)",
		"Each kernel will be executed 5 times.",
		"(seed = 5)",
		"Number of threads = ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCalibration(t *testing.T) {
	var buf bytes.Buffer
	WriteCalibration(&buf, 3, 9000)
	out := buf.String()

	if !strings.Contains(out, "appears to be 3 microseconds") {
		t.Errorf("missing granularity line:\n%s", out)
	}
	if !strings.Contains(out, "9000 microseconds") {
		t.Errorf("missing estimate line:\n%s", out)
	}
	if !strings.Contains(out, "(= 3000 clock ticks)") {
		t.Errorf("missing tick count:\n%s", out)
	}

	// A sub-microsecond quantum reports ticks against a 1 us floor.
	buf.Reset()
	WriteCalibration(&buf, 0, 100)
	out = buf.String()
	if !strings.Contains(out, "less than one microsecond") {
		t.Errorf("missing sub-microsecond line:\n%s", out)
	}
	if !strings.Contains(out, "(= 100 clock ticks)") {
		t.Errorf("wrong tick count for 1 us floor:\n%s", out)
	}
}

func TestWriteStatsTable(t *testing.T) {
	stats := []Stat{
		{Kernel: "Copy", Bytes: 16000, BestRate: 22511.5, AvgTime: 0.000888, MinTime: 0.000888, MaxTime: 0.000889},
		{Kernel: "Triad", Bytes: 24000, BestRate: 23317.6, AvgTime: 0.001291, MinTime: 0.001287, MaxTime: 0.001296},
	}

	var buf bytes.Buffer
	WriteStatsTable(&buf, stats)
	out := buf.String()

	if !strings.Contains(out, "Function    Best Rate MB/s  Avg time     Min time     Max time") {
		t.Errorf("missing table header:\n%s", out)
	}
	if !strings.Contains(out, "Copy:") || !strings.Contains(out, "Triad:") {
		t.Errorf("missing kernel rows:\n%s", out)
	}
	if !strings.Contains(out, "22511.5") {
		t.Errorf("missing best rate:\n%s", out)
	}
}

func TestWriteVerdict(t *testing.T) {
	cfg := smallConfig()
	bn := NewBenchOrFail(t, cfg)
	bn.Run()

	var buf bytes.Buffer
	WriteVerdict(&buf, bn.Validate(false))
	if !strings.Contains(buf.String(), "Solution Validates") {
		t.Errorf("missing pass verdict:\n%s", buf.String())
	}
}
