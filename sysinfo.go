package streambench

import (
	"runtime"
	"strings"

	gcpu "github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sys/cpu"
)

// CPUFeatures holds the SIMD capabilities that matter for streaming
// loads and stores.
type CPUFeatures struct {
	HasSSE4   bool
	HasAVX    bool
	HasAVX2   bool
	HasFMA    bool
	HasAVX512 bool

	HasNEON bool
	HasSVE  bool

	VectorWidth int // in float32 elements
}

var cpuFeatures CPUFeatures

func init() {
	cpuFeatures = detectCPUFeatures()
}

// detectCPUFeatures queries CPU capabilities at startup
func detectCPUFeatures() CPUFeatures {
	f := CPUFeatures{
		HasSSE4:   cpu.X86.HasSSE41 && cpu.X86.HasSSE42,
		HasAVX:    cpu.X86.HasAVX,
		HasAVX2:   cpu.X86.HasAVX2,
		HasFMA:    cpu.X86.HasFMA,
		HasAVX512: cpu.X86.HasAVX512F,
		HasNEON:   cpu.ARM64.HasASIMD,
		HasSVE:    cpu.ARM64.HasSVE,
	}

	// SVE vector length is implementation defined, so it reports the
	// 128-bit minimum like NEON.
	switch {
	case f.HasAVX512:
		f.VectorWidth = 16
	case f.HasAVX:
		f.VectorWidth = 8
	case f.HasSSE4, f.HasNEON:
		f.VectorWidth = 4
	default:
		f.VectorWidth = 1
	}

	return f
}

// CPUFeatureString returns a human readable list of the detected
// SIMD extensions.
func CPUFeatureString() string {
	var features []string

	if cpuFeatures.HasSSE4 {
		features = append(features, "SSE4")
	}
	if cpuFeatures.HasAVX {
		features = append(features, "AVX")
	}
	if cpuFeatures.HasAVX2 {
		features = append(features, "AVX2")
	}
	if cpuFeatures.HasFMA {
		features = append(features, "FMA")
	}
	if cpuFeatures.HasAVX512 {
		features = append(features, "AVX512F")
	}
	if cpuFeatures.HasNEON {
		features = append(features, "NEON")
	}
	if cpuFeatures.HasSVE {
		features = append(features, "SVE")
	}

	if len(features) == 0 {
		return "no SIMD extensions detected"
	}
	return strings.Join(features, ", ")
}

// SysInfo describes the host for the report header and the results
// file. Fields that cannot be determined stay zero.
type SysInfo struct {
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	LogicalCPUs  int    `json:"logical_cpus"`
	PhysicalCPUs int    `json:"physical_cpus"`
	CPUModel     string `json:"cpu_model,omitempty"`
	TotalMemory  uint64 `json:"total_memory_bytes"`
	AvailMemory  uint64 `json:"available_memory_bytes"`
	SIMD         string `json:"simd"`
}

// CollectSysInfo gathers host facts for the report. Probe failures
// are not fatal; the affected fields just stay zero.
func CollectSysInfo() SysInfo {
	info := SysInfo{
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		LogicalCPUs: runtime.NumCPU(),
		SIMD:        CPUFeatureString(),
	}

	if physical, err := gcpu.Counts(false); err == nil {
		info.PhysicalCPUs = physical
	}
	if infos, err := gcpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
		info.AvailMemory = vm.Available
	}

	return info
}
