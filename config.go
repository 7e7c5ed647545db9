package streambench

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Precision selects the floating point element type of the arrays.
type Precision string

const (
	Float32 Precision = "float32"
	Float64 Precision = "float64"
)

// ElemSize returns the element size in bytes.
func (p Precision) ElemSize() int {
	if p == Float32 {
		return 4
	}
	return 8
}

// Epsilon returns the validation tolerance for the precision.
func (p Precision) Epsilon() float64 {
	if p == Float32 {
		return 1e-6
	}
	return 1e-13
}

// indexSize is the size of one array index in bytes. Indices are
// int32, which caps the addressable array size at MaxInt32 elements.
const indexSize = 4

// Config holds every tunable of a benchmark run. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	// ArraySize is the element count of the dense arrays A, B and C.
	// Each array should be at least 4x larger than the sum of all
	// caches, or the results will flatter the memory system.
	ArraySize int `json:"array_size" yaml:"array_size"`

	// IndexArraySize is the element count of the index array and the
	// gather target D. Only used when an irregular kernel is enabled.
	IndexArraySize int `json:"index_array_size" yaml:"index_array_size"`

	// Offset pads each array allocation by this many elements,
	// shifting the relative alignment of neighboring arrays.
	Offset int `json:"offset" yaml:"offset"`

	// Trials is the number of times each kernel runs. The first
	// trial is always discarded, so at least 2 are required.
	Trials int `json:"trials" yaml:"trials"`

	// Threads is the worker count. Zero selects all logical CPUs.
	Threads int `json:"threads" yaml:"threads"`

	Precision Precision `json:"precision" yaml:"precision"`

	// Optional irregular-access kernels.
	Gather      bool `json:"gather" yaml:"gather"`
	Scatter     bool `json:"scatter" yaml:"scatter"`
	IndirectDot bool `json:"indirect_dot" yaml:"indirect_dot"`

	// PermuteIndex shuffles the index array into a random permutation
	// instead of the sequential j mod ArraySize fill.
	PermuteIndex bool `json:"permute_index" yaml:"permute_index"`

	// Seed drives the index permutation. Zero picks a time based seed.
	Seed int64 `json:"seed" yaml:"seed"`
}

// DefaultConfig returns the classic benchmark setup: 10 million
// float64 elements, 10 trials, dense kernels only, one worker per CPU.
func DefaultConfig() Config {
	return Config{
		ArraySize:      10000000,
		IndexArraySize: 10000000,
		Trials:         10,
		Precision:      Float64,
	}
}

// Irregular reports whether any index driven kernel is enabled.
func (c Config) Irregular() bool {
	return c.Gather || c.Scatter || c.IndirectDot
}

// Validate checks the configuration for problems that would make the
// run meaningless or unsafe.
func (c Config) Validate() error {
	if c.ArraySize < 1 {
		return NewConfigError("Validate", "array size must be at least 1")
	}
	if c.Offset < 0 {
		return NewConfigError("Validate", "offset must be non-negative")
	}
	if c.Trials < 2 {
		return ErrTrialCount
	}
	if c.Threads < 0 {
		return NewConfigError("Validate", "threads must be non-negative (0 selects all CPUs)")
	}
	if c.Precision != Float32 && c.Precision != Float64 {
		return NewConfigError("Validate", fmt.Sprintf("unknown precision %q", c.Precision))
	}
	if c.Irregular() {
		if c.IndexArraySize < 1 {
			return NewConfigError("Validate", "index array size must be at least 1")
		}
		if c.ArraySize > math.MaxInt32 {
			return NewConfigError("Validate", "array size exceeds the 32-bit index range")
		}
	}
	if c.Scatter && c.IndexArraySize > c.ArraySize {
		// Duplicate indices would let two workers write the same
		// element of E concurrently.
		return NewConfigError("Validate", "scatter requires index array size <= array size")
	}
	return nil
}

// LoadConfig reads a configuration file, YAML or JSON, layered over
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		// YAML rejects some inputs that are valid JSON, so try JSON
		// explicitly before giving up.
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return cfg, fmt.Errorf("parse config %s (tried YAML and JSON): YAML error: %v, JSON error: %w",
				path, err, jsonErr)
		}
	}

	return cfg, nil
}

// SaveFile writes the configuration as YAML.
func (c Config) SaveFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
