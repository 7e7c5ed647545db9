package streambench

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ArraySize != 10000000 {
		t.Errorf("ArraySize = %d, want 10000000", cfg.ArraySize)
	}
	if cfg.IndexArraySize != 10000000 {
		t.Errorf("IndexArraySize = %d, want 10000000", cfg.IndexArraySize)
	}
	if cfg.Trials != 10 {
		t.Errorf("Trials = %d, want 10", cfg.Trials)
	}
	if cfg.Offset != 0 {
		t.Errorf("Offset = %d, want 0", cfg.Offset)
	}
	if cfg.Precision != Float64 {
		t.Errorf("Precision = %q, want %q", cfg.Precision, Float64)
	}
	if cfg.Irregular() {
		t.Error("default config should not enable irregular kernels")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestPrecisionProperties(t *testing.T) {
	if Float32.ElemSize() != 4 || Float64.ElemSize() != 8 {
		t.Errorf("ElemSize = %d/%d, want 4/8", Float32.ElemSize(), Float64.ElemSize())
	}
	if Float32.Epsilon() != 1e-6 {
		t.Errorf("Float32 epsilon = %g, want 1e-6", Float32.Epsilon())
	}
	if Float64.Epsilon() != 1e-13 {
		t.Errorf("Float64 epsilon = %g, want 1e-13", Float64.Epsilon())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero array size", func(c *Config) { c.ArraySize = 0 }, false},
		{"negative offset", func(c *Config) { c.Offset = -1 }, false},
		{"one trial", func(c *Config) { c.Trials = 1 }, false},
		{"negative threads", func(c *Config) { c.Threads = -2 }, false},
		{"bad precision", func(c *Config) { c.Precision = "float16" }, false},
		{"gather", func(c *Config) { c.Gather = true }, true},
		{"gather with zero index size", func(c *Config) {
			c.Gather = true
			c.IndexArraySize = 0
		}, false},
		{"irregular index overflow", func(c *Config) {
			c.Gather = true
			size := int64(math.MaxInt32) + 1
			c.ArraySize = int(size) // wraps negative on 32-bit, oversized on 64-bit
		}, false},
		{"scatter wider than dense", func(c *Config) {
			c.Scatter = true
			c.IndexArraySize = c.ArraySize + 1
		}, false},
		{"scatter within dense", func(c *Config) {
			c.Scatter = true
			c.IndexArraySize = c.ArraySize
		}, true},
		{"float32", func(c *Config) { c.Precision = Float32 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !IsConfigError(err) {
				t.Fatalf("Validate() = %v, want config error", err)
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArraySize = 4096
	cfg.IndexArraySize = 4096
	cfg.Gather = true
	cfg.PermuteIndex = true
	cfg.Seed = 42
	cfg.Precision = Float32

	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.json")
	blob := []byte(`{"array_size": 2048, "trials": 4, "precision": "float32"}`)
	if err := os.WriteFile(path, blob, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ArraySize != 2048 || cfg.Trials != 4 || cfg.Precision != Float32 {
		t.Errorf("loaded %+v", cfg)
	}
	// Fields absent from the file keep their defaults.
	if cfg.IndexArraySize != 10000000 {
		t.Errorf("IndexArraySize = %d, want default", cfg.IndexArraySize)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadConfig on a missing file must error")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{array_size: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig on malformed input must error")
	}
}
