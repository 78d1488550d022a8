package latency

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// TimingConfig holds latency values for the vector machine's instruction
// classes. All values are in cycles.
type TimingConfig struct {
	// AddSubLatency is the latency of lane-partitioned add and subtract.
	// The carry chain spans at most 8 slices. Default: 1 cycle.
	AddSubLatency uint64 `json:"add_sub_latency" yaml:"add_sub_latency"`

	// CompareLatency is the latency of equal, greater-than and less-than.
	// Default: 1 cycle.
	CompareLatency uint64 `json:"compare_latency" yaml:"compare_latency"`

	// ShiftLatency is the latency of logical shifts. Right shifts pay for
	// the two bit reversals. Default: 2 cycles.
	ShiftLatency uint64 `json:"shift_latency" yaml:"shift_latency"`

	// DupLatency is the latency of broadcasting an immediate. Default: 1 cycle.
	DupLatency uint64 `json:"dup_latency" yaml:"dup_latency"`

	// LoadLatency is the base latency of a vector load, added to the cache
	// access latency. Default: 1 cycle.
	LoadLatency uint64 `json:"load_latency" yaml:"load_latency"`

	// StoreLatency is the base latency of a vector store. Default: 1 cycle.
	StoreLatency uint64 `json:"store_latency" yaml:"store_latency"`

	// HaltLatency is the latency of HALT. Default: 1 cycle.
	HaltLatency uint64 `json:"halt_latency" yaml:"halt_latency"`
}

// DefaultTimingConfig returns a TimingConfig with default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		AddSubLatency:  1,
		CompareLatency: 1,
		ShiftLatency:   2,
		DupLatency:     1,
		LoadLatency:    1,
		StoreLatency:   1,
		HaltLatency:    1,
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads a TimingConfig from a JSON or YAML file, picked by the
// file extension. Fields missing from the file keep their defaults.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON or YAML file, picked by the file
// extension.
func (c *TimingConfig) SaveConfig(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all latency values are valid (> 0).
func (c *TimingConfig) Validate() error {
	fields := []struct {
		name  string
		value uint64
	}{
		{"add_sub_latency", c.AddSubLatency},
		{"compare_latency", c.CompareLatency},
		{"shift_latency", c.ShiftLatency},
		{"dup_latency", c.DupLatency},
		{"load_latency", c.LoadLatency},
		{"store_latency", c.StoreLatency},
		{"halt_latency", c.HaltLatency},
	}
	for _, f := range fields {
		if f.value == 0 {
			return fmt.Errorf("%s must be > 0", f.name)
		}
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
