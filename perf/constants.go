package perf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelConstants is the hardware description the latency model evaluates
// against. It is always passed by value, never held as package state, so
// two hardware assumptions can be compared side by side in one process.
//
// The latency figures are rough ARM Cortex-A53/R5F estimates; the DDR4
// bandwidth is a conservative sustained figure, not the datasheet peak.
type ModelConstants struct {
	TimerFrequencyHz    float64 `yaml:"timer_frequency_hz"`
	CacheLineBytes      int     `yaml:"cache_line_bytes"`
	DRAMBandwidthBps    float64 `yaml:"dram_bandwidth_bytes_per_s"`
	DRAMAccessLatencyNs float64 `yaml:"dram_access_latency_ns"`
	CacheHitLatencyNs   float64 `yaml:"cache_hit_latency_ns"`
	SnoopLatencyNs      float64 `yaml:"snoop_latency_ns"`
	SoftwareOverheadNs  float64 `yaml:"software_overhead_ns"`
}

// DefaultConstants returns the reference ZynqMP configuration: 100 MHz
// trigger timer, 64-byte cache lines, 15 GB/s sustained DDR4, and CCI-400
// snoop cost.
func DefaultConstants() ModelConstants {
	return ModelConstants{
		TimerFrequencyHz:    100e6,
		CacheLineBytes:      64,
		DRAMBandwidthBps:    15e9,
		DRAMAccessLatencyNs: 100,
		CacheHitLatencyNs:   10,
		SnoopLatencyNs:      50,
		SoftwareOverheadNs:  200,
	}
}

// LoadConstants reads a YAML constants file over the defaults. Fields
// absent from the file keep their default values, so each constant is
// independently overridable.
func LoadConstants(path string) (ModelConstants, error) {
	c := DefaultConstants()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read constants %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse constants YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("constants %q: %w", path, err)
	}
	return c, nil
}

// Validate rejects constants the model cannot divide by.
func (c ModelConstants) Validate() error {
	if c.TimerFrequencyHz <= 0 {
		return fmt.Errorf("timer_frequency_hz must be positive, got %g", c.TimerFrequencyHz)
	}
	if c.CacheLineBytes <= 0 {
		return fmt.Errorf("cache_line_bytes must be positive, got %d", c.CacheLineBytes)
	}
	if c.DRAMBandwidthBps <= 0 {
		return fmt.Errorf("dram_bandwidth_bytes_per_s must be positive, got %g", c.DRAMBandwidthBps)
	}
	return nil
}
