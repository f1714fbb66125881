package perf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConstants pins the reference configuration the documented
// model values are calibrated against.
func TestDefaultConstants(t *testing.T) {
	c := DefaultConstants()

	assert.Equal(t, 100e6, c.TimerFrequencyHz)
	assert.Equal(t, 64, c.CacheLineBytes)
	assert.Equal(t, 15e9, c.DRAMBandwidthBps)
	assert.Equal(t, 100.0, c.DRAMAccessLatencyNs)
	assert.Equal(t, 10.0, c.CacheHitLatencyNs)
	assert.Equal(t, 50.0, c.SnoopLatencyNs)
	assert.Equal(t, 200.0, c.SoftwareOverheadNs)
}

// TestLoadConstants_PartialOverride verifies each field is independently
// overridable: fields absent from the YAML keep their defaults.
func TestLoadConstants_PartialOverride(t *testing.T) {
	// GIVEN a constants file overriding only two fields
	path := filepath.Join(t.TempDir(), "constants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"snoop_latency_ns: 75\ndram_bandwidth_bytes_per_s: 2.0e10\n"), 0o644))

	// WHEN it is loaded
	c, err := LoadConstants(path)

	// THEN the overrides apply and everything else stays at default
	require.NoError(t, err)
	assert.Equal(t, 75.0, c.SnoopLatencyNs)
	assert.Equal(t, 2.0e10, c.DRAMBandwidthBps)
	assert.Equal(t, 100e6, c.TimerFrequencyHz)
	assert.Equal(t, 64, c.CacheLineBytes)
}

// TestLoadConstants_RejectsNonPositive verifies validation catches
// constants the model would divide by.
func TestLoadConstants_RejectsNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_line_bytes: 0\n"), 0o644))

	_, err := LoadConstants(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache_line_bytes")
}

// TestLoadConstants_MissingFile verifies the read error path.
func TestLoadConstants_MissingFile(t *testing.T) {
	_, err := LoadConstants(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}
