package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherence-eval/coherence-eval/perf"
)

// TestResolveConstants_FlagOverride verifies the precedence chain:
// defaults, then explicitly set flags.
func TestResolveConstants_FlagOverride(t *testing.T) {
	require.NoError(t, rootCmd.ParseFlags([]string{"--snoop-latency-ns=75"}))
	t.Cleanup(func() {
		f := rootCmd.Flags().Lookup("snoop-latency-ns")
		require.NoError(t, f.Value.Set("50"))
		f.Changed = false
	})

	c := resolveConstants(rootCmd)

	assert.Equal(t, 75.0, c.SnoopLatencyNs)
	// Untouched fields keep the defaults
	assert.Equal(t, perf.DefaultConstants().CacheLineBytes, c.CacheLineBytes)
	assert.Equal(t, perf.DefaultConstants().DRAMBandwidthBps, c.DRAMBandwidthBps)
}

// TestPredictCommand_Runs executes the model sweep end to end through the
// CLI with an explicit size list.
func TestPredictCommand_Runs(t *testing.T) {
	rootCmd.SetArgs([]string{"predict", "--sizes", "64,128"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		sweepSizes = nil
	})

	assert.NoError(t, rootCmd.Execute())
}
