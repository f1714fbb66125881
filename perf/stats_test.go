package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesOf(size int, values ...float64) []Sample {
	out := make([]Sample, len(values))
	for i, v := range values {
		out[i] = Sample{PacketSize: size, DeltaUs: v}
	}
	return out
}

// TestAggregate_ConstantValues verifies the degenerate-spread case: three
// identical values yield zero std and cv without touching NaN.
func TestAggregate_ConstantValues(t *testing.T) {
	// GIVEN three identical 10 µs measurements at one packet size
	samples := samplesOf(64, 10.0, 10.0, 10.0)

	// WHEN they are aggregated
	table := AggregateByPacketSize(samples)

	// THEN one row with mean 10, std 0, cv 0, min=max=median=10
	require.Len(t, table, 1)
	g := table[0]
	assert.Equal(t, 64, g.PacketSize)
	assert.Equal(t, 3, g.Count)
	assert.InDelta(t, 10.0, g.Mean, 1e-12)
	assert.InDelta(t, 0.0, g.Std, 1e-12)
	assert.InDelta(t, 0.0, g.CV, 1e-12)
	assert.InDelta(t, 10.0, g.Min, 1e-12)
	assert.InDelta(t, 10.0, g.Max, 1e-12)
	assert.InDelta(t, 10.0, g.Median, 1e-12)
	assert.False(t, g.Degenerate)
}

// TestAggregate_LinearInterpolationQuantiles pins the quantile estimator:
// for [1,2,3,4] the interpolated q25/median/q75 are 1.75/2.5/3.25.
func TestAggregate_LinearInterpolationQuantiles(t *testing.T) {
	table := AggregateByPacketSize(samplesOf(128, 1.0, 2.0, 3.0, 4.0))

	require.Len(t, table, 1)
	g := table[0]
	assert.InDelta(t, 1.75, g.Q25, 1e-12)
	assert.InDelta(t, 2.5, g.Median, 1e-12)
	assert.InDelta(t, 3.25, g.Q75, 1e-12)
}

// TestAggregate_SingleSampleGroup pins the documented convention: a group
// of one sample gets std = 0, not NaN, and is flagged Degenerate.
func TestAggregate_SingleSampleGroup(t *testing.T) {
	table := AggregateByPacketSize(samplesOf(512, 7.5))

	require.Len(t, table, 1)
	g := table[0]
	assert.Equal(t, 1, g.Count)
	assert.Equal(t, 0.0, g.Std)
	assert.Equal(t, 0.0, g.CV)
	assert.True(t, g.Degenerate)
	assert.Equal(t, 7.5, g.Median)
	assert.Equal(t, 7.5, g.Q25)
	assert.Equal(t, 7.5, g.Q75)
}

// TestAggregate_SampleStdDev verifies the n-1 estimator: [1,2,3] has a
// sample std of exactly 1.
func TestAggregate_SampleStdDev(t *testing.T) {
	table := AggregateByPacketSize(samplesOf(64, 1.0, 2.0, 3.0))

	require.Len(t, table, 1)
	assert.InDelta(t, 1.0, table[0].Std, 1e-12)
	assert.InDelta(t, 50.0, table[0].CV, 1e-9) // std/mean*100 = 1/2*100
}

// TestAggregate_OrderedBySize verifies ascending packet-size order
// regardless of input order.
func TestAggregate_OrderedBySize(t *testing.T) {
	var samples []Sample
	samples = append(samples, samplesOf(1024, 4.0)...)
	samples = append(samples, samplesOf(64, 1.0)...)
	samples = append(samples, samplesOf(256, 2.0)...)

	table := AggregateByPacketSize(samples)

	require.Len(t, table, 3)
	assert.Equal(t, []int{64, 256, 1024},
		[]int{table[0].PacketSize, table[1].PacketSize, table[2].PacketSize})
}

// TestAggregate_InputUntouched verifies the aggregator is a pure function:
// the caller's slice order survives aggregation.
func TestAggregate_InputUntouched(t *testing.T) {
	samples := samplesOf(64, 3.0, 1.0, 2.0)

	AggregateByPacketSize(samples)

	assert.Equal(t, []float64{3.0, 1.0, 2.0},
		[]float64{samples[0].DeltaUs, samples[1].DeltaUs, samples[2].DeltaUs})
}

// TestAggregate_Roundtrip verifies the grouping key is idempotent:
// re-aggregating each statistics row as a single sample reproduces the
// mean per packet size.
func TestAggregate_Roundtrip(t *testing.T) {
	var samples []Sample
	samples = append(samples, samplesOf(64, 1.0, 2.0, 3.0)...)
	samples = append(samples, samplesOf(256, 5.0, 7.0)...)
	first := AggregateByPacketSize(samples)

	// WHEN each row is treated as a single-sample group and re-aggregated
	rewrapped := make([]Sample, len(first))
	for i, g := range first {
		rewrapped[i] = Sample{PacketSize: g.PacketSize, DeltaUs: g.Mean}
	}
	second := AggregateByPacketSize(rewrapped)

	// THEN the means and the grouping survive unchanged
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].PacketSize, second[i].PacketSize)
		assert.InDelta(t, first[i].Mean, second[i].Mean, 1e-12)
		assert.Equal(t, 1, second[i].Count)
	}
}

// TestPartition_GroupsBySize verifies the two-phase fold's first phase.
func TestPartition_GroupsBySize(t *testing.T) {
	samples := append(samplesOf(64, 1.0, 2.0), samplesOf(128, 3.0)...)

	groups := Partition(samples)

	require.Len(t, groups, 2)
	assert.Equal(t, []float64{1.0, 2.0}, groups[64])
	assert.Equal(t, []float64{3.0}, groups[128])
}
