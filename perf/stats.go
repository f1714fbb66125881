package perf

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GroupStatistics summarizes the delta_us distribution for one packet
// size. All latency fields are in microseconds. Std is the sample (n-1)
// estimator; a group holding a single sample gets Std = 0 by convention
// rather than NaN, with Degenerate set so callers can flag it.
type GroupStatistics struct {
	PacketSize int
	Count      int
	Mean       float64
	Std        float64
	Min        float64
	Max        float64
	Median     float64
	Q25        float64
	Q75        float64
	CV         float64 // std/mean as a percentage
	Degenerate bool    // count == 1: the spread statistics carry no information
}

// AggregateByPacketSize partitions samples by exact packet size and
// reduces each partition to one GroupStatistics row, ascending by size.
// Pure function of its input; the sample slice is not modified.
func AggregateByPacketSize(samples []Sample) []GroupStatistics {
	groups := Partition(samples)

	sizes := make([]int, 0, len(groups))
	for size := range groups {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	out := make([]GroupStatistics, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, reduceGroup(size, groups[size]))
	}
	return out
}

// Partition groups the delta_us values by packet size, preserving input
// order within each group. Exported for collaborators that need the raw
// per-size distributions (significance tests, confidence intervals).
func Partition(samples []Sample) map[int][]float64 {
	groups := make(map[int][]float64)
	for _, s := range samples {
		groups[s.PacketSize] = append(groups[s.PacketSize], s.DeltaUs)
	}
	return groups
}

func reduceGroup(size int, values []float64) GroupStatistics {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	g := GroupStatistics{
		PacketSize: size,
		Count:      len(sorted),
		Mean:       stat.Mean(sorted, nil),
		Min:        sorted[0],
		Max:        sorted[len(sorted)-1],
		Median:     quantile(sorted, 0.50),
		Q25:        quantile(sorted, 0.25),
		Q75:        quantile(sorted, 0.75),
	}
	if g.Count > 1 {
		g.Std = stat.StdDev(sorted, nil)
	} else {
		g.Degenerate = true
	}
	g.CV = g.Std / g.Mean * 100
	return g
}

// quantile interpolates linearly between adjacent order statistics at
// index p*(n-1) over the sorted values.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
