package perf

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// ComparisonRow joins one packet size across two statistic tables.
// Speedup is MeanB/MeanA; the direction is whatever the caller's argument
// order says it is (baseline first, candidate second).
type ComparisonRow struct {
	PacketSize int
	MeanA      float64
	StdA       float64
	CVA        float64
	MeanB      float64
	StdB       float64
	CVB        float64
	Speedup    float64
}

// Summary holds the whole-dataset scalars for one comparison.
type Summary struct {
	LabelA string
	LabelB string
	Rows   int

	AvgSpeedup float64 // unweighted arithmetic mean over rows
	MaxSpeedup float64

	// Packet sizes with the lowest and highest measurement jitter in each
	// full input table (not just the joined rows).
	MinCVSizeA, MaxCVSizeA int
	MinCVSizeB, MaxCVSizeB int

	AvgStdA float64
	AvgStdB float64

	// ConsistencyRatio is AvgStdB/AvgStdA. ConsistencyOK is false when the
	// divisor is zero (the baseline has no measurable jitter); the ratio is
	// left at 0 rather than propagating +Inf.
	ConsistencyRatio float64
	ConsistencyOK    bool

	// DroppedA and DroppedB count rows present in only one input and
	// excluded by the inner join, so partial coverage never passes silently.
	DroppedA int
	DroppedB int
}

// Compare inner-joins two statistic tables on packet size and derives the
// per-row speedups plus the whole-dataset summary. Sizes present in only
// one input are dropped from the rows and counted in the summary.
// Returns ErrNoCommonSizes when the join is empty.
func Compare(statsA, statsB []GroupStatistics, labelA, labelB string) ([]ComparisonRow, Summary, error) {
	bySizeB := make(map[int]GroupStatistics, len(statsB))
	for _, g := range statsB {
		bySizeB[g.PacketSize] = g
	}

	rows := make([]ComparisonRow, 0, len(statsA))
	for _, a := range statsA {
		b, ok := bySizeB[a.PacketSize]
		if !ok {
			continue
		}
		rows = append(rows, ComparisonRow{
			PacketSize: a.PacketSize,
			MeanA:      a.Mean,
			StdA:       a.Std,
			CVA:        a.CV,
			MeanB:      b.Mean,
			StdB:       b.Std,
			CVB:        b.CV,
			Speedup:    b.Mean / a.Mean,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PacketSize < rows[j].PacketSize })
	if len(rows) == 0 {
		return nil, Summary{}, ErrNoCommonSizes
	}

	sum := Summary{
		LabelA:   labelA,
		LabelB:   labelB,
		Rows:     len(rows),
		DroppedA: len(statsA) - len(rows),
		DroppedB: len(statsB) - len(rows),
	}
	for _, r := range rows {
		sum.AvgSpeedup += r.Speedup
		if r.Speedup > sum.MaxSpeedup {
			sum.MaxSpeedup = r.Speedup
		}
		sum.AvgStdA += r.StdA
		sum.AvgStdB += r.StdB
	}
	n := float64(len(rows))
	sum.AvgSpeedup /= n
	sum.AvgStdA /= n
	sum.AvgStdB /= n
	if sum.AvgStdA > 0 {
		sum.ConsistencyRatio = sum.AvgStdB / sum.AvgStdA
		sum.ConsistencyOK = true
	}
	sum.MinCVSizeA, sum.MaxCVSizeA = cvExtremes(statsA)
	sum.MinCVSizeB, sum.MaxCVSizeB = cvExtremes(statsB)
	return rows, sum, nil
}

// cvExtremes returns the packet sizes with the lowest and highest CV.
func cvExtremes(table []GroupStatistics) (minSize, maxSize int) {
	minSize, maxSize = table[0].PacketSize, table[0].PacketSize
	minCV, maxCV := table[0].CV, table[0].CV
	for _, g := range table[1:] {
		if g.CV < minCV {
			minCV, minSize = g.CV, g.PacketSize
		}
		if g.CV > maxCV {
			maxCV, maxSize = g.CV, g.PacketSize
		}
	}
	return minSize, maxSize
}

// SizeSignificance is the Welch two-sample t-test result for one shared
// packet size.
type SizeSignificance struct {
	PacketSize int
	P          float64
	NA, NB     int
	Err        error // set when the test is undefined for this pair
}

// SignificanceBySize runs Welch's t-test on the raw per-size delta_us
// distributions of two sample sets, for every packet size present in both,
// ascending. When the test is undefined (too few samples, zero variance)
// the size is reported with P = 1 and the error attached, mirroring how
// x/perf reports an inconclusive comparison instead of failing it.
func SignificanceBySize(samplesA, samplesB []Sample) []SizeSignificance {
	groupsA := Partition(samplesA)
	groupsB := Partition(samplesB)

	sizes := make([]int, 0, len(groupsA))
	for size := range groupsA {
		if _, ok := groupsB[size]; ok {
			sizes = append(sizes, size)
		}
	}
	sort.Ints(sizes)

	out := make([]SizeSignificance, 0, len(sizes))
	for _, size := range sizes {
		sig := SizeSignificance{
			PacketSize: size,
			NA:         len(groupsA[size]),
			NB:         len(groupsB[size]),
		}
		res, err := stats.TwoSampleWelchTTest(
			stats.Sample{Xs: groupsA[size]},
			stats.Sample{Xs: groupsB[size]},
			stats.LocationDiffers,
		)
		if err != nil {
			sig.P = 1
			sig.Err = err
		} else {
			sig.P = res.P
		}
		out = append(out, sig)
	}
	return out
}
