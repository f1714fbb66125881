package perf

import (
	"fmt"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// MeanCI is a two-sided confidence interval around a group mean.
// OK is false when the interval is undefined (a single sample).
type MeanCI struct {
	Lo, Hi float64
	OK     bool
}

// SummaryReport bundles everything the analyze console output needs: the
// measured aggregates, their join against the coherent-model curve, and
// 95% confidence intervals around each group mean.
type SummaryReport struct {
	Stats []GroupStatistics
	Rows  []ComparisonRow // coherent model (A) vs measured (B), aligned with Stats
	Sum   Summary
	CIs   map[int]MeanCI
}

// BuildSummaryReport aggregates a filtered sample set and compares it
// against the coherent-regime model at the measured packet sizes.
func BuildSummaryReport(set *SampleSet, c ModelConstants) (*SummaryReport, error) {
	measured := AggregateByPacketSize(set.Samples)

	sizes := make([]int, len(measured))
	for i, g := range measured {
		sizes[i] = g.PacketSize
	}
	model, err := ModelCurve(sizes, Coherent, c)
	if err != nil {
		return nil, err
	}
	rows, sum, err := Compare(model, measured, "coherent-model", "measured")
	if err != nil {
		return nil, err
	}

	cis := make(map[int]MeanCI, len(measured))
	for size, values := range Partition(set.Samples) {
		if len(values) < 2 {
			cis[size] = MeanCI{}
			continue
		}
		_, lo, hi := (stats.Sample{Xs: values}).MeanCI(0.95)
		cis[size] = MeanCI{Lo: lo, Hi: hi, OK: true}
	}

	return &SummaryReport{Stats: measured, Rows: rows, Sum: sum, CIs: cis}, nil
}

// Print displays the aggregated measurements and their potential speedup
// under hardware coherence.
func (r *SummaryReport) Print() {
	rule := strings.Repeat("=", 78)
	fmt.Println(rule)
	fmt.Println("PERFORMANCE MEASUREMENT SUMMARY")
	fmt.Println(rule)

	fmt.Printf("\n%-12s %-11s %-11s %-22s %-8s %-10s\n",
		"Size", "Mean (µs)", "Std (µs)", "95% CI (µs)", "CV (%)", "Speedup")
	fmt.Println(strings.Repeat("-", 78))
	for i, g := range r.Stats {
		ciStr := "n/a"
		if ci, ok := r.CIs[g.PacketSize]; ok && ci.OK {
			ciStr = fmt.Sprintf("[%.3f, %.3f]", ci.Lo, ci.Hi)
		}
		fmt.Printf("%-12s %-11.3f %-11.3f %-22s %-8.1f %.1fx\n",
			SizeLabel(g.PacketSize), g.Mean, g.Std, ciStr, g.CV, r.Rows[i].Speedup)
	}

	fmt.Println("\n" + rule)
	fmt.Println("KEY FINDINGS:")
	fmt.Println(rule)
	fmt.Printf("1. Most consistent measurement: %s (lowest CV)\n", SizeLabel(r.Sum.MinCVSizeB))
	fmt.Printf("2. Highest jitter: %s (highest CV)\n", SizeLabel(r.Sum.MaxCVSizeB))
	fmt.Printf("3. Average potential speedup with CCI-400: %.1fx\n", r.Sum.AvgSpeedup)
	fmt.Printf("4. Maximum potential speedup: %.1fx\n", r.Sum.MaxSpeedup)
	fmt.Println(rule)
}

// ComparisonReport bundles the compare console output: joined rows, the
// summary scalars, and per-size Welch significance results.
type ComparisonReport struct {
	Rows []ComparisonRow
	Sum  Summary
	Sig  []SizeSignificance
}

// Print displays the two configurations side by side with per-size
// speedups and p-values.
func (r *ComparisonReport) Print() {
	a, b := r.Sum.LabelA, r.Sum.LabelB
	rule := strings.Repeat("=", 90)
	fmt.Println(rule)
	fmt.Printf("%s vs %s LATENCY COMPARISON\n", a, b)
	fmt.Println(rule)

	fmt.Printf("\n%-10s %-12s %-12s %-12s %-12s %-10s %-10s\n",
		"Size", a+" Mean", a+" Std", b+" Mean", b+" Std", "Speedup", "p-value")
	fmt.Println(strings.Repeat("-", 90))
	sigBySize := make(map[int]SizeSignificance, len(r.Sig))
	for _, s := range r.Sig {
		sigBySize[s.PacketSize] = s
	}
	for _, row := range r.Rows {
		pStr := "n/a"
		if s, ok := sigBySize[row.PacketSize]; ok {
			if s.Err != nil {
				pStr = "undef"
			} else {
				pStr = fmt.Sprintf("%.4f", s.P)
			}
		}
		fmt.Printf("%-10s %-12.3f %-12.3f %-12.3f %-12.3f %-10s %-10s\n",
			SizeLabel(row.PacketSize), row.MeanA, row.StdA, row.MeanB, row.StdB,
			fmt.Sprintf("%.1fx", row.Speedup), pStr)
	}

	fmt.Println("\n" + rule)
	fmt.Println("KEY FINDINGS:")
	fmt.Println(rule)
	fmt.Printf("1. Average %s→%s speedup: %.1fx (max %.1fx over %d sizes)\n",
		a, b, r.Sum.AvgSpeedup, r.Sum.MaxSpeedup, r.Sum.Rows)
	fmt.Printf("2. Average %s std dev: %.3f µs\n", a, r.Sum.AvgStdA)
	fmt.Printf("3. Average %s std dev: %.3f µs\n", b, r.Sum.AvgStdB)
	if r.Sum.ConsistencyOK {
		fmt.Printf("4. Consistency ratio (%s/%s std): %.1fx\n", b, a, r.Sum.ConsistencyRatio)
	} else {
		fmt.Printf("4. %s has near-zero jitter; consistency ratio undefined\n", a)
	}
	if r.Sum.DroppedA > 0 || r.Sum.DroppedB > 0 {
		fmt.Printf("5. Partial coverage: %d %s-only and %d %s-only packet sizes excluded\n",
			r.Sum.DroppedA, a, r.Sum.DroppedB, b)
	}
	fmt.Println(rule)
}

// SizeLabel formats a packet size the way the reports and charts label
// their axes: bytes below 1 KiB, otherwise whole KiB.
func SizeLabel(size int) string {
	if size >= 1024 {
		return fmt.Sprintf("%dK", size/1024)
	}
	return fmt.Sprintf("%d", size)
}
