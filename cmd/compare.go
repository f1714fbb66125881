package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coherence-eval/coherence-eval/perf"
)

var (
	labelA        string // Name for the baseline configuration (first file)
	labelB        string // Name for the candidate configuration (second file)
	realLatency   bool   // Recompute deltas from the raw timestamps
	compareOutput string // Path for the merged comparison CSV
	compareCharts bool   // Also render speedup and jitter charts
)

// compareCmd joins two measured configurations, e.g. TCM vs DDR.
// Speedup direction follows argument order: mean(candidate)/mean(baseline).
var compareCmd = &cobra.Command{
	Use:   "compare <baseline.csv> <candidate.csv>",
	Short: "Compare two measured configurations packet size by packet size",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		constants := resolveConstants(cmd)

		setA := loadSampleSet(args[0], constants)
		setB := loadSampleSet(args[1], constants)

		statsA := perf.AggregateByPacketSize(setA.Samples)
		statsB := perf.AggregateByPacketSize(setB.Samples)

		rows, sum, err := perf.Compare(statsA, statsB, labelA, labelB)
		if err != nil {
			logrus.Fatalf("unable to compare configurations: %v", err)
		}
		sig := perf.SignificanceBySize(setA.Samples, setB.Samples)

		report := &perf.ComparisonReport{Rows: rows, Sum: sum, Sig: sig}
		report.Print()

		if err := perf.WriteComparisonCSV(compareOutput, rows, sum); err != nil {
			logrus.Fatalf("unable to write comparison: %v", err)
		}
		logrus.Infof("saved comparison to %s", compareOutput)

		if compareCharts {
			if err := perf.WriteSpeedupChart(rows, sum, "comparison_speedup.png"); err != nil {
				logrus.Fatalf("unable to write speedup chart: %v", err)
			}
			if err := perf.WriteCVChart(rows, sum, "comparison_cv.png"); err != nil {
				logrus.Fatalf("unable to write jitter chart: %v", err)
			}
		}
	},
}

// loadSampleSet reads, validates, and optionally re-times one CSV.
func loadSampleSet(path string, constants perf.ModelConstants) *perf.SampleSet {
	tbl, err := perf.ReadSamplesCSV(path)
	if err != nil {
		logrus.Fatalf("unable to read %s: %v", path, err)
	}
	set, err := perf.ValidateAndFilter(tbl)
	if err != nil {
		logrus.Fatalf("unable to validate %s: %v", path, err)
	}
	if realLatency {
		// The recorded delta_ticks includes polling overhead; the
		// timestamp difference is the end-to-end latency.
		set, err = perf.RecomputeRealLatency(set, constants)
		if err != nil {
			logrus.Fatalf("unable to recompute latency for %s: %v", path, err)
		}
	}
	logrus.Infof("loaded %d valid measurements (%d filtered) from %s",
		len(set.Samples), set.Removed, path)
	return set
}

func init() {
	compareCmd.Flags().StringVar(&labelA, "label-a", "TCM", "Name of the baseline configuration")
	compareCmd.Flags().StringVar(&labelB, "label-b", "DDR", "Name of the candidate configuration")
	compareCmd.Flags().BoolVar(&realLatency, "real-latency", true, "Recompute deltas from the raw sender/receiver timestamps")
	compareCmd.Flags().StringVar(&compareOutput, "output", "comparison_stats.csv", "Path for the merged comparison CSV")
	compareCmd.Flags().BoolVar(&compareCharts, "charts", false, "Generate speedup and jitter charts")

	rootCmd.AddCommand(compareCmd)
}
