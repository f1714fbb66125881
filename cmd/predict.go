package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coherence-eval/coherence-eval/perf"
)

var (
	sweepSizes    []int  // Explicit packet sizes to evaluate
	sweepMin      int    // First power-of-two size of the default sweep
	sweepMax      int    // Last power-of-two size of the default sweep
	predictOutput string // Optional CSV path for the sweep
)

// predictCmd evaluates the latency model standalone, without measurements.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Evaluate both model regimes over a packet size sweep",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		constants := resolveConstants(cmd)

		sizes := sweepSizes
		if len(sizes) == 0 {
			sizes = powerOfTwoSweep(sweepMin, sweepMax)
		}
		if len(sizes) == 0 {
			logrus.Fatalf("empty size sweep (min %d, max %d)", sweepMin, sweepMax)
		}

		fmt.Printf("%-12s %-16s %-18s %-12s\n",
			"Size", "Coherent (µs)", "Non-Coherent (µs)", "Model Speedup")
		for _, size := range sizes {
			coh := perf.CoherentLatency(size, constants)
			non := perf.NonCoherentLatency(size, constants)
			fmt.Printf("%-12s %-16.3f %-18.3f %.1fx\n",
				perf.SizeLabel(size), coh, non, non/coh)
		}

		if predictOutput != "" {
			if err := perf.WritePredictionsCSV(predictOutput, sizes, constants); err != nil {
				logrus.Fatalf("unable to write predictions: %v", err)
			}
			logrus.Infof("saved predictions to %s", predictOutput)
		}
	},
}

// powerOfTwoSweep returns min, 2*min, ... up to and including max.
func powerOfTwoSweep(min, max int) []int {
	if min <= 0 || max < min {
		return nil
	}
	var sizes []int
	for size := min; size <= max; size *= 2 {
		sizes = append(sizes, size)
	}
	return sizes
}

func init() {
	predictCmd.Flags().IntSliceVar(&sweepSizes, "sizes", nil, "Explicit packet sizes in bytes (overrides the power-of-two sweep)")
	predictCmd.Flags().IntVar(&sweepMin, "min-size", 64, "First size of the power-of-two sweep")
	predictCmd.Flags().IntVar(&sweepMax, "max-size", 1<<20, "Last size of the power-of-two sweep")
	predictCmd.Flags().StringVar(&predictOutput, "output", "", "Optional CSV path for the sweep")

	rootCmd.AddCommand(predictCmd)
}
