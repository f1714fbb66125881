package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coherence-eval/coherence-eval/perf"
	"github.com/coherence-eval/coherence-eval/perf/store"
)

var (
	outputPrefix string // Prefix for generated output files
	latexOut     bool   // Also render the LaTeX table
	chartsOut    bool   // Also render the charts
	archivePath  string // SQLite archive to append this run to
	runLabel     string // Label stored with the archived run
)

// analyzeCmd aggregates one measurement CSV and compares it against the
// coherent-regime model.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <samples.csv>",
	Short: "Aggregate measured transfers and compare them to the coherent model",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		constants := resolveConstants(cmd)

		tbl, err := perf.ReadSamplesCSV(args[0])
		if err != nil {
			logrus.Fatalf("unable to read samples: %v", err)
		}
		set, err := perf.ValidateAndFilter(tbl)
		if err != nil {
			logrus.Fatalf("unable to validate samples: %v", err)
		}
		logrus.Infof("loaded %d valid measurements (%d filtered) from %s",
			len(set.Samples), set.Removed, args[0])

		report, err := perf.BuildSummaryReport(set, constants)
		if err != nil {
			logrus.Fatalf("unable to build summary: %v", err)
		}
		report.Print()

		statsFile := outputPrefix + "_statistics.csv"
		if err := perf.WriteStatisticsCSV(statsFile, report.Stats); err != nil {
			logrus.Fatalf("unable to write statistics: %v", err)
		}
		logrus.Infof("saved statistics to %s", statsFile)

		if latexOut {
			latexFile := outputPrefix + "_table.tex"
			latex := perf.RenderLaTeXTable(report.Stats, constants)
			if err := os.WriteFile(latexFile, []byte(latex), 0o644); err != nil {
				logrus.Fatalf("unable to write LaTeX table: %v", err)
			}
			logrus.Infof("saved LaTeX table to %s", latexFile)
		}

		if chartsOut {
			if err := perf.WriteLatencyChart(report.Stats, constants, outputPrefix+"_latency.png"); err != nil {
				logrus.Fatalf("unable to write latency chart: %v", err)
			}
			if err := perf.WriteSpeedupChart(report.Rows, report.Sum, outputPrefix+"_speedup.png"); err != nil {
				logrus.Fatalf("unable to write speedup chart: %v", err)
			}
			logrus.Infof("saved charts with prefix %s", outputPrefix)
		}

		if archivePath != "" {
			db, err := store.Open(archivePath)
			if err != nil {
				logrus.Fatalf("unable to open archive: %v", err)
			}
			defer db.Close()
			id, err := db.SaveRun(runLabel, args[0], report.Stats)
			if err != nil {
				logrus.Fatalf("unable to archive run: %v", err)
			}
			logrus.Infof("archived run %d (%s) to %s", id, runLabel, archivePath)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&outputPrefix, "output-prefix", "perf", "Prefix for output files")
	analyzeCmd.Flags().BoolVar(&latexOut, "latex", false, "Generate the LaTeX results table")
	analyzeCmd.Flags().BoolVar(&chartsOut, "charts", false, "Generate latency and speedup charts")
	analyzeCmd.Flags().StringVar(&archivePath, "archive", "", "SQLite archive to append this run to")
	analyzeCmd.Flags().StringVar(&runLabel, "label", "non-coherent", "Label stored with the archived run")

	rootCmd.AddCommand(analyzeCmd)
}
