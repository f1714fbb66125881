package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coherence-eval/coherence-eval/perf"
)

var (
	logLevel      string // Log verbosity level
	constantsFile string // Optional YAML file overriding model constants

	// Individual model-constant overrides; defaults mirror
	// perf.DefaultConstants so help output shows the reference values.
	timerFrequencyHz    float64
	cacheLineBytes      int
	dramBandwidthBps    float64
	dramAccessLatencyNs float64
	cacheHitLatencyNs   float64
	snoopLatencyNs      float64
	softwareOverheadNs  float64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "coherence-eval",
	Short: "Evaluate APU-RPU transfer latency against a cache-coherence model",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// resolveConstants builds the model constants for one invocation:
// defaults, then the optional YAML file, then any explicitly set flags.
func resolveConstants(cmd *cobra.Command) perf.ModelConstants {
	c := perf.DefaultConstants()
	if constantsFile != "" {
		loaded, err := perf.LoadConstants(constantsFile)
		if err != nil {
			logrus.Fatalf("unable to load model constants: %v", err)
		}
		c = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("timer-frequency-hz") {
		c.TimerFrequencyHz = timerFrequencyHz
	}
	if flags.Changed("cache-line-bytes") {
		c.CacheLineBytes = cacheLineBytes
	}
	if flags.Changed("dram-bandwidth-bytes-per-s") {
		c.DRAMBandwidthBps = dramBandwidthBps
	}
	if flags.Changed("dram-access-latency-ns") {
		c.DRAMAccessLatencyNs = dramAccessLatencyNs
	}
	if flags.Changed("cache-hit-latency-ns") {
		c.CacheHitLatencyNs = cacheHitLatencyNs
	}
	if flags.Changed("snoop-latency-ns") {
		c.SnoopLatencyNs = snoopLatencyNs
	}
	if flags.Changed("software-overhead-ns") {
		c.SoftwareOverheadNs = softwareOverheadNs
	}

	if err := c.Validate(); err != nil {
		logrus.Fatalf("invalid model constants: %v", err)
	}
	return c
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up the flags shared by every subcommand
func init() {
	defaults := perf.DefaultConstants()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")
	pf.StringVar(&constantsFile, "constants", "", "YAML file overriding the default model constants")
	pf.Float64Var(&timerFrequencyHz, "timer-frequency-hz", defaults.TimerFrequencyHz, "Trigger timer frequency in Hz")
	pf.IntVar(&cacheLineBytes, "cache-line-bytes", defaults.CacheLineBytes, "Cache line size in bytes")
	pf.Float64Var(&dramBandwidthBps, "dram-bandwidth-bytes-per-s", defaults.DRAMBandwidthBps, "Sustained DRAM bandwidth in bytes/s")
	pf.Float64Var(&dramAccessLatencyNs, "dram-access-latency-ns", defaults.DRAMAccessLatencyNs, "DRAM access latency per cache line in ns")
	pf.Float64Var(&cacheHitLatencyNs, "cache-hit-latency-ns", defaults.CacheHitLatencyNs, "L1 cache hit latency in ns")
	pf.Float64Var(&snoopLatencyNs, "snoop-latency-ns", defaults.SnoopLatencyNs, "CCI snoop latency per cache line in ns")
	pf.Float64Var(&softwareOverheadNs, "software-overhead-ns", defaults.SoftwareOverheadNs, "Fixed software overhead in ns")
}
