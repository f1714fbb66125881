package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coherence-eval/coherence-eval/perf/store"
)

// runsCmd lists the aggregation runs archived by `analyze --archive`.
var runsCmd = &cobra.Command{
	Use:   "runs <archive.db>",
	Short: "List archived aggregation runs",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db, err := store.Open(args[0])
		if err != nil {
			logrus.Fatalf("unable to open archive: %v", err)
		}
		defer db.Close()

		runs, err := db.ListRuns()
		if err != nil {
			logrus.Fatalf("unable to list runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("archive is empty")
			return
		}

		fmt.Printf("%-6s %-20s %-28s %-8s %s\n", "ID", "Label", "Source", "Groups", "Created")
		for _, r := range runs {
			fmt.Printf("%-6d %-20s %-28s %-8d %s\n",
				r.ID, r.Label, r.Source, r.Groups, r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
