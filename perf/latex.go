package perf

import (
	"fmt"
	"strings"
)

// RenderLaTeXTable formats an aggregation result as a booktabs table for
// the project report, one row per packet size with the potential speedup
// under the coherent model.
func RenderLaTeXTable(table []GroupStatistics, c ModelConstants) string {
	var b strings.Builder
	b.WriteString("\\begin{table}[H]\n")
	b.WriteString("\\centering\n")
	b.WriteString("\\caption{APU-RPU Communication Performance Results (Non-Coherent Scenario)}\n")
	b.WriteString("\\label{tab:perf_results}\n")
	b.WriteString("\\begin{tabular}{@{}rrrrrrr@{}}\n")
	b.WriteString("\\toprule\n")
	b.WriteString("\\textbf{Size} & \\textbf{Mean} & \\textbf{Std} & \\textbf{Min} & \\textbf{Max} & \\textbf{CV} & \\textbf{Speedup} \\\\\n")
	b.WriteString("\\textbf{(bytes)} & \\textbf{(µs)} & \\textbf{(µs)} & \\textbf{(µs)} & \\textbf{(µs)} & \\textbf{(\\%)} & \\textbf{Potential} \\\\\n")
	b.WriteString("\\midrule\n")

	for _, g := range table {
		speedup := g.Mean / CoherentLatency(g.PacketSize, c)
		fmt.Fprintf(&b, "%s & %.3f & %.3f & %.3f & %.3f & %.1f & %.1fx \\\\\n",
			latexSizeLabel(g.PacketSize), g.Mean, g.Std, g.Min, g.Max, g.CV, speedup)
	}

	b.WriteString("\\bottomrule\n")
	b.WriteString("\\end{tabular}\n")
	b.WriteString("\\end{table}\n")
	return b.String()
}

func latexSizeLabel(size int) string {
	if size >= 1024 {
		return fmt.Sprintf("%d KB", size/1024)
	}
	return fmt.Sprintf("%d", size)
}
