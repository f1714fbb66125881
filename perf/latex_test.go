package perf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRenderLaTeXTable verifies the booktabs skeleton and the per-row
// size labels.
func TestRenderLaTeXTable(t *testing.T) {
	table := []GroupStatistics{
		statsRow(64, 5.0, 0.5),
		statsRow(4096, 12.0, 1.0),
	}

	out := RenderLaTeXTable(table, DefaultConstants())

	assert.True(t, strings.HasPrefix(out, "\\begin{table}[H]"))
	assert.Contains(t, out, "\\toprule")
	assert.Contains(t, out, "\\bottomrule")
	assert.Contains(t, out, "\n64 & 5.000 & 0.500 &")
	assert.Contains(t, out, "\n4 KB & 12.000 & 1.000 &")
	assert.Equal(t, 2, strings.Count(out, "\\\\\n")-2) // two data rows after the two header rows
}
