package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherence-eval/coherence-eval/perf"
)

func openTempDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// TestSaveAndLoadRun round-trips an aggregation result through the
// archive.
func TestSaveAndLoadRun(t *testing.T) {
	db := openTempDB(t)

	table := []perf.GroupStatistics{
		{PacketSize: 64, Count: 3, Mean: 1.5, Std: 0.2, Min: 1.3, Max: 1.7, Median: 1.5, Q25: 1.4, Q75: 1.6, CV: 13.3},
		{PacketSize: 1024, Count: 1, Mean: 6.0, Min: 6.0, Max: 6.0, Median: 6.0, Q25: 6.0, Q75: 6.0, Degenerate: true},
	}

	id, err := db.SaveRun("ddr-noncoherent", "ddr.csv", table)
	require.NoError(t, err)

	loaded, err := db.LoadRun(id)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 64, loaded[0].PacketSize)
	assert.InDelta(t, 1.5, loaded[0].Mean, 1e-12)
	assert.Equal(t, 3, loaded[0].Count)
	assert.False(t, loaded[0].Degenerate)
	assert.True(t, loaded[1].Degenerate)
}

// TestListRuns verifies the listing carries labels and group counts.
func TestListRuns(t *testing.T) {
	db := openTempDB(t)

	table := []perf.GroupStatistics{{PacketSize: 64, Count: 2, Mean: 1.0}}
	_, err := db.SaveRun("tcm", "tcm.csv", table)
	require.NoError(t, err)
	_, err = db.SaveRun("ddr", "ddr.csv", append(table,
		perf.GroupStatistics{PacketSize: 128, Count: 2, Mean: 2.0}))
	require.NoError(t, err)

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	labels := []string{runs[0].Label, runs[1].Label}
	assert.ElementsMatch(t, []string{"tcm", "ddr"}, labels)
	for _, r := range runs {
		if r.Label == "ddr" {
			assert.Equal(t, 2, r.Groups)
		} else {
			assert.Equal(t, 1, r.Groups)
		}
	}
}

// TestLoadRun_Missing verifies an unknown run ID is an error, not an
// empty table.
func TestLoadRun_Missing(t *testing.T) {
	db := openTempDB(t)

	_, err := db.LoadRun(42)

	assert.Error(t, err)
}
