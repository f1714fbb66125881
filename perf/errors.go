package perf

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from an input table.
// Structural problems are fatal: no partial processing happens after one.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input table is missing required column(s): %s",
		strings.Join(e.Missing, ", "))
}

// EmptyDatasetError reports that no valid samples survived filtering,
// which leaves nothing for the aggregator to summarize.
type EmptyDatasetError struct {
	Source string // originating file, may be empty
}

func (e *EmptyDatasetError) Error() string {
	if e.Source == "" {
		return "no valid samples remain after filtering"
	}
	return fmt.Sprintf("no valid samples remain after filtering %s", e.Source)
}

// ErrNoCommonSizes is returned by Compare when the two statistic tables
// share no packet sizes; every summary scalar would be undefined.
var ErrNoCommonSizes = errors.New("statistic tables share no packet sizes")
