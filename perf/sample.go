package perf

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// RequiredColumns are the columns every input table must resolve before
// any computation starts.
var RequiredColumns = []string{
	"packet_size",
	"sender_timestamp",
	"receiver_timestamp",
	"delta_ticks",
	"delta_us",
}

// Sample is one measured transfer event between the two processing units.
type Sample struct {
	PacketSize        int     // bytes
	SenderTimestamp   uint64  // hardware tick count at send
	ReceiverTimestamp uint64  // hardware tick count at receipt
	DeltaTicks        int64   // may be negative on timer rollover
	DeltaUs           float64 // ticks converted at the timer frequency
}

// Valid reports whether the measurement is usable. A non-positive delta
// indicates timer rollover or a failed handshake.
func (s Sample) Valid() bool { return s.DeltaUs > 0 }

// RawTable is an ordered tabular input as read from disk. The core only
// requires the named columns to be resolvable; any extra columns are
// carried along untouched.
type RawTable struct {
	Columns []string
	Rows    [][]string
	Source  string // originating file, used in error messages
}

// SampleSet is the immutable output of ValidateAndFilter: the surviving
// samples in input order, plus the count of records dropped on the way.
type SampleSet struct {
	Samples []Sample
	Removed int
}

// ValidateAndFilter enforces the input schema and drops invalid records.
// A missing required column is fatal (*SchemaError naming every absent
// column). Records with delta_us <= 0 are dropped and counted in Removed.
// Zero surviving records is fatal (*EmptyDatasetError).
func ValidateAndFilter(tbl *RawTable) (*SampleSet, error) {
	index := make(map[string]int, len(tbl.Columns))
	for i, col := range tbl.Columns {
		index[col] = i
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	set := &SampleSet{Samples: make([]Sample, 0, len(tbl.Rows))}
	for rowNum, row := range tbl.Rows {
		s, err := parseSample(row, index)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", tbl.Source, rowNum+1, err)
		}
		if !s.Valid() {
			set.Removed++
			continue
		}
		set.Samples = append(set.Samples, s)
	}
	if len(set.Samples) == 0 {
		return nil, &EmptyDatasetError{Source: tbl.Source}
	}
	if set.Removed > 0 {
		logrus.Warnf("filtered out %d invalid entries from %s", set.Removed, tbl.Source)
	}
	return set, nil
}

func parseSample(row []string, index map[string]int) (Sample, error) {
	field := func(col string) string { return row[index[col]] }

	size, err := strconv.Atoi(field("packet_size"))
	if err != nil {
		return Sample{}, fmt.Errorf("invalid packet_size %q: %w", field("packet_size"), err)
	}
	sent, err := strconv.ParseUint(field("sender_timestamp"), 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid sender_timestamp %q: %w", field("sender_timestamp"), err)
	}
	recv, err := strconv.ParseUint(field("receiver_timestamp"), 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid receiver_timestamp %q: %w", field("receiver_timestamp"), err)
	}
	ticks, err := strconv.ParseInt(field("delta_ticks"), 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid delta_ticks %q: %w", field("delta_ticks"), err)
	}
	us, err := strconv.ParseFloat(field("delta_us"), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid delta_us %q: %w", field("delta_us"), err)
	}
	return Sample{
		PacketSize:        size,
		SenderTimestamp:   sent,
		ReceiverTimestamp: recv,
		DeltaTicks:        ticks,
		DeltaUs:           us,
	}, nil
}

// RecomputeRealLatency rebuilds every sample's delta from the raw
// sender/receiver timestamps at the configured timer frequency. The
// recorded delta_ticks includes the receiver's polling overhead; the
// timestamp difference is the end-to-end latency. Samples whose recomputed
// delta is non-positive are dropped and added to Removed.
func RecomputeRealLatency(set *SampleSet, c ModelConstants) (*SampleSet, error) {
	ticksPerUs := c.TimerFrequencyHz / 1e6
	out := &SampleSet{
		Samples: make([]Sample, 0, len(set.Samples)),
		Removed: set.Removed,
	}
	for _, s := range set.Samples {
		ticks := int64(s.ReceiverTimestamp) - int64(s.SenderTimestamp)
		s.DeltaTicks = ticks
		s.DeltaUs = float64(ticks) / ticksPerUs
		if !s.Valid() {
			out.Removed++
			continue
		}
		out.Samples = append(out.Samples, s)
	}
	if len(out.Samples) == 0 {
		return nil, &EmptyDatasetError{}
	}
	return out, nil
}
