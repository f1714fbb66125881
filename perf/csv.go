package perf

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadSamplesCSV loads a measurement CSV into a RawTable. The first row is
// the header; schema enforcement is left to ValidateAndFilter.
func ReadSamplesCSV(path string) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header of %q: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	tbl := &RawTable{Columns: header, Source: path}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d of %q: %w", len(tbl.Rows)+1, path, err)
		}
		tbl.Rows = append(tbl.Rows, record)
	}
	return tbl, nil
}

// statisticsHeader is the column order of the output statistics table.
var statisticsHeader = []string{
	"packet_size", "mean", "std", "min", "max", "median", "count", "q25", "q75", "cv",
}

// WriteStatisticsCSV persists one aggregation result, one row per packet
// size in the order given.
func WriteStatisticsCSV(path string, table []GroupStatistics) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create statistics csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(statisticsHeader); err != nil {
		return err
	}
	for _, g := range table {
		record := []string{
			strconv.Itoa(g.PacketSize),
			formatFloat(g.Mean),
			formatFloat(g.Std),
			formatFloat(g.Min),
			formatFloat(g.Max),
			formatFloat(g.Median),
			strconv.Itoa(g.Count),
			formatFloat(g.Q25),
			formatFloat(g.Q75),
			formatFloat(g.CV),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteComparisonCSV persists the joined comparison rows. The mean/std/cv
// columns are suffixed with the summary's labels, e.g. mean_tcm, mean_ddr.
func WriteComparisonCSV(path string, rows []ComparisonRow, sum Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create comparison csv: %w", err)
	}
	defer file.Close()

	a := strings.ToLower(sum.LabelA)
	b := strings.ToLower(sum.LabelB)
	header := []string{
		"packet_size",
		"mean_" + a, "std_" + a, "cv_" + a,
		"mean_" + b, "std_" + b, "cv_" + b,
		"speedup",
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.PacketSize),
			formatFloat(r.MeanA), formatFloat(r.StdA), formatFloat(r.CVA),
			formatFloat(r.MeanB), formatFloat(r.StdB), formatFloat(r.CVB),
			formatFloat(r.Speedup),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WritePredictionsCSV persists a model sweep: both regimes evaluated at
// each packet size.
func WritePredictionsCSV(path string, sizes []int, c ModelConstants) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create predictions csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"packet_size", "coherent_us", "non_coherent_us", "model_speedup"}); err != nil {
		return err
	}
	for _, size := range sizes {
		coh := CoherentLatency(size, c)
		non := NonCoherentLatency(size, c)
		record := []string{
			strconv.Itoa(size),
			formatFloat(coh),
			formatFloat(non),
			formatFloat(non / coh),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
