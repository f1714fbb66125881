package perf

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// WriteLatencyChart draws measured mean latency against both modeled
// curves on log-log axes. The output format follows the file extension
// (.png, .pdf, .svg).
func WriteLatencyChart(table []GroupStatistics, c ModelConstants, path string) error {
	p := plot.New()
	p.Title.Text = "Transfer Time vs Packet Size"
	p.X.Label.Text = "Packet Size (bytes)"
	p.Y.Label.Text = "Transfer Time (µs)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	measured := make(plotter.XYs, len(table))
	coherent := make(plotter.XYs, len(table))
	nonCoherent := make(plotter.XYs, len(table))
	for i, g := range table {
		size := float64(g.PacketSize)
		measured[i] = plotter.XY{X: size, Y: g.Mean}
		coherent[i] = plotter.XY{X: size, Y: CoherentLatency(g.PacketSize, c)}
		nonCoherent[i] = plotter.XY{X: size, Y: NonCoherentLatency(g.PacketSize, c)}
	}

	series := []struct {
		name string
		xys  plotter.XYs
	}{
		{"Measured (Non-Coherent)", measured},
		{"Theoretical (Coherent/CCI-400)", coherent},
		{"Theoretical (Non-Coherent)", nonCoherent},
	}
	for i, s := range series {
		line, points, err := plotter.NewLinePoints(s.xys)
		if err != nil {
			return fmt.Errorf("latency chart series %q: %w", s.name, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(s.name, line, points)
	}
	p.Legend.Top = true

	return p.Save(7*vg.Inch, 5*vg.Inch, path)
}

// WriteSpeedupChart draws per-size speedup bars from a comparison result.
func WriteSpeedupChart(rows []ComparisonRow, sum Summary, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Speedup (%s/%s)", sum.LabelB, sum.LabelA)
	p.X.Label.Text = "Packet Size (bytes)"
	p.Y.Label.Text = "Speedup"

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.Speedup
		labels[i] = SizeLabel(r.PacketSize)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("speedup chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(7*vg.Inch, 5*vg.Inch, path)
}

// WriteCVChart draws the two inputs' coefficients of variation side by
// side, per packet size. Lower is better.
func WriteCVChart(rows []ComparisonRow, sum Summary, path string) error {
	p := plot.New()
	p.Title.Text = "Measurement Jitter (Lower is Better)"
	p.X.Label.Text = "Packet Size (bytes)"
	p.Y.Label.Text = "Coefficient of Variation (%)"

	width := vg.Points(12)
	cvA := make(plotter.Values, len(rows))
	cvB := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		cvA[i] = r.CVA
		cvB[i] = r.CVB
		labels[i] = SizeLabel(r.PacketSize)
	}

	barsA, err := plotter.NewBarChart(cvA, width)
	if err != nil {
		return fmt.Errorf("cv chart: %w", err)
	}
	barsA.Color = plotutil.Color(0)
	barsA.Offset = -width / 2

	barsB, err := plotter.NewBarChart(cvB, width)
	if err != nil {
		return fmt.Errorf("cv chart: %w", err)
	}
	barsB.Color = plotutil.Color(1)
	barsB.Offset = width / 2

	p.Add(barsA, barsB)
	p.Legend.Add(sum.LabelA, barsA)
	p.Legend.Add(sum.LabelB, barsB)
	p.Legend.Top = true
	p.NominalX(labels...)

	return p.Save(7*vg.Inch, 5*vg.Inch, path)
}
