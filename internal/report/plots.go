package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/drillsense/internal/scene"
	"github.com/banshee-data/drillsense/internal/telemetry"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 4 * vg.Inch
)

func plotColor(hex string) color.Color {
	return scene.ParseColor(hex)
}

// encodePlot writes p in the given format ("png" or "svg").
func encodePlot(p *plot.Plot, format string) ([]byte, error) {
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return nil, fmt.Errorf("plot writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode plot: %w", err)
	}
	return buf.Bytes(), nil
}

// gnssPlot draws the deviation series against depth with the plan at zero.
func gnssPlot(s *telemetry.Snapshot) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "GNSS Deviation"
	p.X.Label.Text = "Depth (m)"
	p.Y.Label.Text = "Deviation (/m)"
	p.Y.Min, p.Y.Max = -10, 10
	p.Add(plotter.NewGrid())

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Gray{Y: 128}
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	if len(s.GNSS.Values) == 0 {
		p.X.Min, p.X.Max = 0, 1
		return p, nil
	}
	pts := make(plotter.XYs, len(s.GNSS.Values))
	for i, v := range s.GNSS.Values {
		pts[i] = plotter.XY{X: float64(i) * s.GNSS.XStepM, Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(1.5)
	line.Color = plotColor("#f59e0b")
	p.Add(line)
	p.Legend.Add("deviation", line)
	p.Legend.Top = true
	return p, nil
}

// vibrationPlot draws the RMS bins as a bar chart.
func vibrationPlot(s *telemetry.Snapshot) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "RMS Vibration"
	p.Y.Label.Text = "RMS"
	p.Y.Min, p.Y.Max = 0, 2.5
	if len(s.Vibration.Values) == 0 {
		p.X.Min, p.X.Max = 0, 1
		return p, nil
	}

	bars, err := plotter.NewBarChart(plotter.Values(s.Vibration.Values), vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = plotColor("#60a5fa")
	bars.LineStyle.Width = 0
	p.Add(bars)

	labels := make([]string, len(s.Vibration.Values))
	for i := range labels {
		labels[i] = fmt.Sprint(i)
		if i < len(s.Vibration.Labels) && s.Vibration.Labels[i] != "" {
			labels[i] = s.Vibration.Labels[i]
		}
	}
	p.NominalX(labels...)
	return p, nil
}

// offsetsPlot draws the lateral offset per station against the threshold and
// marks the stations that end a beyond segment.
func offsetsPlot(cmp wellpath.Comparison) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Lateral Offset per Station"
	p.X.Label.Text = "Station"
	p.Y.Label.Text = "Offset (m)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	limit := plotter.NewFunction(func(float64) float64 { return cmp.ThresholdM })
	limit.Color = plotColor(scene.ColorBeyond)
	limit.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(limit)
	p.Legend.Add(fmt.Sprintf("threshold %g m", cmp.ThresholdM), limit)

	if len(cmp.Offsets) == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Max = cmp.ThresholdM * 2
		return p, nil
	}

	pts := make(plotter.XYs, len(cmp.Offsets))
	for i, v := range cmp.Offsets {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(1.5)
	line.Color = plotColor(scene.ColorPlan)
	p.Add(line)
	p.Legend.Add("offset", line)

	var beyond plotter.XYs
	for _, seg := range cmp.Segments {
		if seg.Beyond {
			beyond = append(beyond, pts[seg.Index])
		}
	}
	if len(beyond) > 0 {
		sc, err := plotter.NewScatter(beyond)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = plotColor(scene.ColorBeyond)
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add("beyond", sc)
	}
	if p.Y.Max < cmp.ThresholdM {
		p.Y.Max = cmp.ThresholdM * 1.2
	}
	p.Legend.Top = true
	return p, nil
}
