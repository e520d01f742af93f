package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/drillsense/internal/scene"
	"github.com/banshee-data/drillsense/internal/telemetry"
)

func (o Options) initOpts(title string) opts.Initialization {
	return opts.Initialization{PageTitle: title, Theme: o.Theme, Width: "900px", Height: "480px", AssetsHost: o.AssetsHost}
}

// depthLabels labels samples by depth, step metres apart.
func depthLabels(n int, step float64) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.FormatFloat(float64(i)*step, 'g', -1, 64)
	}
	return out
}

func lineData(vs []float64) []opts.LineData {
	out := make([]opts.LineData, len(vs))
	for i, v := range vs {
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func gnssChart(s *telemetry.Snapshot, o Options) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(o.initOpts("GNSS Deviation")),
		charts.WithTitleOpts(opts.Title{Title: "GNSS Deviation", Subtitle: fmt.Sprintf("operator=%s samples=%d step=%gm", s.Operator, len(s.GNSS.Values), s.GNSS.XStepM)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Depth (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Deviation (/m)", Min: -10, Max: 10}),
	)
	line.SetXAxis(depthLabels(len(s.GNSS.Values), s.GNSS.XStepM)).
		AddSeries("deviation", lineData(s.GNSS.Values),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "#f59e0b", Width: 2}),
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "plan", YAxis: 0}),
		)
	return line
}

func vibrationChart(s *telemetry.Snapshot, o Options) *charts.Bar {
	labels := make([]string, len(s.Vibration.Values))
	data := make([]opts.BarData, len(s.Vibration.Values))
	for i, v := range s.Vibration.Values {
		labels[i] = strconv.Itoa(i)
		if i < len(s.Vibration.Labels) && s.Vibration.Labels[i] != "" {
			labels[i] = s.Vibration.Labels[i]
		}
		data[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(o.initOpts("RMS Vibration")),
		charts.WithTitleOpts(opts.Title{Title: "RMS Vibration", Subtitle: fmt.Sprintf("bins=%d", len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Range", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "RMS", Min: 0, Max: 2.5}),
	)
	bar.SetXAxis(labels).AddSeries("rms", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#60a5fa"}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

func sparklineChart(s *telemetry.Snapshot, o Options) *charts.Line {
	vs := s.Path.VibrationSeries
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(o.initOpts("Vibration")),
		charts.WithTitleOpts(opts.Title{Title: "Vibration", Subtitle: fmt.Sprintf("samples=%d", len(vs))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 2.5}),
	)
	line.SetXAxis(depthLabels(len(vs), 1)).
		AddSeries("vibration", lineData(vs),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "#22d3ee", Width: 2}),
		)
	return line
}

// chart3D maps scene coordinates onto echarts' z-up axes: x stays x, scene z
// becomes y and scene y (negated depth) becomes z.
func chart3D(pts []r3.Vec) []opts.Chart3DData {
	out := make([]opts.Chart3DData, len(pts))
	for i, p := range pts {
		out[i] = opts.Chart3DData{Value: []interface{}{p.X, p.Z, p.Y}}
	}
	return out
}

// seriesName groups segments by colour so the legend toggles them together.
func seriesName(legend []scene.LegendEntry, color string) string {
	for _, l := range legend {
		if l.Color == color {
			return l.Text
		}
	}
	return color
}

func path3DChart(sc scene.Scene, o Options) *charts.Line3D {
	l3 := charts.NewLine3D()
	l3.SetGlobalOptions(
		charts.WithInitializationOpts(o.initOpts("3D Path")),
		charts.WithTitleOpts(opts.Title{Title: "3D Path", Subtitle: fmt.Sprintf("threshold=%s segments=%d", sc.ThresholdLabel, len(sc.Segments))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Z"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Depth"}),
	)
	if len(sc.Plan.Points) > 0 {
		l3.AddSeries(seriesName(sc.Legend, sc.Plan.Color), chart3D(sc.Plan.Points),
			charts.WithLineStyleOpts(opts.LineStyle{Color: sc.Plan.Color, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: sc.Plan.Color}),
		)
	}
	for _, seg := range sc.Segments {
		l3.AddSeries(seriesName(sc.Legend, seg.Color), chart3D(seg.Points),
			charts.WithLineStyleOpts(opts.LineStyle{Color: seg.Color, Width: 3}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: seg.Color}),
		)
	}
	return l3
}

// renderPage wraps one chart in a page and renders it to HTML.
func renderPage(c components.Charter, o Options) ([]byte, error) {
	page := components.NewPage()
	page.SetAssetsHost(o.AssetsHost)
	page.AddCharts(c)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
