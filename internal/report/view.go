package report

import (
	"fmt"

	"github.com/banshee-data/drillsense/internal/chart"
	"github.com/banshee-data/drillsense/internal/deviation"
	"github.com/banshee-data/drillsense/internal/scene"
	"github.com/banshee-data/drillsense/internal/telemetry"
	"github.com/banshee-data/drillsense/internal/version"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

// Header is shared by both pages.
type Header struct {
	Operator string
	Initials string
	Active   string // "dashboard" or "path"
	Version  string
}

// DashboardView is the data behind index.html.
type DashboardView struct {
	Header
	HoleDepthM float64

	Gauge        chart.RingGauge
	GNSS         chart.LineChart
	GNSSPoints   string
	GNSSUnit     string
	Vibration    chart.BarChart
	Trajectory   telemetry.Trajectory
	Metrics      telemetry.DeviationMetrics
	Quality      telemetry.Quality
	ChartsFormat string
}

// SegmentRow is one row of the path page segment table.
type SegmentRow struct {
	Index     int
	FromDepth float64
	ToDepth   float64
	OffsetM   float64
	Beyond    bool
	Color     string
}

// Preview is a rendered camera preset image.
type Preview struct {
	Preset string
	Src    string
	Active bool
}

// PathView is the data behind path.html.
type PathView struct {
	Header
	Readout        deviation.Readout
	Footnote       string
	Comparison     wellpath.Comparison
	Rows           []SegmentRow
	ThresholdLabel string
	Legend         []scene.LegendEntry
	Previews       []Preview
	Panel          telemetry.PathPanel
	Spark          chart.Sparkline
	SparkPoints    string
	PlotFormat     string
}

func newHeader(s *telemetry.Snapshot, active string) Header {
	return Header{
		Operator: s.Operator,
		Initials: s.Initials(),
		Active:   active,
		Version:  version.Version,
	}
}

func buildDashboard(s *telemetry.Snapshot, o Options) DashboardView {
	gnss := chart.LineLayout(s.GNSS.Values, chart.LineSpec{XStep: s.GNSS.XStepM})
	return DashboardView{
		Header:       newHeader(s, "dashboard"),
		HoleDepthM:   s.HoleDepthM,
		Gauge:        chart.RingLayout(s.Rings, 136, 4),
		GNSS:         gnss,
		GNSSPoints:   chart.Points(gnss.Points),
		GNSSUnit:     "/m",
		Vibration:    chart.BarLayout(s.Vibration.Values, s.Vibration.Labels, chart.BarSpec{}),
		Trajectory:   s.Trajectory,
		Metrics:      s.Metrics,
		Quality:      s.Quality,
		ChartsFormat: o.PlotFormat,
	}
}

func buildPath(s *telemetry.Snapshot, cmp wellpath.Comparison, sc scene.Scene, o Options) PathView {
	rows := make([]SegmentRow, len(cmp.Segments))
	for i, seg := range cmp.Segments {
		rows[i] = SegmentRow{
			Index:     seg.Index,
			FromDepth: seg.From.Depth,
			ToDepth:   seg.To.Depth,
			OffsetM:   cmp.Offsets[seg.Index],
			Beyond:    seg.Beyond,
			Color:     sc.Segments[i].Color,
		}
	}

	var previews []Preview
	for _, p := range scene.Presets() {
		previews = append(previews, Preview{Preset: p, Src: previewPath(p), Active: p == o.preset()})
	}

	spark := chart.SparklineLayout(s.Path.VibrationSeries)
	return PathView{
		Header:         newHeader(s, "path"),
		Readout:        deviation.NewReadout(s.Path.Sample(), o.Thresholds, o.Scale),
		Footnote:       footnote(o.Thresholds),
		Comparison:     cmp,
		Rows:           rows,
		ThresholdLabel: sc.ThresholdLabel,
		Legend:         sc.Legend,
		Previews:       previews,
		Panel:          s.Path,
		Spark:          spark,
		SparkPoints:    chart.Points(spark.Points),
		PlotFormat:     o.PlotFormat,
	}
}

func footnote(t deviation.Thresholds) string {
	return fmt.Sprintf("Green ≤ %g m and ≤ %g° · Amber ≤ %g m and ≤ %g° · Red > %g m or > %g°",
		t.OnPlanLateralM, t.OnPlanAngularDeg,
		t.DriftLateralM, t.DriftAngularDeg,
		t.DriftLateralM, t.DriftAngularDeg)
}

func previewPath(preset string) string {
	return "preview/path-" + preset + ".webp"
}
