package chart

import (
	"math"
	"strconv"
)

// Tick is an axis tick with its position along the axis and its label value.
type Tick struct {
	Pos   float64 `json:"pos"`
	Value float64 `json:"value"`
}

// LineSpec configures LineLayout. Zero fields take the dashboard defaults.
type LineSpec struct {
	XStep     float64 // metres between samples
	XTickStep float64 // metres between x ticks
	YMin      float64
	YMax      float64
	YTicks    []float64
}

// LineChart holds a laid-out line chart in an 800x360 view box.
type LineChart struct {
	Width, Height float64
	Margin        Margin
	Points        []Point
	XTicks        []Tick
	YTicks        []Tick
	ZeroY         float64
	XMax          float64
}

func (s LineSpec) withDefaults() LineSpec {
	if s.XStep == 0 {
		s.XStep = 10
	}
	if s.XTickStep == 0 {
		s.XTickStep = 50
	}
	if s.YMin == 0 && s.YMax == 0 {
		s.YMin, s.YMax = -10, 10
	}
	if s.YTicks == nil {
		s.YTicks = []float64{-10, -5, 0, 5, 10}
	}
	return s
}

// LineLayout places data by sample index along x and by value along y.
// X ticks are labelled in metres (index * XStep).
func LineLayout(data []float64, spec LineSpec) LineChart {
	spec = spec.withDefaults()
	lc := LineChart{
		Width:  800,
		Height: 360,
		Margin: Margin{Left: 52, Right: 26, Top: 16, Bottom: 32},
	}
	w := lc.Width - lc.Margin.Left - lc.Margin.Right
	h := lc.Height - lc.Margin.Top - lc.Margin.Bottom

	n := len(data)
	lastIdx := math.Max(1, float64(n-1))
	x := LinearScale{D0: 0, D1: lastIdx, R0: lc.Margin.Left, R1: lc.Margin.Left + w}
	y := LinearScale{D0: spec.YMin, D1: spec.YMax, R0: lc.Margin.Top + h, R1: lc.Margin.Top}

	lc.Points = make([]Point, n)
	for i, v := range data {
		lc.Points[i] = Point{X: x.Map(float64(i)), Y: y.Map(v)}
	}

	if n > 0 {
		lc.XMax = float64(n-1) * spec.XStep
	}
	count := int(math.Floor(lc.XMax/spec.XTickStep)) + 1
	for k := 0; k < count; k++ {
		xv := float64(k) * spec.XTickStep
		lc.XTicks = append(lc.XTicks, Tick{Pos: x.Map(xv / spec.XStep), Value: xv})
	}
	for _, t := range spec.YTicks {
		lc.YTicks = append(lc.YTicks, Tick{Pos: y.Map(t), Value: t})
	}
	lc.ZeroY = y.Map(0)
	return lc
}

// BarSpec configures BarLayout.
type BarSpec struct {
	YMin   float64
	YMax   float64
	YTicks []float64
}

// Bar is one laid-out bar with its label anchor.
type Bar struct {
	X, Y          float64
	Width, Height float64
	LabelX        float64
	Label         string
	Value         float64
}

// BarChart holds a laid-out bar chart in an 800x360 view box.
type BarChart struct {
	Width, Height float64
	Margin        Margin
	Bars          []Bar
	YTicks        []Tick
}

// BarLayout spaces bars evenly across the plot area. Negative values are drawn
// with zero height; missing labels fall back to the bar index.
func BarLayout(values []float64, labels []string, spec BarSpec) BarChart {
	if spec.YMin == 0 && spec.YMax == 0 {
		spec.YMax = 2.5
	}
	if spec.YTicks == nil {
		spec.YTicks = []float64{0, 0.5, 1, 1.5, 2, 2.5}
	}
	bc := BarChart{
		Width:  800,
		Height: 360,
		Margin: Margin{Left: 52, Right: 20, Top: 16, Bottom: 40},
	}
	w := bc.Width - bc.Margin.Left - bc.Margin.Right
	h := bc.Height - bc.Margin.Top - bc.Margin.Bottom
	y := LinearScale{D0: spec.YMin, D1: spec.YMax, R0: bc.Margin.Top + h, R1: bc.Margin.Top}

	n := len(values)
	slot := w / math.Max(1, float64(n))
	gap := slot * 0.4
	barW := slot - gap*0.2
	floor := bc.Height - bc.Margin.Bottom

	for i, v := range values {
		bx := bc.Margin.Left + float64(i)*slot + gap*0.1
		by := y.Map(math.Max(v, 0))
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		if label == "" {
			label = strconv.Itoa(i)
		}
		bc.Bars = append(bc.Bars, Bar{
			X:      bx,
			Y:      by,
			Width:  barW,
			Height: floor - by,
			LabelX: bx + barW/2,
			Label:  label,
			Value:  v,
		})
	}
	for _, t := range spec.YTicks {
		bc.YTicks = append(bc.YTicks, Tick{Pos: y.Map(t), Value: t})
	}
	return bc
}

// Sparkline is a compact line chart in a 520x120 view box.
type Sparkline struct {
	Width, Height float64
	Margin        Margin
	Points        []Point
	XTicks        []Tick
	YTicks        []Tick
}

// SparklineLayout lays values out over a fixed [0, 2.5] domain with x ticks at
// 0..50 regardless of sample count.
func SparklineLayout(values []float64) Sparkline {
	sl := Sparkline{
		Width:  520,
		Height: 120,
		Margin: Margin{Left: 28, Right: 20, Top: 10, Bottom: 22},
	}
	w := sl.Width - sl.Margin.Left - sl.Margin.Right
	h := sl.Height - sl.Margin.Top - sl.Margin.Bottom
	x := LinearScale{D0: 0, D1: math.Max(1, float64(len(values)-1)), R0: sl.Margin.Left, R1: sl.Margin.Left + w}
	y := LinearScale{D0: 0, D1: 2.5, R0: sl.Margin.Top + h, R1: sl.Margin.Top}

	sl.Points = make([]Point, len(values))
	for i, v := range values {
		sl.Points[i] = Point{X: x.Map(float64(i)), Y: y.Map(v)}
	}
	for _, t := range []float64{0, 0.5, 1, 1.5, 2, 2.5} {
		sl.YTicks = append(sl.YTicks, Tick{Pos: y.Map(t), Value: t})
	}
	xt := LinearScale{D0: 0, D1: 50, R0: sl.Margin.Left, R1: sl.Margin.Left + w}
	for t := 0.0; t <= 50; t += 10 {
		sl.XTicks = append(sl.XTicks, Tick{Pos: xt.Map(t), Value: t})
	}
	return sl
}
