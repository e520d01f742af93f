// Package scene turns a path comparison into the geometry drawn by the 3D views.
//
// Scene coordinates put the surface at y=0 with depth increasing downwards,
// i.e. a station at [x, depth, z] is drawn at (x, -depth, z).
package scene

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/drillsense/internal/units"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

// Palette
const (
	ColorPlan   = "#3b82f6"
	ColorActual = "#fef08a"
	ColorBeyond = "#ef4444"
	ColorAxisX  = "#ef4444"
	ColorAxisZ  = "#60a5fa"
	ColorAxisY  = "#22c55e"
	ColorGrid   = "#374151"
)

// ToScene flips depth so the surface sits at the top of the scene.
func ToScene(p wellpath.Path) []r3.Vec {
	out := make([]r3.Vec, len(p))
	for i, pt := range p {
		out[i] = sceneVec(pt)
	}
	return out
}

func sceneVec(pt wellpath.Point3D) r3.Vec {
	return r3.Vec{X: pt.X, Y: -pt.Depth, Z: pt.Z}
}

// Line is a coloured polyline in scene coordinates.
type Line struct {
	Points []r3.Vec
	Color  string
	Width  float64
}

// Label is a text anchor in scene coordinates.
type Label struct {
	Pos   r3.Vec
	Text  string
	Color string
}

// LegendEntry pairs a swatch colour with its caption.
type LegendEntry struct {
	Color string
	Text  string
}

// Scene is everything the path view draws.
type Scene struct {
	Preset         string
	ThresholdM     float64
	ThresholdLabel string

	Plan     Line
	Segments []Line
	Axes     []Line
	Grid     []Line
	Ticks    []Label
	Legend   []LegendEntry

	// Source segments, parallel to Segments.
	Source []wellpath.Segment
}

// Build lays out the plan, the threshold-coloured actual path, axes, grid and ticks.
func Build(planned, actual wellpath.Path, thresholdM float64, preset string) Scene {
	s := Scene{
		Preset:         PresetName(preset),
		ThresholdM:     thresholdM,
		ThresholdLabel: fmt.Sprintf("%g m", units.RoundTo(thresholdM, 2)),
		Legend: []LegendEntry{
			{Color: ColorBeyond, Text: "Off-limit (Actual > Threshold)"},
			{Color: ColorActual, Text: "Actual"},
			{Color: ColorPlan, Text: "Plan"},
		},
	}

	if len(planned) >= 2 {
		s.Plan = Line{Points: ToScene(planned), Color: ColorPlan, Width: 2}
	}

	s.Source = wellpath.ColorSegments(planned, actual, thresholdM)
	for _, seg := range s.Source {
		c := ColorActual
		if seg.Beyond {
			c = ColorBeyond
		}
		s.Segments = append(s.Segments, Line{
			Points: []r3.Vec{sceneVec(seg.From), sceneVec(seg.To)},
			Color:  c,
			Width:  2,
		})
	}

	s.Axes = []Line{
		{Points: []r3.Vec{{X: -15}, {X: 15}}, Color: ColorAxisX, Width: 1},
		{Points: []r3.Vec{{Z: -8}, {Z: 8}}, Color: ColorAxisZ, Width: 1},
		{Points: []r3.Vec{{}, {Y: -5}}, Color: ColorAxisY, Width: 1},
	}
	s.Grid = surfaceGrid(30, 15)

	for x := -15.0; x <= 15; x += 5 {
		s.Ticks = append(s.Ticks, Label{Pos: r3.Vec{X: x}, Text: fmt.Sprintf("X %g", x), Color: "#d4d4d8"})
	}
	for y := 0.0; y <= 5; y++ {
		s.Ticks = append(s.Ticks, Label{Pos: r3.Vec{Y: -y}, Text: fmt.Sprintf("%g", y), Color: DepthTickColor(-y)})
	}
	for z := -8.0; z <= 8; z += 4 {
		s.Ticks = append(s.Ticks, Label{Pos: r3.Vec{Z: z}, Text: fmt.Sprintf("Z %g", z), Color: "#d4d4d8"})
	}
	return s
}

// surfaceGrid is a size x size square at y=0 split into divisions cells per side.
func surfaceGrid(size float64, divisions int) []Line {
	half := size / 2
	step := size / float64(divisions)
	lines := make([]Line, 0, 2*(divisions+1))
	for i := 0; i <= divisions; i++ {
		v := -half + float64(i)*step
		lines = append(lines,
			Line{Points: []r3.Vec{{X: v, Z: -half}, {X: v, Z: half}}, Color: ColorGrid, Width: 1},
			Line{Points: []r3.Vec{{X: -half, Z: v}, {X: half, Z: v}}, Color: ColorGrid, Width: 1},
		)
	}
	return lines
}

// DepthTickColor shades depth labels: shallow ticks are lighter, deeper ones
// darker, saturating 5 m below the surface. sceneY is <= 0 below the surface.
func DepthTickColor(sceneY float64) string {
	d := math.Min(1, math.Max(0, -sceneY/5))
	g := int(math.Floor(185 - d*75))
	return fmt.Sprintf("rgb(%d,%d,%d)", g, g, g)
}
