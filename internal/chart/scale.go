// Package chart lays out the dashboard's SVG widgets.
// It only prepares coordinates; rendering lives in the report package.
package chart

import (
	"fmt"
	"math"
	"strings"
)

// Margin is the inset of the plot area inside the view box.
type Margin struct {
	Left, Right, Top, Bottom float64
}

// Point is a position in view-box coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LinearScale maps the domain [D0, D1] onto the range [R0, R1].
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

// Map returns the range value for v. A degenerate domain maps everything to R0.
func (s LinearScale) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)/span*(s.R1-s.R0)
}

// Percent returns value as a percentage of full, clamped to [0, 100].
func Percent(value, full float64) float64 {
	if full == 0 || math.IsNaN(value) {
		return 0
	}
	return clamp(value/full*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Points formats pts as an SVG points attribute.
func Points(pts []Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g,%g", p.X, p.Y)
	}
	return b.String()
}
