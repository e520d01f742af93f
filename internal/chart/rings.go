package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ring is one band of the concentric deviation gauge.
type Ring struct {
	Label     string  `json:"label"`
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
}

// PlacedRing is a ring with its computed radius.
type PlacedRing struct {
	Ring
	Radius float64
}

// RingGauge holds the laid-out gauge in a size x size view box.
type RingGauge struct {
	Size   float64
	CX, CY float64
	Rings  []PlacedRing
}

// RingLayout nests rings from the outside in, each separated by gap.
// Radii never drop below 2 so inner rings stay visible.
func RingLayout(rings []Ring, size, gap float64) RingGauge {
	g := RingGauge{Size: size, CX: size / 2, CY: size / 2}
	outer := size/2 - 4
	offset := 0.0
	for _, r := range rings {
		radius := math.Max(2, outer-offset-r.Thickness/2)
		offset += r.Thickness + gap
		g.Rings = append(g.Rings, PlacedRing{Ring: r, Radius: radius})
	}
	return g
}

// HexToRGBA converts "#rgb" or "#rrggbb" to an rgba() string. Empty or
// unparsable input falls back to indigo.
func HexToRGBA(hex string, alpha float64) string {
	fallback := fmt.Sprintf("rgba(99,102,241,%g)", alpha)
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return fallback
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return fallback
	}
	r, g, b := (n>>16)&255, (n>>8)&255, n&255
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, alpha)
}
