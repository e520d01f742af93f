package wellpath

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultLateralThresholdM is the lateral offset beyond which a segment of the
// drilled path is flagged.
const DefaultLateralThresholdM = 0.5

// Point3D is a survey station. Depth is positive downwards.
type Point3D struct {
	X     float64 `json:"x"`
	Depth float64 `json:"depth"`
	Z     float64 `json:"z"`
}

// Vec returns the point as a gonum vector in (x, depth, z) order.
func (p Point3D) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Depth, Z: p.Z}
}

// Path is an ordered sequence of stations, shallowest first.
type Path []Point3D

// FromTriples builds a path from [x, depth, z] triples.
func FromTriples(triples [][3]float64) Path {
	p := make(Path, len(triples))
	for i, t := range triples {
		p[i] = Point3D{X: t[0], Depth: t[1], Z: t[2]}
	}
	return p
}

// Triples returns the path as [x, depth, z] triples.
func (p Path) Triples() [][3]float64 {
	out := make([][3]float64, len(p))
	for i, pt := range p {
		out[i] = [3]float64{pt.X, pt.Depth, pt.Z}
	}
	return out
}

// Segment is one leg of the drilled path between consecutive stations.
type Segment struct {
	Index  int     `json:"index"` // index of the To station
	From   Point3D `json:"from"`
	To     Point3D `json:"to"`
	Beyond bool    `json:"beyond"`
}

// LengthPolicy decides what Compare does when the paths differ in length.
type LengthPolicy int

const (
	// Truncate compares the common prefix and ignores the remainder.
	Truncate LengthPolicy = iota
	// Strict rejects paths of different length with ErrLengthMismatch.
	Strict
)

// String returns the config spelling of the policy.
func (p LengthPolicy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseLengthPolicy parses "truncate" or "strict". Empty selects Truncate.
func ParseLengthPolicy(s string) (LengthPolicy, error) {
	switch s {
	case "", "truncate":
		return Truncate, nil
	case "strict":
		return Strict, nil
	}
	return Truncate, fmt.Errorf("unknown length policy %q (valid: truncate, strict)", s)
}
