// Package wellpath compares a drilled trajectory against its plan.
//
// Stations are compared index by index; there is no resampling. Lateral
// offset is measured in the horizontal plane only, so depth differences
// between matching stations never count as deviation.
package wellpath

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrLengthMismatch is returned by Compare under the Strict policy.
var ErrLengthMismatch = errors.New("planned and actual paths differ in length")

// LateralOffset is the horizontal distance between a planned and an actual station.
func LateralOffset(planned, actual Point3D) float64 {
	d := r3.Sub(actual.Vec(), planned.Vec())
	d.Y = 0
	return r3.Norm(d)
}

// Offsets returns the lateral offset at each index both paths share.
func Offsets(planned, actual Path) []float64 {
	n := min(len(planned), len(actual))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = LateralOffset(planned[i], actual[i])
	}
	return out
}

// ColorSegments splits the actual path into legs and flags each leg whose
// start or end station lies more than thresholdM from plan. It returns
// min(len(planned), len(actual))-1 segments, or none when either path has
// fewer than two stations. An offset that is not <= thresholdM (including
// NaN) counts as beyond.
func ColorSegments(planned, actual Path, thresholdM float64) []Segment {
	return segmentsFromOffsets(actual, Offsets(planned, actual), thresholdM)
}

func segmentsFromOffsets(actual Path, offsets []float64, thresholdM float64) []Segment {
	if len(offsets) < 2 {
		return []Segment{}
	}
	segs := make([]Segment, 0, len(offsets)-1)
	for i := 1; i < len(offsets); i++ {
		segs = append(segs, Segment{
			Index:  i,
			From:   actual[i-1],
			To:     actual[i],
			Beyond: beyond(offsets[i-1], thresholdM) || beyond(offsets[i], thresholdM),
		})
	}
	return segs
}

func beyond(offset, thresholdM float64) bool {
	return !(offset <= thresholdM)
}

// CompareOptions configures Compare. A zero ThresholdM selects
// DefaultLateralThresholdM.
type CompareOptions struct {
	ThresholdM float64
	Policy     LengthPolicy
}

// Comparison is the full result of comparing two paths.
type Comparison struct {
	ThresholdM float64   `json:"threshold_m"`
	Offsets    []float64 `json:"offsets_m"`
	Segments   []Segment `json:"segments"`
	Summary    Summary   `json:"summary"`
}

// Compare is ColorSegments with an explicit length policy and summary statistics.
func Compare(planned, actual Path, opts CompareOptions) (Comparison, error) {
	threshold := opts.ThresholdM
	if threshold == 0 {
		threshold = DefaultLateralThresholdM
	}
	if math.IsNaN(threshold) {
		return Comparison{}, fmt.Errorf("threshold must be a number")
	}
	if opts.Policy == Strict && len(planned) != len(actual) {
		return Comparison{}, fmt.Errorf("%w: planned=%d actual=%d", ErrLengthMismatch, len(planned), len(actual))
	}

	offsets := Offsets(planned, actual)
	segs := segmentsFromOffsets(actual, offsets, threshold)
	return Comparison{
		ThresholdM: threshold,
		Offsets:    offsets,
		Segments:   segs,
		Summary:    Summarize(offsets, segs),
	}, nil
}
