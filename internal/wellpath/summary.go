package wellpath

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses a comparison for the dashboard tables.
type Summary struct {
	Compared       int     `json:"compared"`
	Segments       int     `json:"segments"`
	BeyondSegments int     `json:"beyond_segments"`
	MaxOffsetM     float64 `json:"max_offset_m"`
	MaxOffsetIndex int     `json:"max_offset_index"`
	MeanOffsetM    float64 `json:"mean_offset_m"`
	FinalOffsetM   float64 `json:"final_offset_m"`
}

// Summarize computes offset statistics. With no offsets MaxOffsetIndex is -1.
func Summarize(offsets []float64, segs []Segment) Summary {
	s := Summary{
		Compared:       len(offsets),
		Segments:       len(segs),
		MaxOffsetIndex: -1,
	}
	for _, seg := range segs {
		if seg.Beyond {
			s.BeyondSegments++
		}
	}
	if len(offsets) == 0 {
		return s
	}
	s.MaxOffsetIndex = floats.MaxIdx(offsets)
	s.MaxOffsetM = offsets[s.MaxOffsetIndex]
	s.MeanOffsetM = stat.Mean(offsets, nil)
	s.FinalOffsetM = offsets[len(offsets)-1]
	return s
}
