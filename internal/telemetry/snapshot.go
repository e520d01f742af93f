// Package telemetry defines the drilling snapshot shown by the dashboard and
// the path view, and the providers that supply it.
package telemetry

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/banshee-data/drillsense/internal/chart"
	"github.com/banshee-data/drillsense/internal/units"
	"github.com/banshee-data/drillsense/internal/deviation"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

// ErrInvalidSnapshot wraps every validation failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is one reading of everything the two pages display.
type Snapshot struct {
	Operator   string  `json:"operator"`
	HoleDepthM float64 `json:"hole_depth_m"`

	Rings      []chart.Ring     `json:"rings"`
	GNSS       Series           `json:"gnss_deviation"`
	Vibration  Bins             `json:"vibration"`
	Trajectory Trajectory       `json:"trajectory"`
	Metrics    DeviationMetrics `json:"deviation_metrics"`
	Quality    Quality          `json:"quality"`
	Path       PathPanel        `json:"path"`
}

// Series is an evenly spaced series along the hole.
type Series struct {
	XStepM float64   `json:"x_step_m"`
	Values []float64 `json:"values"`
}

// Bins are RMS vibration values per depth range.
type Bins struct {
	Values []float64 `json:"values"`
	Labels []string  `json:"labels"`
}

// Trajectory is the position table. XYZ and Predicted are free text.
type Trajectory struct {
	InclinationDeg float64 `json:"inclination_deg"`
	AzimuthDeg     float64 `json:"azimuth_deg"`
	ToolfaceDeg    float64 `json:"toolface_deg"`
	HoleDepthM     float64 `json:"hole_depth_m"`
	XYZ            string  `json:"xyz"`
	TVDM           float64 `json:"tvd_m"`
	Predicted      string  `json:"predicted"`
}

// DLS is a dogleg severity reading with its unit label.
type DLS struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func (d DLS) String() string {
	return units.FormatDLS(d.Value, d.Unit)
}

// DeviationMetrics is the dashboard accuracy table.
type DeviationMetrics struct {
	LateralInstant    float64 `json:"lateral_instant"`
	LateralCumulative float64 `json:"lateral_cumulative"`
	AngularDeg        float64 `json:"angular_deg"`
	DLS               DLS     `json:"dls"`
	Correction        string  `json:"correction"`
}

// Quality is the hole stability table.
type Quality struct {
	Openness      string `json:"openness"`
	Straightness  string `json:"straightness"`
	ToeLikelihood string `json:"toe_likelihood"`
}

// Event is one entry of the path view event log. DepthM is nil when the
// depth is unknown; Time is an optional wall clock label.
type Event struct {
	ID     uuid.UUID `json:"id"`
	Time   string    `json:"time,omitempty"`
	Color  string    `json:"color"`
	Text   string    `json:"text"`
	DepthM *float64  `json:"depth_m,omitempty"`
}

// DepthLabel renders the event depth as "125m", or an em rule when unknown.
func (e Event) DepthLabel() string {
	if e.DepthM == nil {
		return "—"
	}
	return fmt.Sprintf("%gm", *e.DepthM)
}

// PathPanel is the data behind the 3D path page.
type PathPanel struct {
	LateralInstantCm  float64      `json:"lateral_instant_cm"`
	LateralCumulative float64      `json:"lateral_cumulative"`
	AngularDeg        float64      `json:"angular_deg"`
	DLS               DLS          `json:"dls"`
	Correction        string       `json:"correction"`
	DepthM            float64      `json:"depth_m"`
	DepthConfidence   string       `json:"depth_confidence"`
	VibrationSeries   []float64    `json:"vibration_series"`
	ThresholdM        float64      `json:"threshold_m"`
	Planned           [][3]float64 `json:"planned"`
	Actual            [][3]float64 `json:"actual"`
	Events            []Event      `json:"events"`
}

// Sample is the instantaneous deviation reading that drives the verdict.
func (p PathPanel) Sample() deviation.Sample {
	return deviation.Sample{LateralOffsetCm: p.LateralInstantCm, AngularOffsetDeg: p.AngularDeg}
}

// PlannedPath returns the planned stations as a wellpath.Path.
func (p PathPanel) PlannedPath() wellpath.Path { return wellpath.FromTriples(p.Planned) }

// ActualPath returns the surveyed stations as a wellpath.Path.
func (p PathPanel) ActualPath() wellpath.Path { return wellpath.FromTriples(p.Actual) }

// Initials takes the first letter of each space-separated word of name.
func Initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}
	return b.String()
}

// Initials of the operator.
func (s *Snapshot) Initials() string { return Initials(s.Operator) }

// AssignEventIDs gives every event without an ID a fresh random one.
func (s *Snapshot) AssignEventIDs() {
	for i := range s.Path.Events {
		if s.Path.Events[i].ID == uuid.Nil {
			s.Path.Events[i].ID = uuid.New()
		}
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
}

// Validate checks the snapshot is drawable.
func (s *Snapshot) Validate() error {
	if s == nil {
		return invalid("nil snapshot")
	}
	if !finite(s.HoleDepthM) || s.HoleDepthM < 0 {
		return invalid("hole_depth_m must be finite and non-negative, got %v", s.HoleDepthM)
	}
	for i, r := range s.Rings {
		if !finite(r.Thickness) || r.Thickness <= 0 {
			return invalid("rings[%d].thickness must be positive, got %v", i, r.Thickness)
		}
	}
	if !finite(s.GNSS.XStepM) || s.GNSS.XStepM <= 0 {
		return invalid("gnss_deviation.x_step_m must be positive, got %v", s.GNSS.XStepM)
	}
	if err := finiteSeries("gnss_deviation.values", s.GNSS.Values); err != nil {
		return err
	}
	if err := finiteSeries("vibration.values", s.Vibration.Values); err != nil {
		return err
	}
	if len(s.Vibration.Labels) > len(s.Vibration.Values) {
		return invalid("vibration has %d labels for %d values", len(s.Vibration.Labels), len(s.Vibration.Values))
	}
	if err := finiteSeries("path.vibration_series", s.Path.VibrationSeries); err != nil {
		return err
	}
	if t := s.Path.ThresholdM; !finite(t) || t < 0 {
		return invalid("path.threshold_m must be finite and non-negative, got %v", t)
	}
	if err := s.Path.Sample().Validate(); err != nil {
		return invalid("path sample: %v", err)
	}
	if err := finitePath("path.planned", s.Path.Planned); err != nil {
		return err
	}
	if err := finitePath("path.actual", s.Path.Actual); err != nil {
		return err
	}
	for i, e := range s.Path.Events {
		if e.DepthM != nil && (!finite(*e.DepthM) || *e.DepthM < 0) {
			return invalid("path.events[%d].depth_m must be finite and non-negative, got %v", i, *e.DepthM)
		}
	}
	return nil
}

func finiteSeries(name string, vs []float64) error {
	for i, v := range vs {
		if !finite(v) {
			return invalid("%s[%d] is not finite", name, i)
		}
	}
	return nil
}

func finitePath(name string, pts [][3]float64) error {
	for i, p := range pts {
		for j, v := range p {
			if !finite(v) {
				return invalid("%s[%d][%d] is not finite", name, i, j)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Rings = append([]chart.Ring(nil), s.Rings...)
	c.GNSS.Values = append([]float64(nil), s.GNSS.Values...)
	c.Vibration.Values = append([]float64(nil), s.Vibration.Values...)
	c.Vibration.Labels = append([]string(nil), s.Vibration.Labels...)
	c.Path.VibrationSeries = append([]float64(nil), s.Path.VibrationSeries...)
	c.Path.Planned = append([][3]float64(nil), s.Path.Planned...)
	c.Path.Actual = append([][3]float64(nil), s.Path.Actual...)
	if s.Path.Events == nil {
		return &c
	}
	c.Path.Events = make([]Event, len(s.Path.Events))
	for i, e := range s.Path.Events {
		if e.DepthM != nil {
			d := *e.DepthM
			e.DepthM = &d
		}
		c.Path.Events[i] = e
	}
	return &c
}
