// Package deviation classifies instantaneous deviation readings against plan.
//
// Classification is total: every pair of floats maps to a verdict. NaN on
// either axis fails every comparison and therefore lands on OffPlan. Callers
// that want to reject bad readings use Sample.Validate first.
package deviation

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/drillsense/internal/units"
)

// ErrInvalidSample is returned by Sample.Validate for NaN, infinite or negative readings.
var ErrInvalidSample = errors.New("invalid deviation sample")

// Thresholds are the inclusive limits for each verdict band.
type Thresholds struct {
	OnPlanLateralM   float64 `json:"on_plan_lateral_m"`
	OnPlanAngularDeg float64 `json:"on_plan_angular_deg"`
	DriftLateralM    float64 `json:"drift_lateral_m"`
	DriftAngularDeg  float64 `json:"drift_angular_deg"`
}

// DefaultThresholds returns the standard bands: on plan within 0.3 m and 1°,
// drifting within 0.6 m and 2°.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OnPlanLateralM:   0.3,
		OnPlanAngularDeg: 1.0,
		DriftLateralM:    0.6,
		DriftAngularDeg:  2.0,
	}
}

// Validate checks that every limit is finite and non-negative and that the
// on-plan band sits inside the drifting band.
func (t Thresholds) Validate() error {
	limits := []struct {
		name string
		v    float64
	}{
		{"on_plan_lateral_m", t.OnPlanLateralM},
		{"on_plan_angular_deg", t.OnPlanAngularDeg},
		{"drift_lateral_m", t.DriftLateralM},
		{"drift_angular_deg", t.DriftAngularDeg},
	}
	for _, l := range limits {
		if math.IsNaN(l.v) || math.IsInf(l.v, 0) || l.v < 0 {
			return fmt.Errorf("%s must be finite and non-negative, got %v", l.name, l.v)
		}
	}
	if t.OnPlanLateralM > t.DriftLateralM {
		return fmt.Errorf("on_plan_lateral_m (%v) exceeds drift_lateral_m (%v)", t.OnPlanLateralM, t.DriftLateralM)
	}
	if t.OnPlanAngularDeg > t.DriftAngularDeg {
		return fmt.Errorf("on_plan_angular_deg (%v) exceeds drift_angular_deg (%v)", t.OnPlanAngularDeg, t.DriftAngularDeg)
	}
	return nil
}

// Classify applies the bands in order; the first match wins.
func (t Thresholds) Classify(lateralOffsetM, angularOffsetDeg float64) Verdict {
	if lateralOffsetM <= t.OnPlanLateralM && angularOffsetDeg <= t.OnPlanAngularDeg {
		return OnPlan
	}
	if lateralOffsetM <= t.DriftLateralM && angularOffsetDeg <= t.DriftAngularDeg {
		return Drifting
	}
	return OffPlan
}

// Classify returns the verdict for a lateral offset in metres and an angular
// offset in degrees using DefaultThresholds.
func Classify(lateralOffsetM, angularOffsetDeg float64) Verdict {
	return DefaultThresholds().Classify(lateralOffsetM, angularOffsetDeg)
}

// Sample is an instantaneous deviation reading as reported by the survey tool.
type Sample struct {
	LateralOffsetCm  float64 `json:"lateral_offset_cm"`
	AngularOffsetDeg float64 `json:"angular_offset_deg"`
}

// LateralOffsetM returns the lateral offset in metres.
func (s Sample) LateralOffsetM() float64 {
	return units.CentimetersToMeters(s.LateralOffsetCm)
}

// Validate rejects NaN, infinite and negative readings.
func (s Sample) Validate() error {
	if err := checkReading("lateral_offset_cm", s.LateralOffsetCm); err != nil {
		return err
	}
	return checkReading("angular_offset_deg", s.AngularOffsetDeg)
}

func checkReading(name string, v float64) error {
	switch {
	case math.IsNaN(v):
		return fmt.Errorf("%w: %s is NaN", ErrInvalidSample, name)
	case math.IsInf(v, 0):
		return fmt.Errorf("%w: %s is infinite", ErrInvalidSample, name)
	case v < 0:
		return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidSample, name, v)
	}
	return nil
}

// ClassifySample converts the lateral reading to metres and classifies it
// with DefaultThresholds.
func ClassifySample(s Sample) Verdict {
	return Classify(s.LateralOffsetM(), s.AngularOffsetDeg)
}
