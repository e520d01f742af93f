package deviation

import (
	"github.com/banshee-data/drillsense/internal/chart"
	"github.com/banshee-data/drillsense/internal/units"
)

// Scale sets the reading at which each side-panel bar is full.
type Scale struct {
	LateralFullCm  float64
	AngularFullDeg float64
}

// DefaultScale fills the lateral bar at 30 cm and the angular bar at 10°.
func DefaultScale() Scale {
	return Scale{LateralFullCm: 30, AngularFullDeg: 10}
}

// Readout is the verdict plus the bar geometry shown next to the 3D path.
type Readout struct {
	Sample  Sample
	Verdict Verdict

	LateralPct       float64
	LateralMarkerPct float64
	AngularPct       float64
	AngularMarkerPct float64

	// Target labels, e.g. 30 cm and 1°.
	LateralTargetCm  float64
	AngularTargetDeg float64
}

// NewReadout classifies s and lays out both bars. Markers sit at the on-plan limits.
func NewReadout(s Sample, t Thresholds, sc Scale) Readout {
	targetCm := units.MetersToCentimeters(t.OnPlanLateralM)
	return Readout{
		Sample:           s,
		Verdict:          t.Classify(s.LateralOffsetM(), s.AngularOffsetDeg),
		LateralPct:       chart.Percent(s.LateralOffsetCm, sc.LateralFullCm),
		LateralMarkerPct: chart.Percent(targetCm, sc.LateralFullCm),
		AngularPct:       chart.Percent(s.AngularOffsetDeg, sc.AngularFullDeg),
		AngularMarkerPct: chart.Percent(t.OnPlanAngularDeg, sc.AngularFullDeg),
		LateralTargetCm:  units.RoundTo(targetCm, 1),
		AngularTargetDeg: t.OnPlanAngularDeg,
	}
}
