package telemetry

import (
	"math"

	"github.com/google/uuid"

	"github.com/banshee-data/drillsense/internal/chart"
)

// eventNamespace seeds the name-based IDs of the demonstration events so
// repeated renders produce identical output.
var eventNamespace = uuid.MustParse("5b0e9a4c-2f0d-4c1e-9a57-6d1f3c2b8e41")

func demoEvent(color, text string, depthM float64) Event {
	d := depthM
	return Event{
		ID:     uuid.NewSHA1(eventNamespace, []byte(text)),
		Color:  color,
		Text:   text,
		DepthM: &d,
	}
}

// Demo returns the built-in demonstration snapshot.
func Demo() *Snapshot {
	gnss := make([]float64, 60)
	for i := range gnss {
		x := float64(i)
		v := -4 + 2*math.Sin(x/3) + 1.2*math.Cos(x/5)
		if i > 25 {
			v += (x - 25) / 30
		}
		gnss[i] = v
	}
	vib := make([]float64, 60)
	for i := range vib {
		x := float64(i)
		vib[i] = 1 + 0.6*math.Sin(x/4) + 0.4*math.Sin(x/9)
	}

	return &Snapshot{
		Operator:   "Navin Kumar",
		HoleDepthM: 2430,
		Rings: []chart.Ring{
			{Label: "<3°", Color: "#86efac", Thickness: 18},
			{Label: "3°–5°", Color: "#fbbf24", Thickness: 12},
			{Label: ">5°", Color: "#f87171", Thickness: 8},
		},
		GNSS: Series{XStepM: 5, Values: gnss},
		Vibration: Bins{
			Values: []float64{0.5, 0.9, 1.2, 1.6, 2.2},
			Labels: []string{"0–10", "10–20", "20–40", "40–60", "≥60"},
		},
		Trajectory: Trajectory{
			InclinationDeg: 5,
			AzimuthDeg:     25,
			ToolfaceDeg:    5,
			HoleDepthM:     8,
			XYZ:            "x=2,y=3,x=5",
			TVDM:           11,
			Predicted:      "Computing…",
		},
		Metrics: DeviationMetrics{
			LateralInstant:    0.8,
			LateralCumulative: 14.6,
			AngularDeg:        2.1,
			DLS:               DLS{Value: 1.3, Unit: "deg/30 m"},
			Correction:        "+0.6° inc, −0.3° azi",
		},
		Quality: Quality{
			Openness:      "No events – clear",
			Straightness:  "Within tolerance",
			ToeLikelihood: "Low likelihood",
		},
		Path: PathPanel{
			LateralInstantCm:  12,
			LateralCumulative: 14.6,
			AngularDeg:        3.1,
			DLS:               DLS{Value: 1.3, Unit: "deg/30 m"},
			Correction:        "+0.6° inc, −0.3° azi",
			DepthM:            537.2,
			DepthConfidence:   "OK",
			VibrationSeries:   vib,
			ThresholdM:        0.5,
			Planned:           [][3]float64{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}, {0, 3, 0}, {0, 3.6, 0}},
			Actual:            [][3]float64{{-2, 0, 0}, {-2.1, 0.8, -0.1}, {-2.8, 1.6, -0.2}, {-3.6, 2.4, -0.6}, {-4.8, 3.2, -1.2}},
			Events: []Event{
				demoEvent("#ef4444", "Hole deviation", 125),
				demoEvent("#eab308", "High axial vibration", 413),
				demoEvent("#eab308", "Partial collapse likely", 289),
			},
		},
	}
}
