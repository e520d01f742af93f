package deviation

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		lateralM   float64
		angularDeg float64
		want       Verdict
	}{
		{"centred", 0, 0, OnPlan},
		{"inclusive on-plan bound", 0.3, 1.0, OnPlan},
		{"just past lateral bound", 0.31, 0.5, Drifting},
		{"just past angular bound", 0.1, 1.01, Drifting},
		{"inclusive drift bound", 0.6, 2.0, Drifting},
		{"lateral beyond drift", 0.61, 0.0, OffPlan},
		{"angular beyond drift", 0.0, 2.01, OffPlan},
		{"both large", 5, 10, OffPlan},
		{"12 cm at 3.1 deg", 0.12, 3.1, OffPlan},
		{"negative lateral is not rejected", -1, 0.5, OnPlan},
		{"nan lateral", math.NaN(), 0, OffPlan},
		{"nan angular", 0, math.NaN(), OffPlan},
		{"infinite lateral", math.Inf(1), 0, OffPlan},
		{"negative infinity", math.Inf(-1), math.Inf(-1), OnPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.lateralM, tt.angularDeg))
		})
	}
}

func TestClassify_Bands(t *testing.T) {
	// Sweep the plane and check each band's defining property.
	for lat := 0.0; lat <= 1.0; lat += 0.05 {
		for ang := 0.0; ang <= 3.0; ang += 0.25 {
			got := Classify(lat, ang)
			switch {
			case lat <= 0.3 && ang <= 1.0:
				assert.Equal(t, OnPlan, got, "lat=%v ang=%v", lat, ang)
			case lat <= 0.6 && ang <= 2.0:
				assert.Equal(t, Drifting, got, "lat=%v ang=%v", lat, ang)
			default:
				assert.Equal(t, OffPlan, got, "lat=%v ang=%v", lat, ang)
			}
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, Drifting, Classify(0.45, 1.5))
	}
}

func TestClassifySample(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   Verdict
	}{
		{"12 cm at 3.1 deg", Sample{LateralOffsetCm: 12, AngularOffsetDeg: 3.1}, OffPlan},
		{"30 cm at 1 deg", Sample{LateralOffsetCm: 30, AngularOffsetDeg: 1}, OnPlan},
		{"45 cm at 1.5 deg", Sample{LateralOffsetCm: 45, AngularOffsetDeg: 1.5}, Drifting},
		{"0.8 cm at 2.1 deg", Sample{LateralOffsetCm: 0.8, AngularOffsetDeg: 2.1}, OffPlan},
		{"61 cm at 0 deg", Sample{LateralOffsetCm: 61}, OffPlan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySample(tt.sample))
		})
	}
}

func TestThresholds_Custom(t *testing.T) {
	th := Thresholds{OnPlanLateralM: 0.1, OnPlanAngularDeg: 0.5, DriftLateralM: 0.2, DriftAngularDeg: 1}
	require.NoError(t, th.Validate())

	assert.Equal(t, OnPlan, th.Classify(0.1, 0.5))
	assert.Equal(t, Drifting, th.Classify(0.15, 0.5))
	assert.Equal(t, OffPlan, th.Classify(0.3, 0.5))
}

func TestThresholds_Validate(t *testing.T) {
	require.NoError(t, DefaultThresholds().Validate())

	tests := []struct {
		name string
		mut  func(*Thresholds)
	}{
		{"negative lateral", func(th *Thresholds) { th.OnPlanLateralM = -0.1 }},
		{"nan angular", func(th *Thresholds) { th.DriftAngularDeg = math.NaN() }},
		{"infinite drift", func(th *Thresholds) { th.DriftLateralM = math.Inf(1) }},
		{"on-plan lateral above drift", func(th *Thresholds) { th.OnPlanLateralM = 0.7 }},
		{"on-plan angular above drift", func(th *Thresholds) { th.OnPlanAngularDeg = 2.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mut(&th)
			assert.Error(t, th.Validate())
		})
	}
}

func TestSample_Validate(t *testing.T) {
	require.NoError(t, Sample{LateralOffsetCm: 12, AngularOffsetDeg: 3.1}.Validate())
	require.NoError(t, Sample{}.Validate())

	bad := []Sample{
		{LateralOffsetCm: math.NaN()},
		{AngularOffsetDeg: math.Inf(1)},
		{LateralOffsetCm: -1},
		{AngularOffsetDeg: -0.5},
	}
	for _, s := range bad {
		err := s.Validate()
		require.Error(t, err, "%+v", s)
		assert.True(t, errors.Is(err, ErrInvalidSample))
	}
}

func TestVerdict_Labels(t *testing.T) {
	assert.Equal(t, "On Plan", OnPlan.String())
	assert.Equal(t, "Drifting", Drifting.String())
	assert.Equal(t, "Off Plan", OffPlan.String())
	assert.Equal(t, "Verdict(7)", Verdict(7).String())

	assert.Equal(t, "green", OnPlan.Tone())
	assert.Equal(t, "amber", Drifting.Tone())
	assert.Equal(t, "red", OffPlan.Tone())
	assert.Equal(t, "zinc", Verdict(7).Tone())
}

func TestVerdict_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Verdict{"verdict": Drifting})
	require.NoError(t, err)
	assert.JSONEq(t, `{"verdict":"Drifting"}`, string(b))

	var out struct {
		Verdict Verdict `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"verdict":"Off Plan"}`), &out))
	assert.Equal(t, OffPlan, out.Verdict)

	assert.Error(t, json.Unmarshal([]byte(`{"verdict":"Sideways"}`), &out))
	_, err = Verdict(9).MarshalText()
	assert.Error(t, err)
}
