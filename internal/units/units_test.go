package units

import (
	"math"
	"testing"
)

func TestConvertLength(t *testing.T) {
	tests := []struct {
		name     string
		lengthM  float64
		units    string
		expected float64
	}{
		{"1 m to cm", 1.0, Centimeters, 100.0},
		{"0.12 m to cm", 0.12, Centimeters, 12.0},
		{"1 m to ft", 1.0, Feet, 3.28084},
		{"30 m to ft", 30.0, Feet, 98.4252},
		{"1 m to m", 1.0, Meters, 1.0},
		{"unknown units default to m", 2.5, "unknown", 2.5},
		{"0 m to cm", 0.0, Centimeters, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertLength(tt.lengthM, tt.units)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ConvertLength(%f, %s) = %f, want %f", tt.lengthM, tt.units, result, tt.expected)
			}
		})
	}
}

func TestCentimeterRoundTrip(t *testing.T) {
	for _, cm := range []float64{0, 12, 30, 60, 14.6} {
		if got := MetersToCentimeters(CentimetersToMeters(cm)); math.Abs(got-cm) > 1e-9 {
			t.Errorf("round trip of %f cm = %f", cm, got)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid m", Meters, true},
		{"valid cm", Centimeters, true},
		{"valid ft", Feet, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "CM", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	if got := GetValidUnitsString(); got != "m, cm, ft" {
		t.Errorf("GetValidUnitsString() = %s, want %s", got, "m, cm, ft")
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(0.456, 2); got != 0.46 {
		t.Errorf("RoundTo(0.456, 2) = %v, want 0.46", got)
	}
	if got := RoundTo(0.5, 2); got != 0.5 {
		t.Errorf("RoundTo(0.5, 2) = %v, want 0.5", got)
	}
}

func TestDegreesToRadians(t *testing.T) {
	if got := DegreesToRadians(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("DegreesToRadians(180) = %v, want pi", got)
	}
}

func TestFormatDLS(t *testing.T) {
	if got := FormatDLS(1.3, "deg/30 m"); got != "1.3 deg/30 m" {
		t.Errorf("FormatDLS = %q", got)
	}
}
