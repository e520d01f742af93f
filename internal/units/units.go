// Package units provides shared constants and conversions for length and angle units.
// Distances are carried in metres internally and converted at the edges.
package units

import (
	"fmt"
	"math"
)

// Length unit constants
const (
	Meters      = "m"
	Centimeters = "cm"
	Feet        = "ft"
)

// ValidLengthUnits contains all valid length unit values
var ValidLengthUnits = []string{Meters, Centimeters, Feet}

const (
	centimetersPerMeter = 100.0
	feetPerMeter        = 3.280839895013123
)

// IsValid checks if the given unit is in the list of valid length units
func IsValid(unit string) bool {
	for _, validUnit := range ValidLengthUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "m, cm, ft"
}

// CentimetersToMeters converts a length in centimetres to metres.
func CentimetersToMeters(cm float64) float64 {
	return cm / centimetersPerMeter
}

// MetersToCentimeters converts a length in metres to centimetres.
func MetersToCentimeters(m float64) float64 {
	return m * centimetersPerMeter
}

// ConvertLength converts a length from metres to the target units.
// Unknown units return the value in metres.
func ConvertLength(lengthM float64, targetUnits string) float64 {
	switch targetUnits {
	case Centimeters:
		return MetersToCentimeters(lengthM)
	case Feet:
		return lengthM * feetPerMeter
	default:
		return lengthM
	}
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FormatDLS formats a dogleg severity reading with its unit, e.g. "1.3 deg/30 m".
func FormatDLS(value float64, unit string) string {
	return fmt.Sprintf("%g %s", value, unit)
}
