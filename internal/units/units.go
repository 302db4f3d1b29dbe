// Package units provides conversions between the metric values stored
// internally and the display unit system chosen by the user.
package units

// System represents a display unit system.
type System string

const (
	Metric   System = "METRIC"
	Imperial System = "IMPERIAL"
)

// Speed labels per system.
const (
	LabelMetersPerSecond = "m/s"
	LabelMilesPerHour    = "mph"
)

// mphPerMeterPerSecond converts m/s to miles per hour.
const mphPerMeterPerSecond = 2.23694

// DisplayTemp converts a Celsius temperature to the display system.
// Metric is the identity; Imperial applies the Fahrenheit formula.
func DisplayTemp(celsius float64, sys System) float64 {
	if sys == Imperial {
		return celsius*9/5 + 32
	}
	return celsius
}

// DisplaySpeed converts a wind speed in m/s to the display system and
// returns the value together with its unit label.
func DisplaySpeed(metersPerSecond float64, sys System) (float64, string) {
	if sys == Imperial {
		return metersPerSecond * mphPerMeterPerSecond, LabelMilesPerHour
	}
	return metersPerSecond, LabelMetersPerSecond
}

// ToCelsius converts a Fahrenheit temperature back to Celsius.
func ToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32) * 5 / 9
}
