package service

import "math"

// RoundingPrecision is the multiplier used to round monetary values to two
// decimal places (0.01 precision) in API responses.
const RoundingPrecision = 100

// ratioPrecision keeps four decimal places for MOIC and percentage figures
// so per-row percentages still sum to ~100 after rounding.
const ratioPrecision = 10000

// round rounds a float64 value to two decimal places using the package
// RoundingPrecision constant. Used throughout the service layer for
// monetary values.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// round4 rounds a float64 value to four decimal places. Used for ratios
// (MOIC, percentages).
func round4(value float64) float64 {
	return math.Round(value*ratioPrecision) / ratioPrecision
}
