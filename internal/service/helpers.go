package service

import "math"

// RoundingPrecision controls the decimal precision of monetary values in
// results: 100 gives two decimal places.
const RoundingPrecision = 100

// round rounds a float64 value to two decimal places using the package
// RoundingPrecision constant. Used throughout the service layer so monetary
// values and unit counts come out consistent in API responses.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// roundTo rounds to the given number of decimal places. Unit quantities are
// reported at three decimals and prices at four, matching statement formats.
func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
