// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/aundre1/incentedge/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// Clamp01 constrains a score or confidence to the [0, 1] interval.
func Clamp01(val float64) float64 {
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// SafeRatio divides value by total, returning 0 when the denominator is
// missing or zero rather than propagating infinities.
func SafeRatio(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// NormalizePercentage converts a percentage expressed either as a fraction
// (0.30) or a whole number (30) into a fraction. Values greater than 1 are
// treated as already-whole-number percent.
func NormalizePercentage(p float64) float64 {
	if p > 1 {
		return p / constants.PercentageMultiplier
	}
	return p
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
