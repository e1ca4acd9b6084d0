package core

import "math"

// MinPositive is the smallest positive float64. Rates, cutoffs and smoothing
// coefficients that must stay strictly positive are clamped to it.
const MinPositive = math.SmallestNonzeroFloat64

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// PositiveOr returns value if it is strictly positive and finite, and
// fallback otherwise. NaN is never positive.
func PositiveOr(value, fallback float64) float64 {
	if value > 0 && !math.IsInf(value, 1) {
		return value
	}

	return fallback
}
