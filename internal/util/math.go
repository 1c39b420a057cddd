package util

import (
	"golang.org/x/exp/constraints"
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Abs returns the absolute value of v
func Abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// DivRoundHalfUp divides numerator by denominator and rounds the result
// to the nearest integer, with halves rounded towards +infinity.
// Make sure that denominator != 0
func DivRoundHalfUp(numerator int, denominator int) int {
	if denominator < 0 {
		numerator, denominator = -numerator, -denominator
	}
	n := 2*numerator + denominator
	d := 2 * denominator
	q := n / d
	// go truncates towards zero, we need floor
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}
