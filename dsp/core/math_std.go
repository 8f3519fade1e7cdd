//go:build !fastmath

package core

import "math"

func expFn(x float64) float64 {
	return math.Exp(x)
}

// Log2 computes log2(x) using standard library math.
func Log2(x float64) float64 {
	return math.Log2(x)
}

// Exp2 computes 2^x using standard library math.
func Exp2(x float64) float64 {
	return math.Exp2(x)
}
