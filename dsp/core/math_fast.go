//go:build fastmath

package core

import "github.com/meko-christian/algo-approx"

const ln2 = 0.693147180559945309417232121458

// expFn trades a few ULPs for speed. Used by dB conversion and smoothing
// coefficients, which are evaluated at block rate.
func expFn(x float64) float64 {
	return approx.FastExp(x)
}

// Log2 computes log2(x) using fast approximation.
// Uses the identity: log2(x) = ln(x) / ln(2)
func Log2(x float64) float64 {
	return approx.FastLog(x) / ln2
}

// Exp2 computes 2^x using fast approximation.
func Exp2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
