package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
// NaN is mapped to min so that a poisoned value can never escape the range.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if !(value >= min) {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clamp01 limits value to [0, 1].
func Clamp01(value float64) float64 {
	return Clamp(value, 0, 1)
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep eases t with t²(3-2t) after clamping it to [0, 1].
func Smoothstep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Feedback paths (filters, reverbs) call it on their state.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return expFn(db * ln10Div20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// OnePoleCoeff returns the smoothing coefficient 1 - exp(-1/(tau*rate)) for an
// exponential time constant given in milliseconds. Time constants below
// 0.1 ms are floored to 0.1 ms.
func OnePoleCoeff(timeMs, rateHz float64) float64 {
	if !(timeMs > minTimeConstantMs) {
		timeMs = minTimeConstantMs
	}

	if !(rateHz > 0) {
		return 1
	}

	tau := timeMs / 1000

	return 1 - expFn(-1/(tau*rateHz))
}

const (
	ln10Div20         = math.Ln10 / 20
	minTimeConstantMs = 0.1
)
