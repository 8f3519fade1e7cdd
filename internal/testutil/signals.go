// Package testutil holds signal generators and assertions shared by the
// package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Program is guitar-like test material: a decaying 110 Hz tone with two
// partials, re-plucked every half second, plus a little seeded noise.
func Program(sampleRate float64, length int, seed int64) []float64 {
	out := DeterministicNoise(seed, 0.01, length)
	period := int(sampleRate / 2)
	for i := range out {
		t := float64(i%period) / sampleRate
		env := math.Exp(-4 * t)
		ph := 2 * math.Pi * 110 * float64(i) / sampleRate
		out[i] += env * (0.5*math.Sin(ph) + 0.2*math.Sin(3*ph))
	}
	return out
}

// Blocks calls fn with consecutive blockSize slices of signal. The last
// block is shorter when len(signal) is not a multiple of blockSize.
func Blocks(signal []float64, blockSize int, fn func(start int, block []float64)) {
	if blockSize <= 0 {
		return
	}
	for start := 0; start < len(signal); start += blockSize {
		end := min(start+blockSize, len(signal))
		fn(start, signal[start:end])
	}
}
