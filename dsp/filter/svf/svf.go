// Package svf implements a zero-delay-feedback state-variable filter.
//
// The filter uses the trapezoidal-integrator topology and provides
// simultaneous low-pass, band-pass and high-pass outputs. It stays stable
// under per-block cutoff modulation, which makes it the tone-shaping
// primitive for the drive and cabinet stages.
package svf

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

const (
	minFreqHz     = 10.0
	maxFreqFactor = 0.49
	minDamping    = 0.05
)

// Filter is a mono ZDF state-variable filter.
type Filter struct {
	sampleRate float64

	freq float64
	res  float64

	g  float64
	k  float64
	a1 float64
	a2 float64
	a3 float64

	ic1eq float64
	ic2eq float64

	low  float64
	band float64
	high float64
}

// New returns a filter at sampleRate with cutoff 1 kHz and resonance 0.
func New(sampleRate float64) (*Filter, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("svf: %w", err)
	}

	f := &Filter{sampleRate: sampleRate, freq: -1, res: -1}
	f.SetFreq(1000)
	f.SetRes(0)

	return f, nil
}

// SetFreq sets the cutoff in Hz, clamped to [10, 0.49*sampleRate].
func (f *Filter) SetFreq(hz float64) {
	hz = core.Clamp(hz, minFreqHz, maxFreqFactor*f.sampleRate)
	if hz == f.freq {
		return
	}

	f.freq = hz
	// Pre-warp the frequency for the bilinear transform
	f.g = math.Tan(math.Pi * hz / f.sampleRate)
	f.updateCoefficients()
}

// SetRes sets the resonance in [0, 1]. The damping is k = 2 - 2*res,
// floored at 0.05 so the filter never self-oscillates.
func (f *Filter) SetRes(res float64) {
	res = core.Clamp01(res)
	if res == f.res {
		return
	}

	f.res = res
	f.k = math.Max(2-2*res, minDamping)
	f.updateCoefficients()
}

// Freq returns the cutoff in Hz.
func (f *Filter) Freq() float64 { return f.freq }

// Res returns the resonance.
func (f *Filter) Res() float64 { return f.res }

// Process runs one sample and updates the low, band and high outputs.
func (f *Filter) Process(x float64) {
	v3 := x - f.ic2eq
	v1 := f.a1*f.ic1eq + f.a2*v3
	v2 := f.ic2eq + f.a2*f.ic1eq + f.a3*v3

	f.ic1eq = core.FlushDenormals(2*v1 - f.ic1eq)
	f.ic2eq = core.FlushDenormals(2*v2 - f.ic2eq)

	f.low = v2
	f.band = v1
	f.high = x - f.k*v1 - v2
}

// ProcessLow runs one sample and returns the low-pass output.
func (f *Filter) ProcessLow(x float64) float64 {
	f.Process(x)
	return f.low
}

// ProcessHigh runs one sample and returns the high-pass output.
func (f *Filter) ProcessHigh(x float64) float64 {
	f.Process(x)
	return f.high
}

// Low returns the last low-pass output.
func (f *Filter) Low() float64 { return f.low }

// Band returns the last band-pass output.
func (f *Filter) Band() float64 { return f.band }

// High returns the last high-pass output.
func (f *Filter) High() float64 { return f.high }

// Reset clears the integrator state.
func (f *Filter) Reset() {
	f.ic1eq, f.ic2eq = 0, 0
	f.low, f.band, f.high = 0, 0, 0
}

func (f *Filter) updateCoefficients() {
	f.a1 = 1 / (1 + f.g*(f.g+f.k))
	f.a2 = f.g * f.a1
	f.a3 = f.g * f.a2
}
