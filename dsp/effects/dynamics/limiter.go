package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

const (
	defaultLimiterCeiling   = 0.5
	defaultLimiterReleaseMs = 160.0

	minLimiterCeiling   = 1e-3
	maxLimiterCeiling   = 1.0
	minLimiterReleaseMs = 1.0
	maxLimiterReleaseMs = 2000.0
)

// Limiter is a peak limiter with instant attack and exponential release.
//
// The envelope jumps to any peak above it and decays with the release time
// constant. Gain is ceiling/envelope above the ceiling. A final hard clip at
// the ceiling guarantees |out| <= ceiling for every sample.
type Limiter struct {
	ceiling   float64
	releaseMs float64

	sampleRate float64

	envelope     float64
	releaseCoeff float64
}

// NewLimiter creates a limiter with a 0.5 (about -6 dB) ceiling and 160 ms
// release.
func NewLimiter(sampleRate float64) (*Limiter, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("limiter: %w", err)
	}

	l := &Limiter{
		ceiling:    defaultLimiterCeiling,
		releaseMs:  defaultLimiterReleaseMs,
		sampleRate: sampleRate,
	}
	l.updateRelease()

	return l, nil
}

// SetCeiling sets the linear output ceiling, clamped to [0.001, 1].
func (l *Limiter) SetCeiling(linear float64) {
	l.ceiling = core.Clamp(linear, minLimiterCeiling, maxLimiterCeiling)
}

// SetThresholdDB sets the ceiling from a dB value.
func (l *Limiter) SetThresholdDB(dB float64) {
	l.SetCeiling(core.DBToLinear(dB))
}

// SetRelease sets the release time in milliseconds, clamped to [1, 2000].
func (l *Limiter) SetRelease(ms float64) {
	ms = core.Clamp(ms, minLimiterReleaseMs, maxLimiterReleaseMs)
	if ms == l.releaseMs {
		return
	}

	l.releaseMs = ms
	l.updateRelease()
}

// Ceiling returns the linear ceiling.
func (l *Limiter) Ceiling() float64 { return l.ceiling }

// Release returns the release time in milliseconds.
func (l *Limiter) Release() float64 { return l.releaseMs }

// Process limits one sample.
func (l *Limiter) Process(input float64) float64 {
	level := math.Abs(input)
	if level > l.envelope {
		l.envelope = level
	} else {
		l.envelope = core.FlushDenormals(level + (l.envelope-level)*l.releaseCoeff)
	}

	out := input
	if l.envelope > l.ceiling {
		out *= l.ceiling / l.envelope
	}

	return core.Clamp(out, -l.ceiling, l.ceiling)
}

// GainReduction returns the current gain applied by the limiter (1 = none).
func (l *Limiter) GainReduction() float64 {
	if l.envelope <= l.ceiling {
		return 1
	}

	return l.ceiling / l.envelope
}

// Reset clears the envelope.
func (l *Limiter) Reset() {
	l.envelope = 0
}

func (l *Limiter) updateRelease() {
	l.releaseCoeff = math.Exp(-1 / (l.releaseMs * 0.001 * l.sampleRate))
}
