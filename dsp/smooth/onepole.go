// Package smooth provides control-rate smoothing filters.
package smooth

import "github.com/cwbudde/algo-chaincraft/dsp/core"

// DefaultTimeMs is the default exponential time constant for macro smoothing.
const DefaultTimeMs = 10.0

// OnePole is a single-pole low-pass filter (exponential moving average).
// The zero value passes input through unchanged until Configure is called.
type OnePole struct {
	y float64
	a float64

	timeMs float64
	rateHz float64
}

// NewOnePole returns a smoother configured for timeMs at rateHz.
func NewOnePole(timeMs, rateHz float64) *OnePole {
	s := &OnePole{}
	s.Configure(timeMs, rateHz)

	return s
}

// Configure sets the pole from an exponential time constant in milliseconds
// and the rate at which Process is called. Time constants are floored at
// 0.1 ms.
func (s *OnePole) Configure(timeMs, rateHz float64) {
	s.timeMs = timeMs
	s.rateHz = rateHz
	s.a = core.OnePoleCoeff(timeMs, rateHz)
}

// SetRate re-derives the coefficient for a new call rate, keeping the time
// constant. It is a no-op when the rate is unchanged.
func (s *OnePole) SetRate(rateHz float64) {
	if rateHz == s.rateHz {
		return
	}

	s.Configure(s.timeMs, rateHz)
}

// Process advances the filter by one step: y += a*(x-y).
func (s *OnePole) Process(x float64) float64 {
	if s.a == 0 {
		s.y = x

		return x
	}

	s.y += s.a * (x - s.y)

	return s.y
}

// Value returns the current output without advancing.
func (s *OnePole) Value() float64 { return s.y }

// Coefficient returns the current smoothing coefficient a.
func (s *OnePole) Coefficient() float64 { return s.a }

// Reset forces the filter state to v.
func (s *OnePole) Reset(v float64) {
	s.y = v
}
