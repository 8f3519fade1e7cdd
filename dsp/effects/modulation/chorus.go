package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/delay"
)

const (
	defaultChorusRateHz   = 0.3
	defaultChorusDepth    = 0.9
	defaultChorusFeedback = 0.2

	// Delay time follows d(t) = base + depth*sweep*0.5*(1 + sin(phase)).
	chorusBaseDelayMs  = 7.0
	chorusSweepDelayMs = 5.0

	minChorusRateHz   = 0.01
	maxChorusRateHz   = 20.0
	maxChorusFeedback = 0.95
)

// Chorus is a single-voice modulated-delay chorus with feedback.
//
// Process returns the delayed (wet) signal only. The delay buffer is sized
// once from the sample rate so parameter changes never allocate.
type Chorus struct {
	sampleRate float64
	rateHz     float64
	depth      float64
	feedback   float64

	lfoPhase float64
	lfoInc   float64

	baseSamples  float64
	sweepSamples float64

	line *delay.Line
	last float64
}

// NewChorus creates a chorus at sampleRate.
func NewChorus(sampleRate float64) (*Chorus, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("chorus: %w", err)
	}

	size := int(math.Ceil((chorusBaseDelayMs+chorusSweepDelayMs)*0.001*sampleRate)) + 4

	line, err := delay.New(size)
	if err != nil {
		return nil, fmt.Errorf("chorus: %w", err)
	}

	c := &Chorus{
		sampleRate:   sampleRate,
		depth:        defaultChorusDepth,
		feedback:     defaultChorusFeedback,
		baseSamples:  chorusBaseDelayMs * 0.001 * sampleRate,
		sweepSamples: chorusSweepDelayMs * 0.001 * sampleRate,
		line:         line,
	}
	c.SetRate(defaultChorusRateHz)

	return c, nil
}

// SetRate sets the LFO rate in Hz, clamped to [0.01, 20].
func (c *Chorus) SetRate(hz float64) {
	c.rateHz = core.Clamp(hz, minChorusRateHz, maxChorusRateHz)
	c.lfoInc = 2 * math.Pi * c.rateHz / c.sampleRate
}

// SetDepth sets the modulation depth in [0, 1].
func (c *Chorus) SetDepth(depth float64) {
	c.depth = core.Clamp01(depth)
}

// SetFeedback sets the delay feedback in [0, 0.95].
func (c *Chorus) SetFeedback(feedback float64) {
	c.feedback = core.Clamp(feedback, 0, maxChorusFeedback)
}

// Rate returns the LFO rate in Hz.
func (c *Chorus) Rate() float64 { return c.rateHz }

// Depth returns the modulation depth.
func (c *Chorus) Depth() float64 { return c.depth }

// Feedback returns the feedback amount.
func (c *Chorus) Feedback() float64 { return c.feedback }

// Process processes one sample and returns the wet signal.
func (c *Chorus) Process(input float64) float64 {
	c.line.Write(input + c.feedback*c.last)

	mod := 0.5 * (1 + math.Sin(c.lfoPhase))
	wet := c.line.ReadAt(c.baseSamples + c.depth*c.sweepSamples*mod)
	c.last = core.FlushDenormals(wet)

	c.lfoPhase += c.lfoInc
	if c.lfoPhase >= 2*math.Pi {
		c.lfoPhase -= 2 * math.Pi
	}

	return wet
}

// Reset clears delay state and modulation phase.
func (c *Chorus) Reset() {
	c.line.Reset()
	c.lfoPhase = 0
	c.last = 0
}
