package block

import (
	"fmt"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/effects/reverb"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// Feedback and damping mapping of the reverb stage.
const (
	spaceMinFeedback   = 0.55
	spaceMaxFeedback   = 0.95
	spaceFeedbackRange = 0.40
	spaceDampOpenHz    = 12000.0
	spaceDampClosedHz  = 2000.0
)

// Space is the stereo reverb stage: o = dry*in + wet*verb(in).
type Space struct {
	verb *reverb.FDN
	wet  float64
	dry  float64
}

// NewSpace creates the reverb stage.
func NewSpace(sampleRate float64) (*Space, error) {
	verb, err := reverb.NewFDN(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("space block: %w", err)
	}

	return &Space{verb: verb, dry: 1}, nil
}

// SpaceFeedback maps a decay time in seconds to the reverb loop gain,
// clamped to [0.55, 0.95] so the tail can never run away.
func SpaceFeedback(decayS float64) float64 {
	return core.Clamp(spaceMinFeedback+decayS/rig.RangeDecayS.Max*spaceFeedbackRange,
		spaceMinFeedback, spaceMaxFeedback)
}

// SpaceDampHz maps damp in [0, 1] to the in-loop low-pass cutoff.
func SpaceDampHz(damp float64) float64 {
	return core.Lerp(spaceDampOpenHz, spaceDampClosedHz, core.Clamp01(damp))
}

// Set applies the block's parameters.
func (s *Space) Set(p rig.Space) {
	s.verb.SetFeedback(SpaceFeedback(p.DecayS))
	s.verb.SetLPFreq(SpaceDampHz(p.Damp))

	s.wet = core.Clamp01(p.Wet)
	s.dry = core.Clamp01(p.Dry)
}

// Process runs one stereo sample.
func (s *Space) Process(inL, inR float64) (outL, outR float64) {
	vL, vR := s.verb.Process(inL, inR)

	return s.dry*inL + s.wet*vL, s.dry*inR + s.wet*vR
}

// Reset clears the reverb tail.
func (s *Space) Reset() { s.verb.Reset() }
