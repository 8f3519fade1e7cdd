package block

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/effects/modulation"
	"github.com/cwbudde/algo-chaincraft/rig"
)

const (
	chorusFeedback   = 0.1
	ensembleFeedback = 0.3

	// Crossover of the wet-path tone tilt.
	characterToneHz = 1500.0
)

// Character is the modulation stage: chorus, ensemble (chorus with more
// feedback) or tremolo, selected by mode, with a tone tilt on the wet path.
// Mode off is the identity.
type Character struct {
	chorus *modulation.Chorus
	trem   *modulation.Tremolo

	mode rig.CharacterMode
	mix  float64
	tone float64

	toneCoeff float64
	toneLP    float64
}

// NewCharacter creates the modulation stage.
func NewCharacter(sampleRate float64) (*Character, error) {
	chorus, err := modulation.NewChorus(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("character block: %w", err)
	}

	trem, err := modulation.NewTremolo(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("character block: %w", err)
	}

	return &Character{
		chorus:    chorus,
		trem:      trem,
		mode:      rig.CharacterChorus,
		toneCoeff: 1 - math.Exp(-2*math.Pi*characterToneHz/sampleRate),
	}, nil
}

// Set applies the block's parameters.
func (c *Character) Set(p rig.Character) {
	c.mode = p.Mode
	c.mix = core.Clamp01(p.Mix)
	c.tone = rig.RangeBipolar.Clamp(p.Tone)

	switch c.mode {
	case rig.CharacterChorus, rig.CharacterEnsemble:
		fb := chorusFeedback
		if c.mode == rig.CharacterEnsemble {
			fb = ensembleFeedback
		}

		c.chorus.SetRate(p.RateHz)
		c.chorus.SetDepth(p.Depth)
		c.chorus.SetFeedback(fb)
	case rig.CharacterTremolo:
		c.trem.SetRate(p.RateHz)
		c.trem.SetDepth(p.Depth)
	}
}

// Process runs one sample.
func (c *Character) Process(x float64) float64 {
	var wet float64

	switch c.mode {
	case rig.CharacterChorus, rig.CharacterEnsemble:
		wet = c.chorus.Process(x)
	case rig.CharacterTremolo:
		wet = c.trem.Process(x)
	default:
		return x
	}

	// Split the wet signal at the crossover and re-weight the bands:
	// tone < 0 favours the low band, tone > 0 the high band.
	c.toneLP = core.FlushDenormals(c.toneLP + c.toneCoeff*(wet-c.toneLP))
	high := wet - c.toneLP
	wet = c.toneLP*(1-0.5*c.tone) + high*(1+0.5*c.tone)

	return core.Lerp(x, wet, c.mix)
}

// Reset clears the modulation state.
func (c *Character) Reset() {
	c.chorus.Reset()
	c.trem.Reset()
	c.toneLP = 0
}
