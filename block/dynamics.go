package block

import (
	"fmt"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/effects/dynamics"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// Dynamics is the compressor stage: lerp(x, comp(x)*makeup, mix).
type Dynamics struct {
	comp   *dynamics.Compressor
	enable bool
	mix    float64
}

// NewDynamics creates the compressor stage.
func NewDynamics(sampleRate float64) (*Dynamics, error) {
	comp, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("dynamics block: %w", err)
	}

	return &Dynamics{comp: comp, enable: true}, nil
}

// Set applies the block's parameters.
func (d *Dynamics) Set(p rig.Dynamics) {
	d.enable = p.Enable
	d.mix = core.Clamp01(p.Mix)

	d.comp.SetThreshold(p.ThresholdDB)
	d.comp.SetRatio(p.Ratio)
	d.comp.SetAttack(p.AttackMs)
	d.comp.SetRelease(p.ReleaseMs)
	d.comp.SetMakeupGain(p.MakeupDB)
}

// Process runs one sample. A disabled stage is the identity.
func (d *Dynamics) Process(x float64) float64 {
	if !d.enable {
		return x
	}

	return core.Lerp(x, d.comp.Process(x), d.mix)
}

// Reset clears the envelope follower.
func (d *Dynamics) Reset() { d.comp.Reset() }
