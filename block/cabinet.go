package block

import (
	"fmt"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/effects/dynamics"
	"github.com/cwbudde/algo-chaincraft/dsp/filter/svf"
	"github.com/cwbudde/algo-chaincraft/rig"
)

const (
	cabLowRes     = 0.7
	cabHighRes    = 0.4
	cabLowBoostDB = 4.0
	cabAirScale   = 0.05
)

// cabChannel is the per-channel cabinet and output chain. Channels never
// share filter or limiter state.
type cabChannel struct {
	low  *svf.Filter
	high *svf.Filter
	lim  *dynamics.Limiter
}

func newCabChannel(sampleRate float64) (cabChannel, error) {
	low, err := svf.New(sampleRate)
	if err != nil {
		return cabChannel{}, err
	}

	high, err := svf.New(sampleRate)
	if err != nil {
		return cabChannel{}, err
	}

	lim, err := dynamics.NewLimiter(sampleRate)
	if err != nil {
		return cabChannel{}, err
	}

	low.SetRes(cabLowRes)
	high.SetRes(cabHighRes)

	return cabChannel{low: low, high: high, lim: lim}, nil
}

// CabinetOutput is the final stage: a resonant low shelf, a high roll-off,
// an air blend that lets some of the unfiltered top back in, a cabinet mix,
// the output trim and a peak limiter on each channel.
type CabinetOutput struct {
	ch [2]cabChannel

	lowBoost float64
	air      float64
	mix      float64
	gain     float64
}

// NewCabinetOutput creates the cabinet and output stage.
func NewCabinetOutput(sampleRate float64) (*CabinetOutput, error) {
	c := &CabinetOutput{
		lowBoost: core.DBToLinear(cabLowBoostDB) - 1,
		mix:      1,
		gain:     1,
	}

	for i := range c.ch {
		ch, err := newCabChannel(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("cabinet block: %w", err)
		}

		c.ch[i] = ch
	}

	return c, nil
}

// Set applies the cabinet and output parameters.
func (c *CabinetOutput) Set(cab rig.Cabinet, out rig.Output) {
	c.air = core.Clamp01(cab.Air)
	c.mix = core.Clamp01(cab.Mix)
	c.gain = core.DBToLinear(rig.RangeOutputLevelDB.Clamp(out.LevelDB))

	ceiling := core.DBToLinear(rig.RangeLimThresholdDB.Clamp(out.LimThresholdDB))

	for i := range c.ch {
		ch := &c.ch[i]
		ch.low.SetFreq(cab.LowResHz)
		ch.high.SetFreq(cab.HighRollHz)
		ch.lim.SetCeiling(ceiling)
		ch.lim.SetRelease(out.LimReleaseMs)
	}
}

// Process runs one stereo sample.
func (c *CabinetOutput) Process(inL, inR float64) (outL, outR float64) {
	return c.process(&c.ch[0], inL), c.process(&c.ch[1], inR)
}

func (c *CabinetOutput) process(ch *cabChannel, x float64) float64 {
	y := x + c.lowBoost*ch.low.ProcessLow(x)
	y = ch.high.ProcessLow(y)
	y += c.air * cabAirScale * (x - y)
	y = core.Lerp(x, y, c.mix)

	return ch.lim.Process(y * c.gain)
}

// Ceiling returns the current linear limiter ceiling.
func (c *CabinetOutput) Ceiling() float64 { return c.ch[0].lim.Ceiling() }

// Reset clears filter and limiter state on both channels.
func (c *CabinetOutput) Reset() {
	for i := range c.ch {
		c.ch[i].low.Reset()
		c.ch[i].high.Reset()
		c.ch[i].lim.Reset()
	}
}
