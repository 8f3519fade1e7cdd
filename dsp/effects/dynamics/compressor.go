package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

const (
	// Default compressor parameters
	defaultCompressorThresholdDB = -18.0
	defaultCompressorRatio       = 2.0
	defaultCompressorKneeDB      = 6.0
	defaultCompressorAttackMs    = 20.0
	defaultCompressorReleaseMs   = 200.0

	// Parameter clamp ranges
	minCompressorThresholdDB = -80.0
	maxCompressorThresholdDB = 0.0
	minCompressorRatio       = 1.0
	maxCompressorRatio       = 40.0
	minCompressorAttackMs    = 0.1
	maxCompressorAttackMs    = 1000.0
	minCompressorReleaseMs   = 1.0
	maxCompressorReleaseMs   = 5000.0
	maxCompressorKneeDB      = 24.0
	maxCompressorMakeupDB    = 48.0

	// log2Of10Div20 converts dB to the log2 domain: log2(10) / 20
	log2Of10Div20 = 0.166096404744
)

// Compressor is a mono soft-knee compressor with a peak envelope follower.
//
// Gain is computed in the log2 domain with a quadratic knee around the
// threshold. Setters clamp their argument to the supported range and only
// recompute cached coefficients when the value actually changes, so they can
// be called once per audio block.
type Compressor struct {
	thresholdDB float64
	ratio       float64
	kneeDB      float64
	attackMs    float64
	releaseMs   float64
	makeupDB    float64

	sampleRate float64

	peakLevel float64

	attackCoeff      float64
	releaseCoeff     float64
	thresholdLog2    float64
	kneeWidthLog2    float64
	invKneeWidthLog2 float64
	slope            float64
	makeupGainLin    float64
}

// NewCompressor creates a compressor at sampleRate.
//
// Default parameters:
//   - Threshold: -18 dB
//   - Ratio: 2:1
//   - Knee: 6 dB
//   - Attack: 20 ms
//   - Release: 200 ms
//   - Makeup: 0 dB
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("compressor: %w", err)
	}

	c := &Compressor{
		thresholdDB: defaultCompressorThresholdDB,
		ratio:       defaultCompressorRatio,
		kneeDB:      defaultCompressorKneeDB,
		attackMs:    defaultCompressorAttackMs,
		releaseMs:   defaultCompressorReleaseMs,
		sampleRate:  sampleRate,
	}

	c.updateCoefficients()
	c.updateTimeConstants()

	return c, nil
}

// SetThreshold sets the compression threshold in dB, clamped to [-80, 0].
func (c *Compressor) SetThreshold(dB float64) {
	dB = core.Clamp(dB, minCompressorThresholdDB, maxCompressorThresholdDB)
	if dB == c.thresholdDB {
		return
	}

	c.thresholdDB = dB
	c.updateCoefficients()
}

// SetRatio sets the compression ratio, clamped to [1, 40].
// 1 disables compression.
func (c *Compressor) SetRatio(ratio float64) {
	ratio = core.Clamp(ratio, minCompressorRatio, maxCompressorRatio)
	if ratio == c.ratio {
		return
	}

	c.ratio = ratio
	c.updateCoefficients()
}

// SetKnee sets the soft-knee width in dB, clamped to [0, 24]. 0 is a hard knee.
func (c *Compressor) SetKnee(kneeDB float64) {
	kneeDB = core.Clamp(kneeDB, 0, maxCompressorKneeDB)
	if kneeDB == c.kneeDB {
		return
	}

	c.kneeDB = kneeDB
	c.updateCoefficients()
}

// SetAttack sets the attack time in milliseconds, clamped to [0.1, 1000].
func (c *Compressor) SetAttack(ms float64) {
	ms = core.Clamp(ms, minCompressorAttackMs, maxCompressorAttackMs)
	if ms == c.attackMs {
		return
	}

	c.attackMs = ms
	c.updateTimeConstants()
}

// SetRelease sets the release time in milliseconds, clamped to [1, 5000].
func (c *Compressor) SetRelease(ms float64) {
	ms = core.Clamp(ms, minCompressorReleaseMs, maxCompressorReleaseMs)
	if ms == c.releaseMs {
		return
	}

	c.releaseMs = ms
	c.updateTimeConstants()
}

// SetMakeupGain sets the makeup gain in dB, clamped to [0, 48].
func (c *Compressor) SetMakeupGain(dB float64) {
	dB = core.Clamp(dB, 0, maxCompressorMakeupDB)
	if dB == c.makeupDB {
		return
	}

	c.makeupDB = dB
	c.makeupGainLin = core.DBToLinear(dB)
}

// Threshold returns the current threshold in dB.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Ratio returns the current compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// Knee returns the current knee width in dB.
func (c *Compressor) Knee() float64 { return c.kneeDB }

// Attack returns the current attack time in milliseconds.
func (c *Compressor) Attack() float64 { return c.attackMs }

// Release returns the current release time in milliseconds.
func (c *Compressor) Release() float64 { return c.releaseMs }

// MakeupGain returns the current makeup gain in dB.
func (c *Compressor) MakeupGain() float64 { return c.makeupDB }

// SampleRate returns the sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// Process processes one sample through the compressor.
func (c *Compressor) Process(input float64) float64 {
	inputLevel := math.Abs(input)

	if inputLevel > c.peakLevel {
		c.peakLevel += (inputLevel - c.peakLevel) * c.attackCoeff
	} else {
		c.peakLevel = inputLevel + (c.peakLevel-inputLevel)*c.releaseCoeff
	}

	c.peakLevel = core.FlushDenormals(c.peakLevel)

	return input * c.calculateGain(c.peakLevel) * c.makeupGainLin
}

// CalculateOutputLevel computes the steady-state output level for a given
// input magnitude, i.e. the static compression curve.
func (c *Compressor) CalculateOutputLevel(inputMagnitude float64) float64 {
	inputMagnitude = math.Abs(inputMagnitude)
	return inputMagnitude * c.calculateGain(inputMagnitude) * c.makeupGainLin
}

// Reset clears the envelope follower.
func (c *Compressor) Reset() {
	c.peakLevel = 0
}

func (c *Compressor) updateCoefficients() {
	c.thresholdLog2 = c.thresholdDB * log2Of10Div20
	c.kneeWidthLog2 = c.kneeDB * log2Of10Div20

	if c.kneeDB > 0 {
		c.invKneeWidthLog2 = 1.0 / c.kneeWidthLog2
	} else {
		c.invKneeWidthLog2 = 0
	}

	c.slope = 1.0 - 1.0/c.ratio
	c.makeupGainLin = core.DBToLinear(c.makeupDB)
}

func (c *Compressor) updateTimeConstants() {
	// Attack: 1 - exp(-ln2 / (attack_sec * sample_rate))
	c.attackCoeff = 1.0 - math.Exp(-math.Ln2/(c.attackMs*0.001*c.sampleRate))

	// Release: exp(-ln2 / (release_sec * sample_rate))
	c.releaseCoeff = math.Exp(-math.Ln2 / (c.releaseMs * 0.001 * c.sampleRate))
}

// calculateGain computes the gain multiplier using the log2-domain soft-knee
// curve with knee width k and its reciprocal.
func (c *Compressor) calculateGain(peakLevel float64) float64 {
	if peakLevel <= 0 || c.slope == 0 {
		return 1.0
	}

	overshoot := core.Log2(peakLevel) - c.thresholdLog2

	if c.kneeDB <= 0 {
		if overshoot <= 0 {
			return 1.0
		}

		return core.Exp2(-overshoot * c.slope)
	}

	halfWidth := c.kneeWidthLog2 * 0.5

	var effectiveOvershoot float64

	switch {
	case overshoot < -halfWidth:
		return 1.0
	case overshoot > halfWidth:
		effectiveOvershoot = overshoot
	default:
		// (overshoot + w/2)^2 / (2w)
		scratch := overshoot + halfWidth
		effectiveOvershoot = scratch * scratch * 0.5 * c.invKneeWidthLog2
	}

	return core.Exp2(-effectiveOvershoot * c.slope)
}
