package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

const (
	defaultTremoloRateHz      = 4.0
	defaultTremoloDepth       = 0.6
	defaultTremoloSmoothingMs = 5.0

	minTremoloRateHz = 0.01
	maxTremoloRateHz = 40.0
)

// TremoloOption mutates tremolo construction parameters.
type TremoloOption func(*tremoloConfig) error

type tremoloConfig struct {
	rateHz      float64
	depth       float64
	smoothingMs float64
}

func defaultTremoloConfig() tremoloConfig {
	return tremoloConfig{
		rateHz:      defaultTremoloRateHz,
		depth:       defaultTremoloDepth,
		smoothingMs: defaultTremoloSmoothingMs,
	}
}

// WithTremoloRateHz sets modulation speed in Hz.
func WithTremoloRateHz(rateHz float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
			return fmt.Errorf("tremolo rate must be > 0 and finite: %f", rateHz)
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithTremoloDepth sets modulation depth in [0, 1].
func WithTremoloDepth(depth float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if depth < 0 || depth > 1 || math.IsNaN(depth) {
			return fmt.Errorf("tremolo depth must be in [0, 1]: %f", depth)
		}

		cfg.depth = depth

		return nil
	}
}

// WithTremoloSmoothingMs sets the gain smoothing time in milliseconds.
func WithTremoloSmoothingMs(smoothingMs float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if smoothingMs < 0 || math.IsNaN(smoothingMs) || math.IsInf(smoothingMs, 0) {
			return fmt.Errorf("tremolo smoothing must be >= 0 and finite: %f", smoothingMs)
		}

		cfg.smoothingMs = smoothingMs

		return nil
	}
}

// Tremolo applies sine LFO amplitude modulation with gain smoothing.
//
// The modulation gain is (1-depth) + depth*0.5*(1+sin(phase)), so depth 0
// leaves the signal untouched and depth 1 sweeps the gain between 0 and 1.
type Tremolo struct {
	sampleRate float64
	rateHz     float64
	depth      float64
	smoothing  float64

	lfoPhase      float64
	lfoInc        float64
	currentMod    float64
	smoothingCoef float64
}

// NewTremolo creates a tremolo with practical defaults and optional overrides.
func NewTremolo(sampleRate float64, opts ...TremoloOption) (*Tremolo, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("tremolo: %w", err)
	}

	cfg := defaultTremoloConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	t := &Tremolo{
		sampleRate: sampleRate,
		depth:      cfg.depth,
		smoothing:  cfg.smoothingMs,
		currentMod: 1,
	}
	t.SetRate(cfg.rateHz)
	t.updateSmoothingCoefficient()

	return t, nil
}

// SetRate sets the modulation speed in Hz, clamped to [0.01, 40].
func (t *Tremolo) SetRate(hz float64) {
	t.rateHz = core.Clamp(hz, minTremoloRateHz, maxTremoloRateHz)
	t.lfoInc = 2 * math.Pi * t.rateHz / t.sampleRate
}

// SetDepth sets the modulation depth in [0, 1].
func (t *Tremolo) SetDepth(depth float64) {
	t.depth = core.Clamp01(depth)
}

// Rate returns the modulation speed in Hz.
func (t *Tremolo) Rate() float64 { return t.rateHz }

// Depth returns the modulation depth.
func (t *Tremolo) Depth() float64 { return t.depth }

// Process processes one sample and returns the modulated signal.
func (t *Tremolo) Process(sample float64) float64 {
	target := (1 - t.depth) + t.depth*0.5*(1+math.Sin(t.lfoPhase))
	if t.smoothingCoef >= 1 {
		t.currentMod = target
	} else {
		t.currentMod += (target - t.currentMod) * t.smoothingCoef
	}

	t.lfoPhase += t.lfoInc
	if t.lfoPhase >= 2*math.Pi {
		t.lfoPhase -= 2 * math.Pi
	}

	return sample * t.currentMod
}

// Reset clears modulation phase and smoothing state.
func (t *Tremolo) Reset() {
	t.lfoPhase = 0
	t.currentMod = 1
}

func (t *Tremolo) updateSmoothingCoefficient() {
	if t.smoothing <= 0 {
		t.smoothingCoef = 1
		return
	}

	t.smoothingCoef = core.OnePoleCoeff(t.smoothing, t.sampleRate)
}
