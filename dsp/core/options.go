package core

import (
	"errors"
	"fmt"
)

// Supported sample-rate window. Primitives size their fixed buffers from the
// sample rate at construction, so rates outside this window are rejected once
// at startup instead of being handled per block.
const (
	MinSampleRate = 8000.0
	MaxSampleRate = 192000.0
)

// ErrUnsupportedSampleRate is returned by constructors for rates outside
// [MinSampleRate, MaxSampleRate] or non-finite rates.
var ErrUnsupportedSampleRate = errors.New("unsupported sample rate")

// CheckSampleRate validates sampleRate against the supported window.
func CheckSampleRate(sampleRate float64) error {
	if !IsFinite(sampleRate) || sampleRate < MinSampleRate || sampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %g Hz (supported %g..%g)", ErrUnsupportedSampleRate,
			sampleRate, MinSampleRate, MaxSampleRate)
	}

	return nil
}

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the settings of the reference hardware:
// 48 kHz with 64-sample audio callbacks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  64,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// BlockDurationMs returns the wall-clock duration of one block in milliseconds.
func (c ProcessorConfig) BlockDurationMs() float64 {
	if c.SampleRate <= 0 {
		return 0
	}

	return 1000 * float64(c.BlockSize) / c.SampleRate
}
