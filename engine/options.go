package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/smooth"
	"github.com/cwbudde/algo-chaincraft/rig"
)

const (
	defaultBlockSize = 64
	maxBlockSize     = 1 << 14
)

// ErrInvalidOption is returned by New for an option with an invalid value.
var ErrInvalidOption = errors.New("invalid option")

// Option configures an Engine at construction.
type Option func(*config) error

type config struct {
	sceneA      rig.Rig
	sceneB      rig.Rig
	smoothingMs float64
	blockSize   int
	crossfade   bool
}

func defaultConfig() config {
	return config{
		sceneA:      rig.DefaultSceneA(),
		sceneB:      rig.DefaultSceneB(),
		smoothingMs: smooth.DefaultTimeMs,
		blockSize:   defaultBlockSize,
		crossfade:   true,
	}
}

// WithScenes replaces the default scene presets. Both scenes must pass
// rig.Validate.
func WithScenes(a, b rig.Rig) Option {
	return func(cfg *config) error {
		if err := rig.Validate(a); err != nil {
			return fmt.Errorf("%w: scene A: %w", ErrInvalidOption, err)
		}

		if err := rig.Validate(b); err != nil {
			return fmt.Errorf("%w: scene B: %w", ErrInvalidOption, err)
		}

		cfg.sceneA, cfg.sceneB = a, b

		return nil
	}
}

// WithMacroSmoothing sets the macro smoothing time constant in milliseconds.
func WithMacroSmoothing(ms float64) Option {
	return func(cfg *config) error {
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("%w: macro smoothing must be >= 0 and finite: %f", ErrInvalidOption, ms)
		}

		cfg.smoothingMs = ms

		return nil
	}
}

// WithBlockSize sets the nominal block size used to configure the macro
// smoothers before the first block. ProcessBlock accepts any length.
func WithBlockSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 || n > maxBlockSize {
			return fmt.Errorf("%w: block size must be in [1, %d]: %d", ErrInvalidOption, maxBlockSize, n)
		}

		cfg.blockSize = n

		return nil
	}
}

// WithBypassCrossfade enables (default) or disables the one-block crossfade
// on bypass transitions. Disabled, bypass switches hard at the block
// boundary.
func WithBypassCrossfade(on bool) Option {
	return func(cfg *config) error {
		cfg.crossfade = on
		return nil
	}
}
