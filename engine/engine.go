package engine

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-chaincraft/block"
	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/smooth"
	"github.com/cwbudde/algo-chaincraft/morph"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// ErrUnsupportedSampleRate is returned by New for a sample rate outside
// [core.MinSampleRate, core.MaxSampleRate].
var ErrUnsupportedSampleRate = core.ErrUnsupportedSampleRate

// Engine is the morphing effect processor.
type Engine struct {
	sampleRate float64
	sceneA     rig.Rig
	sceneB     rig.Rig
	crossfade  bool

	// Control side. Written by any goroutine, read once per block.
	macros   macroSlots
	morphCmd atomic.Uint64
	toggles  atomic.Uint32

	// Audio side. Owned by the ProcessBlock goroutine.
	morph       *morph.Controller
	smoothers   [5]smooth.OnePole
	smoothBlock int
	chain       *block.Chain
	effective   rig.Rig
	bypassed    bool

	snap published
}

// New constructs an engine at sampleRate. It fails for unsupported sample
// rates and invalid options; nothing fails after construction.
func New(sampleRate float64, opts ...Option) (*Engine, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
	}

	chain, err := block.NewChain(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		sampleRate:  sampleRate,
		sceneA:      cfg.sceneA,
		sceneB:      cfg.sceneB,
		crossfade:   cfg.crossfade,
		morph:       morph.New(),
		smoothBlock: cfg.blockSize,
		chain:       chain,
	}

	blockRate := sampleRate / float64(cfg.blockSize)
	for i := range e.smoothers {
		e.smoothers[i].Configure(cfg.smoothingMs, blockRate)
	}

	e.morphCmd.Store(packMorph(morph.SceneA))
	e.effective = rig.Effective(e.sceneA, e.sceneB, 0, rig.Macros{})
	e.chain.Set(e.effective)

	return e, nil
}

// SetMacros stores raw macro values for the next block. Non-finite values
// are sanitised; finite values are clamped to [0, 1] after smoothing.
func (e *Engine) SetMacros(m rig.Macros) {
	e.macros.store(m.Sanitize())
}

// Macros returns the raw macro values last stored.
func (e *Engine) Macros() rig.Macros {
	return e.macros.load()
}

// SetMacro stores one raw macro value and leaves the other four alone, so
// several control sources can each own a macro without overwriting the
// rest. Unknown ids are ignored.
func (e *Engine) SetMacro(id rig.Macro, v float64) {
	if id < 0 || id >= rig.NumMacros {
		return
	}

	e.macros[id].Store(rig.SanitizeMacro(v))
}

// Macro returns one raw macro value, or 0 for an unknown id.
func (e *Engine) Macro(id rig.Macro) float64 {
	if id < 0 || id >= rig.NumMacros {
		return 0
	}

	return e.macros[id].Load()
}

// SetSceneA morphs toward scene A with the scene glide.
func (e *Engine) SetSceneA() {
	e.morphCmd.Store(packMorph(morph.SceneA))
}

// SetSceneB morphs toward scene B with the scene glide.
func (e *Engine) SetSceneB() {
	e.morphCmd.Store(packMorph(morph.SceneB))
}

// SetMomentary morphs toward scene B while down and back to scene A on
// release.
func (e *Engine) SetMomentary(down bool) {
	e.morphCmd.Store(packMorph(morph.Momentary(down)))
}

// SetMorphTarget morphs toward an arbitrary weight in [0, 1] over glideMs.
func (e *Engine) SetMorphTarget(target, glideMs float64) {
	e.morphCmd.Store(packMorph(morph.Command{Target: target, GlideMs: glideMs}))
}

// ToggleBypass flips the bypass state.
func (e *Engine) ToggleBypass() {
	e.toggles.Add(1)
}

// Bypassed reports the requested bypass state.
func (e *Engine) Bypassed() bool {
	return e.toggles.Load()&1 == 1
}

// SampleRate returns the engine sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// SceneA returns the scene A preset.
func (e *Engine) SceneA() rig.Rig { return e.sceneA }

// SceneB returns the scene B preset.
func (e *Engine) SceneB() rig.Rig { return e.sceneB }

// MorphWeight returns the crossfade weight after the last processed block.
// Safe to call from any goroutine.
func (e *Engine) MorphWeight() float64 {
	return e.snap.weight.Load()
}

// Effective returns the parameter set used for the last processed block.
// It must not be called concurrently with ProcessBlock.
func (e *Engine) Effective() rig.Rig {
	return e.effective
}

// ProcessBlock processes one block: len(in) mono samples into the first
// len(in) samples of outL and outR. Shorter outputs panic.
func (e *Engine) ProcessBlock(in, outL, outR []float64) {
	n := len(in)
	if n == 0 {
		return
	}

	outL = outL[:n]
	outR = outR[:n]

	e.morph.Apply(unpackMorph(e.morphCmd.Load()))
	e.morph.Advance(n, e.sampleRate)

	m := e.smoothMacros(n)
	e.effective = rig.Effective(e.sceneA, e.sceneB, e.morph.Weight(), m)
	e.chain.Set(e.effective)

	bypass := e.toggles.Load()&1 == 1
	fade := e.crossfade && bypass != e.bypassed
	inv := 1 / float64(n)

	var peakL, peakR float64

	for i, x := range in {
		dry := x
		if !core.IsFinite(x) {
			x = 0
		}

		l, r := e.chain.Process(x)

		switch {
		case fade:
			g := float64(i+1) * inv
			if !bypass {
				g = 1 - g
			}

			l = core.Lerp(l, dry, g)
			r = core.Lerp(r, dry, g)
		case bypass:
			l, r = dry, dry
		}

		outL[i] = l
		outR[i] = r

		peakL = math.Max(peakL, math.Abs(l))
		peakR = math.Max(peakR, math.Abs(r))
	}

	e.bypassed = bypass
	e.snap.publish(e.morph, m, bypass, peakL, peakR)
}

// smoothMacros steps each macro smoother once and clamps the result. The
// smoothers run at block rate, so they are reconfigured when the block
// length changes.
func (e *Engine) smoothMacros(n int) rig.Macros {
	if n != e.smoothBlock {
		e.smoothBlock = n

		rate := e.sampleRate / float64(n)
		for i := range e.smoothers {
			e.smoothers[i].SetRate(rate)
		}
	}

	raw := e.macros.load()

	return rig.Macros{
		Touch:  e.smoothers[0].Process(raw.Touch),
		Heat:   e.smoothers[1].Process(raw.Heat),
		Motion: e.smoothers[2].Process(raw.Motion),
		Depth:  e.smoothers[3].Process(raw.Depth),
		Body:   e.smoothers[4].Process(raw.Body),
	}.Clamp()
}

// Reset clears all stage history, returns the morph to scene A and snaps
// the macro smoothers to the current raw macros. Reset is not real-time
// safe and must not run concurrently with ProcessBlock.
func (e *Engine) Reset() {
	e.chain.Reset()
	e.morph.Reset()
	e.morphCmd.Store(packMorph(morph.SceneA))

	raw := e.macros.load()
	vals := [5]float64{raw.Touch, raw.Heat, raw.Motion, raw.Depth, raw.Body}
	for i := range e.smoothers {
		e.smoothers[i].Reset(vals[i])
	}

	e.bypassed = e.Bypassed()
	e.effective = rig.Effective(e.sceneA, e.sceneB, 0, raw.Clamp())
	e.chain.Set(e.effective)

	e.snap.weight.Store(0)
	e.snap.target.Store(0)
	e.snap.bypassed.Store(e.bypassed)
	e.snap.macros.store(raw.Clamp())
	e.snap.peakL.Store(0)
	e.snap.peakR.Store(0)
}
