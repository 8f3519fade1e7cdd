package engine

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/morph"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// atomicFloat is a float64 stored as its IEEE bits.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Load() float64   { return math.Float64frombits(f.bits.Load()) }
func (f *atomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

// macroSlots is the shared raw macro state, indexed by rig.Macro.
type macroSlots [rig.NumMacros]atomicFloat

func (s *macroSlots) store(m rig.Macros) {
	for id := range rig.NumMacros {
		s[id].Store(m.Get(rig.Macro(id)))
	}
}

func (s *macroSlots) load() rig.Macros {
	var m rig.Macros
	for id := range rig.NumMacros {
		m.Set(rig.Macro(id), s[id].Load())
	}

	return m
}

// packMorph packs a morph command into one word so the audio side can never
// observe a target from one command with the glide of another.
func packMorph(cmd morph.Command) uint64 {
	target := core.Clamp01(cmd.Target)
	glide := core.Clamp(cmd.GlideMs, 0, math.MaxFloat32)

	return uint64(math.Float32bits(float32(target)))<<32 | uint64(math.Float32bits(float32(glide)))
}

func unpackMorph(v uint64) morph.Command {
	return morph.Command{
		Target:  float64(math.Float32frombits(uint32(v >> 32))),
		GlideMs: float64(math.Float32frombits(uint32(v))),
	}
}
