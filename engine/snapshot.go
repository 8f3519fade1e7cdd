package engine

import (
	"sync/atomic"

	"github.com/cwbudde/algo-chaincraft/morph"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// Snapshot is a point-in-time view of the engine for meters and UIs.
type Snapshot struct {
	Weight   float64
	Target   float64
	Bypassed bool
	Macros   rig.Macros // smoothed and clamped
	PeakL    float64    // block peak, left
	PeakR    float64    // block peak, right
	Blocks   uint64     // blocks processed since construction
}

// published holds the Snapshot fields as atomics. Each field is written
// once per block by the audio goroutine; a reader may see fields from two
// adjacent blocks, which is fine for display.
type published struct {
	weight   atomicFloat
	target   atomicFloat
	bypassed atomic.Bool
	macros   macroSlots
	peakL    atomicFloat
	peakR    atomicFloat
	blocks   atomic.Uint64
}

func (p *published) publish(c *morph.Controller, m rig.Macros, bypassed bool, peakL, peakR float64) {
	p.weight.Store(c.Weight())
	p.target.Store(c.Target())
	p.bypassed.Store(bypassed)
	p.macros.store(m)
	p.peakL.Store(peakL)
	p.peakR.Store(peakR)
	p.blocks.Add(1)
}

// Snapshot returns the state published by the last processed block. Safe to
// call from any goroutine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Weight:   e.snap.weight.Load(),
		Target:   e.snap.target.Load(),
		Bypassed: e.snap.bypassed.Load(),
		Macros:   e.snap.macros.load(),
		PeakL:    e.snap.peakL.Load(),
		PeakR:    e.snap.peakR.Load(),
		Blocks:   e.snap.blocks.Load(),
	}
}
