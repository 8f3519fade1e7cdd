package rig

import (
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

// Macros are the five performance controls, each nominally in [0, 1].
type Macros struct {
	Touch  float64 `json:"touch"`
	Heat   float64 `json:"heat"`
	Motion float64 `json:"motion"`
	Depth  float64 `json:"depth"`
	Body   float64 `json:"body"`
}

// Macro identifies one of the five macros.
type Macro int

// Macros in key and evaluation order.
const (
	MacroTouch Macro = iota
	MacroHeat
	MacroMotion
	MacroDepth
	MacroBody

	NumMacros = 5
)

var macroNames = [NumMacros]string{"touch", "heat", "motion", "depth", "body"}

func (id Macro) String() string {
	if id < 0 || id >= NumMacros {
		return "unknown"
	}

	return macroNames[id]
}

// Get returns the macro selected by id, or 0 for an unknown id.
func (m Macros) Get(id Macro) float64 {
	if p := m.field(id); p != nil {
		return *p
	}

	return 0
}

// Set stores v in the macro selected by id. Unknown ids are ignored.
func (m *Macros) Set(id Macro, v float64) {
	if p := m.field(id); p != nil {
		*p = v
	}
}

func (m *Macros) field(id Macro) *float64 {
	switch id {
	case MacroTouch:
		return &m.Touch
	case MacroHeat:
		return &m.Heat
	case MacroMotion:
		return &m.Motion
	case MacroDepth:
		return &m.Depth
	case MacroBody:
		return &m.Body
	}

	return nil
}

// SanitizeMacro replaces a non-finite macro value the way Sanitize does.
func SanitizeMacro(v float64) float64 { return sanitize(v) }

// Sanitize replaces non-finite values: NaN becomes 0, +Inf 1 and -Inf 0.
// Finite values are left alone; they are clamped after smoothing.
func (m Macros) Sanitize() Macros {
	return Macros{
		Touch:  sanitize(m.Touch),
		Heat:   sanitize(m.Heat),
		Motion: sanitize(m.Motion),
		Depth:  sanitize(m.Depth),
		Body:   sanitize(m.Body),
	}
}

// Clamp limits every macro to [0, 1].
func (m Macros) Clamp() Macros {
	return Macros{
		Touch:  core.Clamp01(m.Touch),
		Heat:   core.Clamp01(m.Heat),
		Motion: core.Clamp01(m.Motion),
		Depth:  core.Clamp01(m.Depth),
		Body:   core.Clamp01(m.Body),
	}
}

func sanitize(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return 1
	case math.IsInf(v, -1):
		return 0
	}

	return v
}

// ApplyMacros perturbs r with the macro map. Macros are clamped to [0, 1]
// first. Every term is zero when its macro is zero, and each macro owns a
// disjoint set of fields, so the result does not depend on evaluation
// order; the fixed order is touch, heat, motion, depth, body.
//
//	touch:  dynamics threshold -6t, ratio +1.5t², attack +6t, release +60t,
//	        makeup +3t, mix +0.2t
//	heat:   drive pre-gain +18h+12h³, asym +0.25h, tilt -0.25h²,
//	        low cut +40h², high cut -2000h³, mix +0.1h, level -3h
//	motion: character depth +0.45m, mix +0.35m, rate +0.15m, tone -0.2m
//	depth:  space wet +0.55d, decay +3.5d², damp -0.2d
//	body:   cabinet low res -20b, high roll -1400b², air +0.35b,
//	        output level -1.5b
//
// The result is not clamped; see Clamp and Effective.
func ApplyMacros(r Rig, m Macros) Rig {
	m = m.Sanitize().Clamp()

	t := m.Touch
	r.Dynamics.ThresholdDB += -6 * t
	r.Dynamics.Ratio += 1.5 * t * t
	r.Dynamics.AttackMs += 6 * t
	r.Dynamics.ReleaseMs += 60 * t
	r.Dynamics.MakeupDB += 3 * t
	r.Dynamics.Mix += 0.2 * t

	h := m.Heat
	r.Drive.PreGainDB += 18*h + 12*h*h*h
	r.Drive.Asym += 0.25 * h
	r.Drive.ToneTilt += -0.25 * h * h
	r.Drive.LowCutHz += 40 * h * h
	r.Drive.HighCutHz += -2000 * h * h * h
	r.Drive.Mix += 0.1 * h
	r.Drive.LevelDB += -3 * h

	mo := m.Motion
	r.Character.Depth += 0.45 * mo
	r.Character.Mix += 0.35 * mo
	r.Character.RateHz += 0.15 * mo
	r.Character.Tone += -0.2 * mo

	d := m.Depth
	r.Space.Wet += 0.55 * d
	r.Space.DecayS += 3.5 * d * d
	r.Space.Damp += -0.2 * d

	b := m.Body
	r.Cabinet.LowResHz += -20 * b
	r.Cabinet.HighRollHz += -1400 * b * b
	r.Cabinet.Air += 0.35 * b
	r.Output.LevelDB += -1.5 * b

	return r
}

// Effective derives the parameters for one audio block:
// Clamp(ApplyMacros(Interpolate(a, b, w), m)).
func Effective(a, b Rig, w float64, m Macros) Rig {
	return Clamp(ApplyMacros(Interpolate(a, b, w), m))
}
