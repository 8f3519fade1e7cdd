package rig

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

// ErrOutOfRange is returned by Validate for a field outside its range.
var ErrOutOfRange = errors.New("rig: field out of range")

// Range is an inclusive valid interval for a field.
type Range struct {
	Min, Max float64
}

// Clamp limits v to the range. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	return core.Clamp(v, r.Min, r.Max)
}

// Contains reports whether v is finite and inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Documented field ranges. Clamp enforces these on every block.
var (
	RangeThresholdDB    = Range{-40, 0}
	RangeRatio          = Range{1, 8}
	RangeAttackMs       = Range{1, 80}
	RangeReleaseMs      = Range{20, 600}
	RangeMakeupDB       = Range{0, 18}
	RangeUnit           = Range{0, 1}
	RangeBipolar        = Range{-1, 1}
	RangeDriveType      = Range{float64(DriveClean), float64(DriveFoldSoft)}
	RangePreGainDB      = Range{0, 36}
	RangeLowCutHz       = Range{20, 300}
	RangeHighCutHz      = Range{2000, 18000}
	RangeDriveLevelDB   = Range{-18, 18}
	RangeCharacterMode  = Range{float64(CharacterOff), float64(CharacterTremolo)}
	RangeRateHz         = Range{0.05, 8}
	RangeMicroDelayMs   = Range{0, 12}
	RangeDecayS         = Range{0.2, 12}
	RangeLowResHz       = Range{60, 180}
	RangeHighRollHz     = Range{2500, 12000}
	RangeOutputLevelDB  = Range{-60, 6}
	RangeLimThresholdDB = Range{-18, 0}
	RangeLimReleaseMs   = Range{20, 400}
)

// Field describes one numeric field of a Rig.
type Field struct {
	Group    string
	Name     string
	Range    Range
	Discrete bool
	Get      func(Rig) float64
}

// Path returns "group.name".
func (f Field) Path() string {
	return f.Group + "." + f.Name
}

var fields = []Field{
	{"dynamics", "enable", RangeUnit, true, func(r Rig) float64 { return boolToFloat(r.Dynamics.Enable) }},
	{"dynamics", "threshold_db", RangeThresholdDB, false, func(r Rig) float64 { return r.Dynamics.ThresholdDB }},
	{"dynamics", "ratio", RangeRatio, false, func(r Rig) float64 { return r.Dynamics.Ratio }},
	{"dynamics", "attack_ms", RangeAttackMs, false, func(r Rig) float64 { return r.Dynamics.AttackMs }},
	{"dynamics", "release_ms", RangeReleaseMs, false, func(r Rig) float64 { return r.Dynamics.ReleaseMs }},
	{"dynamics", "makeup_db", RangeMakeupDB, false, func(r Rig) float64 { return r.Dynamics.MakeupDB }},
	{"dynamics", "mix", RangeUnit, false, func(r Rig) float64 { return r.Dynamics.Mix }},

	{"drive", "type", RangeDriveType, true, func(r Rig) float64 { return float64(r.Drive.Type) }},
	{"drive", "pre_gain_db", RangePreGainDB, false, func(r Rig) float64 { return r.Drive.PreGainDB }},
	{"drive", "asym", RangeBipolar, false, func(r Rig) float64 { return r.Drive.Asym }},
	{"drive", "tone_tilt", RangeBipolar, false, func(r Rig) float64 { return r.Drive.ToneTilt }},
	{"drive", "low_cut_hz", RangeLowCutHz, false, func(r Rig) float64 { return r.Drive.LowCutHz }},
	{"drive", "high_cut_hz", RangeHighCutHz, false, func(r Rig) float64 { return r.Drive.HighCutHz }},
	{"drive", "mix", RangeUnit, false, func(r Rig) float64 { return r.Drive.Mix }},
	{"drive", "level_db", RangeDriveLevelDB, false, func(r Rig) float64 { return r.Drive.LevelDB }},

	{"character", "mode", RangeCharacterMode, true, func(r Rig) float64 { return float64(r.Character.Mode) }},
	{"character", "rate_hz", RangeRateHz, false, func(r Rig) float64 { return r.Character.RateHz }},
	{"character", "depth", RangeUnit, false, func(r Rig) float64 { return r.Character.Depth }},
	{"character", "mix", RangeUnit, false, func(r Rig) float64 { return r.Character.Mix }},
	{"character", "tone", RangeBipolar, false, func(r Rig) float64 { return r.Character.Tone }},

	{"stereo_spread", "width", RangeUnit, false, func(r Rig) float64 { return r.StereoSpread.Width }},
	{"stereo_spread", "micro_delay_ms", RangeMicroDelayMs, false, func(r Rig) float64 { return r.StereoSpread.MicroDelayMs }},

	{"space", "decay_s", RangeDecayS, false, func(r Rig) float64 { return r.Space.DecayS }},
	{"space", "damp", RangeUnit, false, func(r Rig) float64 { return r.Space.Damp }},
	{"space", "wet", RangeUnit, false, func(r Rig) float64 { return r.Space.Wet }},
	{"space", "dry", RangeUnit, false, func(r Rig) float64 { return r.Space.Dry }},

	{"cabinet", "low_res_hz", RangeLowResHz, false, func(r Rig) float64 { return r.Cabinet.LowResHz }},
	{"cabinet", "high_roll_hz", RangeHighRollHz, false, func(r Rig) float64 { return r.Cabinet.HighRollHz }},
	{"cabinet", "air", RangeUnit, false, func(r Rig) float64 { return r.Cabinet.Air }},
	{"cabinet", "mix", RangeUnit, false, func(r Rig) float64 { return r.Cabinet.Mix }},

	{"output", "level_db", RangeOutputLevelDB, false, func(r Rig) float64 { return r.Output.LevelDB }},
	{"output", "lim_threshold_db", RangeLimThresholdDB, false, func(r Rig) float64 { return r.Output.LimThresholdDB }},
	{"output", "lim_release_ms", RangeLimReleaseMs, false, func(r Rig) float64 { return r.Output.LimReleaseMs }},
}

// Fields returns the ordered table of every Rig field with its range.
// Discrete fields report their integer value as a float.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)

	return out
}

// Clamp returns r with every field forced into its documented range.
// Non-finite values clamp to the lower bound.
func Clamp(r Rig) Rig {
	d := &r.Dynamics
	d.ThresholdDB = RangeThresholdDB.Clamp(d.ThresholdDB)
	d.Ratio = RangeRatio.Clamp(d.Ratio)
	d.AttackMs = RangeAttackMs.Clamp(d.AttackMs)
	d.ReleaseMs = RangeReleaseMs.Clamp(d.ReleaseMs)
	d.MakeupDB = RangeMakeupDB.Clamp(d.MakeupDB)
	d.Mix = RangeUnit.Clamp(d.Mix)

	dr := &r.Drive
	dr.Type = DriveType(RangeDriveType.Clamp(float64(dr.Type)))
	dr.PreGainDB = RangePreGainDB.Clamp(dr.PreGainDB)
	dr.Asym = RangeBipolar.Clamp(dr.Asym)
	dr.ToneTilt = RangeBipolar.Clamp(dr.ToneTilt)
	dr.LowCutHz = RangeLowCutHz.Clamp(dr.LowCutHz)
	dr.HighCutHz = RangeHighCutHz.Clamp(dr.HighCutHz)
	dr.Mix = RangeUnit.Clamp(dr.Mix)
	dr.LevelDB = RangeDriveLevelDB.Clamp(dr.LevelDB)

	c := &r.Character
	c.Mode = CharacterMode(RangeCharacterMode.Clamp(float64(c.Mode)))
	c.RateHz = RangeRateHz.Clamp(c.RateHz)
	c.Depth = RangeUnit.Clamp(c.Depth)
	c.Mix = RangeUnit.Clamp(c.Mix)
	c.Tone = RangeBipolar.Clamp(c.Tone)

	st := &r.StereoSpread
	st.Width = RangeUnit.Clamp(st.Width)
	st.MicroDelayMs = RangeMicroDelayMs.Clamp(st.MicroDelayMs)

	sp := &r.Space
	sp.DecayS = RangeDecayS.Clamp(sp.DecayS)
	sp.Damp = RangeUnit.Clamp(sp.Damp)
	sp.Wet = RangeUnit.Clamp(sp.Wet)
	sp.Dry = RangeUnit.Clamp(sp.Dry)

	cb := &r.Cabinet
	cb.LowResHz = RangeLowResHz.Clamp(cb.LowResHz)
	cb.HighRollHz = RangeHighRollHz.Clamp(cb.HighRollHz)
	cb.Air = RangeUnit.Clamp(cb.Air)
	cb.Mix = RangeUnit.Clamp(cb.Mix)

	o := &r.Output
	o.LevelDB = RangeOutputLevelDB.Clamp(o.LevelDB)
	o.LimThresholdDB = RangeLimThresholdDB.Clamp(o.LimThresholdDB)
	o.LimReleaseMs = RangeLimReleaseMs.Clamp(o.LimReleaseMs)

	return r
}

// Validate reports the first field of r that is non-finite or outside its
// range. Used to reject caller-supplied scenes at construction time.
func Validate(r Rig) error {
	for _, f := range fields {
		if v := f.Get(r); !f.Range.Contains(v) {
			return fmt.Errorf("%w: %s = %g, want [%g, %g]", ErrOutOfRange, f.Path(), v, f.Range.Min, f.Range.Max)
		}
	}

	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
