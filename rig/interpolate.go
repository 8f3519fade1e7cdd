package rig

import "github.com/cwbudde/algo-chaincraft/dsp/core"

// discreteSwitch is the eased weight at which discrete fields flip from a to
// b. Smoothstep is symmetric, so this is also the raw weight 0.5.
const discreteSwitch = 0.5

// Interpolate crossfades a and b at weight t. t is clamped to [0, 1] and
// eased with smoothstep before use. Numeric fields are lerped; discrete
// fields (drive type, character mode, dynamics enable) take a's value below
// the switch point and b's value from it on, so they never hold an
// intermediate value.
func Interpolate(a, b Rig, t float64) Rig {
	t = core.Smoothstep(t)
	useB := t >= discreteSwitch

	var r Rig

	r.Dynamics = Dynamics{
		Enable:      pick(useB, a.Dynamics.Enable, b.Dynamics.Enable),
		ThresholdDB: core.Lerp(a.Dynamics.ThresholdDB, b.Dynamics.ThresholdDB, t),
		Ratio:       core.Lerp(a.Dynamics.Ratio, b.Dynamics.Ratio, t),
		AttackMs:    core.Lerp(a.Dynamics.AttackMs, b.Dynamics.AttackMs, t),
		ReleaseMs:   core.Lerp(a.Dynamics.ReleaseMs, b.Dynamics.ReleaseMs, t),
		MakeupDB:    core.Lerp(a.Dynamics.MakeupDB, b.Dynamics.MakeupDB, t),
		Mix:         core.Lerp(a.Dynamics.Mix, b.Dynamics.Mix, t),
	}

	r.Drive = Drive{
		Type:      pick(useB, a.Drive.Type, b.Drive.Type),
		PreGainDB: core.Lerp(a.Drive.PreGainDB, b.Drive.PreGainDB, t),
		Asym:      core.Lerp(a.Drive.Asym, b.Drive.Asym, t),
		ToneTilt:  core.Lerp(a.Drive.ToneTilt, b.Drive.ToneTilt, t),
		LowCutHz:  core.Lerp(a.Drive.LowCutHz, b.Drive.LowCutHz, t),
		HighCutHz: core.Lerp(a.Drive.HighCutHz, b.Drive.HighCutHz, t),
		Mix:       core.Lerp(a.Drive.Mix, b.Drive.Mix, t),
		LevelDB:   core.Lerp(a.Drive.LevelDB, b.Drive.LevelDB, t),
	}

	r.Character = Character{
		Mode:   pick(useB, a.Character.Mode, b.Character.Mode),
		RateHz: core.Lerp(a.Character.RateHz, b.Character.RateHz, t),
		Depth:  core.Lerp(a.Character.Depth, b.Character.Depth, t),
		Mix:    core.Lerp(a.Character.Mix, b.Character.Mix, t),
		Tone:   core.Lerp(a.Character.Tone, b.Character.Tone, t),
	}

	r.StereoSpread = StereoSpread{
		Width:        core.Lerp(a.StereoSpread.Width, b.StereoSpread.Width, t),
		MicroDelayMs: core.Lerp(a.StereoSpread.MicroDelayMs, b.StereoSpread.MicroDelayMs, t),
	}

	r.Space = Space{
		DecayS: core.Lerp(a.Space.DecayS, b.Space.DecayS, t),
		Damp:   core.Lerp(a.Space.Damp, b.Space.Damp, t),
		Wet:    core.Lerp(a.Space.Wet, b.Space.Wet, t),
		Dry:    core.Lerp(a.Space.Dry, b.Space.Dry, t),
	}

	r.Cabinet = Cabinet{
		LowResHz:   core.Lerp(a.Cabinet.LowResHz, b.Cabinet.LowResHz, t),
		HighRollHz: core.Lerp(a.Cabinet.HighRollHz, b.Cabinet.HighRollHz, t),
		Air:        core.Lerp(a.Cabinet.Air, b.Cabinet.Air, t),
		Mix:        core.Lerp(a.Cabinet.Mix, b.Cabinet.Mix, t),
	}

	r.Output = Output{
		LevelDB:        core.Lerp(a.Output.LevelDB, b.Output.LevelDB, t),
		LimThresholdDB: core.Lerp(a.Output.LimThresholdDB, b.Output.LimThresholdDB, t),
		LimReleaseMs:   core.Lerp(a.Output.LimReleaseMs, b.Output.LimReleaseMs, t),
	}

	return r
}

func pick[T any](useB bool, a, b T) T {
	if useB {
		return b
	}

	return a
}
