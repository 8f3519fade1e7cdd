package rig

// DriveType selects the drive stage's waveshaper.
type DriveType int

// Drive shapers.
const (
	DriveClean DriveType = iota
	DriveSoft
	DriveHard
	DriveAsym
	DriveFold
	DriveFoldSoft
)

// CharacterMode selects the character stage's modulation effect.
type CharacterMode int

// Character modes.
const (
	CharacterOff CharacterMode = iota
	CharacterChorus
	CharacterEnsemble
	CharacterTremolo
)

var driveTypeNames = [...]string{"clean", "soft", "hard", "asym", "fold", "foldsoft"}

func (t DriveType) String() string {
	if t < 0 || int(t) >= len(driveTypeNames) {
		return "unknown"
	}

	return driveTypeNames[t]
}

var characterModeNames = [...]string{"off", "chorus", "ensemble", "tremolo"}

func (m CharacterMode) String() string {
	if m < 0 || int(m) >= len(characterModeNames) {
		return "unknown"
	}

	return characterModeNames[m]
}

// Dynamics parameterises the compressor stage.
type Dynamics struct {
	Enable      bool    `json:"enable"`
	ThresholdDB float64 `json:"threshold_db"`
	Ratio       float64 `json:"ratio"`
	AttackMs    float64 `json:"attack_ms"`
	ReleaseMs   float64 `json:"release_ms"`
	MakeupDB    float64 `json:"makeup_db"`
	Mix         float64 `json:"mix"`
}

// Drive parameterises the band-limited waveshaper stage.
type Drive struct {
	Type      DriveType `json:"type"`
	PreGainDB float64   `json:"pre_gain_db"`
	Asym      float64   `json:"asym"`
	ToneTilt  float64   `json:"tone_tilt"`
	LowCutHz  float64   `json:"low_cut_hz"`
	HighCutHz float64   `json:"high_cut_hz"`
	Mix       float64   `json:"mix"`
	LevelDB   float64   `json:"level_db"`
}

// Character parameterises the chorus/tremolo stage.
type Character struct {
	Mode   CharacterMode `json:"mode"`
	RateHz float64       `json:"rate_hz"`
	Depth  float64       `json:"depth"`
	Mix    float64       `json:"mix"`
	Tone   float64       `json:"tone"`
}

// StereoSpread parameterises the mono-to-stereo split.
type StereoSpread struct {
	Width        float64 `json:"width"`
	MicroDelayMs float64 `json:"micro_delay_ms"`
}

// Space parameterises the reverb stage.
type Space struct {
	DecayS float64 `json:"decay_s"`
	Damp   float64 `json:"damp"`
	Wet    float64 `json:"wet"`
	Dry    float64 `json:"dry"`
}

// Cabinet parameterises the cabinet voicing filters.
type Cabinet struct {
	LowResHz   float64 `json:"low_res_hz"`
	HighRollHz float64 `json:"high_roll_hz"`
	Air        float64 `json:"air"`
	Mix        float64 `json:"mix"`
}

// Output parameterises the output trim and limiter.
type Output struct {
	LevelDB        float64 `json:"level_db"`
	LimThresholdDB float64 `json:"lim_threshold_db"`
	LimReleaseMs   float64 `json:"lim_release_ms"`
}

// Rig is the complete parameter set of the effect chain.
type Rig struct {
	Dynamics     Dynamics     `json:"dynamics"`
	Drive        Drive        `json:"drive"`
	Character    Character    `json:"character"`
	StereoSpread StereoSpread `json:"stereo_spread"`
	Space        Space        `json:"space"`
	Cabinet      Cabinet      `json:"cabinet"`
	Output       Output       `json:"output"`
}

// DefaultSceneA returns the base preset: soft drive, moderate room.
func DefaultSceneA() Rig {
	return Rig{
		Dynamics: Dynamics{
			Enable:      true,
			ThresholdDB: -22,
			Ratio:       2.5,
			AttackMs:    18,
			ReleaseMs:   220,
			MakeupDB:    4,
			Mix:         0.55,
		},
		Drive: Drive{
			Type:      DriveSoft,
			PreGainDB: 9,
			Asym:      0.25,
			ToneTilt:  -0.15,
			LowCutHz:  90,
			HighCutHz: 8500,
			Mix:       0.65,
			LevelDB:   0,
		},
		Character: Character{
			Mode:   CharacterChorus,
			RateHz: 0.45,
			Depth:  0.25,
			Mix:    0.30,
			Tone:   -0.10,
		},
		StereoSpread: StereoSpread{
			Width:        0.55,
			MicroDelayMs: 6.5,
		},
		Space: Space{
			DecayS: 3.2,
			Damp:   0.45,
			Wet:    0.38,
			Dry:    1.0,
		},
		Cabinet: Cabinet{
			LowResHz:   110,
			HighRollHz: 6800,
			Air:        0.30,
			Mix:        1,
		},
		Output: Output{
			LevelDB:        -3,
			LimThresholdDB: -6,
			LimReleaseMs:   160,
		},
	}
}

// DefaultSceneB returns the "bloomed" preset: scene A with asymmetric,
// hotter drive, a longer and wetter tail and a wider stereo image.
func DefaultSceneB() Rig {
	r := DefaultSceneA()
	r.Drive.Type = DriveAsym
	r.Drive.PreGainDB = 14
	r.Space.DecayS = 6.8
	r.Space.Wet = 0.52
	r.StereoSpread.Width = 0.75
	r.StereoSpread.MicroDelayMs = 9.0
	r.Output.LevelDB = -2

	return r
}
