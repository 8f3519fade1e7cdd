package block

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/filter/svf"
	"github.com/cwbudde/algo-chaincraft/rig"
)

const (
	driveFilterRes = 0.2
	driveAsymScale = 0.15
	driveTiltScale = 0.15
)

// Drive is the waveshaper stage. The input is band-limited by a high-pass
// at LowCutHz and a low-pass at HighCutHz, gained up, given a small
// asymmetric cubic term, shaped, tilted and blended back with the dry input
// before the output trim.
type Drive struct {
	hp *svf.Filter
	lp *svf.Filter

	shape rig.DriveType
	pre   float64
	asym  float64
	tilt  float64
	mix   float64
	level float64
}

// NewDrive creates the drive stage.
func NewDrive(sampleRate float64) (*Drive, error) {
	hp, err := svf.New(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("drive block: %w", err)
	}

	lp, err := svf.New(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("drive block: %w", err)
	}

	hp.SetRes(driveFilterRes)
	lp.SetRes(driveFilterRes)

	return &Drive{hp: hp, lp: lp, shape: rig.DriveSoft, pre: 1, level: 1}, nil
}

// Set applies the block's parameters.
func (d *Drive) Set(p rig.Drive) {
	d.hp.SetFreq(p.LowCutHz)
	d.lp.SetFreq(p.HighCutHz)

	d.shape = p.Type
	d.pre = core.DBToLinear(rig.RangePreGainDB.Clamp(p.PreGainDB))
	d.asym = rig.RangeBipolar.Clamp(p.Asym)
	d.tilt = rig.RangeBipolar.Clamp(p.ToneTilt)
	d.mix = core.Clamp01(p.Mix)
	d.level = core.DBToLinear(rig.RangeDriveLevelDB.Clamp(p.LevelDB))
}

// Process runs one sample.
func (d *Drive) Process(x float64) float64 {
	y := d.lp.ProcessLow(d.hp.ProcessHigh(x))

	y *= d.pre
	y += d.asym * driveAsymScale * y * y * y

	s := Shape(d.shape, y)
	s *= 1 - driveTiltScale*d.tilt

	return core.Lerp(x, s, d.mix) * d.level
}

// Reset clears the band-limiting filters.
func (d *Drive) Reset() {
	d.hp.Reset()
	d.lp.Reset()
}

// Shape applies the waveshaper selected by t. Unknown types fall back to
// the tanh soft clip.
func Shape(t rig.DriveType, y float64) float64 {
	switch t {
	case rig.DriveClean:
		return y
	case rig.DriveHard:
		return core.Clamp(y, -1, 1)
	case rig.DriveAsym:
		s := math.Tanh(1.2 * y)
		return core.Clamp(s+0.1*y, -1.2, 1.2)
	case rig.DriveFold:
		return fold(y)
	case rig.DriveFoldSoft:
		return math.Tanh(fold(1.3 * y))
	default:
		return math.Tanh(y)
	}
}

// fold is a triangular wavefolder: identity on [-1, 1], reflecting at ±1
// with period 4, so the output stays in [-1, 1] for any finite input.
func fold(x float64) float64 {
	t := math.Mod(x+1, 4)
	if t < 0 {
		t += 4
	}

	if t > 2 {
		t = 4 - t
	}

	return t - 1
}
