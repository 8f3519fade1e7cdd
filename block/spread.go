package block

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/delay"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// rightDelayRatio offsets the right tap against the left one.
const rightDelayRatio = 0.85

// StereoSpread splits the mono signal into decorrelated left and right
// channels with two short delay lines.
type StereoSpread struct {
	sampleRate float64

	left  *delay.Line
	right *delay.Line

	width float64
}

// NewStereoSpread creates the mono-to-stereo stage. Both lines are sized for
// the longest supported micro delay.
func NewStereoSpread(sampleRate float64) (*StereoSpread, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("stereo spread block: %w", err)
	}

	size := int(math.Ceil(rig.RangeMicroDelayMs.Max*sampleRate/1000)) + 2

	left, err := delay.New(size)
	if err != nil {
		return nil, fmt.Errorf("stereo spread block: %w", err)
	}

	right, err := delay.New(size)
	if err != nil {
		return nil, fmt.Errorf("stereo spread block: %w", err)
	}

	return &StereoSpread{sampleRate: sampleRate, left: left, right: right}, nil
}

// Set applies the block's parameters.
func (s *StereoSpread) Set(p rig.StereoSpread) {
	s.width = core.Clamp01(p.Width)

	d := rig.RangeMicroDelayMs.Clamp(p.MicroDelayMs) * s.sampleRate / 1000
	s.left.SetDelay(d)
	s.right.SetDelay(d * rightDelayRatio)
}

// Process splits one mono sample into a stereo pair.
func (s *StereoSpread) Process(x float64) (l, r float64) {
	s.left.Write(x)
	s.right.Write(x)

	return core.Lerp(x, s.left.Read(), s.width), core.Lerp(x, s.right.Read(), s.width)
}

// Reset clears both delay lines.
func (s *StereoSpread) Reset() {
	s.left.Reset()
	s.right.Reset()
}
