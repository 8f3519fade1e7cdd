package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/delay"
)

const (
	fdnSize = 8

	defaultFDNFeedback    = 0.85
	defaultFDNLPFreqHz    = 8000.0
	defaultFDNModDepthSec = 0.0015
	defaultFDNModRateHz   = 0.12

	maxFDNFeedback         = 0.999
	minFDNLPFreqHz         = 100.0
	fdnReferenceSampleRate = 44100.0
)

// Prime line lengths at the reference rate, scaled to the actual rate.
var fdnDelaySamples = [fdnSize]float64{1537, 1753, 1999, 2251, 2473, 2689, 2851, 3067}

var fdnHadamard = [fdnSize][fdnSize]float64{
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, -1, 1, -1, 1, -1, 1, -1},
	{1, 1, -1, -1, 1, 1, -1, -1},
	{1, -1, -1, 1, 1, -1, -1, 1},
	{1, 1, 1, 1, -1, -1, -1, -1},
	{1, -1, 1, -1, -1, 1, -1, 1},
	{1, 1, -1, -1, -1, -1, 1, 1},
	{1, -1, -1, 1, -1, 1, 1, -1},
}

// FDN is a stereo eight-line feedback delay network with slow delay
// modulation and one-pole damping in the loop.
//
// Even lines are fed from the left input and tapped for the left output,
// odd lines from the right. The scaled Hadamard mixing matrix is orthogonal,
// so any feedback below 1 decays.
type FDN struct {
	sampleRate float64
	feedback   float64
	lpFreqHz   float64

	lfoPhase float64
	lfoInc   float64

	delaySamples    [fdnSize]float64
	modDepthSamples float64

	lines       [fdnSize]*delay.Line
	filterState [fdnSize]float64
	dampCoeff   float64

	ioGain      float64
	matrixScale float64
}

// NewFDN creates a reverb at sampleRate with feedback 0.85 and 8 kHz damping.
func NewFDN(sampleRate float64) (*FDN, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("reverb: %w", err)
	}

	r := &FDN{
		sampleRate:      sampleRate,
		modDepthSamples: defaultFDNModDepthSec * sampleRate,
		lfoInc:          2 * math.Pi * defaultFDNModRateHz / sampleRate,
		matrixScale:     1 / math.Sqrt(fdnSize),
		ioGain:          1 / math.Sqrt(fdnSize/2),
		lpFreqHz:        -1,
	}

	scale := sampleRate / fdnReferenceSampleRate
	for i := range fdnSize {
		r.delaySamples[i] = fdnDelaySamples[i] * scale

		size := int(math.Ceil(r.delaySamples[i]+r.modDepthSamples)) + 4

		line, err := delay.New(size)
		if err != nil {
			return nil, fmt.Errorf("reverb: %w", err)
		}

		r.lines[i] = line
	}

	r.SetFeedback(defaultFDNFeedback)
	r.SetLPFreq(defaultFDNLPFreqHz)

	return r, nil
}

// SetFeedback sets the loop gain, clamped to [0, 0.999]. Larger values give
// longer tails.
func (r *FDN) SetFeedback(fb float64) {
	r.feedback = core.Clamp(fb, 0, maxFDNFeedback)
}

// SetLPFreq sets the in-loop damping cutoff in Hz, clamped to
// [100, 0.49*sampleRate].
func (r *FDN) SetLPFreq(hz float64) {
	hz = core.Clamp(hz, minFDNLPFreqHz, 0.49*r.sampleRate)
	if hz == r.lpFreqHz {
		return
	}

	r.lpFreqHz = hz
	r.dampCoeff = math.Exp(-2 * math.Pi * hz / r.sampleRate)
}

// Feedback returns the loop gain.
func (r *FDN) Feedback() float64 { return r.feedback }

// LPFreq returns the damping cutoff in Hz.
func (r *FDN) LPFreq() float64 { return r.lpFreqHz }

// Process runs one stereo sample and returns the wet left and right signals.
func (r *FDN) Process(inL, inR float64) (outL, outR float64) {
	var taps [fdnSize]float64

	for i := range fdnSize {
		phaseOffset := (2 * math.Pi * float64(i)) / fdnSize
		mod := 0.5 * (1 + math.Sin(r.lfoPhase+phaseOffset))
		taps[i] = r.lines[i].ReadAt(r.delaySamples[i] + r.modDepthSamples*mod)
	}

	r.lfoPhase += r.lfoInc
	if r.lfoPhase >= 2*math.Pi {
		r.lfoPhase -= 2 * math.Pi
	}

	for i := range fdnSize {
		mixed := 0.0
		for j := range fdnSize {
			mixed += fdnHadamard[i][j] * taps[j]
		}

		mixed *= r.matrixScale

		// One-pole low-pass: y = (1-c)*x + c*y[n-1]
		filtered := core.FlushDenormals(mixed*(1-r.dampCoeff) + r.filterState[i]*r.dampCoeff)
		r.filterState[i] = filtered

		in := inL
		if i&1 == 1 {
			in = inR
		}

		r.lines[i].Write(in*r.ioGain + filtered*r.feedback)
	}

	for i := 0; i < fdnSize; i += 2 {
		outL += taps[i]
		outR += taps[i+1]
	}

	return outL * r.ioGain, outR * r.ioGain
}

// Reset clears all delay and filter state.
func (r *FDN) Reset() {
	for i := range r.lines {
		r.lines[i].Reset()
		r.filterState[i] = 0
	}

	r.lfoPhase = 0
}

// SampleRate returns the sample rate in Hz.
func (r *FDN) SampleRate() float64 { return r.sampleRate }
