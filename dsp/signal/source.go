package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

// Source is an endless mono signal that fills caller-owned buffers.
type Source interface {
	Fill(buf []float64)
}

// Sine is a streaming sine oscillator.
type Sine struct {
	phase     float64
	inc       float64
	amplitude float64
}

// NewSine returns a sine source at freqHz.
func NewSine(sampleRate, freqHz, amplitude float64) *Sine {
	inc := 0.0
	if sampleRate > 0 {
		inc = 2 * math.Pi * freqHz / sampleRate
	}

	return &Sine{inc: inc, amplitude: amplitude}
}

// Fill writes the next len(buf) samples.
func (s *Sine) Fill(buf []float64) {
	for i := range buf {
		buf[i] = s.amplitude * math.Sin(s.phase)

		s.phase += s.inc
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}

// Noise is a streaming deterministic white-noise source.
type Noise struct {
	rng       *rand.Rand
	amplitude float64
}

// NewNoise returns a white-noise source in [-amplitude, amplitude].
func NewNoise(amplitude float64, seed int64) *Noise {
	return &Noise{rng: newRand(seed), amplitude: amplitude}
}

// Fill writes the next len(buf) samples.
func (n *Noise) Fill(buf []float64) {
	for i := range buf {
		buf[i] = (n.rng.Float64()*2 - 1) * n.amplitude
	}
}

// pluckNotes is a short minor-pentatonic phrase (Hz) the pluck source cycles.
var pluckNotes = [...]float64{110, 130.81, 146.83, 164.81, 196, 220, 196, 146.83}

const (
	pluckIntervalSec = 0.45
	pluckDecay       = 0.996
	pluckAmplitude   = 0.6
)

// Pluck is a Karplus-Strong plucked string that retriggers on a fixed
// interval and walks a short note phrase. The string buffer is sized for
// the lowest note at construction.
type Pluck struct {
	sampleRate float64
	rng        *rand.Rand

	buf    []float64
	period int
	pos    int

	interval int
	elapsed  int
	note     int
}

// NewPluck returns a pluck source at sampleRate.
func NewPluck(sampleRate float64, seed int64) (*Pluck, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("pluck: %w", err)
	}

	lowest := pluckNotes[0]
	for _, f := range pluckNotes {
		lowest = math.Min(lowest, f)
	}

	p := &Pluck{
		sampleRate: sampleRate,
		rng:        newRand(seed),
		buf:        make([]float64, int(math.Ceil(sampleRate/lowest))+1),
		interval:   int(pluckIntervalSec * sampleRate),
	}
	p.trigger()

	return p, nil
}

// Fill writes the next len(buf) samples.
func (p *Pluck) Fill(out []float64) {
	for i := range out {
		if p.elapsed >= p.interval {
			p.trigger()
		}

		next := (p.pos + 1) % p.period
		y := p.buf[p.pos]
		p.buf[p.pos] = pluckDecay * 0.5 * (y + p.buf[next])
		p.pos = next
		p.elapsed++

		out[i] = y
	}
}

func (p *Pluck) trigger() {
	f := pluckNotes[p.note%len(pluckNotes)]
	p.note++

	p.period = int(math.Round(p.sampleRate / f))
	if p.period > len(p.buf) {
		p.period = len(p.buf)
	}

	for i := range p.period {
		p.buf[i] = (p.rng.Float64()*2 - 1) * pluckAmplitude
	}

	p.pos = 0
	p.elapsed = 0
}
