// Package delay provides a fixed-capacity fractional delay line.
package delay

import (
	"fmt"
	"math"
)

// Line is a circular delay line with a fixed capacity and a fractional,
// linearly interpolated read position.
//
// The capacity is set at construction; SetDelay clamps into it so the line
// never allocates after New.
type Line struct {
	buffer   []float64
	writePos int

	delay float64
	whole int
	frac  float64
}

// New returns a delay line holding up to size samples of history.
func New(size int) (*Line, error) {
	if size <= 1 {
		return nil, fmt.Errorf("delay: size must be > 1: %d", size)
	}

	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns the internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// MaxDelay returns the largest delay in samples SetDelay accepts.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - 1)
}

// SetDelay sets the read delay in samples, clamped to [0, MaxDelay].
// A delay of 0 reads the sample written by the most recent Write.
func (d *Line) SetDelay(samples float64) {
	if !(samples > 0) {
		samples = 0
	}

	if max := d.MaxDelay(); samples > max {
		samples = max
	}

	d.delay = samples
	whole := math.Floor(samples)
	d.whole = int(whole)
	d.frac = samples - whole
}

// Delay returns the current delay in samples.
func (d *Line) Delay() float64 { return d.delay }

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample at the configured delay.
func (d *Line) Read() float64 {
	a := d.tap(d.whole)
	if d.frac == 0 {
		return a
	}

	b := d.tap(d.whole + 1)

	return a + (b-a)*d.frac
}

// ReadAt reads an arbitrary fractional delay without changing the configured
// one. Used by modulated effects that move the tap every sample.
func (d *Line) ReadAt(samples float64) float64 {
	if !(samples > 0) {
		samples = 0
	}

	if max := d.MaxDelay() - 1; samples > max {
		samples = max
	}

	p := int(samples)
	t := samples - float64(p)
	a := d.tap(p)
	b := d.tap(p + 1)

	return a + (b-a)*t
}

// Reset clears the line state. The configured delay is kept.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}

	d.writePos = 0
}

// tap returns the sample written n writes ago (0 = most recent).
func (d *Line) tap(n int) float64 {
	size := len(d.buffer)
	idx := d.writePos - 1 - n
	if idx < 0 {
		idx += size
	}

	return d.buffer[idx]
}
