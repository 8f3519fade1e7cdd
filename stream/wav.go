package stream

import (
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// ReadWAV decodes a WAV stream. The caller closes the returned streamer.
//
// Samples come back on the scale WriteWAV encodes with, so a file written
// by WriteWAV reads back at its original level.
func ReadWAV(r io.Reader) (beep.StreamSeekCloser, beep.Format, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("stream: decode wav: %w", err)
	}

	if g := decodeGain(format.Precision); g != 1 {
		return &scaledDecoder{StreamSeekCloser: s, gain: g}, format, nil
	}

	return s, format, nil
}

// decodeGain corrects the beep/wav decoder, which divides signed 16- and
// 24-bit samples by 2^bits-1 while the encoder multiplies by 2^(bits-1)-1.
// 8-bit samples are unsigned and decode at full scale.
func decodeGain(precision int) float64 {
	if precision != 2 && precision != 3 {
		return 1
	}

	bits := 8 * precision

	return (math.Exp2(float64(bits)) - 1) / (math.Exp2(float64(bits-1)) - 1)
}

type scaledDecoder struct {
	beep.StreamSeekCloser

	gain float64
}

func (d *scaledDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.StreamSeekCloser.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= d.gain
		samples[i][1] *= d.gain
	}

	return n, ok
}

// WriteWAV encodes s as 16-bit stereo at sampleRate.
func WriteWAV(w io.WriteSeeker, s beep.Streamer, sampleRate beep.SampleRate) error {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("stream: encode wav: %w", err)
	}

	return nil
}

// Mono returns a streamer yielding the samples of data on both channels.
func Mono(data []float64) beep.Streamer {
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(data) {
			return 0, false
		}

		n := min(len(samples), len(data)-pos)
		for i := range n {
			samples[i] = [2]float64{data[pos+i], data[pos+i]}
		}

		pos += n

		return n, true
	})
}

// Collect drains s into left and right sample slices.
func Collect(s beep.Streamer) (left, right []float64, err error) {
	buf := make([][2]float64, 512)

	for {
		n, ok := s.Stream(buf)
		for _, v := range buf[:n] {
			left = append(left, v[0])
			right = append(right, v[1])
		}

		if !ok {
			break
		}
	}

	return left, right, s.Err()
}
