// Package host drives the engine in real time: Renderer pulls a generated
// source through the engine and encodes interleaved float32 little-endian
// stereo, and Player hands that stream to the system audio device via oto.
package host

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/signal"
	"github.com/cwbudde/algo-chaincraft/engine"
)

const (
	channels       = 2
	bytesPerSample = 4
	bytesPerFrame  = channels * bytesPerSample
)

// Renderer is an io.Reader of processed audio. Read never fails and never
// returns io.EOF; the source is endless.
type Renderer struct {
	eng *engine.Engine
	src signal.Source

	in   []float64
	outL []float64
	outR []float64

	head  int
	avail int

	// partial holds the bytes of a frame split across two Reads.
	partial  [bytesPerFrame]byte
	partialN int
	partialO int
}

// NewRenderer returns a renderer processing src in blockSize chunks.
func NewRenderer(eng *engine.Engine, src signal.Source, blockSize int) (*Renderer, error) {
	if eng == nil || src == nil {
		return nil, errors.New("host: nil engine or source")
	}

	if blockSize < 1 {
		return nil, errors.New("host: block size must be positive")
	}

	return &Renderer{
		eng:  eng,
		src:  src,
		in:   make([]float64, blockSize),
		outL: make([]float64, blockSize),
		outR: make([]float64, blockSize),
	}, nil
}

// Read fills p with float32 LE stereo frames.
func (r *Renderer) Read(p []byte) (int, error) {
	n := 0

	for r.partialO < r.partialN && n < len(p) {
		p[n] = r.partial[r.partialO]
		n++
		r.partialO++
	}

	for len(p)-n >= bytesPerFrame {
		l, rr := r.next()
		putFrame(p[n:], l, rr)
		n += bytesPerFrame
	}

	if rest := len(p) - n; rest > 0 {
		l, rr := r.next()
		putFrame(r.partial[:], l, rr)
		r.partialN = bytesPerFrame
		r.partialO = copy(p[n:], r.partial[:rest])
		n += r.partialO
	}

	return n, nil
}

func (r *Renderer) next() (l, rr float64) {
	if r.head == r.avail {
		r.src.Fill(r.in)
		r.eng.ProcessBlock(r.in, r.outL, r.outR)
		r.head, r.avail = 0, len(r.in)
	}

	l, rr = r.outL[r.head], r.outR[r.head]
	r.head++

	return l, rr
}

func putFrame(b []byte, l, r float64) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(l)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(r)))
}
