package stream

import (
	"errors"
	"fmt"

	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-chaincraft/engine"
)

// DefaultBlockSize is the engine block length used when none is given.
const DefaultBlockSize = 64

// ErrInvalidBlockSize is returned for a block size below 1.
var ErrInvalidBlockSize = errors.New("stream: invalid block size")

// Option configures a Processor.
type Option func(*Processor) error

// WithBlockSize sets the number of samples handed to ProcessBlock at once.
func WithBlockSize(n int) Option {
	return func(p *Processor) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidBlockSize, n)
		}

		p.blockSize = n

		return nil
	}
}

// WithTail keeps streaming silence through the engine for n samples after
// the source drains, so reverb and delay tails are not cut off.
func WithTail(n int) Option {
	return func(p *Processor) error {
		p.tail = max(n, 0)
		return nil
	}
}

// BlockHook is called before each engine block with the index of the first
// sample of that block. It runs on the streaming goroutine.
type BlockHook func(pos int)

// WithBlockHook installs a hook used for scripted control changes, such as
// a morph at a fixed time in an offline render.
func WithBlockHook(h BlockHook) Option {
	return func(p *Processor) error {
		p.hook = h
		return nil
	}
}

// Processor is a beep.Streamer producing the engine's stereo output for a
// mono source. Only the left channel of the source is used.
type Processor struct {
	eng       *engine.Engine
	src       beep.Streamer
	blockSize int
	tail      int
	hook      BlockHook

	srcBuf [][2]float64
	in     []float64
	outL   []float64
	outR   []float64

	head    int // next unread sample in outL/outR
	avail   int // valid samples in outL/outR
	pos     int // samples processed so far
	drained bool
}

// NewProcessor wraps src. The engine must not be driven by anyone else
// while the processor streams.
func NewProcessor(eng *engine.Engine, src beep.Streamer, opts ...Option) (*Processor, error) {
	if eng == nil || src == nil {
		return nil, errors.New("stream: nil engine or source")
	}

	p := &Processor{eng: eng, src: src, blockSize: DefaultBlockSize}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.srcBuf = make([][2]float64, p.blockSize)
	p.in = make([]float64, p.blockSize)
	p.outL = make([]float64, p.blockSize)
	p.outR = make([]float64, p.blockSize)

	return p, nil
}

// Stream fills samples with processed audio. It returns (0, false) once the
// source and the tail are exhausted.
func (p *Processor) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if p.head == p.avail && !p.refill() {
			break
		}

		k := copy2(samples[n:], p.outL[p.head:p.avail], p.outR[p.head:p.avail])
		p.head += k
		n += k
	}

	return n, n > 0
}

// Err returns the source's error, if any.
func (p *Processor) Err() error {
	return p.src.Err()
}

// Position returns the number of samples processed so far.
func (p *Processor) Position() int { return p.pos }

// refill processes the next block. It reports false when nothing is left.
func (p *Processor) refill() bool {
	got := 0
	if !p.drained {
		got = p.pull()
	}

	if got < p.blockSize && p.drained && p.tail > 0 {
		k := min(p.blockSize-got, p.tail)
		clear(p.in[got : got+k])
		got += k
		p.tail -= k
	}

	if got == 0 {
		return false
	}

	if p.hook != nil {
		p.hook(p.pos)
	}

	p.eng.ProcessBlock(p.in[:got], p.outL, p.outR)
	p.head, p.avail = 0, got
	p.pos += got

	return true
}

// pull reads up to one block from the source into p.in.
func (p *Processor) pull() int {
	got := 0
	for got < p.blockSize {
		k, ok := p.src.Stream(p.srcBuf[got:])
		got += k

		if !ok {
			p.drained = true
			break
		}
	}

	for i := range got {
		p.in[i] = p.srcBuf[i][0]
	}

	return got
}

func copy2(dst [][2]float64, l, r []float64) int {
	n := min(len(dst), len(l))
	for i := range n {
		dst[i] = [2]float64{l[i], r[i]}
	}

	return n
}
