package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-chaincraft/engine"
	"github.com/cwbudde/algo-chaincraft/internal/cli"
	"github.com/cwbudde/algo-chaincraft/measure/analysis"
	"github.com/cwbudde/algo-chaincraft/stream"
)

// RenderCmd renders a WAV file offline.
type RenderCmd struct {
	MacroFlags `embed:""`

	Scene   string        `enum:"a,b" default:"a" help:"Scene at the start of the render (a or b)."`
	MorphTo string        `enum:"none,a,b" default:"none" help:"Scene to morph to during the render (none, a or b)."`
	MorphAt time.Duration `default:"1s" help:"Time of the morph."`
	Bypass  bool          `help:"Render with the effect bypassed (dry copy)."`
	Block   int           `default:"64" help:"Engine block size in samples."`
	Tail    time.Duration `default:"2s" help:"Silence rendered after the input to let tails ring out."`
	Analyze bool          `help:"Print an analysis of the rendered audio."`

	In  string `arg:"" type:"existingfile" help:"Input WAV file (left channel is used)."`
	Out string `arg:"" type:"path" help:"Output WAV file (16-bit stereo)."`
}

// Run renders In to Out.
func (r *RenderCmd) Run(g *Globals) error {
	in, err := os.Open(r.In)
	if err != nil {
		return err
	}
	defer in.Close()

	src, format, err := stream.ReadWAV(in)
	if err != nil {
		return err
	}
	defer src.Close()

	sr := float64(format.SampleRate)

	eng, err := newEngine(sr, g.Scenes, engine.WithBlockSize(r.Block), engine.WithBypassCrossfade(!r.Bypass))
	if err != nil {
		return err
	}

	r.prime(eng)

	proc, err := stream.NewProcessor(eng, src,
		stream.WithBlockSize(r.Block),
		stream.WithTail(format.SampleRate.N(r.Tail)),
		stream.WithBlockHook(r.morphHook(eng, format.SampleRate.N(r.MorphAt))),
	)
	if err != nil {
		return err
	}

	g.Log.Debug("render", "in", r.In, "out", r.Out, "rate", sr, "channels", format.NumChannels,
		"samples", src.Len(), "block", r.Block)

	out, err := os.Create(r.Out)
	if err != nil {
		return err
	}

	rec := &recorder{sub: proc, keep: r.Analyze}
	start := time.Now()

	if err := stream.WriteWAV(out, rec, format.SampleRate); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	g.Log.Info("rendered", "out", r.Out, "samples", proc.Position(),
		"seconds", float64(proc.Position())/sr, "took", time.Since(start).Round(time.Millisecond))

	if !r.Analyze {
		return nil
	}

	rep, err := analysis.AnalyzeStereo(rec.left, rec.right, sr)
	if err != nil {
		return err
	}

	fmt.Println(cli.HeaderStyle.Render("Analysis"))

	return rep.WriteText(os.Stdout)
}

// prime applies the start state before the first block. The engine starts
// at scene A, so scene B is reached with the shortest glide.
func (r *RenderCmd) prime(eng *engine.Engine) {
	eng.SetMacros(r.Macros())

	if r.Scene == "b" {
		eng.SetMorphTarget(1, 0)
	}

	if r.Bypass {
		eng.ToggleBypass()
	}
}

// morphHook returns a block hook that starts the morph at the first block
// at or after sample at.
func (r *RenderCmd) morphHook(eng *engine.Engine, at int) stream.BlockHook {
	if r.MorphTo == "none" {
		return nil
	}

	fired := false

	return func(pos int) {
		if fired || pos < at {
			return
		}

		fired = true

		if r.MorphTo == "b" {
			eng.SetSceneB()
		} else {
			eng.SetSceneA()
		}
	}
}

// recorder passes a stream through, optionally keeping a copy.
type recorder struct {
	sub         beep.Streamer
	keep        bool
	left, right []float64
}

func (r *recorder) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.sub.Stream(samples)

	if r.keep {
		for _, s := range samples[:n] {
			r.left = append(r.left, s[0])
			r.right = append(r.right, s[1])
		}
	}

	return n, ok
}

func (r *recorder) Err() error {
	return r.sub.Err()
}
