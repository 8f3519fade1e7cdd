package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/dsp/signal"
	"github.com/cwbudde/algo-chaincraft/stream"
)

// GenerateCmd writes a dry test signal for render.
type GenerateCmd struct {
	Source   string        `enum:"pluck,sine,noise" default:"pluck" help:"Signal (pluck, sine or noise)."`
	Rate     int           `default:"48000" help:"Sample rate in Hz."`
	Duration time.Duration `default:"5s" help:"Length of the signal."`
	Freq     float64       `default:"220" help:"Sine frequency in Hz."`
	Seed     int64         `default:"1" help:"Seed of the pluck and noise signals."`
	Peak     float64       `default:"0.7" help:"Peak amplitude after normalisation."`

	Out string `arg:"" type:"path" help:"Output WAV file."`
}

// Run writes the signal.
func (c *GenerateCmd) Run(g *Globals) error {
	if err := core.CheckSampleRate(float64(c.Rate)); err != nil {
		return err
	}

	gen := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(float64(c.Rate))},
		signal.WithSeed(c.Seed),
	)

	n := beep.SampleRate(c.Rate).N(c.Duration)

	var (
		data []float64
		err  error
	)

	switch c.Source {
	case "sine":
		data, err = gen.Sine(c.Freq, 1, n)
	case "noise":
		data, err = gen.WhiteNoise(1, n)
	default:
		data, err = gen.Pluck(n)
	}

	if err != nil {
		return fmt.Errorf("generate %s: %w", c.Source, err)
	}

	if data, err = signal.Normalize(data, c.Peak); err != nil {
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return err
	}

	if err := stream.WriteWAV(f, stream.Mono(data), beep.SampleRate(c.Rate)); err != nil {
		f.Close()
		return err
	}

	g.Log.Info("generated", "out", c.Out, "source", c.Source, "samples", n)

	return f.Close()
}
