package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/cwbudde/algo-chaincraft/control/midi"
	"github.com/cwbudde/algo-chaincraft/dsp/signal"
	"github.com/cwbudde/algo-chaincraft/engine"
	"github.com/cwbudde/algo-chaincraft/internal/host"
	"github.com/cwbudde/algo-chaincraft/internal/ui"
)

// LiveCmd plays a generated source through the engine.
type LiveCmd struct {
	MacroFlags `embed:""`

	Rate   int           `default:"48000" help:"Sample rate in Hz."`
	Block  int           `default:"256" help:"Engine block size in samples."`
	Buffer time.Duration `default:"40ms" help:"Audio device buffer."`
	Source string        `enum:"pluck,sine,noise" default:"pluck" help:"Test source (pluck, sine or noise)."`
	Freq   float64       `default:"220" help:"Sine frequency in Hz."`
	Seed   int64         `default:"1" help:"Seed of the pluck and noise sources."`
	MIDI   string        `name:"midi" help:"MIDI input port name (substring match)." placeholder:"PORT"`
}

// Run plays until the control surface quits.
func (l *LiveCmd) Run(g *Globals) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("live needs an interactive terminal")
	}

	sr := float64(l.Rate)

	eng, err := newEngine(sr, g.Scenes, engine.WithBlockSize(l.Block))
	if err != nil {
		return err
	}

	eng.SetMacros(l.Macros())

	src, desc, err := l.source(sr)
	if err != nil {
		return err
	}

	renderer, err := host.NewRenderer(eng, src, l.Block)
	if err != nil {
		return err
	}

	player, err := host.NewPlayer(renderer, l.Rate, l.Buffer)
	if err != nil {
		return err
	}
	defer player.Close()

	status := fmt.Sprintf("%s · %d Hz · block %d", desc, l.Rate, l.Block)

	if l.MIDI != "" {
		stop, err := l.listen(eng)
		if err != nil {
			return err
		}
		defer stop()

		status += " · midi " + l.MIDI
	}

	g.Log.Debug("live", "rate", l.Rate, "block", l.Block, "buffer", l.Buffer, "source", l.Source)

	player.Start()

	if _, err := tea.NewProgram(ui.NewModel(eng, status), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("control surface: %w", err)
	}

	return player.Err()
}

func (l *LiveCmd) source(sr float64) (signal.Source, string, error) {
	switch l.Source {
	case "sine":
		return signal.NewSine(sr, l.Freq, 0.5), fmt.Sprintf("sine %g Hz", l.Freq), nil
	case "noise":
		return signal.NewNoise(0.3, l.Seed), "noise", nil
	default:
		p, err := signal.NewPluck(sr, l.Seed)
		if err != nil {
			return nil, "", err
		}

		return p, "pluck", nil
	}
}

func (l *LiveCmd) listen(eng *engine.Engine) (stop func(), err error) {
	in, err := midi.FindInPort(l.MIDI)
	if err != nil {
		return nil, err
	}

	mapper, err := midi.NewMapper(eng, midi.DefaultMapping())
	if err != nil {
		return nil, err
	}

	stopListen, err := mapper.Listen(in)
	if err != nil {
		return nil, err
	}

	return func() {
		stopListen()
		midi.Close()
	}, nil
}
