// Command chaincraft runs the morphing effect chain offline on WAV files or
// live on a generated source with a terminal control surface.
//
// Usage:
//
//	chaincraft render [flags] IN.wav OUT.wav
//	chaincraft live [flags]
//	chaincraft params [flags]
//	chaincraft generate [flags] OUT.wav
//	chaincraft version
//
// Flags can also be set from ~/.config/chaincraft/config.json or
// ./chaincraft.json, keyed by flag name.
//
// Examples:
//
//	chaincraft render --heat 0.6 --morph-to b --morph-at 2s dry.wav wet.wav
//	chaincraft render --scene b --analyze dry.wav wet.wav
//	chaincraft live --source pluck --midi "Launchkey"
//	chaincraft params --morph 0.5 --depth 1
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-chaincraft/internal/cli"
	"github.com/cwbudde/algo-chaincraft/rig"
)

var version = "0.1.0"

const description = "Morphing mono-in, stereo-out guitar effect chain"

// MacroFlags are the five performance macros, shared by every command that
// builds a parameter set.
type MacroFlags struct {
	Touch  float64 `help:"Touch macro (dynamics) in [0,1]." default:"0"`
	Heat   float64 `help:"Heat macro (drive) in [0,1]." default:"0"`
	Motion float64 `help:"Motion macro (modulation) in [0,1]." default:"0"`
	Depth  float64 `help:"Depth macro (reverb) in [0,1]." default:"0"`
	Body   float64 `help:"Body macro (cabinet and output) in [0,1]." default:"0"`
}

// Macros returns the flags as a macro set.
func (f MacroFlags) Macros() rig.Macros {
	return rig.Macros{Touch: f.Touch, Heat: f.Heat, Motion: f.Motion, Depth: f.Depth, Body: f.Body}
}

// CLI defines the command-line interface
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging."`
	Scenes  string `type:"existingfile" help:"JSON file with scene_a and scene_b presets." placeholder:"FILE"`

	Render   RenderCmd   `cmd:"" help:"Render a WAV file through the engine."`
	Live     LiveCmd     `cmd:"" help:"Play a generated source through the engine with a control surface."`
	Params   ParamsCmd   `cmd:"" help:"Print the effective parameter set."`
	Generate GenerateCmd `cmd:"" help:"Write a dry test signal to a WAV file."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Globals is passed to every command's Run method.
type Globals struct {
	Log    *slog.Logger
	Scenes string
}

func main() {
	var c CLI

	ctx := kong.Parse(&c,
		kong.Name("chaincraft"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/chaincraft/config.json", "chaincraft.json"),
		kong.Help(cli.StyledHelpPrinter(description)),
	)

	globals := &Globals{Log: newLogger(c.Verbose), Scenes: c.Scenes}

	if err := ctx.Run(globals); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run prints the version.
func (VersionCmd) Run() error {
	cli.PrintVersion(os.Stdout, version)
	return nil
}
