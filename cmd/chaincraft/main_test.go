package main

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-chaincraft/engine"
	"github.com/cwbudde/algo-chaincraft/internal/testutil"
	"github.com/cwbudde/algo-chaincraft/rig"
	"github.com/cwbudde/algo-chaincraft/stream"
)

func testGlobals() *Globals {
	return &Globals{Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	var c CLI

	parser, err := kong.New(&c, kong.Name("chaincraft"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}

	return &c, ctx
}

func writeTestWAV(t *testing.T, path string, data []float64, sr int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := stream.WriteWAV(f, stream.Mono(data), beep.SampleRate(sr)); err != nil {
		t.Fatal(err)
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func readTestWAV(t *testing.T, path string) (left, right []float64, sr beep.SampleRate) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, format, err := stream.ReadWAV(f)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	left, right, _ = stream.Collect(s)

	return left, right, format.SampleRate
}

func TestParseRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeTestWAV(t, in, make([]float64, 10), 48000)

	c, ctx := parse(t, "render", "--heat", "0.5", "--morph-to", "b", "--morph-at", "250ms", in, filepath.Join(dir, "out.wav"))

	if ctx.Command() != "render <in> <out>" {
		t.Fatalf("command = %q", ctx.Command())
	}

	r := c.Render
	if r.Heat != 0.5 || r.MorphTo != "b" || r.MorphAt.Milliseconds() != 250 || r.Block != 64 || r.Scene != "a" {
		t.Fatalf("render flags = %+v", r)
	}
}

func TestParseRejectsBadScene(t *testing.T) {
	t.Parallel()

	var c CLI

	parser, err := kong.New(&c, kong.Exit(func(int) {}))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"params", "--morph", "0.5", "--scenes", "/does/not/exist.json"}); err == nil {
		t.Fatal("expected error for missing scenes file")
	}
}

func TestLoadScenes(t *testing.T) {
	t.Parallel()

	a, b, err := loadScenes("")
	if err != nil || a != rig.DefaultSceneA() || b != rig.DefaultSceneB() {
		t.Fatalf("defaults: %v", err)
	}

	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"scene_b": {"space": {"wet": 0.9}, "drive": {"type": 4}}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	a, b, err = loadScenes(good)
	if err != nil {
		t.Fatal(err)
	}

	if a != rig.DefaultSceneA() || b.Space.Wet != 0.9 || b.Drive.Type != rig.DriveFold {
		t.Fatalf("scene B = %+v", b)
	}

	if b.Space.DecayS != rig.DefaultSceneB().Space.DecayS {
		t.Fatal("unset fields must keep the default scene's values")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"scene_a": {"output": {"lim_release_ms": 1e9}}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := loadScenes(bad); err == nil || !strings.Contains(err.Error(), "scene_a") {
		t.Fatalf("err = %v, want scene_a validation error", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := loadScenes(broken); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestWriteParams(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := writeParams(&buf, rig.Effective(rig.DefaultSceneA(), rig.DefaultSceneB(), 1, rig.Macros{Heat: 1})); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"PARAMETER", "drive.type", "asym", "drive.pre_gain_db", "36", "dynamics.enable", "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("params output lacks %q:\n%s", want, out)
		}
	}

	if lines := strings.Count(out, "\n"); lines != len(rig.Fields())+1 {
		t.Fatalf("%d lines, want %d", lines, len(rig.Fields())+1)
	}

	buf.Reset()

	if err := writeJSON(&buf, rig.DefaultSceneA()); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), `"pre_gain_db": 9`) {
		t.Fatalf("json output:\n%s", buf.String())
	}
}

func TestMorphHookFiresOnce(t *testing.T) {
	t.Parallel()

	eng, err := engine.New(48000)
	if err != nil {
		t.Fatal(err)
	}

	r := &RenderCmd{MorphTo: "b"}
	hook := r.morphHook(eng, 1000)

	hook(0)
	hook(960)

	if eng.Snapshot().Target != 0 {
		t.Fatal("morph fired early")
	}

	in := make([]float64, 64)
	out := make([]float64, 64)

	hook(1024)
	eng.ProcessBlock(in, out, out)

	if eng.Snapshot().Target != 1 {
		t.Fatal("morph did not fire")
	}

	eng.SetSceneA()
	hook(2048)
	eng.ProcessBlock(in, out, out)

	if eng.Snapshot().Target != 0 {
		t.Fatal("morph fired twice")
	}

	if (&RenderCmd{MorphTo: "none"}).morphHook(eng, 0) != nil {
		t.Fatal("no morph must give a nil hook")
	}
}

func TestRenderBypassIsDryCopy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	data := testutil.DeterministicSine(440, 44100, 0.5, 4410)
	writeTestWAV(t, in, data, 44100)

	cmd := &RenderCmd{Scene: "a", MorphTo: "none", Bypass: true, Block: 64, In: in, Out: out}
	if err := cmd.Run(testGlobals()); err != nil {
		t.Fatal(err)
	}

	left, right, sr := readTestWAV(t, out)
	if sr != 44100 || len(left) != len(data) {
		t.Fatalf("rate %d, %d samples, want 44100 and %d", sr, len(left), len(data))
	}

	testutil.RequireSliceNearlyEqual(t, left, data, 3.0/32767)
	testutil.RequireSliceNearlyEqual(t, right, data, 3.0/32767)
}

func TestRenderProcessesAndRingsOut(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	writeTestWAV(t, in, testutil.Program(48000, 24000, 1), 48000)

	cmd := &RenderCmd{
		MacroFlags: MacroFlags{Heat: 0.5, Depth: 0.8},
		Scene:      "b",
		MorphTo:    "a",
		MorphAt:    250e6,
		Block:      128,
		Tail:       500e6,
		In:         in,
		Out:        out,
	}

	if err := cmd.Run(testGlobals()); err != nil {
		t.Fatal(err)
	}

	left, right, _ := readTestWAV(t, out)
	if len(left) != 48000 {
		t.Fatalf("%d samples, want 48000 (input plus tail)", len(left))
	}

	if testutil.Peak(left[24000:]) == 0 || testutil.Peak(right[24000:]) == 0 {
		t.Fatal("tail is silent")
	}

	if testutil.Peak(left) > 1 || math.IsNaN(testutil.Peak(right)) {
		t.Fatal("render out of range")
	}
}

func TestRenderRejectsUnsupportedRate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeTestWAV(t, in, make([]float64, 100), 4000)

	cmd := &RenderCmd{Scene: "a", MorphTo: "none", Block: 64, In: in, Out: filepath.Join(dir, "out.wav")}
	if err := cmd.Run(testGlobals()); err == nil {
		t.Fatal("expected error for 4 kHz input")
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	for _, source := range []string{"pluck", "sine", "noise"} {
		t.Run(source, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), source+".wav")
			cmd := &GenerateCmd{Source: source, Rate: 22050, Duration: 200e6, Freq: 220, Seed: 3, Peak: 0.5, Out: out}

			if err := cmd.Run(testGlobals()); err != nil {
				t.Fatal(err)
			}

			left, _, sr := readTestWAV(t, out)
			if sr != 22050 || len(left) != 4410 {
				t.Fatalf("rate %d, %d samples", sr, len(left))
			}

			if p := testutil.Peak(left); math.Abs(p-0.5) > 1e-3 {
				t.Fatalf("peak = %v, want 0.5", p)
			}
		})
	}

	if err := (&GenerateCmd{Source: "sine", Rate: 1000, Duration: 1e9, Out: filepath.Join(t.TempDir(), "x.wav")}).Run(testGlobals()); err == nil {
		t.Fatal("expected error for unsupported rate")
	}
}
