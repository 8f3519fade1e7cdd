package rig

import (
	"errors"
	"math"
	"testing"
)

var gridPoints = []float64{0, 0.25, 0.5, 0.75, 1}

func forEachMacroGrid(fn func(Macros)) {
	for _, t := range gridPoints {
		for _, h := range gridPoints {
			for _, mo := range gridPoints {
				for _, d := range gridPoints {
					for _, b := range gridPoints {
						fn(Macros{Touch: t, Heat: h, Motion: mo, Depth: d, Body: b})
					}
				}
			}
		}
	}
}

func TestEffectiveAlwaysInRange(t *testing.T) {
	t.Parallel()

	a, b := DefaultSceneA(), DefaultSceneB()

	forEachMacroGrid(func(m Macros) {
		for i := 0; i <= 10; i++ {
			w := float64(i) / 10
			r := Effective(a, b, w, m)

			if err := Validate(r); err != nil {
				t.Fatalf("w=%v macros=%+v: %v", w, m, err)
			}
		}
	})
}

func TestDiscreteFieldsOnlyTakeEndpointValues(t *testing.T) {
	t.Parallel()

	a, b := DefaultSceneA(), DefaultSceneB()
	a.Character.Mode = CharacterChorus
	b.Character.Mode = CharacterTremolo
	b.Dynamics.Enable = false

	for i := 0; i <= 1000; i++ {
		w := float64(i) / 1000
		r := Interpolate(a, b, w)

		if r.Drive.Type != a.Drive.Type && r.Drive.Type != b.Drive.Type {
			t.Fatalf("w=%v: drive type %v is not an endpoint", w, r.Drive.Type)
		}

		if r.Character.Mode != a.Character.Mode && r.Character.Mode != b.Character.Mode {
			t.Fatalf("w=%v: character mode %v is not an endpoint", w, r.Character.Mode)
		}

		wantB := w >= 0.5
		if got := r.Drive.Type == b.Drive.Type; got != wantB {
			t.Fatalf("w=%v: drive type from B = %v, want %v", w, got, wantB)
		}

		if got := r.Character.Mode == b.Character.Mode; got != wantB {
			t.Fatalf("w=%v: character mode from B = %v, want %v", w, got, wantB)
		}

		if got := r.Dynamics.Enable == b.Dynamics.Enable; got != wantB {
			t.Fatalf("w=%v: enable from B = %v, want %v", w, got, wantB)
		}
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	t.Parallel()

	a, b := DefaultSceneA(), DefaultSceneB()

	if got := Interpolate(a, b, 0); got != a {
		t.Fatalf("Interpolate(a, b, 0) = %+v, want scene A", got)
	}

	got := Interpolate(a, b, 1)
	for _, f := range Fields() {
		if diff := math.Abs(f.Get(got) - f.Get(b)); diff > 1e-12 {
			t.Errorf("%s: got %v want %v", f.Path(), f.Get(got), f.Get(b))
		}
	}
}

func TestInterpolateEasesWeight(t *testing.T) {
	t.Parallel()

	a, b := DefaultSceneA(), DefaultSceneB()

	// smoothstep(0.25) = 0.15625
	r := Interpolate(a, b, 0.25)
	want := a.Space.DecayS + (b.Space.DecayS-a.Space.DecayS)*0.15625
	if math.Abs(r.Space.DecayS-want) > 1e-12 {
		t.Fatalf("DecayS = %v, want %v", r.Space.DecayS, want)
	}

	// Out-of-range and NaN weights clamp.
	if Interpolate(a, b, -3) != a {
		t.Fatal("negative weight must give scene A")
	}

	if Interpolate(a, b, math.NaN()) != a {
		t.Fatal("NaN weight must give scene A")
	}
}

func TestApplyMacrosZeroIsIdentity(t *testing.T) {
	t.Parallel()

	a := DefaultSceneA()
	if got := ApplyMacros(a, Macros{}); got != a {
		t.Fatalf("ApplyMacros(a, 0) = %+v, want %+v", got, a)
	}
}

func TestHeatPreGainClampsAtCeiling(t *testing.T) {
	t.Parallel()

	a := DefaultSceneA()

	raw := ApplyMacros(a, Macros{Heat: 1})
	if raw.Drive.PreGainDB <= RangePreGainDB.Max {
		t.Fatalf("unclamped pre-gain = %v, want > %v", raw.Drive.PreGainDB, RangePreGainDB.Max)
	}

	eff := Effective(a, DefaultSceneB(), 0, Macros{Heat: 1})
	if eff.Drive.PreGainDB != 36 {
		t.Fatalf("pre-gain = %v, want 36", eff.Drive.PreGainDB)
	}
}

func TestMacroFieldSetsAreDisjoint(t *testing.T) {
	t.Parallel()

	base := DefaultSceneA()
	macros := []Macros{{Touch: 1}, {Heat: 1}, {Motion: 1}, {Depth: 1}, {Body: 1}}

	owner := map[string]int{}
	for i, m := range macros {
		r := ApplyMacros(base, m)
		for _, f := range Fields() {
			if f.Get(r) == f.Get(base) {
				continue
			}

			if prev, ok := owner[f.Path()]; ok {
				t.Fatalf("%s touched by macro %d and %d", f.Path(), prev, i)
			}

			owner[f.Path()] = i
		}
	}

	if len(owner) != 24 {
		t.Fatalf("macro map touches %d fields, want 24", len(owner))
	}
}

func TestApplyMacrosSanitizes(t *testing.T) {
	t.Parallel()

	a := DefaultSceneA()

	got := ApplyMacros(a, Macros{Touch: math.NaN(), Heat: math.Inf(1), Depth: math.Inf(-1), Body: 7})
	want := ApplyMacros(a, Macros{Heat: 1, Body: 1})

	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestClampHandlesNonFinite(t *testing.T) {
	t.Parallel()

	r := DefaultSceneA()
	r.Drive.PreGainDB = math.NaN()
	r.Space.DecayS = math.Inf(1)
	r.Output.LevelDB = math.Inf(-1)
	r.Drive.Type = 42
	r.Character.Mode = -1

	c := Clamp(r)

	if c.Drive.PreGainDB != RangePreGainDB.Min {
		t.Errorf("NaN pre-gain clamped to %v, want %v", c.Drive.PreGainDB, RangePreGainDB.Min)
	}

	if c.Space.DecayS != RangeDecayS.Max {
		t.Errorf("+Inf decay clamped to %v", c.Space.DecayS)
	}

	if c.Output.LevelDB != RangeOutputLevelDB.Min {
		t.Errorf("-Inf level clamped to %v", c.Output.LevelDB)
	}

	if c.Drive.Type != DriveFoldSoft || c.Character.Mode != CharacterOff {
		t.Errorf("discrete clamp: type %v mode %v", c.Drive.Type, c.Character.Mode)
	}

	if err := Validate(c); err != nil {
		t.Fatalf("clamped rig invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate(DefaultSceneA()); err != nil {
		t.Fatalf("scene A: %v", err)
	}

	if err := Validate(DefaultSceneB()); err != nil {
		t.Fatalf("scene B: %v", err)
	}

	r := DefaultSceneA()
	r.Space.Wet = 2

	err := Validate(r)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Validate() = %v, want ErrOutOfRange", err)
	}
}

func TestSceneBDeltas(t *testing.T) {
	t.Parallel()

	a, b := DefaultSceneA(), DefaultSceneB()

	tests := []struct {
		path string
		a, b float64
	}{
		{"drive.type", 1, 3},
		{"drive.pre_gain_db", 9, 14},
		{"space.decay_s", 3.2, 6.8},
		{"space.wet", 0.38, 0.52},
		{"stereo_spread.width", 0.55, 0.75},
		{"stereo_spread.micro_delay_ms", 6.5, 9},
		{"output.level_db", -3, -2},
	}

	byPath := map[string]Field{}
	for _, f := range Fields() {
		byPath[f.Path()] = f
	}

	for _, tt := range tests {
		f, ok := byPath[tt.path]
		if !ok {
			t.Fatalf("unknown field %s", tt.path)
		}

		if f.Get(a) != tt.a || f.Get(b) != tt.b {
			t.Errorf("%s: A=%v B=%v, want A=%v B=%v", tt.path, f.Get(a), f.Get(b), tt.a, tt.b)
		}
	}
}

func TestEffectiveAllocatesNothing(t *testing.T) {
	a, b := DefaultSceneA(), DefaultSceneB()
	m := Macros{Touch: 0.3, Heat: 0.7}

	var sink Rig

	allocs := testing.AllocsPerRun(100, func() {
		sink = Effective(a, b, 0.4, m)
	})
	if allocs != 0 {
		t.Fatalf("Effective allocates %v times per call", allocs)
	}

	_ = sink
}

func TestStringers(t *testing.T) {
	t.Parallel()

	if DriveFold.String() != "fold" || DriveType(9).String() != "unknown" {
		t.Fatal("DriveType.String mismatch")
	}

	if CharacterEnsemble.String() != "ensemble" || CharacterMode(-2).String() != "unknown" {
		t.Fatal("CharacterMode.String mismatch")
	}
}

func TestMacroAccessors(t *testing.T) {
	t.Parallel()

	var m Macros
	for id := range NumMacros {
		m.Set(Macro(id), float64(id+1)/10)
	}

	want := Macros{Touch: 0.1, Heat: 0.2, Motion: 0.3, Depth: 0.4, Body: 0.5}
	if m != want {
		t.Fatalf("macros = %+v, want %+v", m, want)
	}

	if m.Get(MacroDepth) != 0.4 || m.Get(Macro(9)) != 0 {
		t.Fatalf("Get: depth %v, unknown %v", m.Get(MacroDepth), m.Get(Macro(9)))
	}

	m.Set(Macro(-1), 1)
	if m != want {
		t.Fatal("unknown id changed macros")
	}

	if MacroHeat.String() != "heat" || Macro(7).String() != "unknown" {
		t.Fatalf("names: %q %q", MacroHeat.String(), Macro(7).String())
	}
}

func TestHeatAsymTermVanishesAtZero(t *testing.T) {
	t.Parallel()

	a := DefaultSceneA()

	for _, tt := range []struct{ heat, want float64 }{
		{0, a.Drive.Asym},
		{0.5, a.Drive.Asym + 0.125},
		{1, a.Drive.Asym + 0.25},
	} {
		got := ApplyMacros(a, Macros{Heat: tt.heat}).Drive.Asym
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("heat %v: asym = %v, want %v", tt.heat, got, tt.want)
		}
	}
}
