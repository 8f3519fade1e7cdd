package ui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-chaincraft/engine"
	"github.com/cwbudde/algo-chaincraft/rig"
)

type fakeEngine struct {
	macros    rig.Macros
	calls     []string
	momentary bool
	snap      engine.Snapshot
}

func (f *fakeEngine) SetMacro(id rig.Macro, v float64) { f.macros.Set(id, v) }
func (f *fakeEngine) Macro(id rig.Macro) float64       { return f.macros.Get(id) }
func (f *fakeEngine) Macros() rig.Macros               { return f.macros }
func (f *fakeEngine) SetSceneA()                       { f.calls = append(f.calls, "A") }
func (f *fakeEngine) SetSceneB()                       { f.calls = append(f.calls, "B") }
func (f *fakeEngine) ToggleBypass()                    { f.calls = append(f.calls, "bypass") }
func (f *fakeEngine) Snapshot() engine.Snapshot        { return f.snap }

func (f *fakeEngine) SetMomentary(down bool) {
	f.momentary = down
	f.calls = append(f.calls, "momentary")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd

	for _, msg := range msgs {
		var next tea.Model

		next, cmd = m.Update(msg)

		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}

	return m, cmd
}

func TestMacroKeys(t *testing.T) {
	t.Parallel()

	f := &fakeEngine{}
	m := NewModel(f, "test")

	m, _ = send(t, m, runes("2"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})

	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	if math.Abs(f.macros.Heat-0.1) > 1e-12 {
		t.Fatalf("heat = %v, want 0.1", f.macros.Heat)
	}

	m, _ = send(t, m, runes("5"), tea.KeyMsg{Type: tea.KeyLeft})

	if f.macros.Body != 0 {
		t.Fatalf("body = %v, want clamped at 0", f.macros.Body)
	}

	for range 30 {
		m, _ = send(t, m, runes("l"))
	}

	if f.macros.Body != 1 || math.Abs(f.macros.Heat-0.1) > 1e-12 {
		t.Fatalf("macros = %+v", f.macros)
	}
}

func TestSwitchKeys(t *testing.T) {
	t.Parallel()

	f := &fakeEngine{}
	m := NewModel(f, "test")

	m, _ = send(t, m, runes("b"), runes("a"), runes("m"), runes("x"), runes("m"))

	want := []string{"B", "A", "momentary", "bypass", "momentary"}
	if strings.Join(f.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}

	if m.Momentary || f.momentary {
		t.Fatal("momentary still held after second m")
	}
}

func TestQuitReleasesMomentary(t *testing.T) {
	t.Parallel()

	f := &fakeEngine{}
	m := NewModel(f, "test")

	_, cmd := send(t, m, runes("m"), runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}

	if f.momentary {
		t.Fatal("momentary left engaged on quit")
	}

	_, cmd = send(t, NewModel(f, "test"), tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}

func TestTickRefreshesSnapshot(t *testing.T) {
	t.Parallel()

	f := &fakeEngine{snap: engine.Snapshot{Weight: 0.5, Target: 1, PeakL: 0.5, PeakR: 0.001, Bypassed: true}}
	m := NewModel(f, "sine 220 Hz")

	m, cmd := send(t, m, TickMsg{})
	if cmd == nil {
		t.Fatal("tick did not reschedule")
	}

	if m.Snapshot.Weight != 0.5 {
		t.Fatalf("snapshot not refreshed: %+v", m.Snapshot)
	}

	if math.Abs(m.HoldL-(-6.0206)) > 1e-3 || math.Abs(m.HoldR-meterFloorDB) > 1e-6 {
		t.Fatalf("holds = %v / %v", m.HoldL, m.HoldR)
	}

	f.snap.PeakL = 0

	m, _ = send(t, m, TickMsg{})
	if math.Abs(m.HoldL-(-6.0206-holdDecayDB)) > 1e-3 {
		t.Fatalf("hold did not decay: %v", m.HoldL)
	}

	view := m.View()
	for _, want := range []string{"Chaincraft", "sine 220 Hz", "heat", "BYPASS", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestBar(t *testing.T) {
	t.Parallel()

	if got := bar(0.5, 4); got != "[██··]" {
		t.Fatalf("bar(0.5) = %q", got)
	}

	if got := bar(math.NaN(), 2); got != "[··]" {
		t.Fatalf("bar(NaN) = %q", got)
	}

	if got := bar(3, 2); got != "[██]" {
		t.Fatalf("bar(3) = %q", got)
	}
}

func TestMacroKeysWriteOnlySelectedMacro(t *testing.T) {
	t.Parallel()

	e, err := engine.New(48000)
	if err != nil {
		t.Fatal(err)
	}

	m := NewModel(e, "test")
	m, _ = send(t, m, runes("2"), runes("l"))

	// Another control source moves touch between key presses.
	e.SetMacro(rig.MacroTouch, 0.8)

	send(t, m, runes("l"))

	got := e.Macros()
	if got.Touch != 0.8 || math.Abs(got.Heat-0.1) > 1e-12 {
		t.Fatalf("macros = %+v, want touch 0.8 and heat 0.1", got)
	}
}
