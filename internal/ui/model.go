// Package ui provides the Bubbletea control surface for live playback.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
	"github.com/cwbudde/algo-chaincraft/engine"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// RefreshInterval is how often the meters are redrawn.
const RefreshInterval = 50 * time.Millisecond

// MacroStep is the change per arrow key press.
const MacroStep = 0.05

// MacroNames are the macro labels in key order 1-5.
var MacroNames = [5]string{"touch", "heat", "motion", "depth", "body"}

// Engine is the control surface of the engine the UI drives.
type Engine interface {
	SetMacro(id rig.Macro, v float64)
	Macro(id rig.Macro) float64
	Macros() rig.Macros
	SetSceneA()
	SetSceneB()
	SetMomentary(down bool)
	ToggleBypass()
	Snapshot() engine.Snapshot
}

// Model is the Bubbletea model for the live control surface.
type Model struct {
	eng Engine

	Selected  int // 0-4, index into MacroNames
	Momentary bool
	Snapshot  engine.Snapshot
	Status    string // source and device line under the title

	// Peak hold in dBFS, decaying between refreshes.
	HoldL float64
	HoldR float64

	Width  int
	Height int
}

// NewModel creates a control surface for eng.
func NewModel(eng Engine, status string) Model {
	return Model{eng: eng, Status: status, HoldL: meterFloorDB, HoldR: meterFloorDB}
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TickMsg:
		m.Snapshot = m.eng.Snapshot()
		m.HoldL = hold(m.HoldL, m.Snapshot.PeakL)
		m.HoldR = hold(m.HoldR, m.Snapshot.PeakR)

		return m, tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		if m.Momentary {
			m.eng.SetMomentary(false)
		}

		return m, tea.Quit
	case "1", "2", "3", "4", "5":
		m.Selected = int(key[0] - '1')
	case "left", "h":
		m.nudge(-MacroStep)
	case "right", "l":
		m.nudge(MacroStep)
	case "a":
		m.eng.SetSceneA()
	case "b":
		m.eng.SetSceneB()
	case "m":
		m.Momentary = !m.Momentary
		m.eng.SetMomentary(m.Momentary)
	case "x":
		m.eng.ToggleBypass()
	}

	return m, nil
}

func (m Model) nudge(delta float64) {
	id := rig.Macro(m.Selected)
	m.eng.SetMacro(id, core.Clamp01(m.eng.Macro(id)+delta))
}

// MacroValue returns macro i of m in key order.
func MacroValue(m rig.Macros, i int) float64 {
	return m.Get(rig.Macro(i))
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}
