package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

const (
	meterFloorDB = -60.0
	holdDecayDB  = 1.5 // per refresh
	barWidth     = 30
)

var (
	accentColor = lipgloss.Color("#D97706")
	mutedColor  = lipgloss.Color("#888888")
	okColor     = lipgloss.Color("#00AA00")
	hotColor    = lipgloss.Color("#A40000")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	labelStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	bypassStyle   = lipgloss.NewStyle().Bold(true).Foreground(hotColor)
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(okColor)
)

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Chaincraft"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.Status))
	b.WriteString("\n\n")

	b.WriteString(renderMacros(m))
	b.WriteString("\n")
	b.WriteString(renderMorph(m))
	b.WriteString("\n\n")
	b.WriteString(renderMeters(m))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-5 select  ←/→ adjust  a/b scene  m hold  x bypass  q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderMacros(m Model) string {
	var b strings.Builder

	raw := m.eng.Macros()

	for i, name := range MacroNames {
		label := fmt.Sprintf("%d %-7s", i+1, name)
		if i == m.Selected {
			label = selectedStyle.Render("▸" + label)
		} else {
			label = labelStyle.Render(" " + label)
		}

		v := MacroValue(raw, i)
		fmt.Fprintf(&b, "%s %s %4.2f\n", label, bar(v, barWidth), v)
	}

	return b.String()
}

func renderMorph(m Model) string {
	s := m.Snapshot

	state := activeStyle.Render("ACTIVE")
	if s.Bypassed {
		state = bypassStyle.Render("BYPASS")
	}

	held := ""
	if m.Momentary {
		held = selectedStyle.Render(" HOLD")
	}

	return fmt.Sprintf("%s A %s B  %.2f → %.0f  %s%s",
		labelStyle.Render("morph  "), bar(s.Weight, barWidth), s.Weight, s.Target, state, held)
}

func renderMeters(m Model) string {
	return fmt.Sprintf("%s %s %6.1f dB\n%s %s %6.1f dB",
		labelStyle.Render("L"), meter(m.Snapshot.PeakL), m.HoldL,
		labelStyle.Render("R"), meter(m.Snapshot.PeakR), m.HoldR)
}

// bar renders v in [0, 1] as a fixed-width bar.
func bar(v float64, width int) string {
	n := int(core.Clamp01(v)*float64(width) + 0.5)
	return "[" + strings.Repeat("█", n) + strings.Repeat("·", width-n) + "]"
}

func meter(peak float64) string {
	db := core.LinearToDB(peak)
	if !(db > meterFloorDB) {
		db = meterFloorDB
	}

	return bar((db-meterFloorDB)/-meterFloorDB, barWidth+7)
}

// hold returns the decayed peak hold updated with a new linear peak.
func hold(heldDB, peak float64) float64 {
	db := core.LinearToDB(peak)
	if !(db > meterFloorDB) {
		db = meterFloorDB
	}

	return max(db, heldDB-holdDecayDB)
}
