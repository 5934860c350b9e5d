package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yuya-fujimoto/fomu.cli/internal/presets"
)

// Calm colour palette
var (
	accentCyan = lipgloss.Color("#00CED1")
	softWhite  = lipgloss.Color("#E8E8E8")
	dimGray    = lipgloss.Color("#6B6B6B")
	warnYellow = lipgloss.Color("#E8C547")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(softWhite)
	accentStyle = lipgloss.NewStyle().Foreground(accentCyan)
	dimStyle    = lipgloss.NewStyle().Foreground(dimGray)
	keyStyle    = lipgloss.NewStyle().Bold(true)
	pendStyle   = lipgloss.NewStyle().Foreground(warnYellow)
)

// visualizerHeight is the fixed bar-grid height in rows.
const visualizerHeight = 7

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(m.viewHeader())
	s.WriteString("\n\n")
	s.WriteString(m.viewVisualizer())
	s.WriteString("\n")
	s.WriteString(m.viewTrack())
	s.WriteString("\n")
	if m.selectingPreset {
		s.WriteString(m.viewPresetSelection())
	} else {
		s.WriteString(m.viewControls())
	}
	s.WriteString("\n")
	s.WriteString(dimStyle.Render("  Music by Scott Buckley (CC-BY 4.0) — support him at scottbuckley.com.au"))
	s.WriteString("\n")

	return s.String()
}

func (m *Model) viewHeader() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("  Fomu"))
	s.WriteString(accentStyle.Render(fmt.Sprintf("  [%s]", m.preset.Name)))

	if m.pendingPreset != "" {
		prog := m.downloader.Progress()
		if prog.Fraction > 0 && !prog.Completed {
			s.WriteString(pendStyle.Render(fmt.Sprintf("  → [%s] ", m.pendingPreset)))
			s.WriteString(m.downloadBar.ViewAs(float64(prog.Fraction)))
		} else {
			s.WriteString(pendStyle.Render(fmt.Sprintf("  → [%s] downloading...", m.pendingPreset)))
		}
	}
	return s.String()
}

func (m *Model) viewVisualizer() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	lines := renderBars(m.analyzer.Bands(), width-4, visualizerHeight)

	var s strings.Builder
	for i, line := range lines {
		s.WriteString("  ")
		s.WriteString(accentStyle.Render(line))
		if i < len(lines)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

func (m *Model) viewTrack() string {
	icon := "▶"
	if !m.player.IsPlaying() {
		icon = "⏸"
	}
	name := "Loading..."
	if m.current != nil {
		name = m.current.Name
	}

	var s strings.Builder
	s.WriteString(keyStyle.Render(fmt.Sprintf("  %s ", icon)))
	s.WriteString(lipgloss.NewStyle().Foreground(softWhite).Render(name))
	s.WriteString(dimStyle.Render(" — Scott Buckley"))
	s.WriteString(dimStyle.Render("  " + m.elapsed()))
	s.WriteString("  ")
	s.WriteString(accentStyle.Render(loudnessMeter(m.analyzer.RMS())))
	return s.String()
}

func (m *Model) viewControls() string {
	var s strings.Builder
	s.WriteString(accentStyle.Render(fmt.Sprintf("  Vol: %d%%", int(m.player.Volume()*100))))
	s.WriteString(dimStyle.Render("  │  "))
	s.WriteString(keyStyle.Render("[space]"))
	s.WriteString(dimStyle.Render(" pause  "))
	s.WriteString(keyStyle.Render("[+/-]"))
	s.WriteString(dimStyle.Render(" vol  "))
	s.WriteString(keyStyle.Render("[n]"))
	s.WriteString(dimStyle.Render(" skip  "))
	s.WriteString(keyStyle.Render("[p]"))
	s.WriteString(dimStyle.Render(" preset  "))
	s.WriteString(keyStyle.Render("[q]"))
	s.WriteString(dimStyle.Render(" quit"))
	return s.String()
}

func (m *Model) viewPresetSelection() string {
	var s strings.Builder
	s.WriteString(keyStyle.Render("  Select preset: "))

	selectedStyle := lipgloss.NewStyle().Foreground(accentCyan).Bold(true).Reverse(true)
	emptyStyle := lipgloss.NewStyle().Foreground(dimGray).Italic(true)

	for i := range presets.All {
		if i > 0 {
			s.WriteString(" ")
		}
		p := &presets.All[i]
		switch {
		case i == m.selectedPreset:
			s.WriteString(selectedStyle.Render("[" + p.Name + "]"))
		case len(m.loader.Available(p.Pools)) > 0:
			s.WriteString(lipgloss.NewStyle().Foreground(softWhite).Render(p.Name))
		default:
			s.WriteString(emptyStyle.Render(p.Name))
		}
	}
	return s.String()
}
