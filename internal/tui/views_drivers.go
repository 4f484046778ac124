package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/theme"
	"github.com/rostart/rostart/internal/wizard"
)

func (m Model) updateDriverUpdates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Drivers) {
		m.ctrl.Dispatch(m.ctx, host.LaunchDriverManager())
	}
	return m, nil
}

func (m Model) viewDriverUpdates(state wizard.State, b *locale.Bundle, s theme.Styles) string {
	var out strings.Builder
	str := b.DriverUpdates

	out.WriteString(s.Title.Render(str.Title))
	out.WriteString("\n")
	out.WriteString(s.Subtitle.Render(str.Subtitle))
	out.WriteString("\n\n")
	out.WriteString(wrap(s, m.width, str.Description))
	out.WriteString("\n\n")

	var rows []string
	for _, row := range wizard.DisplaySpecs(state.Specs, b) {
		rows = append(rows, fmt.Sprintf("%s  %s", s.Subtle.Render(fmt.Sprintf("%-16s", row.Label)), s.Bold.Render(row.Value)))
	}
	out.WriteString(s.Card.Render(strings.Join(rows, "\n")))
	out.WriteString("\n\n")

	out.WriteString(s.HighlightButton.Render(str.OpenManager))
	out.WriteString("\n\n")
	out.WriteString(s.Subtle.Render(str.Footer))

	return out.String()
}
