package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/theme"
	"github.com/rostart/rostart/internal/wizard"
)

func (m Model) updateReady(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Toggle) {
		m.ctrl.ToggleAutostart(m.ctx)
	}
	return m, nil
}

func (m Model) viewReady(state wizard.State, b *locale.Bundle, s theme.Styles) string {
	var out strings.Builder
	str := b.Ready

	out.WriteString(s.Title.Render(str.Title))
	out.WriteString("\n")
	out.WriteString(s.Subtitle.Render(str.Subtitle))
	out.WriteString("\n\n")
	out.WriteString(wrap(s, m.width, str.Description))
	out.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("%s  %s", s.Subtle.Render(fmt.Sprintf("%-10s", str.System)), s.Bold.Render(wizard.SystemName(state.Specs))),
		fmt.Sprintf("%s  %s", s.Subtle.Render(fmt.Sprintf("%-10s", str.Version)), s.Bold.Render(wizard.SystemVersion(state.Specs))),
		fmt.Sprintf("%s  %s", s.Subtle.Render(fmt.Sprintf("%-10s", str.Status)), s.Success.Render(str.ReadyStatus)),
	}
	out.WriteString(s.Card.Render(strings.Join(rows, "\n")))
	out.WriteString("\n\n")

	check := "[ ]"
	if state.Autostart {
		check = "[✓]"
	}
	out.WriteString(s.Normal.Render(fmt.Sprintf("%s %s", check, str.Autostart)))
	out.WriteString("\n\n")
	out.WriteString(s.HighlightButton.Render(str.StartButton))

	return out.String()
}
