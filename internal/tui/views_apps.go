package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/theme"
)

func (m Model) updateAppSuggestions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.selection == nil {
		return m, nil
	}
	apps := catalog.PopularApps()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.appCursor > 0 {
			m.appCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.appCursor < len(apps)-1 {
			m.appCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.selection.Toggle(apps[m.appCursor].ID)
	case key.Matches(msg, m.keys.Install):
		if in, ok := m.selection.InstallIntent(); ok {
			m.ctrl.Dispatch(m.ctx, in)
		}
	}
	return m, nil
}

func (m Model) viewAppSuggestions(b *locale.Bundle, s theme.Styles) string {
	var out strings.Builder
	str := b.AppSuggestions

	out.WriteString(s.Title.Render(str.Title))
	out.WriteString("\n")
	out.WriteString(s.Subtitle.Render(str.Subtitle))
	out.WriteString("\n\n")
	out.WriteString(wrap(s, m.width, str.Description))
	out.WriteString("\n\n")

	for i, app := range catalog.PopularApps() {
		check := "[ ]"
		if m.selection != nil && m.selection.Has(app.ID) {
			check = "[✓]"
		}
		line := fmt.Sprintf("%s %-20s %s", check, app.Name, s.Subtle.Render(fmt.Sprintf("%s · %s", b.Category(app.Category), app.Size)))
		if i == m.appCursor {
			out.WriteString(s.SelectedOption.Render("▶ ") + line)
		} else {
			out.WriteString("  " + line)
		}
		out.WriteString("\n")
	}
	out.WriteString("\n")

	if m.selection != nil && m.selection.Len() > 0 {
		out.WriteString(s.Normal.Render(fmt.Sprintf("%d %s", m.selection.Len(), str.Selected)))
		out.WriteString("  ")
		out.WriteString(s.HighlightButton.Render(str.Install))
	} else {
		out.WriteString(s.Subtle.Render(str.Select))
	}
	out.WriteString("\n\n")
	out.WriteString(s.Subtle.Render(str.Footer))

	return out.String()
}
