package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/netcheck"
	"github.com/rostart/rostart/internal/theme"
	"github.com/rostart/rostart/internal/wizard"
)

const maxLogLines = 8

func (m Model) updateSystemUpdates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.update == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Update):
		if m.update.Status == wizard.PhaseUpdating {
			return m, nil
		}
		m.ctrl.Dispatch(m.ctx, m.update.Start())
		return m, m.spinner.Tick
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
	}
	return m, nil
}

func networkLabel(b *locale.Bundle, c netcheck.Connectivity) string {
	n := b.SystemUpdates.Network
	switch c {
	case netcheck.Full:
		return n.Full
	case netcheck.Limited:
		return n.Limited
	case netcheck.Portal:
		return n.Portal
	case netcheck.None:
		return n.None
	}
	return n.Unknown
}

func (m Model) viewSystemUpdates(b *locale.Bundle, s theme.Styles) string {
	var out strings.Builder
	str := b.SystemUpdates

	out.WriteString(s.Title.Render(str.Title))
	out.WriteString("\n")
	out.WriteString(s.Subtitle.Render(str.Subtitle))
	out.WriteString("\n\n")
	out.WriteString(wrap(s, m.width, str.Description))
	out.WriteString("\n\n")

	net := networkLabel(b, m.connectivity)
	if m.connectivity.CanUpdate() {
		out.WriteString(s.Success.Render("● " + net))
	} else {
		out.WriteString(s.Warning.Render("● " + net))
	}
	out.WriteString("\n\n")

	session := m.update
	if session == nil {
		return out.String()
	}

	switch session.Status {
	case wizard.PhaseIdle:
		out.WriteString(s.HighlightButton.Render(str.UpdateButton))
		out.WriteString("\n")
	case wizard.PhaseUpdating:
		sp := m.spinner
		sp.Style = s.SpinnerStyle
		out.WriteString(fmt.Sprintf("%s %s", sp.View(), s.Normal.Render(str.Updating)))
		out.WriteString("\n")
	case wizard.PhaseCompleted:
		out.WriteString(s.Success.Render("✓ " + str.CompletedTitle))
		out.WriteString("\n")
	}

	if session.Status != wizard.PhaseIdle || session.Progress > 0 {
		width := 40
		if m.width > 0 && m.width-10 < width {
			width = m.width - 10
		}
		bar := s.NewProgress(width)
		out.WriteString("\n")
		out.WriteString(s.Subtle.Render(str.ProgressTitle))
		out.WriteString("\n")
		out.WriteString(bar.ViewAs(float64(session.Progress) / 100))
		out.WriteString("\n")
	}

	if m.showLogs && len(session.Logs) > 0 {
		start := 0
		if len(session.Logs) > maxLogLines {
			start = len(session.Logs) - maxLogLines
		}
		out.WriteString("\n")
		out.WriteString(s.LogBox.Render(strings.Join(session.Logs[start:], "\n")))
		out.WriteString("\n")
	}

	return out.String()
}
