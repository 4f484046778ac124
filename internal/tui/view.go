package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/theme"
	"github.com/rostart/rostart/internal/wizard"
)

func (m Model) View() string {
	state := m.ctrl.Snapshot()
	b := state.Bundle()
	if b == nil {
		return ""
	}
	s := m.styles()

	var out strings.Builder
	out.WriteString(m.renderHeader(state, b, s))
	out.WriteString("\n\n")

	if m.showLangMenu {
		out.WriteString(m.renderLanguageMenu(state, s))
	} else {
		out.WriteString(m.renderStep(state, b, s))
	}

	out.WriteString("\n\n")
	out.WriteString(m.renderFooter(b, s))

	return out.String()
}

func (m Model) renderStep(state wizard.State, b *locale.Bundle, s theme.Styles) string {
	switch state.Step().ID {
	case catalog.StepWelcome:
		return m.viewWelcome(b, s)
	case catalog.StepSystemUpdates:
		return m.viewSystemUpdates(b, s)
	case catalog.StepDriverUpdates:
		return m.viewDriverUpdates(state, b, s)
	case catalog.StepAppSuggestions:
		return m.viewAppSuggestions(b, s)
	case catalog.StepReady:
		return m.viewReady(state, b, s)
	}
	return ""
}

func (m Model) renderHeader(state wizard.State, b *locale.Bundle, s theme.Styles) string {
	var steps []string
	for i, step := range catalog.Steps() {
		label := fmt.Sprintf("%s %s", step.Icon, step.Title(b))
		switch {
		case i < state.StepIndex:
			steps = append(steps, s.StepDone.Render(label))
		case i == state.StepIndex:
			steps = append(steps, s.StepActive.Render(label))
		default:
			steps = append(steps, s.StepPending.Render(label))
		}
	}
	progress := strings.Join(steps, s.Subtle.Render("  ›  "))

	mode := b.Header.Light
	if state.Dark {
		mode = b.Header.Dark
	}
	status := s.StatusBar.Render(fmt.Sprintf("%s %s · %s: %s · %s: %s",
		catalog.Info.AppName, catalog.Info.Version,
		b.Header.Theme, mode,
		b.Header.Language, locale.Name(state.Language)))

	counter := s.Subtle.Render(fmt.Sprintf("%d/%d", state.StepIndex+1, catalog.StepCount()))

	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		"",
		progress+"  "+counter,
	)
}

func (m Model) renderFooter(b *locale.Bundle, s theme.Styles) string {
	h := m.help
	h.Styles.ShortKey = s.Key
	h.Styles.ShortDesc = s.Subtle
	h.Styles.ShortSeparator = s.Subtle

	var out strings.Builder
	if m.closing {
		out.WriteString(m.spinner.View())
		out.WriteString(" ")
		out.WriteString(s.Subtle.Render(b.Ready.StartButton + "..."))
		out.WriteString("\n")
	}
	out.WriteString(h.ShortHelpView(m.helpFor(b, m.mounted)))
	out.WriteString("\n")
	out.WriteString(s.Subtle.Render(b.Footer.Copyright))
	return out.String()
}

func (m Model) renderLanguageMenu(state wizard.State, s theme.Styles) string {
	var out strings.Builder

	b := state.Bundle()
	out.WriteString(s.Title.Render(b.Header.Language))
	out.WriteString("\n")

	for i, code := range locale.Available() {
		label := fmt.Sprintf("%s (%s)", locale.Name(code), code)
		if code == state.Language {
			label += " ✓"
		}
		if i == m.langCursor {
			out.WriteString(s.SelectedOption.Render("▶ " + label))
		} else {
			out.WriteString(s.Normal.Render("  " + label))
		}
		out.WriteString("\n")
	}
	return out.String()
}

func wrap(s theme.Styles, width int, text string) string {
	if width <= 0 || width > 80 {
		width = 80
	}
	return s.Normal.Width(width).Render(text)
}
