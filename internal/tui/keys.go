package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/wizard"
)

// KeyMap defines all wizard keybindings.
type KeyMap struct {
	Next      key.Binding
	Back      key.Binding
	Theme     key.Binding
	Language  key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Update    key.Binding
	Logs      key.Binding
	Drivers   key.Binding
	Install   key.Binding
	Quit      key.Binding
	Select    key.Binding
	CloseMenu key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "enter"),
			key.WithHelp("→", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "back"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Language: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "language"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Update: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "update"),
		),
		Logs: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "logs"),
		),
		Drivers: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "drivers"),
		),
		Install: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "install"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		CloseMenu: key.NewBinding(
			key.WithKeys("esc", "g"),
			key.WithHelp("esc", "close"),
		),
	}
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

// helpFor returns the bindings shown in the footer, labelled from bundle.
func (m Model) helpFor(b *locale.Bundle, step catalog.StepID) []key.Binding {
	k := m.keys

	next := withHelp(k.Next, b.Nav.Next)
	if m.ctrl.Snapshot().IsLast() {
		next = withHelp(k.Next, b.Nav.Start)
	}

	var bindings []key.Binding
	if m.ctrl.Snapshot().StepIndex > 0 {
		bindings = append(bindings, withHelp(k.Back, b.Nav.Back))
	}
	bindings = append(bindings, next)

	switch step {
	case catalog.StepSystemUpdates:
		if m.update != nil && m.update.Status != wizard.PhaseUpdating {
			bindings = append(bindings, withHelp(k.Update, b.SystemUpdates.UpdateButton))
		}
		logs := b.SystemUpdates.ShowLogs
		if m.showLogs {
			logs = b.SystemUpdates.HideLogs
		}
		bindings = append(bindings, withHelp(k.Logs, logs))
	case catalog.StepDriverUpdates:
		bindings = append(bindings, withHelp(k.Drivers, b.DriverUpdates.OpenManager))
	case catalog.StepAppSuggestions:
		bindings = append(bindings, withHelp(k.Toggle, b.AppSuggestions.Selected))
		if m.selection != nil && m.selection.Len() > 0 {
			bindings = append(bindings, withHelp(k.Install, b.AppSuggestions.Install))
		}
	case catalog.StepReady:
		bindings = append(bindings, withHelp(k.Toggle, b.Ready.Autostart))
	}

	return append(bindings,
		withHelp(k.Theme, b.Header.Theme),
		withHelp(k.Language, b.Header.Language),
		withHelp(k.Quit, b.Nav.Quit),
	)
}
