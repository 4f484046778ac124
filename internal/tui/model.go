// Package tui renders the wizard as a full-screen terminal program.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/log"
	"github.com/rostart/rostart/internal/netcheck"
	"github.com/rostart/rostart/internal/theme"
	"github.com/rostart/rostart/internal/wizard"
)

type Model struct {
	ctx  context.Context
	ctrl *wizard.Controller
	sub  *host.Subscription

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	light   theme.Styles
	dark    theme.Styles

	width  int
	height int

	showLangMenu bool
	langCursor   int
	closing      bool

	// Step-local state, only set while its step is active.
	mounted      catalog.StepID
	update       *wizard.UpdateSession
	showLogs     bool
	connectivity netcheck.Connectivity
	selection    *wizard.AppSelection
	appCursor    int

	checkNet func(context.Context) netcheck.Connectivity
}

// NewModel builds the wizard UI. sub feeds host notifications and is owned
// by the caller.
func NewModel(ctx context.Context, ctrl *wizard.Controller, sub *host.Subscription) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		sub:      sub,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		light:    theme.NewStyles(theme.Light()),
		dark:     theme.NewStyles(theme.Dark()),
		checkNet: netcheck.Check,
	}
	m.mount()
	return m
}

func (m Model) styles() theme.Styles {
	if m.ctrl.Snapshot().Dark {
		return m.dark
	}
	return m.light
}

func (m Model) Init() tea.Cmd {
	return m.listenForNotifications()
}

func (m Model) listenForNotifications() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-m.sub.C()
		if !ok {
			return subscriptionClosedMsg{}
		}
		return notificationMsg{notification: n}
	}
}

func (m Model) checkConnectivity() tea.Cmd {
	return func() tea.Msg {
		return connectivityMsg{connectivity: m.checkNet(m.ctx)}
	}
}

// mount swaps step-local state when the active step changes and returns any
// command the newly mounted step needs.
func (m *Model) mount() tea.Cmd {
	step := m.ctrl.Snapshot().Step().ID
	if step == m.mounted {
		return nil
	}

	m.update = nil
	m.showLogs = false
	m.selection = nil
	m.appCursor = 0
	m.mounted = step

	switch step {
	case catalog.StepSystemUpdates:
		m.update = wizard.NewUpdateSession()
		m.showLogs = true
		m.connectivity = netcheck.Unknown
		return m.checkConnectivity()
	case catalog.StepAppSuggestions:
		m.selection = &wizard.AppSelection{}
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case notificationMsg:
		return m.handleNotification(msg.notification)
	case subscriptionClosedMsg:
		log.Debug("Notification subscription closed")
		return m, nil
	case connectivityMsg:
		if m.mounted == catalog.StepSystemUpdates {
			m.connectivity = msg.connectivity
		}
		return m, nil
	case spinner.TickMsg:
		if m.update == nil || m.update.Status != wizard.PhaseUpdating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.showLangMenu {
			return m.updateLanguageMenu(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleNotification(n host.Notification) (tea.Model, tea.Cmd) {
	listen := m.listenForNotifications()

	if _, ok := n.(host.Dismiss); ok {
		log.Info("Host dismissed the wizard")
		return m, tea.Quit
	}

	if m.ctrl.Apply(n) {
		return m, listen
	}

	if m.update != nil && m.update.Apply(n) {
		return m, listen
	}

	log.Debugf("Dropping %s notification, no active view for it", n.Kind())
	return m, listen
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		if m.ctrl.Next(m.ctx) {
			m.closing = true
			return m, nil
		}
		cmd := m.mount()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Prev()
		cmd := m.mount()
		return m, cmd
	case key.Matches(msg, m.keys.Theme):
		m.ctrl.ToggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Language):
		m.openLanguageMenu()
		return m, nil
	}

	switch m.mounted {
	case catalog.StepSystemUpdates:
		return m.updateSystemUpdates(msg)
	case catalog.StepDriverUpdates:
		return m.updateDriverUpdates(msg)
	case catalog.StepAppSuggestions:
		return m.updateAppSuggestions(msg)
	case catalog.StepReady:
		return m.updateReady(msg)
	}
	return m, nil
}

func (m *Model) openLanguageMenu() {
	m.showLangMenu = true
	m.langCursor = 0
	current := m.ctrl.Snapshot().Language
	for i, code := range locale.Available() {
		if code == current {
			m.langCursor = i
		}
	}
}

func (m Model) updateLanguageMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	codes := locale.Available()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.CloseMenu):
		m.showLangMenu = false
	case key.Matches(msg, m.keys.Up):
		if m.langCursor > 0 {
			m.langCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.langCursor < len(codes)-1 {
			m.langCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.langCursor < len(codes) {
			if err := m.ctrl.SetLanguage(codes[m.langCursor]); err != nil {
				log.Warnf("Language change failed: %v", err)
			}
		}
		m.showLangMenu = false
	}
	return m, nil
}
