package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/netcheck"
	"github.com/rostart/rostart/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	intents []host.Intent
}

func (r *recorder) Dispatch(_ context.Context, in host.Intent) error {
	r.intents = append(r.intents, in)
	return nil
}

func (r *recorder) actions() []host.Action {
	out := make([]host.Action, 0, len(r.intents))
	for _, in := range r.intents {
		out = append(out, in.Action)
	}
	return out
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *wizard.Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	ctrl := wizard.New(rec, wizard.Options{Language: "en", Autostart: true})
	m := NewModel(context.Background(), ctrl, nil)
	m.checkNet = func(context.Context) netcheck.Connectivity { return netcheck.Full }
	return m, ctrl, rec
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func goToStep(t *testing.T, m Model, id catalog.StepID) Model {
	t.Helper()
	for i := 0; m.mounted != id; i++ {
		require.Less(t, i, catalog.StepCount(), "step %s not reachable", id)
		m, _ = send(t, m, keyRight)
	}
	return m
}

func TestNavigationMountsStepState(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	assert.Equal(t, catalog.StepWelcome, m.mounted)
	assert.Nil(t, m.update)

	m, cmd := send(t, m, keyRight)
	assert.Equal(t, 1, ctrl.Snapshot().StepIndex)
	require.NotNil(t, m.update)
	assert.Equal(t, wizard.PhaseIdle, m.update.Status)
	assert.True(t, m.showLogs)

	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.Equal(t, netcheck.Full, m.connectivity)

	m, _ = send(t, m, keyLeft)
	assert.Equal(t, 0, ctrl.Snapshot().StepIndex)
	assert.Nil(t, m.update)
}

func TestUpdateKeyStartsOnce(t *testing.T) {
	m, _, rec := newTestModel(t)
	m = goToStep(t, m, catalog.StepSystemUpdates)

	m, cmd := send(t, m, runes("u"))
	assert.NotNil(t, cmd)
	assert.Equal(t, wizard.PhaseUpdating, m.update.Status)

	m, _ = send(t, m, runes("u"))
	assert.Equal(t, []host.Action{host.ActionStartSystemUpdate}, rec.actions())
}

func TestUpdateNotificationsReachMountedSession(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = goToStep(t, m, catalog.StepSystemUpdates)
	m, _ = send(t, m, runes("u"))

	m, _ = send(t, m, notificationMsg{notification: host.UpdateLog{Message: "Reading package lists"}})
	m, _ = send(t, m, notificationMsg{notification: host.UpdateStatus{Status: host.UpdateProgress, Percentage: 40}})

	assert.Equal(t, []string{"> Reading package lists"}, m.update.Logs)
	assert.Equal(t, 40, m.update.Progress)

	m, _ = send(t, m, notificationMsg{notification: host.UpdateStatus{Status: host.UpdateCompleted}})
	assert.Equal(t, wizard.PhaseCompleted, m.update.Status)
	assert.Equal(t, 100, m.update.Progress)
}

func TestLeavingStepDiscardsSession(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = goToStep(t, m, catalog.StepSystemUpdates)
	m, _ = send(t, m, notificationMsg{notification: host.UpdateLog{Message: "a"}})
	require.Len(t, m.update.Logs, 1)

	m, _ = send(t, m, keyRight)
	assert.Nil(t, m.update)

	m, _ = send(t, m, notificationMsg{notification: host.UpdateLog{Message: "b"}})
	m, _ = send(t, m, keyLeft)
	require.NotNil(t, m.update)
	assert.Empty(t, m.update.Logs)
}

func TestLogsToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = goToStep(t, m, catalog.StepSystemUpdates)

	m, _ = send(t, m, runes("v"))
	assert.False(t, m.showLogs)
	m, _ = send(t, m, runes("v"))
	assert.True(t, m.showLogs)
}

func TestDriverManagerKey(t *testing.T) {
	m, _, rec := newTestModel(t)
	m = goToStep(t, m, catalog.StepDriverUpdates)

	send(t, m, runes("d"))
	assert.Equal(t, []host.Action{host.ActionLaunchDriverManager}, rec.actions())
}

func TestAppSelectionAndInstall(t *testing.T) {
	m, _, rec := newTestModel(t)
	m = goToStep(t, m, catalog.StepAppSuggestions)
	apps := catalog.PopularApps()
	require.GreaterOrEqual(t, len(apps), 2)

	m, _ = send(t, m, runes("i"))
	assert.Empty(t, rec.intents)

	m, _ = send(t, m, keySpace)
	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keySpace)
	assert.Equal(t, 2, m.selection.Len())

	m, _ = send(t, m, runes("i"))
	require.Len(t, rec.intents, 1)
	assert.Equal(t, host.ActionInstallApps, rec.intents[0].Action)
	assert.Equal(t, []string{apps[0].ID, apps[1].ID}, rec.intents[0].Apps())
	assert.Equal(t, 2, m.selection.Len())

	m, _ = send(t, m, keyLeft)
	m, _ = send(t, m, keyRight)
	assert.Equal(t, 0, m.selection.Len())
}

func TestReadyTogglesAutostart(t *testing.T) {
	m, ctrl, rec := newTestModel(t)
	m = goToStep(t, m, catalog.StepReady)

	send(t, m, keySpace)
	assert.False(t, ctrl.Snapshot().Autostart)
	require.Len(t, rec.intents, 1)
	assert.Equal(t, "app://set-autostart?enabled=false", rec.intents[0].URL())
}

func TestNextOnLastStepCloses(t *testing.T) {
	m, ctrl, rec := newTestModel(t)
	m = goToStep(t, m, catalog.StepReady)

	m, _ = send(t, m, keyEnter)
	assert.True(t, m.closing)
	assert.True(t, ctrl.Snapshot().IsLast())
	assert.Equal(t, []host.Action{host.ActionCloseWelcome}, rec.actions())
}

func TestDismissQuits(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := send(t, m, notificationMsg{notification: host.Dismiss{}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNotificationsUpdateController(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	m, _ = send(t, m, notificationMsg{notification: host.ThemeStatus{IsDark: true}})
	send(t, m, notificationMsg{notification: host.LanguageStatus{Language: "de"}})

	state := ctrl.Snapshot()
	assert.True(t, state.Dark)
	assert.Equal(t, "de", state.Language)
}

func TestLanguageMenu(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	codes := locale.Available()
	current := -1
	for i, code := range codes {
		if code == "en" {
			current = i
		}
	}
	require.GreaterOrEqual(t, current, 0)
	require.Less(t, current, len(codes)-1)

	m, _ = send(t, m, runes("g"))
	require.True(t, m.showLangMenu)
	assert.Equal(t, current, m.langCursor)

	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keyEnter)
	assert.False(t, m.showLangMenu)
	assert.Equal(t, codes[current+1], ctrl.Snapshot().Language)
	assert.Equal(t, 0, ctrl.Snapshot().StepIndex)
}

func TestViewFollowsLanguage(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	en, _ := locale.Lookup("en")
	tr, _ := locale.Lookup("tr")

	assert.Contains(t, m.View(), en.Welcome.Title)

	require.NoError(t, ctrl.SetLanguage("tr"))
	assert.Contains(t, m.View(), tr.Welcome.Title)
}

func TestViewRendersEveryStep(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	b := ctrl.Snapshot().Bundle()

	for _, step := range catalog.Steps() {
		m = goToStep(t, m, step.ID)
		assert.Contains(t, m.View(), b.Footer.Copyright, "step %s", step.ID)
	}
}
