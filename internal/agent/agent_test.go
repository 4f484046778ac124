package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rostart/rostart/internal/host"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const autostartDir = "/home/user/.config/autostart"

func newAgent(t *testing.T, opts Options) (*Agent, *host.Hub, *host.Subscription) {
	t.Helper()
	hub := host.NewHub()
	sub := hub.Subscribe(128)
	t.Cleanup(sub.Unsubscribe)

	if opts.Fs == nil {
		opts.Fs = afero.NewMemMapFs()
	}
	if opts.AutostartDir == "" {
		opts.AutostartDir = autostartDir
	}
	a := New(hub, opts)
	t.Cleanup(a.Close)
	hub.AddSink("local", a)
	return a, hub, sub
}

func next(t *testing.T, sub *host.Subscription) host.Notification {
	t.Helper()
	select {
	case n := <-sub.C():
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return nil
	}
}

func TestSetAutostartWritesEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	a, hub, sub := newAgent(t, Options{Fs: fs, Exec: "/usr/bin/rostart"})

	require.NoError(t, hub.Dispatch(context.Background(), host.SetAutostart(true)))
	assert.Equal(t, host.AutostartStatus{Enabled: true}, next(t, sub))

	data, err := afero.ReadFile(fs, autostartDir+"/rostart.desktop")
	require.NoError(t, err)
	assert.Contains(t, string(data), `Exec="/usr/bin/rostart"`)
	assert.Contains(t, string(data), "Name=Ro-Start")

	enabled, err := a.AutostartEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, hub.Dispatch(context.Background(), host.SetAutostart(false)))
	assert.Equal(t, host.AutostartStatus{Enabled: false}, next(t, sub))

	enabled, err = a.AutostartEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestDisableAutostartWhenAbsent(t *testing.T) {
	a, _, _ := newAgent(t, Options{})
	assert.NoError(t, a.SetAutostart(false))
}

func TestCloseWelcomePublishesDismiss(t *testing.T) {
	_, hub, sub := newAgent(t, Options{})
	require.NoError(t, hub.Dispatch(context.Background(), host.CloseWelcome()))
	assert.Equal(t, host.Dismiss{}, next(t, sub))
}

func TestSimulatedUpdate(t *testing.T) {
	_, hub, sub := newAgent(t, Options{Transcript: []string{"one", "two"}})

	require.NoError(t, hub.Dispatch(context.Background(), host.StartSystemUpdate()))

	assert.Equal(t, host.UpdateLog{Message: "one"}, next(t, sub))
	assert.Equal(t, host.UpdateStatus{Status: host.UpdateProgress, Percentage: 50}, next(t, sub))
	assert.Equal(t, host.UpdateLog{Message: "two"}, next(t, sub))
	assert.Equal(t, host.UpdateStatus{Status: host.UpdateProgress, Percentage: 100}, next(t, sub))
	assert.Equal(t, host.UpdateStatus{Status: host.UpdateCompleted}, next(t, sub))
}

func TestCloseStopsUpdate(t *testing.T) {
	a, hub, sub := newAgent(t, Options{StepDelay: time.Hour})
	require.NoError(t, hub.Dispatch(context.Background(), host.StartSystemUpdate()))

	done := make(chan struct{})
	go func() {
		a.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not stop the update")
	}

	select {
	case n := <-sub.C():
		t.Fatalf("unexpected notification %v", n)
	default:
	}
}

func TestLaunchDriverManager(t *testing.T) {
	a, _, _ := newAgent(t, Options{DriverManager: "ro-control", DriverManagerURL: "https://example.org/drivers"})

	var started [][]string
	a.startDetached = func(name string, args ...string) error {
		started = append(started, append([]string{name}, args...))
		return nil
	}

	a.lookPath = func(string) (string, error) { return "/usr/bin/ro-control", nil }
	require.NoError(t, a.Handle(context.Background(), host.LaunchDriverManager()))

	a.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	require.NoError(t, a.Handle(context.Background(), host.LaunchDriverManager()))

	assert.Equal(t, [][]string{
		{"/usr/bin/ro-control"},
		{"xdg-open", "https://example.org/drivers"},
	}, started)

	a.opts.DriverManagerURL = ""
	assert.Error(t, a.Handle(context.Background(), host.LaunchDriverManager()))
}

func TestInstallAppsOnlyLogs(t *testing.T) {
	a, _, sub := newAgent(t, Options{})
	require.NoError(t, a.Handle(context.Background(), host.InstallApps([]string{"vlc"})))

	select {
	case n := <-sub.C():
		t.Fatalf("unexpected notification %v", n)
	default:
	}
}

type fakeDesktop struct{}

func (fakeDesktop) PublishCurrent(pub host.Publisher) {
	pub.Publish(host.ThemeStatus{IsDark: true})
}

func TestAnnounce(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, autostartDir+"/rostart.desktop", []byte("x"), 0o644))

	a, _, sub := newAgent(t, Options{
		Fs:      fs,
		Desktop: fakeDesktop{},
		DetectSpecs: func(context.Context) (host.SystemSpecs, error) {
			return host.SystemSpecs{CPU: "X"}, nil
		},
	})
	a.Announce(context.Background())

	assert.Equal(t, host.AutostartStatus{Enabled: true}, next(t, sub))
	assert.Equal(t, host.ThemeStatus{IsDark: true}, next(t, sub))
	assert.Equal(t, host.SpecsUpdate{SystemSpecs: host.SystemSpecs{CPU: "X"}}, next(t, sub))
}
