package host

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rostart/rostart/internal/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentURL(t *testing.T) {
	tests := []struct {
		name string
		in   Intent
		want string
	}{
		{"autostart on", SetAutostart(true), "app://set-autostart?enabled=true"},
		{"autostart off", SetAutostart(false), "app://set-autostart?enabled=false"},
		{"close", CloseWelcome(), "app://close-welcome"},
		{"driver manager", LaunchDriverManager(), "app://launch-driver-manager"},
		{"update", StartSystemUpdate(), "app://start-system-update"},
		{"install", InstallApps([]string{"code", "vlc"}), "app://install-apps?apps=code%2Cvlc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.URL())
			assert.NotEmpty(t, tt.in.ID)
		})
	}
}

func TestParseIntentRoundTrip(t *testing.T) {
	in, err := ParseIntent("app://install-apps?apps=google-chrome%2Ccode")
	require.NoError(t, err)
	assert.Equal(t, ActionInstallApps, in.Action)
	assert.Equal(t, []string{"google-chrome", "code"}, in.Apps())

	in, err = ParseIntent("app://set-autostart?enabled=false")
	require.NoError(t, err)
	enabled, err := in.Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestParseIntentRejects(t *testing.T) {
	for _, raw := range []string{
		"https://close-welcome",
		"app://reboot",
		"app://set-autostart?enabled=maybe",
		"app://install-apps",
		"app://install-apps?apps=,",
	} {
		_, err := ParseIntent(raw)
		assert.ErrorIs(t, err, errdefs.ErrInvalidIntent, raw)
	}
}

func TestDecodeNotification(t *testing.T) {
	n, err := DecodeNotification(KindSpecsUpdate, json.RawMessage(`{"cpu":"X","distroId":"ubuntu"}`))
	require.NoError(t, err)
	specs, ok := n.(SpecsUpdate)
	require.True(t, ok)
	assert.Equal(t, "X", specs.CPU)
	assert.Equal(t, "ubuntu", specs.DistroID)

	n, err = DecodeNotification(KindUpdateStatus, json.RawMessage(`{"status":"progress","percentage":55}`))
	require.NoError(t, err)
	assert.Equal(t, UpdateStatus{Status: UpdateProgress, Percentage: 55}, n)

	n, err = DecodeNotification(KindDismiss, nil)
	require.NoError(t, err)
	assert.Equal(t, KindDismiss, n.Kind())
}

func TestDecodeNotificationRejects(t *testing.T) {
	_, err := DecodeNotification("bogus", nil)
	assert.ErrorIs(t, err, errdefs.ErrInvalidNotification)

	_, err = DecodeNotification(KindUpdateStatus, json.RawMessage(`{"status":"paused"}`))
	assert.ErrorIs(t, err, errdefs.ErrInvalidNotification)

	_, err = DecodeNotification(KindLanguageStatus, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, errdefs.ErrInvalidNotification)

	_, err = DecodeNotification(KindThemeStatus, json.RawMessage(`{"isDark":"yes"}`))
	assert.ErrorIs(t, err, errdefs.ErrInvalidNotification)
}

func TestSpecsMergeKeepsExistingFields(t *testing.T) {
	base := SystemSpecs{CPU: "old", GPU: "gpu"}
	merged := base.Merge(SystemSpecs{CPU: "new", RAM: "8 GB"})
	assert.Equal(t, SystemSpecs{CPU: "new", GPU: "gpu", RAM: "8 GB"}, merged)
}

func TestHubPublishOrder(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(8)
	defer sub.Unsubscribe()

	hub.Publish(UpdateLog{Message: "a"})
	hub.Publish(UpdateStatus{Status: UpdateProgress, Percentage: 10})
	hub.Publish(UpdateStatus{Status: UpdateCompleted})

	assert.Equal(t, UpdateLog{Message: "a"}, <-sub.C())
	assert.Equal(t, UpdateStatus{Status: UpdateProgress, Percentage: 10}, <-sub.C())
	assert.Equal(t, UpdateStatus{Status: UpdateCompleted}, <-sub.C())
}

func TestHubPublishDropsWhenFull(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(1)
	defer sub.Unsubscribe()

	hub.Publish(UpdateLog{Message: "first"})
	hub.Publish(UpdateLog{Message: "second"})

	assert.Equal(t, UpdateLog{Message: "first"}, <-sub.C())
	select {
	case n := <-sub.C():
		t.Fatalf("unexpected notification %v", n)
	default:
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(0)
	assert.Equal(t, 1, hub.Subscribers())

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, hub.Subscribers())

	_, open := <-sub.C()
	assert.False(t, open)

	hub.Publish(Dismiss{})
}

func TestHubDispatchFansOut(t *testing.T) {
	hub := NewHub()

	var got []string
	hub.AddSink("a", SinkFunc(func(_ context.Context, in Intent) error {
		got = append(got, "a:"+string(in.Action))
		return nil
	}))
	hub.AddSink("b", SinkFunc(func(_ context.Context, in Intent) error {
		got = append(got, "b:"+string(in.Action))
		return errors.New("boom")
	}))

	err := hub.Dispatch(context.Background(), CloseWelcome())
	assert.ErrorContains(t, err, "b: boom")
	assert.Equal(t, []string{"a:close-welcome", "b:close-welcome"}, got)

	hub.RemoveSink("b")
	got = nil
	require.NoError(t, hub.Dispatch(context.Background(), StartSystemUpdate()))
	assert.Equal(t, []string{"a:start-system-update"}, got)
}

func TestHubDispatchWithoutSinks(t *testing.T) {
	err := NewHub().Dispatch(context.Background(), CloseWelcome())
	assert.ErrorIs(t, err, errdefs.ErrHostUnavailable)
}
