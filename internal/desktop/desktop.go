// Package desktop reads the user's theme and language from the desktop
// session over D-Bus.
package desktop

import (
	"context"
	"fmt"
	"os"

	"github.com/godbus/dbus/v5"
	"github.com/rostart/rostart/internal/errdefs"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/log"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalSettings  = "org.freedesktop.portal.Settings"
	appearanceNS    = "org.freedesktop.appearance"
	colorSchemeKey  = "color-scheme"
	accountsDest    = "org.freedesktop.Accounts"
	accountsPath    = "/org/freedesktop/Accounts"
	accountsUserIfc = "org.freedesktop.Accounts.User"

	// colorSchemeDark is the portal value for "prefer dark".
	colorSchemeDark uint32 = 1
)

// Manager holds optional connections to the system and session buses.
// Either may be missing; the matching queries then fail.
type Manager struct {
	systemConn  *dbus.Conn
	sessionConn *dbus.Conn
	settingsObj dbus.BusObject
	currentUID  int64
}

func NewManager() (*Manager, error) {
	systemConn, err := dbus.ConnectSystemBus()
	if err != nil {
		log.Debugf("system bus unavailable: %v", err)
		systemConn = nil
	}

	sessionConn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Debugf("session bus unavailable: %v", err)
		sessionConn = nil
	}

	if systemConn == nil && sessionConn == nil {
		return nil, fmt.Errorf("%w: no D-Bus connection", errdefs.ErrHostUnavailable)
	}

	m := &Manager{
		systemConn:  systemConn,
		sessionConn: sessionConn,
		currentUID:  int64(os.Getuid()),
	}
	if sessionConn != nil {
		m.settingsObj = sessionConn.Object(portalDest, portalPath)
	}
	return m, nil
}

// IsDark reports whether the portal prefers a dark color scheme.
func (m *Manager) IsDark() (bool, error) {
	if m.settingsObj == nil {
		return false, fmt.Errorf("settings portal not available")
	}

	var variant dbus.Variant
	err := m.settingsObj.Call(portalSettings+".ReadOne", 0, appearanceNS, colorSchemeKey).Store(&variant)
	if err != nil {
		return false, fmt.Errorf("read color-scheme: %w", err)
	}

	scheme, ok := colorScheme(variant)
	if !ok {
		return false, fmt.Errorf("unexpected color-scheme value %v", variant)
	}
	return scheme == colorSchemeDark, nil
}

// Language returns the AccountsService language of the current user as a
// two-letter code.
func (m *Manager) Language() (string, error) {
	if m.systemConn == nil {
		return "", fmt.Errorf("accounts service not available")
	}

	accounts := m.systemConn.Object(accountsDest, accountsPath)

	var userPath dbus.ObjectPath
	if err := accounts.Call(accountsDest+".FindUserById", 0, m.currentUID).Store(&userPath); err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	variant, err := m.systemConn.Object(accountsDest, userPath).GetProperty(accountsUserIfc + ".Language")
	if err != nil {
		return "", fmt.Errorf("read language: %w", err)
	}

	var lang string
	if err := variant.Store(&lang); err != nil {
		return "", err
	}
	return locale.Normalize(lang), nil
}

// PublishCurrent pushes the current theme and, when a bundle exists for it,
// the user's language.
func (m *Manager) PublishCurrent(pub host.Publisher) {
	if dark, err := m.IsDark(); err != nil {
		log.Debugf("theme: %v", err)
	} else {
		pub.Publish(host.ThemeStatus{IsDark: dark})
	}

	lang, err := m.Language()
	switch {
	case err != nil:
		log.Debugf("language: %v", err)
	case locale.Has(lang):
		pub.Publish(host.LanguageStatus{Language: lang})
	default:
		log.Debugf("No bundle for desktop language %q", lang)
	}
}

// Watch publishes a theme status whenever the portal color scheme changes,
// until ctx is done.
func (m *Manager) Watch(ctx context.Context, pub host.Publisher) error {
	if m.sessionConn == nil {
		return fmt.Errorf("no session bus connection")
	}

	match := []dbus.MatchOption{
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(portalSettings),
		dbus.WithMatchMember("SettingChanged"),
	}
	if err := m.sessionConn.AddMatchSignal(match...); err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	m.sessionConn.Signal(signals)
	defer func() {
		m.sessionConn.RemoveSignal(signals)
		_ = m.sessionConn.RemoveMatchSignal(match...)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			if status, ok := themeFromSignal(sig); ok {
				log.Debugf("Portal color scheme changed, dark=%v", status.IsDark)
				pub.Publish(status)
			}
		}
	}
}

func (m *Manager) Close() {
	if m.systemConn != nil {
		m.systemConn.Close()
	}
	if m.sessionConn != nil {
		m.sessionConn.Close()
	}
}

func themeFromSignal(sig *dbus.Signal) (host.ThemeStatus, bool) {
	if sig == nil || sig.Name != portalSettings+".SettingChanged" || len(sig.Body) != 3 {
		return host.ThemeStatus{}, false
	}
	ns, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if ns != appearanceNS || key != colorSchemeKey {
		return host.ThemeStatus{}, false
	}

	value, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return host.ThemeStatus{}, false
	}
	scheme, ok := colorScheme(value)
	if !ok {
		return host.ThemeStatus{}, false
	}
	return host.ThemeStatus{IsDark: scheme == colorSchemeDark}, true
}

// colorScheme unwraps the value, which older portals nest in a second variant.
func colorScheme(v dbus.Variant) (uint32, bool) {
	switch val := v.Value().(type) {
	case uint32:
		return val, true
	case dbus.Variant:
		return colorScheme(val)
	}
	return 0, false
}
