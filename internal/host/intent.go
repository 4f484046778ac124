// Package host defines the contract between the wizard and the process that
// acts on its behalf: outbound intents, inbound notifications and the hub
// that routes both.
package host

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rostart/rostart/internal/errdefs"
)

// Scheme is the pseudo-URL scheme used by the legacy navigation contract.
const Scheme = "app"

type Action string

const (
	ActionSetAutostart        Action = "set-autostart"
	ActionCloseWelcome        Action = "close-welcome"
	ActionLaunchDriverManager Action = "launch-driver-manager"
	ActionStartSystemUpdate   Action = "start-system-update"
	ActionInstallApps         Action = "install-apps"
)

var knownActions = map[Action]bool{
	ActionSetAutostart:        true,
	ActionCloseWelcome:        true,
	ActionLaunchDriverManager: true,
	ActionStartSystemUpdate:   true,
	ActionInstallApps:         true,
}

// Intent is a one-way request for the host to perform a privileged action.
// There is no acknowledgment; Dispatch only reports local delivery errors.
type Intent struct {
	ID     string
	Action Action
	Params url.Values
}

// Dispatcher delivers intents to the host.
type Dispatcher interface {
	Dispatch(ctx context.Context, in Intent) error
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(ctx context.Context, in Intent) error

func (f DispatchFunc) Dispatch(ctx context.Context, in Intent) error { return f(ctx, in) }

func newIntent(action Action, params url.Values) Intent {
	if params == nil {
		params = url.Values{}
	}
	return Intent{ID: uuid.NewString(), Action: action, Params: params}
}

func SetAutostart(enabled bool) Intent {
	return newIntent(ActionSetAutostart, url.Values{"enabled": {strconv.FormatBool(enabled)}})
}

func CloseWelcome() Intent { return newIntent(ActionCloseWelcome, nil) }

func LaunchDriverManager() Intent { return newIntent(ActionLaunchDriverManager, nil) }

func StartSystemUpdate() Intent { return newIntent(ActionStartSystemUpdate, nil) }

func InstallApps(ids []string) Intent {
	return newIntent(ActionInstallApps, url.Values{"apps": {strings.Join(ids, ",")}})
}

// URL renders the intent as app://<action>[?<query>].
func (in Intent) URL() string {
	u := url.URL{Scheme: Scheme, Host: string(in.Action)}
	if len(in.Params) > 0 {
		u.RawQuery = in.Params.Encode()
	}
	return u.String()
}

func (in Intent) String() string { return in.URL() }

// Enabled returns the enabled flag of a set-autostart intent.
func (in Intent) Enabled() (bool, error) {
	raw := in.Params.Get("enabled")
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: enabled=%q", errdefs.ErrInvalidIntent, raw)
	}
	return enabled, nil
}

// Apps returns the identifiers carried by an install-apps intent.
func (in Intent) Apps() []string {
	raw := in.Params.Get("apps")
	if raw == "" {
		return nil
	}
	var out []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Validate checks the action is known and its parameters are well formed.
func (in Intent) Validate() error {
	if !knownActions[in.Action] {
		return errdefs.NewCustomError(errdefs.ErrTypeInvalidIntent, fmt.Sprintf("unknown action: %s", in.Action))
	}
	switch in.Action {
	case ActionSetAutostart:
		if _, err := in.Enabled(); err != nil {
			return err
		}
	case ActionInstallApps:
		if len(in.Apps()) == 0 {
			return errdefs.NewCustomError(errdefs.ErrTypeInvalidIntent, "install-apps requires at least one app")
		}
	}
	return nil
}

// ParseIntent parses a pseudo-URL such as app://install-apps?apps=a%2Cb.
func ParseIntent(raw string) (Intent, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", errdefs.ErrInvalidIntent, err)
	}
	if u.Scheme != Scheme {
		return Intent{}, errdefs.NewCustomError(errdefs.ErrTypeInvalidIntent, fmt.Sprintf("unexpected scheme: %q", u.Scheme))
	}

	in := newIntent(Action(u.Host), u.Query())
	if err := in.Validate(); err != nil {
		return Intent{}, err
	}
	return in, nil
}
