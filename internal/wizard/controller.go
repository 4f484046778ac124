// Package wizard holds the onboarding state machine and the per-step state
// that the terminal UI renders.
package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/errdefs"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/log"
)

// State is the cross-step state owned by the controller.
type State struct {
	StepIndex int               `json:"stepIndex"`
	Language  string            `json:"language"`
	Dark      bool              `json:"dark"`
	Autostart bool              `json:"autostart"`
	Specs     *host.SystemSpecs `json:"specs,omitempty"`
}

// Bundle returns the bundle for the active language, or nil.
func (s State) Bundle() *locale.Bundle {
	b, _ := locale.Lookup(s.Language)
	return b
}

func (s State) Step() catalog.Step {
	return catalog.Steps()[s.StepIndex]
}

func (s State) IsLast() bool { return s.StepIndex == catalog.StepCount()-1 }

func (s State) clone() State {
	if s.Specs != nil {
		specs := *s.Specs
		s.Specs = &specs
	}
	return s
}

type Options struct {
	Language  string
	Dark      bool
	Autostart bool
}

// Controller owns State. The UI goroutine drives it; Snapshot may be called
// from anywhere.
type Controller struct {
	mu         sync.RWMutex
	state      State
	dispatcher host.Dispatcher
}

// New builds a controller at the welcome step. An unknown language falls
// back to locale.DefaultLanguage.
func New(d host.Dispatcher, opts Options) *Controller {
	lang := opts.Language
	if !locale.Has(lang) {
		if lang != "" {
			log.Warnf("Unknown language %q, using %s", lang, locale.DefaultLanguage)
		}
		lang = locale.DefaultLanguage
	}

	return &Controller{
		dispatcher: d,
		state: State{
			Language:  lang,
			Dark:      opts.Dark,
			Autostart: opts.Autostart,
		},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Next advances one step. On the last step it dispatches close-welcome
// instead and reports true.
func (c *Controller) Next(ctx context.Context) bool {
	c.mu.Lock()
	if c.state.StepIndex < catalog.StepCount()-1 {
		c.state.StepIndex++
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	c.Dispatch(ctx, host.CloseWelcome())
	return true
}

func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.StepIndex > 0 {
		c.state.StepIndex--
	}
}

func (c *Controller) SetLanguage(code string) error {
	if !locale.Has(code) {
		return fmt.Errorf("%w: %q", errdefs.ErrUnknownLanguage, code)
	}

	c.mu.Lock()
	c.state.Language = code
	c.mu.Unlock()
	return nil
}

func (c *Controller) SetDark(dark bool) {
	c.mu.Lock()
	c.state.Dark = dark
	c.mu.Unlock()
}

func (c *Controller) ToggleTheme() {
	c.mu.Lock()
	c.state.Dark = !c.state.Dark
	c.mu.Unlock()
}

// SetAutostart updates the flag and then tells the host. The flag is kept
// even if the dispatch fails.
func (c *Controller) SetAutostart(ctx context.Context, enabled bool) {
	c.mu.Lock()
	c.state.Autostart = enabled
	c.mu.Unlock()

	c.Dispatch(ctx, host.SetAutostart(enabled))
}

func (c *Controller) ToggleAutostart(ctx context.Context) {
	c.SetAutostart(ctx, !c.Snapshot().Autostart)
}

// Dispatch sends in to the host. Failures are logged and otherwise
// invisible to the wizard.
func (c *Controller) Dispatch(ctx context.Context, in host.Intent) {
	if c.dispatcher == nil {
		log.Warnf("No host attached, dropping %s", in.URL())
		return
	}
	if err := c.dispatcher.Dispatch(ctx, in); err != nil {
		log.Errorf("Dispatch %s failed: %v", in.URL(), err)
	}
}

// Apply folds a host notification into State. It reports false for
// notifications that are not controller state.
func (c *Controller) Apply(n host.Notification) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch v := n.(type) {
	case host.AutostartStatus:
		c.state.Autostart = v.Enabled
	case host.SpecsUpdate:
		var cur host.SystemSpecs
		if c.state.Specs != nil {
			cur = *c.state.Specs
		}
		merged := cur.Merge(v.SystemSpecs)
		c.state.Specs = &merged
	case host.ThemeStatus:
		c.state.Dark = v.IsDark
	case host.LanguageStatus:
		if !locale.Has(v.Language) {
			log.Warnf("Ignoring language status for unknown language %q", v.Language)
			return true
		}
		c.state.Language = v.Language
	default:
		return false
	}
	return true
}
