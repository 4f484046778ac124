// Package agent is the built-in host. It acts on wizard intents on the local
// machine and pushes the resulting notifications back through the hub.
package agent

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/log"
	"github.com/spf13/afero"
)

// Announcer publishes state the agent does not own, such as desktop
// preferences.
type Announcer interface {
	PublishCurrent(pub host.Publisher)
}

type Options struct {
	Fs               afero.Fs
	AutostartDir     string
	Exec             string
	DriverManager    string
	DriverManagerURL string
	StepDelay        time.Duration
	Transcript       []string
	DetectSpecs      func(ctx context.Context) (host.SystemSpecs, error)
	Desktop          Announcer
}

type Agent struct {
	opts Options
	pub  host.Publisher

	lookPath      func(string) (string, error)
	startDetached func(name string, args ...string) error

	updateMutex  sync.Mutex
	updateCancel context.CancelFunc
	updateWg     sync.WaitGroup

	baseCtx    context.Context
	baseCancel context.CancelFunc
}

func New(pub host.Publisher, opts Options) *Agent {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Transcript == nil {
		opts.Transcript = catalog.UpdateTranscript
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Agent{
		opts:          opts,
		pub:           pub,
		lookPath:      exec.LookPath,
		startDetached: startDetached,
		baseCtx:       ctx,
		baseCancel:    cancel,
	}
}

// Announce publishes the initial host state: autostart, desktop preferences
// and system specs.
func (a *Agent) Announce(ctx context.Context) {
	enabled, err := a.AutostartEnabled()
	if err != nil {
		log.Warnf("Autostart status: %v", err)
	} else {
		a.pub.Publish(host.AutostartStatus{Enabled: enabled})
	}

	if a.opts.Desktop != nil {
		a.opts.Desktop.PublishCurrent(a.pub)
	}

	if a.opts.DetectSpecs != nil {
		specs, err := a.opts.DetectSpecs(ctx)
		if err != nil {
			log.Warnf("System specs: %v", err)
			return
		}
		a.pub.Publish(host.SpecsUpdate{SystemSpecs: specs})
	}
}

// Handle implements host.Sink.
func (a *Agent) Handle(_ context.Context, in host.Intent) error {
	log.Infof("Host intent %s (id=%s)", in.URL(), in.ID)

	switch in.Action {
	case host.ActionSetAutostart:
		enabled, err := in.Enabled()
		if err != nil {
			return err
		}
		if err := a.SetAutostart(enabled); err != nil {
			return err
		}
		a.pub.Publish(host.AutostartStatus{Enabled: enabled})
	case host.ActionCloseWelcome:
		a.pub.Publish(host.Dismiss{})
	case host.ActionLaunchDriverManager:
		return a.launchDriverManager()
	case host.ActionStartSystemUpdate:
		a.startUpdate()
	case host.ActionInstallApps:
		// Package installation is left to the distribution's tooling.
		log.Infof("Install requested for: %v", in.Apps())
	default:
		return fmt.Errorf("unhandled action %s", in.Action)
	}
	return nil
}

func (a *Agent) launchDriverManager() error {
	if path, err := a.lookPath(a.opts.DriverManager); err == nil {
		log.Infof("Launching driver manager %s", path)
		return a.startDetached(path)
	}
	if a.opts.DriverManagerURL != "" {
		log.Infof("Driver manager %q not installed, opening %s", a.opts.DriverManager, a.opts.DriverManagerURL)
		return a.startDetached("xdg-open", a.opts.DriverManagerURL)
	}
	return fmt.Errorf("driver manager %q not found", a.opts.DriverManager)
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debugf("%s exited: %v", name, err)
		}
	}()
	return nil
}

// Close stops any running simulated update and waits for it to finish.
func (a *Agent) Close() {
	a.baseCancel()
	a.updateWg.Wait()
}
