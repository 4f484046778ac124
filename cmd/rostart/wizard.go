package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rostart/rostart/internal/agent"
	"github.com/rostart/rostart/internal/config"
	"github.com/rostart/rostart/internal/desktop"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/log"
	"github.com/rostart/rostart/internal/server"
	"github.com/rostart/rostart/internal/sysinfo"
	"github.com/rostart/rostart/internal/tui"
	"github.com/rostart/rostart/internal/wizard"
	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.UI.Language, _ = flags.GetString("lang")
	}
	if flags.Changed("dark") {
		cfg.UI.Dark, _ = flags.GetBool("dark")
	}
	if flags.Changed("host") {
		mode, _ := flags.GetString("host")
		cfg.Host.Mode = config.HostMode(mode)
		switch cfg.Host.Mode {
		case config.HostLocal, config.HostSocket, config.HostBoth:
		default:
			return cfg, fmt.Errorf("invalid --host %q", mode)
		}
	}
	return cfg, nil
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	if !locale.Has(cfg.UI.Language) {
		log.Warnf("Unknown language %q, using %s", cfg.UI.Language, locale.DefaultLanguage)
	}

	logFile, err := log.ToFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	hub := host.NewHub()
	defer hub.Close()

	ctrl := wizard.New(hub, wizard.Options{
		Language:  cfg.UI.Language,
		Dark:      cfg.UI.Dark,
		Autostart: cfg.UI.Autostart,
	})

	sub := hub.Subscribe(host.DefaultBuffer)
	defer sub.Unsubscribe()

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	if cfg.Host.Local() {
		a := startAgent(ctx, &wg, hub, cfg)
		defer a.Close()
	}

	noSocket, _ := cmd.Flags().GetBool("no-socket")
	if cfg.Host.Socket() && !noSocket {
		srv := server.New(hub, ctrl.Snapshot, cfg.Host.SocketPath)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Serve(ctx); err != nil {
				log.Errorf("API server: %v", err)
			}
		}()
	}

	log.Infof("Starting wizard (language=%s, host=%s)", ctrl.Snapshot().Language, cfg.Host.Mode)
	return tui.Run(ctx, ctrl, sub)
}

// startAgent registers the built-in host and announces the initial state in
// the background, since hardware probing can take a moment.
func startAgent(ctx context.Context, wg *sync.WaitGroup, hub *host.Hub, cfg config.Config) *agent.Agent {
	execPath, err := os.Executable()
	if err != nil {
		execPath = "rostart"
	}

	var announcer agent.Announcer
	dm, err := desktop.NewManager()
	if err != nil {
		log.Warnf("Desktop integration disabled: %v", err)
	} else {
		announcer = dm
	}

	a := agent.New(hub, agent.Options{
		AutostartDir:     cfg.Host.AutostartDir,
		Exec:             execPath,
		DriverManager:    cfg.Host.DriverManager,
		DriverManagerURL: cfg.Host.DriverManagerURL,
		StepDelay:        cfg.Host.UpdateStepDelay,
		DetectSpecs:      sysinfo.Detect,
		Desktop:          announcer,
	})
	hub.AddSink("agent", a)

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Announce(ctx)
	}()

	if dm != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer dm.Close()
			if err := dm.Watch(ctx, hub); err != nil {
				log.Debugf("Theme watch stopped: %v", err)
			}
		}()
	}

	return a
}
