package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/log"
	"github.com/rostart/rostart/internal/server"
	"github.com/rostart/rostart/internal/server/models"
	"github.com/rostart/rostart/internal/sysinfo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

var rootCmd = &cobra.Command{
	Use:          "rostart",
	Short:        "Ro-Start welcome wizard",
	Long:         "Ro-Start first-run welcome wizard\n\nWalks a new user through system updates, driver status, suggested\napplications and autostart preferences.",
	SilenceUsage: true,
	RunE:         runWizard,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s (build %s)\n", catalog.Info.AppName, catalog.Info.Version, Version)
	},
}

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "Print detected system specs as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := sysinfo.Detect(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(specs)
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify <kind> [json-params]",
	Short: "Send a host notification to a running wizard",
	Long: "Send a host notification to a running wizard.\n\nKinds: " + strings.Join(notifyKinds(), ", ") +
		"\n\nExample: rostart notify update.status '{\"status\":\"progress\",\"percentage\":40}'",
	Args: cobra.RangeArgs(1, 2),
	RunE: runNotify,
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print every intent a running wizard dispatches",
	Args:  cobra.NoArgs,
	RunE:  runListen,
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <app://action?params>",
	Short: "Parse and validate an intent URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := host.ParseIntent(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("action: %s\n", in.Action)
		for _, k := range sortedKeys(in.Params) {
			fmt.Printf("  %s = %s\n", k, strings.Join(in.Params[k], ","))
		}
		fmt.Printf("url:    %s\n", in.URL())
		return nil
	},
}

func notifyKinds() []string {
	kinds := []host.Kind{
		host.KindAutostartStatus,
		host.KindSpecsUpdate,
		host.KindThemeStatus,
		host.KindLanguageStatus,
		host.KindUpdateLog,
		host.KindUpdateStatus,
		host.KindDismiss,
	}
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func dialWizard(cmd *cobra.Command) (*server.Client, error) {
	path, _ := cmd.Flags().GetString("socket")
	if path == "" {
		var err error
		if path, err = server.FindSocket(); err != nil {
			return nil, err
		}
	}
	log.Debugf("Using socket %s", path)
	return server.Dial(path)
}

func runNotify(cmd *cobra.Command, args []string) error {
	method, ok := server.NotifyMethod(host.Kind(args[0]))
	if !ok {
		return fmt.Errorf("unknown notification kind %q (want one of %s)", args[0], strings.Join(notifyKinds(), ", "))
	}

	params := map[string]interface{}{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &params); err != nil {
			return fmt.Errorf("parse params: %w", err)
		}
	}

	client, err := dialWizard(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	var result models.SuccessResult
	if err := client.Call(method, params, &result); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", method)
	return nil
}

func runListen(cmd *cobra.Command, args []string) error {
	client, err := dialWizard(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	return client.Subscribe(ctx, func(ev models.IntentEvent) error {
		fmt.Println(ev.URL)
		return nil
	})
}
