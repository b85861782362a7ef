package cmd

import (
	"context"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// DaemonOptions holds daemon command options.
type DaemonOptions struct {
	SyncInterval time.Duration
	Start        bool
	Enable       bool
}

// DaemonCommand keeps the unit directory in sync with the definitions:
// it re-applies on file change events and on a periodic ticker.
type DaemonCommand struct{}

// GetCobraCommand returns the cobra command for daemon operations.
func (c *DaemonCommand) GetCobraCommand() *cobra.Command {
	var opts DaemonOptions

	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Watch the definitions directory and re-apply on change",
		Long: `Daemon applies the definitions once, then keeps watching the definitions
directory, re-applying whenever a definition file changes and on a periodic
resync interval.

When running under systemd supervision the daemon sends readiness and
watchdog notifications over the notification socket.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := getApp(cmd)
			if opts.SyncInterval > 0 {
				app.Config.SyncInterval = opts.SyncInterval
			}
			return c.Run(cmd.Context(), app, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	daemonCmd.Flags().DurationVarP(&opts.SyncInterval, "sync-interval", "i", 0, "Interval between periodic resyncs (defaults to the configured interval)")
	daemonCmd.Flags().BoolVar(&opts.Start, "start", false, "Start applied units")
	daemonCmd.Flags().BoolVar(&opts.Enable, "enable", false, "Enable applied units")

	return daemonCmd
}

// Run executes the daemon loop until the context is cancelled.
func (c *DaemonCommand) Run(ctx context.Context, app *App, opts DaemonOptions) error {
	definitionsDir := app.Config.DefinitionsDir
	if err := os.MkdirAll(definitionsDir, 0750); err != nil {
		return err
	}

	applyOpts := ApplyOptions{
		Path:   definitionsDir,
		Start:  opts.Start,
		Enable: opts.Enable,
	}

	c.apply(ctx, app, applyOpts)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(definitionsDir); err != nil {
		return err
	}

	app.Logger.Info("Watching definitions", "dir", definitionsDir, "resync", app.Config.SyncInterval)

	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		app.Logger.Warn("Failed to notify systemd of readiness", "error", err)
	} else if sent {
		app.Logger.Debug("Notified systemd that daemon is ready")
	}

	ticker := time.NewTicker(app.Config.SyncInterval)
	defer ticker.Stop()

	watchdogTicker := time.NewTicker(30 * time.Second)
	defer watchdogTicker.Stop()

	// Change events arrive in bursts while files are written; a short
	// settle delay folds a burst into one apply pass.
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			app.Logger.Debug("Definition change detected", "event", event.String())
			settle = time.After(500 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			app.Logger.Warn("Watcher error", "error", err)

		case <-settle:
			settle = nil
			c.apply(ctx, app, applyOpts)

		case <-ticker.C:
			app.Logger.Debug("Starting scheduled resync")
			c.apply(ctx, app, applyOpts)

		case <-watchdogTicker.C:
			if sent, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog); err != nil {
				app.Logger.Debug("Failed to send watchdog notification", "error", err)
			} else if sent {
				app.Logger.Debug("Sent watchdog notification")
			}
		}
	}
}

// apply runs one apply pass, logging instead of exiting on failure so the
// daemon survives broken definitions.
func (c *DaemonCommand) apply(ctx context.Context, app *App, opts ApplyOptions) {
	if _, err := runApply(ctx, app, opts); err != nil {
		app.Logger.Error("Apply failed", "error", err)
	}
}
