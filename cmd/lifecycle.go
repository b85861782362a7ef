package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tools4digits/sysunit/internal/unit"
)

// resolveUnit turns a command argument into the full unit name handed to
// systemctl. Without --instance the argument passes through, defaulting the
// type extension to .service; with --instance the argument must be a
// template name and the instance is formatted and escaped into it.
func resolveUnit(arg, instance string) (string, error) {
	if instance == "" {
		if !strings.Contains(arg, ".") {
			arg += ".service"
		}
		return arg, nil
	}
	name, err := unit.ParseName(arg)
	if err != nil {
		return "", err
	}
	return name.Instance(instance)
}

// lifecycleVerb is one systemctl verb exposed as a subcommand.
type lifecycleVerb struct {
	use   string
	short string
	run   func(ctx context.Context, app *App, unitName string) error
}

func lifecycleVerbs() []lifecycleVerb {
	return []lifecycleVerb{
		{
			use:   "start",
			short: "Start a unit",
			run: func(ctx context.Context, app *App, unitName string) error {
				return app.Systemd.Start(ctx, unitName)
			},
		},
		{
			use:   "stop",
			short: "Stop a unit",
			run: func(ctx context.Context, app *App, unitName string) error {
				return app.Systemd.Stop(ctx, unitName)
			},
		},
		{
			use:   "restart",
			short: "Restart a unit",
			run: func(ctx context.Context, app *App, unitName string) error {
				return app.Systemd.Restart(ctx, unitName)
			},
		},
		{
			use:   "enable",
			short: "Enable a unit",
			run: func(ctx context.Context, app *App, unitName string) error {
				return app.Systemd.Enable(ctx, unitName)
			},
		},
		{
			use:   "disable",
			short: "Disable a unit",
			run: func(ctx context.Context, app *App, unitName string) error {
				return app.Systemd.Disable(ctx, unitName)
			},
		},
		{
			use:   "status",
			short: "Show the status of a unit",
			run: func(ctx context.Context, app *App, unitName string) error {
				out, err := app.Systemd.Status(ctx, unitName)
				if out != "" {
					fmt.Println(out)
					// systemctl status exits non-zero for inactive units;
					// the output above is the answer, not a failure
					return nil
				}
				return err
			},
		},
	}
}

// lifecycleCommands builds the start/stop/restart/enable/disable/status
// subcommands, all sharing the UNIT argument and the --instance flag.
func lifecycleCommands() []*cobra.Command {
	verbs := lifecycleVerbs()
	cmds := make([]*cobra.Command, 0, len(verbs))

	for _, verb := range verbs {
		var instance string

		cobraCmd := &cobra.Command{
			Use:   verb.use + " UNIT",
			Short: verb.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app := getApp(cmd)
				unitName, err := resolveUnit(args[0], instance)
				if err != nil {
					return err
				}
				return verb.run(cmd.Context(), app, unitName)
			},
			SilenceUsage:  true,
			SilenceErrors: true,
		}
		cobraCmd.Flags().StringVarP(&instance, "instance", "i", "", "Instance name for a templated unit")

		cmds = append(cmds, cobraCmd)
	}
	return cmds
}

// ReloadCommand represents the reload command.
type ReloadCommand struct{}

// GetCobraCommand returns the cobra command for reloading the manager.
func (c *ReloadCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the service manager configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getApp(cmd).Systemd.DaemonReload(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}
