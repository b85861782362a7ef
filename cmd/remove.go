package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tools4digits/sysunit/internal/unit"
)

// RemoveOptions holds remove command options.
type RemoveOptions struct {
	RequireExists bool
	Stop          bool
}

// RemoveCommand deletes unit files and their registry records.
type RemoveCommand struct{}

// GetCobraCommand returns the cobra command for removing units.
func (c *RemoveCommand) GetCobraCommand() *cobra.Command {
	var opts RemoveOptions

	removeCmd := &cobra.Command{
		Use:   "remove UNIT...",
		Short: "Remove unit files managed by sysunit",
		Long: `Remove deletes the unit file for each named unit and drops its registry
record, then reloads the manager. Removing an already-absent file succeeds
unless --require-exists is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context(), getApp(cmd), opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	removeCmd.Flags().BoolVar(&opts.RequireExists, "require-exists", false, "Fail when a unit file is already absent")
	removeCmd.Flags().BoolVar(&opts.Stop, "stop", false, "Stop each unit before removing it")

	return removeCmd
}

// Run executes the remove command.
func (c *RemoveCommand) Run(ctx context.Context, app *App, opts RemoveOptions, args []string) error {
	removed := 0
	for _, arg := range args {
		name, err := unit.ParseName(arg)
		if err != nil {
			return err
		}
		fullName := name.FullName()

		if opts.Stop && !name.Template {
			if err := app.Systemd.Stop(ctx, fullName); err != nil {
				app.Logger.Warn("Failed to stop unit before removal", "unit", fullName, "error", err)
			}
		}

		path := app.FSService.UnitFilePath(fullName)
		if err := app.FSService.RemoveUnitFile(path, opts.RequireExists); err != nil {
			return err
		}
		if err := app.Registry.Delete(recordName(name), name.Type); err != nil {
			return fmt.Errorf("failed to drop registry record for %s: %w", fullName, err)
		}
		app.Logger.Info("Removed unit", "unit", fullName)
		removed++
	}

	if removed > 0 {
		if err := app.Systemd.DaemonReload(ctx); err != nil {
			return err
		}
	}
	fmt.Printf("%d removed\n", removed)
	return nil
}
