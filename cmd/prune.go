package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tools4digits/sysunit/internal/definition"
)

// PruneOptions holds prune command options.
type PruneOptions struct {
	Path   string
	DryRun bool
}

// PruneCommand reconciles the registry against the definitions and the
// unit directory: files sysunit owns that the definitions no longer
// produce are deleted, and records whose files are gone are dropped.
type PruneCommand struct{}

// GetCobraCommand returns the cobra command for pruning stale units.
func (c *PruneCommand) GetCobraCommand() *cobra.Command {
	var opts PruneOptions

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove managed units the definitions no longer produce",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := getApp(cmd)
			if opts.Path == "" {
				opts.Path = app.Config.DefinitionsDir
			}
			return c.Run(cmd.Context(), app, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pruneCmd.Flags().StringVarP(&opts.Path, "file", "f", "", "Definition file or directory (defaults to the configured definitions directory)")
	pruneCmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would be pruned without deleting anything")

	return pruneCmd
}

// Run executes the prune command.
func (c *PruneCommand) Run(ctx context.Context, app *App, opts PruneOptions) error {
	expected := map[string]bool{}
	defs, err := definition.LoadPath(opts.Path)
	if err != nil {
		// Without definitions everything in the registry would be pruned;
		// that is almost never the intent, so a missing path is an error
		return fmt.Errorf("failed to load definitions from %s: %w", opts.Path, err)
	}
	units, err := defs.BuildAll()
	if err != nil {
		return err
	}
	for _, u := range units {
		expected[u.Name.FullName()] = true
	}

	records, err := app.Registry.FindAll()
	if err != nil {
		return fmt.Errorf("error finding units: %w", err)
	}

	pruned := 0
	for _, record := range records {
		fullName := record.FullName()
		path := app.FSService.UnitFilePath(fullName)

		if expected[fullName] {
			continue
		}

		_, statErr := os.Stat(path)
		fileExists := statErr == nil

		if opts.DryRun {
			if fileExists {
				fmt.Printf("would remove %s\n", path)
			} else {
				fmt.Printf("would drop stale record %s\n", fullName)
			}
			pruned++
			continue
		}

		if fileExists {
			if err := app.FSService.RemoveUnitFile(path, false); err != nil {
				return err
			}
			app.Logger.Info("Pruned unit file", "path", path)
		} else {
			app.Logger.Info("Dropped stale registry record", "unit", fullName)
		}
		if err := app.Registry.Delete(record.Name, record.Type); err != nil {
			return fmt.Errorf("failed to drop registry record for %s: %w", fullName, err)
		}
		pruned++
	}

	if pruned > 0 && !opts.DryRun {
		if err := app.Systemd.DaemonReload(ctx); err != nil {
			return err
		}
	}
	fmt.Printf("%d pruned\n", pruned)
	return nil
}
