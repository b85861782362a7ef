package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tools4digits/sysunit/internal/definition"
	"github.com/tools4digits/sysunit/internal/fs"
	"github.com/tools4digits/sysunit/internal/registry"
	"github.com/tools4digits/sysunit/internal/unit"
)

// ApplyOptions holds apply command options.
type ApplyOptions struct {
	Path   string
	Start  bool
	Enable bool
	DryRun bool
}

// ApplyCommand renders unit definitions and installs the resulting files.
type ApplyCommand struct{}

// GetCobraCommand returns the cobra command for applying definitions.
func (c *ApplyCommand) GetCobraCommand() *cobra.Command {
	var opts ApplyOptions

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Render unit definitions and install the unit files",
		Long: `Apply loads unit definitions, expands templated names and variables,
renders each unit to its file, and installs changed files into the unit
directory. The manager is reloaded when anything changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := getApp(cmd)
			if opts.Path == "" {
				opts.Path = app.Config.DefinitionsDir
			}
			_, err := runApply(cmd.Context(), app, opts)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	applyCmd.Flags().StringVarP(&opts.Path, "file", "f", "", "Definition file or directory (defaults to the configured definitions directory)")
	applyCmd.Flags().BoolVar(&opts.Start, "start", false, "Start each applied unit")
	applyCmd.Flags().BoolVar(&opts.Enable, "enable", false, "Enable each applied unit")
	applyCmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would change without writing anything")

	return applyCmd
}

// applyResult summarizes one apply pass.
type applyResult struct {
	Written   []string // Full names of units whose files were written
	Unchanged []string // Full names skipped because content matched
}

// runApply is the apply pipeline, shared with the daemon command.
func runApply(ctx context.Context, app *App, opts ApplyOptions) (*applyResult, error) {
	defs, err := definition.LoadPath(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions from %s: %w", opts.Path, err)
	}

	units, err := defs.BuildAll()
	if err != nil {
		return nil, err
	}
	app.Logger.Debug("Loaded definitions", "path", opts.Path, "units", len(units))

	result := &applyResult{}
	for _, u := range units {
		content := u.Render()
		fullName := u.Name.FullName()
		path := app.FSService.UnitFilePath(fullName)

		if !app.FSService.HasUnitChanged(path, content) {
			result.Unchanged = append(result.Unchanged, fullName)
			continue
		}
		if opts.DryRun {
			fmt.Printf("would write %s\n", path)
			result.Written = append(result.Written, fullName)
			continue
		}

		if err := app.FSService.WriteUnitFile(path, content); err != nil {
			return nil, err
		}
		app.Logger.Info("Wrote unit file", "path", path)

		_, err := app.Registry.Upsert(&registry.Unit{
			Name:     recordName(u.Name),
			Type:     u.Name.Type,
			SHA1Hash: fs.GetContentHash(content),
			UserMode: app.Config.UserMode,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record unit %s: %w", fullName, err)
		}
		result.Written = append(result.Written, fullName)
	}

	if opts.DryRun {
		fmt.Printf("%d to write, %d unchanged\n", len(result.Written), len(result.Unchanged))
		return result, nil
	}

	if len(result.Written) > 0 {
		if err := app.Systemd.DaemonReload(ctx); err != nil {
			return nil, err
		}
	}

	if opts.Enable {
		for _, fullName := range result.Written {
			if err := enableOrStartTarget(ctx, app, fullName, app.Systemd.Enable); err != nil {
				return nil, err
			}
		}
	}
	if opts.Start {
		for _, fullName := range result.Written {
			if err := enableOrStartTarget(ctx, app, fullName, app.Systemd.Start); err != nil {
				return nil, err
			}
		}
	}

	fmt.Printf("%d written, %d unchanged\n", len(result.Written), len(result.Unchanged))
	return result, nil
}

// enableOrStartTarget applies a lifecycle call to an applied unit.
// Template units have no startable instance of their own and are skipped.
func enableOrStartTarget(ctx context.Context, app *App, fullName string, verb func(context.Context, string) error) error {
	name, err := unit.ParseName(fullName)
	if err != nil {
		return err
	}
	if name.Template {
		app.Logger.Debug("Skipping template unit", "unit", fullName)
		return nil
	}
	return verb(ctx, fullName)
}

// recordName returns the registry base name for a unit: the template
// marker stays in the name so "worker@.service" and "worker.service" are
// distinct records.
func recordName(n unit.Name) string {
	if n.Template {
		return n.Base + "@"
	}
	return n.Base
}
