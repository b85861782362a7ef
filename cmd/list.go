package cmd

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/tools4digits/sysunit/internal/registry"
)

// ListOptions holds list command options.
type ListOptions struct {
	UnitType string
}

// ListCommand lists the units recorded in the registry.
type ListCommand struct{}

// GetCobraCommand returns the cobra command for listing managed units.
func (c *ListCommand) GetCobraCommand() *cobra.Command {
	var opts ListOptions

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List units currently managed by sysunit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(cmd.Context(), getApp(cmd), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	listCmd.Flags().StringVarP(&opts.UnitType, "type", "t", "", "Only list units of this type (service, timer, target, ...)")

	return listCmd
}

// Run executes the list command.
func (c *ListCommand) Run(ctx context.Context, app *App, opts ListOptions) error {
	var units []registry.Unit
	var err error

	if opts.UnitType == "" {
		units, err = app.Registry.FindAll()
	} else {
		units, err = app.Registry.FindByUnitType(opts.UnitType)
	}
	if err != nil {
		return fmt.Errorf("error finding units: %w", err)
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.New("Name", "Type", "Scope", "Active", "SHA1")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, u := range units {
		state, err := app.Systemd.IsActive(ctx, u.FullName())
		if err != nil {
			app.Logger.Debug("Error querying unit state", "unit", u.FullName(), "error", err)
			state = "unknown"
		}
		tbl.AddRow(u.FullName(), u.Type, scopeLabel(u.UserMode), state, hex.EncodeToString(u.SHA1Hash))
	}
	tbl.Print()
	return nil
}

func scopeLabel(userMode bool) string {
	if userMode {
		return "user"
	}
	return "system"
}
