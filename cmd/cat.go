package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CatCommand prints the raw unit file for a unit.
type CatCommand struct{}

// GetCobraCommand returns the cobra command for printing a unit file.
func (c *CatCommand) GetCobraCommand() *cobra.Command {
	var instance string

	catCmd := &cobra.Command{
		Use:   "cat UNIT",
		Short: "Print the unit file as the manager sees it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			unitName, err := resolveUnit(args[0], instance)
			if err != nil {
				return err
			}
			out, err := app.Systemd.Cat(cmd.Context(), unitName)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	catCmd.Flags().StringVarP(&instance, "instance", "i", "", "Instance name for a templated unit")

	return catCmd
}
