package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/ini.v1"
)

// ShowCommand displays a unit's status and its unit file sections.
type ShowCommand struct{}

// GetCobraCommand returns the cobra command for showing unit details.
func (c *ShowCommand) GetCobraCommand() *cobra.Command {
	var instance string

	showCmd := &cobra.Command{
		Use:   "show UNIT",
		Short: "Show a unit's status and unit file sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unitName, err := resolveUnit(args[0], instance)
			if err != nil {
				return err
			}
			return c.Run(cmd.Context(), getApp(cmd), unitName)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	showCmd.Flags().StringVarP(&instance, "instance", "i", "", "Instance name for a templated unit")

	return showCmd
}

// Run executes the show command.
func (c *ShowCommand) Run(ctx context.Context, app *App, unitName string) error {
	status, err := app.Systemd.Status(ctx, unitName)
	if status != "" {
		fmt.Println(status)
	} else if err != nil {
		return err
	}

	path, err := app.Systemd.FragmentPath(ctx, unitName)
	if err != nil || path == "" {
		// Unit file not installed; the status output was all there is
		return nil
	}

	content, err := app.FSService.ReadUnitFile(path)
	if err != nil {
		return err
	}
	fmt.Println()
	return printUnitFile(path, []byte(content))
}

// printUnitFile pretty-prints unit file sections. Loading goes through
// go-ini in tolerant mode because the file may be any existing unit on the
// system, not necessarily one sysunit wrote.
func printUnitFile(path string, content []byte) error {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowShadows:             true,
		AllowNonUniqueSections:   true,
		SpaceBeforeInlineComment: true,
	}, content)
	if err != nil {
		return fmt.Errorf("failed to parse unit file %s: %w", path, err)
	}

	header := color.New(color.FgGreen, color.Bold).PrintfFunc()
	key := color.New(color.FgYellow).SprintfFunc()

	header("# %s\n", path)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		header("[%s]\n", section.Name())
		for _, k := range section.Keys() {
			for _, v := range k.ValueWithShadows() {
				fmt.Printf("%s=%s\n", key("%s", k.Name()), v)
			}
		}
		fmt.Println()
	}
	return nil
}
