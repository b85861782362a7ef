package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// Build information set by goreleaser.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// updateSlug is the GitHub repository releases are published under.
const updateSlug = "tools4digits/sysunit"

// VersionCommand represents the version command.
type VersionCommand struct{}

// GetCobraCommand returns the cobra command for displaying version information.
func (c *VersionCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("sysunit version %s\n", Version)
			fmt.Printf("  commit: %s\n", Commit)
			fmt.Printf("  built: %s\n", Date)
			fmt.Printf("  go: %s\n", runtime.Version())

			c.checkForUpdates(cmd.Context())
		},
	}
}

// checkForUpdates prints a notice when a newer release is available.
func (c *VersionCommand) checkForUpdates(ctx context.Context) {
	if Version == "dev" {
		return
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateSlug))
	if err != nil {
		fmt.Printf("\nFailed to check for updates: %v\n", err)
		return
	}
	if !found || latest.LessOrEqual(Version) {
		return
	}

	fmt.Printf("\nUpdate available: %s\n", latest.Version())
	fmt.Println("Run 'sysunit update' to update to the latest version.")
}
