package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tools4digits/sysunit/internal/config"
	"github.com/tools4digits/sysunit/internal/log"
)

// RootCommand represents the root command for the sysunit CLI.
type RootCommand struct{}

var (
	userMode       bool
	verbose        bool
	configFilePath string
	unitDir        string
	definitionsDir string
	dbPath         string
)

// getApp retrieves the App from the command context.
func getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// registryCommands name the subcommands that need the registry database;
// everything else runs without opening it.
var registryCommands = map[string]bool{
	"apply":  true,
	"list":   true,
	"remove": true,
	"prune":  true,
	"daemon": true,
}

// GetCobraCommand returns the cobra root command for the sysunit CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sysunit",
		Short: "sysunit writes and manages systemd unit files",
		Long: `sysunit renders declarative unit definitions to systemd unit files,
installs them into the unit directory, and drives systemctl to reload,
start, stop, and inspect the resulting units.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configFilePath != "" {
				config.SetConfigFilePath(configFilePath)
			}
			cfg := config.InitConfig()
			log.Init(verbose)

			if verbose {
				cfg.Verbose = true
				fmt.Printf("%s using config: %s\n\n", cmd.Root().Use, viper.GetViper().ConfigFileUsed())
			}

			if userMode {
				config.ApplyUserDefaults(cfg)
			}
			if unitDir != "" {
				cfg.UnitDir = unitDir
			}
			if definitionsDir != "" {
				cfg.DefinitionsDir = definitionsDir
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			app := NewApp(log.GetLogger(), config.DefaultProvider())

			if err := app.Validator.SystemRequirements(cmd.Context()); err != nil {
				app.Logger.Warn("System requirements not met", "error", err)
			}

			if registryCommands[cmd.Name()] {
				if err := app.ConnectRegistry(); err != nil {
					return fmt.Errorf("failed to initialize registry database: %w", err)
				}
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appContextKey, app))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if app, ok := cmd.Context().Value(appContextKey).(*App); ok {
				return app.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&userMode, "user", "u", false, "Operate on the per-user service manager")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&unitDir, "unit-dir", "", "Path to the systemd unit directory")
	rootCmd.PersistentFlags().StringVar(&definitionsDir, "definitions-dir", "", "Path to the unit definitions directory")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Path to the registry database file")

	rootCmd.AddCommand(
		(&ApplyCommand{}).GetCobraCommand(),
		(&ListCommand{}).GetCobraCommand(),
		(&ShowCommand{}).GetCobraCommand(),
		(&CatCommand{}).GetCobraCommand(),
		(&RemoveCommand{}).GetCobraCommand(),
		(&PruneCommand{}).GetCobraCommand(),
		(&ReloadCommand{}).GetCobraCommand(),
		(&DaemonCommand{}).GetCobraCommand(),
		(&VersionCommand{}).GetCobraCommand(),
		(&UpdateCommand{}).GetCobraCommand(),
	)
	rootCmd.AddCommand(lifecycleCommands()...)

	return rootCmd
}

// Execute builds the root command and runs it, exiting non-zero on error.
func Execute() {
	if err := (&RootCommand{}).GetCobraCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
