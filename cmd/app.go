// Package cmd provides the command line interface for sysunit.
package cmd

import (
	"database/sql"

	"github.com/tools4digits/sysunit/internal/config"
	"github.com/tools4digits/sysunit/internal/execx"
	"github.com/tools4digits/sysunit/internal/fs"
	"github.com/tools4digits/sysunit/internal/log"
	"github.com/tools4digits/sysunit/internal/registry"
	"github.com/tools4digits/sysunit/internal/systemd"
	"github.com/tools4digits/sysunit/internal/validate"
)

// contextKey is a private type for context values set by the root command.
type contextKey string

// appContextKey carries the *App through the cobra command context.
const appContextKey contextKey = "app"

// App holds the application dependencies for the command line interface.
type App struct {
	Logger         log.Logger
	Config         *config.Settings
	ConfigProvider config.Provider
	Runner         execx.Runner
	FSService      *fs.Service
	Registry       registry.Repository
	Systemd        *systemd.Client
	Validator      *validate.Validator

	db *sql.DB
}

// NewApp creates a new App with all dependencies initialized. The registry
// database connection is established separately with ConnectRegistry so
// commands that never touch the registry do not require one.
func NewApp(logger log.Logger, configProvider config.Provider) *App {
	cfg := configProvider.GetConfig()
	runner := execx.NewRealRunner()

	return &App{
		Logger:         logger,
		Config:         cfg,
		ConfigProvider: configProvider,
		Runner:         runner,
		FSService:      fs.NewServiceWithLogger(configProvider, logger),
		Systemd:        systemd.NewClient(runner, logger, cfg.UserMode),
		Validator:      validate.NewValidator(logger, runner),
	}
}

// ConnectRegistry migrates the registry schema and opens the database
// connection, wiring App.Registry.
func (a *App) ConnectRegistry() error {
	if err := registry.Up(a.Config.DBPath, a.Logger); err != nil {
		return err
	}
	db, err := registry.Connect(a.Config.DBPath, a.Logger)
	if err != nil {
		return err
	}
	a.db = db
	a.Registry = registry.NewRepository(db)
	return nil
}

// Close releases the registry database connection if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
