// Package config provides configuration management for sysunit
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig initializes the application configuration.
	InitConfig() *Settings
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	cfg *Settings
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{}
}

var defaultProvider = NewDefaultConfigProvider()

// Default configuration values for sysunit. System mode targets the
// system-wide systemd directories; the user-mode variants expand $HOME and
// target the per-user manager instead.
const (
	DefaultUnitDir            = "/etc/systemd/system"
	DefaultDefinitionsDir     = "/etc/sysunit/units.d"
	DefaultDBPath             = "/var/lib/sysunit/sysunit.db"
	DefaultUserUnitDir        = "$HOME/.config/systemd/user"
	DefaultUserDefinitionsDir = "$HOME/.config/sysunit/units.d"
	DefaultUserDBPath         = "$HOME/.local/share/sysunit/sysunit.db"
	DefaultSyncInterval       = 5 * time.Minute
	DefaultUserMode           = false
	DefaultVerbose            = false
)

// Settings represents the configuration for sysunit: where unit files are
// installed, where declarative unit definitions are read from, where the
// tracking database lives, and how the tool runs.
type Settings struct {
	UnitDir        string        `yaml:"unitDir"`
	DefinitionsDir string        `yaml:"definitionsDir"`
	DBPath         string        `yaml:"dbPath"`
	SyncInterval   time.Duration `yaml:"syncInterval"`
	UserMode       bool          `yaml:"userMode"`
	Verbose        bool          `yaml:"verbose"`
}

// Implementation of Provider methods for defaultConfigProvider

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	viper.SetConfigFile(path)
}

func (p *defaultConfigProvider) InitConfig() *Settings {
	p.cfg = initConfigInternal()
	return p.cfg
}

// DefaultProvider returns the process-wide configuration provider.
func DefaultProvider() Provider {
	return defaultProvider
}

// For backward compatibility - pass through to default provider

// SetConfig sets the application configuration.
func SetConfig(c *Settings) {
	defaultProvider.SetConfig(c)
}

// GetConfig returns the current application configuration.
func GetConfig() *Settings {
	return defaultProvider.GetConfig()
}

// SetConfigFilePath sets the configuration file path.
func SetConfigFilePath(p string) {
	defaultProvider.SetConfigFilePath(p)
}

// InitConfig initializes the application configuration.
func InitConfig() *Settings {
	return defaultProvider.InitConfig()
}

// ApplyUserDefaults rewrites any still-default system paths to their
// user-mode equivalents, expanding $HOME. Paths the operator set explicitly
// are left alone.
func ApplyUserDefaults(cfg *Settings) {
	cfg.UserMode = true
	if cfg.UnitDir == DefaultUnitDir {
		cfg.UnitDir = os.ExpandEnv(DefaultUserUnitDir)
	}
	if cfg.DefinitionsDir == DefaultDefinitionsDir {
		cfg.DefinitionsDir = os.ExpandEnv(DefaultUserDefinitionsDir)
	}
	if cfg.DBPath == DefaultDBPath {
		cfg.DBPath = os.ExpandEnv(DefaultUserDBPath)
	}
}

// Internal function to initialize configuration.
func initConfigInternal() *Settings {
	cfg := &Settings{
		UnitDir:        DefaultUnitDir,
		DefinitionsDir: DefaultDefinitionsDir,
		DBPath:         DefaultDBPath,
		SyncInterval:   DefaultSyncInterval,
		UserMode:       DefaultUserMode,
		Verbose:        DefaultVerbose,
	}

	viper.SetDefault("unitDir", DefaultUnitDir)
	viper.SetDefault("definitionsDir", DefaultDefinitionsDir)
	viper.SetDefault("dbPath", DefaultDBPath)
	viper.SetDefault("syncInterval", DefaultSyncInterval)
	viper.SetDefault("userMode", DefaultUserMode)
	viper.SetDefault("verbose", DefaultVerbose)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(os.ExpandEnv("$HOME/.config/sysunit"))
	viper.AddConfigPath("/etc/sysunit")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		panic(err)
	}

	return cfg
}
