// Package config loads workhours settings from a YAML file, WORKHOURS_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appDir     = "workhours"
	envPrefix  = "WORKHOURS"
	configName = "config.yaml"
	dbName     = "workhours.db"
	logName    = "workhours.log"
)

// Config holds the complete application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// DatabaseConfig defines where sessions are stored.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	Console    bool   `mapstructure:"console"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// MonitorConfig defines the foreground tracker.
type MonitorConfig struct {
	StatusInterval time.Duration `mapstructure:"status_interval"`
}

// DefaultConfigPath is the XDG location of the config file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDir, configName)
}

// DefaultDBPath is the XDG location of the session database.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, appDir, dbName)
}

// DefaultLogPath is the XDG location of the rotating log file.
func DefaultLogPath() string {
	return filepath.Join(xdg.DataHome, appDir, "log", logName)
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"db":        "database.path",
	"log-level": "logging.level",
}

// Load reads configPath, or the default location when it is empty. A
// missing default file is not an error; a missing explicit file is. Changed
// flags named in flagKeys override every other source.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	if configPath == "" {
		return load(DefaultConfigPath(), false, flags)
	}
	return load(configPath, true, flags)
}

func load(configPath string, explicit bool, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	file := configPath
	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		file = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = file

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDBPath())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", DefaultLogPath())
	v.SetDefault("logging.console", false)
	v.SetDefault("logging.max_size_mb", 5)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 30)

	v.SetDefault("monitor.status_interval", "1m")
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q", cfg.Logging.Format)
	}
	if cfg.Logging.MaxSizeMB < 0 || cfg.Logging.MaxBackups < 0 || cfg.Logging.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}

	if cfg.Monitor.StatusInterval <= 0 {
		return fmt.Errorf("invalid monitor status interval: %s", cfg.Monitor.StatusInterval)
	}
	return nil
}
