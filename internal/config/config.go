// Package config resolves runtime configuration from defaults, an optional
// .todolist.yaml file and TODOLIST_* environment variables, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = ".todolist"
	envPrefix  = "TODOLIST"
	dataDir    = ".todolist"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type StorageConfig struct {
	Driver string
	Path   string
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// UIConfig holds TUI-only preferences. An empty StateFile disables UI state persistence.
type UIConfig struct {
	StateFile string
}

type RuntimeConfig struct {
	Storage              StorageConfig
	Log                  LogConfig
	UI                   UIConfig
	DesktopNotifications bool
	// ConfigFile is the file the values were read from, empty when none was found.
	ConfigFile string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   filepath.Join(dataDir, "todolist.db"),
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			File:       filepath.Join(dataDir, "todolist.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		UI: UIConfig{
			StateFile: filepath.Join(dataDir, "ui_state.json"),
		},
		DesktopNotifications: false,
	}
}

// Load reads configuration. An explicit file that cannot be read is an error;
// a missing .todolist.yaml in the search path is not.
func Load(file string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	if strings.TrimSpace(file) != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.driver", cfg.Storage.Driver)
	v.SetDefault("storage.path", "")
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("ui.state_file", cfg.UI.StateFile)
	v.SetDefault("desktop_notifications", cfg.DesktopNotifications)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return RuntimeConfig{}, fmt.Errorf("config: reading %s: %w", file, err)
		}
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(v.GetString("storage.driver")))
	cfg.Storage.Path = strings.TrimSpace(v.GetString("storage.path"))
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath(cfg.Storage.Driver)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(v.GetString("log.level")))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(v.GetString("log.format")))
	cfg.Log.File = strings.TrimSpace(v.GetString("log.file"))
	cfg.Log.MaxSizeMB = v.GetInt("log.max_size_mb")
	cfg.Log.MaxBackups = v.GetInt("log.max_backups")
	cfg.UI.StateFile = strings.TrimSpace(v.GetString("ui.state_file"))
	cfg.DesktopNotifications = v.GetBool("desktop_notifications")

	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// DefaultStoragePath is the database file for sqlite and the data directory for the file driver.
func DefaultStoragePath(driver string) string {
	if driver == "file" {
		return dataDir
	}
	return filepath.Join(dataDir, "todolist.db")
}

func (c RuntimeConfig) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("%w: storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidConfig)
	}
	return nil
}
