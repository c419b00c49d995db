// Package config loads daemon configuration from file, environment,
// and defaults, in that order of increasing precedence for env vars.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full daemon configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `mapstructure:"db_path"`

	// TenantID scopes all remote documents. Empty disables sync.
	TenantID string `mapstructure:"tenant_id"`

	Remote RemoteConfig `mapstructure:"remote"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Status StatusConfig `mapstructure:"status"`
	Log    LogConfig    `mapstructure:"log"`
}

// RemoteConfig configures the document store client.
type RemoteConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

// SyncConfig holds the two job schedules in cron spec syntax.
type SyncConfig struct {
	IncrementalSpec string `mapstructure:"incremental_spec"`
	FullPushSpec    string `mapstructure:"full_push_spec"`
}

// StatusConfig configures the status HTTP server. Empty Addr disables it.
type StatusConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures optional rotated file logging.
// An empty File logs to stderr only.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads configuration from the given file (optional - empty path
// searches worktracker.yaml in the working directory), then applies
// WORKTRACKER_* environment overrides and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", ".worktracker/worktracker.db")
	v.SetDefault("tenant_id", "")
	v.SetDefault("remote.base_url", "")
	v.SetDefault("remote.token", "")
	v.SetDefault("sync.incremental_spec", "@every 1h")
	v.SetDefault("sync.full_push_spec", "@every 15m")
	v.SetDefault("status.addr", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetEnvPrefix("WORKTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("worktracker")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing config file is fine; env and defaults apply.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
