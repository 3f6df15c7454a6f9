// Package config loads application configuration with sensible local
// defaults. Every value can be set in an optional YAML file or overridden
// with CLAIMSYS_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	// DataDir holds claims.json, lecturers.json and the managed files
	// directory. Defaults to <user config dir>/ClaimSystem.
	DataDir string `mapstructure:"data_dir"`

	// FilesDir is the managed attachment storage.
	// Defaults to <data_dir>/Files.
	FilesDir string `mapstructure:"files_dir"`

	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	// Backend is one of "json", "sqlite" or "memory".
	Backend string `mapstructure:"backend"`

	// SQLitePath is the database file for the sqlite backend.
	// Defaults to <data_dir>/claims.db.
	SQLitePath string `mapstructure:"sqlite_path"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the YAML file at path (optional; pass ""
// for defaults only) and from the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("store.backend", "json")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("CLAIMSYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDerivedDefaults()

	switch cfg.Store.Backend {
	case "json", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unknown store backend %q: want json, sqlite or memory", cfg.Store.Backend)
	}
	return &cfg, nil
}

func (c *Config) applyDerivedDefaults() {
	if c.FilesDir == "" {
		c.FilesDir = filepath.Join(c.DataDir, "Files")
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = filepath.Join(c.DataDir, "claims.db")
	}
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "ClaimSystem")
}
