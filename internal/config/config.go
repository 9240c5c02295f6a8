// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable with FOCUS_STORE.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Config holds the application configuration.
type Config struct {
	DataDir       string
	DatabasePath  string
	StoreDir      string
	Store         string
	LogPath       string
	LogLevel      string
	ConfigFile    string
	TickInterval  time.Duration
	Notifications bool
}

// Default values
const (
	defaultTickInterval = time.Second
	defaultLogLevel     = "info"
	envPrefix           = "FOCUS"
)

// Load reads configuration from .env files, an optional config.yaml in the
// data directory and FOCUS_* environment variables, in increasing priority.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		dataDir = getDefaultDataDir()
	}

	v.SetDefault("database_path", filepath.Join(dataDir, "focus.db"))
	v.SetDefault("store_dir", filepath.Join(dataDir, "store"))
	v.SetDefault("store", StoreSQLite)
	v.SetDefault("log_path", filepath.Join(dataDir, "focus.log"))
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("tick_interval", defaultTickInterval.String())
	v.SetDefault("notifications", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DataDir:       dataDir,
		DatabasePath:  v.GetString("database_path"),
		StoreDir:      v.GetString("store_dir"),
		Store:         strings.ToLower(v.GetString("store")),
		LogPath:       v.GetString("log_path"),
		LogLevel:      v.GetString("log_level"),
		ConfigFile:    v.ConfigFileUsed(),
		TickInterval:  parseDuration(v.GetString("tick_interval"), defaultTickInterval),
		Notifications: v.GetBool("notifications"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted silently.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreFile:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreSQLite, StoreFile)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	return nil
}

// EnsureDirs creates the directories the configured paths live in.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.DataDir}
	switch c.Store {
	case StoreSQLite:
		dirs = append(dirs, filepath.Dir(c.DatabasePath))
	case StoreFile:
		dirs = append(dirs, c.StoreDir)
	}
	if c.LogPath != "" {
		dirs = append(dirs, filepath.Dir(c.LogPath))
	}
	for _, dir := range dirs {
		if err := ensureDir(dir); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// StoreLocation returns the path of the active persistence backend.
func (c *Config) StoreLocation() string {
	if c.Store == StoreFile {
		return c.StoreDir
	}
	return c.DatabasePath
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "focus-tui", ".env"),
			filepath.Join(home, ".focus", ".env"),
		)
	}

	return paths
}

// getDefaultDataDir returns the default directory for all persisted files.
func getDefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focus-tui"
	}
	return filepath.Join(home, ".config", "focus-tui")
}

// parseDuration accepts values like "1s", "500ms" or a bare number of seconds.
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	// Try parsing as seconds if no unit specified
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
