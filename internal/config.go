package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap/zapcore"
)

// Config holds process settings stored in <StateDir>/settings.json.
// Environment variables override the file.
type Config struct {
	StateDir     string `json:"-"`
	StoreBackend string `json:"store_backend,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`
	LogFile      string `json:"log_file,omitempty"`
}

// Environment variables read by LoadConfig.
const (
	EnvHome     = "TOTONOE_HOME"
	EnvStore    = "TOTONOE_STORE"
	EnvLogLevel = "TOTONOE_LOG_LEVEL"
	EnvLogFile  = "TOTONOE_LOG_FILE"
)

const settingsFileName = "settings.json"

// LogPath returns the log file, defaulting to totonoe.log in the state dir.
func (c Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.StateDir, "totonoe.log")
}

func (c *Config) applyDefaults() {
	if c.StoreBackend == "" {
		c.StoreBackend = "file"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Setting keys accepted by Get and Set.
const (
	KeyStoreBackend = "store_backend"
	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
)

// Keys returns the settable keys in display order.
func Keys() []string {
	keys := []string{KeyStoreBackend, KeyLogLevel, KeyLogFile}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key.
func (c Config) Get(key string) (string, error) {
	switch key {
	case KeyStoreBackend:
		return c.StoreBackend, nil
	case KeyLogLevel:
		return c.LogLevel, nil
	case KeyLogFile:
		return c.LogFile, nil
	}
	return "", fmt.Errorf("unknown setting %q (known: %v)", key, Keys())
}

// Set validates value and stores it under key.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyStoreBackend:
		switch value {
		case "file", "sqlite", "memory":
		default:
			return fmt.Errorf("store_backend must be file, sqlite or memory, got %q", value)
		}
		c.StoreBackend = value
	case KeyLogLevel:
		if _, err := zapcore.ParseLevel(value); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
		c.LogLevel = value
	case KeyLogFile:
		c.LogFile = value
	default:
		return fmt.Errorf("unknown setting %q (known: %v)", key, Keys())
	}
	return nil
}
