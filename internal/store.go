package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// StateDir returns $TOTONOE_HOME or ~/.config/totonoe.
func StateDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "totonoe"), nil
}

// LoadConfig loads an optional .env from the working directory, then reads
// settings.json from the state dir and applies environment overrides. A
// missing settings file is created with the defaults.
func LoadConfig() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg, err := LoadSettingsFile()
	if err != nil {
		return Config{}, err
	}
	if v := os.Getenv(EnvStore); v != "" {
		cfg.StoreBackend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadSettingsFile reads settings.json alone, without environment overrides,
// so it can be edited and saved back.
func LoadSettingsFile() (Config, error) {
	dir, err := StateDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{}
	data, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	switch {
	case os.IsNotExist(err):
		// First run: leave an editable settings file behind.
		cfg.StateDir = dir
		cfg.applyDefaults()
		_ = SaveConfig(cfg)
	case err != nil:
		return Config{}, fmt.Errorf("failed to read settings file: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal settings: %w", err)
		}
	}
	cfg.StateDir = dir
	return cfg, nil
}

// SaveConfig writes cfg to <StateDir>/settings.json.
func SaveConfig(cfg Config) error {
	if cfg.StateDir == "" {
		dir, err := StateDir()
		if err != nil {
			return err
		}
		cfg.StateDir = dir
	}
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// 0o600 keeps the settings readable by the owner only.
	if err := os.WriteFile(filepath.Join(cfg.StateDir, settingsFileName), data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
