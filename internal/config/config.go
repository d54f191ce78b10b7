package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LFroesch/trek/internal/logger"
)

// Config holds all trek configuration
type Config struct {
	StartDir        string   `json:"start_dir"` // Empty starts in the working directory
	ShowHidden      bool     `json:"show_hidden"`
	SkipDirectories []string `json:"skip_directories"` // Skipped by search, supports a trailing wildcard like "Python*"
	MaxResults      int      `json:"max_results"`
	MaxDepth        int      `json:"max_depth"`
	MaxFilesScanned int      `json:"max_files_scanned"`
	HistoryLimit    int      `json:"history_limit"` // 0 keeps every visited directory
	DoubleClickMS   int      `json:"double_click_ms"`
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		ShowHidden:      true,
		SkipDirectories: defaultSkipDirectories(),
		MaxResults:      5000,
		MaxDepth:        10,
		MaxFilesScanned: 200000,
		HistoryLimit:    100,
		DoubleClickMS:   400,
	}
}

// Dir returns ~/.config/trek, falling back to the working directory
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "trek")
}

// Path returns the default config file location
func Path() string {
	return filepath.Join(Dir(), "trek-config.json")
}

// Load reads the default config file, creating it with defaults when missing
func Load() *Config {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path. A missing file is created with defaults,
// an unreadable one is logged and replaced by defaults in memory only.
func LoadFrom(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := Default()
		if os.IsNotExist(err) {
			if err := SaveTo(path, cfg); err != nil {
				logger.Warn("Failed to save default config: %v", err)
			}
		} else {
			logger.Warn("Failed to read config file %s: %v, using defaults", path, err)
		}
		return cfg
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", path, err)
		return Default()
	}

	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	defaults := Default()

	if c.SkipDirectories == nil {
		c.SkipDirectories = defaults.SkipDirectories
	}

	c.MaxResults = clamp("max_results", c.MaxResults, defaults.MaxResults, 100, 50000)
	c.MaxDepth = clamp("max_depth", c.MaxDepth, defaults.MaxDepth, 1, 64)
	c.MaxFilesScanned = clamp("max_files_scanned", c.MaxFilesScanned, defaults.MaxFilesScanned, 1000, 2000000)
	c.DoubleClickMS = clamp("double_click_ms", c.DoubleClickMS, defaults.DoubleClickMS, 150, 1500)

	if c.HistoryLimit < 0 {
		logger.Warn("history_limit negative (%d), keeping every entry", c.HistoryLimit)
		c.HistoryLimit = 0
	}
}

// clamp maps unset values to def and pulls the rest into [lo, hi]
func clamp(name string, v, def, lo, hi int) int {
	switch {
	case v <= 0:
		return def
	case v < lo:
		logger.Warn("%s too low (%d), using minimum of %d", name, v, lo)
		return lo
	case v > hi:
		logger.Warn("%s too high (%d), using maximum of %d", name, v, hi)
		return hi
	}
	return v
}

// Save writes config to the default location
func Save(config *Config) error {
	return SaveTo(Path(), config)
}

// SaveTo writes config to path, creating parent directories
func SaveTo(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", filepath.Dir(path), err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", path, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// defaultSkipDirectories lists directories search walks past by default.
// Users can edit the list in the config file.
func defaultSkipDirectories() []string {
	return []string{
		".git",
		".svn",
		".hg",
		"node_modules",
		"__pycache__",
		".venv",
		"$Recycle.Bin",
		"System Volume Information",
	}
}
