// Package config handles configuration loading and validation for
// ventecheck.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	History   HistoryConfig   `yaml:"history"`
	Checklist ChecklistConfig `yaml:"checklist"`
	Autosave  AutosaveConfig  `yaml:"autosave"`
	Export    ExportConfig    `yaml:"export"`
	Sections  []SectionRule   `yaml:"sections"`
	DataDir   string          `yaml:"-"` // set by caller, not from config file
}

// HistoryConfig bounds the sales history.
type HistoryConfig struct {
	// Capacity is the maximum number of records kept. Commits beyond the
	// capacity evict the oldest record (FIFO, dropped silently).
	Capacity int `yaml:"capacity"`
}

// ChecklistConfig tunes the sale validation rules.
type ChecklistConfig struct {
	// MinPaidServices is the count of paid services that must be sold
	// before a sale validates.
	MinPaidServices int `yaml:"min_paid_services"`
}

// AutosaveConfig tunes the session snapshot timers.
type AutosaveConfig struct {
	DebounceSeconds int `yaml:"debounce_seconds"`
	IntervalSeconds int `yaml:"interval_seconds"`
}

// ExportConfig controls where exports are written by default.
type ExportConfig struct {
	// Dir is the default output directory for exports. Empty means the
	// current working directory.
	Dir string `yaml:"dir"`
}

// SectionRule maps extra toggle identifiers to a section by glob pattern,
// on top of the built-in patterns (client-*, accord-*, ...).
type SectionRule struct {
	Pattern string `yaml:"pattern"`
	Section string `yaml:"section"`
}

// DefaultConfig returns a Config with the stock rule set.
func DefaultConfig() Config {
	return Config{
		History:   HistoryConfig{Capacity: 100},
		Checklist: ChecklistConfig{MinPaidServices: 2},
		Autosave:  AutosaveConfig{DebounceSeconds: 2, IntervalSeconds: 30},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.History.Capacity == 0 {
		c.History.Capacity = defaults.History.Capacity
	}
	if c.Checklist.MinPaidServices == 0 {
		c.Checklist.MinPaidServices = defaults.Checklist.MinPaidServices
	}
	if c.Autosave.DebounceSeconds == 0 {
		c.Autosave.DebounceSeconds = defaults.Autosave.DebounceSeconds
	}
	if c.Autosave.IntervalSeconds == 0 {
		c.Autosave.IntervalSeconds = defaults.Autosave.IntervalSeconds
	}
}
