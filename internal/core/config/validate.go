package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// knownSections lists the section names a SectionRule may target.
var knownSections = map[string]bool{
	"client":   true,
	"accords":  true,
	"mentions": true,
	"sms":      true,
	"etapes":   true,
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.History.Capacity < 1 {
		return fmt.Errorf("history.capacity must be at least 1")
	}

	if c.Checklist.MinPaidServices < 0 {
		return fmt.Errorf("checklist.min_paid_services cannot be negative")
	}

	if c.Autosave.DebounceSeconds < 1 {
		return fmt.Errorf("autosave.debounce_seconds must be at least 1")
	}

	if c.Autosave.IntervalSeconds < 1 {
		return fmt.Errorf("autosave.interval_seconds must be at least 1")
	}

	return nil
}

// ValidateDeep performs comprehensive validation including glob pattern
// syntax and directory accessibility. The configPath argument specifies the
// config file location to validate (empty string skips the config file
// check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("export.dir", c.Export.Dir, isDirectoryOrNotExist),
		c.validateSectionRules(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateSectionRules checks glob syntax and section names.
func (c *Config) validateSectionRules() error {
	var errs criterio.FieldErrorsBuilder
	for i, rule := range c.Sections {
		if !doublestar.ValidatePattern(rule.Pattern) {
			errs = errs.Append(fmt.Sprintf("sections[%d].pattern", i), fmt.Errorf("invalid glob %q", rule.Pattern))
		}
		if !knownSections[rule.Section] {
			errs = errs.Append(fmt.Sprintf("sections[%d].section", i), fmt.Errorf("unknown section %q", rule.Section))
		}
	}
	return errs.ToError()
}
