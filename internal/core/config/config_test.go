package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, 100, cfg.History.Capacity)
	assert.Equal(t, 2, cfg.Checklist.MinPaidServices)
	assert.Equal(t, 2, cfg.Autosave.DebounceSeconds)
	assert.Equal(t, 30, cfg.Autosave.IntervalSeconds)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.History.Capacity)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
history:
  capacity: 25
checklist:
  min_paid_services: 1
export:
  dir: /tmp/exports
sections:
  - pattern: "extra-*"
    section: etapes
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.History.Capacity)
	assert.Equal(t, 1, cfg.Checklist.MinPaidServices)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
	require.Len(t, cfg.Sections, 1)
	assert.Equal(t, "extra-*", cfg.Sections[0].Pattern)
	// Unset timers fall back to defaults.
	assert.Equal(t, 2, cfg.Autosave.DebounceSeconds)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history: [broken"), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data directory"},
		{"zero capacity", func(c *Config) { c.History.Capacity = 0 }, "history.capacity"},
		{"negative minimum", func(c *Config) { c.Checklist.MinPaidServices = -1 }, "min_paid_services"},
		{"zero debounce", func(c *Config) { c.Autosave.DebounceSeconds = 0 }, "debounce_seconds"},
		{"zero interval", func(c *Config) { c.Autosave.IntervalSeconds = 0 }, "interval_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDeep_SectionRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Sections = []SectionRule{
		{Pattern: "extra-*", Section: "etapes"},
		{Pattern: "[broken", Section: "sms"},
		{Pattern: "other-*", Section: "inconnu"},
	}

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "sections[1].pattern")
	assert.Contains(t, fields, "sections[2].section")
}

func TestValidateDeep_ExportDirIsFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.Export.Dir = file

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "export.dir", fieldErrs[0].Field)
}
