package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
store:
  path: planwise.db
history:
  backend: sqlite
  path: plans.db
metrics:
  prometheus_enabled: true
scheduling:
  min_attendees: 3
  min_duration_minutes: 45
  timezone: Europe/Paris
enrichment:
  url: http://localhost:8081/enrich
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "planwise.db", cfg.Store.Path)
	assert.Equal(t, "sqlite", cfg.History.Backend)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusAddr)
	assert.Equal(t, 5, cfg.Enrichment.TimeoutSeconds)

	opts, err := cfg.Scheduling.Options()
	require.NoError(t, err)
	assert.Equal(t, 3, opts.MinAttendees)
	assert.Equal(t, 45, opts.MinDurationMinutes)
	assert.Equal(t, "Europe/Paris", opts.Location.String())
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.json", `{}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jsonl", cfg.History.Backend)
	assert.Equal(t, "plans.log", cfg.History.Path)

	opts, err := cfg.Scheduling.Options()
	require.NoError(t, err)
	assert.Equal(t, 2, opts.MinAttendees)
	assert.Equal(t, 30, opts.MinDurationMinutes)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadHistoryBackend(t *testing.T) {
	path := writeConfig(t, "config.yaml", "history:\n  backend: csv\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	path := writeConfig(t, "config.yaml", "scheduling:\n  timezone: Nowhere/Invalid\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "store:\n  path: base.db\n")
	t.Setenv("PW_STORE__PATH", "override.db")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override.db", cfg.Store.Path)
}

func TestEnvOverrideNestedSection(t *testing.T) {
	path := writeConfig(t, "config.yaml", "scheduling:\n  min_attendees: 2\nhistory:\n  backend: jsonl\n")
	t.Setenv("PW_SCHEDULING__MIN_ATTENDEES", "4")
	t.Setenv("PW_HISTORY__BACKEND", "sqlite")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Scheduling.MinAttendees)
	assert.Equal(t, "sqlite", cfg.History.Backend)
}
