package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/planwise/planwise/infra/enrich"
)

// Config is the root configuration of the planwise service.
type Config struct {
	Store      StoreConfig      `json:"store"`
	History    HistoryConfig    `json:"history"`
	Metrics    MetricsConfig    `json:"metrics"`
	Scheduling SchedulingConfig `json:"scheduling"`
	Enrichment enrich.Config    `json:"enrichment"`
}

// StoreConfig selects the availability/event store backing file.
type StoreConfig struct {
	// Path is the SQLite database file. Empty selects an in-memory store.
	Path string `json:"path"`
}

// MetricsConfig controls the Prometheus exposition.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// Load reads the configuration file at path, applying PW_-prefixed
// environment overrides (PW_STORE__PATH maps to store.path).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides. The callback emits dotted keys, so the
	// provider delimiter must be "." for them to unflatten into the nested map.
	if err := k.Load(env.Provider("PW_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.History.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Enrichment.SetDefaults()
	if err := cfg.History.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Scheduling.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
