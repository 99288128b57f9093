package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/hrvreport/internal/reference"
	"github.com/2beens/hrvreport/internal/report"

	"github.com/BurntSushi/toml"
)

var ErrEnvNotConfigured = errors.New("no config section for env")

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// cross-origin callers of the API, defaults to the local front ends
	AllowedOrigins []string `toml:"allowed_origins"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// report generation
	ScratchDir     string `toml:"scratch_dir"`
	OutputDir      string `toml:"output_dir"`
	ReportTitle    string `toml:"report_title"`
	OverviewTitle  string `toml:"overview_title"`
	ChartCacheSize int    `toml:"chart_cache_size"`

	Assets report.AssetPaths `toml:"assets"`
	// heart rate defaults of the generated average rows, keyed by lowercase athlete name
	KnownHRDefaults reference.KnownDefaults `toml:"known_hr_defaults"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvNotConfigured, env)
	}
	return cfg, nil
}

// Load decodes the TOML file at path and returns the section for env,
// with defaults filled in for everything left empty.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults(env)
	return cfg, nil
}

func (c *Config) applyDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ScratchDir == "" {
		c.ScratchDir = "tmp"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.ReportTitle == "" {
		c.ReportTitle = report.DefaultTitle
	}
	if c.KnownHRDefaults == nil {
		c.KnownHRDefaults = reference.DefaultKnownDefaults()
	}
}
