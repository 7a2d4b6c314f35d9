// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers a YAML file and environment variables on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SeedFile optionally points at a YAML activity catalog replacing the built-in one.
	SeedFile string `koanf:"seed_file"`

	// ResetSchedule is a 5-field cron expression restoring the seed roster.
	// Empty disables scheduled resets.
	ResetSchedule string `koanf:"reset_schedule"`

	// MetricsIntervalMS controls how often system gauges are refreshed.
	MetricsIntervalMS int `koanf:"metrics_interval_ms"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8000",
		MetricsIntervalMS: 10_000,
		ShutdownTimeoutMS: 30_000,
	}
}

// MetricsInterval returns MetricsIntervalMS as a duration.
func (c *Config) MetricsInterval() time.Duration {
	return time.Duration(c.MetricsIntervalMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
