// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains configurable parameters for the monitor binaries.
// Use Default() to get sensible defaults, then override as needed.
type Config struct {
	// Simulation
	UpdateInterval     time.Duration // How often pollers ask for a snapshot (default: 2s)
	AmbientTemperature float64       // Initial ambient temperature in °C (default: 25)
	Seed               uint64        // Deterministic random seed, 0 means entropy (default: 0)

	// Recorder
	RecorderDSN     string        // DuckDB DSN, empty means in-memory (default: "")
	Retention       int           // Snapshots kept in the rolling log (default: 300)
	RecorderTimeout time.Duration // Query timeout for the recorder (default: 5s)

	// Stream
	StreamAddress string // Listen address of the websocket feed (default: ":3000")

	// Logging
	LogLevel  string // debug, info, warn, error (default: "info")
	LogFormat string // text or json (default: "text")
	LogFile   string // Optional log file, used by the TUI (default: "")
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		UpdateInterval:     2 * time.Second,
		AmbientTemperature: 25,

		Retention:       300,
		RecorderTimeout: 5 * time.Second,

		StreamAddress: ":3000",

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads .env (if present) and HWMON_* variables over the defaults.
// Malformed values are ignored.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()

	if raw := os.Getenv("HWMON_UPDATE_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.UpdateInterval = d
		}
	}
	if raw := os.Getenv("HWMON_AMBIENT_TEMP"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.AmbientTemperature = v
		}
	}
	if raw := os.Getenv("HWMON_SEED"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			cfg.Seed = v
		}
	}
	if raw := os.Getenv("HWMON_RECORDER_DSN"); raw != "" {
		cfg.RecorderDSN = raw
	}
	if raw := os.Getenv("HWMON_RETENTION"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			cfg.Retention = v
		}
	}
	if raw := os.Getenv("HWMON_STREAM_ADDR"); raw != "" {
		cfg.StreamAddress = raw
	}
	if raw := os.Getenv("HWMON_LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}
	if raw := os.Getenv("HWMON_LOG_FORMAT"); raw != "" {
		cfg.LogFormat = raw
	}
	if raw := os.Getenv("HWMON_LOG_FILE"); raw != "" {
		cfg.LogFile = raw
	}

	return cfg
}

// WithUpdateInterval returns a copy of the config with modified poll interval.
func (c Config) WithUpdateInterval(d time.Duration) Config {
	c.UpdateInterval = d
	return c
}

// WithAmbientTemperature returns a copy of the config with modified ambient temperature.
func (c Config) WithAmbientTemperature(celsius float64) Config {
	c.AmbientTemperature = celsius
	return c
}

// WithSeed returns a copy of the config with a deterministic seed.
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	return c
}

// WithRecorderDSN returns a copy of the config with modified recorder DSN.
func (c Config) WithRecorderDSN(dsn string) Config {
	c.RecorderDSN = dsn
	return c
}

// WithRetention returns a copy of the config with modified snapshot retention.
func (c Config) WithRetention(n int) Config {
	c.Retention = n
	return c
}

// WithStreamAddress returns a copy of the config with modified listen address.
func (c Config) WithStreamAddress(addr string) Config {
	c.StreamAddress = addr
	return c
}

// WithLogFile returns a copy of the config with a log file path.
func (c Config) WithLogFile(path string) Config {
	c.LogFile = path
	return c
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.UpdateInterval < time.Second || c.UpdateInterval > 10*time.Second {
		return &ConfigError{Field: "UpdateInterval", Message: "must be between 1s and 10s"}
	}
	if c.AmbientTemperature < 15 || c.AmbientTemperature > 40 {
		return &ConfigError{Field: "AmbientTemperature", Message: "must be between 15 and 40"}
	}
	if c.Retention <= 0 {
		return &ConfigError{Field: "Retention", Message: "must be positive"}
	}
	if c.RecorderTimeout <= 0 {
		return &ConfigError{Field: "RecorderTimeout", Message: "must be positive"}
	}
	if c.StreamAddress == "" {
		return &ConfigError{Field: "StreamAddress", Message: "must not be empty"}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "LogLevel", Message: "must be one of debug, info, warn, error"}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return &ConfigError{Field: "LogFormat", Message: "must be text or json"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
