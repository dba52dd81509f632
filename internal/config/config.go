// Package config handles environment-driven configuration for the CLI and
// library defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings. All fields have working defaults; nothing
// is required.
type Config struct {
	Backend      string        // delegate override: "mdbtools" or "odbc" (default: by OS)
	MdbtoolsPath string        // directory holding the mdbtools binaries (default: PATH)
	Timeout      time.Duration // per-operation delegate timeout (default 2m)
	LogLevel     string        // debug, info, warn, error (default "info")
	ProfilePath  string        // YAML geological table-name profile (optional)
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadFromEnv loads configuration from GEOACCESS_* environment variables
// and applies defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Backend:      os.Getenv("GEOACCESS_BACKEND"),
		MdbtoolsPath: os.Getenv("GEOACCESS_MDBTOOLS_PATH"),
		LogLevel:     os.Getenv("GEOACCESS_LOG_LEVEL"),
		ProfilePath:  os.Getenv("GEOACCESS_PROFILE"),
	}

	if v := os.Getenv("GEOACCESS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GEOACCESS_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}

	switch cfg.Backend {
	case "", "mdbtools", "odbc":
	default:
		return nil, fmt.Errorf("invalid GEOACCESS_BACKEND %q: must be \"mdbtools\" or \"odbc\"", cfg.Backend)
	}

	// Defaults
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
