// Package config loads client configuration from the environment, an
// optional .env file and an optional YAML file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load and LoadFromFile.
const (
	EnvAPIKey   = "MAILEROO_API_KEY"
	EnvBaseURL  = "MAILEROO_BASE_URL"
	EnvTimeout  = "MAILEROO_TIMEOUT"
	EnvLogLevel = "MAILEROO_LOG_LEVEL"
)

// DefaultTimeout bounds a single API call when nothing else is configured.
const DefaultTimeout = 30 * time.Second

// Config holds the client configuration.
type Config struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a .env file from the working directory if one exists, applies
// defaults and then environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads a YAML file as the base layer, then overrides with
// environment variables. A missing file is an error.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %v", cfg.Timeout)
	}

	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Timeout = DefaultTimeout
	c.Logging.Level = "info"
}

// applyEnvVars overrides fields with non-empty environment variables.
func (c *Config) applyEnvVars() error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid %s: must not be negative", EnvTimeout)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

// Level maps the configured level name to a slog level. Unknown names
// fall back to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
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

// Logger returns a JSON logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: c.Level(),
	}))
}
