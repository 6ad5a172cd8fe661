package config

import (
	"errors"
	"os"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// HTTPAddr is where the conversion service listens in serve mode.
	HTTPAddr string

	// OutputDir receives .xml files in one-shot mode. Empty means "write
	// next to the input bundle".
	OutputDir string

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		OutputDir:       os.Getenv("OUTPUT_DIR"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
	}
	return cfg, nil
}

// LoggingLevel implements observability.LoggerConfig.
func (c *Config) LoggingLevel() string { return c.LogLevel }

// LoggingFormat implements observability.LoggerConfig.
func (c *Config) LoggingFormat() string { return c.LogFormat }

func parseShutdownTimeout() (time.Duration, error) {
	raw := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
