package server

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Config holds the HTTP server settings.
type Config struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxUploadSize is the largest accepted upload request body, in
	// humanized form ("10M", "512KiB", "1GB"). It is served verbatim by the
	// stats endpoint. Empty means unlimited.
	MaxUploadSize string `yaml:"max_upload_size"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig is a per-client-IP token bucket.
// RequestsPerSecond <= 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Port:            "8080",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxUploadSize:   "10M",
		RateLimit: RateLimitConfig{
			Burst: 20,
		},
	}
}

// MaxUploadBytes parses MaxUploadSize. Zero means no limit.
func (c *Config) MaxUploadBytes() (int64, error) {
	raw := strings.TrimSpace(c.MaxUploadSize)
	if raw == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid max upload size %q: %w", raw, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("max upload size %q is too large", raw)
	}
	return int64(n), nil
}

// Validate checks the settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := c.MaxUploadBytes(); err != nil {
		return err
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive when rate limiting is enabled")
	}
	return nil
}
