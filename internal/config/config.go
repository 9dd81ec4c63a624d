// Package config loads server and client settings. Values are resolved in
// order: built-in defaults, then the YAML file (if any), then a .env file in
// the working directory, then the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"

	"github.com/koustreak/filedrop/internal/client"
	"github.com/koustreak/filedrop/internal/filestore"
	"github.com/koustreak/filedrop/internal/logger"
	"github.com/koustreak/filedrop/internal/server"
)

const defaultUploadsPath = "uploads"

// Server is the configuration of the fsserver process.
type Server struct {
	Server  server.Config    `yaml:"server"`
	Storage filestore.Config `yaml:"storage"`
	Logging logger.Config    `yaml:"logging"`
}

// Client is the configuration of the fsclient command.
type Client struct {
	API     client.Config `yaml:"api"`
	Logging logger.Config `yaml:"logging"`
}

// LoadServer builds the server configuration. An empty path skips the
// YAML file; a path that cannot be read is an error.
func LoadServer(path string) (*Server, error) {
	cfg := &Server{
		Server:  *server.DefaultConfig(),
		Storage: *filestore.DefaultConfig(defaultUploadsPath),
		Logging: *logger.DefaultConfig(),
	}
	if err := readYAML(path, cfg); err != nil {
		return nil, err
	}
	loadDotEnv()

	s := &cfg.Server
	s.Port = getEnv("FSSERVER_PORT", s.Port)
	s.ReadTimeout = getEnvAsDuration("FSSERVER_READ_TIMEOUT", s.ReadTimeout)
	s.WriteTimeout = getEnvAsDuration("FSSERVER_WRITE_TIMEOUT", s.WriteTimeout)
	s.IdleTimeout = getEnvAsDuration("FSSERVER_IDLE_TIMEOUT", s.IdleTimeout)
	s.ShutdownTimeout = getEnvAsDuration("FSSERVER_SHUTDOWN_TIMEOUT", s.ShutdownTimeout)
	s.MaxUploadSize = getEnv("FSSERVER_MAX_UPLOAD_SIZE", s.MaxUploadSize)
	s.RateLimit.RequestsPerSecond = getEnvAsFloat("FSSERVER_RATE_LIMIT_RPS", s.RateLimit.RequestsPerSecond)
	s.RateLimit.Burst = getEnvAsInt("FSSERVER_RATE_LIMIT_BURST", s.RateLimit.Burst)

	cfg.Storage.Root = getEnv("FSSERVER_UPLOADED_FILES_PATH", cfg.Storage.Root)
	applyLogging(&cfg.Logging)

	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Provider != filestore.ProviderLocal {
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Storage.Provider)
	}
	return cfg, nil
}

// LoadClient builds the client configuration.
func LoadClient(path string) (*Client, error) {
	cfg := &Client{
		API:     *client.DefaultConfig(),
		Logging: *logger.DefaultConfig(),
	}
	if err := readYAML(path, cfg); err != nil {
		return nil, err
	}
	loadDotEnv()

	a := &cfg.API
	a.RootURL = getEnv("FSSERVER_API_ROOT_URL", a.RootURL)
	a.Version = getEnv("FSSERVER_API_VERSION", a.Version)
	a.FilesAPI = getEnv("FSSERVER_API_FILES", a.FilesAPI)
	a.StatsAPI = getEnv("FSSERVER_API_STATS", a.StatsAPI)
	a.Timeout = getEnvAsDuration("FSSERVER_API_TIMEOUT", a.Timeout)
	applyLogging(&cfg.Logging)

	if a.RootURL == "" {
		return nil, fmt.Errorf("api root url is required")
	}
	return cfg, nil
}

func readYAML(path string, out interface{}) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv reads .env when present. Variables already set in the
// environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

func applyLogging(l *logger.Config) {
	l.Level = getEnv("LOG_LEVEL", l.Level)
	l.Format = getEnv("LOG_FORMAT", l.Format)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
