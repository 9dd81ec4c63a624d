package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadServer_Defaults(t *testing.T) {
	cfg, err := LoadServer("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "10M", cfg.Server.MaxUploadSize)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "uploads", cfg.Storage.Root)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Zero(t, cfg.Server.RateLimit.RequestsPerSecond)
}

func TestLoadServer_YAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  read_timeout: 5s
  max_upload_size: 512KiB
  rate_limit:
    requests_per_second: 2.5
    burst: 5
storage:
  uploaded_files_path: /srv/files
logging:
  level: debug
  format: json
`)

	cfg, err := LoadServer(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset keys keep their default")
	assert.Equal(t, "512KiB", cfg.Server.MaxUploadSize)
	assert.Equal(t, 2.5, cfg.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Server.RateLimit.Burst)
	assert.Equal(t, "/srv/files", cfg.Storage.Root)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NotNil(t, cfg.Logging.Output)
}

func TestLoadServer_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
storage:
  uploaded_files_path: /srv/files
`)
	t.Setenv("FSSERVER_PORT", "7070")
	t.Setenv("FSSERVER_UPLOADED_FILES_PATH", "/tmp/uploads")
	t.Setenv("FSSERVER_MAX_UPLOAD_SIZE", "1GB")
	t.Setenv("FSSERVER_IDLE_TIMEOUT", "2m")
	t.Setenv("FSSERVER_RATE_LIMIT_RPS", "10")
	t.Setenv("FSSERVER_RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadServer(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "/tmp/uploads", cfg.Storage.Root)
	assert.Equal(t, "1GB", cfg.Server.MaxUploadSize)
	assert.Equal(t, 2*time.Minute, cfg.Server.IdleTimeout)
	assert.Equal(t, 10.0, cfg.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.Server.RateLimit.Burst, "unparsable values fall back")
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadServer_Errors(t *testing.T) {
	_, err := LoadServer(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadServer(writeConfig(t, "server: [not, a, map]"))
	assert.Error(t, err)

	_, err = LoadServer(writeConfig(t, "server:\n  max_upload_size: huge\n"))
	assert.Error(t, err)

	_, err = LoadServer(writeConfig(t, "storage:\n  provider: s3\n"))
	assert.Error(t, err)
}

func TestLoadClient(t *testing.T) {
	path := writeConfig(t, `
api:
  root_url: http://files.internal:8080
  timeout: 15s
`)
	t.Setenv("FSSERVER_API_VERSION", "v2")

	cfg, err := LoadClient(path)
	require.NoError(t, err)

	assert.Equal(t, "http://files.internal:8080", cfg.API.RootURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "files", cfg.API.FilesAPI)
	assert.Equal(t, "http://files.internal:8080/v2/files", cfg.API.FilesURL())
}

func TestLoadClient_Defaults(t *testing.T) {
	cfg, err := LoadClient("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/v1/files", cfg.API.FilesURL())
	assert.Equal(t, "http://localhost:8080/v1/stats", cfg.API.StatsURL())
	assert.Zero(t, cfg.API.Timeout)
}

func TestSampleConfigs(t *testing.T) {
	srv, err := LoadServer(filepath.Join("..", "..", "configs", "fsserver.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "10M", srv.Server.MaxUploadSize)
	assert.Equal(t, "uploads", srv.Storage.Root)

	cli, err := LoadClient(filepath.Join("..", "..", "configs", "fsclient.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/v1/stats", cli.API.StatsURL())
}
