package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "AI_SERVICE_URL", "DATABASE_URL", "REDIS_URL", "SQLITE_PATH", "STORAGE_DRIVER", "PDF_EXPORT_ENABLED"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.AI.URL)
	assert.Equal(t, 120*time.Second, cfg.AI.Timeout.Std())
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "resume-storage", cfg.Storage.Key)
	assert.True(t, cfg.PDF.Enabled)
}

func TestLoadConfig_YAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_AI_HOST", "ai.internal")

	path := writeFile(t, "config.yaml", `
server:
  port: 8080
ai:
  url: http://${TEST_AI_HOST}:9000
  timeout: 45s
storage:
  driver: memory
pdf:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://ai.internal:9000", cfg.AI.URL)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout.Std())
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.False(t, cfg.PDF.Enabled)
	// untouched sections keep defaults
	assert.Equal(t, "resume-storage", cfg.Storage.Key)
}

func TestLoadConfig_JSON(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "config.json", `{
		"server": {"port": 7000},
		"ai": {"timeout": 30},
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout.Std())
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "server: [1, 2")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AI_SERVICE_URL", "https://ai.example.com")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PDF_EXPORT_ENABLED", "false")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://ai.example.com", cfg.AI.URL)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.RedisURL)
	assert.False(t, cfg.PDF.Enabled)
}

func TestApplyEnv_BadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port", map[string]string{"PORT": "abc"}, "PORT must be a number"},
		{"pdf", map[string]string{"PDF_EXPORT_ENABLED": "maybe"}, "PDF_EXPORT_ENABLED must be a boolean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().ApplyEnv(func(k string) string { return tt.env[k] })
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server"},
		{"missing ai url", func(c *Config) { c.AI.URL = "" }, "ai"},
		{"non-http ai url", func(c *Config) { c.AI.URL = "localhost:8000" }, "http(s) URL"},
		{"tiny timeout", func(c *Config) { c.AI.Timeout = Duration(time.Millisecond) }, "ai"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "storage"},
		{"postgres without url", func(c *Config) { c.Storage.Driver = DriverPostgres }, "database_url"},
		{"redis without url", func(c *Config) { c.Storage.Driver = DriverRedis }, "redis_url"},
		{"memory needs nothing", func(c *Config) { c.Storage.Driver = DriverMemory; c.Storage.SQLitePath = "" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	assert.Equal(t, ":5000", Default().Server.Address())
}
