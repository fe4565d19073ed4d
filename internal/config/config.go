// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Duration is a time.Duration that decodes from strings such as "120s" in
// both YAML and JSON.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

// UnmarshalJSON implements json.Unmarshaler. Bare numbers are seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return d.parse(s)
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", string(b))
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(secs * float64(time.Second))
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Config is the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	AI      AIConfig      `yaml:"ai" json:"ai"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	PDF     PDFConfig     `yaml:"pdf" json:"pdf"`
	Verbose bool          `yaml:"verbose" json:"verbose"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int      `yaml:"port" json:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins" json:"allowed_origins"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	RateLimit       bool     `yaml:"rate_limit" json:"rate_limit"`
}

// Address returns the listen address.
func (c ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AIConfig points at the external AI backend.
type AIConfig struct {
	URL     string   `yaml:"url" json:"url"`
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

// StorageConfig selects where snapshots are persisted.
type StorageConfig struct {
	Driver      string `yaml:"driver" json:"driver"`
	Key         string `yaml:"key" json:"key"`
	SQLitePath  string `yaml:"sqlite_path" json:"sqlite_path"`
	DatabaseURL string `yaml:"database_url" json:"database_url"`
	RedisURL    string `yaml:"redis_url" json:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix" json:"redis_prefix"`
}

// PDFConfig controls server-side PDF printing.
type PDFConfig struct {
	Enabled bool     `yaml:"enabled" json:"enabled"`
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: Duration(10 * time.Second),
			RateLimit:       true,
		},
		AI: AIConfig{
			URL:     "http://localhost:8000",
			Timeout: Duration(120 * time.Second),
		},
		Storage: StorageConfig{
			Driver:      DriverSQLite,
			Key:         "resume-storage",
			SQLitePath:  "resume-builder.db",
			RedisPrefix: "resume-builder:",
		},
		PDF: PDFConfig{
			Enabled: true,
			Timeout: Duration(30 * time.Second),
		},
	}
}

// LoadConfig reads a YAML or JSON file (by extension) on top of the
// defaults, expanding ${VAR} references first. An empty path yields the
// defaults. Environment overrides are applied and the result validated.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		expanded := []byte(os.ExpandEnv(string(data)))

		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			if err := json.Unmarshal(expanded, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config JSON: %w", err)
			}
		default:
			if err := yaml.Unmarshal(expanded, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config YAML: %w", err)
			}
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. getenv is
// usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be a number, got %q", v)
		}
		c.Server.Port = port
	}
	if v := getenv("AI_SERVICE_URL"); v != "" {
		c.AI.URL = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.Storage.DatabaseURL = v
	}
	if v := getenv("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := getenv("SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v := getenv("PDF_EXPORT_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: PDF_EXPORT_ENABLED must be a boolean, got %q", v)
		}
		c.PDF.Enabled = enabled
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Server.ShutdownTimeout, validation.Min(Duration(0))),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := validation.ValidateStruct(&c.AI,
		validation.Field(&c.AI.URL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.AI.Timeout, validation.Required, validation.Min(Duration(time.Second))),
	); err != nil {
		return fmt.Errorf("ai: %w", err)
	}

	s := &c.Storage
	if err := validation.ValidateStruct(s,
		validation.Field(&s.Driver, validation.Required, validation.In(DriverMemory, DriverSQLite, DriverPostgres, DriverRedis)),
		validation.Field(&s.Key, validation.Required),
		validation.Field(&s.SQLitePath, validation.When(s.Driver == DriverSQLite, validation.Required)),
		validation.Field(&s.DatabaseURL, validation.When(s.Driver == DriverPostgres, validation.Required)),
		validation.Field(&s.RedisURL, validation.When(s.Driver == DriverRedis, validation.Required)),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := validation.ValidateStruct(&c.PDF,
		validation.Field(&c.PDF.Timeout, validation.When(c.PDF.Enabled, validation.Required)),
	); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("must be an http(s) URL")
	}
	return nil
}
