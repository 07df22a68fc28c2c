package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when OPSBOARD_CONFIG_PATH is unset.
const DefaultConfigPath = "config/opsboard.yaml"

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Worker   WorkerConfig   `yaml:"worker"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
	Schemas  SchemasConfig  `yaml:"schemas"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	APIKey  string `yaml:"-"` // env-only, never in YAML
	DevMode bool   `yaml:"-"`
}

// WorkerConfig contains background worker settings.
type WorkerConfig struct {
	RefreshInterval Duration `yaml:"refresh_interval"`
}

// CacheConfig contains summary cache settings.
type CacheConfig struct {
	TTL Duration `yaml:"ttl"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SchemasConfig points at operator-supplied YAML schema files.
type SchemasConfig struct {
	Dir string `yaml:"dir"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg, err := loadUnvalidated()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabaseConfig loads only what offline CLI commands need. It skips the
// API key requirement, which only matters to the server.
func LoadDatabaseConfig() (*DatabaseConfig, error) {
	cfg, err := loadUnvalidated()
	if err != nil {
		return nil, err
	}
	return &cfg.Database, nil
}

// LoadSchemasConfig loads the schema file settings for offline CLI commands.
func LoadSchemasConfig() (*SchemasConfig, error) {
	cfg, err := loadUnvalidated()
	if err != nil {
		return nil, err
	}
	return &cfg.Schemas, nil
}

func loadUnvalidated() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("OPSBOARD_CONFIG_PATH", DefaultConfigPath)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Path: "data/opsboard.db",
		},
		Worker: WorkerConfig{
			RefreshInterval: Duration(5 * time.Minute),
		},
		Cache: CacheConfig{
			TTL: Duration(10 * time.Minute),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Schemas: SchemasConfig{
			Dir: "config/schemas",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("OPSBOARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	overrideDuration("OPSBOARD_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	overrideDuration("OPSBOARD_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	overrideDuration("OPSBOARD_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	// Database
	if v := os.Getenv("OPSBOARD_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Auth
	if v := os.Getenv("OPSBOARD_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	cfg.Auth.DevMode = os.Getenv("OPSBOARD_DEV_MODE") == "true"

	// Worker and cache
	overrideDuration("OPSBOARD_REFRESH_INTERVAL", &cfg.Worker.RefreshInterval)
	overrideDuration("OPSBOARD_CACHE_TTL", &cfg.Cache.TTL)

	// Log
	if v := os.Getenv("OPSBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("OPSBOARD_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	// Schemas
	if v := os.Getenv("OPSBOARD_SCHEMAS_DIR"); v != "" {
		cfg.Schemas.Dir = v
	}
}

func overrideDuration(key string, dst *Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}

// validate checks that required configuration values are set.
// In dev mode (OPSBOARD_DEV_MODE=true), API key validation is skipped.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Worker.RefreshInterval < 0 {
		return errors.New("worker refresh_interval must not be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache ttl must not be negative")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format %q must be json or text", c.Log.Format)
	}

	if c.Auth.DevMode {
		return nil
	}
	if c.Auth.APIKey == "" {
		return errors.New("OPSBOARD_API_KEY is required")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
