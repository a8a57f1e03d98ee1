package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/verdict/pkg/logging"
	"github.com/JaimeStill/verdict/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvVerdictEnv             = "VERDICT_ENV"
	EnvVerdictShutdownTimeout = "VERDICT_SHUTDOWN_TIMEOUT"
	EnvVerdictVersion         = "VERDICT_VERSION"
	EnvTenantName             = "TENANT_NAME"

	DefaultTenant = "unknown"
)

var storageEnv = &storage.Env{
	Backend:          "VERDICT_STORAGE_BACKEND",
	ModelDir:         "VERDICT_MODEL_DIR",
	ContainerName:    "VERDICT_STORAGE_CONTAINER_NAME",
	ConnectionString: "VERDICT_STORAGE_CONNECTION_STRING",
}

var loggingEnv = &logging.Env{
	Level:  "VERDICT_LOG_LEVEL",
	Format: "VERDICT_LOG_FORMAT",
}

// Config is the root configuration for the Verdict service.
type Config struct {
	Tenant          string         `toml:"tenant"`
	Version         string         `toml:"version"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
	Server          ServerConfig   `toml:"server"`
	Storage         storage.Config `toml:"storage"`
	API             APIConfig      `toml:"api"`
	Logging         logging.Config `toml:"logging"`
}

// Env returns the VERDICT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvVerdictEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Without a config.toml, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Tenant != "" {
		c.Tenant = overlay.Tenant
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	c.Server.Merge(&overlay.Server)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Logging.Merge(&overlay.Logging)
}

// Finalize applies defaults, environment variable overrides, and validation
// to the root config and every sub-config.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.Tenant == "" {
		c.Tenant = DefaultTenant
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvTenantName); v != "" {
		c.Tenant = v
	}
	if v := os.Getenv(EnvVerdictVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvVerdictShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvVerdictEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
