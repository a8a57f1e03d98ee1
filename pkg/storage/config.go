package storage

import (
	"fmt"
	"os"
)

const (
	BackendFilesystem = "filesystem"
	BackendAzure      = "azure"
)

// Config selects and configures the artifact storage backend.
type Config struct {
	Backend          string `toml:"backend"`
	ModelDir         string `toml:"model_dir"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Backend          string
	ModelDir         string
	ContainerName    string
	ConnectionString string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.ModelDir != "" {
		c.ModelDir = overlay.ModelDir
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.ModelDir == "" {
		c.ModelDir = "models"
	}
	if c.ContainerName == "" {
		c.ContainerName = "models"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Backend != "" {
		if v := os.Getenv(env.Backend); v != "" {
			c.Backend = v
		}
	}
	if env.ModelDir != "" {
		if v := os.Getenv(env.ModelDir); v != "" {
			c.ModelDir = v
		}
	}
	if env.ContainerName != "" {
		if v := os.Getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
		if c.ModelDir == "" {
			return fmt.Errorf("model_dir required")
		}
	case BackendAzure:
		if c.ContainerName == "" {
			return fmt.Errorf("container_name required")
		}
		if c.ConnectionString == "" {
			return fmt.Errorf("connection_string required")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
