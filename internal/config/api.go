package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/verdict/pkg/formatting"
	"github.com/JaimeStill/verdict/pkg/middleware"
	"github.com/JaimeStill/verdict/pkg/openapi"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "VERDICT_CORS_ENABLED",
	Origins:          "VERDICT_CORS_ORIGINS",
	AllowedMethods:   "VERDICT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "VERDICT_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "VERDICT_CORS_EXPOSED_HEADERS",
	AllowCredentials: "VERDICT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "VERDICT_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "VERDICT_OPENAPI_TITLE",
	Description: "VERDICT_OPENAPI_DESCRIPTION",
}

// APIConfig holds request limits, CORS, and OpenAPI settings. A zero
// max_body_size leaves prediction request bodies unlimited.
type APIConfig struct {
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns the prediction request body limit in bytes, zero
// when unlimited.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	if c.MaxBodySize == "" {
		return 0
	}
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 0
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("VERDICT_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}

func (c *APIConfig) validate() error {
	if c.MaxBodySize == "" {
		return nil
	}
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	return nil
}
