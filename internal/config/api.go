package config

import (
	"fmt"
	"os"

	"lexclause/pkg/formatting"
	"lexclause/pkg/middleware"
)

var corsEnv = &middleware.CORSEnv{
	Enabled: "LEXCLAUSE_CORS_ENABLED",
	Origins: "LEXCLAUSE_CORS_ORIGINS",
}

// APIConfig holds API routing, request size, and CORS settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
}

func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 25 * 1024 * 1024 // 25MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	setString(&c.BasePath, overlay.BasePath)
	setString(&c.MaxBodySize, overlay.MaxBodySize)
	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	defaultString(&c.BasePath, "/api")
	defaultString(&c.MaxBodySize, "25MB")
}

func (c *APIConfig) loadEnv() {
	setString(&c.BasePath, os.Getenv("LEXCLAUSE_API_BASE_PATH"))
	setString(&c.MaxBodySize, os.Getenv("LEXCLAUSE_API_MAX_BODY_SIZE"))
}
