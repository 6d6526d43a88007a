package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost            = "LEXCLAUSE_SERVER_HOST"
	EnvServerPort            = "LEXCLAUSE_SERVER_PORT"
	EnvServerReadTimeout     = "LEXCLAUSE_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "LEXCLAUSE_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "LEXCLAUSE_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP listener parameters. Timeouts are duration
// strings in their wire form; use the *Duration accessors after Finalize.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return parseDuration(c.ReadTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return parseDuration(c.WriteTimeout)
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	setString(&c.Host, overlay.Host)
	setString(&c.ReadTimeout, overlay.ReadTimeout)
	setString(&c.WriteTimeout, overlay.WriteTimeout)
	setString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
}

func (c *ServerConfig) loadDefaults() {
	defaultString(&c.Host, "0.0.0.0")
	defaultString(&c.ReadTimeout, "1m")
	defaultString(&c.WriteTimeout, "5m")
	defaultString(&c.ShutdownTimeout, "30s")
	if c.Port == 0 {
		c.Port = 8080
	}
}

func (c *ServerConfig) loadEnv() {
	setString(&c.Host, os.Getenv(EnvServerHost))
	setString(&c.ReadTimeout, os.Getenv(EnvServerReadTimeout))
	setString(&c.WriteTimeout, os.Getenv(EnvServerWriteTimeout))
	setString(&c.ShutdownTimeout, os.Getenv(EnvServerShutdownTimeout))
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return validateDurations(map[string]string{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	})
}

func parseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

func validateDurations(fields map[string]string) error {
	for name, value := range fields {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func defaultString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
