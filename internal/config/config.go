package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvLexClauseEnv             = "LEXCLAUSE_ENV"
	EnvLexClauseShutdownTimeout = "LEXCLAUSE_SHUTDOWN_TIMEOUT"
	EnvLexClauseVersion         = "LEXCLAUSE_VERSION"
)

// Config is the root configuration for the lexclause service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	API             APIConfig            `toml:"api"`
	Classifier      ClassifierConfig     `toml:"classifier"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Anthropic       AnthropicConfig      `toml:"anthropic"`
	Resilience      ResilienceConfig     `toml:"resilience"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the LEXCLAUSE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvLexClauseEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout)
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
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

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Classifier.Merge(&overlay.Classifier)
	c.Agent.Merge(&overlay.Agent)
	c.Anthropic.Merge(&overlay.Anthropic)
	c.Resilience.Merge(&overlay.Resilience)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"api", c.API.Finalize},
		{"classifier", c.Classifier.Finalize},
		{"agent", func() error { return FinalizeAgent(&c.Agent) }},
		{"anthropic", c.Anthropic.Finalize},
		{"resilience", c.Resilience.Finalize},
	}
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	defaultString(&c.ShutdownTimeout, "30s")
	defaultString(&c.Version, "0.3.0")
}

func (c *Config) loadEnv() {
	setString(&c.ShutdownTimeout, os.Getenv(EnvLexClauseShutdownTimeout))
	setString(&c.Version, os.Getenv(EnvLexClauseVersion))
}

func (c *Config) validate() error {
	return validateDurations(map[string]string{
		"shutdown_timeout": c.ShutdownTimeout,
	})
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
	if env := os.Getenv(EnvLexClauseEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
