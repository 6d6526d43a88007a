package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvClassifierDefaultModel  = "LEXCLAUSE_CLASSIFIER_DEFAULT_MODEL"
	EnvClassifierClauseTypes   = "LEXCLAUSE_CLASSIFIER_CLAUSE_TYPES"
	EnvClassifierWorkers       = "LEXCLAUSE_CLASSIFIER_WORKERS"
	EnvClassifierRateLimit     = "LEXCLAUSE_CLASSIFIER_RATE_LIMIT"
	EnvClassifierRateBurst     = "LEXCLAUSE_CLASSIFIER_RATE_BURST"
	EnvClassifierInvokeTimeout = "LEXCLAUSE_CLASSIFIER_INVOKE_TIMEOUT"
)

// ModelRef maps a supported model identifier to the provider adapter that
// serves it.
type ModelRef struct {
	Name     string `toml:"name"`
	Provider string `toml:"provider"`
}

// ClassifierConfig holds the model allow-list, the default category set, and
// the pipeline's concurrency and rate-limit parameters.
type ClassifierConfig struct {
	DefaultModel       string     `toml:"default_model"`
	Models             []ModelRef `toml:"models"`
	DefaultClauseTypes []string   `toml:"default_clause_types"`
	Workers            int        `toml:"workers"`
	RateLimit          float64    `toml:"rate_limit"`
	RateBurst          int        `toml:"rate_burst"`
	InvokeTimeout      string     `toml:"invoke_timeout"`
}

// SupportedModels returns the configured model identifiers in order.
func (c *ClassifierConfig) SupportedModels() []string {
	models := make([]string, 0, len(c.Models))
	for _, m := range c.Models {
		models = append(models, m.Name)
	}
	return models
}

// Provider returns the provider name that serves the given model, or the
// empty string when the model is not configured.
func (c *ClassifierConfig) Provider(model string) string {
	for _, m := range c.Models {
		if m.Name == model {
			return m.Provider
		}
	}
	return ""
}

// InvokeTimeoutDuration returns InvokeTimeout as a time.Duration.
func (c *ClassifierConfig) InvokeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.InvokeTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ClassifierConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifierConfig) Merge(overlay *ClassifierConfig) {
	if overlay.DefaultModel != "" {
		c.DefaultModel = overlay.DefaultModel
	}
	if len(overlay.Models) > 0 {
		c.Models = overlay.Models
	}
	if len(overlay.DefaultClauseTypes) > 0 {
		c.DefaultClauseTypes = overlay.DefaultClauseTypes
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.RateLimit != 0 {
		c.RateLimit = overlay.RateLimit
	}
	if overlay.RateBurst != 0 {
		c.RateBurst = overlay.RateBurst
	}
	if overlay.InvokeTimeout != "" {
		c.InvokeTimeout = overlay.InvokeTimeout
	}
}

func (c *ClassifierConfig) loadDefaults() {
	if c.DefaultModel == "" {
		c.DefaultModel = "gpt-4.1"
	}
	if len(c.Models) == 0 {
		c.Models = []ModelRef{
			{Name: "gpt-4.1", Provider: "agent"},
			{Name: "gpt-4.1-mini-2025-04-14", Provider: "agent"},
			{Name: "claude-sonnet-4-5-20250929", Provider: "anthropic"},
		}
	}
	if len(c.DefaultClauseTypes) == 0 {
		c.DefaultClauseTypes = []string{
			"Termination",
			"Confidentiality",
			"Governing Law",
			"Payment Terms",
			"Liability",
			"Intellectual Property",
		}
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.RateLimit == 0 {
		c.RateLimit = 5
	}
	if c.RateBurst == 0 {
		c.RateBurst = 10
	}
	if c.InvokeTimeout == "" {
		c.InvokeTimeout = "60s"
	}
}

func (c *ClassifierConfig) loadEnv() {
	if v := os.Getenv(EnvClassifierDefaultModel); v != "" {
		c.DefaultModel = v
	}
	if v := os.Getenv(EnvClassifierClauseTypes); v != "" {
		var types []string
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
		if len(types) > 0 {
			c.DefaultClauseTypes = types
		}
	}
	if v := os.Getenv(EnvClassifierWorkers); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			c.Workers = workers
		}
	}
	if v := os.Getenv(EnvClassifierRateLimit); v != "" {
		if limit, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimit = limit
		}
	}
	if v := os.Getenv(EnvClassifierRateBurst); v != "" {
		if burst, err := strconv.Atoi(v); err == nil {
			c.RateBurst = burst
		}
	}
	if v := os.Getenv(EnvClassifierInvokeTimeout); v != "" {
		c.InvokeTimeout = v
	}
}

func (c *ClassifierConfig) validate() error {
	if c.Provider(c.DefaultModel) == "" {
		return fmt.Errorf("default_model %q is not in the model list", c.DefaultModel)
	}
	for _, m := range c.Models {
		if m.Name == "" || m.Provider == "" {
			return fmt.Errorf("model entries require name and provider")
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("invalid rate_limit: %v", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("invalid rate_burst: %d", c.RateBurst)
	}
	if _, err := time.ParseDuration(c.InvokeTimeout); err != nil {
		return fmt.Errorf("invalid invoke_timeout: %w", err)
	}
	return nil
}
