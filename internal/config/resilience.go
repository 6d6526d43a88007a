package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"lexclause/internal/resilience"
)

const (
	EnvResilienceRetryMaxAttempts = "LEXCLAUSE_RESILIENCE_RETRY_MAX_ATTEMPTS"
	EnvResilienceBreakerDisabled  = "LEXCLAUSE_RESILIENCE_BREAKER_DISABLED"
)

// ResilienceConfig holds retry and circuit-breaker settings in their wire
// form; durations are strings parsed during finalize. The breaker is on by
// default, so the flag is expressed as breaker_disabled to keep zero-value
// semantics consistent with the other fields.
type ResilienceConfig struct {
	RetryMaxAttempts    int     `toml:"retry_max_attempts"`
	RetryInitialBackoff string  `toml:"retry_initial_backoff"`
	RetryMaxBackoff     string  `toml:"retry_max_backoff"`
	RetryMultiplier     float64 `toml:"retry_multiplier"`

	BreakerDisabled         bool    `toml:"breaker_disabled"`
	BreakerMinRequests      uint32  `toml:"breaker_min_requests"`
	BreakerFailureRatio     float64 `toml:"breaker_failure_ratio"`
	BreakerOpenTimeout      string  `toml:"breaker_open_timeout"`
	BreakerHalfOpenMaxCalls uint32  `toml:"breaker_half_open_max_calls"`
}

// Policy converts the finalized config into the executor's policy form.
func (c *ResilienceConfig) Policy() resilience.Config {
	initial, _ := time.ParseDuration(c.RetryInitialBackoff)
	maxBackoff, _ := time.ParseDuration(c.RetryMaxBackoff)
	openTimeout, _ := time.ParseDuration(c.BreakerOpenTimeout)

	return resilience.Config{
		RetryMaxAttempts:    c.RetryMaxAttempts,
		RetryInitialBackoff: initial,
		RetryMaxBackoff:     maxBackoff,
		RetryMultiplier:     c.RetryMultiplier,

		BreakerEnabled:          !c.BreakerDisabled,
		BreakerMinRequests:      c.BreakerMinRequests,
		BreakerFailureRatio:     c.BreakerFailureRatio,
		BreakerOpenTimeout:      openTimeout,
		BreakerHalfOpenMaxCalls: c.BreakerHalfOpenMaxCalls,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ResilienceConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ResilienceConfig) Merge(overlay *ResilienceConfig) {
	if overlay.RetryMaxAttempts != 0 {
		c.RetryMaxAttempts = overlay.RetryMaxAttempts
	}
	if overlay.RetryInitialBackoff != "" {
		c.RetryInitialBackoff = overlay.RetryInitialBackoff
	}
	if overlay.RetryMaxBackoff != "" {
		c.RetryMaxBackoff = overlay.RetryMaxBackoff
	}
	if overlay.RetryMultiplier != 0 {
		c.RetryMultiplier = overlay.RetryMultiplier
	}
	if overlay.BreakerDisabled {
		c.BreakerDisabled = true
	}
	if overlay.BreakerMinRequests != 0 {
		c.BreakerMinRequests = overlay.BreakerMinRequests
	}
	if overlay.BreakerFailureRatio != 0 {
		c.BreakerFailureRatio = overlay.BreakerFailureRatio
	}
	if overlay.BreakerOpenTimeout != "" {
		c.BreakerOpenTimeout = overlay.BreakerOpenTimeout
	}
	if overlay.BreakerHalfOpenMaxCalls != 0 {
		c.BreakerHalfOpenMaxCalls = overlay.BreakerHalfOpenMaxCalls
	}
}

func (c *ResilienceConfig) loadDefaults() {
	def := resilience.DefaultConfig()

	if c.RetryMaxAttempts == 0 {
		c.RetryMaxAttempts = def.RetryMaxAttempts
	}
	if c.RetryInitialBackoff == "" {
		c.RetryInitialBackoff = def.RetryInitialBackoff.String()
	}
	if c.RetryMaxBackoff == "" {
		c.RetryMaxBackoff = def.RetryMaxBackoff.String()
	}
	if c.RetryMultiplier == 0 {
		c.RetryMultiplier = def.RetryMultiplier
	}
	if c.BreakerMinRequests == 0 {
		c.BreakerMinRequests = def.BreakerMinRequests
	}
	if c.BreakerFailureRatio == 0 {
		c.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if c.BreakerOpenTimeout == "" {
		c.BreakerOpenTimeout = def.BreakerOpenTimeout.String()
	}
	if c.BreakerHalfOpenMaxCalls == 0 {
		c.BreakerHalfOpenMaxCalls = def.BreakerHalfOpenMaxCalls
	}
}

func (c *ResilienceConfig) loadEnv() {
	if v := os.Getenv(EnvResilienceRetryMaxAttempts); v != "" {
		if attempts, err := strconv.Atoi(v); err == nil && attempts > 0 {
			c.RetryMaxAttempts = attempts
		}
	}
	if v := os.Getenv(EnvResilienceBreakerDisabled); v != "" {
		c.BreakerDisabled = v == "true" || v == "1"
	}
}

func (c *ResilienceConfig) validate() error {
	if _, err := time.ParseDuration(c.RetryInitialBackoff); err != nil {
		return fmt.Errorf("invalid retry_initial_backoff: %w", err)
	}
	if _, err := time.ParseDuration(c.RetryMaxBackoff); err != nil {
		return fmt.Errorf("invalid retry_max_backoff: %w", err)
	}
	if _, err := time.ParseDuration(c.BreakerOpenTimeout); err != nil {
		return fmt.Errorf("invalid breaker_open_timeout: %w", err)
	}
	return nil
}
