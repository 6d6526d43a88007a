package config

import "os"

const (
	EnvAnthropicAPIKey         = "LEXCLAUSE_ANTHROPIC_API_KEY"
	EnvAnthropicAPIKeyFallback = "ANTHROPIC_API_KEY"
)

// AnthropicConfig holds Anthropic Messages API settings. The API key is
// sourced from the environment, never from config files.
type AnthropicConfig struct {
	APIKey string `toml:"-"`
}

// Enabled reports whether an API key is available.
func (c *AnthropicConfig) Enabled() bool {
	return c.APIKey != ""
}

// Finalize applies environment variable overrides. A missing key is not an
// error; it disables the anthropic provider.
func (c *AnthropicConfig) Finalize() error {
	if v := os.Getenv(EnvAnthropicAPIKey); v != "" {
		c.APIKey = v
	} else if v := os.Getenv(EnvAnthropicAPIKeyFallback); v != "" {
		c.APIKey = v
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *AnthropicConfig) Merge(overlay *AnthropicConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
}
