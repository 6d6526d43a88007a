package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "LEXCLAUSE_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "LEXCLAUSE_AGENT_BASE_URL"
	EnvAgentToken        = "LEXCLAUSE_AGENT_TOKEN"
	EnvAgentDeployment   = "LEXCLAUSE_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "LEXCLAUSE_AGENT_API_VERSION"
	EnvAgentAuthType     = "LEXCLAUSE_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "LEXCLAUSE_AGENT_MODEL_NAME"
)

// provider options that only arrive via environment, never config files,
// because they carry credentials or deployment-specific routing.
var agentOptionEnvs = map[string]string{
	"token":       EnvAgentToken,
	"deployment":  EnvAgentDeployment,
	"api_version": EnvAgentAPIVersion,
	"auth_type":   EnvAgentAuthType,
}

// FinalizeAgent applies the three-phase finalize pattern to a go-agents
// AgentConfig: library defaults, environment overrides, validation.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults

	loadAgentEnv(c)
	return validateAgent(c)
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Client == nil || c.Client.Provider == nil {
		return
	}

	provider := c.Client.Provider
	if provider.Options == nil {
		provider.Options = make(map[string]any)
	}

	setString(&provider.Name, os.Getenv(EnvAgentProviderName))
	setString(&provider.BaseURL, os.Getenv(EnvAgentBaseURL))
	if provider.Model == nil {
		provider.Model = gaconfig.DefaultModelConfig()
	}
	setString(&provider.Model.Name, os.Getenv(EnvAgentModelName))

	for key, envVar := range agentOptionEnvs {
		if v := os.Getenv(envVar); v != "" {
			provider.Options[key] = v
		}
	}
}

func validateAgent(c *gaconfig.AgentConfig) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("name required")
	case c.Client == nil || c.Client.Provider == nil:
		return fmt.Errorf("client provider required")
	case c.Client.Provider.Name == "":
		return fmt.Errorf("provider name required")
	}
	return nil
}
