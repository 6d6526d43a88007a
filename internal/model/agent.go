package model

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"lexclause/internal/clause"
	"lexclause/pkg/formatting"
)

// AgentAdapter serves models through an OpenAI-compatible gateway using the
// go-agents client. The configured model name is overridden per invocation
// with the requested identifier.
type AgentAdapter struct {
	base gaconfig.AgentConfig
}

func NewAgentAdapter(base gaconfig.AgentConfig) *AgentAdapter {
	return &AgentAdapter{base: base}
}

func (a *AgentAdapter) Invoke(ctx context.Context, task clause.ClassificationTask, modelID string) (*clause.RawModelResult, error) {
	if a.base.Client == nil || a.base.Client.Provider == nil {
		return nil, fmt.Errorf("%w: agent client not configured", ErrUnavailable)
	}

	// Copy the client chain so the model override never mutates the shared
	// base config under concurrent invocations.
	client := *a.base.Client
	provider := *a.base.Client.Provider
	model := gaconfig.ModelConfig{}
	if provider.Model != nil {
		model = *provider.Model
	}
	model.Name = modelID
	provider.Model = &model
	client.Provider = &provider

	cfg := a.base
	cfg.Client = &client
	cfg.SystemPrompt = task.System

	ag, err := agent.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	resp, err := ag.Chat(ctx, task.Prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: chat call: %v", ErrUnavailable, err)
	}

	parsed, err := formatting.Parse[clause.RawModelResult](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &parsed, nil
}
