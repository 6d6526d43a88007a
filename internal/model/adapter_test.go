package model_test

import (
	"context"
	"errors"
	"testing"

	"lexclause/internal/clause"
	"lexclause/internal/model"
)

type staticAdapter struct {
	result clause.RawModelResult
	calls  int
}

func (a *staticAdapter) Invoke(ctx context.Context, task clause.ClassificationTask, modelID string) (*clause.RawModelResult, error) {
	a.calls++
	out := a.result
	return &out, nil
}

func TestSelectorRoutesByProvider(t *testing.T) {
	providers := map[string]string{
		"gpt-4.1":                    "agent",
		"claude-sonnet-4-5-20250929": "anthropic",
	}

	selector := model.NewSelector(func(modelID string) string {
		return providers[modelID]
	})

	agent := &staticAdapter{result: clause.RawModelResult{Label: "Termination", Confidence: 0.9}}
	anthropic := &staticAdapter{result: clause.RawModelResult{Label: "Liability", Confidence: 0.7}}
	selector.Register("agent", agent)
	selector.Register("anthropic", anthropic)

	task := clause.ClassificationTask{Clause: clause.Clause{Text: "Either party may terminate."}}

	got, err := selector.Invoke(context.Background(), task, "gpt-4.1")
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if got.Label != "Termination" {
		t.Errorf("label: got %s, want Termination", got.Label)
	}

	got, err = selector.Invoke(context.Background(), task, "claude-sonnet-4-5-20250929")
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if got.Label != "Liability" {
		t.Errorf("label: got %s, want Liability", got.Label)
	}

	if agent.calls != 1 || anthropic.calls != 1 {
		t.Errorf("calls: agent %d, anthropic %d, want 1 each", agent.calls, anthropic.calls)
	}
}

func TestSelectorUnknownProvider(t *testing.T) {
	selector := model.NewSelector(func(string) string { return "" })

	_, err := selector.Invoke(context.Background(), clause.ClassificationTask{}, "mystery-model")
	if !errors.Is(err, model.ErrUnknownProvider) {
		t.Fatalf("error = %v, want ErrUnknownProvider", err)
	}
}

func TestSelectorNilResolve(t *testing.T) {
	selector := model.NewSelector(nil)
	selector.Register("agent", &staticAdapter{})

	_, err := selector.Invoke(context.Background(), clause.ClassificationTask{}, "gpt-4.1")
	if !errors.Is(err, model.ErrUnknownProvider) {
		t.Fatalf("error = %v, want ErrUnknownProvider", err)
	}
}
