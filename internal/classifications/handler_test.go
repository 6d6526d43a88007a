package classifications_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"lexclause/internal/classifications"
	"lexclause/internal/clause"
	"lexclause/internal/model"
	"lexclause/internal/observability/metrics"
	"lexclause/internal/resilience"
	"lexclause/internal/workflow"
	"lexclause/pkg/routes"
)

// fixedAdapter returns the same result for every clause.
type fixedAdapter struct {
	result clause.RawModelResult
	err    error
}

func (f *fixedAdapter) Invoke(ctx context.Context, task clause.ClassificationTask, modelID string) (*clause.RawModelResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := f.result
	return &result, nil
}

func testSystem(adapter model.Adapter) classifications.System {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := resilience.DefaultConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = false

	return classifications.New(classifications.Options{
		Version:            "0.3.0",
		DefaultModel:       "gpt-4.1",
		SupportedModels:    []string{"gpt-4.1", "claude-sonnet-4-5-20250929"},
		DefaultClauseTypes: clause.CategorySet{"Termination", "Confidentiality"},
		Runtime: &workflow.Runtime{
			Adapter:       adapter,
			Exec:          resilience.NewExecutor(cfg, logger),
			Limiter:       rate.NewLimiter(rate.Inf, 1),
			Workers:       2,
			InvokeTimeout: 5 * time.Second,
			Metrics:       metrics.New(),
			Logger:        logger,
		},
	}, logger)
}

func testServer(t *testing.T, sys classifications.System) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func postClassify(t *testing.T, server *httptest.Server, body string) (*http.Response, clause.DocumentResult) {
	t.Helper()

	res, err := http.Post(server.URL+"/classify", "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { res.Body.Close() })

	var doc clause.DocumentResult
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res, doc
}

func TestClassifyEndpoint(t *testing.T) {
	adapter := &fixedAdapter{
		result: clause.RawModelResult{Label: "Termination", Confidence: 0.95, Summary: "Either party can end it."},
	}
	server := testServer(t, testSystem(adapter))

	res, doc := postClassify(t, server, `{"text": "This agreement ends on notice.", "model": "gpt-4.1"}`)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", res.StatusCode)
	}
	if doc.Error != "" {
		t.Fatalf("unexpected error: %q", doc.Error)
	}
	if len(doc.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(doc.Results))
	}
	if doc.Results[0].Label != "Termination" {
		t.Errorf("label: got %q", doc.Results[0].Label)
	}
	if doc.Results[0].Tier != clause.TierVeryHigh {
		t.Errorf("tier: got %s", doc.Results[0].Tier)
	}
	if doc.Summary != "This document contains 1 Termination clause." {
		t.Errorf("summary: got %q", doc.Summary)
	}
}

func TestClassifyEndpointEmptyText(t *testing.T) {
	server := testServer(t, testSystem(&fixedAdapter{}))

	res, doc := postClassify(t, server, `{"text": "   "}`)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", res.StatusCode)
	}
	if len(doc.Results) != 0 {
		t.Errorf("expected no results, got %d", len(doc.Results))
	}
	if doc.Summary != "No clauses found to summarize." {
		t.Errorf("summary: got %q", doc.Summary)
	}
}

func TestClassifyEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing source", body: `{}`},
		{name: "both sources", body: `{"text": "a", "pdf_base64": "aGVsbG8="}`},
		{name: "unsupported model", body: `{"text": "Some clause.", "model": "gpt-2"}`},
		{name: "unknown field", body: `{"text": "a", "bogus": true}`},
		{name: "wrong type", body: `{"text": 42}`},
		{name: "invalid json", body: `{"text": `},
		{name: "explicitly empty category set", body: `{"text": "Some clause.", "clause_types": []}`},
		{name: "empty category set entry", body: `{"text": "Some clause.", "clause_types": ["Termination", " "]}`},
		{name: "duplicate categories", body: `{"text": "Some clause.", "clause_types": ["A", "a"]}`},
		{name: "bad base64", body: `{"pdf_base64": "!!!not-base64!!!"}`},
	}

	server := testServer(t, testSystem(&fixedAdapter{}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, doc := postClassify(t, server, tt.body)

			if res.StatusCode != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", res.StatusCode)
			}
			if doc.Error == "" {
				t.Error("expected a descriptive error string")
			}
			if len(doc.Results) != 0 {
				t.Errorf("error responses must carry no results, got %d", len(doc.Results))
			}
		})
	}
}

func TestClassifyEndpointServiceUnavailable(t *testing.T) {
	server := testServer(t, testSystem(&fixedAdapter{err: model.ErrUnavailable}))

	res, doc := postClassify(t, server, `{"text": "First clause here. Second clause here."}`)

	if res.StatusCode == http.StatusOK {
		t.Errorf("expected a failure status, got 200")
	}
	if doc.Error == "" {
		t.Error("expected a descriptive error string")
	}
	if len(doc.Results) != 0 {
		t.Errorf("error responses must carry no results, got %d", len(doc.Results))
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := testServer(t, testSystem(&fixedAdapter{}))

	res, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", res.StatusCode)
	}

	var health classifications.HealthStatus
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if health.Status != "ok" {
		t.Errorf("status: got %q", health.Status)
	}
	if health.Version != "0.3.0" {
		t.Errorf("version: got %q", health.Version)
	}
	if len(health.SupportedModels) != 2 {
		t.Errorf("supported_models: got %v", health.SupportedModels)
	}
	if !health.PDFSupport {
		t.Error("expected pdf_support true")
	}
}

func TestClassifyDefaultsModelAndCategories(t *testing.T) {
	adapter := &fixedAdapter{
		result: clause.RawModelResult{Label: "confidentiality", Confidence: 0.75, Summary: "secret"},
	}
	sys := testSystem(adapter)

	doc, err := sys.Classify(context.Background(), classifications.ClassifyCommand{
		Text: "All information shall be kept secret.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Label resolution is case-insensitive against the default category set.
	if doc.Results[0].Label != "Confidentiality" {
		t.Errorf("label: got %q", doc.Results[0].Label)
	}
	if doc.Meta.Model != "gpt-4.1" {
		t.Errorf("model: got %q", doc.Meta.Model)
	}
	if fmt.Sprint(doc.Meta.ClauseTypes) != fmt.Sprint(clause.CategorySet{"Termination", "Confidentiality"}) {
		t.Errorf("clause_types: got %v", doc.Meta.ClauseTypes)
	}
}

func TestClassifyCategoryValidation(t *testing.T) {
	sys := testSystem(&fixedAdapter{})

	// Explicitly empty category list fails before any model invocation.
	_, err := sys.Classify(context.Background(), classifications.ClassifyCommand{
		Text:        "Some clause.",
		ClauseTypes: clause.CategorySet{},
	})
	if err == nil {
		t.Error("expected validation error for explicitly empty category list")
	}

	_, err = sys.Classify(context.Background(), classifications.ClassifyCommand{
		Text:        "Some clause.",
		ClauseTypes: clause.CategorySet{"A", "a"},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate-label validation error, got %v", err)
	}
}
