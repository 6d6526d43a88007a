package workflow_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"lexclause/internal/clause"
	"lexclause/internal/model"
	"lexclause/internal/observability/metrics"
	"lexclause/internal/resilience"
	"lexclause/internal/workflow"
)

// stubAdapter returns canned results keyed by clause text, or a fixed error
// for every invocation.
type stubAdapter struct {
	mu      sync.Mutex
	results map[string]clause.RawModelResult
	err     error
	calls   int
}

func (s *stubAdapter) Invoke(ctx context.Context, task clause.ClassificationTask, modelID string) (*clause.RawModelResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	result, ok := s.results[task.Clause.Text]
	if !ok {
		return nil, fmt.Errorf("%w: no canned result for %q", model.ErrMalformed, task.Clause.Text)
	}
	return &result, nil
}

func (s *stubAdapter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testRuntime(adapter model.Adapter) *workflow.Runtime {
	cfg := resilience.DefaultConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = false

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &workflow.Runtime{
		Adapter:       adapter,
		Exec:          resilience.NewExecutor(cfg, logger),
		Limiter:       rate.NewLimiter(rate.Inf, 1),
		Workers:       4,
		InvokeTimeout: 5 * time.Second,
		Metrics:       metrics.New(),
		Logger:        logger,
	}
}

func request(text string, categories ...string) workflow.Request {
	return workflow.Request{
		RequestID:  uuid.New(),
		Text:       text,
		ModelID:    "test-model",
		Categories: clause.CategorySet(categories),
	}
}

func TestExecuteSingleClause(t *testing.T) {
	text := "This agreement shall stay in effect until one party ends it with 30 days' notice."
	adapter := &stubAdapter{
		results: map[string]clause.RawModelResult{
			text: {Label: "Termination", Confidence: 0.95, Summary: "Either party can end the agreement."},
		},
	}

	doc, err := workflow.Execute(context.Background(), testRuntime(adapter), request(text, "Termination", "Confidentiality"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(doc.Results))
	}

	r := doc.Results[0]
	if r.Label != "Termination" {
		t.Errorf("label: got %q", r.Label)
	}
	if r.Tier != clause.TierVeryHigh {
		t.Errorf("tier: got %s, want %s", r.Tier, clause.TierVeryHigh)
	}
	if doc.Summary != "This document contains 1 Termination clause." {
		t.Errorf("summary: got %q", doc.Summary)
	}
	if doc.Meta == nil || doc.Meta.Model != "test-model" || doc.Meta.ClauseCount != 1 {
		t.Errorf("metadata: %+v", doc.Meta)
	}
}

func TestExecuteEmptyInput(t *testing.T) {
	adapter := &stubAdapter{}

	doc, err := workflow.Execute(context.Background(), testRuntime(adapter), request("   \n  ", "Termination"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Results) != 0 {
		t.Errorf("expected no results, got %d", len(doc.Results))
	}
	if doc.Summary != "No clauses found to summarize." {
		t.Errorf("summary: got %q", doc.Summary)
	}
	if doc.Error != "" {
		t.Errorf("unexpected error descriptor: %q", doc.Error)
	}
	if adapter.callCount() != 0 {
		t.Errorf("model invoked %d times for empty input", adapter.callCount())
	}
}

func TestExecuteAllUnavailable(t *testing.T) {
	adapter := &stubAdapter{err: model.ErrUnavailable}

	_, err := workflow.Execute(
		context.Background(),
		testRuntime(adapter),
		request("First clause here. Second clause here.", "Termination"),
	)
	if err == nil {
		t.Fatal("expected a document-level error when every invocation fails")
	}
}

func TestExecuteOutOfRangeConfidenceDegrades(t *testing.T) {
	text := "Alpha terminates the deal. Beta keeps data secret. Gamma pays the fees."
	adapter := &stubAdapter{
		results: map[string]clause.RawModelResult{
			"Alpha terminates the deal.": {Label: "Termination", Confidence: 0.9, Summary: "ok"},
			"Beta keeps data secret.":    {Label: "Confidentiality", Confidence: 1.2, Summary: "bad"},
			"Gamma pays the fees.":       {Label: "Payment Terms", Confidence: 0.8, Summary: "ok"},
		},
	}

	doc, err := workflow.Execute(
		context.Background(),
		testRuntime(adapter),
		request(text, "Termination", "Confidentiality", "Payment Terms"),
	)
	if err != nil {
		t.Fatalf("out-of-range confidence must not fail the document: %v", err)
	}

	if len(doc.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(doc.Results))
	}

	degraded := doc.Results[1]
	if degraded.Label != clause.LabelUnclassified {
		t.Errorf("degraded label: got %q", degraded.Label)
	}
	if degraded.Tier != clause.TierVeryLow {
		t.Errorf("degraded tier: got %s", degraded.Tier)
	}
	if degraded.Confidence != 0.0 {
		t.Errorf("degraded confidence: got %v", degraded.Confidence)
	}

	if doc.Results[0].Label != "Termination" || doc.Results[2].Label != "Payment Terms" {
		t.Errorf("healthy clauses affected: %q, %q", doc.Results[0].Label, doc.Results[2].Label)
	}
}

func TestExecuteLabelNotInCategorySet(t *testing.T) {
	text := "This clause covers indemnification."
	adapter := &stubAdapter{
		results: map[string]clause.RawModelResult{
			text: {Label: "Indemnification", Confidence: 0.9, Summary: "not allowed"},
		},
	}

	doc, err := workflow.Execute(context.Background(), testRuntime(adapter), request(text, "Termination"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Results[0].Label != clause.LabelUnclassified {
		t.Errorf("label outside the category set must degrade, got %q", doc.Results[0].Label)
	}
}

func TestExecutePreservesClauseOrder(t *testing.T) {
	text := "Alpha pays monthly. Beta delivers weekly. Gamma reports quarterly. Delta audits yearly."
	adapter := &stubAdapter{
		results: map[string]clause.RawModelResult{
			"Alpha pays monthly.":      {Label: "Payment Terms", Confidence: 0.9, Summary: "a"},
			"Beta delivers weekly.":    {Label: "Payment Terms", Confidence: 0.9, Summary: "b"},
			"Gamma reports quarterly.": {Label: "Payment Terms", Confidence: 0.9, Summary: "c"},
			"Delta audits yearly.":     {Label: "Payment Terms", Confidence: 0.9, Summary: "d"},
		},
	}

	doc, err := workflow.Execute(context.Background(), testRuntime(adapter), request(text, "Payment Terms"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"Alpha pays monthly.",
		"Beta delivers weekly.",
		"Gamma reports quarterly.",
		"Delta audits yearly.",
	}
	for i, w := range want {
		if doc.Results[i].Clause != w {
			t.Errorf("results[%d]: got %q, want %q", i, doc.Results[i].Clause, w)
		}
	}
}

func TestExecuteIdempotentSegmentation(t *testing.T) {
	text := "First clause here. Second clause here."
	adapter := &stubAdapter{
		results: map[string]clause.RawModelResult{
			"First clause here.":  {Label: "Termination", Confidence: 0.9, Summary: "a"},
			"Second clause here.": {Label: "Termination", Confidence: 0.9, Summary: "b"},
		},
	}
	rt := testRuntime(adapter)

	first, err := workflow.Execute(context.Background(), rt, request(text, "Termination"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := workflow.Execute(context.Background(), rt, request(text, "Termination"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Summary != second.Summary {
		t.Errorf("summaries diverged: %q vs %q", first.Summary, second.Summary)
	}
	if len(first.Results) != len(second.Results) {
		t.Fatalf("result counts diverged: %d vs %d", len(first.Results), len(second.Results))
	}
	for i := range first.Results {
		if first.Results[i].Clause != second.Results[i].Clause {
			t.Errorf("clause %d diverged: %q vs %q", i, first.Results[i].Clause, second.Results[i].Clause)
		}
	}
}

// blockingAdapter holds every invocation open until its context is done,
// signalling once the first invocation has started.
type blockingAdapter struct {
	started chan struct{}
	once    sync.Once
}

func (b *blockingAdapter) Invoke(ctx context.Context, task clause.ClassificationTask, modelID string) (*clause.RawModelResult, error) {
	b.once.Do(func() { close(b.started) })
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestExecuteCancelledMidClassification(t *testing.T) {
	adapter := &blockingAdapter{started: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type outcome struct {
		doc *clause.DocumentResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		doc, err := workflow.Execute(ctx, testRuntime(adapter), request(
			"Payment is due within 30 days of invoice. Either party may terminate with notice.",
			"Payment Terms", "Termination",
		))
		done <- outcome{doc, err}
	}()

	<-adapter.started
	cancel()

	select {
	case out := <-done:
		if out.err == nil {
			t.Fatal("expected an error after cancellation, got a document")
		}
		if out.doc != nil {
			t.Errorf("expected no document, got %+v", out.doc)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("execute did not return after cancellation")
	}
}
