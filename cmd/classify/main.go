// Command classify runs the clause classification pipeline against a text
// or PDF document from the command line, without the HTTP surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"lexclause/internal/classifications"
	"lexclause/internal/clause"
	"lexclause/internal/config"
	"lexclause/internal/infrastructure"
	"lexclause/internal/workflow"
)

func main() {
	godotenv.Load()

	var (
		text       = flag.String("text", "", "text to classify")
		file       = flag.String("file", "", "file containing text to classify (.txt or .pdf)")
		model      = flag.String("model", "", "model to use for classification")
		categories = flag.String("categories", "", "comma-separated custom clause types")
		asJSON     = flag.Bool("json", false, "output in JSON format")
		output     = flag.String("output", "", "output file (default: stdout)")
	)
	flag.Parse()

	if (*text == "") == (*file == "") {
		log.Fatal("exactly one of --text or --file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("init failed:", err)
	}

	sys := classifications.New(classifications.Options{
		Version:            cfg.Version,
		DefaultModel:       cfg.Classifier.DefaultModel,
		SupportedModels:    cfg.Classifier.SupportedModels(),
		DefaultClauseTypes: clause.CategorySet(cfg.Classifier.DefaultClauseTypes),
		Runtime: &workflow.Runtime{
			Adapter:       infra.Selector,
			Exec:          infra.Executor,
			Limiter:       infra.Limiter,
			Workers:       cfg.Classifier.Workers,
			InvokeTimeout: cfg.Classifier.InvokeTimeoutDuration(),
			Metrics:       infra.Metrics,
			Logger:        infra.Logger.With("workflow", "classify"),
		},
	}, infra.Logger)

	cmd := classifications.ClassifyCommand{
		Text:        *text,
		Model:       *model,
		ClauseTypes: splitCategories(*categories),
	}

	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatal("read file failed:", err)
		}
		if strings.EqualFold(filepath.Ext(*file), ".pdf") {
			cmd.PDF = data
		} else {
			cmd.Text = string(data)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := sys.Classify(ctx, cmd)
	if err != nil {
		result = clause.ErrorResult(err)
	}

	rendered, err := render(result, *asJSON)
	if err != nil {
		log.Fatal("render failed:", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatal("write output failed:", err)
		}
		return
	}

	fmt.Println(rendered)
}

func splitCategories(s string) clause.CategorySet {
	if s == "" {
		return nil
	}

	var categories clause.CategorySet
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}

func render(result *clause.DocumentResult, asJSON bool) (string, error) {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var b strings.Builder

	if result.Error != "" {
		fmt.Fprintf(&b, "Error: %s", result.Error)
		return b.String(), nil
	}

	if result.Summary != "" {
		fmt.Fprintf(&b, "Document Summary: %s\n\n", result.Summary)
	}

	if result.Meta != nil {
		fmt.Fprintf(&b, "Model: %s\n", result.Meta.Model)
		fmt.Fprintf(&b, "Clause Types: %s\n", strings.Join(result.Meta.ClauseTypes, ", "))
		fmt.Fprintf(&b, "Clauses Found: %d\n\n", result.Meta.ClauseCount)
	}

	if len(result.Results) == 0 {
		b.WriteString("No clauses were classified.")
		return b.String(), nil
	}

	b.WriteString("Classification Results:")
	for i, r := range result.Results {
		fmt.Fprintf(&b, "\n\n[%d] %s (Confidence: %.2f - %s)\n", i+1, r.Label, r.Confidence, r.Tier)
		fmt.Fprintf(&b, "Clause: %q\n", r.Clause)
		fmt.Fprintf(&b, "Summary: %s", r.Summary)
	}

	return b.String(), nil
}
