package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/tripdocs/internal/app"
	"github.com/joseph-ayodele/tripdocs/internal/common"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
)

// output is what one run prints: the raw draft next to the evaluated record.
type output struct {
	File    string              `json:"file"`
	Method  string              `json:"method"`
	Draft   *entity.WeakDraft   `json:"draft"`
	Outcome importqueue.Outcome `json:"outcome"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage: llm <path>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		logger.Error("OPENAI_API_KEY env var is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := app.NewTextExtractor(cfg, logger).ExtractText(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "err", err)
		os.Exit(1)
	}
	doc := entity.RawDocument{Text: res.Text, FileName: filepath.Base(path)}

	start := time.Now()
	draft, err := app.NewDraftExtractor(cfg, logger).ExtractDraft(ctx, doc.Text, doc.FileName)
	if err != nil {
		logger.Error("draft extraction failed", "path", path, "err", err)
		os.Exit(1)
	}
	logger.Info("draft extracted", "elapsed_ms", time.Since(start).Milliseconds(), "empty", draft.Empty())

	outcome := importqueue.Evaluate(doc, draft, importqueue.EvalOptions{
		MinDraftFields:  cfg.Import.MinDraftFields,
		TripDestination: cfg.Import.TripDestination,
	})
	out := output{
		File:    doc.FileName,
		Method:  res.Method,
		Draft:   draft,
		Outcome: outcome,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode", "err", err)
		os.Exit(1)
	}
}
