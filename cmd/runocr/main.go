package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/tripdocs/internal/app"
	"github.com/joseph-ayodele/tripdocs/internal/common"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <path>")
		os.Exit(2)
	}
	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	x := app.NewTextExtractor(common.LoadConfig(), logger)

	res, err := x.ExtractText(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	logger.Info("text extraction OK",
		"path", path,
		"source_type", res.SourceType,
		"method", res.Method,
		"pages", res.Pages,
		"confidence", res.Confidence,
		"bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	fmt.Println(res.Text)
}
