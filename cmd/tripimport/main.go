package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/app"
	"github.com/joseph-ayodele/tripdocs/internal/common"
	"github.com/joseph-ayodele/tripdocs/internal/export"
	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
	"github.com/joseph-ayodele/tripdocs/internal/ingest"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem   = flag.Bool("inmem", false, "use in-memory SQLite database")
		dir     = flag.String("dir", "", "directory to import travel documents from (required)")
		out     = flag.String("out", "", "review XLSX path (optional, defaults to parent directory)")
		dest    = flag.String("dest", "", "trip destination hint (overrides TRIP_DESTINATION)")
		confirm = flag.Bool("confirm", false, "save items that were extracted with nothing missing")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(filepath.Clean(*dir)), "trip-review.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()
	if *dest != "" {
		cfg.Import.TripDestination = *dest
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	storage, err := app.OpenStorage(ctx, cfg, *inmem, logger)
	if err != nil {
		logger.Error("failed to initialize database", "err", err)
		os.Exit(1)
	}
	defer storage.Close()

	q := importqueue.NewQueue()
	processor := app.NewProcessor(cfg, storage.Store, logger)
	ingestor := ingest.NewIngestor(q, logger,
		ingest.WithExtensions(cfg.Import.AllowedExtensions),
		ingest.WithSkipHidden(cfg.Import.SkipHidden),
	)

	logger.Info("starting ingestion", "dir", *dir)
	_, stats, err := ingestor.IngestDirectory(ctx, *dir)
	if err != nil {
		logger.Error("failed to ingest directory", "err", err)
		os.Exit(1)
	}

	batch, err := app.Drain(ctx, processor, q, logger)
	if err != nil {
		logger.Warn("import interrupted", "err", err, "pending", len(q.Pending()))
	}

	saved := 0
	if *confirm {
		for _, it := range q.Items() {
			if it.Status != constants.StatusAutoExtracted {
				continue
			}
			res, err := processor.Confirm(ctx, q, it.ID, nil)
			if err != nil {
				logger.Error("confirm failed", "item_id", it.ID, "err", err)
				continue
			}
			if res.Status == constants.StatusSaved {
				saved++
			}
		}
	}

	logger.Info("exporting review workbook", "output", *out)
	xlsx, err := export.NewService(storage.Store, logger).ExportQueueXLSX(q.Items())
	if err != nil {
		logger.Error("failed to export review workbook", "err", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsx, 0o644); err != nil {
		logger.Error("failed to write output file", "err", err)
		os.Exit(1)
	}

	counts := q.Counts()
	logger.Info("import complete",
		"queued", stats.Queued,
		"duplicates", stats.Duplicate,
		"processed", batch.Started,
		"needs_confirmation", counts[constants.StatusNeedsConfirmation],
		"auto_extracted", counts[constants.StatusAutoExtracted],
		"failed", counts[constants.StatusFailed],
		"saved", saved,
		"output_file", *out,
	)

	fmt.Printf("Import complete!\n")
	fmt.Printf("- Files queued: %d (duplicates skipped: %d)\n", stats.Queued, stats.Duplicate)
	fmt.Printf("- Needs confirmation: %d\n", counts[constants.StatusNeedsConfirmation])
	fmt.Printf("- Auto extracted: %d\n", counts[constants.StatusAutoExtracted])
	fmt.Printf("- Failed: %d\n", counts[constants.StatusFailed])
	fmt.Printf("- Saved: %d\n", saved)
	fmt.Printf("- Output: %s\n", *out)
}
