// Package app wires configuration into the concrete collaborators used by the commands.
package app

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/tripdocs/internal/common"
	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
	"github.com/joseph-ayodele/tripdocs/internal/llm/openai"
	"github.com/joseph-ayodele/tripdocs/internal/ocr"
	"github.com/joseph-ayodele/tripdocs/internal/repository"
)

// Storage is an open, migrated database and its reservation store.
type Storage struct {
	DB    *repository.DB
	Store repository.ReservationStore
}

func (s *Storage) Close() {
	if s != nil {
		s.DB.Close()
	}
}

// OpenStorage opens the configured database (or an in-memory SQLite one) and migrates it.
func OpenStorage(ctx context.Context, cfg *common.Config, inMemory bool, logger *slog.Logger) (*Storage, error) {
	dbCfg := repository.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}
	if inMemory {
		dbCfg = repository.Config{Driver: "sqlite"}
	}
	db, err := repository.Open(ctx, dbCfg, logger)
	if err != nil {
		return nil, common.WrapError(err, "open database")
	}
	if err := db.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		db.Close()
		return nil, common.WrapError(err, "database health")
	}
	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Storage{DB: db, Store: repository.NewReservationStore(db, logger)}, nil
}

func NewTextExtractor(cfg *common.Config, logger *slog.Logger) *ocr.Extractor {
	return ocr.NewExtractor(ocr.Config{
		Pdftotext:        cfg.OCR.PDFToTextBin,
		Pdftoppm:         cfg.OCR.PDFToPPMBin,
		Tesseract:        cfg.OCR.TesseractBin,
		TesseractLang:    cfg.OCR.Language,
		DPI:              cfg.OCR.DPI,
		TessdataDir:      cfg.OCR.TessdataDir,
		ArtifactCacheDir: cfg.OCR.ArtifactCacheDir,
	}, logger)
}

// NewDraftExtractor returns nil when no API key is configured; the queue then
// evaluates from text alone.
func NewDraftExtractor(cfg *common.Config, logger *slog.Logger) importqueue.DraftExtractor {
	if cfg.LLM.APIKey == "" {
		logger.Warn("app.llm.disabled", "reason", "OPENAI_API_KEY not set")
		return nil
	}
	logger.Info("app.llm.enabled", "model", cfg.LLM.Model)
	return openai.NewClient(openai.Config{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		Timeout:         cfg.LLM.Timeout,
		TripDestination: cfg.Import.TripDestination,
	}, logger)
}

// NewProcessor builds a processor from config. saver may be nil for
// extraction-only runs.
func NewProcessor(cfg *common.Config, saver importqueue.Saver, logger *slog.Logger) *importqueue.Processor {
	opts := []importqueue.Option{
		importqueue.WithWorkers(cfg.Import.Workers),
		importqueue.WithBatchSize(cfg.Import.MaxBatchFiles),
		importqueue.WithMinDraftFields(cfg.Import.MinDraftFields),
		importqueue.WithMaxWarnings(cfg.Import.MaxWarnings),
		importqueue.WithTripDestination(cfg.Import.TripDestination),
	}
	if d := NewDraftExtractor(cfg, logger); d != nil {
		opts = append(opts, importqueue.WithDraftExtractor(d))
	}
	if saver != nil {
		opts = append(opts, importqueue.WithSaver(saver))
	}
	return importqueue.NewProcessor(NewTextExtractor(cfg, logger), logger, opts...)
}

// Drain runs batches until nothing is pending or ctx is done.
func Drain(ctx context.Context, p *importqueue.Processor, q *importqueue.Queue, logger *slog.Logger) (importqueue.BatchResult, error) {
	var total importqueue.BatchResult
	for len(q.Pending()) > 0 {
		res, err := p.RunBatch(ctx, q)
		total.Started += res.Started
		total.NeedsConfirmation += res.NeedsConfirmation
		total.AutoExtracted += res.AutoExtracted
		total.Failed += res.Failed
		total.Deferred = res.Deferred
		if err != nil {
			return total, err
		}
		if res.Started == 0 {
			break
		}
	}
	logger.Info("app.drain.done",
		"started", total.Started,
		"needs_confirmation", total.NeedsConfirmation,
		"auto_extracted", total.AutoExtracted,
		"failed", total.Failed,
	)
	return total, nil
}
