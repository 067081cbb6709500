package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

var ErrUnsupported = errors.New("unsupported file type")

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "por+eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit
	TessdataDir   string

	// MinPDFTextRunes is the embedded-text length below which a PDF is treated as scanned.
	MinPDFTextRunes int

	EnableTSVConfidence bool
	PSM                 int // e.g., 6 is good for uniform block of text
	OEM                 int // 1 = LSTM; leave 0 to use default

	// ArtifactCacheDir keeps extracted text keyed by content hash; empty disables caching.
	ArtifactCacheDir string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

type Option func(*Extractor)

// WithRunner replaces the exec runner, for tests.
func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "por+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinPDFTextRunes <= 0 {
		cfg.MinPDFTextRunes = 40
	}
	e := &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ExtractText picks a strategy based on file extension.
func (e *Extractor) ExtractText(ctx context.Context, path string) (entity.TextResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	if format == "" {
		e.logger.Error("ocr.unsupported_extension", "path", path, "ext", ext)
		return entity.TextResult{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	key := ""
	if e.cfg.ArtifactCacheDir != "" {
		if k, err := contentKey(path); err == nil {
			key = k
			if res, ok := e.loadCached(key); ok {
				e.logger.Debug("ocr.cache.hit", "path", path, "key", key)
				return res, nil
			}
		} else {
			e.logger.Warn("ocr.cache.hash_failed", "path", path, "err", err)
		}
	}

	e.logger.Debug("ocr.extract.start", "path", path, "format", format)
	var (
		res entity.TextResult
		err error
	)
	switch format {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, path)
	case constants.TXT:
		res, err = extractPlain(path)
	case constants.EMAIL:
		res, err = extractEmail(path)
	}
	res.SourceType = format
	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Error("ocr.extract.failed", "path", path, "format", format, "err", err)
		return res, err
	}

	if key != "" {
		if cerr := e.storeCached(key, res); cerr != nil {
			e.logger.Warn("ocr.cache.store_failed", "path", path, "err", cerr)
		}
	}
	e.logger.Info("ocr.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
