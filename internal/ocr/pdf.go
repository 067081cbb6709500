package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// extractPDF reads the embedded text layer and falls back to rasterize+OCR
// when the layer is missing or too thin to be useful.
func (e *Extractor) extractPDF(ctx context.Context, path string) (entity.TextResult, error) {
	text, pages, warns, err := e.pdfToText(ctx, path)
	if err == nil {
		text = Normalize(text)
		if utf8.RuneCountInString(text) >= e.cfg.MinPDFTextRunes {
			return entity.TextResult{
				Text:       text,
				Pages:      pages,
				Method:     "pdf-text",
				Warnings:   warns,
				Confidence: 0.9,
			}, nil
		}
		e.logger.Debug("ocr.pdf.text_layer_thin", "path", path, "runes", utf8.RuneCountInString(text))
	} else {
		warns = append(warns, fmt.Sprintf("pdftotext: %v", err))
	}

	ocrText, ocrPages, ocrWarns, ocrErr := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if ocrErr != nil {
		return entity.TextResult{Warnings: warns}, fmt.Errorf("pdf ocr: %w", ocrErr)
	}
	ocrText = Normalize(ocrText)
	return entity.TextResult{
		Text:       ocrText,
		Pages:      ocrPages,
		Method:     "pdf-ocr",
		Language:   e.cfg.TesseractLang,
		Warnings:   warns,
		Confidence: heuristicConfidence(ocrText),
	}, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (string, int, []string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, nonEmpty(string(errb)), err
	}
	text := strings.TrimRight(string(out), "\f")
	// form feed separates pages
	pages := 1 + strings.Count(text, "\f")
	return text, pages, nil, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (string, int, []string, error) {
	tmpDir, err := os.MkdirTemp("", "tripdocs-pp-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("ocr.pdf.tmp_cleanup_failed", "dir", tmpDir, "err", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(e.cfg.DPI), "-png"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, append(args, path, prefix)...)
	if err != nil {
		return "", 0, nonEmpty(string(errb)), err
	}

	// prefix-1.png, prefix-2.png, ...
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		warns = append(warns, w...)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(txt)
	}
	return b.String(), len(matches), warns, nil
}

func nonEmpty(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return []string{s}
}
