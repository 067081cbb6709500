package ocr

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

func extractPlain(path string) (entity.TextResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return entity.TextResult{}, fmt.Errorf("read text: %w", err)
	}
	var warns []string
	if !utf8.Valid(b) {
		// exported text files from older systems are usually Windows-1252
		if dec, derr := charmap.Windows1252.NewDecoder().Bytes(b); derr == nil {
			b = dec
			warns = append(warns, "text was not utf-8, decoded as windows-1252")
		}
	}
	txt := Normalize(string(b))
	return entity.TextResult{
		Text:       txt,
		Pages:      1,
		Method:     "plain-text",
		Warnings:   warns,
		Confidence: 1,
	}, nil
}
