package entity

import "time"

// RawDocument is the immutable input of one upload.
type RawDocument struct {
	Text     string `json:"text"`
	FileName string `json:"file_name"`
}

// TextResult is what a text extractor hands back for one file.
type TextResult struct {
	Text       string        `json:"text"`
	Pages      int           `json:"pages"`
	SourceType string        `json:"source_type"` // constants.PDF | IMAGE | TXT | EMAIL
	Method     string        `json:"method"`      // "pdf-text" | "pdf-ocr" | "image-ocr" | "plain-text" | "email-text"
	Language   string        `json:"language,omitempty"`
	Duration   time.Duration `json:"duration"`
	Warnings   []string      `json:"warnings,omitempty"`
	Confidence float32       `json:"confidence"`
}
