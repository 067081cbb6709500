package llm

import (
	"context"
	"errors"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

var (
	ErrNoChoices   = errors.New("no choices in completion response")
	ErrEmptyOutput = errors.New("model returned empty content")
)

// ExtractRequest is what a draft prompt is built from.
type ExtractRequest struct {
	Text            string
	FileName        string
	TripDestination string
	DefaultCurrency string
	MaxTextRunes    int
}

// DraftExtractor is implemented by every provider client.
type DraftExtractor interface {
	ExtractDraft(ctx context.Context, text, fileName string) (*entity.WeakDraft, error)
}
