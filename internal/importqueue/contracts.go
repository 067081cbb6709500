package importqueue

import (
	"context"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// TextExtractor reads raw text out of a stored upload (native text or OCR).
//
//go:generate mockgen -destination=mocks/mock_contracts.go -source=contracts.go
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (entity.TextResult, error)
}

// DraftExtractor is the AI step. A nil draft with a nil error means "no guess".
type DraftExtractor interface {
	ExtractDraft(ctx context.Context, text, fileName string) (*entity.WeakDraft, error)
}

// Saver persists a confirmed record.
type Saver interface {
	Save(ctx context.Context, itemID uuid.UUID, fileName string, rec *entity.Record) error
}
