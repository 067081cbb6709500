package importqueue_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/common"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
	mock_importqueue "github.com/joseph-ayodele/tripdocs/internal/importqueue/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessor_Process(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		setup       func(text *mock_importqueue.MockTextExtractor, draft *mock_importqueue.MockDraftExtractor)
		opts        []importqueue.Option
		doc         entity.RawDocument
		wantStatus  constants.ImportStatus
		wantWarning string
		wantMethod  string
	}{
		{
			name: "text extracted then fallback",
			setup: func(text *mock_importqueue.MockTextExtractor, draft *mock_importqueue.MockDraftExtractor) {
				text.EXPECT().ExtractText(gomock.Any(), "/in/voo.pdf").
					Return(entity.TextResult{Text: flightText, Method: "pdftotext"}, nil)
				draft.EXPECT().ExtractDraft(gomock.Any(), flightText, "voo.pdf").Return(nil, nil)
			},
			wantStatus: constants.StatusNeedsConfirmation,
			wantMethod: "pdftotext",
		},
		{
			name: "cached text skips extraction",
			setup: func(_ *mock_importqueue.MockTextExtractor, draft *mock_importqueue.MockDraftExtractor) {
				draft.EXPECT().ExtractDraft(gomock.Any(), "Confirmação de voo", "voo.pdf").Return(strongFlightDraft(), nil)
			},
			doc:        entity.RawDocument{Text: "Confirmação de voo"},
			wantStatus: constants.StatusAutoExtracted,
		},
		{
			name: "extractor error fails",
			setup: func(text *mock_importqueue.MockTextExtractor, _ *mock_importqueue.MockDraftExtractor) {
				text.EXPECT().ExtractText(gomock.Any(), gomock.Any()).Return(entity.TextResult{}, errors.New("tesseract missing"))
			},
			wantStatus:  constants.StatusFailed,
			wantWarning: "text extraction failed: tesseract missing",
		},
		{
			name: "empty text fails",
			setup: func(text *mock_importqueue.MockTextExtractor, _ *mock_importqueue.MockDraftExtractor) {
				text.EXPECT().ExtractText(gomock.Any(), gomock.Any()).Return(entity.TextResult{Text: "  \n"}, nil)
			},
			wantStatus:  constants.StatusFailed,
			wantWarning: importqueue.ErrEmptyText.Error(),
		},
		{
			name: "draft error fails by default",
			setup: func(_ *mock_importqueue.MockTextExtractor, draft *mock_importqueue.MockDraftExtractor) {
				draft.EXPECT().ExtractDraft(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("429"))
			},
			doc:         entity.RawDocument{Text: flightText},
			wantStatus:  constants.StatusFailed,
			wantWarning: "draft extraction failed: 429",
		},
		{
			name: "draft error falls back when enabled",
			setup: func(_ *mock_importqueue.MockTextExtractor, draft *mock_importqueue.MockDraftExtractor) {
				draft.EXPECT().ExtractDraft(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			opts:        []importqueue.Option{importqueue.WithFallbackOnDraftError(true)},
			doc:         entity.RawDocument{Text: flightText},
			wantStatus:  constants.StatusNeedsConfirmation,
			wantWarning: "draft extraction failed, using text only: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := mock_importqueue.NewMockTextExtractor(ctrl)
			draft := mock_importqueue.NewMockDraftExtractor(ctrl)
			tt.setup(text, draft)

			opts := append([]importqueue.Option{importqueue.WithDraftExtractor(draft)}, tt.opts...)
			p := importqueue.NewProcessor(text, discardLogger(), opts...)

			q := importqueue.NewQueue()
			item := q.Add("/in/voo.pdf", tt.doc)

			got, err := p.Process(context.Background(), item)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, 1, got.Attempts)
			if tt.wantWarning != "" {
				require.NotEmpty(t, got.Warnings)
				assert.Contains(t, got.Warnings[len(got.Warnings)-1], tt.wantWarning)
			}
			if tt.wantMethod != "" {
				assert.Equal(t, tt.wantMethod, got.TextMethod)
			}
			if tt.wantStatus != constants.StatusFailed {
				require.NotNil(t, got.Record)
				assert.Equal(t, constants.Flight, got.Type)
			}
		})
	}
}

func TestProcessor_ProcessRejectsReviewedItem(t *testing.T) {
	p := importqueue.NewProcessor(nil, discardLogger())
	_, err := p.Process(context.Background(), importqueue.Item{Status: constants.StatusSaved})
	assert.ErrorIs(t, err, importqueue.ErrInvalidTransition)
}

func TestProcessor_ProcessWithoutExtractor(t *testing.T) {
	p := importqueue.NewProcessor(nil, discardLogger())
	q := importqueue.NewQueue()

	got, err := p.Process(context.Background(), q.Add("/in/a.pdf", entity.RawDocument{}))
	require.NoError(t, err)
	assert.Equal(t, constants.StatusFailed, got.Status)
}

func TestProcessor_RunBatchCapsBatchSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	text := mock_importqueue.NewMockTextExtractor(ctrl)
	text.EXPECT().ExtractText(gomock.Any(), gomock.Any()).
		Return(entity.TextResult{Text: flightText, Method: "plain-text"}, nil).
		Times(5)

	p := importqueue.NewProcessor(text, discardLogger(), importqueue.WithBatchSize(5), importqueue.WithWorkers(2))
	q := importqueue.NewQueue()
	for i := 0; i < 7; i++ {
		q.Add("/in/voo.txt", entity.RawDocument{})
	}

	res, err := p.RunBatch(context.Background(), q)
	require.NoError(t, err)
	assert.NotEmpty(t, res.BatchID)
	assert.Equal(t, 5, res.Started)
	assert.Equal(t, 5, res.NeedsConfirmation)
	assert.Equal(t, 2, res.Deferred)
	assert.Len(t, q.Pending(), 2)
	assert.Equal(t, 5, q.Counts()[constants.StatusNeedsConfirmation])

	items := q.Items()
	for _, it := range items[:5] {
		assert.Equal(t, constants.StatusNeedsConfirmation, it.Status)
	}
	for _, it := range items[5:] {
		assert.Equal(t, constants.StatusPending, it.Status)
	}
}

func TestProcessor_RunBatchCancelledBeforeStart(t *testing.T) {
	p := importqueue.NewProcessor(nil, discardLogger())
	q := importqueue.NewQueue()
	q.Add("/in/a.txt", entity.RawDocument{Text: flightText})
	q.Add("/in/b.txt", entity.RawDocument{Text: flightText})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.RunBatch(ctx, q)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Started)
	assert.Len(t, q.Pending(), 2)
}

func TestProcessor_RunBatchTagsBatchID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var seen string
	text := mock_importqueue.NewMockTextExtractor(ctrl)
	text.EXPECT().ExtractText(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (entity.TextResult, error) {
			seen = common.BatchIDFromContext(ctx)
			return entity.TextResult{Text: flightText}, nil
		})

	p := importqueue.NewProcessor(text, discardLogger())
	q := importqueue.NewQueue()
	q.Add("/in/voo.txt", entity.RawDocument{})

	res, err := p.RunBatch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, res.BatchID, seen)
}

func TestProcessor_Reprocess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	text := mock_importqueue.NewMockTextExtractor(ctrl)
	gomock.InOrder(
		text.EXPECT().ExtractText(gomock.Any(), "/in/voo.pdf").Return(entity.TextResult{}, errors.New("pdftotext crashed")),
		text.EXPECT().ExtractText(gomock.Any(), "/in/voo.pdf").Return(entity.TextResult{Text: flightText}, nil),
	)

	p := importqueue.NewProcessor(text, discardLogger())
	q := importqueue.NewQueue()
	item := q.Add("/in/voo.pdf", entity.RawDocument{})

	_, err := p.RunBatch(context.Background(), q)
	require.NoError(t, err)
	failed, err := q.Get(item.ID)
	require.NoError(t, err)
	require.Equal(t, constants.StatusFailed, failed.Status)

	got, err := p.Reprocess(context.Background(), q, item.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusNeedsConfirmation, got.Status)
	assert.Equal(t, 2, got.Attempts)
	assert.Contains(t, got.Warnings[0], "pdftotext crashed")

	stored, err := q.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Status, stored.Status)

	_, err = p.Reprocess(context.Background(), q, item.ID)
	assert.ErrorIs(t, err, importqueue.ErrInvalidTransition)
}

// reviewQueue holds one scenario-style flight item waiting for confirmation.
func reviewQueue(t *testing.T, p *importqueue.Processor) (*importqueue.Queue, importqueue.Item) {
	t.Helper()
	q := importqueue.NewQueue()
	item := q.Add("/in/Comprovante-LATAM-LA3301.pdf", entity.RawDocument{Text: flightText})
	_, err := p.RunBatch(context.Background(), q)
	require.NoError(t, err)
	got, err := q.Get(item.ID)
	require.NoError(t, err)
	require.Equal(t, constants.StatusNeedsConfirmation, got.Status)
	return q, got
}

func TestProcessor_ChangeType(t *testing.T) {
	p := importqueue.NewProcessor(nil, discardLogger())
	q, item := reviewQueue(t, p)

	got, err := p.ChangeType(q, item.ID, constants.Lodging)
	require.NoError(t, err)
	assert.Equal(t, constants.Lodging, got.Type)
	assert.Equal(t, constants.Lodging, got.Record.Type)
	assert.Equal(t, []string{"hospedagem.check_out"}, got.Missing)
	assert.Equal(t, constants.StatusNeedsConfirmation, got.Status)
	require.NotNil(t, got.Record.Lodging())
	assert.Equal(t, "GRU", got.Record.Lodging().Location)

	back, err := p.ChangeType(q, item.ID, constants.Flight)
	require.NoError(t, err)
	assert.Empty(t, back.Missing)

	_, err = p.ChangeType(q, item.ID, constants.ReservationType("cruise"))
	assert.ErrorIs(t, err, importqueue.ErrInvalidType)
}

func TestProcessor_ChangeTypeKeepsAmbiguousScopeInReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	draft := mock_importqueue.NewMockDraftExtractor(ctrl)
	draft.EXPECT().ExtractDraft(gomock.Any(), "documento", "doc.pdf").Return(strongFlightDraft(), nil)
	p := importqueue.NewProcessor(nil, discardLogger(), importqueue.WithDraftExtractor(draft))

	q := importqueue.NewQueue()
	item := q.Add("/in/doc.pdf", entity.RawDocument{Text: "documento"})
	_, err := p.RunBatch(context.Background(), q)
	require.NoError(t, err)

	processed, err := q.Get(item.ID)
	require.NoError(t, err)
	require.Equal(t, constants.StatusNeedsConfirmation, processed.Status)
	require.Empty(t, processed.Missing)
	assert.Equal(t, heuristics.ScopeNoSignal, processed.ScopeSource)

	got, err := p.ChangeType(q, item.ID, constants.Flight)
	require.NoError(t, err)
	assert.Empty(t, got.Missing)
	assert.Equal(t, constants.StatusNeedsConfirmation, got.Status)
}

func TestProcessor_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("saved", func(t *testing.T) {
		saver := mock_importqueue.NewMockSaver(ctrl)
		p := importqueue.NewProcessor(nil, discardLogger(), importqueue.WithSaver(saver))
		q, item := reviewQueue(t, p)

		saver.EXPECT().Save(gomock.Any(), item.ID, "Comprovante-LATAM-LA3301.pdf", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, rec *entity.Record) error {
				assert.Equal(t, "LA3301", rec.Flight().Number)
				return nil
			})

		got, err := p.Confirm(context.Background(), q, item.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusSaved, got.Status)

		_, err = p.Confirm(context.Background(), q, item.ID, nil)
		assert.ErrorIs(t, err, importqueue.ErrInvalidTransition)
	})

	t.Run("save failure leaves item failed", func(t *testing.T) {
		saver := mock_importqueue.NewMockSaver(ctrl)
		p := importqueue.NewProcessor(nil, discardLogger(), importqueue.WithSaver(saver))
		q, item := reviewQueue(t, p)

		saver.EXPECT().Save(gomock.Any(), item.ID, gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		got, err := p.Confirm(context.Background(), q, item.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusFailed, got.Status)
		assert.Contains(t, got.Warnings[len(got.Warnings)-1], "save failed: disk full")
	})

	t.Run("edited record is validated", func(t *testing.T) {
		saver := mock_importqueue.NewMockSaver(ctrl)
		p := importqueue.NewProcessor(nil, discardLogger(), importqueue.WithSaver(saver))
		q, item := reviewQueue(t, p)

		edited := item.Record.Clone()
		edited.Currency = "reais"
		edited.StartDate = "02/04/2026"

		got, err := p.Confirm(context.Background(), q, item.ID, edited)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Equal(t, constants.StatusNeedsConfirmation, got.Status)
	})

	t.Run("edited record replaces the draft", func(t *testing.T) {
		saver := mock_importqueue.NewMockSaver(ctrl)
		p := importqueue.NewProcessor(nil, discardLogger(), importqueue.WithSaver(saver))
		q, item := reviewQueue(t, p)

		edited := item.Record.Clone()
		edited.TravelerName = "MARIA SILVA"
		saver.EXPECT().Save(gomock.Any(), item.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, rec *entity.Record) error {
				assert.Equal(t, "MARIA SILVA", rec.TravelerName)
				return nil
			})

		got, err := p.Confirm(context.Background(), q, item.ID, edited)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusSaved, got.Status)
		assert.Equal(t, "MARIA SILVA", got.Record.TravelerName)
	})

	t.Run("no saver", func(t *testing.T) {
		p := importqueue.NewProcessor(nil, discardLogger())
		q, item := reviewQueue(t, p)
		_, err := p.Confirm(context.Background(), q, item.ID, nil)
		assert.ErrorIs(t, err, importqueue.ErrNoSaver)
	})
}
