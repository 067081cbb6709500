package app_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/tripdocs/internal/app"
	"github.com/joseph-ayodele/tripdocs/internal/common"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
	mock_importqueue "github.com/joseph-ayodele/tripdocs/internal/importqueue/mocks"
	"github.com/joseph-ayodele/tripdocs/internal/repository"
)

const hotelText = `Confirmação de reserva
Hotel Copacabana Palace
Check-in: 12/03/2025
Check-out: 15/03/2025
Total: R$ 1.250,00
Código da reserva: ABC123`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *common.Config {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DB_DRIVER", "sqlite")
	cfg := common.LoadConfig()
	cfg.OCR.ArtifactCacheDir = t.TempDir()
	return cfg
}

func TestOpenStorage_InMemory(t *testing.T) {
	ctx := context.Background()
	storage, err := app.OpenStorage(ctx, testConfig(t), true, discardLogger())
	require.NoError(t, err)
	defer storage.Close()

	assert.Equal(t, "sqlite3", storage.DB.Dialect)
	saved, err := storage.Store.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestStorage_CloseNil(t *testing.T) {
	var s *app.Storage
	assert.NotPanics(t, s.Close)
}

func TestNewDraftExtractor(t *testing.T) {
	cfg := testConfig(t)
	assert.Nil(t, app.NewDraftExtractor(cfg, discardLogger()))

	cfg.LLM.APIKey = "sk-test"
	assert.NotNil(t, app.NewDraftExtractor(cfg, discardLogger()))
}

func TestDrain_RunsAllBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	text := mock_importqueue.NewMockTextExtractor(ctrl)
	text.EXPECT().ExtractText(gomock.Any(), gomock.Any()).
		Return(entity.TextResult{Text: hotelText, Method: "plain-text"}, nil).
		Times(7)

	p := importqueue.NewProcessor(text, discardLogger(), importqueue.WithBatchSize(5), importqueue.WithWorkers(2))
	q := importqueue.NewQueue()
	for i := 0; i < 7; i++ {
		q.Add("/in/hotel.txt", entity.RawDocument{})
	}

	res, err := app.Drain(context.Background(), p, q, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 7, res.Started)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 7, res.NeedsConfirmation+res.AutoExtracted)
	assert.Equal(t, 0, res.Deferred)
	assert.Empty(t, q.Pending())
}

func TestDrain_StopsOnCancel(t *testing.T) {
	p := importqueue.NewProcessor(nil, discardLogger())
	q := importqueue.NewQueue()
	q.Add("/in/a.txt", entity.RawDocument{Text: hotelText})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := app.Drain(ctx, p, q, discardLogger())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Started)
	assert.Len(t, q.Pending(), 1)
}

func TestNewProcessor_PlainTextFile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	storage, err := app.OpenStorage(ctx, cfg, true, discardLogger())
	require.NoError(t, err)
	defer storage.Close()

	path := filepath.Join(t.TempDir(), "hotel.txt")
	require.NoError(t, os.WriteFile(path, []byte(hotelText), 0o644))

	q := importqueue.NewQueue()
	it := q.Add(path, entity.RawDocument{FileName: "hotel.txt"})

	res, err := app.Drain(ctx, app.NewProcessor(cfg, storage.Store, discardLogger()), q, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Started)
	assert.Equal(t, 0, res.Failed)

	got, err := q.Get(it.ID)
	require.NoError(t, err)
	assert.True(t, got.Reviewable())
	require.NotNil(t, got.Record)
	assert.Contains(t, got.Document.Text, "Copacabana")
}
