package ingest_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
	"github.com/joseph-ayodele/tripdocs/internal/ingest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIngestDirectory(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.pdf"), "ticket")
	write(t, filepath.Join(root, "b.txt"), "Restaurante: Fasano")
	write(t, filepath.Join(root, "dup.pdf"), "ticket")
	write(t, filepath.Join(root, "notes.docx"), "ignored")
	write(t, filepath.Join(root, ".cache", "x.pdf"), "hidden")
	write(t, filepath.Join(root, "sub", "c.eml"), "Subject: hi\n\nbody")

	q := importqueue.NewQueue()
	ing := ingest.NewIngestor(q, discardLogger())

	results, stats, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), stats.Scanned)
	assert.Equal(t, uint32(4), stats.Matched)
	assert.Equal(t, uint32(3), stats.Queued)
	assert.Equal(t, uint32(1), stats.Duplicate)
	assert.Zero(t, stats.Failed)
	require.Len(t, results, 4)
	assert.True(t, results[2].Duplicate)
	assert.Equal(t, results[0].ItemID, results[2].ItemID)

	items := q.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a.pdf", items[0].Document.FileName)
	assert.Equal(t, "b.txt", items[1].Document.FileName)
	assert.Equal(t, "c.eml", items[2].Document.FileName)
}

func TestIngestDirectory_CustomExtensionsAndHidden(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.pdf"), "ticket")
	write(t, filepath.Join(root, ".cache", "x.pdf"), "hidden")

	q := importqueue.NewQueue()
	ing := ingest.NewIngestor(q, discardLogger(),
		ingest.WithExtensions([]string{".PDF"}),
		ingest.WithSkipHidden(false),
	)
	_, stats, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stats.Queued)
	assert.Equal(t, 2, q.Len())
}

func TestIngestDirectory_Errors(t *testing.T) {
	ing := ingest.NewIngestor(importqueue.NewQueue(), discardLogger())

	_, _, err := ing.IngestDirectory(context.Background(), " ")
	assert.Error(t, err)

	_, _, err = ing.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	root := t.TempDir()
	write(t, filepath.Join(root, "a.pdf"), "ticket")
	_, _, err = ing.IngestDirectory(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIngestPath(t *testing.T) {
	root := t.TempDir()
	q := importqueue.NewQueue()
	ing := ingest.NewIngestor(q, discardLogger())

	_, err := ing.IngestPath(filepath.Join(root, "missing.pdf"))
	assert.Error(t, err)

	docx := filepath.Join(root, "resume.docx")
	write(t, docx, "x")
	_, err = ing.IngestPath(docx)
	assert.Error(t, err)
	assert.Zero(t, q.Len())
}

func TestIsHidden(t *testing.T) {
	assert.True(t, ingest.IsHidden("/tmp/.DS_Store"))
	assert.False(t, ingest.IsHidden("/tmp/ticket.pdf"))
	assert.False(t, ingest.IsHidden("."))
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case p, ok := <-ch:
			require.True(t, ok, "watcher closed before %s", want)
			if p == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestStartWatcher(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "existing.pdf")
	write(t, existing, "old")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{root},
		SkipHidden:  true,
		InitialScan: true,
		Debounce:    50 * time.Millisecond,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)
	waitFor(t, events, existing)

	fresh := filepath.Join(root, "fresh.png")
	write(t, fresh, "new")
	waitFor(t, events, fresh)

	cancel()
	for range events {
	}
}

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := ingest.StartWatcher(context.Background(), ingest.WatchConfig{})
	assert.Error(t, err)
}
