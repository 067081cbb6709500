package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
)

type FileResult struct {
	Path      string
	ItemID    uuid.UUID
	HashHex   string
	Duplicate bool
	Err       string
}

type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Queued    uint32
	Duplicate uint32
	Failed    uint32
}

// Ingestor adds discovered files to a queue, once per distinct content.
type Ingestor struct {
	queue      *importqueue.Queue
	exts       map[string]struct{}
	skipHidden bool
	logger     *slog.Logger

	mu   sync.Mutex
	seen map[string]uuid.UUID
}

type Option func(*Ingestor)

func WithExtensions(exts []string) Option {
	return func(i *Ingestor) { i.exts = extSet(exts) }
}

func WithSkipHidden(skip bool) Option {
	return func(i *Ingestor) { i.skipHidden = skip }
}

func NewIngestor(q *importqueue.Queue, logger *slog.Logger, opts ...Option) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	i := &Ingestor{
		queue:      q,
		exts:       extSet(nil),
		skipHidden: true,
		logger:     logger,
		seen:       map[string]uuid.UUID{},
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// IngestPath hashes path and enqueues it unless the same bytes were already queued.
func (i *Ingestor) IngestPath(path string) (FileResult, error) {
	if !allowed(path, i.exts) {
		return FileResult{Path: path}, fmt.Errorf("extension not allowed: %q", filepath.Ext(path))
	}
	hash, err := hashFile(path)
	if err != nil {
		return FileResult{Path: path}, fmt.Errorf("hash file: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.seen[hash]; ok {
		i.logger.Debug("ingest.file.duplicate", "path", path, "item_id", id)
		return FileResult{Path: path, ItemID: id, HashHex: hash, Duplicate: true}, nil
	}
	it := i.queue.Add(path, entity.RawDocument{FileName: filepath.Base(path)})
	i.seen[hash] = it.ID
	i.logger.Info("ingest.file.queued", "path", path, "item_id", it.ID)
	return FileResult{Path: path, ItemID: it.ID, HashHex: hash}, nil
}

// IngestDirectory walks root, filters by extension, skips hidden entries if
// configured and calls IngestPath for each file. Walk errors on single entries
// are recorded and the walk continues.
func (i *Ingestor) IngestDirectory(ctx context.Context, root string) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if i.skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if !allowed(path, i.exts) {
			return nil
		}
		stats.Matched++

		res, err := i.IngestPath(path)
		if err != nil {
			res.Err = err.Error()
			results = append(results, res)
			stats.Failed++
			return nil
		}
		results = append(results, res)
		if res.Duplicate {
			stats.Duplicate++
		} else {
			stats.Queued++
		}
		return nil
	})

	i.logger.Info("ingest.directory.done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"queued", stats.Queued,
		"duplicate", stats.Duplicate,
		"failed", stats.Failed,
	)
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}
