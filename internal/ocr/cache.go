package ocr

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// contentKey is the hex sha256 of the file bytes.
func contentKey(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (e *Extractor) cachePath(key string) string {
	return filepath.Join(e.cfg.ArtifactCacheDir, key+".text.json")
}

func (e *Extractor) loadCached(key string) (entity.TextResult, bool) {
	b, err := os.ReadFile(e.cachePath(key))
	if err != nil {
		return entity.TextResult{}, false
	}
	var res entity.TextResult
	if err := json.Unmarshal(b, &res); err != nil {
		e.logger.Warn("ocr.cache.corrupt", "key", key, "err", err)
		return entity.TextResult{}, false
	}
	return res, true
}

func (e *Extractor) storeCached(key string, res entity.TextResult) error {
	if err := os.MkdirAll(e.cfg.ArtifactCacheDir, 0o755); err != nil {
		return fmt.Errorf("mkdir cache: %w", err)
	}
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	tmp := e.cachePath(key) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, e.cachePath(key))
}
