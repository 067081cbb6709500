package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/tripdocs/constants"
)

// extSet lowercases and trims a list of extensions; empty input means the defaults.
func extSet(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		return constants.AllowedExtensions
	}
	out := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		if e = constants.NormalizeExt(e); e != "" {
			out[e] = struct{}{}
		}
	}
	return out
}

func allowed(path string, exts map[string]struct{}) bool {
	_, ok := exts[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

func hashFile(path string) (string, error) {
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
