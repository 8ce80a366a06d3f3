package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ContentWriter writes package content files under a directory in deterministic order.
type ContentWriter struct {
	dir   string
	files map[string][]byte
	ts    time.Time
}

// NewContentWriter creates a new writer instance rooted at dir.
func NewContentWriter(dir string, ts time.Time) *ContentWriter {
	return &ContentWriter{
		dir:   dir,
		files: make(map[string][]byte),
		ts:    ts,
	}
}

// AddFile adds a file to be written.
// path is the archive entry name (e.g. "index.html", "shared/launch.js").
func (w *ContentWriter) AddFile(path string, content []byte) {
	w.files[path] = content
}

// WriteToDisk writes every added file, calling progress after each one when non-nil.
// It returns the total size written.
func (w *ContentWriter) WriteToDisk(progress func(path string)) (int64, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create content directory: %w", err)
	}

	var totalSize int64
	for _, p := range sortedPaths(w.files) {
		dst, err := contentPath(w.dir, p)
		if err != nil {
			return 0, err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return 0, fmt.Errorf("failed to create directory for %s: %w", p, err)
		}

		content := w.files[p]
		if err := os.WriteFile(dst, content, 0644); err != nil {
			return 0, fmt.Errorf("failed to write content for %s: %w", p, err)
		}
		if err := os.Chtimes(dst, w.ts, w.ts); err != nil {
			return 0, fmt.Errorf("failed to set times for %s: %w", p, err)
		}
		totalSize += int64(len(content))

		if progress != nil {
			progress(p)
		}
	}

	return totalSize, nil
}
