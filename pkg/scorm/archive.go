package scorm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Entry is one member of a package archive.
type Entry struct {
	Name  string
	IsDir bool
	file  *zip.File
}

// ErrEntryTooLarge is returned by DataLimit when an entry decompresses past the limit.
var ErrEntryTooLarge = errors.New("archive entry too large")

// Data reads the full content of the entry. Directories have no content.
func (e Entry) Data() ([]byte, error) {
	return e.DataLimit(-1)
}

// DataLimit reads the entry like Data but fails once more than limit bytes
// decompress. A negative limit reads without bound.
func (e Entry) DataLimit(limit int64) ([]byte, error) {
	if e.IsDir || e.file == nil {
		return nil, nil
	}
	rc, err := e.file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in archive: %w", e.Name, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit >= 0 && limit < math.MaxInt64 {
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", e.Name, err)
	}
	if limit >= 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrEntryTooLarge, e.Name, limit)
	}
	return data, nil
}

// Archive is a read-only listing over an in-memory zip buffer.
type Archive struct {
	entries []Entry
}

// OpenArchive lists the entries of buf. A buffer that is not a readable zip
// yields an empty, usable Archive together with the open error.
func OpenArchive(buf []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return &Archive{}, fmt.Errorf("failed to open zip: %w", err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	zr.RegisterDecompressor(zstd.ZipMethodPKWare, zstd.ZipDecompressor())

	a := &Archive{entries: make([]Entry, 0, len(zr.File))}
	for _, f := range zr.File {
		a.entries = append(a.entries, Entry{
			Name:  f.Name,
			IsDir: f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/"),
			file:  f,
		})
	}
	return a, nil
}

// Entries returns every entry in archive order.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// Find looks up an entry by exact name.
func (a *Archive) Find(name string) (Entry, bool) {
	for _, e := range a.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// FindFold looks up a non-directory entry whose name equals name case-insensitively.
func (a *Archive) FindFold(name string) (Entry, bool) {
	for _, e := range a.entries {
		if !e.IsDir && strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Files returns the names of all non-directory entries in archive order.
func (a *Archive) Files() []string {
	files := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		if !e.IsDir {
			files = append(files, e.Name)
		}
	}
	return files
}
