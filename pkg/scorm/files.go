package scorm

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrUnsafePath is returned for entry names that would escape the package root.
	ErrUnsafePath = errors.New("unsafe path in archive")

	// ErrDuplicatePath is returned when two entry names clean to the same path.
	ErrDuplicatePath = errors.New("duplicate path in archive")
)

// ExtractFiles materializes every non-directory entry of buf, keyed by the
// cleaned entry name. It performs no manifest checks.
func ExtractFiles(buf []byte) (map[string][]byte, error) {
	archive, err := OpenArchive(buf)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte)
	for _, e := range archive.Entries() {
		if e.IsDir {
			continue
		}
		if !IsSafePath(e.Name) {
			return nil, fmt.Errorf("%w: %s", ErrUnsafePath, e.Name)
		}
		name := path.Clean(e.Name)
		if _, exists := files[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, e.Name)
		}
		data, err := e.Data()
		if err != nil {
			return nil, err
		}
		files[name] = data
	}
	return files, nil
}

// IsSafePath reports whether an archive entry name stays inside the package root.
func IsSafePath(name string) bool {
	if name == "" || strings.Contains(name, "\\") {
		return false
	}
	if path.IsAbs(name) {
		return false
	}
	cleaned := path.Clean(name)
	return cleaned != ".." && !strings.HasPrefix(cleaned, "../")
}
