package store

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mrhapile/scorm-extractor/pkg/scorm"
)

const (
	LayoutVersion   = "v1"
	PackageInfoFile = "package.json"
	ManifestFile    = "manifest.json"
	ContentDir      = "content"
)

// contentPath maps an archive entry name to its location under the content directory.
func contentPath(contentDir, name string) (string, error) {
	if !scorm.IsSafePath(name) {
		return "", fmt.Errorf("%w: %s", scorm.ErrUnsafePath, name)
	}
	return filepath.Join(contentDir, filepath.FromSlash(name)), nil
}

func sortedPaths(files map[string][]byte) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
