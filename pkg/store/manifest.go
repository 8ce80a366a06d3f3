package store

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/mrhapile/scorm-extractor/pkg/types"
)

type ManifestBuilder struct {
	manifest types.ContentManifest
}

func NewManifestBuilder(version, packageID string, ts time.Time) *ManifestBuilder {
	return &ManifestBuilder{
		manifest: types.ContentManifest{
			Version:     version,
			PackageID:   packageID,
			GeneratedAt: ts,
			Files:       []types.FileEntry{},
		},
	}
}

// AddFile records a content file. Files must be added in path order for a stable ContentHash.
func (mb *ManifestBuilder) AddFile(path string, data []byte) {
	hash := sha256.Sum256(data)
	mb.manifest.Files = append(mb.manifest.Files, types.FileEntry{
		Path:   path,
		Size:   int64(len(data)),
		SHA256: hex.EncodeToString(hash[:]),
	})
	mb.manifest.TotalFiles++
}

func (mb *ManifestBuilder) Build() types.ContentManifest {
	hasher := sha256.New()
	for _, f := range mb.manifest.Files {
		hasher.Write([]byte(f.SHA256))
	}
	mb.manifest.ContentHash = hex.EncodeToString(hasher.Sum(nil))
	return mb.manifest
}
