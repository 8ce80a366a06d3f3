package types

import "time"

// ContentManifest describes the content files of a stored package.
type ContentManifest struct {
	// Version is the schema version of the stored package layout.
	Version string `json:"version"`

	// PackageID is the identifier of the stored package.
	PackageID string `json:"packageId"`

	// GeneratedAt is the timestamp when the package was stored.
	GeneratedAt time.Time `json:"generatedAt"`

	// TotalFiles is the count of content files.
	TotalFiles int `json:"totalFiles"`

	// Files lists all content files with their metadata, sorted by path.
	Files []FileEntry `json:"files"`

	// ContentHash is the SHA256 over the concatenated per-file hashes in path order.
	ContentHash string `json:"contentHash"`
}

// FileEntry represents a single content file of a stored package.
type FileEntry struct {
	// Path is the archive-relative path of the file.
	Path string `json:"path"`

	// Size is the size of the file in bytes.
	Size int64 `json:"size"`

	// SHA256 is the checksum of the file content.
	SHA256 string `json:"sha256"`
}
