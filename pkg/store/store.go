// Package store persists extracted SCORM packages to disk for serving.
//
// A stored package is a directory named by its package ID:
//
//	<output-dir>/<id>/package.json   package description
//	<output-dir>/<id>/manifest.json  per-file size and SHA256
//	<output-dir>/<id>/content/...    archive files
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrhapile/scorm-extractor/pkg/scorm"
	"github.com/mrhapile/scorm-extractor/pkg/types"
)

// ErrChecksumMismatch is returned by Verify when content differs from manifest.json.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Option configures the store process.
type Option func(*config)

type config struct {
	outputDir string
	timestamp time.Time
	packageID string
	progress  func(path string)
	logger    *zap.Logger
}

// WithOutputDir sets the directory under which package directories are created.
func WithOutputDir(path string) Option {
	return func(c *config) {
		c.outputDir = path
	}
}

// WithTimestamp sets a specific timestamp for deterministic output.
// If zero, defaults to time.Now().
func WithTimestamp(t time.Time) Option {
	return func(c *config) {
		c.timestamp = t
	}
}

// WithPackageID sets the package directory name. Defaults to a random UUID.
func WithPackageID(id string) Option {
	return func(c *config) {
		c.packageID = id
	}
}

// WithProgress registers a callback invoked after each content file is written.
func WithProgress(fn func(path string)) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Save writes info and the package files under the output directory.
// A failed Save removes the partially written package directory.
func Save(info *types.ScormPackageInfo, files map[string][]byte, opts ...Option) (pkg *types.StoredPackage, err error) {
	if info == nil {
		return nil, errors.New("package info is required")
	}

	cfg := &config{
		outputDir: ".",
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.timestamp.IsZero() {
		cfg.timestamp = time.Now()
	}
	if cfg.packageID == "" {
		cfg.packageID = uuid.NewString()
	}
	if !validPackageID(cfg.packageID) {
		return nil, fmt.Errorf("invalid package id %q", cfg.packageID)
	}

	dir, err := filepath.Abs(filepath.Join(cfg.outputDir, cfg.packageID))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("package %s already exists in %s", cfg.packageID, cfg.outputDir)
	}
	contentDir := filepath.Join(dir, ContentDir)

	files, err = cleanPaths(files)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(dir); rmErr != nil {
				cfg.logger.Warn("Failed to remove partial package", zap.String("dir", dir), zap.Error(rmErr))
			}
		}
	}()

	manifestBuilder := NewManifestBuilder(LayoutVersion, cfg.packageID, cfg.timestamp)
	contentWriter := NewContentWriter(contentDir, cfg.timestamp)
	for _, p := range sortedPaths(files) {
		manifestBuilder.AddFile(p, files[p])
		contentWriter.AddFile(p, files[p])
	}

	size, err := contentWriter.WriteToDisk(cfg.progress)
	if err != nil {
		return nil, fmt.Errorf("failed to write content: %w", err)
	}

	manifest := manifestBuilder.Build()
	if err := writeJSON(filepath.Join(dir, PackageInfoFile), info); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(dir, ManifestFile), manifest); err != nil {
		return nil, err
	}

	cfg.logger.Info("Package stored",
		zap.String("id", cfg.packageID),
		zap.String("dir", dir),
		zap.Int("files", manifest.TotalFiles),
		zap.Int64("bytes", size))

	return &types.StoredPackage{
		ID:         cfg.packageID,
		Dir:        dir,
		ContentDir: contentDir,
		Info:       *info,
		Manifest:   manifest,
		SizeBytes:  size,
		StoredAt:   cfg.timestamp,
	}, nil
}

// Load reads a stored package directory written by Save.
func Load(dir string) (*types.StoredPackage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	var info types.ScormPackageInfo
	if err := readJSON(filepath.Join(abs, PackageInfoFile), &info); err != nil {
		return nil, err
	}
	var manifest types.ContentManifest
	if err := readJSON(filepath.Join(abs, ManifestFile), &manifest); err != nil {
		return nil, err
	}

	var size int64
	for _, f := range manifest.Files {
		size += f.Size
	}
	return &types.StoredPackage{
		ID:         manifest.PackageID,
		Dir:        abs,
		ContentDir: filepath.Join(abs, ContentDir),
		Info:       info,
		Manifest:   manifest,
		SizeBytes:  size,
		StoredAt:   manifest.GeneratedAt,
	}, nil
}

// Verify re-hashes every content file of a stored package against its manifest.
func Verify(pkg *types.StoredPackage) error {
	for _, f := range pkg.Manifest.Files {
		p, err := contentPath(pkg.ContentDir, f.Path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Path, err)
		}
		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != f.SHA256 {
			return fmt.Errorf("%w: %s", ErrChecksumMismatch, f.Path)
		}
	}
	return nil
}

// cleanPaths keys files by cleaned path, rejecting unsafe names and names
// that alias the same file.
func cleanPaths(files map[string][]byte) (map[string][]byte, error) {
	out := make(map[string][]byte, len(files))
	for _, name := range sortedPaths(files) {
		if !scorm.IsSafePath(name) {
			return nil, fmt.Errorf("%w: %s", scorm.ErrUnsafePath, name)
		}
		cleaned := path.Clean(name)
		if _, exists := out[cleaned]; exists {
			return nil, fmt.Errorf("%w: %s", scorm.ErrDuplicatePath, name)
		}
		out[cleaned] = files[name]
	}
	return out, nil
}

func validPackageID(id string) bool {
	return id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
