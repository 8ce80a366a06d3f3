// Package scorm validates SCORM content packages and describes their launchable
// learning objects.
package scorm

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/mrhapile/scorm-extractor/pkg/manifest"
	"github.com/mrhapile/scorm-extractor/pkg/types"
)

const (
	// ManifestName is the package manifest, looked up case-insensitively at the archive root.
	ManifestName = "imsmanifest.xml"

	// DefaultSizeLimit applies when no WithSizeLimit option is given.
	DefaultSizeLimit int64 = 300 << 20

	// UntitledCourse is used when the first organization has no title.
	UntitledCourse = "Untitled SCORM Course"
)

// Option configures an extraction.
type Option func(*config)

type config struct {
	sizeLimit int64
	logger    *zap.Logger
}

// WithSizeLimit sets the maximum accepted package size in bytes.
func WithSizeLimit(bytes int64) Option {
	return func(c *config) {
		c.sizeLimit = bytes
	}
}

// WithLogger sets the logger for step tracing. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		sizeLimit: DefaultSizeLimit,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ExtractPackage validates buf as a SCORM package. It never panics or returns an
// error: every failure is reported in the result's Error field.
func ExtractPackage(buf []byte, opts ...Option) types.ExtractionResult {
	info, err := Extract(buf, opts...)
	if err != nil {
		return types.Failed(err.Error())
	}
	return types.Succeeded(info)
}

// Extract validates buf as a SCORM package and describes it. Failures are
// *ExtractError values matching one of the Err* kinds via errors.Is.
func Extract(buf []byte, opts ...Option) (info *types.ScormPackageInfo, err error) {
	cfg := newConfig(opts)
	log := cfg.logger

	defer func() {
		if r := recover(); r != nil {
			info, err = nil, parseFailure(fmt.Errorf("%v", r))
		}
		if err != nil {
			log.Info("SCORM extraction failed", zap.String("reason", err.Error()))
		}
	}()

	// 1. Size gate, before any parsing
	if int64(len(buf)) > cfg.sizeLimit {
		return nil, newError(ErrSizeExceeded, fmt.Sprintf(
			"SCORM package exceeds the maximum size of %sMB", sizeInMB(cfg.sizeLimit)))
	}

	// 2. Open archive; an unreadable buffer lists no entries
	archive, openErr := OpenArchive(buf)
	if openErr != nil {
		log.Debug("Archive could not be opened", zap.Error(openErr))
	}

	// 3. Locate and parse the manifest; it may not decompress past the size limit
	entry, ok := archive.FindFold(ManifestName)
	if !ok {
		return nil, newError(ErrManifestMissing, ManifestName+" not found in package")
	}
	log.Debug("Manifest located", zap.String("entry", entry.Name))

	data, err := entry.DataLimit(cfg.sizeLimit)
	if err != nil {
		return nil, parseFailure(err)
	}
	tree, err := manifest.Parse(data)
	if err != nil {
		return nil, parseFailure(err)
	}
	doc, err := manifest.Normalize(tree)
	if err != nil {
		return nil, parseFailure(err)
	}

	// 4. Classify and resolve
	version := DetectVersion(doc.Root)
	log.Debug("Version detected", zap.String("version", string(version)))

	scos := ResolveSCOs(doc)
	if len(scos) == 0 {
		return nil, newError(ErrNoSCOs, "No SCOs found in manifest")
	}
	log.Debug("SCOs resolved", zap.Int("count", len(scos)))

	// 5. Entry point must be a file in the archive
	entryPoint := scos[0].LaunchURL
	if _, ok := archive.FindFold(entryPoint); !ok {
		return nil, newError(ErrEntryPointMissing,
			fmt.Sprintf("Entry point \"%s\" not found in package", entryPoint))
	}

	return &types.ScormPackageInfo{
		Version:    version,
		Title:      packageTitle(doc),
		EntryPoint: entryPoint,
		SCOs:       scos,
		Files:      archive.Files(),
	}, nil
}

// packageTitle is the first organization's title.
func packageTitle(doc *manifest.Document) string {
	if len(doc.Organizations) > 0 && doc.Organizations[0].Title != "" {
		return doc.Organizations[0].Title
	}
	return UntitledCourse
}

func sizeInMB(n int64) string {
	return humanize.FtoaWithDigits(float64(n)/(1<<20), 2)
}
