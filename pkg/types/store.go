package types

import "time"

// StoredPackage represents the output of a successful store operation.
type StoredPackage struct {
	ID         string           // Identifier of the stored package directory
	Dir        string           // Absolute path to the package directory
	ContentDir string           // Absolute path to the extracted content files
	Info       ScormPackageInfo // Package description written to package.json
	Manifest   ContentManifest  // Checksum listing written to manifest.json
	SizeBytes  int64            // Total size of the content files in bytes
	StoredAt   time.Time
}
