package types

// Version is the SCORM specification edition a package targets.
type Version string

const (
	Version12   Version = "1.2"
	Version2004 Version = "2004"
)

// ResourceInfo describes one <resource> element that declares an href.
type ResourceInfo struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Href       string `json:"href" yaml:"href"`
	IsSCO      bool   `json:"isSco" yaml:"isSco"`

	// ScormType is the lower-cased adlcp:scormtype label, empty when the resource is unlabeled.
	ScormType string `json:"scormType,omitempty" yaml:"scormType,omitempty"`

	// Files lists the <file href> children of the resource.
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// SCOInfo is a launchable learning object reached from an organization item.
type SCOInfo struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Title      string `json:"title" yaml:"title"`
	LaunchURL  string `json:"launchUrl" yaml:"launchUrl"`
}

// ScormPackageInfo is the structured description of a validated package.
// EntryPoint is always SCOs[0].LaunchURL and matches one of Files case-insensitively.
type ScormPackageInfo struct {
	Version    Version   `json:"version" yaml:"version"`
	Title      string    `json:"title" yaml:"title"`
	EntryPoint string    `json:"entryPoint" yaml:"entryPoint"`
	SCOs       []SCOInfo `json:"scos" yaml:"scos"`
	Files      []string  `json:"files" yaml:"files"`
}

// ExtractionResult is either a package description or a failure reason, never both.
type ExtractionResult struct {
	Success     bool              `json:"success" yaml:"success"`
	PackageInfo *ScormPackageInfo `json:"packageInfo,omitempty" yaml:"packageInfo,omitempty"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded wraps info in a successful result.
func Succeeded(info *ScormPackageInfo) ExtractionResult {
	return ExtractionResult{Success: true, PackageInfo: info}
}

// Failed wraps a failure reason in a result.
func Failed(reason string) ExtractionResult {
	return ExtractionResult{Success: false, Error: reason}
}
