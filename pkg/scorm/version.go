package scorm

import (
	"strings"

	"github.com/mrhapile/scorm-extractor/pkg/manifest"
	"github.com/mrhapile/scorm-extractor/pkg/types"
)

var (
	scorm2004Markers = []string{"adlcp_v1p3", "adlseq_v1p3", "adlnav_v1p3", "imsss"}
	scorm12Marker    = "adlcp_rootv1p2"
)

// DetectVersion classifies a manifest root as SCORM 1.2 or 2004.
// Namespace declarations outrank schema location, which outranks
// metadata/schemaversion. Anything inconclusive is 1.2.
func DetectVersion(root *manifest.Map) types.Version {
	var namespaces strings.Builder
	for _, key := range root.Attrs() {
		if strings.HasPrefix(key, "xmlns") || strings.Contains(key, ":") {
			namespaces.WriteString(root.Text(key))
			namespaces.WriteByte(' ')
		}
	}
	ns := namespaces.String()

	if containsAny(ns, scorm2004Markers) {
		return types.Version2004
	}
	if strings.Contains(ns, scorm12Marker) {
		return types.Version12
	}

	if strings.Contains(schemaLocation(root), "adlcp_v1p3") {
		return types.Version2004
	}

	schemaVersion := root.Map("metadata").FirstText("schemaversion", "schemaVersion")
	if strings.Contains(schemaVersion, "2004") {
		return types.Version2004
	}
	if schemaVersion == "1.2" {
		return types.Version12
	}

	return types.Version12
}

func schemaLocation(root *manifest.Map) string {
	for _, key := range root.Attrs() {
		if key == "schemaLocation" || strings.HasSuffix(key, ":schemaLocation") {
			return root.Text(key)
		}
	}
	return ""
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
