// Package testutil builds SCORM package fixtures for tests.
package testutil

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// File is one archive member. Names ending in "/" are written as directories.
type File struct {
	Name string
	Body string
}

// Zip builds an in-memory zip archive containing files in order.
func Zip(t testing.TB, files ...File) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			t.Fatalf("create %s: %v", f.Name, err)
		}
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if _, err := w.Write([]byte(f.Body)); err != nil {
			t.Fatalf("write %s: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// Namespace attribute sets for manifest roots.
const (
	Scorm12Namespaces = `xmlns="http://www.imsproject.org/xsd/imscp_rootv1p1p2" ` +
		`xmlns:adlcp="http://www.adlnet.org/xsd/adlcp_rootv1p2"`
	Scorm2004Namespaces = `xmlns="http://www.imsglobal.org/xsd/imscp_v1p1" ` +
		`xmlns:adlcp="http://www.adlnet.org/xsd/adlcp_v1p3" ` +
		`xmlns:imsss="http://www.imsglobal.org/xsd/imsss"`
)

// Manifest wraps organizations and resources markup in a <manifest> root carrying namespaces.
func Manifest(namespaces, organizations, resources string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<manifest identifier="com.example.course" version="1.0" %s>
  %s
  %s
</manifest>`, namespaces, organizations, resources)
}

// SingleSCO returns a manifest with organization "org1" titled title and one
// item "item1" ("Lesson 1") launching href.
func SingleSCO(namespaces, title, href string) string {
	return Manifest(namespaces, fmt.Sprintf(`
  <organizations default="org1">
    <organization identifier="org1">
      <title>%s</title>
      <item identifier="item1" identifierref="res1">
        <title>Lesson 1</title>
      </item>
    </organization>
  </organizations>`, title), fmt.Sprintf(`
  <resources>
    <resource identifier="res1" type="webcontent" adlcp:scormtype="sco" href="%s">
      <file href="%s"/>
    </resource>
  </resources>`, href, href))
}
