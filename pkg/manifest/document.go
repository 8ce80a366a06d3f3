package manifest

import (
	"errors"
	"strings"
)

// RootElement is the document element of an IMS manifest.
const RootElement = "manifest"

// ErrNotManifest is returned when the document element is not <manifest>.
var ErrNotManifest = errors.New("document root is not a <manifest> element")

// scormTypeKeys are tried in order when reading a resource's SCORM type label.
var scormTypeKeys = []string{"adlcp:scormtype", "adlcp:scormType", "scormtype", "scormType"}

// Document is the typed view of a manifest, produced once after parsing.
type Document struct {
	// Root is the raw <manifest> mapping, kept for version detection.
	Root *Map

	// DefaultOrganization is the organizations@default attribute.
	DefaultOrganization string

	Organizations []Organization
	Resources     []Resource
}

// Organization is one <organization> element.
type Organization struct {
	Identifier string
	Title      string
	Items      []Item
}

// Item is one <item> of an organization tree.
type Item struct {
	Identifier    string
	IdentifierRef string
	Title         string
	Children      []Item
}

// Resource is one <resource> element.
type Resource struct {
	Identifier string
	Href       string
	// ScormType is the lower-cased SCORM type label, "" when absent.
	ScormType string
	Files     []string
}

// Normalize builds the typed Document from a parsed tree.
func Normalize(tree *Map) (*Document, error) {
	root := tree.Map(RootElement)
	if root == nil {
		if tree.Get(RootElement) == nil {
			return nil, ErrNotManifest
		}
		// <manifest/> with no attributes or children.
		root = NewMap()
	}

	doc := &Document{Root: root}

	orgs := root.Map("organizations")
	doc.DefaultOrganization = orgs.Text("default")
	for _, o := range Maps(orgs.Get("organization")) {
		doc.Organizations = append(doc.Organizations, Organization{
			Identifier: o.Text("identifier"),
			Title:      o.Text("title"),
			Items:      normalizeItems(o.Get("item")),
		})
	}

	for _, r := range Maps(root.Map("resources").Get("resource")) {
		res := Resource{
			Identifier: r.Text("identifier"),
			Href:       r.Text("href"),
			ScormType:  strings.ToLower(r.FirstText(scormTypeKeys...)),
		}
		for _, f := range Maps(r.Get("file")) {
			if href := f.Text("href"); href != "" {
				res.Files = append(res.Files, href)
			}
		}
		doc.Resources = append(doc.Resources, res)
	}

	return doc, nil
}

func normalizeItems(v Value) []Item {
	var items []Item
	for _, m := range Maps(v) {
		items = append(items, Item{
			Identifier:    m.Text("identifier"),
			IdentifierRef: m.Text("identifierref"),
			Title:         m.Text("title"),
			Children:      normalizeItems(m.Get("item")),
		})
	}
	return items
}

// Organization returns the organization named by id, or the first one when id
// is empty or unknown. ok is false when there are no organizations.
func (d *Document) Organization(id string) (Organization, bool) {
	if len(d.Organizations) == 0 {
		return Organization{}, false
	}
	if id != "" {
		for _, o := range d.Organizations {
			if o.Identifier == id {
				return o, true
			}
		}
	}
	return d.Organizations[0], true
}
