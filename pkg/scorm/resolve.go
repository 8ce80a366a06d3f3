package scorm

import (
	"github.com/mrhapile/scorm-extractor/pkg/manifest"
	"github.com/mrhapile/scorm-extractor/pkg/types"
)

// ClassifyResources returns a ResourceInfo for every resource that declares both
// an identifier and an href, in manifest order.
func ClassifyResources(doc *manifest.Document) []types.ResourceInfo {
	var out []types.ResourceInfo
	for _, r := range doc.Resources {
		if r.Identifier == "" || r.Href == "" {
			continue
		}
		out = append(out, types.ResourceInfo{
			Identifier: r.Identifier,
			Href:       r.Href,
			IsSCO:      isSCO(r.ScormType, r.Href),
			ScormType:  r.ScormType,
			Files:      r.Files,
		})
	}
	return out
}

// isSCO applies the scormtype label. Unlabeled resources that can be launched
// count as SCOs so packages omitting adlcp:scormtype still import.
func isSCO(label, href string) bool {
	switch label {
	case "sco":
		return true
	case "asset":
		return false
	default:
		return href != ""
	}
}

// ResolveSCOs walks the selected organization in document pre-order and returns
// every item whose identifierref names a SCO resource. Children are visited
// whether or not their parent matched.
func ResolveSCOs(doc *manifest.Document) []types.SCOInfo {
	scoResources := make(map[string]types.ResourceInfo)
	for _, r := range ClassifyResources(doc) {
		if r.IsSCO {
			scoResources[r.Identifier] = r
		}
	}
	if len(scoResources) == 0 {
		return nil
	}

	org, ok := doc.Organization(doc.DefaultOrganization)
	if !ok || len(org.Items) == 0 {
		return nil
	}

	var scos []types.SCOInfo
	stack := pushReversed(nil, org.Items)
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if res, ok := scoResources[item.IdentifierRef]; ok {
			id := item.Identifier
			if id == "" {
				id = item.IdentifierRef
			}
			title := item.Title
			if title == "" {
				title = id
			}
			scos = append(scos, types.SCOInfo{
				Identifier: id,
				Title:      title,
				LaunchURL:  res.Href,
			})
		}

		stack = pushReversed(stack, item.Children)
	}
	return scos
}

func pushReversed(stack []*manifest.Item, items []manifest.Item) []*manifest.Item {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, &items[i])
	}
	return stack
}
