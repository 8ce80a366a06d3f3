package manifest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoRoot is returned for documents without a root element.
var ErrNoRoot = errors.New("manifest has no root element")

// frame is an element being built while its end tag is pending.
type frame struct {
	name string
	node *Map
	text strings.Builder
}

func (f *frame) value() Value {
	text := strings.TrimSpace(f.text.String())
	if f.node.Len() == 0 {
		return Text(text)
	}
	if text != "" {
		f.node.add(TextKey, Text(text), false)
	}
	return f.node
}

// Parse decodes manifest XML into a tree. The returned mapping holds a single key,
// the qualified name of the root element.
//
// Names keep their namespace prefixes as written ("adlcp:scormtype",
// "xmlns:imsss"); prefixes are not resolved to namespace URIs.
func Parse(data []byte) (*Map, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.CharsetReader = charset.NewReaderLabel

	doc := NewMap()
	var stack []*frame
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing manifest XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && doc.Len() > 0 {
				return nil, fmt.Errorf("error parsing manifest XML: unexpected second root element <%s>", qualifiedName(t.Name))
			}
			f := &frame{name: qualifiedName(t.Name), node: NewMap()}
			for _, a := range t.Attr {
				f.node.add(qualifiedName(a.Name), Text(a.Value), true)
			}
			stack = append(stack, f)

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 {
				return nil, fmt.Errorf("error parsing manifest XML: unexpected end element </%s>", name)
			}
			f := stack[len(stack)-1]
			if f.name != name {
				return nil, fmt.Errorf("error parsing manifest XML: element <%s> closed by </%s>", f.name, name)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				doc.add(f.name, f.value(), false)
			} else {
				stack[len(stack)-1].node.add(f.name, f.value(), false)
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("error parsing manifest XML: unexpected EOF, element <%s> not closed", stack[len(stack)-1].name)
	}
	if doc.Len() == 0 {
		return nil, ErrNoRoot
	}
	return doc, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
