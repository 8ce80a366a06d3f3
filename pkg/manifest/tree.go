// Package manifest parses IMS content packaging manifests (imsmanifest.xml) into a
// generic attribute tree and normalizes that tree into typed organizations, items
// and resources.
//
// The tree follows the usual XML-to-object mapping: attributes and child elements
// share one keyspace per element, repeated siblings become a List, a single
// occurrence stays bare, and leaf elements without attributes collapse to Text.
package manifest

// TextKey holds the text content of an element that also carries attributes or children.
// '#' cannot start an XML name, so the key never collides with an attribute or a tag.
const TextKey = "#text"

// Value is a node of the manifest tree: Text, *Map or List.
type Value interface {
	isValue()
}

// Text is a scalar: an attribute value or the content of a leaf element.
type Text string

// List holds repeated sibling elements in document order.
type List []Value

// Map is an element with attributes and/or children, keyed by qualified name.
// Keys keep their first-seen order.
type Map struct {
	keys  []string
	vals  map[string]Value
	attrs map[string]bool
}

func (Text) isValue() {}
func (List) isValue() {}
func (*Map) isValue() {}

// NewMap returns an empty element mapping.
func NewMap() *Map {
	return &Map{
		vals:  make(map[string]Value),
		attrs: make(map[string]bool),
	}
}

// Len returns the number of distinct keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in first-seen order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key, or nil.
func (m *Map) Get(key string) Value {
	if m == nil {
		return nil
	}
	return m.vals[key]
}

// Map returns the value under key when it is a single element mapping.
func (m *Map) Map(key string) *Map {
	v, _ := m.Get(key).(*Map)
	return v
}

// Text returns AsText of the value under key.
func (m *Map) Text(key string) string {
	return AsText(m.Get(key))
}

// FirstText returns the first non-empty AsText among keys.
func (m *Map) FirstText(keys ...string) string {
	for _, k := range keys {
		if s := m.Text(k); s != "" {
			return s
		}
	}
	return ""
}

// IsAttr reports whether key was populated from an attribute.
func (m *Map) IsAttr(key string) bool {
	if m == nil {
		return false
	}
	return m.attrs[key]
}

// Attrs returns the attribute keys in document order.
func (m *Map) Attrs() []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, k := range m.keys {
		if m.attrs[k] {
			out = append(out, k)
		}
	}
	return out
}

// add stores v under key. A second value under the same key turns the entry into a List.
func (m *Map) add(key string, v Value, attr bool) {
	existing, ok := m.vals[key]
	if !ok {
		m.keys = append(m.keys, key)
		m.vals[key] = v
		if attr {
			m.attrs[key] = true
		}
		return
	}
	if list, isList := existing.(List); isList {
		m.vals[key] = append(list, v)
		return
	}
	m.vals[key] = List{existing, v}
}

// AsSequence normalizes a possibly-repeated field: a List is returned as-is,
// nil yields an empty List, anything else is wrapped in a single-element List.
func AsSequence(v Value) List {
	switch val := v.(type) {
	case nil:
		return nil
	case List:
		return val
	default:
		return List{val}
	}
}

// AsText extracts the text of a value: Text as-is, a Map's TextKey entry,
// and "" for lists and missing values.
func AsText(v Value) string {
	switch val := v.(type) {
	case Text:
		return string(val)
	case *Map:
		if t, ok := val.Get(TextKey).(Text); ok {
			return string(t)
		}
	}
	return ""
}

// Maps returns the element mappings of AsSequence(v), skipping scalars.
func Maps(v Value) []*Map {
	var out []*Map
	for _, item := range AsSequence(v) {
		if m, ok := item.(*Map); ok {
			out = append(out, m)
		}
	}
	return out
}
