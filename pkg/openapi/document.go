package openapi

import (
	"errors"
	"sort"
)

// Source identifies where an OpenAPI document originated so loaders can read
// files, fs.FS entries or URLs without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document wraps the raw OpenAPI payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the OpenAPI payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Schema is the subset of an OpenAPI schema the field mapping needs.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Description string
	Properties  map[string]Schema
	Items       *Schema
	// FieldType is the x-jss-type extension, naming a registry type that
	// overrides inference for the property.
	FieldType string
}

// PropertyNames returns the property names in lexical order. OpenAPI maps
// carry no order, so sorting keeps generated modules stable.
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasProperty reports whether any of names is a property of s.
func (s Schema) HasProperty(names ...string) bool {
	for _, name := range names {
		if _, ok := s.Properties[name]; ok {
			return true
		}
	}
	return false
}
