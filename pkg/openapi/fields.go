package openapi

import (
	"strings"

	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/registry"
)

var richTextFormats = map[string]struct{}{
	"html":      {},
	"richtext":  {},
	"rich-text": {},
}

// Descriptors maps the properties of a component schema onto field
// descriptors in lexical property order, carrying property descriptions
// along. A nil registry uses the default table.
func Descriptors(schema Schema, reg *registry.Registry) []fields.Descriptor {
	if reg == nil {
		reg = registry.Default()
	}

	names := schema.PropertyNames()
	out := make([]fields.Descriptor, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		rawType, res := resolve(prop, reg)
		desc := fields.NewDescriptor(name, rawType, res)
		desc.Description = prop.Description
		if rawType == string(registry.KindItems) {
			desc.ItemStructure = itemStructure(prop, reg)
		}
		out = append(out, desc)
	}
	return out
}

// Classify infers the field kind of a property schema. Arrays are item lists.
// Objects are read the way the layout service shapes fields: a "value"
// wrapper is unwrapped first, then href/text means Link, src/alt means Image
// and any other object is RichText. Strings are Text unless their format
// marks them as HTML.
func Classify(s Schema) registry.Kind {
	switch {
	case s.Type == "array" || s.Items != nil:
		return registry.KindItems
	case s.Type == "object" || len(s.Properties) > 0:
		return classifyObject(s)
	case isRichTextString(s):
		return registry.KindRichText
	default:
		return registry.KindText
	}
}

func classifyObject(s Schema) registry.Kind {
	if value, ok := s.Properties["value"]; ok {
		if value.Type != "object" && len(value.Properties) == 0 {
			if isRichTextString(value) {
				return registry.KindRichText
			}
			return registry.KindText
		}
		s = value
	}
	switch {
	case s.HasProperty("href", "text"):
		return registry.KindLink
	case s.HasProperty("src", "alt"):
		return registry.KindImage
	default:
		return registry.KindRichText
	}
}

func isRichTextString(s Schema) bool {
	if s.Type != "string" {
		return false
	}
	_, ok := richTextFormats[strings.ToLower(strings.TrimSpace(s.Format))]
	return ok
}

// resolve honours the x-jss-type override before falling back to inference.
func resolve(s Schema, reg *registry.Registry) (string, registry.Resolution) {
	if override := strings.TrimSpace(s.FieldType); override != "" {
		return override, reg.Resolve(override)
	}
	kind := Classify(s)
	return string(kind), reg.Kind(kind)
}

// itemStructure reads the record schema of an item array. Records shaped as
// {"fields": {...}} are unwrapped; otherwise the item properties are used
// directly.
func itemStructure(list Schema, reg *registry.Registry) []fields.ItemField {
	if list.Items == nil {
		return nil
	}
	record := *list.Items
	if nested, ok := record.Properties["fields"]; ok && len(nested.Properties) > 0 {
		record = nested
	}

	names := record.PropertyNames()
	if len(names) == 0 {
		return nil
	}
	out := make([]fields.ItemField, 0, len(names))
	for _, name := range names {
		rawType, res := resolve(record.Properties[name], reg)
		out = append(out, fields.NewItemField(name, rawType, res))
	}
	return out
}
