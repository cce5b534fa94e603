package fields

import "github.com/goliatone/go-jssgen/pkg/registry"

// Descriptor is the normalised description of one data field.
type Descriptor struct {
	Key             string      `json:"key"`
	RawType         string      `json:"rawType"`
	SemanticType    string      `json:"semanticType"`
	RenderPrimitive string      `json:"renderPrimitive,omitempty"`
	ItemStructure   []ItemField `json:"itemStructure,omitempty"`
	// Description is free text shown as a doc comment on the declaration.
	Description     string      `json:"description,omitempty"`
}

// ItemField describes one field of the records held by an item array.
type ItemField struct {
	Key             string `json:"key"`
	RawType         string `json:"rawType"`
	SemanticType    string `json:"semanticType"`
	RenderPrimitive string `json:"renderPrimitive,omitempty"`
}

// HasItems reports whether the descriptor is an item array with a known
// record structure.
func (d Descriptor) HasItems() bool {
	return d.RawType == string(registry.KindItems) && len(d.ItemStructure) > 0
}

// Renderable reports whether the field resolves to a render primitive.
func (d Descriptor) Renderable() bool {
	return d.RenderPrimitive != ""
}

// Renderable reports whether the item field resolves to a render primitive.
func (f ItemField) Renderable() bool {
	return f.RenderPrimitive != ""
}

// NewDescriptor builds a descriptor from a resolved raw type.
func NewDescriptor(key, rawType string, res registry.Resolution) Descriptor {
	return Descriptor{
		Key:             key,
		RawType:         rawType,
		SemanticType:    res.SemanticType,
		RenderPrimitive: res.RenderPrimitive,
	}
}

// NewItemField builds an item field from a resolved raw type.
func NewItemField(key, rawType string, res registry.Resolution) ItemField {
	return ItemField{
		Key:             key,
		RawType:         rawType,
		SemanticType:    res.SemanticType,
		RenderPrimitive: res.RenderPrimitive,
	}
}
