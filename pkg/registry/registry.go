package registry

import (
	"sort"
	"strings"
	"sync"
)

// Semantic type names declared by the component library.
const (
	TypeText     = "TextField"
	TypeRichText = "RichTextField"
	TypeImage    = "ImageField"
	TypeLink     = "LinkField"

	// TypeAny is the pass-through declaration used for unrecognized tokens.
	TypeAny = "any"
	// TypeItems is the declaration used for item arrays without a structure.
	TypeItems = "any[]"
)

// Render primitives exported by the component library.
const (
	PrimitiveText     = "Text"
	PrimitiveRichText = "RichText"
	PrimitiveImage    = "Image"
	PrimitiveLink     = "Link"
)

// Kind is the fixed vocabulary produced by structural inference.
type Kind string

const (
	KindText     Kind = "Text"
	KindRichText Kind = "RichText"
	KindImage    Kind = "Image"
	KindLink     Kind = "Link"
	KindItems    Kind = "Items"
)

// Resolution pairs a declaration type with the primitive that renders it. An
// empty RenderPrimitive means the field is emitted as a placeholder.
type Resolution struct {
	SemanticType    string
	RenderPrimitive string
}

// Renderable reports whether the resolution carries a render primitive.
func (r Resolution) Renderable() bool {
	return r.RenderPrimitive != ""
}

// Entry maps a keyword onto a resolution.
type Entry struct {
	Keyword    string
	Resolution Resolution
}

// Registry is an immutable keyword table. Build one with New or use the shared
// Default table; the zero value resolves everything to the fallback.
type Registry struct {
	entries map[string]Resolution
}

// New builds a registry from the supplied entries. Keywords are normalised the
// same way lookups are; later duplicates win.
func New(entries ...Entry) *Registry {
	table := make(map[string]Resolution, len(entries))
	for _, entry := range entries {
		key := normalize(entry.Keyword)
		if key == "" {
			continue
		}
		table[key] = entry.Resolution
	}
	return &Registry{entries: table}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in table shared by every generation request.
func Default() *Registry {
	defaultOnce.Do(func() {
		text := Resolution{SemanticType: TypeText, RenderPrimitive: PrimitiveText}
		richText := Resolution{SemanticType: TypeRichText, RenderPrimitive: PrimitiveRichText}
		image := Resolution{SemanticType: TypeImage, RenderPrimitive: PrimitiveImage}
		link := Resolution{SemanticType: TypeLink, RenderPrimitive: PrimitiveLink}

		defaultRegistry = New(
			Entry{Keyword: "text", Resolution: text},
			Entry{Keyword: "textfield", Resolution: text},
			Entry{Keyword: "richtext", Resolution: richText},
			Entry{Keyword: "richtextfield", Resolution: richText},
			Entry{Keyword: "image", Resolution: image},
			Entry{Keyword: "imagefield", Resolution: image},
			Entry{Keyword: "link", Resolution: link},
			Entry{Keyword: "linkfield", Resolution: link},
			Entry{Keyword: "items", Resolution: Resolution{SemanticType: TypeItems}},
			Entry{Keyword: "hashtag", Resolution: text},
			Entry{Keyword: "description", Resolution: text},
		)
	})
	return defaultRegistry
}

// Lookup returns the resolution registered for token, if any. Matching ignores
// case and all whitespace.
func (r *Registry) Lookup(token string) (Resolution, bool) {
	if r == nil || len(r.entries) == 0 {
		return Resolution{}, false
	}
	res, ok := r.entries[normalize(token)]
	return res, ok
}

// Resolve returns the resolution for token, falling back to the pass-through
// type with no render primitive when the token is unknown.
func (r *Registry) Resolve(token string) Resolution {
	if res, ok := r.Lookup(token); ok {
		return res
	}
	return Resolution{SemanticType: TypeAny}
}

// Kind resolves a structurally inferred kind. Items always map to the bare
// array declaration; the emitter substitutes the nested item type when a
// structure is known.
func (r *Registry) Kind(kind Kind) Resolution {
	if kind == KindItems {
		return Resolution{SemanticType: TypeItems}
	}
	return r.Resolve(string(kind))
}

// Keywords lists the registered keywords in sorted order.
func (r *Registry) Keywords() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.entries))
	for keyword := range r.entries {
		out = append(out, keyword)
	}
	sort.Strings(out)
	return out
}

func normalize(token string) string {
	return strings.ToLower(strings.Join(strings.Fields(token), ""))
}
