package fields

import "github.com/goliatone/go-jssgen/pkg/registry"

// Classify infers the kind of a sample value. Precedence is fixed:
//
//	array                                  -> Items
//	{"value": "..."}                       -> Text
//	{"value": {"href"|"text": ...}}        -> Link
//	{"value": {"src"|"alt": ...}}          -> Image
//	{"value": <any other object or array>} -> RichText
//	anything else                          -> Text
func Classify(v Value) registry.Kind {
	switch v.Kind {
	case ValueArray:
		return registry.KindItems
	case ValueObject:
		inner, ok := v.Get("value")
		if !ok {
			return registry.KindText
		}
		return classifyWrapped(inner)
	default:
		return registry.KindText
	}
}

func classifyWrapped(inner Value) registry.Kind {
	switch inner.Kind {
	case ValueString:
		return registry.KindText
	case ValueObject, ValueArray:
		switch {
		case inner.Has("href") || inner.Has("text"):
			return registry.KindLink
		case inner.Has("src") || inner.Has("alt"):
			return registry.KindImage
		default:
			return registry.KindRichText
		}
	default:
		return registry.KindText
	}
}
