package emitter

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/naming"
	"github.com/goliatone/go-jssgen/pkg/registry"
	"github.com/goliatone/go-jssgen/pkg/sanitize"
)

const itemIndent = "          "

// renderField produces the guarded JSX expression for one top-level field.
func renderField(component string, desc fields.Descriptor) string {
	access := "fields." + desc.Key

	if desc.Renderable() {
		return guarded(desc.RenderPrimitive, access, access, headingTag(desc.Key))
	}

	if desc.HasItems() {
		itemType := naming.ItemTypeName(component, desc.Key)
		lines := make([]string, 0, len(desc.ItemStructure))
		for _, item := range desc.ItemStructure {
			lines = append(lines, itemIndent+renderItemField(item))
		}
		return fmt.Sprintf("{%s?.map((item: %s, index: number) => (\n        <div key={item.id || index}>\n%s\n        </div>\n      ))}",
			access, itemType, strings.Join(lines, "\n"))
	}

	return placeholder(desc.Key, desc.RawType)
}

// renderItemField renders a field of an item record. Only "title" keys get a
// heading override inside item lists.
func renderItemField(item fields.ItemField) string {
	if !item.Renderable() {
		return placeholder(item.Key, item.RawType)
	}
	tag := "p"
	if strings.Contains(strings.ToLower(item.Key), "title") {
		tag = "h3"
	}
	guard := "item.fields?." + item.Key
	return guarded(item.RenderPrimitive, guard, "item.fields."+item.Key, tag)
}

// guarded wraps a primitive in its presence check. guard is the optional
// chain root, access the expression passed as the field prop.
func guarded(primitive, guard, access, textTag string) string {
	switch primitive {
	case registry.PrimitiveText:
		return fmt.Sprintf("{%s?.value && <%s field={%s} tag=\"%s\" />}", guard, primitive, access, textTag)
	case registry.PrimitiveImage:
		return fmt.Sprintf("{%s?.value?.src && <%s field={%s} />}", guard, primitive, access)
	case registry.PrimitiveLink:
		return fmt.Sprintf("{%s?.value?.href && <%s field={%s} />}", guard, primitive, access)
	default:
		return fmt.Sprintf("{%s?.value && <%s field={%s} />}", guard, primitive, access)
	}
}

// headingTag picks the Text tag for a top-level key. "title" is checked
// first, so "subtitle" also maps to h1.
func headingTag(key string) string {
	lower := strings.ToLower(key)
	switch {
	case strings.Contains(lower, "title"):
		return "h1"
	case strings.Contains(lower, "subtitle"), strings.Contains(lower, "heading"):
		return "h2"
	default:
		return "p"
	}
}

func placeholder(key, rawType string) string {
	return fmt.Sprintf("{/* TODO: render %s (%s) */}", sanitize.CommentText(key), sanitize.CommentText(rawType))
}
