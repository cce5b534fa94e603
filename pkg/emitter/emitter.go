// Package emitter renders Sitecore JSS component modules from field
// descriptors.
//
// Component emits the full module: the combined library import, the
// ComponentProps import, exported item record interfaces, the field-set
// interface, the props type, the render function and the datasource-checked
// default export. Variant emits the companion module that renders the parent's
// schema with an alternate layout. Both are pure: identical input always
// produces identical text and neither ever fails.
package emitter

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/naming"
	"github.com/goliatone/go-jssgen/pkg/registry"
	"github.com/goliatone/go-jssgen/pkg/sanitize"
)

const (
	// DefaultLibrary is the module every render primitive and field type is
	// imported from.
	DefaultLibrary = "@sitecore-jss/sitecore-jss-nextjs"
	// DefaultComponentPropsImportPath locates the ComponentProps type when the
	// caller does not configure one.
	DefaultComponentPropsImportPath = "lib/component-props"

	// DatasourceCheck is the decorator wrapping exported components.
	DatasourceCheck = "withDatasourceCheck"
)

// Option customises an Emitter.
type Option func(*config)

type config struct {
	library string
}

// WithLibrary overrides the component library import path.
func WithLibrary(path string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			cfg.library = trimmed
		}
	}
}

// Emitter renders component and variant modules. It holds no mutable state.
type Emitter struct {
	library string
}

// New constructs an Emitter applying any provided options.
func New(options ...Option) *Emitter {
	cfg := config{library: DefaultLibrary}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Emitter{library: cfg.library}
}

// Library reports the component library import path.
func (e *Emitter) Library() string {
	return e.library
}

// Request is a single generation request. Variant requests ignore Fields and
// ImportPath.
type Request struct {
	ComponentName string
	Fields        []fields.Descriptor
	ImportPath    string
	IsVariant     bool
	ParentName    string
	VariantName   string
}

// Emit dispatches the request to Component or Variant.
func (e *Emitter) Emit(req Request) string {
	if req.IsVariant {
		return e.Variant(req.VariantName, req.ParentName)
	}
	return e.Component(req.ComponentName, req.Fields, req.ImportPath)
}

// Component renders the full module for name.
func (e *Emitter) Component(name string, descriptors []fields.Descriptor, importPath string) string {
	if strings.TrimSpace(importPath) == "" {
		importPath = DefaultComponentPropsImportPath
	}

	var itemInterfaces []string
	fieldLines := make([]string, 0, len(descriptors))
	for _, desc := range descriptors {
		if doc := sanitize.DocText(desc.Description); doc != "" {
			fieldLines = append(fieldLines, fmt.Sprintf("  /** %s */", doc))
		}
		if desc.HasItems() {
			itemType := naming.ItemTypeName(name, desc.Key)
			itemInterfaces = append(itemInterfaces, itemInterface(itemType, desc.ItemStructure))
			fieldLines = append(fieldLines, fmt.Sprintf("  %s: %s[];", desc.Key, itemType))
			continue
		}
		fieldLines = append(fieldLines, fmt.Sprintf("  %s: %s;", desc.Key, desc.SemanticType))
	}

	renderLines := make([]string, 0, len(descriptors))
	for _, desc := range descriptors {
		renderLines = append(renderLines, "      "+renderField(name, desc))
	}

	var b strings.Builder
	b.WriteString(e.libraryImport(descriptors))
	b.WriteString("\n")
	fmt.Fprintf(&b, "import { ComponentProps } from '%s';\n\n", importPath)

	for _, iface := range itemInterfaces {
		b.WriteString(iface)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "export interface %sFields {\n%s\n}\n\n", name, strings.Join(fieldLines, "\n"))
	fmt.Fprintf(&b, "export type %sProps = ComponentProps & {\n  fields: %sFields;\n};\n\n", name, name)
	fmt.Fprintf(&b, "export function %s({ fields }: %sProps) {\n", name, name)
	b.WriteString("  return (\n")
	fmt.Fprintf(&b, "    <div id=\"%s\">\n", strings.ToLower(name))
	b.WriteString(strings.Join(renderLines, "\n"))
	b.WriteString("\n    </div>\n  );\n}\n\n")
	fmt.Fprintf(&b, "export default %s()<%sProps>(%s);\n", DatasourceCheck, name, name)

	return b.String()
}

// libraryImport builds the single combined import from the component library:
// render primitives first, then declaration types, both in first-use order,
// then the datasource decorator. Pass-through and array types are skipped.
// The decorator is always imported since the default export uses it.
func (e *Emitter) libraryImport(descriptors []fields.Descriptor) string {
	var primitives, types orderedSet
	for _, desc := range descriptors {
		primitives.add(desc.RenderPrimitive)
		types.add(desc.SemanticType)
		for _, item := range desc.ItemStructure {
			primitives.add(item.RenderPrimitive)
			types.add(item.SemanticType)
		}
	}

	var names orderedSet
	for _, name := range append(primitives.items, types.items...) {
		if importable(name) {
			names.add(name)
		}
	}
	names.add(DatasourceCheck)

	return fmt.Sprintf("import { %s } from '%s';", strings.Join(names.items, ", "), e.library)
}

func importable(name string) bool {
	return name != "" && name != registry.TypeAny && !strings.Contains(name, "[]")
}

func itemInterface(typeName string, structure []fields.ItemField) string {
	lines := make([]string, 0, len(structure))
	for _, item := range structure {
		lines = append(lines, fmt.Sprintf("    %s: %s;", item.Key, item.SemanticType))
	}
	return fmt.Sprintf("export interface %s {\n  fields: {\n%s\n  };\n  id: string;\n}", typeName, strings.Join(lines, "\n"))
}

type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(value string) {
	if value == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
}
