package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-jssgen/pkg/emitter"
	"github.com/goliatone/go-jssgen/pkg/registry"
)

// FallbackPropsType is used for the wrapper when the parent's field-set
// interface cannot be found.
const FallbackPropsType = "ComponentProps"

type usage struct {
	name    string
	pattern *regexp.Regexp
}

// usages is checked in order: primitives, field types, then the datasource
// decorator. Missing names are appended to the library import in this order.
var usages = []usage{
	primitiveUsage(registry.PrimitiveText),
	primitiveUsage(registry.PrimitiveRichText),
	primitiveUsage(registry.PrimitiveImage),
	primitiveUsage(registry.PrimitiveLink),
	typeUsage(registry.TypeText),
	typeUsage(registry.TypeRichText),
	typeUsage(registry.TypeImage),
	typeUsage(registry.TypeLink),
	{name: emitter.DatasourceCheck, pattern: regexp.MustCompile(`\b` + emitter.DatasourceCheck + `\(`)},
}

func primitiveUsage(name string) usage {
	return usage{name: name, pattern: regexp.MustCompile(`<` + name + `[\s/>]`)}
}

func typeUsage(name string) usage {
	return usage{name: name, pattern: regexp.MustCompile(`\b` + name + `\b`)}
}

// Option customises Apply.
type Option func(*config)

type config struct {
	library string
}

// WithLibrary sets the import path of the combined component library import.
func WithLibrary(path string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			cfg.library = trimmed
		}
	}
}

// Result reports the patched source and which edits ran.
type Result struct {
	Source string
	// AddedImports lists names merged into the library import.
	AddedImports []string
	// VariantImported is set when the variant import was inserted.
	VariantImported bool
	// WrapperInserted is set when the wrapper and its export were inserted.
	WrapperInserted bool
}

// Changed reports whether any edit was applied.
func (r Result) Changed() bool {
	return len(r.AddedImports) > 0 || r.VariantImported || r.WrapperInserted
}

// Apply threads variant into the parent module source:
//
//  1. primitives and field types used in the body but missing from the
//     library import are merged into it;
//  2. the variant module import is inserted after the last import statement;
//  3. a wrapper function and its datasource-checked export are inserted before
//     the default export.
//
// Each step is skipped when the model lacks what it needs. Apply is not
// idempotent; applying it twice duplicates the import and the wrapper.
func Apply(source, variant string, options ...Option) Result {
	cfg := config{library: emitter.DefaultLibrary}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	m := Scan(source, cfg.library)
	result := Result{}

	result.AddedImports = mergeLibraryImport(m)

	if last, ok := m.LastImport(); ok {
		m.InsertAfter(last.End, variantImport(variant))
		result.VariantImported = true
	}

	if m.DefaultExport >= 0 {
		m.InsertBefore(m.DefaultExport, wrapper(m, variant)...)
		result.WrapperInserted = true
	}

	result.Source = m.String()
	return result
}

// Patch is Apply without the report.
func Patch(source, variant string, options ...Option) string {
	return Apply(source, variant, options...).Source
}

func mergeLibraryImport(m *Module) []string {
	if m.Library < 0 {
		return nil
	}
	existing := make(map[string]struct{}, len(m.Imports[m.Library].Names))
	for _, name := range m.Imports[m.Library].Names {
		existing[importedName(name)] = struct{}{}
	}

	body := m.Body()
	var missing []string
	for _, name := range detectUsed(body) {
		if _, ok := existing[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	names := append(append([]string(nil), m.Imports[m.Library].Names...), missing...)
	m.ReplaceImport(m.Library, names)
	return missing
}

func detectUsed(body string) []string {
	var used []string
	for _, u := range usages {
		if u.pattern.MatchString(body) {
			used = append(used, u.name)
		}
	}
	return used
}

// importedName returns the exported name an import specifier refers to, so
// "Text as JssText" and "type TextField" yield "Text" and "TextField". The
// merge checks exported names, not local aliases.
func importedName(spec string) string {
	spec = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(spec), "type "))
	if idx := strings.Index(spec, " as "); idx >= 0 {
		return strings.TrimSpace(spec[:idx])
	}
	return spec
}

func variantImport(variant string) string {
	return fmt.Sprintf("import { %s } from './%s';", emitter.VariantFunctionName(variant), variant)
}

func wrapper(m *Module, variant string) []string {
	props := FallbackPropsType
	if base := strings.TrimSuffix(m.FieldsType, "Fields"); base != "" {
		props = base + "Props"
	}
	fn := m.Component + variant

	return []string{
		fmt.Sprintf("function %s(props: %s) {", fn, props),
		fmt.Sprintf("  return <%s {...props} />;", emitter.VariantFunctionName(variant)),
		"}",
		"",
		fmt.Sprintf("export const %s = %s()<%s>(%s);", variant, emitter.DatasourceCheck, props, fn),
		"",
	}
}
