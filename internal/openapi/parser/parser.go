package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-jssgen/pkg/openapi"
)

const fieldTypeExtensionKey = "x-jss-type"

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Components converts the component schemas of a Document into wrappers keyed
// by schema name.
func (p *Parser) Components(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document does not define component schemas")
	}

	out := make(map[string]pkgopenapi.Schema, len(spec.Components.Schemas))
	for name, ref := range spec.Components.Schemas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[name] = convertSchema(ref, make(map[*openapi3.Schema]struct{}))
	}
	return out, nil
}

// convertSchema copies the parts of a schema the field mapping reads. A schema
// already on the conversion path is returned as a bare reference so cyclic
// documents terminate.
func convertSchema(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]struct{}) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	if _, seen := visiting[src]; seen {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	visiting[src] = struct{}{}
	defer delete(visiting, src)

	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
		FieldType:   fieldTypeExtension(src.Extensions),
	}

	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property, visiting)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items, visiting)
		schema.Items = &items
	}
	mergeAllOf(&schema, src.AllOf, visiting)
	return schema
}

// mergeAllOf folds allOf members into target. Properties already present on
// target win.
func mergeAllOf(target *pkgopenapi.Schema, refs openapi3.SchemaRefs, visiting map[*openapi3.Schema]struct{}) {
	for _, ref := range refs {
		member := convertSchema(ref, visiting)
		if target.Type == "" {
			target.Type = member.Type
		}
		if target.FieldType == "" {
			target.FieldType = member.FieldType
		}
		if target.Items == nil && member.Items != nil {
			target.Items = member.Items
		}
		for name, property := range member.Properties {
			if target.Properties == nil {
				target.Properties = make(map[string]pkgopenapi.Schema, len(member.Properties))
			}
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = property
			}
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func fieldTypeExtension(extensions map[string]any) string {
	value, ok := extensions[fieldTypeExtensionKey].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
