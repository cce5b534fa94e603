package jssgen

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-jssgen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-jssgen/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-jssgen/pkg/openapi"
	"github.com/goliatone/go-jssgen/pkg/registry"
)

// NewLoader constructs an OpenAPI loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs an OpenAPI parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// FieldsFromOpenAPI loads src and maps the named component schema onto field
// descriptors.
func FieldsFromOpenAPI(ctx context.Context, loader pkgopenapi.Loader, parser pkgopenapi.Parser, src pkgopenapi.Source, component string) ([]FieldDescriptor, error) {
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("jssgen: load %s: %w", src.Location(), err)
	}
	schemas, err := parser.Components(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("jssgen: parse %s: %w", src.Location(), err)
	}
	schema, ok := schemas[component]
	if !ok {
		return nil, fmt.Errorf("jssgen: component schema %q not found in %s", component, src.Location())
	}
	return pkgopenapi.Descriptors(schema, registry.Default()), nil
}
