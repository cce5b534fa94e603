package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-jssgen"
	"github.com/goliatone/go-jssgen/pkg/emitter"
	"github.com/goliatone/go-jssgen/pkg/fields"
	pkgopenapi "github.com/goliatone/go-jssgen/pkg/openapi"
)

func newComponentCmd(a *app) *cobra.Command {
	var (
		rawFields string
		spec      string
		schema    string
		validate  bool
	)

	cmd := &cobra.Command{
		Use:   "component <Name>",
		Short: "Generate a component module",
		Long: `Generate <componentDir>/<Name>.tsx and its index.ts barrel.

Fields come from --fields, either a "key:Type" list or a JSON object of
sample values, or from a component schema in an OpenAPI document.`,
		Example: `  jssgen component HeroBanner --fields "title:Text, image:Image, cta:Link"
  jssgen component Promo --fields '{"title":{"value":"Hi"},"cta":{"value":{"href":"/"}}}'
  jssgen component Promo --openapi api/layout.yaml --schema PromoFields`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			var descriptors []fields.Descriptor
			switch {
			case spec != "" && rawFields != "":
				return fmt.Errorf("--fields and --openapi are mutually exclusive")
			case spec != "":
				if schema == "" {
					schema = args[0]
				}
				descriptors, err = a.fieldsFromOpenAPI(ctx, spec, schema, validate)
				if err != nil {
					return err
				}
			default:
				descriptors = fields.Parse(rawFields)
			}

			gen, mem, err := a.newGenerator(cfg)
			if err != nil {
				return err
			}
			result, err := gen.Generate(ctx, emitter.Request{
				ComponentName: args[0],
				Fields:        descriptors,
			})
			if err != nil {
				return err
			}
			if mem != nil {
				return printFiles(cmd.OutOrStdout(), mem)
			}
			return reportResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&rawFields, "fields", "f", "", `Fields as "key:Type, ..." or a JSON object`)
	cmd.Flags().StringVar(&spec, "openapi", "", "OpenAPI document path (relative to --root) or URL to read fields from")
	cmd.Flags().StringVar(&schema, "schema", "", "Component schema name in the OpenAPI document (default: <Name>)")
	cmd.Flags().BoolVar(&validate, "validate", true, "Validate the OpenAPI document before reading it")
	return cmd
}

// fieldsFromOpenAPI reads fields from a component schema. Relative document
// paths are taken from the project root.
func (a *app) fieldsFromOpenAPI(ctx context.Context, location, schema string, validate bool) ([]fields.Descriptor, error) {
	src, err := pkgopenapi.ParseSource(location)
	if err != nil {
		return nil, err
	}
	loader := jssgen.NewLoader(
		pkgopenapi.WithBaseDir(a.root),
		pkgopenapi.WithHTTPFallback(a.timeout),
	)
	parser := jssgen.NewParser(pkgopenapi.WithValidation(validate))
	return jssgen.FieldsFromOpenAPI(ctx, loader, parser, src, schema)
}

func newVariantCmd(a *app) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "variant <Variant>",
		Short: "Generate a variant of an existing component",
		Long: `Generate <componentDir of parent>/<Variant>.tsx and thread it into the
parent module as a named export. The variant is still written when the
parent module does not exist.`,
		Example: `  jssgen variant Compact --parent HeroBanner`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			gen, mem, err := a.newGenerator(cfg)
			if err != nil {
				return err
			}
			result, err := gen.Generate(ctx, emitter.Request{
				IsVariant:   true,
				VariantName: args[0],
				ParentName:  parent,
			})
			if err != nil {
				return err
			}
			if result.Patch != nil && !result.Patch.Changed() {
				a.logger.Warn("parent module has nothing to patch", zap.String("parent", parent))
			}
			if mem != nil {
				return printFiles(cmd.OutOrStdout(), mem)
			}
			return reportResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent component name (required)")
	_ = cmd.MarkFlagRequired("parent")
	return cmd
}
