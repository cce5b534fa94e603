// Package jssgen generates Sitecore JSS component modules for Next.js.
//
// Given a component name and a description of its data fields, jssgen emits
// the complete TypeScript/TSX source of a component module. Fields are
// described either as a simple "key:Type" list or as a JSON object of sample
// layout-service values whose types are inferred. A second mode emits a
// variant module that reuses its parent's schema, and PatchParent threads
// such a variant into the already generated parent.
//
// The functions in this package are pure: they never fail and never touch
// the filesystem. See pkg/workspace for writing generated files.
package jssgen

import (
	"github.com/goliatone/go-jssgen/pkg/emitter"
	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/naming"
	"github.com/goliatone/go-jssgen/pkg/patch"
)

// FieldDescriptor is the normalised description of one data field.
type FieldDescriptor = fields.Descriptor

// GenerationRequest describes one component or variant to emit.
type GenerationRequest = emitter.Request

var defaultEmitter = emitter.New()

// ParseFields parses a simple "key:Type" list or a JSON object of sample
// values into ordered field descriptors.
func ParseFields(raw string) []FieldDescriptor {
	return fields.Parse(raw)
}

// EmitComponent renders the component module for name. An empty importPath
// imports ComponentProps from "lib/component-props".
func EmitComponent(name string, descriptors []FieldDescriptor, importPath string) string {
	return defaultEmitter.Component(name, descriptors, importPath)
}

// EmitVariant renders the variant module for variant of parent.
func EmitVariant(variant, parent string) string {
	return defaultEmitter.Variant(variant, parent)
}

// PatchParent threads variant into the parent module source. Parts of the
// patch that cannot find their anchor are skipped.
func PatchParent(source, variant string) string {
	return patch.Patch(source, variant)
}

// NormalizeIdentifier turns free text into a component identifier, e.g.
// "hero banner" becomes "HeroBanner".
func NormalizeIdentifier(raw string) string {
	return naming.NormalizeIdentifier(raw)
}

// Generate emits the module a request describes.
func Generate(req GenerationRequest) string {
	return defaultEmitter.Emit(req)
}
