// Package workspace writes generated modules into a project tree.
//
// A Generator renders component and variant modules with the emitter, lays
// them out under a templated component directory and threads new variants
// into their parent module on disk. Output goes through a Sink, so the same
// workflow serves real writes and dry runs.
package workspace

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-jssgen/pkg/config"
	"github.com/goliatone/go-jssgen/pkg/emitter"
	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/naming"
	"github.com/goliatone/go-jssgen/pkg/patch"
	"github.com/goliatone/go-jssgen/pkg/render/template"
	"github.com/goliatone/go-jssgen/pkg/render/template/gotemplate"
)

const (
	barrelTemplate = "barrel"
	barrelFile     = "index.ts"
	moduleExt      = ".tsx"
)

var (
	// ErrEmptyName is returned when a component, variant or parent name
	// normalizes to nothing.
	ErrEmptyName = errors.New("workspace: name is empty after normalization")
	// ErrParentNotFound is recorded as a warning when a variant's parent
	// module does not exist; the variant itself is still written.
	ErrParentNotFound = errors.New("workspace: parent module not found")
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Option customises a Generator.
type Option func(*options)

type options struct {
	logger       *zap.Logger
	emitter      *emitter.Emitter
	renderer     template.TemplateRenderer
	templateDir  string
	componentDir string
	importPath   string
	barrel       bool
}

// WithLogger sets the logger; the default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEmitter replaces the default module emitter.
func WithEmitter(e *emitter.Emitter) Option {
	return func(o *options) {
		if e != nil {
			o.emitter = e
		}
	}
}

// WithTemplateRenderer replaces the template engine used for the component
// directory and the barrel file.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(o *options) {
		if renderer != nil {
			o.renderer = renderer
		}
	}
}

// WithTemplateDir lets templates in dir override the built-in ones.
func WithTemplateDir(dir string) Option {
	return func(o *options) {
		o.templateDir = strings.TrimSpace(dir)
	}
}

// WithComponentDir sets the template for a component's directory. The
// template receives the component name as "name".
func WithComponentDir(tpl string) Option {
	return func(o *options) {
		if trimmed := strings.TrimSpace(tpl); trimmed != "" {
			o.componentDir = trimmed
		}
	}
}

// WithImportPath sets the module ComponentProps is imported from.
func WithImportPath(importPath string) Option {
	return func(o *options) {
		o.importPath = strings.TrimSpace(importPath)
	}
}

// WithBarrel toggles the index.ts re-export.
func WithBarrel(enabled bool) Option {
	return func(o *options) {
		o.barrel = enabled
	}
}

// FromConfig applies loaded project settings.
func FromConfig(cfg config.Config) Option {
	return func(o *options) {
		WithEmitter(emitter.New(emitter.WithLibrary(cfg.Library)))(o)
		WithComponentDir(cfg.ComponentDir)(o)
		WithImportPath(cfg.ComponentPropsImportPath)(o)
		WithBarrel(cfg.Barrel)(o)
		WithTemplateDir(cfg.TemplateDir)(o)
	}
}

// File is one written file.
type File struct {
	Path    string
	Content string
}

// Result reports what a generation run wrote.
type Result struct {
	// Name is the normalized component or variant name.
	Name  string
	Files []File
	// Patch is the outcome of threading a variant into its parent; nil for
	// components and when the parent was not found.
	Patch *patch.Result
	// Warnings lists non-fatal problems such as ErrParentNotFound.
	Warnings []error
}

// Generator writes generated modules through a Sink.
type Generator struct {
	sink         Sink
	logger       *zap.Logger
	emitter      *emitter.Emitter
	renderer     template.TemplateRenderer
	componentDir string
	importPath   string
	barrel       bool
}

// New constructs a Generator writing to sink.
func New(sink Sink, opts ...Option) (*Generator, error) {
	if sink == nil {
		return nil, errors.New("workspace: sink is required")
	}

	o := options{
		logger:       zap.NewNop(),
		emitter:      emitter.New(),
		componentDir: config.DefaultComponentDir,
		barrel:       true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	if o.renderer == nil {
		renderer, err := newTemplateEngine(o.templateDir)
		if err != nil {
			return nil, err
		}
		o.renderer = renderer
	}

	return &Generator{
		sink:         sink,
		logger:       o.logger,
		emitter:      o.emitter,
		renderer:     o.renderer,
		componentDir: o.componentDir,
		importPath:   o.importPath,
		barrel:       o.barrel,
	}, nil
}

// TemplatesFS exposes the built-in templates, e.g. "barrel.tpl".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

func newTemplateEngine(dir string) (*gotemplate.Engine, error) {
	opts := []gotemplate.Option{gotemplate.WithFS(TemplatesFS())}
	if dir != "" {
		opts = append(opts, gotemplate.WithBaseDir(dir))
	}
	engine, err := gotemplate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("workspace: template engine: %w", err)
	}
	return engine, nil
}

// Generate dispatches req to GenerateVariant or GenerateComponent. A request
// import path overrides the configured one.
func (g *Generator) Generate(ctx context.Context, req emitter.Request) (Result, error) {
	if req.IsVariant {
		return g.GenerateVariant(ctx, req.VariantName, req.ParentName)
	}
	return g.generateComponent(ctx, req.ComponentName, req.Fields, req.ImportPath)
}

// GenerateComponent writes <dir>/<Name>.tsx and, when enabled, the barrel
// <dir>/index.ts.
func (g *Generator) GenerateComponent(ctx context.Context, name string, descriptors []fields.Descriptor) (Result, error) {
	return g.generateComponent(ctx, name, descriptors, "")
}

func (g *Generator) generateComponent(ctx context.Context, rawName string, descriptors []fields.Descriptor, importPath string) (Result, error) {
	name := naming.NormalizeIdentifier(rawName)
	if name == "" {
		return Result{}, ErrEmptyName
	}
	if importPath == "" {
		importPath = g.importPath
	}

	dir, err := g.ComponentDir(name)
	if err != nil {
		return Result{}, err
	}

	result := Result{Name: name}
	source := g.emitter.Component(name, descriptors, importPath)
	if err := g.write(ctx, &result, path.Join(dir, name+moduleExt), source); err != nil {
		return result, err
	}

	if g.barrel {
		barrel, err := g.renderer.RenderTemplate(barrelTemplate, map[string]any{"name": name})
		if err != nil {
			return result, fmt.Errorf("workspace: render barrel: %w", err)
		}
		if err := g.write(ctx, &result, path.Join(dir, barrelFile), barrel); err != nil {
			return result, err
		}
	}

	g.logger.Info("component generated",
		zap.String("component", name),
		zap.Int("fields", len(descriptors)),
		zap.String("dir", dir),
	)
	return result, nil
}

// GenerateVariant writes the variant module next to its parent and patches
// the parent to export it. A missing parent is reported through
// Result.Warnings rather than as an error.
func (g *Generator) GenerateVariant(ctx context.Context, rawVariant, rawParent string) (Result, error) {
	variant := naming.NormalizeIdentifier(rawVariant)
	parent := naming.NormalizeIdentifier(rawParent)
	if variant == "" || parent == "" {
		return Result{}, ErrEmptyName
	}

	dir, err := g.ComponentDir(parent)
	if err != nil {
		return Result{}, err
	}

	result := Result{Name: variant}
	if err := g.write(ctx, &result, path.Join(dir, variant+moduleExt), g.emitter.Variant(variant, parent)); err != nil {
		return result, err
	}

	parentPath := path.Join(dir, parent+moduleExt)
	patched, err := g.PatchFile(ctx, parentPath, variant)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		g.logger.Warn("parent module not found; variant written without patch",
			zap.String("variant", variant),
			zap.String("parent", parentPath),
		)
		result.Warnings = append(result.Warnings, fmt.Errorf("%w: %s", ErrParentNotFound, parentPath))
		return result, nil
	case err != nil:
		return result, err
	}

	result.Patch = &patched
	if patched.Changed() {
		result.Files = append(result.Files, File{Path: parentPath, Content: patched.Source})
	}
	g.logger.Info("variant generated",
		zap.String("variant", variant),
		zap.String("parent", parent),
		zap.Strings("addedImports", patched.AddedImports),
		zap.Bool("wrapperInserted", patched.WrapperInserted),
	)
	return result, nil
}

// PatchFile threads variant into the module at filePath and writes it back
// when anything changed.
func (g *Generator) PatchFile(ctx context.Context, filePath, variant string) (patch.Result, error) {
	source, err := g.sink.ReadFile(ctx, filePath)
	if err != nil {
		return patch.Result{}, err
	}

	result := patch.Apply(string(source), variant, patch.WithLibrary(g.emitter.Library()))
	if !result.Changed() {
		g.logger.Debug("parent left unchanged", zap.String("path", filePath))
		return result, nil
	}
	if err := g.sink.WriteFile(ctx, filePath, []byte(result.Source)); err != nil {
		return patch.Result{}, fmt.Errorf("workspace: write %s: %w", filePath, err)
	}
	g.logger.Debug("file patched", zap.String("path", filePath))
	return result, nil
}

// ComponentDir renders the directory template for name.
func (g *Generator) ComponentDir(name string) (string, error) {
	rendered, err := g.renderer.RenderString(g.componentDir, map[string]any{"name": name})
	if err != nil {
		return "", fmt.Errorf("workspace: render component dir: %w", err)
	}
	dir := path.Clean(strings.TrimSpace(rendered))
	if err := ValidatePath(dir); err != nil {
		return "", fmt.Errorf("workspace: component dir %q: %w", dir, err)
	}
	return dir, nil
}

func (g *Generator) write(ctx context.Context, result *Result, filePath, content string) error {
	if err := g.sink.WriteFile(ctx, filePath, []byte(content)); err != nil {
		return fmt.Errorf("workspace: write %s: %w", filePath, err)
	}
	g.logger.Debug("file written", zap.String("path", filePath), zap.Int("bytes", len(content)))
	result.Files = append(result.Files, File{Path: filePath, Content: content})
	return nil
}
