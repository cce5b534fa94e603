package workspace_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-jssgen/pkg/config"
	"github.com/goliatone/go-jssgen/pkg/emitter"
	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/testsupport"
	"github.com/goliatone/go-jssgen/pkg/workspace"
)

func newGenerator(t *testing.T, sink workspace.Sink, opts ...workspace.Option) *workspace.Generator {
	t.Helper()
	gen, err := workspace.New(sink, opts...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return gen
}

func TestGenerateComponentWritesModuleAndBarrel(t *testing.T) {
	sink := workspace.NewMemorySink()
	gen := newGenerator(t, sink)
	descriptors := fields.Parse("title:Text, image:Image")

	result, err := gen.GenerateComponent(testsupport.Context(), "hero", descriptors)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Name != "Hero" {
		t.Fatalf("name = %q", result.Name)
	}

	wantPaths := []string{"src/components/Hero/Hero.tsx", "src/components/Hero/index.ts"}
	if diff := cmp.Diff(wantPaths, sink.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if got, want := string(sink.Get(wantPaths[0])), emitter.New().Component("Hero", descriptors, ""); got != want {
		t.Fatalf("module mismatch:\n%s", cmp.Diff(want, got))
	}
	if got := string(sink.Get(wantPaths[1])); got != "export { default } from './Hero';\n" {
		t.Fatalf("barrel = %q", got)
	}
}

func TestGenerateComponentFromConfig(t *testing.T) {
	sink := workspace.NewMemorySink()
	cfg := config.Default()
	cfg.ComponentDir = "components/{{ name|lowerfirst }}"
	cfg.ComponentPropsImportPath = "@/lib/component-props"
	cfg.Barrel = false
	gen := newGenerator(t, sink, workspace.FromConfig(cfg))

	if _, err := gen.GenerateComponent(testsupport.Context(), "Promo Card", fields.Parse("title:Text")); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"components/promoCard/PromoCard.tsx"}, sink.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if got := string(sink.Get("components/promoCard/PromoCard.tsx")); !containsLine(got, "import { ComponentProps } from '@/lib/component-props';") {
		t.Fatalf("configured import path not used:\n%s", got)
	}
}

func TestGenerateRequestImportPathWins(t *testing.T) {
	sink := workspace.NewMemorySink()
	gen := newGenerator(t, sink, workspace.WithImportPath("lib/props"), workspace.WithBarrel(false))

	_, err := gen.Generate(testsupport.Context(), emitter.Request{
		ComponentName: "Hero",
		Fields:        fields.Parse("title:Text"),
		ImportPath:    "@/custom/props",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := string(sink.Get("src/components/Hero/Hero.tsx")); !containsLine(got, "import { ComponentProps } from '@/custom/props';") {
		t.Fatalf("request import path not used:\n%s", got)
	}
}

func TestGenerateRejectsEmptyNames(t *testing.T) {
	gen := newGenerator(t, workspace.NewMemorySink())
	if _, err := gen.GenerateComponent(testsupport.Context(), " !! ", nil); !errors.Is(err, workspace.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := gen.GenerateVariant(testsupport.Context(), "Compact", ""); !errors.Is(err, workspace.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestGenerateVariantPatchesParent(t *testing.T) {
	sink := workspace.NewMemorySink()
	gen := newGenerator(t, sink)
	ctx := testsupport.Context()

	if _, err := gen.GenerateComponent(ctx, "Hero", fields.Parse("title:Text, image:Image")); err != nil {
		t.Fatalf("generate component: %v", err)
	}

	result, err := gen.Generate(ctx, emitter.Request{IsVariant: true, VariantName: "compact", ParentName: "Hero"})
	if err != nil {
		t.Fatalf("generate variant: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
	if result.Patch == nil || !result.Patch.WrapperInserted || !result.Patch.VariantImported {
		t.Fatalf("parent not patched: %+v", result.Patch)
	}

	if got, want := string(sink.Get("src/components/Hero/Compact.tsx")), emitter.New().Variant("Compact", "Hero"); got != want {
		t.Fatalf("variant module mismatch:\n%s", cmp.Diff(want, got))
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "hero_with_compact.tsx.golden"), string(sink.Get("src/components/Hero/Hero.tsx")))

	wantFiles := []string{"src/components/Hero/Compact.tsx", "src/components/Hero/Hero.tsx"}
	var gotFiles []string
	for _, f := range result.Files {
		gotFiles = append(gotFiles, f.Path)
	}
	if diff := cmp.Diff(wantFiles, gotFiles); diff != "" {
		t.Fatalf("result files mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateVariantWithoutParentWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := workspace.NewMemorySink()
	gen := newGenerator(t, sink, workspace.WithLogger(zap.New(core)))

	result, err := gen.GenerateVariant(testsupport.Context(), "Compact", "Hero")
	if err != nil {
		t.Fatalf("generate variant: %v", err)
	}
	if len(result.Warnings) != 1 || !errors.Is(result.Warnings[0], workspace.ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound warning, got %v", result.Warnings)
	}
	if result.Patch != nil {
		t.Fatalf("patch should be nil without a parent")
	}
	if sink.Get("src/components/Hero/Compact.tsx") == nil {
		t.Fatalf("variant should still be written")
	}
	if logs.FilterMessage("parent module not found; variant written without patch").Len() != 1 {
		t.Fatalf("expected one warning log, got %v", logs.All())
	}
}

func TestDryRunLeavesDiskUntouched(t *testing.T) {
	root := t.TempDir()
	disk := workspace.NewFilesystemSink(root)
	ctx := context.Background()

	parent := emitter.New().Component("Hero", fields.Parse("title:Text"), "")
	if err := disk.WriteFile(ctx, "src/components/Hero/Hero.tsx", []byte(parent)); err != nil {
		t.Fatalf("seed parent: %v", err)
	}

	memory := workspace.NewMemorySink()
	memory.ReadThrough = disk
	gen := newGenerator(t, memory)

	result, err := gen.GenerateVariant(ctx, "Compact", "Hero")
	if err != nil {
		t.Fatalf("generate variant: %v", err)
	}
	if result.Patch == nil || !result.Patch.Changed() {
		t.Fatalf("expected the in-memory parent to be patched")
	}

	data, err := os.ReadFile(filepath.Join(root, "src", "components", "Hero", "Hero.tsx"))
	if err != nil {
		t.Fatalf("read parent: %v", err)
	}
	if string(data) != parent {
		t.Fatalf("dry run modified the parent on disk")
	}
	if _, err := os.Stat(filepath.Join(root, "src", "components", "Hero", "Compact.tsx")); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote the variant to disk")
	}
}

func TestComponentDirRejectsEscapingTemplates(t *testing.T) {
	gen := newGenerator(t, workspace.NewMemorySink(), workspace.WithComponentDir("../{{ name }}"))
	if _, err := gen.ComponentDir("Hero"); err == nil {
		t.Fatalf("expected error for a directory outside the workspace")
	}
}

func TestTemplateDirOverridesBarrel(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "barrel.tpl"), []byte("export * from './{{ name }}';\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	sink := workspace.NewMemorySink()
	gen := newGenerator(t, sink, workspace.WithTemplateDir(dir))

	if _, err := gen.GenerateComponent(testsupport.Context(), "Hero", nil); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := string(sink.Get("src/components/Hero/index.ts")); got != "export * from './Hero';\n" {
		t.Fatalf("barrel = %q", got)
	}
}

func containsLine(source, line string) bool {
	for _, l := range strings.Split(source, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
