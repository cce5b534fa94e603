package workspace_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-jssgen/pkg/workspace"
)

func TestValidatePath(t *testing.T) {
	valid := []string{"Hero.tsx", "src/components/Hero/Hero.tsx", "a..b/c.ts"}
	for _, p := range valid {
		if err := workspace.ValidatePath(p); err != nil {
			t.Fatalf("ValidatePath(%q) = %v", p, err)
		}
	}
	invalid := []string{"", "/etc/passwd", "C:/x.ts", "../x.ts", "a/../../x.ts", "a//b.ts", "./a.ts"}
	for _, p := range invalid {
		if err := workspace.ValidatePath(p); err == nil {
			t.Fatalf("ValidatePath(%q) should fail", p)
		}
	}
}

func TestFilesystemSinkRoundTrip(t *testing.T) {
	root := t.TempDir()
	sink := workspace.NewFilesystemSink(root)
	ctx := context.Background()

	if err := sink.WriteFile(ctx, "src/components/Hero/Hero.tsx", []byte("one")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.WriteFile(ctx, "src/components/Hero/Hero.tsx", []byte("two")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "src", "components", "Hero", "Hero.tsx"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "two" {
		t.Fatalf("unexpected content %q", data)
	}

	got, err := sink.ReadFile(ctx, "src/components/Hero/Hero.tsx")
	if err != nil || string(got) != "two" {
		t.Fatalf("ReadFile = %q, %v", got, err)
	}
	if _, err := sink.ReadFile(ctx, "missing.tsx"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "src", "components", "Hero"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestFilesystemSinkWithoutOverwrite(t *testing.T) {
	sink := workspace.NewFilesystemSink(t.TempDir())
	sink.Overwrite = false
	ctx := context.Background()

	if err := sink.WriteFile(ctx, "Hero.tsx", []byte("one")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.WriteFile(ctx, "Hero.tsx", []byte("two")); err == nil {
		t.Fatalf("expected error when the file exists")
	}
}

func TestSinksHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := workspace.NewFilesystemSink(t.TempDir()).WriteFile(ctx, "Hero.tsx", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("filesystem sink: expected context.Canceled, got %v", err)
	}
	if err := workspace.NewMemorySink().WriteFile(ctx, "Hero.tsx", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("memory sink: expected context.Canceled, got %v", err)
	}
}

func TestMemorySinkReadThrough(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "Hero.tsx"), []byte("disk"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ctx := context.Background()

	memory := workspace.NewMemorySink()
	if _, err := memory.ReadFile(ctx, "Hero.tsx"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist without read-through, got %v", err)
	}

	memory.ReadThrough = workspace.NewFilesystemSink(root)
	got, err := memory.ReadFile(ctx, "Hero.tsx")
	if err != nil || string(got) != "disk" {
		t.Fatalf("read-through = %q, %v", got, err)
	}

	if err := memory.WriteFile(ctx, "Hero.tsx", []byte("memory")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err = memory.ReadFile(ctx, "Hero.tsx")
	if err != nil || string(got) != "memory" {
		t.Fatalf("memory should shadow disk, got %q, %v", got, err)
	}
	if data, _ := os.ReadFile(filepath.Join(root, "Hero.tsx")); string(data) != "disk" {
		t.Fatalf("disk file modified: %q", data)
	}
}
