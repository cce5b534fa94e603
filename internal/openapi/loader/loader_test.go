package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-jssgen/internal/openapi/loader"
	pkgopenapi "github.com/goliatone/go-jssgen/pkg/openapi"
)

const payload = "openapi: 3.0.0\n"

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := loader.New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload || doc.Location() != path {
		t.Fatalf("unexpected document from %s: %q", doc.Location(), doc.Raw())
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{"specs/api.yaml": {Data: []byte(payload)}}
	l := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload: %q", doc.Raw())
	}

	if _, err := loader.New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.yaml")); err == nil {
		t.Fatalf("expected error without a filesystem")
	}
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	src, err := pkgopenapi.SourceFromURL(server.URL + "/api.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	if _, err := loader.New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(0)))
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload: %q", doc.Raw())
	}

	missing, err := pkgopenapi.SourceFromURL(server.URL + "/missing")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := l.Load(context.Background(), missing); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.New(pkgopenapi.NewLoaderOptions()).Load(ctx, pkgopenapi.SourceFromFile(path)); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoadResolvesRelativeFilesAgainstBaseDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "api"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "api", "layout.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithBaseDir(root)))
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFile(filepath.Join("api", "layout.yaml")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload: %q", doc.Raw())
	}

	abs := filepath.Join(root, "api", "layout.yaml")
	if _, err := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithBaseDir(t.TempDir()))).Load(context.Background(), pkgopenapi.SourceFromFile(abs)); err != nil {
		t.Fatalf("absolute paths should ignore the base dir: %v", err)
	}
}

func TestLoadRejectsBlankDocuments(t *testing.T) {
	files := fstest.MapFS{"blank.yaml": {Data: []byte("  \n\t\n")}}
	l := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("blank.yaml")); err == nil {
		t.Fatalf("expected error for a blank document")
	}
}

func TestLoadTimeoutBoundsFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	src, err := pkgopenapi.SourceFromURL(server.URL + "/slow.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	l := loader.New(pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithHTTPClient(&http.Client{}),
		pkgopenapi.WithTimeout(20*time.Millisecond),
	))

	start := time.Now()
	if _, err := l.Load(context.Background(), src); err == nil {
		t.Fatalf("expected the slow fetch to time out")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout not applied, load took %s", elapsed)
	}
}
