// Package loader reads the OpenAPI documents that component schemas are
// taken from.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	pkgopenapi "github.com/goliatone/go-jssgen/pkg/openapi"
)

var (
	errNilSource    = errors.New("openapi loader: source is nil")
	errHTTPDisabled = errors.New("openapi loader: http support disabled")
)

// Loader implements pkgopenapi.Loader. Relative file locations resolve
// against the project root so a schema path on the command line means the
// same thing as the component directory it generates into. Every Load is
// bounded by the configured timeout.
type Loader struct {
	root    string
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	return &Loader{
		root:    options.BaseDir,
		files:   options.FileSystem,
		client:  httpClient(options),
		timeout: options.RequestTimeout,
	}
}

// httpClient returns nil when URL sources are not allowed. A caller supplied
// client is copied so the timeout never leaks back to it.
func httpClient(options pkgopenapi.LoaderOptions) *http.Client {
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: options.RequestTimeout}
	default:
		return nil
	}
}

// Load reads src and wraps it in a Document. Blank documents are rejected
// here so the parser only ever sees content.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errNilSource
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	data, err := l.read(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s is empty", src.Location())
	}
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) read(ctx context.Context, src pkgopenapi.Source) ([]byte, error) {
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		return loadFile(ctx, l.resolve(src.Location()))
	case pkgopenapi.SourceKindFS:
		return loadFromFS(ctx, l.files, src.Location())
	case pkgopenapi.SourceKindURL:
		if l.client == nil {
			return nil, errHTTPDisabled
		}
		return loadHTTP(ctx, l.client, src.Location())
	default:
		return nil, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
}

// resolve anchors a relative file location at the project root.
func (l *Loader) resolve(location string) string {
	if l.root == "" || location == "" || filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(l.root, location)
}
