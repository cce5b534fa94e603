package jssgen

import (
	"io/fs"

	"github.com/goliatone/go-jssgen/pkg/workspace"
)

// EmbeddedTemplates exposes the built-in file templates so callers can copy
// them into a template directory and override them.
func EmbeddedTemplates() fs.FS {
	return workspace.TemplatesFS()
}
