// Package sanitize scrubs user supplied text before it is embedded in
// generated source comments.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	docPolicyOnce sync.Once
	docPolicy     *bluemonday.Policy
)

var commentReplacer = strings.NewReplacer(
	"*/", "* /",
	"/*", "/ *",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// CommentText breaks any sequence that would end a block comment early and
// flattens newlines, so the result can sit inside {/* ... */}. The text is
// otherwise kept as written; a raw type such as Array<Foo> stays readable.
func CommentText(raw string) string {
	return strings.TrimSpace(commentReplacer.Replace(strings.TrimSpace(raw)))
}

// DocText turns an HTML description, as found in OpenAPI documents, into the
// plain text of a doc comment: markup is dropped, entities are decoded and
// comment delimiters are broken.
func DocText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	plain := html.UnescapeString(docSanitizer().Sanitize(trimmed))
	return CommentText(strings.Join(strings.Fields(plain), " "))
}

func docSanitizer() *bluemonday.Policy {
	docPolicyOnce.Do(func() {
		docPolicy = bluemonday.StrictPolicy()
	})
	return docPolicy
}
