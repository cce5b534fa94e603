package openapi

import "context"

// Parser extracts the component schemas of a document, keyed by name.
type Parser interface {
	Components(ctx context.Context, doc Document) (map[string]Schema, error)
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// Validate runs document validation before schemas are extracted.
	Validate bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Validation is on by default.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		Validate: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
