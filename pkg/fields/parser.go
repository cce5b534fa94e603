// Package fields turns raw field descriptions into ordered field descriptors.
//
// Two surface syntaxes are accepted. Simple mode is a comma separated list of
// key:type pairs resolved through the type registry. Structural mode is a JSON
// object of sample values (the layout-service shape where every field wraps
// its data in a "value" member); types are inferred from the samples. Parsing
// never fails: malformed JSON is re-read in simple mode and unknown types
// degrade to the registry fallback.
package fields

import (
	"strings"

	"github.com/goliatone/go-jssgen/pkg/registry"
)

// Option customises a Parser.
type Option func(*config)

type config struct {
	registry *registry.Registry
}

// WithRegistry resolves type tokens through reg instead of the default table.
func WithRegistry(reg *registry.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// Parser converts raw field descriptions into descriptors. A Parser holds no
// mutable state and is safe for concurrent use.
type Parser struct {
	registry *registry.Registry
}

// NewParser constructs a Parser applying any provided options.
func NewParser(options ...Option) *Parser {
	cfg := config{registry: registry.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Parser{registry: cfg.registry}
}

var defaultParser = NewParser()

// Parse parses raw with the default registry.
func Parse(raw string) []Descriptor {
	return defaultParser.Parse(raw)
}

// Parse auto-detects the input mode: trimmed input starting with "{" is tried
// as a JSON object first and falls back to simple mode when it does not decode.
func (p *Parser) Parse(raw string) []Descriptor {
	input := strings.TrimSpace(raw)

	if strings.HasPrefix(input, "{") {
		if obj, err := DecodeObject(input); err == nil {
			return p.structural(obj)
		}
	}
	return p.simple(input)
}

// ParseSimple parses the key:type list syntax regardless of the input shape.
func (p *Parser) ParseSimple(raw string) []Descriptor {
	return p.simple(strings.TrimSpace(raw))
}

// ParseValue infers descriptors from an already decoded JSON object.
func (p *Parser) ParseValue(obj Value) []Descriptor {
	if obj.Kind != ValueObject {
		return nil
	}
	return p.structural(obj)
}

func (p *Parser) simple(input string) []Descriptor {
	out := make([]Descriptor, 0)
	for _, pair := range strings.Split(input, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.Split(pair, ":")
		key := strings.TrimSpace(parts[0])
		rawType := registry.TypeAny
		if len(parts) > 1 {
			if trimmed := strings.TrimSpace(parts[1]); trimmed != "" {
				rawType = trimmed
			}
		}

		out = append(out, NewDescriptor(key, rawType, p.registry.Resolve(rawType)))
	}
	return out
}

func (p *Parser) structural(obj Value) []Descriptor {
	out := make([]Descriptor, 0, len(obj.Members))
	for _, member := range obj.Members {
		kind := Classify(member.Value)
		desc := NewDescriptor(member.Name, string(kind), p.registry.Kind(kind))
		if kind == registry.KindItems {
			desc.ItemStructure = p.itemStructure(member.Value)
		}
		out = append(out, desc)
	}
	return out
}

// itemStructure classifies the "fields" map of the first array element. Empty
// arrays and elements without an object-valued "fields" member yield nil.
func (p *Parser) itemStructure(list Value) []ItemField {
	if list.Kind != ValueArray || len(list.Elements) == 0 {
		return nil
	}
	itemFields, ok := list.Elements[0].Get("fields")
	if !ok || itemFields.Kind != ValueObject || len(itemFields.Members) == 0 {
		return nil
	}

	out := make([]ItemField, 0, len(itemFields.Members))
	for _, member := range itemFields.Members {
		kind := Classify(member.Value)
		out = append(out, NewItemField(member.Name, string(kind), p.registry.Kind(kind)))
	}
	return out
}
