// Package prompt drives the interactive generator wizard.
//
// The wizard collects a component name and its fields (or a variant and its
// parent) through a PromptDriver and turns the answers into an
// emitter.Request. Leaving a required answer empty aborts quietly with
// ErrAborted.
package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-jssgen/pkg/emitter"
	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/naming"
)

// Wizard answers.
const (
	TargetComponent = "Component"
	TargetVariant   = "Variant of an existing component"

	ModeSimple = "Simple (name:type,...)"
	ModeJSON   = "JSON object"
)

const (
	simpleFieldsHelp    = "Fields like: title:Text, subtitle:Text, image:Image"
	simpleFieldsDefault = "title:Text, subtitle:Text"
	jsonFieldsHelp      = `JSON like: {"title":"Text","image":"Image"}`
	jsonFieldsDefault   = `{"title":"Text"}`
)

var errNoIdentifier = errors.New("name needs at least one letter or digit")

// WizardOption customises a Wizard.
type WizardOption func(*Wizard)

// WithParser sets the field parser.
func WithParser(p *fields.Parser) WizardOption {
	return func(w *Wizard) {
		if p != nil {
			w.parser = p
		}
	}
}

// WithImportPath sets the ComponentProps import path placed on requests.
func WithImportPath(importPath string) WizardOption {
	return func(w *Wizard) {
		w.importPath = strings.TrimSpace(importPath)
	}
}

// Wizard collects generation requests interactively.
type Wizard struct {
	driver     PromptDriver
	parser     *fields.Parser
	importPath string
}

// NewWizard constructs a Wizard asking questions through driver.
func NewWizard(driver PromptDriver, opts ...WizardOption) *Wizard {
	w := &Wizard{
		driver: driver,
		parser: fields.NewParser(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Run asks what to generate and dispatches to the component or variant flow.
func (w *Wizard) Run(ctx context.Context) (emitter.Request, error) {
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message: "What do you want to generate?",
		Options: []string{TargetComponent, TargetVariant},
	})
	if err != nil {
		return emitter.Request{}, err
	}
	if idx == 1 {
		return w.Variant(ctx)
	}
	return w.Component(ctx)
}

// Component runs the component flow: name, input mode, then fields.
func (w *Wizard) Component(ctx context.Context) (emitter.Request, error) {
	name, err := w.askName(ctx, "Component name (e.g. HeroBanner)")
	if err != nil {
		return emitter.Request{}, err
	}

	mode, err := w.driver.Select(ctx, SelectConfig{
		Message: "Choose input mode for fields",
		Options: []string{ModeSimple, ModeJSON},
	})
	if err != nil {
		return emitter.Request{}, err
	}
	if mode < 0 {
		return emitter.Request{}, ErrAborted
	}

	cfg := InputConfig{Message: "Fields", Help: simpleFieldsHelp, Default: simpleFieldsDefault}
	if mode == 1 {
		cfg.Help, cfg.Default = jsonFieldsHelp, jsonFieldsDefault
	}
	raw, err := w.driver.Input(ctx, cfg)
	if err != nil {
		return emitter.Request{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return emitter.Request{}, ErrAborted
	}

	return emitter.Request{
		ComponentName: name,
		Fields:        w.parser.Parse(raw),
		ImportPath:    w.importPath,
	}, nil
}

// Variant runs the variant flow: parent name, then variant name.
func (w *Wizard) Variant(ctx context.Context) (emitter.Request, error) {
	parent, err := w.askName(ctx, "Parent component name (e.g. HeroBanner)")
	if err != nil {
		return emitter.Request{}, err
	}
	variant, err := w.askName(ctx, "Variant name (e.g. Compact)")
	if err != nil {
		return emitter.Request{}, err
	}
	return emitter.Request{
		IsVariant:   true,
		ParentName:  parent,
		VariantName: variant,
		ImportPath:  w.importPath,
	}, nil
}

// askName asks for an identifier. Blank answers abort; answers with no
// letters or digits are rejected by the validator.
func (w *Wizard) askName(ctx context.Context, message string) (string, error) {
	raw, err := w.driver.Input(ctx, InputConfig{
		Message:   message,
		Validator: validateName,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return "", ErrAborted
	}
	name := naming.NormalizeIdentifier(raw)
	if name == "" {
		return "", ErrAborted
	}
	return name, nil
}

func validateName(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if naming.NormalizeIdentifier(raw) == "" {
		return errNoIdentifier
	}
	return nil
}
