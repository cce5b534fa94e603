// Package config discovers and loads project settings for the generator.
//
// Settings live in a JSON or YAML file found by walking up from the working
// directory. Keys missing from the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jssgen/pkg/emitter"
)

const (
	// DefaultComponentDir is the pongo2 template for a component's directory.
	DefaultComponentDir = "src/components/{{ name }}"
)

// FileNames lists the recognised file names in lookup order.
var FileNames = []string{".jssgen.yaml", ".jssgen.yml", "jssgen.yaml", ".jssgen.json"}

// ErrConfigNotFound is returned by Find when no settings file exists between
// the start directory and the filesystem root.
var ErrConfigNotFound = errors.New("config: no settings file found")

// Config holds the resolved generator settings.
type Config struct {
	// ComponentPropsImportPath is the module ComponentProps is imported from.
	ComponentPropsImportPath string
	// Library is the component library module path.
	Library string
	// ComponentDir is a template rendered with the component name.
	ComponentDir string
	// Barrel enables the index.ts re-export next to each component.
	Barrel bool
	// TemplateDir optionally overrides the built-in file templates.
	TemplateDir string
	// Path is the file the settings were read from; empty for defaults.
	Path string
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		ComponentPropsImportPath: emitter.DefaultComponentPropsImportPath,
		Library:                  emitter.DefaultLibrary,
		ComponentDir:             DefaultComponentDir,
		Barrel:                   true,
	}
}

type fileConfig struct {
	ComponentPropsImportPath *string `json:"componentPropsImportPath" yaml:"componentPropsImportPath"`
	Library                  *string `json:"library" yaml:"library"`
	ComponentDir             *string `json:"componentDir" yaml:"componentDir"`
	Barrel                   *bool   `json:"barrel" yaml:"barrel"`
	TemplateDir              *string `json:"templateDir" yaml:"templateDir"`
}

// Find walks up from dir looking for one of FileNames.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(abs, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrConfigNotFound
		}
		abs = parent
	}
}

// Load reads path and overlays its values on Default. Relative TemplateDir
// values are resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	raw, err := parseFile(data, path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = path
	overlayString(&cfg.ComponentPropsImportPath, raw.ComponentPropsImportPath)
	overlayString(&cfg.Library, raw.Library)
	overlayString(&cfg.ComponentDir, raw.ComponentDir)
	overlayString(&cfg.TemplateDir, raw.TemplateDir)
	if raw.Barrel != nil {
		cfg.Barrel = *raw.Barrel
	}
	if cfg.TemplateDir != "" && !filepath.IsAbs(cfg.TemplateDir) {
		cfg.TemplateDir = filepath.Join(filepath.Dir(path), cfg.TemplateDir)
	}
	return cfg, nil
}

// Discover finds and loads the settings file for dir, falling back to
// Default when there is none.
func Discover(dir string) (Config, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

func parseFile(data []byte, source string) (fileConfig, error) {
	var raw fileConfig
	if len(strings.TrimSpace(string(data))) == 0 {
		return fileConfig{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &raw); err == nil {
		return raw, nil
	}

	raw = fileConfig{}
	if err := yaml.Unmarshal(data, &raw); err == nil {
		return raw, nil
	}

	return fileConfig{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func overlayString(dst *string, value *string) {
	if value == nil {
		return
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		*dst = trimmed
	}
}
