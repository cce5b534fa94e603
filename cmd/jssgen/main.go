// Command jssgen generates Sitecore JSS components for Next.js projects.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-jssgen/pkg/config"
	"github.com/goliatone/go-jssgen/pkg/prompt"
	"github.com/goliatone/go-jssgen/pkg/workspace"
)

// app carries global flags and collaborators shared by every subcommand.
type app struct {
	verbose    bool
	dryRun     bool
	root       string
	configPath string
	timeout    time.Duration

	importPath   string
	library      string
	componentDir string
	templateDir  string
	noBarrel     bool

	logger *zap.Logger
	driver prompt.PromptDriver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "jssgen",
		Short: "Generate Sitecore JSS components for Next.js",
		Long: `jssgen writes Sitecore JSS component modules for Next.js projects.

Run without arguments to start the interactive wizard, or use the component,
variant and patch subcommands from scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runWizard,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&a.dryRun, "dry-run", false, "Print generated files instead of writing them")
	flags.StringVarP(&a.root, "root", "C", ".", "Project root that generated paths are relative to")
	flags.StringVar(&a.configPath, "config", "", "Config file (default: discovered from --root upwards)")
	flags.DurationVar(&a.timeout, "timeout", time.Minute, "Operation timeout")
	flags.StringVar(&a.importPath, "import-path", "", "ComponentProps import path")
	flags.StringVar(&a.library, "library", "", "Component library import path")
	flags.StringVar(&a.componentDir, "component-dir", "", "Component directory template, e.g. src/components/{{ name }}")
	flags.StringVar(&a.templateDir, "template-dir", "", "Directory with template overrides")
	flags.BoolVar(&a.noBarrel, "no-barrel", false, "Do not write the index.ts barrel")

	root.AddCommand(newComponentCmd(a))
	root.AddCommand(newVariantCmd(a))
	root.AddCommand(newPatchCmd(a))
	root.AddCommand(newTypesCmd())
	return root
}

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runWizard asks what to generate and writes it.
func (a *app) runWizard(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	driver := a.driver
	if driver == nil {
		driver = prompt.NewSurveyDriver()
	}

	req, err := prompt.NewWizard(driver, prompt.WithImportPath(cfg.ComponentPropsImportPath)).Run(ctx)
	if errors.Is(err, prompt.ErrAborted) {
		a.logger.Debug("wizard aborted")
		return nil
	}
	if err != nil {
		return err
	}

	gen, mem, err := a.newGenerator(cfg)
	if err != nil {
		return err
	}
	result, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}
	if mem != nil {
		return printFiles(cmd.OutOrStdout(), mem)
	}

	kind := "Component"
	if req.IsVariant {
		kind = "Variant"
	}
	dir := ""
	if len(result.Files) > 0 {
		dir = path.Dir(result.Files[0].Path)
	}
	for _, warning := range result.Warnings {
		if err := driver.Info(ctx, warning.Error()); err != nil {
			return err
		}
	}
	return driver.Info(ctx, fmt.Sprintf("%s %s created at %s/", kind, result.Name, dir))
}

// loadConfig reads the project config and applies flag overrides.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
	} else {
		cfg, err = config.Discover(a.root)
	}
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		a.logger.Debug("config loaded", zap.String("path", cfg.Path))
	}

	flags := cmd.Flags()
	if flags.Changed("import-path") {
		cfg.ComponentPropsImportPath = a.importPath
	}
	if flags.Changed("library") {
		cfg.Library = a.library
	}
	if flags.Changed("component-dir") {
		cfg.ComponentDir = a.componentDir
	}
	if flags.Changed("template-dir") {
		cfg.TemplateDir = a.templateDir
	}
	if flags.Changed("no-barrel") {
		cfg.Barrel = !a.noBarrel
	}
	return cfg, nil
}

// newGenerator builds a generator over the project root. Dry runs write to
// the returned memory sink, which reads through to disk.
func (a *app) newGenerator(cfg config.Config) (*workspace.Generator, *workspace.MemorySink, error) {
	disk := workspace.NewFilesystemSink(a.root)

	var (
		sink workspace.Sink = disk
		mem  *workspace.MemorySink
	)
	if a.dryRun {
		mem = workspace.NewMemorySink()
		mem.ReadThrough = disk
		sink = mem
	}

	gen, err := workspace.New(sink, workspace.FromConfig(cfg), workspace.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}
	return gen, mem, nil
}

func printFiles(w io.Writer, mem *workspace.MemorySink) error {
	for _, name := range mem.Paths() {
		if _, err := fmt.Fprintf(w, "// %s\n%s\n", name, mem.Get(name)); err != nil {
			return err
		}
	}
	return nil
}

func reportResult(w io.Writer, result workspace.Result) error {
	for _, file := range result.Files {
		if _, err := fmt.Fprintf(w, "wrote %s\n", file.Path); err != nil {
			return err
		}
	}
	for _, warning := range result.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %v\n", warning); err != nil {
			return err
		}
	}
	return nil
}
