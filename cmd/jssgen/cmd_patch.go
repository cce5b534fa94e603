package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-jssgen/pkg/patch"
	"github.com/goliatone/go-jssgen/pkg/workspace"
)

func newPatchCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "patch <file> <Variant>",
		Short: "Thread a variant into an existing component module",
		Long: `Add the variant import, any missing library imports and a wrapped export
for <Variant> to <file>. The result is printed unless --write is set.
Patching is not idempotent; running it twice duplicates the export.`,
		Example: `  jssgen patch src/components/Hero/Hero.tsx Compact --write`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			file, variant := args[0], args[1]
			if !write || a.dryRun {
				source, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				result := patch.Apply(string(source), variant, patch.WithLibrary(cfg.Library))
				logPatch(a.logger, file, result)
				_, err = fmt.Fprint(cmd.OutOrStdout(), result.Source)
				return err
			}

			abs, err := filepath.Abs(file)
			if err != nil {
				return err
			}
			gen, err := workspace.New(
				workspace.NewFilesystemSink(filepath.Dir(abs)),
				workspace.FromConfig(cfg),
				workspace.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			result, err := gen.PatchFile(ctx, filepath.Base(abs), variant)
			if err != nil {
				return err
			}
			logPatch(a.logger, file, result)
			if result.Changed() {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "patched %s\n", file)
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file in place")
	return cmd
}

func logPatch(logger *zap.Logger, file string, result patch.Result) {
	if !result.Changed() {
		logger.Warn("nothing to patch", zap.String("path", file))
		return
	}
	logger.Debug("patch applied",
		zap.String("path", file),
		zap.Strings("addedImports", result.AddedImports),
		zap.Bool("variantImported", result.VariantImported),
		zap.Bool("wrapperInserted", result.WrapperInserted),
	)
}
