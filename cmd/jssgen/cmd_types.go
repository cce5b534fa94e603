package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-jssgen/pkg/registry"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the field type keywords accepted in simple field lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			for _, keyword := range reg.Keywords() {
				res := reg.Resolve(keyword)
				primitive := res.RenderPrimitive
				if primitive == "" {
					primitive = "-"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-14s %s\n", keyword, res.SemanticType, primitive); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
