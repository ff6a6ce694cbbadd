// Command ecsgen renders an aggregate schema (see internal/schema) into the
// Go source of the aggregate, its split functions, and its entity bundles.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/l1jgo/vecs/internal/codegen"
	"github.com/l1jgo/vecs/internal/schema"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		schemaPath string
		outPath    string
		pkg        string
	)
	cmd := &cobra.Command{
		Use:           "ecsgen",
		Short:         "Generate an aggregate from a YAML schema",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := schema.Load(schemaPath)
			if err != nil {
				return err
			}
			if pkg != "" {
				s.Package = pkg
				if err := s.Validate(); err != nil {
					return err
				}
			}
			src, err := codegen.Generate(s, filepath.Base(schemaPath))
			if err != nil {
				return eris.Wrapf(err, "generate from %s", schemaPath)
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(outPath, src, 0o644); err != nil {
				return eris.Wrapf(err, "write %s", outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "schema file to read")
	cmd.Flags().StringVar(&outPath, "out", "", "file to write (stdout if empty)")
	cmd.Flags().StringVar(&pkg, "package", "", "override the schema's package name")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
