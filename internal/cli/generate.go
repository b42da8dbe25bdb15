package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elixir-tesla/tesla-openapi/internal/codegen"
	"github.com/elixir-tesla/tesla-openapi/internal/config"
	"github.com/elixir-tesla/tesla-openapi/internal/loader"
	"github.com/spf13/cobra"
)

func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate client bindings from an OpenAPI specification",
	}

	config.BindCommonFlags(cmd)

	flags := cmd.PersistentFlags()
	flags.StringP("output-dir", "o", "", "Output directory for generated Go code")
	flags.StringP("package", "p", "", "Go package name")

	cmd.AddCommand(
		newTypesCmd(),
		newClientCmd(),
		newAllCmd(),
	)

	return cmd
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Generate Go model types",
		RunE:  runGenerate("types"),
	}
}

func newClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "client",
		Short: "Generate a Go HTTP client",
		RunE:  runGenerate("client"),
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Generate all targets (types, client)",
		RunE:  runGenerate("all"),
	}
}

func runGenerate(target string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd, expandTargets(target))
		if err != nil {
			return err
		}

		result, err := loader.LoadFile(cfg.Spec)
		if err != nil {
			return fmt.Errorf("loading spec: %w", err)
		}

		for _, w := range result.Warnings {
			cmd.PrintErrf("Warning: %s\n", w)
		}

		spec, err := loader.Transform(result)
		if err != nil {
			return fmt.Errorf("transforming spec: %w", err)
		}

		spec, err = loader.Filter(result.Document, spec, cfg.IncludeOperation)
		if err != nil {
			return fmt.Errorf("filtering spec: %w", err)
		}

		cmd.PrintErrf("Loaded OpenAPI %s: %s v%s\n", result.Version, spec.Info.Title, spec.Info.Version)
		cmd.PrintErrf("  Models: %d\n", len(spec.Models))
		cmd.PrintErrf("  Operations: %d\n", len(spec.Operations))

		gen, err := codegen.New(cfg)
		if err != nil {
			return fmt.Errorf("creating generator: %w", err)
		}

		outputs, err := gen.Generate(spec)
		if err != nil {
			return fmt.Errorf("generating code: %w", err)
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			for _, out := range outputs {
				fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", out.Filename, out.Content)
			}
			return nil
		}

		if err := os.MkdirAll(cfg.Go.OutputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		for _, out := range outputs {
			path := filepath.Join(cfg.Go.OutputDir, out.Filename)
			if err := os.WriteFile(path, []byte(out.Content), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			cmd.PrintErrf("Written: %s\n", path)
		}

		return nil
	}
}

func expandTargets(target string) []string {
	if target == "all" {
		return []string{"types", "client"}
	}
	return []string{target}
}
