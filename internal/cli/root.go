package cli

import "github.com/spf13/cobra"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "tesla-openapi",
		Short:   "tesla-openapi - OpenAPI client bindings generator",
		Version: "1.0.0",

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(GenerateCommand())

	return root
}
