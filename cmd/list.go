package cmd

import (
	"github.com/spf13/cobra"

	"github.com/eigerco/move-spec-testing-old/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List source files and mutant counts",
		Long:  "List the package's source files with the number of mutants each operator produces. Nothing is written.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(cmd.Context())
			if err != nil {
				return err
			}

			return workflow.Estimate(cmd.Context(), domain.EstimateArgs{Config: cfg})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
