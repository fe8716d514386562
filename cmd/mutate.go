package cmd

import (
	"github.com/spf13/cobra"

	"github.com/eigerco/move-spec-testing-old/internal/domain"
)

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()

func newMutateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mutate",
		Short: "Write mutants and reports to the output directory",
		Long: `Generate every mutant of the package and write each one as a full copy of
its source file into the output directory, together with report.json and
report.txt describing the applied mutations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(cmd.Context())
			if err != nil {
				return err
			}

			return workflow.Mutate(cmd.Context(), domain.MutateArgs{Config: cfg})
		},
	}
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}
