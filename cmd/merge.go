package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eigerco/move-spec-testing-old/internal/domain"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge [dir]",
		Short: "Combine the results of sharded runs into one summary",
		Long: "Load the results every `run --shard` saved in shard_* subdirectories and print the combined kill ratio.\n" +
			"Defaults to the output directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportsPath := m.Path(viper.GetString(outputConfigKey))
			if len(args) == 1 {
				reportsPath = m.Path(args[0])
			}

			return workflow.Merge(cmd.Context(), domain.MergeArgs{Reports: reportsPath})
		},
	}
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
