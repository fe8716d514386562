package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eigerco/move-spec-testing-old/internal/domain"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [report]",
		Short: "View a previously generated mutation report",
		Long:  "View a report.json, or the report inside a directory. Defaults to the output directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportPath := m.Path(viper.GetString(outputConfigKey))
			if len(args) == 1 {
				reportPath = m.Path(args[0])
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Report: reportPath})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
