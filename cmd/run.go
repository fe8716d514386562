package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	"github.com/eigerco/move-spec-testing-old/internal/domain"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

var runParallelFlag int
var runMutationTimeoutFlag int64
var runVerifierFlag string
var runUseGeneratedFlag string
var runShardFlag string

const runLongDescription = `Run mutation testing against the formal verifier.

The original package is verified first; the run stops if it does not pass.
Each mutant is then verified in its own copy of the package. Mutants the
verifier rejects are killed, mutants it accepts survived. The verifier command
may contain {package}, which is replaced by the package directory.`

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run mutation testing against the verifier",
		Long:  runLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(viper.GetString(verifierConfigKey)) == "" {
				return fmt.Errorf("%w: verifier command is empty", domain.ErrConfiguration)
			}

			cfg, err := loadConfiguration(cmd.Context())
			if err != nil {
				return err
			}

			shardIndex, totalShards := parseShardFlag(runShardFlag)

			return workflow.Test(cmd.Context(), domain.TestArgs{
				Config:              cfg,
				Parallel:            viper.GetInt(runParallelConfigKey),
				MutationTimeout:     time.Duration(viper.GetInt64(mutationTimeoutKey)) * time.Second,
				ShardIndex:          uint(shardIndex),
				TotalShardCount:     uint(totalShards),
				UseGeneratedMutants: m.Path(viper.GetString(useGeneratedMutantsConfigKey)),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", defaultRunParallel, "number of parallel workers for mutation testing")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().Int64Var(&runMutationTimeoutFlag, mutationTimeoutFlagName, int64(defaultMutationTimeout.Seconds()), "verifier timeout per mutant in seconds (0 disables it)")
	bindFlagToConfig(cmd.Flags().Lookup(mutationTimeoutFlagName), mutationTimeoutKey)

	cmd.Flags().StringVar(&runVerifierFlag, verifierFlagName, adapter.DefaultVerifierCommand, "verifier command line")
	bindFlagToConfig(cmd.Flags().Lookup(verifierFlagName), verifierConfigKey)

	cmd.Flags().StringVar(&runUseGeneratedFlag, useGeneratedMutantsFlagName, "", "test mutants from an earlier mutate run instead of generating them")
	bindFlagToConfig(cmd.Flags().Lookup(useGeneratedMutantsFlagName), useGeneratedMutantsConfigKey)

	cmd.Flags().StringVarP(&runShardFlag, shardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
