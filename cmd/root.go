// Package cmd provides the root command and CLI setup for move-spec-test.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	"github.com/eigerco/move-spec-testing-old/internal/controller"
	"github.com/eigerco/move-spec-testing-old/internal/domain"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

var moveFileAdapter adapter.MoveFileAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var verifier adapter.VerifierAdapter
var orchestrator domain.Orchestrator
var mutagen domain.Mutagen
var workflow domain.Workflow
var ui controller.UI

var packageDirFlag string
var outputDirFlag string
var noOverwriteFlag bool
var includeOnlyFiles []string
var excludeFiles []string
var operatorsFlag []string
var verboseFlag bool
var configurationFileFlag string

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	moveFileAdapter = adapter.NewLocalMoveFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewLocalReportStore()
	verifier = newConfiguredVerifier(func() string { return viper.GetString(verifierConfigKey) })
	orchestrator = domain.NewOrchestrator(fsAdapter, verifier)
	mutagen = domain.NewMutagen(moveFileAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		verifier,
		ui,
		orchestrator,
		mutagen,
	)
}

const rootLongDescription = `move-spec-test assesses the quality of Move specifications by introducing
small changes (mutants) into a package's source code and checking whether the
formal verifier still accepts the package. A mutant the verifier accepts
points at behaviour the specifications do not pin down.

Configuration is read from flags, MOVE_SPEC_TEST_* environment variables,
a .env file and move-spec-test.yaml in the working directory.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "move-spec-test",
		Short:         "Mutation testing for Move specifications",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&packageDirFlag, packageDirFlagName, defaultPackageDir, "path to the Move package")
	bindFlagToConfig(flags.Lookup(packageDirFlagName), packageDirConfigKey)

	flags.StringVarP(&outputDirFlag, outputFlagName, "o", defaultOutputDir, "directory for mutants and reports")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputConfigKey)

	flags.BoolVar(&noOverwriteFlag, noOverwriteFlagName, defaultNoOverwrite, "fail instead of replacing an existing output directory")
	bindFlagToConfig(flags.Lookup(noOverwriteFlagName), noOverwriteConfigKey)

	flags.StringArrayVarP(&includeOnlyFiles, includeOnlyFlagName, "i", nil, "mutate only these files (can be repeated)")
	bindFlagToConfig(flags.Lookup(includeOnlyFlagName), includeOnlyConfigKey)

	flags.StringArrayVarP(&excludeFiles, excludeFlagName, "x", nil, "never mutate these files (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.StringSliceVar(&operatorsFlag, operatorsFlagName, nil, "comma separated mutation operators to apply (default: all)")
	bindFlagToConfig(flags.Lookup(operatorsFlagName), operatorsConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&configurationFileFlag, configurationFileFlagName, "", "YAML or JSON mutator configuration replacing the flags above")
	bindFlagToConfig(flags.Lookup(configurationFileFlagName), configurationFileConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
