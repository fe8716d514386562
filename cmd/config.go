package cmd

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	"github.com/eigerco/move-spec-testing-old/internal/domain"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "move-spec-test"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	packageDirFlagName        = "package-dir"
	outputFlagName            = "output"
	noOverwriteFlagName       = "no-overwrite"
	includeOnlyFlagName       = "include-only"
	excludeFlagName           = "exclude"
	operatorsFlagName         = "operators"
	verboseFlagName           = "verbose"
	configurationFileFlagName = "configuration-file"

	runParallelFlagName         = "parallel"
	mutationTimeoutFlagName     = "mutation-timeout"
	verifierFlagName            = "verifier"
	useGeneratedMutantsFlagName = "use-generated-mutants"
	shardFlagName               = "shard"

	packageDirConfigKey        = "package_dir"
	outputConfigKey            = "output"
	noOverwriteConfigKey       = "no_overwrite"
	includeOnlyConfigKey       = "files.include_only"
	excludeConfigKey           = "files.exclude"
	operatorsConfigKey         = "operators"
	configurationFileConfigKey = "configuration_file"

	runParallelConfigKey         = "run.parallel"
	mutationTimeoutKey           = "run.mutation_timeout"
	verifierConfigKey            = "run.verifier"
	useGeneratedMutantsConfigKey = "run.use_generated_mutants"

	defaultPackageDir      = "."
	defaultOutputDir       = string(m.DefaultOutputDir)
	defaultNoOverwrite     = false
	defaultRunParallel     = 1
	defaultMutationTimeout = 5 * time.Minute

	envPrefix = "MOVE_SPEC_TEST"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".move-spec-test.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	// Variables from .env never override the real environment.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(packageDirConfigKey, defaultPackageDir)
	viper.SetDefault(outputConfigKey, defaultOutputDir)
	viper.SetDefault(noOverwriteConfigKey, defaultNoOverwrite)
	viper.SetDefault(includeOnlyConfigKey, []string{})
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(operatorsConfigKey, []string{})
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(mutationTimeoutKey, int64(defaultMutationTimeout.Seconds()))
	viper.SetDefault(verifierConfigKey, adapter.DefaultVerifierCommand)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// loadConfiguration assembles the mutator configuration. A configuration
// file, when given, replaces everything set through flags, env or
// move-spec-test.yaml.
func loadConfiguration(ctx context.Context) (m.Configuration, error) {
	if path := viper.GetString(configurationFileConfigKey); path != "" {
		cfg, err := adapter.LoadConfigurationFile(ctx, m.Path(path))
		if err != nil {
			return m.Configuration{}, errors.Join(domain.ErrConfiguration, err)
		}

		return cfg, nil
	}

	return m.Configuration{
		PackagePath:      m.Path(viper.GetString(packageDirConfigKey)),
		IncludeOnlyFiles: parsePaths(viper.GetStringSlice(includeOnlyConfigKey)),
		ExcludeFiles:     parsePaths(viper.GetStringSlice(excludeConfigKey)),
		OutputDir:        m.Path(viper.GetString(outputConfigKey)),
		NoOverwrite:      viper.GetBool(noOverwriteConfigKey),
		Operators:        parseOperators(viper.GetStringSlice(operatorsConfigKey)),
	}, nil
}

func parseOperators(values []string) []m.OperatorName {
	operators := make([]m.OperatorName, 0, len(values))

	for _, v := range values {
		if name := strings.TrimSpace(v); name != "" {
			operators = append(operators, m.OperatorName(name))
		}
	}

	return operators
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
