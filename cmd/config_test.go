package cmd

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "move-spec-test", configBaseName)
	assert.Equal(t, "move-spec-test.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "files.include_only", includeOnlyConfigKey)
	assert.Equal(t, "files.exclude", excludeConfigKey)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "mutants_output", defaultOutputDir)
	assert.Equal(t, 1, defaultRunParallel)
	assert.Equal(t, "MOVE_SPEC_TEST", envPrefix)
	assert.Equal(t, ".move-spec-test.log", defaultLogFilename)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestParseOperators(t *testing.T) {
	assert.Equal(t,
		[]m.OperatorName{m.OperatorArithmetic, m.OperatorBitwise},
		parseOperators([]string{" arithmetic swap", "", "bitwise swap "}),
	)
	assert.Empty(t, parseOperators(nil))
}

func TestLoadConfigurationDefaults(t *testing.T) {
	// A fresh command rebinds every key to unchanged flags.
	newRootCmd()

	cfg, err := loadConfiguration(context.Background())
	require.NoError(t, err)

	assert.Equal(t, m.Path("."), cfg.PackagePath)
	assert.Equal(t, m.DefaultOutputDir, cfg.Output())
	assert.Empty(t, cfg.IncludeOnlyFiles)
	assert.Empty(t, cfg.Operators)
	assert.False(t, cfg.NoOverwrite)
}
