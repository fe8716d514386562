package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

func TestMerge_CombinesShards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	pkgDir := writePackage(t, map[string]string{"m.move": comparisons})
	outDir := m.Path(filepath.Join(t.TempDir(), "out"))

	h.verifier.On("Verify", mock.Anything, pkgDir).Return("", nil).Twice()
	h.verifier.On("Verify", mock.Anything, notPackage(pkgDir)).
		Return(func(_ context.Context, dir m.Path) (string, error) {
			text, err := os.ReadFile(filepath.Join(string(dir), SourcesDir, "m.move"))
			if err != nil {
				return "", err
			}

			if strings.Contains(string(text), ">=") || strings.Contains(string(text), "<=") {
				return "", &adapter.VerificationError{ExitCode: 1}
			}

			return "", nil
		}).
		Times(3)

	cfg := relationalConfig(pkgDir)
	cfg.OutputDir = outDir

	for shard := range uint(2) {
		require.NoError(t, h.workflow.Test(ctx, TestArgs{Config: cfg, ShardIndex: shard, TotalShardCount: 2}))
	}

	// Unrelated entries next to the shards are ignored.
	writeFile(t, filepath.Join(string(outDir), "notes", adapter.ResultsJSONName), "[]")
	writeFile(t, filepath.Join(string(outDir), adapter.ReportJSONName), "{}")

	h.out.Reset()

	require.NoError(t, h.workflow.Merge(ctx, MergeArgs{Reports: outDir}))

	out := h.out.String()
	assert.Contains(t, out, "Total mutants: 3\nKilled mutants: 2\n")
	assert.Contains(t, out, "Kill ratio: 66.67%")
	assert.Contains(t, out, "+        a < b && a > b || a != b")
	assert.Equal(t, 1, strings.Count(out, "Survived: "))
}

func TestMerge_Errors(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewLocalReportStore()

	t.Run("missing directory", func(t *testing.T) {
		h := newHarness(t)

		err := h.workflow.Merge(ctx, MergeArgs{Reports: m.Path(filepath.Join(t.TempDir(), "missing"))})
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("no shard directories", func(t *testing.T) {
		h := newHarness(t)

		err := h.workflow.Merge(ctx, MergeArgs{Reports: m.Path(t.TempDir())})
		require.ErrorIs(t, err, ErrConfiguration)
		assert.Empty(t, h.out.String())
	})

	t.Run("same mutant in two shards", func(t *testing.T) {
		h := newHarness(t)
		dir := t.TempDir()

		require.NoError(t, store.SaveResults(ctx, m.Path(filepath.Join(dir, "shard_0")), []m.Result{{Index: 0, Status: m.Killed}}))
		require.NoError(t, store.SaveResults(ctx, m.Path(filepath.Join(dir, "shard_1")), []m.Result{{Index: 0, Status: m.Survived}}))

		err := h.workflow.Merge(ctx, MergeArgs{Reports: m.Path(dir)})
		require.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "mutant #0")
	})

	t.Run("shard without results", func(t *testing.T) {
		h := newHarness(t)
		dir := t.TempDir()

		require.NoError(t, os.MkdirAll(filepath.Join(dir, "shard_0"), 0o755))

		err := h.workflow.Merge(ctx, MergeArgs{Reports: m.Path(dir)})
		require.ErrorIs(t, err, ErrConfiguration)
	})
}
