package domain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

func TestMutate(t *testing.T) {
	t.Run("writes mutants and reports", func(t *testing.T) {
		h := newHarness(t)
		pkgDir := copyExample(t, "basic")
		outDir := filepath.Join(t.TempDir(), "mutants_output")

		err := h.workflow.Mutate(context.Background(), MutateArgs{Config: m.Configuration{
			PackagePath: pkgDir,
			OutputDir:   m.Path(outDir),
		}})
		require.NoError(t, err)

		report, err := adapter.NewLocalReportStore().LoadReport(context.Background(), m.Path(outDir))
		require.NoError(t, err)
		require.NotZero(t, report.Len())

		original := filepath.Join(string(pkgDir), "sources", "basic.move")
		originalText, err := os.ReadFile(original)
		require.NoError(t, err)

		for i, entry := range report.Mutants {
			assert.Equal(t, filepath.Join(outDir, fmt.Sprintf("basic_%d.move", i)), entry.File)
			assert.Equal(t, original, entry.OriginalFile)
			require.Len(t, entry.Mutations, 1)

			mutated, err := os.ReadFile(entry.File)
			require.NoError(t, err)

			// Only the changed place differs from the original.
			mutation := entry.Mutations[0]
			rest := string(mutated)[mutation.ChangedPlace.Start:]
			assert.Equal(t, string(originalText[:mutation.ChangedPlace.Start]), string(mutated)[:mutation.ChangedPlace.Start])
			assert.True(t, strings.HasPrefix(rest, mutation.NewValue))
			assert.Equal(t, string(originalText[mutation.ChangedPlace.End:]), rest[len(mutation.NewValue):])
		}

		_, err = os.Stat(filepath.Join(outDir, adapter.ReportTextName))
		require.NoError(t, err)
		assert.Contains(t, h.out.String(), "written to "+filepath.Join(outDir, "basic_0.move"))
	})

	t.Run("recreates an existing output directory", func(t *testing.T) {
		h := newHarness(t)
		outDir := t.TempDir()
		writeFile(t, filepath.Join(outDir, "stale.move"), "old")

		err := h.workflow.Mutate(context.Background(), MutateArgs{Config: m.Configuration{
			PackagePath: examplePackage("basic"),
			OutputDir:   m.Path(outDir),
		}})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(outDir, "stale.move"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("no overwrite leaves an existing directory untouched", func(t *testing.T) {
		h := newHarness(t)
		outDir := t.TempDir()
		writeFile(t, filepath.Join(outDir, "keep.txt"), "keep")

		err := h.workflow.Mutate(context.Background(), MutateArgs{Config: m.Configuration{
			PackagePath: examplePackage("basic"),
			OutputDir:   m.Path(outDir),
			NoOverwrite: true,
		}})
		require.ErrorIs(t, err, ErrFilesystem)

		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "keep.txt", entries[0].Name())
		assert.Empty(t, h.out.String())
	})

	t.Run("no overwrite with a fresh directory", func(t *testing.T) {
		h := newHarness(t)
		outDir := filepath.Join(t.TempDir(), "fresh")

		err := h.workflow.Mutate(context.Background(), MutateArgs{Config: m.Configuration{
			PackagePath: examplePackage("basic"),
			OutputDir:   m.Path(outDir),
			NoOverwrite: true,
		}})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(outDir, adapter.ReportJSONName))
		require.NoError(t, err)
	})

	t.Run("parse failure writes nothing", func(t *testing.T) {
		h := newHarness(t)
		outDir := filepath.Join(t.TempDir(), "out")

		err := h.workflow.Mutate(context.Background(), MutateArgs{Config: m.Configuration{
			PackagePath: examplePackage("invalid"),
			OutputDir:   m.Path(outDir),
		}})
		require.ErrorIs(t, err, ErrFrontend)

		_, err = os.Stat(outDir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("unknown operator", func(t *testing.T) {
		h := newHarness(t)

		err := h.workflow.Mutate(context.Background(), MutateArgs{Config: m.Configuration{
			PackagePath: examplePackage("basic"),
			OutputDir:   m.Path(filepath.Join(t.TempDir(), "out")),
			Operators:   []m.OperatorName{"swap everything"},
		}})
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("counters are per file stem", func(t *testing.T) {
		h := newHarness(t)
		pkgDir := writePackage(t, map[string]string{
			"a.move": "module 0x1::a { fun f(x: u64, y: u64): bool { x < y } }",
			"b.move": "module 0x1::b { fun f(x: u64, y: u64): bool { x > y && x == y } }",
		})
		outDir := filepath.Join(t.TempDir(), "out")

		err := h.workflow.Mutate(context.Background(), MutateArgs{Config: m.Configuration{
			PackagePath: pkgDir,
			OutputDir:   m.Path(outDir),
			Operators:   []m.OperatorName{m.OperatorRelational},
		}})
		require.NoError(t, err)

		report, err := adapter.NewLocalReportStore().LoadReport(context.Background(), m.Path(outDir))
		require.NoError(t, err)

		var names []string
		for _, entry := range report.Mutants {
			names = append(names, filepath.Base(entry.File))
		}

		assert.Equal(t, []string{"a_0.move", "b_0.move", "b_1.move"}, names)
	})
}

func TestMutationReportDiff(t *testing.T) {
	text := "module 0x1::m {\n    fun f(): u64 {\n        1 + 2\n    }\n}\n"
	source := m.NewSourceFile("m.move", text)
	registry := m.NewRegistry(source)

	start := strings.Index(text, "+")
	mu := m.Mutant{FileHash: source.Hash, Range: m.Range{Start: start, End: start + 1}, Operator: m.OperatorArithmetic, OldValue: "+", NewValue: "-"}

	materialized, err := Materialize(registry, mu)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(text, "1 + 2", "1 - 2", 1), materialized.MutatedSource)

	entry, err := m.NewMutationReport("out/m_0.move", source.Filename, text, materialized.MutatedSource)
	require.NoError(t, err)

	var removed, added []string
	for _, line := range strings.Split(entry.Diff, "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		case strings.HasPrefix(line, "-"):
			removed = append(removed, line)
		case strings.HasPrefix(line, "+"):
			added = append(added, line)
		}
	}

	assert.Equal(t, []string{"-        1 + 2"}, removed)
	assert.Equal(t, []string{"+        1 - 2"}, added)
}

func TestReturnExpressionSubtraction(t *testing.T) {
	fn := "fun f() { return 1 + 2; }"
	text := "module 0x1::m {\n    " + fn + "\n}\n"
	source := m.NewSourceFile("m.move", text)
	registry := m.NewRegistry(source)

	mutants, err := NewMutagen(adapter.NewLocalMoveFileAdapter()).
		GenerateMutants(context.Background(), registry, m.OperatorArithmetic)
	require.NoError(t, err)

	var minus *m.Mutant
	for i := range mutants {
		if mutants[i].NewValue == "-" {
			minus = &mutants[i]
		}
	}

	require.NotNil(t, minus)
	assert.Equal(t, "+", minus.OldValue)

	materialized, err := Materialize(registry, *minus)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(text, fn, "fun f() { return 1 - 2; }", 1), materialized.MutatedSource)

	entry, err := m.NewMutationReport("out/m_0.move", source.Filename, text, materialized.MutatedSource)
	require.NoError(t, err)

	var changed []string
	for _, line := range strings.Split(entry.Diff, "\n") {
		if strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") {
			continue
		}

		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "+") {
			changed = append(changed, line)
		}
	}

	assert.Equal(t, []string{"-    " + fn, "+    fun f() { return 1 - 2; }"}, changed)
}
