package domain

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	adaptermocks "github.com/eigerco/move-spec-testing-old/internal/adapter/mocks"
	"github.com/eigerco/move-spec-testing-old/internal/controller"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

type harness struct {
	workflow *workflow
	verifier *adaptermocks.MockVerifierAdapter
	out      *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	verifier := adaptermocks.NewMockVerifierAdapter(t)

	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	wf := NewWorkflow(
		fsAdapter,
		adapter.NewLocalReportStore(),
		verifier,
		controller.NewSimpleUI(cmd),
		NewOrchestrator(fsAdapter, verifier),
		NewMutagen(adapter.NewLocalMoveFileAdapter()),
	)

	return &harness{workflow: wf.(*workflow), verifier: verifier, out: &out}
}

func examplePackage(name string) m.Path {
	return m.Path(filepath.Join("..", "..", "examples", name))
}

// copyExample copies an example package into a fresh temporary directory.
func copyExample(t *testing.T, name string) m.Path {
	t.Helper()

	dst := t.TempDir()
	err := adapter.NewLocalSourceFSAdapter().CopyDir(context.Background(), examplePackage(name), m.Path(dst))
	require.NoError(t, err)

	return m.Path(dst)
}

// writePackage creates a package with the given sources, keyed by path
// relative to the sources directory.
func writePackage(t *testing.T, sources map[string]string) m.Path {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, adapter.ManifestName), "[package]\nname = \"test\"\n")

	for name, text := range sources {
		writeFile(t, filepath.Join(dir, SourcesDir, name), text)
	}

	return m.Path(dir)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadRegistry(t *testing.T) {
	ctx := context.Background()

	pkgDir := writePackage(t, map[string]string{
		"a.move":        "module 0x1::a { fun f(): u64 { 1 } }",
		"nested/b.move": "module 0x1::b { fun f(): u64 { 2 } }",
		"notes.txt":     "not a module",
	})

	t.Run("collects move files recursively", func(t *testing.T) {
		h := newHarness(t)

		registry, err := h.workflow.loadRegistry(ctx, m.Configuration{PackagePath: pkgDir})
		require.NoError(t, err)

		files := registry.Files()
		require.Len(t, files, 2)
		assert.Equal(t, filepath.Join(string(pkgDir), "sources", "a.move"), string(files[0].Filename))
		assert.Equal(t, filepath.Join(string(pkgDir), "sources", "nested", "b.move"), string(files[1].Filename))
	})

	t.Run("include-only restricts to the listed files", func(t *testing.T) {
		h := newHarness(t)

		registry, err := h.workflow.loadRegistry(ctx, m.Configuration{
			PackagePath:      pkgDir,
			IncludeOnlyFiles: []m.Path{"sources/a.move"},
		})
		require.NoError(t, err)
		require.Equal(t, 1, registry.Len())
		assert.Equal(t, "a.move", filepath.Base(string(registry.Files()[0].Filename)))
	})

	t.Run("exclude accepts full paths", func(t *testing.T) {
		h := newHarness(t)

		registry, err := h.workflow.loadRegistry(ctx, m.Configuration{
			PackagePath:  pkgDir,
			ExcludeFiles: []m.Path{m.Path(filepath.Join(string(pkgDir), "sources", "a.move"))},
		})
		require.NoError(t, err)
		require.Equal(t, 1, registry.Len())
		assert.Equal(t, "b.move", filepath.Base(string(registry.Files()[0].Filename)))
	})

	t.Run("exclude wins over include-only", func(t *testing.T) {
		h := newHarness(t)

		registry, err := h.workflow.loadRegistry(ctx, m.Configuration{
			PackagePath:      pkgDir,
			IncludeOnlyFiles: []m.Path{"sources/a.move", "sources/nested/b.move"},
			ExcludeFiles:     []m.Path{"sources/a.move"},
		})
		require.NoError(t, err)
		require.Equal(t, 1, registry.Len())
		assert.Equal(t, "b.move", filepath.Base(string(registry.Files()[0].Filename)))
	})

	t.Run("invalid filters", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.workflow.loadRegistry(ctx, m.Configuration{
			PackagePath:      pkgDir,
			IncludeOnlyFiles: []m.Path{"sources/a.move"},
			ExcludeFiles:     []m.Path{"sources/a.move"},
		})
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("missing package", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.workflow.loadRegistry(ctx, m.Configuration{PackagePath: m.Path(filepath.Join(t.TempDir(), "nope"))})
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("missing sources directory", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.workflow.loadRegistry(ctx, m.Configuration{PackagePath: m.Path(t.TempDir())})
		require.ErrorIs(t, err, ErrFrontend)
	})

	t.Run("identical content is kept once and logged", func(t *testing.T) {
		h := newHarness(t)

		var logs bytes.Buffer

		previous := slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
		t.Cleanup(func() { slog.SetDefault(previous) })

		text := "module 0x1::a { fun f(): u64 { 1 + 2 } }"
		dupDir := writePackage(t, map[string]string{
			"a.move": text,
			"b.move": text,
		})

		registry, err := h.workflow.loadRegistry(ctx, m.Configuration{PackagePath: dupDir})
		require.NoError(t, err)
		require.Equal(t, 1, registry.Len())
		assert.Equal(t, "a.move", filepath.Base(string(registry.Files()[0].Filename)))

		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "Skipping file with identical content")
		assert.Contains(t, logs.String(), filepath.Join(string(dupDir), SourcesDir, "b.move"))
	})

	t.Run("empty package", func(t *testing.T) {
		h := newHarness(t)

		registry, err := h.workflow.loadRegistry(ctx, m.Configuration{PackagePath: examplePackage("empty")})
		require.NoError(t, err)
		assert.Equal(t, 0, registry.Len())
	})
}

func TestEstimate(t *testing.T) {
	t.Run("lists every file with per-operator counts", func(t *testing.T) {
		h := newHarness(t)

		err := h.workflow.Estimate(context.Background(), EstimateArgs{Config: m.Configuration{PackagePath: examplePackage("vault")}})
		require.NoError(t, err)

		assert.Contains(t, h.out.String(), "vault.move")
		assert.Contains(t, h.out.String(), string(m.OperatorArithmetic))
	})

	t.Run("estimations follow catalog order", func(t *testing.T) {
		source := m.NewSourceFile("a.move", "x")
		registry := m.NewRegistry(source)

		ops, err := resolveOperators([]m.OperatorName{m.OperatorLiteral, m.OperatorArithmetic})
		require.NoError(t, err)

		mutants := []m.Mutant{
			{FileHash: source.Hash, Operator: m.OperatorLiteral},
			{FileHash: source.Hash, Operator: m.OperatorLiteral},
			{FileHash: source.Hash, Operator: m.OperatorArithmetic},
		}

		estimations := estimationsFor(registry, ops, mutants)
		require.Len(t, estimations, 1)
		assert.Equal(t, []controller.OperatorCount{
			{Operator: m.OperatorArithmetic, Count: 1},
			{Operator: m.OperatorLiteral, Count: 2},
		}, estimations[0].Operators)
		assert.Equal(t, 3, estimations[0].Total())
	})

	t.Run("parse errors are reported", func(t *testing.T) {
		h := newHarness(t)

		err := h.workflow.Estimate(context.Background(), EstimateArgs{Config: m.Configuration{PackagePath: examplePackage("invalid")}})
		require.ErrorIs(t, err, ErrFrontend)
		assert.Contains(t, h.out.String(), "estimation error")
	})
}

func TestView(t *testing.T) {
	t.Run("displays a saved report", func(t *testing.T) {
		h := newHarness(t)
		dir := t.TempDir()

		report := m.NewReport()
		report.AddEntry(m.MutationReport{
			File:         "out/a_0.move",
			OriginalFile: "sources/a.move",
			Mutations:    []m.Mutation{{ChangedPlace: m.Range{Start: 1, End: 2}, OperatorName: string(m.OperatorArithmetic), OldValue: "+", NewValue: "-"}},
		})
		require.NoError(t, adapter.NewLocalReportStore().SaveReport(context.Background(), m.Path(dir), report))

		require.NoError(t, h.workflow.View(context.Background(), ViewArgs{Report: m.Path(dir)}))
		assert.Contains(t, h.out.String(), "out/a_0.move")
	})

	t.Run("missing report", func(t *testing.T) {
		h := newHarness(t)

		err := h.workflow.View(context.Background(), ViewArgs{Report: m.Path(filepath.Join(t.TempDir(), "report.json"))})
		require.Error(t, err)
	})
}
