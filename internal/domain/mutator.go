package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/eigerco/move-spec-testing-old/internal/controller"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// Mutate generates mutants for the configured package and writes them, along
// with report.json and report.txt, into the output directory.
func (w *workflow) Mutate(ctx context.Context, args MutateArgs) error {
	if err := w.Start(ctx, controller.WithMutateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	if _, err := w.generateInto(ctx, args.Config, args.Config.Output(), true); err != nil {
		return err
	}

	w.Wait(ctx)

	return nil
}

// generateInto runs the whole generation pipeline and stores its result in
// outputDir. The no-overwrite policy is checked before any other work.
func (w *workflow) generateInto(ctx context.Context, cfg m.Configuration, outputDir m.Path, announce bool) (*m.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if _, err := resolveOperators(cfg.Operators); err != nil {
		return nil, err
	}

	if cfg.NoOverwrite {
		if _, err := w.FileInfo(ctx, outputDir); err == nil {
			return nil, fmt.Errorf("%w: output directory %s already exists", ErrFilesystem, outputDir)
		}
	}

	registry, err := w.loadRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mutants, err := w.GenerateMutants(ctx, registry, cfg.Operators...)
	if err != nil {
		return nil, err
	}

	if err := w.prepareOutputDir(ctx, outputDir); err != nil {
		return nil, err
	}

	report, err := w.writeMutants(ctx, registry, mutants, outputDir, announce)
	if err != nil {
		return nil, err
	}

	if err := w.SaveReport(ctx, outputDir, report); err != nil {
		slog.Error("Failed to save report", "dir", outputDir, "error", err)
		return nil, fmt.Errorf("%w: save report: %w", ErrFilesystem, err)
	}

	slog.Info("Mutants generated", "count", report.Len(), "output", outputDir)

	return report, nil
}

// prepareOutputDir recreates outputDir so a run never mixes with leftovers.
func (w *workflow) prepareOutputDir(ctx context.Context, outputDir m.Path) error {
	if err := w.RemoveAll(ctx, outputDir); err != nil {
		slog.Error("Failed to clear output dir", "dir", outputDir, "error", err)
		return fmt.Errorf("%w: clear %s: %w", ErrFilesystem, outputDir, err)
	}

	if err := w.MkdirAll(ctx, outputDir); err != nil {
		slog.Error("Failed to create output dir", "dir", outputDir, "error", err)
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, outputDir, err)
	}

	return nil
}

// writeMutants materializes every mutant as <stem>_<i>.move, with i counting
// from zero per file stem, and collects the report entries in order. Files
// sharing a stem in different directories share the counter, so names never
// collide.
func (w *workflow) writeMutants(ctx context.Context, registry *m.Registry, mutants []m.Mutant, outputDir m.Path, announce bool) (*m.Report, error) {
	report := m.NewReport()
	counters := make(map[string]int)

	for _, mu := range mutants {
		source, ok := registry.Lookup(mu.FileHash)
		if !ok {
			return nil, fmt.Errorf("no source file with hash %s", mu.FileHash)
		}

		materialized, err := Materialize(registry, mu)
		if err != nil {
			return nil, err
		}

		stem := strings.TrimSuffix(filepath.Base(string(source.Filename)), MoveExt)
		name := fmt.Sprintf("%s_%d%s", stem, counters[stem], MoveExt)
		counters[stem]++

		path := w.JoinPath(ctx, string(outputDir), name)
		if err := w.WriteFile(ctx, path, []byte(materialized.MutatedSource), 0o600); err != nil {
			slog.Error("Failed to write mutant", "path", path, "error", err)
			return nil, fmt.Errorf("%w: write mutant %s: %w", ErrFilesystem, path, err)
		}

		entry, err := m.NewMutationReport(path, source.Filename, source.Text, materialized.MutatedSource)
		if err != nil {
			return nil, err
		}

		entry.AddMutation(m.NewMutation(mu))
		report.AddEntry(entry)

		if announce {
			w.DisplayMutantWritten(ctx, entry)
		}
	}

	return report, nil
}
