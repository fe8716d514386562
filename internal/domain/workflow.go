package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	"github.com/eigerco/move-spec-testing-old/internal/controller"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// SourcesDir is the directory of a Move package holding its modules.
const SourcesDir = "sources"

// MoveExt is the extension of Move source files.
const MoveExt = ".move"

// EstimateArgs contains the arguments for estimating mutant counts.
type EstimateArgs struct {
	Config m.Configuration
}

// MutateArgs contains the arguments for writing mutants to disk.
type MutateArgs struct {
	Config m.Configuration
}

// ViewArgs contains the arguments for displaying a saved report.
type ViewArgs struct {
	Report m.Path
}

// TestArgs contains the arguments for running mutation tests.
type TestArgs struct {
	Config              m.Configuration
	Parallel            int
	MutationTimeout     time.Duration
	ShardIndex          uint
	TotalShardCount     uint
	UseGeneratedMutants m.Path
}

// Workflow defines the interface for the mutation testing workflow.
type Workflow interface {
	Estimate(ctx context.Context, args EstimateArgs) error
	Mutate(ctx context.Context, args MutateArgs) error
	View(ctx context.Context, args ViewArgs) error
	Test(ctx context.Context, args TestArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	adapter.VerifierAdapter
	controller.UI
	Orchestrator
	Mutagen
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	verifier adapter.VerifierAdapter,
	ui controller.UI,
	orchestrator Orchestrator,
	mutagen Mutagen,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		VerifierAdapter: verifier,
		UI:              ui,
		Orchestrator:    orchestrator,
		Mutagen:         mutagen,
	}
}

// Estimate generates mutants in memory and displays per-file counts.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if err := w.Start(ctx, controller.WithEstimateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	estimations, err := w.estimate(ctx, args.Config)
	if displayErr := w.DisplayEstimation(ctx, estimations, err); displayErr != nil && err == nil {
		return fmt.Errorf("display: %w", displayErr)
	}

	if err != nil {
		return err
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) estimate(ctx context.Context, cfg m.Configuration) ([]controller.FileEstimation, error) {
	ops, err := resolveOperators(cfg.Operators)
	if err != nil {
		return nil, err
	}

	registry, err := w.loadRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mutants, err := w.GenerateMutants(ctx, registry, cfg.Operators...)
	if err != nil {
		return nil, err
	}

	return estimationsFor(registry, ops, mutants), nil
}

// estimationsFor counts mutants per file and operator, in registry and
// catalog order. Files without mutants are listed with zero counts.
func estimationsFor(registry *m.Registry, ops []operator, mutants []m.Mutant) []controller.FileEstimation {
	counts := make(map[string]map[m.OperatorName]int)
	for _, mu := range mutants {
		if counts[mu.FileHash] == nil {
			counts[mu.FileHash] = make(map[m.OperatorName]int)
		}

		counts[mu.FileHash][mu.Operator]++
	}

	files := registry.Files()
	estimations := make([]controller.FileEstimation, 0, len(files))

	for _, file := range files {
		estimation := controller.FileEstimation{File: file.Filename}
		for _, op := range ops {
			estimation.Operators = append(estimation.Operators, controller.OperatorCount{
				Operator: op.name,
				Count:    counts[file.Hash][op.name],
			})
		}

		estimations = append(estimations, estimation)
	}

	return estimations
}

// View loads a saved report and displays it.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.Report)
	if err != nil {
		slog.Error("Failed to load report", "path", args.Report, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	if err := w.DisplayReport(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func packageDirOf(cfg m.Configuration) m.Path {
	if cfg.PackagePath == "" {
		return "."
	}

	return cfg.PackagePath
}

// loadRegistry reads every .move file under the package's sources directory
// that the configuration allows. Filters match either the walked path or the
// path relative to the package directory.
func (w *workflow) loadRegistry(ctx context.Context, cfg m.Configuration) (*m.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	packageDir := packageDirOf(cfg)

	info, err := w.FileInfo(ctx, packageDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: package directory %s is not accessible", ErrConfiguration, packageDir)
	}

	sourcesDir := w.JoinPath(ctx, string(packageDir), SourcesDir)
	registry := m.NewRegistry()

	err = w.Walk(ctx, sourcesDir, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != MoveExt {
			return nil
		}

		rel, err := w.RelPath(ctx, packageDir, m.Path(path))
		if err != nil {
			return err
		}

		if !cfg.Allows(m.Path(path), rel) {
			slog.Debug("Skipping filtered source", "file", path)
			return nil
		}

		content, err := w.ReadFile(ctx, m.Path(path))
		if err != nil {
			return err
		}

		file := m.NewSourceFile(m.Path(path), string(content))
		if existing, ok := registry.Lookup(file.Hash); ok {
			slog.Warn("Skipping file with identical content", "file", path, "same_as", existing.Filename)
			return nil
		}

		registry.Add(file)

		return nil
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no %s directory in %s", ErrFrontend, SourcesDir, packageDir)
		}

		return nil, fmt.Errorf("%w: read sources: %w", ErrFrontend, err)
	}

	slog.Debug("Loaded sources", "package", packageDir, "files", registry.Len())

	return registry, nil
}
