package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eigerco/move-spec-testing-old/internal/controller"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	pkg "github.com/eigerco/move-spec-testing-old/pkg"
)

// indexedEntry is a report entry with its position in the report.
type indexedEntry struct {
	index int
	entry m.MutationReport
}

// Test verifies the unmodified package, then every mutant of the report and
// displays the kill ratio. A failing baseline aborts before any mutant runs.
func (w *workflow) Test(ctx context.Context, args TestArgs) error {
	cfg := args.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if _, err := resolveOperators(cfg.Operators); err != nil {
		return err
	}

	packageDir := packageDirOf(cfg)

	if err := w.verifyBaseline(ctx, packageDir, args.MutationTimeout); err != nil {
		return err
	}

	report, cleanup, err := w.mutantsFor(ctx, args)
	if err != nil {
		return err
	}

	defer cleanup()

	entries := shardEntries(report.Mutants, args.ShardIndex, args.TotalShardCount)
	threads := max(args.Parallel, 1)

	if err := w.Start(ctx, controller.WithTestMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	w.DisplayConcurrencyInfo(ctx, threads, int(args.ShardIndex), int(max(args.TotalShardCount, 1)))
	w.DisplayUpcomingTestsInfo(ctx, len(entries))

	results, err := w.testEntries(ctx, packageDir, entries, threads, args)
	if err != nil {
		return fmt.Errorf("run mutation tests: %w", err)
	}

	defer func() {
		if err := results.Remove(); err != nil {
			slog.Error("Failed to remove results spill", "error", err)
		}
	}()

	ordered, err := orderedResults(results)
	if err != nil {
		return fmt.Errorf("collect results: %w", err)
	}

	if args.TotalShardCount > 1 {
		shardDir := w.JoinPath(ctx, string(cfg.Output()), shardDirName(args.ShardIndex))
		if err := w.SaveResults(ctx, shardDir, ordered); err != nil {
			slog.Error("Failed to save shard results", "dir", shardDir, "error", err)
			return fmt.Errorf("%w: save shard results: %w", ErrFilesystem, err)
		}

		slog.Info("Saved shard results", "dir", shardDir, "results", len(ordered))
	}

	summary, survived := summarize(ordered)

	slog.Info("Mutation testing finished",
		"total", summary.Total, "killed", summary.Killed,
		"survived", summary.Survived, "inconclusive", summary.Inconclusive)

	w.DisplaySummary(ctx, summary, survived)
	w.Wait(ctx)

	return nil
}

// verifyBaseline runs the verifier on the unmodified package under the same
// timeout as a single mutant.
func (w *workflow) verifyBaseline(ctx context.Context, packageDir m.Path, timeout time.Duration) error {
	slog.Info("Verifying original package", "package", packageDir)

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if _, err := w.Verify(ctx, packageDir); err != nil {
		slog.Error("Original package verification failed", "package", packageDir, "error", err)
		return fmt.Errorf("%w: %w", ErrVerifierBaseline, err)
	}

	return nil
}

// mutantsFor returns the report to test: either a previously generated one or
// a fresh one generated into a temporary directory. cleanup removes whatever
// mutantsFor created.
func (w *workflow) mutantsFor(ctx context.Context, args TestArgs) (*m.Report, func(), error) {
	noop := func() {}

	if args.UseGeneratedMutants != "" {
		report, err := w.LoadReport(ctx, args.UseGeneratedMutants)
		if err != nil {
			slog.Error("Failed to load generated mutants", "path", args.UseGeneratedMutants, "error", err)
			return nil, noop, fmt.Errorf("%w: load generated mutants: %w", ErrConfiguration, err)
		}

		return report, noop, nil
	}

	tmpDir, err := w.CreateTempDir(ctx, "move-spec-test-mutants-*")
	if err != nil {
		return nil, noop, fmt.Errorf("%w: create temp dir: %w", ErrFilesystem, err)
	}

	cleanup := func() {
		if err := w.RemoveAll(ctx, tmpDir); err != nil {
			slog.Error("Failed to cleanup temp dir", "tmpDir", tmpDir, "error", err)
		}
	}

	cfg := args.Config
	cfg.NoOverwrite = false

	report, err := w.generateInto(ctx, cfg, tmpDir, false)
	if err != nil {
		cleanup()
		return nil, noop, err
	}

	return report, cleanup, nil
}

// shardEntries keeps the entries whose report index falls into the shard.
// A zero shard count keeps everything.
func shardEntries(entries []m.MutationReport, shardIndex uint, totalShardCount uint) []indexedEntry {
	var shard []indexedEntry

	for i, entry := range entries {
		if totalShardCount == 0 || uint(i)%totalShardCount == shardIndex {
			shard = append(shard, indexedEntry{index: i, entry: entry})
		}
	}

	return shard
}

// testEntries verifies the entries on a bounded pool of workers. Each worker
// holds a slot number for display while it runs.
func (w *workflow) testEntries(ctx context.Context, packageDir m.Path, entries []indexedEntry, threads int, args TestArgs) (pkg.FileSpill[m.Result], error) {
	results, err := pkg.NewFileSpill[m.Result]()
	if err != nil {
		return nil, err
	}

	slots := make(chan int, threads)
	for i := range threads {
		slots <- i
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, item := range entries {
		group.Go(func() error {
			threadID := <-slots
			defer func() { slots <- threadID }()

			w.DisplayStartingTestInfo(groupCtx, item.index, item.entry, threadID)

			result, err := w.TestMutant(groupCtx, packageDir, item.index, item.entry, args.MutationTimeout)
			if err != nil {
				return err
			}

			if err := results.Append(result); err != nil {
				return err
			}

			w.DisplayCompletedTestInfo(groupCtx, result)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		_ = results.Remove()
		return nil, err
	}

	if err := results.Close(); err != nil {
		_ = results.Remove()
		return nil, err
	}

	return results, nil
}
