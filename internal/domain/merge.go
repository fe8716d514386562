package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/eigerco/move-spec-testing-old/internal/controller"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// ShardDirPrefix names the per-shard result directories under the output directory.
const ShardDirPrefix = "shard_"

// MergeArgs contains the arguments for combining sharded test results.
type MergeArgs struct {
	Reports m.Path
}

func shardDirName(index uint) string {
	return fmt.Sprintf("%s%d", ShardDirPrefix, index)
}

// Merge loads the results every shard saved under args.Reports and displays
// a single summary. A mutant reported by two shards means the shards were
// produced from different reports or shard counts, so it is rejected.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	dirs, err := w.shardDirs(ctx, args.Reports)
	if err != nil {
		return err
	}

	if len(dirs) == 0 {
		return fmt.Errorf("%w: no %s* directories in %s", ErrConfiguration, ShardDirPrefix, args.Reports)
	}

	var (
		merged []m.Result
		seen   = make(map[int]m.Path)
	)

	for _, dir := range dirs {
		results, err := w.LoadResults(ctx, dir)
		if err != nil {
			slog.Error("Failed to load shard results", "dir", dir, "error", err)
			return fmt.Errorf("%w: load shard results: %w", ErrConfiguration, err)
		}

		for _, result := range results {
			if other, ok := seen[result.Index]; ok {
				return fmt.Errorf("%w: mutant #%d reported by both %s and %s", ErrConfiguration, result.Index, other, dir)
			}

			seen[result.Index] = dir
		}

		merged = append(merged, results...)
	}

	sortResults(merged)
	summary, survived := summarize(merged)

	slog.Info("Merged shard results",
		"shards", len(dirs), "total", summary.Total, "killed", summary.Killed,
		"survived", summary.Survived, "inconclusive", summary.Inconclusive)

	if err := w.Start(ctx, controller.WithMergeMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	w.DisplaySummary(ctx, summary, survived)
	w.Wait(ctx)

	return nil
}

// shardDirs lists the direct subdirectories of root that hold shard results.
func (w *workflow) shardDirs(ctx context.Context, root m.Path) ([]m.Path, error) {
	info, err := w.FileInfo(ctx, root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: reports directory %s is not accessible", ErrConfiguration, root)
	}

	var dirs []m.Path

	err = w.Walk(ctx, root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() || path == string(root) {
			return nil
		}

		if strings.HasPrefix(info.Name(), ShardDirPrefix) {
			dirs = append(dirs, m.Path(path))
		}

		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list shards: %w", ErrFilesystem, err)
	}

	return dirs, nil
}
