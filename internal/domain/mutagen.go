// Package domain contains the core mutation testing workflow and logic.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

// Mutagen generates mutants for the files of a registry.
type Mutagen interface {
	GenerateMutants(ctx context.Context, registry *m.Registry, operators ...m.OperatorName) ([]m.Mutant, error)
}

type mutagen struct {
	adapter.MoveFileAdapter
}

// NewMutagen creates a new Mutagen instance.
func NewMutagen(moveFileAdapter adapter.MoveFileAdapter) Mutagen {
	return &mutagen{MoveFileAdapter: moveFileAdapter}
}

// GenerateMutants parses every file of the registry and applies the selected
// operators to each node in pre-order. Files are processed concurrently, but
// the result is ordered by registry order and then traversal order, so equal
// input always yields the same sequence.
func (mg *mutagen) GenerateMutants(ctx context.Context, registry *m.Registry, operators ...m.OperatorName) ([]m.Mutant, error) {
	ops, err := resolveOperators(operators)
	if err != nil {
		return nil, err
	}

	if mg.MoveFileAdapter == nil {
		return nil, fmt.Errorf("missing move file adapter")
	}

	files := registry.Files()
	slots := make([][]m.Mutant, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, file := range files {
		group.Go(func() error {
			tree, err := mg.Parse(groupCtx, file.Filename, []byte(file.Text))
			if err != nil {
				slog.Error("Failed to parse source", "file", file.Filename, "error", err)
				return fmt.Errorf("%w: parse %s: %w", ErrFrontend, file.Filename, err)
			}

			slots[i] = generateForFile(tree, file, ops)
			slog.Debug("Generated mutants", "file", file.Filename, "count", len(slots[i]))

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var mutants []m.Mutant
	for _, slot := range slots {
		mutants = append(mutants, slot...)
	}

	return mutants, nil
}

// generateForFile walks one syntax tree. Mutants sharing file, range, operator
// and replacement are reported once; the operator is part of that key, so two
// operators proposing the same text at the same place both survive.
func generateForFile(tree *move.File, source m.SourceFile, ops []operator) []m.Mutant {
	seen := make(map[m.Key]struct{})

	var mutants []m.Mutant

	move.Inspect(tree, func(n move.Node) bool {
		for _, op := range ops {
			for _, mu := range op.generate(n, source) {
				if _, dup := seen[mu.Key()]; dup {
					continue
				}

				seen[mu.Key()] = struct{}{}
				mutants = append(mutants, mu)
			}
		}

		return true
	})

	return mutants
}
