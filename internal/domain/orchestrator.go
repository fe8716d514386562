package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// Orchestrator coordinates applying a mutant to a temporary copy of the
// package and running the verifier to determine whether the mutant is killed
// or survives.
type Orchestrator interface {
	TestMutant(ctx context.Context, packageDir m.Path, index int, entry m.MutationReport, timeout time.Duration) (m.Result, error)
}

type orchestrator struct {
	fsAdapter adapter.SourceFSAdapter
	verifier  adapter.VerifierAdapter
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem and verifier adapters.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, verifier adapter.VerifierAdapter) Orchestrator {
	return &orchestrator{
		fsAdapter: fsAdapter,
		verifier:  verifier,
	}
}

// TestMutant verifies one report entry. Verifier failures become outcomes;
// only workspace preparation errors are returned.
func (to *orchestrator) TestMutant(ctx context.Context, packageDir m.Path, index int, entry m.MutationReport, timeout time.Duration) (m.Result, error) {
	result := m.Result{Index: index, Entry: entry}

	if err := ctx.Err(); err != nil {
		result.Status = m.Inconclusive
		result.Message = err.Error()

		return result, nil
	}

	mutated, err := to.fsAdapter.ReadFile(ctx, m.Path(entry.File))
	if err != nil {
		slog.Error("Failed to read mutant", "file", entry.File, "error", err)
		return m.Result{}, fmt.Errorf("%w: read mutant %s: %w", ErrFilesystem, entry.File, err)
	}

	relSourcePath, err := to.relSourcePath(ctx, packageDir, m.Path(entry.OriginalFile))
	if err != nil {
		return m.Result{}, err
	}

	tmpDir, err := to.prepareWorkspace(ctx, packageDir)
	if tmpDir != "" {
		defer to.cleanupTempDir(ctx, tmpDir)
	}

	if err != nil {
		return m.Result{}, err
	}

	target := to.fsAdapter.JoinPath(ctx, string(tmpDir), string(relSourcePath))
	if err := to.writeMutatedFile(ctx, target, mutated); err != nil {
		return m.Result{}, err
	}

	result.Status, result.Message = to.verify(ctx, tmpDir, timeout)
	slog.Debug("Verified mutant", "index", index, "file", entry.File, "status", result.Status)

	return result, nil
}

func (to *orchestrator) relSourcePath(ctx context.Context, packageDir, originalFile m.Path) (m.Path, error) {
	rel, err := to.fsAdapter.RelPath(ctx, packageDir, originalFile)
	if err != nil {
		slog.Error("Failed to get relative source path", "packageDir", packageDir, "originalFile", originalFile, "error", err)
		return "", fmt.Errorf("%w: relative path of %s: %w", ErrConfiguration, originalFile, err)
	}

	if rel == ".." || strings.HasPrefix(string(rel), ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside of package %s", ErrConfiguration, originalFile, packageDir)
	}

	return rel, nil
}

func (to *orchestrator) prepareWorkspace(ctx context.Context, packageDir m.Path) (m.Path, error) {
	tmpDir, err := to.fsAdapter.CreateTempDir(ctx, "move-spec-test-mutant-*")
	if err != nil {
		slog.Error("Failed to create temp dir", "error", err)
		return "", fmt.Errorf("%w: create temp dir: %w", ErrFilesystem, err)
	}

	if err := to.fsAdapter.CopyDir(ctx, packageDir, tmpDir); err != nil {
		slog.Error("Failed to copy package to temp dir", "packageDir", packageDir, "tmpDir", tmpDir, "error", err)
		return tmpDir, fmt.Errorf("%w: copy package: %w", ErrFilesystem, err)
	}

	return tmpDir, nil
}

func (to *orchestrator) writeMutatedFile(ctx context.Context, path m.Path, content []byte) error {
	if err := to.fsAdapter.WriteFile(ctx, path, content, 0o600); err != nil {
		slog.Error("Failed to write mutated file", "path", path, "error", err)
		return fmt.Errorf("%w: write mutated file: %w", ErrFilesystem, err)
	}

	return nil
}

// verify classifies the verifier outcome: a rejection kills the mutant, an
// accepted package lets it survive, anything else is inconclusive.
func (to *orchestrator) verify(ctx context.Context, dir m.Path, timeout time.Duration) (m.TestStatus, string) {
	verifyCtx := ctx

	if timeout > 0 {
		var cancel context.CancelFunc

		verifyCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	output, err := to.verifier.Verify(verifyCtx, dir)
	if err == nil {
		return m.Survived, output
	}

	var rejected *adapter.VerificationError
	if errors.As(err, &rejected) {
		return m.Killed, rejected.Output
	}

	return m.Inconclusive, err.Error()
}

// cleanupTempDir removes the temporary directory, logging errors if cleanup fails.
func (to *orchestrator) cleanupTempDir(ctx context.Context, tmpDir m.Path) {
	if err := to.fsAdapter.RemoveAll(ctx, tmpDir); err != nil {
		slog.Error("Failed to cleanup temp dir", "tmpDir", tmpDir, "error", err)
	}
}
