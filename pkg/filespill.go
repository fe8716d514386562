// Package pkg provides utilities shared by move-spec-test.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// SpillDirName is the directory under os.TempDir holding spill files.
const SpillDirName = "move-spec-test-spill"

// FileSpill is an append-only list of items of type T kept on disk. Appends
// are serialised, so concurrent workers may share one spill.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	// Close stops accepting appends. Stored items stay readable.
	Close() error
	// Remove closes the spill and deletes its file.
	Remove() error
}

type fileSpillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// Append implements FileSpill.
func (f *fileSpillImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return fmt.Errorf("append to closed spill %s", f.path)
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++
	slog.Debug("appended item", "path", f.path, "index", f.length-1)

	return nil
}

// Path implements FileSpill.
func (f *fileSpillImpl[T]) Path() string {
	return f.path
}

// AppendBatch implements FileSpill.
func (f *fileSpillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements FileSpill.
func (f *fileSpillImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closeLocked()
}

func (f *fileSpillImpl[T]) closeLocked() error {
	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil
	f.encoder = nil

	if err != nil {
		slog.Error("failed to close file", "path", f.path, "error", err)
		return err
	}

	slog.Debug("closed filespill", "path", f.path, "length", f.length)

	return nil
}

// Remove implements FileSpill.
func (f *fileSpillImpl[T]) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	closeErr := f.closeLocked()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to remove filespill", "path", f.path, "error", err)
		return errors.Join(closeErr, err)
	}

	return closeErr
}

// Get implements FileSpill.
func (f *fileSpillImpl[T]) Get(index uint64) (T, error) {
	var found T

	if f.Len() <= index {
		slog.Warn("get index out of bounds", "path", f.path, "index", index, "length", f.Len())
		return found, fmt.Errorf("index %d out of bounds (length %d)", index, f.Len())
	}

	err := f.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errStopRange
		}

		return nil
	})
	if err != nil && !errors.Is(err, errStopRange) {
		var zero T
		return zero, err
	}

	slog.Debug("got item", "path", f.path, "index", index)

	return found, nil
}

var errStopRange = errors.New("stop range")

// Len implements FileSpill.
func (f *fileSpillImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Range implements FileSpill. Every item is decoded into a fresh value:
// gob skips zero fields, so reusing a value would leak fields between items.
func (f *fileSpillImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open file for range", "path", f.path, "error", err)
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range f.length {
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			if !errors.Is(err, errStopRange) {
				slog.Warn("range callback error", "path", f.path, "index", i, "error", err)
			}

			return err
		}
	}

	slog.Debug("range completed", "path", f.path, "count", f.length)

	return nil
}

// NewFileSpill creates a new FileSpill for items of type T.
func NewFileSpill[T any]() (FileSpill[T], error) {
	tmpDir := filepath.Join(os.TempDir(), SpillDirName)
	if err := os.MkdirAll(tmpDir, 0o750); err != nil {
		slog.Error("failed to create temp directory", "path", tmpDir, "error", err)
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	file, err := os.CreateTemp(tmpDir, "spill-*.gob")
	if err != nil {
		slog.Error("failed to create temp file", "path", tmpDir, "error", err)
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	slog.Debug("created filespill", "path", file.Name())

	return &fileSpillImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}
