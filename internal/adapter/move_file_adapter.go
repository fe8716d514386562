package adapter

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

// DefaultParseCacheSize is the number of parsed files kept in memory.
const DefaultParseCacheSize = 256

// MoveFileAdapter turns Move source text into a syntax tree so the domain
// layer can stay independent of the parser.
type MoveFileAdapter interface {
	// Parse builds a syntax tree for the provided filename/source pair.
	Parse(ctx context.Context, filename m.Path, src []byte) (*move.File, error)
}

type parseKey struct {
	filename m.Path
	hash     string
}

// LocalMoveFileAdapter parses with the built-in Move parser and caches trees
// by content hash. Trees are never modified after parsing, so a cached tree can
// be shared between goroutines.
type LocalMoveFileAdapter struct {
	cache *lru.Cache[parseKey, *move.File]
}

// NewLocalMoveFileAdapter constructs a LocalMoveFileAdapter with the default
// cache size.
func NewLocalMoveFileAdapter() *LocalMoveFileAdapter {
	adapter, err := NewLocalMoveFileAdapterWithCache(DefaultParseCacheSize)
	if err != nil {
		panic(err)
	}

	return adapter
}

// NewLocalMoveFileAdapterWithCache constructs a LocalMoveFileAdapter keeping up
// to size parsed files.
func NewLocalMoveFileAdapterWithCache(size int) (*LocalMoveFileAdapter, error) {
	cache, err := lru.New[parseKey, *move.File](size)
	if err != nil {
		return nil, fmt.Errorf("create parse cache: %w", err)
	}

	return &LocalMoveFileAdapter{cache: cache}, nil
}

// Parse returns the syntax tree of src, reusing a cached tree when the same
// content was parsed before.
func (a *LocalMoveFileAdapter) Parse(ctx context.Context, filename m.Path, src []byte) (*move.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := parseKey{filename: filename, hash: m.HashContent(src)}
	if file, ok := a.cache.Get(key); ok {
		return file, nil
	}

	file, err := move.ParseFile(string(filename), src)
	if err != nil {
		return nil, err
	}

	a.cache.Add(key, file)

	return file, nil
}

// Cached reports how many parsed files are currently cached.
func (a *LocalMoveFileAdapter) Cached() int {
	return a.cache.Len()
}
