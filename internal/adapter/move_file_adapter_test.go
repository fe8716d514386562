package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

func examplePath(t *testing.T, name string) string {
	t.Helper()

	return filepath.Join("..", "..", "examples", name)
}

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	return content
}

func TestLocalMoveFileAdapter_Parse(t *testing.T) {
	adapter := NewLocalMoveFileAdapter()

	exampleFile := filepath.Join(examplePath(t, "basic"), "sources", "basic.move")
	content := readFileBytes(t, exampleFile)

	file, err := adapter.Parse(context.Background(), m.Path(exampleFile), content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(file.Modules) != 1 || file.Modules[0].Name != "basic::math" {
		t.Fatalf("Parse() modules = %+v, want basic::math", file.Modules)
	}
}

func TestLocalMoveFileAdapter_Parse_Cache(t *testing.T) {
	adapter, err := NewLocalMoveFileAdapterWithCache(1)
	if err != nil {
		t.Fatalf("NewLocalMoveFileAdapterWithCache() error = %v", err)
	}

	ctx := context.Background()
	src := []byte("module 0x1::a { fun f(): u64 { 1 } }")

	first, err := adapter.Parse(ctx, "a.move", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	second, err := adapter.Parse(ctx, "a.move", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if first != second {
		t.Fatalf("Parse() did not reuse the cached tree")
	}

	changed, err := adapter.Parse(ctx, "a.move", []byte("module 0x1::a { fun f(): u64 { 2 } }"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if changed == first {
		t.Fatalf("Parse() returned a stale tree for changed content")
	}

	if adapter.Cached() != 1 {
		t.Fatalf("Cached() = %d, want 1", adapter.Cached())
	}
}

func TestLocalMoveFileAdapter_Parse_InvalidSource(t *testing.T) {
	adapter := NewLocalMoveFileAdapter()

	if _, err := adapter.Parse(context.Background(), "broken.move", []byte("module 0x1::a { fun")); err == nil {
		t.Fatalf("Parse() expected error for invalid source")
	}

	if adapter.Cached() != 0 {
		t.Fatalf("Parse() cached a failed parse")
	}
}

func TestLocalMoveFileAdapter_Parse_ContextCancellation(t *testing.T) {
	adapter := NewLocalMoveFileAdapter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := adapter.Parse(ctx, "a.move", []byte("module 0x1::a {}")); err == nil {
		t.Fatalf("Parse() expected error due to context cancellation")
	}
}

func TestNewLocalMoveFileAdapterWithCache_InvalidSize(t *testing.T) {
	if _, err := NewLocalMoveFileAdapterWithCache(0); err == nil {
		t.Fatalf("NewLocalMoveFileAdapterWithCache(0) expected error")
	}
}
