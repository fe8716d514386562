package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.move"), "module 0x1::a {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "b.move"), "module 0x1::b {}\n")

		var visited []string
		err := adapter.Walk(context.Background(), m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "b.move")} {
			if containsPath(visited, forbidden) {
				t.Fatalf("Walk() unexpectedly visited %s when recursive is false", forbidden)
			}
		}

		if !containsPath(visited, filepath.Join(root, "a.move")) {
			t.Fatalf("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "b.move")
		writeTestFile(t, child, "module 0x1::b {}\n")

		var visited []string
		err := adapter.Walk(context.Background(), m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file when recursive")
		}
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := adapter.Walk(ctx, m.Path(t.TempDir()), true, func(string, os.FileInfo, error) error { return nil })
		if err == nil {
			t.Fatalf("Walk() expected context error")
		}
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "a.move")
	want := "module 0x1::a {}\n"
	writeTestFile(t, path, want)

	got, err := adapter.ReadFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != want {
		t.Fatalf("ReadFile() = %q, want %q", got, want)
	}
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "a.move")
	content := []byte("module 0x1::a {}\n")
	writeTestBytes(t, path, content)

	got, err := adapter.HashFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}

	want := fmt.Sprintf("%x", sha256.Sum256(content))
	if got != want {
		t.Fatalf("HashFile() = %s, want %s", got, want)
	}

	if got != m.HashContent(content) {
		t.Fatalf("HashFile() and HashContent() disagree")
	}
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	dir := t.TempDir()

	info, err := adapter.FileInfo(context.Background(), m.Path(dir))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if !info.IsDir() {
		t.Fatalf("FileInfo() expected directory")
	}

	if _, err := adapter.FileInfo(context.Background(), m.Path(filepath.Join(dir, "missing"))); !os.IsNotExist(err) {
		t.Fatalf("FileInfo() expected not-exist error, got %v", err)
	}
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	packageDir := filepath.Join(root, "project")
	mustMkdir(t, packageDir)
	writeTestFile(t, filepath.Join(packageDir, ManifestName), "[package]\nname = \"project\"\n")

	sourcesDir := filepath.Join(packageDir, "sources", "nested")
	if err := os.MkdirAll(sourcesDir, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	t.Run("from a file", func(t *testing.T) {
		got, err := adapter.FindProjectRoot(context.Background(), m.Path(filepath.Join(sourcesDir, "a.move")))
		if err != nil {
			t.Fatalf("FindProjectRoot() error = %v", err)
		}

		if got != m.Path(packageDir) {
			t.Fatalf("FindProjectRoot() = %s, want %s", got, packageDir)
		}
	})

	t.Run("from the package directory itself", func(t *testing.T) {
		got, err := adapter.FindProjectRoot(context.Background(), m.Path(packageDir))
		if err != nil {
			t.Fatalf("FindProjectRoot() error = %v", err)
		}

		if got != m.Path(packageDir) {
			t.Fatalf("FindProjectRoot() = %s, want %s", got, packageDir)
		}
	})
}

func TestLocalSourceFSAdapter_CreateTempDirAndRemoveAll(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	tmp, err := adapter.CreateTempDir(ctx, "move-spec-test-*")
	if err != nil {
		t.Fatalf("CreateTempDir() error = %v", err)
	}

	if fi, err := os.Stat(string(tmp)); err != nil || !fi.IsDir() {
		t.Fatalf("CreateTempDir() did not create directory, stat err=%v", err)
	}

	writeTestFile(t, filepath.Join(string(tmp), "a.move"), "module 0x1::a {}\n")

	if err := adapter.RemoveAll(ctx, tmp); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}

	if _, err := os.Stat(string(tmp)); !os.IsNotExist(err) {
		t.Fatalf("RemoveAll() did not remove directory, stat err=%v", err)
	}
}

func TestLocalSourceFSAdapter_CopyDirAndWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	src := t.TempDir()
	dst := t.TempDir()

	sourcesDir := filepath.Join(src, "sources")
	mustMkdir(t, sourcesDir)
	writeTestFile(t, filepath.Join(sourcesDir, "a.move"), "module 0x1::a {}\n")

	buildDir := filepath.Join(src, "build")
	mustMkdir(t, buildDir)
	writeTestFile(t, filepath.Join(buildDir, "cache.bin"), "x")

	// WriteFile creates missing parent directories.
	extraFile := filepath.Join(src, "scripts", "extra.move")
	if err := adapter.WriteFile(ctx, m.Path(extraFile), []byte("script {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := adapter.CopyDir(ctx, m.Path(src), m.Path(dst)); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "sources", "a.move")); err != nil {
		t.Fatalf("CopyDir() did not copy nested file: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "scripts", "extra.move")); err != nil {
		t.Fatalf("CopyDir() did not copy written file: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "build")); !os.IsNotExist(err) {
		t.Fatalf("CopyDir() copied build artifacts, stat err=%v", err)
	}
}

func TestLocalSourceFSAdapter_MkdirAll(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := adapter.MkdirAll(context.Background(), m.Path(dir)); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Fatalf("MkdirAll() did not create directory, stat err=%v", err)
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	base := m.Path("/tmp/project")
	target := m.Path("/tmp/project/sources/dir/a.move")

	rel, err := adapter.RelPath(ctx, base, target)
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if string(rel) != filepath.Join("sources", "dir", "a.move") {
		t.Fatalf("RelPath() = %s, want %s", rel, filepath.Join("sources", "dir", "a.move"))
	}

	joined := adapter.JoinPath(ctx, "/tmp", "project", "sources", "a.move")
	if string(joined) != filepath.Join("/tmp", "project", "sources", "a.move") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/tmp", "project", "sources", "a.move"))
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
