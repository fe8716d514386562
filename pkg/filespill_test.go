package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type outcome struct {
	Index  int
	Status int
	Text   string
}

func newSpill[T any](t *testing.T) FileSpill[T] {
	t.Helper()

	spill, err := NewFileSpill[T]()
	require.NoError(t, err)
	t.Cleanup(func() { _ = spill.Remove() })

	return spill
}

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill", func(t *testing.T) {
		spill := newSpill[int](t)

		require.Contains(t, spill.Path(), filepath.Join(os.TempDir(), SpillDirName))
		require.Equal(t, uint64(0), spill.Len())
	})

	t.Run("Append and Get", func(t *testing.T) {
		spill := newSpill[string](t)

		require.NoError(t, spill.Append("first"))
		require.NoError(t, spill.Append("second"))

		val, err := spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val)

		val, err = spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val)

		val, err = spill.Get(3)
		require.Error(t, err)
		require.Equal(t, "", val)
	})

	t.Run("AppendBatch and Range keep order", func(t *testing.T) {
		spill := newSpill[int](t)

		require.NoError(t, spill.AppendBatch([]int{10, 20, 30}))
		require.Equal(t, uint64(3), spill.Len())

		var collected []int
		err := spill.Range(func(_ uint64, item int) error {
			collected = append(collected, item)
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, []int{10, 20, 30}, collected)
	})

	t.Run("Range decodes zero fields as zero", func(t *testing.T) {
		spill := newSpill[outcome](t)

		require.NoError(t, spill.Append(outcome{Index: 1, Status: 2, Text: "survived"}))
		require.NoError(t, spill.Append(outcome{Index: 2}))

		var collected []outcome
		require.NoError(t, spill.Range(func(_ uint64, item outcome) error {
			collected = append(collected, item)
			return nil
		}))

		require.Equal(t, []outcome{{Index: 1, Status: 2, Text: "survived"}, {Index: 2}}, collected)

		second, err := spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, outcome{Index: 2}, second)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		spill := newSpill[int](t)
		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

		count := 0
		err := spill.Range(func(index uint64, _ int) error {
			count++
			if index == 1 {
				return errors.New("stop at index 1")
			}

			return nil
		})

		require.Error(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("Close keeps data readable and rejects appends", func(t *testing.T) {
		spill := newSpill[int](t)
		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, 1, val)

		require.Error(t, spill.Append(2))
	})

	t.Run("Remove deletes the file", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		require.NoError(t, spill.Append(1))

		require.NoError(t, spill.Remove())

		_, err = os.Stat(spill.Path())
		require.True(t, os.IsNotExist(err))
		require.NoError(t, spill.Remove())
	})

	t.Run("concurrent appends", func(t *testing.T) {
		spill := newSpill[int](t)

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)

			go func() {
				defer wg.Done()
				if err := spill.Append(i); err != nil {
					t.Error(err)
				}
			}()
		}

		wg.Wait()

		seen := make(map[int]bool)
		require.NoError(t, spill.Range(func(_ uint64, item int) error {
			seen[item] = true
			return nil
		}))
		require.Len(t, seen, 20)
	})
}

func TestEdgeCases(t *testing.T) {
	t.Run("empty spill range returns no items", func(t *testing.T) {
		spill := newSpill[int](t)

		count := 0
		require.NoError(t, spill.Range(func(uint64, int) error {
			count++
			return nil
		}))
		require.Equal(t, 0, count)
	})

	t.Run("get on empty spill returns error", func(t *testing.T) {
		spill := newSpill[int](t)

		_, err := spill.Get(0)
		require.Error(t, err)
	})
}

// BenchmarkAppend measures the performance of appending items.
func BenchmarkAppend(b *testing.B) {
	spill, err := NewFileSpill[outcome]()
	if err != nil {
		b.Fatal(err)
	}
	defer spill.Remove()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = spill.Append(outcome{Index: i, Status: i % 3})
	}
}

// FuzzStringAppend fuzzes string append operations.
func FuzzStringAppend(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("--- original\n+++ modified\n")

	f.Fuzz(func(t *testing.T, data string) {
		spill, err := NewFileSpill[string]()
		if err != nil {
			t.Skipf("setup failed: %v", err)
		}
		defer spill.Remove()

		if err := spill.Append(data); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		val, err := spill.Get(0)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}

		if val != data {
			t.Fatalf("value mismatch: expected %q, got %q", data, val)
		}
	})
}
