package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	b := NewSourceFile("sources/b.move", "module 0x1::b {}")
	a := NewSourceFile("sources/a.move", "module 0x1::a {}")
	copyOfA := NewSourceFile("sources/z.move", a.Text)

	r := NewRegistry(b, a, copyOfA)

	t.Run("identical content is registered once", func(t *testing.T) {
		assert.Equal(t, 2, r.Len())

		got, ok := r.Lookup(a.Hash)
		require.True(t, ok)
		assert.Equal(t, a.Filename, got.Filename)
	})

	t.Run("files are ordered by filename", func(t *testing.T) {
		assert.Equal(t, []SourceFile{a, b}, r.Files())
	})

	t.Run("unknown hash", func(t *testing.T) {
		_, ok := r.Lookup(HashContent([]byte("other")))
		assert.False(t, ok)
	})

	t.Run("nil registry", func(t *testing.T) {
		var empty *Registry

		assert.Zero(t, empty.Len())
		assert.Nil(t, empty.Files())

		_, ok := empty.Lookup(a.Hash)
		assert.False(t, ok)
	})
}

func TestNewSourceFileHash(t *testing.T) {
	f := NewSourceFile("x.move", "abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", f.Hash)
}
