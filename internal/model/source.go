// Package model defines the data structures for mutation testing.
package model

import (
	"crypto/sha256"
	"fmt"
	"sort"
)

// Path represents a file system path.
type Path string

// SourceFile is a compiled Move source file. Its identity is the content hash,
// which ties every mutant to the exact version of the text it was generated from.
type SourceFile struct {
	Hash     string
	Filename Path
	Text     string
}

// HashContent returns the hex encoded SHA-256 of content.
func HashContent(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// NewSourceFile builds a SourceFile, deriving the hash from text.
func NewSourceFile(filename Path, text string) SourceFile {
	return SourceFile{
		Hash:     HashContent([]byte(text)),
		Filename: filename,
		Text:     text,
	}
}

// Registry maps content hashes to source files.
type Registry struct {
	byHash map[string]SourceFile
}

// NewRegistry creates a registry holding the given files.
func NewRegistry(files ...SourceFile) *Registry {
	r := &Registry{byHash: make(map[string]SourceFile, len(files))}
	for _, f := range files {
		r.Add(f)
	}

	return r
}

// Add registers a file. Re-adding identical content is a no-op.
func (r *Registry) Add(file SourceFile) {
	if r.byHash == nil {
		r.byHash = make(map[string]SourceFile)
	}

	if _, ok := r.byHash[file.Hash]; ok {
		return
	}

	r.byHash[file.Hash] = file
}

// Lookup returns the file with the given content hash.
func (r *Registry) Lookup(hash string) (SourceFile, bool) {
	if r == nil {
		return SourceFile{}, false
	}

	f, ok := r.byHash[hash]

	return f, ok
}

// Len returns the number of registered files.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.byHash)
}

// Files returns all files ordered by filename, then hash.
func (r *Registry) Files() []SourceFile {
	if r == nil {
		return nil
	}

	files := make([]SourceFile, 0, len(r.byHash))
	for _, f := range r.byHash {
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Filename != files[j].Filename {
			return files[i].Filename < files[j].Filename
		}

		return files[i].Hash < files[j].Hash
	})

	return files
}
