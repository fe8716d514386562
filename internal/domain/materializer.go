package domain

import (
	"fmt"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// Materialize splices the mutant's replacement into the text of its source
// file, fetched from the registry by content hash.
func Materialize(registry *m.Registry, mu m.Mutant) (m.MaterializedMutant, error) {
	source, ok := registry.Lookup(mu.FileHash)
	if !ok {
		return m.MaterializedMutant{}, fmt.Errorf("no source file with hash %s", mu.FileHash)
	}

	if !mu.Range.Valid(len(source.Text)) {
		return m.MaterializedMutant{}, fmt.Errorf("range %s outside of %s (%d bytes)", mu.Range, source.Filename, len(source.Text))
	}

	mutated := source.Text[:mu.Range.Start] + mu.NewValue + source.Text[mu.Range.End:]

	return m.MaterializedMutant{Mutant: mu, MutatedSource: mutated}, nil
}
