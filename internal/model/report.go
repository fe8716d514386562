package model

import (
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"
)

// ReportDivider separates entries in the text report.
const ReportDivider = "----------------------------------------"

const (
	diffFromFile = "original"
	diffToFile   = "modified"
	diffContext  = 3
)

// Mutation is a single modification applied to a mutated file.
type Mutation struct {
	ChangedPlace Range  `json:"changed_place"`
	OperatorName string `json:"operator_name"`
	OldValue     string `json:"old_value"`
	NewValue     string `json:"new_value"`
}

// NewMutation converts a mutant into its report form.
func NewMutation(mu Mutant) Mutation {
	return Mutation{
		ChangedPlace: mu.Range,
		OperatorName: string(mu.Operator),
		OldValue:     mu.OldValue,
		NewValue:     mu.NewValue,
	}
}

// MutationReport describes one materialized mutant on disk.
type MutationReport struct {
	File         string     `json:"file"`
	OriginalFile string     `json:"original_file"`
	Mutations    []Mutation `json:"mutations"`
	Diff         string     `json:"diff"`
}

// NewMutationReport creates an entry and computes the diff between the
// original and the mutated source right away.
func NewMutationReport(file, originalFile Path, originalSource, mutatedSource string) (MutationReport, error) {
	diff, err := UnifiedDiff(originalSource, mutatedSource)
	if err != nil {
		return MutationReport{}, err
	}

	return MutationReport{
		File:         string(file),
		OriginalFile: string(originalFile),
		Mutations:    []Mutation{},
		Diff:         diff,
	}, nil
}

// AddMutation appends a modification to the entry.
func (mr *MutationReport) AddMutation(mutation Mutation) {
	mr.Mutations = append(mr.Mutations, mutation)
}

// UnifiedDiff renders a unified diff between two texts.
func UnifiedDiff(original, mutated string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(mutated),
		FromFile: diffFromFile,
		ToFile:   diffToFile,
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("failed to compute diff: %w", err)
	}

	return diff, nil
}

// Report is the ordered collection of mutation entries of one run.
type Report struct {
	Mutants []MutationReport `json:"mutants"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{Mutants: []MutationReport{}}
}

// AddEntry appends an entry. Entries are never reordered or merged.
func (r *Report) AddEntry(entry MutationReport) {
	r.Mutants = append(r.Mutants, entry)
}

// Len returns the number of entries.
func (r *Report) Len() int {
	return len(r.Mutants)
}

// WriteText renders the human readable form of the report.
func (r *Report) WriteText(w io.Writer) error {
	for _, entry := range r.Mutants {
		if err := writeTextEntry(w, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeTextEntry(w io.Writer, entry MutationReport) error {
	lines := []string{
		"File: " + entry.File,
		"Original file: " + entry.OriginalFile,
		"Mutations:",
	}

	for _, mutation := range entry.Mutations {
		lines = append(lines,
			"  Operator: "+mutation.OperatorName,
			"  Old value: "+mutation.OldValue,
			"  New value: "+mutation.NewValue,
			"  Changed place: "+mutation.ChangedPlace.String(),
		)
	}

	lines = append(lines, "Diff:", entry.Diff, ReportDivider)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
