// Package mutagens provides the mutation operators applied to Move syntax trees.
package mutagens

import (
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

// Generator proposes mutants for a single syntax node. It returns nil when the
// node does not match the operator.
type Generator func(n move.Node, source m.SourceFile) []m.Mutant

// newMutant builds a mutant replacing source.Text[start:end] with replacement.
func newMutant(source m.SourceFile, op m.OperatorName, start, end int, replacement string) m.Mutant {
	return m.Mutant{
		FileHash: source.Hash,
		Range:    m.Range{Start: start, End: end},
		Operator: op,
		OldValue: source.Text[start:end],
		NewValue: replacement,
	}
}

// nodeMutant replaces the whole span of n.
func nodeMutant(source m.SourceFile, op m.OperatorName, n move.Node, replacement string) m.Mutant {
	return newMutant(source, op, n.Pos(), n.End(), replacement)
}

// opMutants replaces the operator token of a binary expression with each of
// the given alternatives.
func opMutants(source m.SourceFile, op m.OperatorName, bin *move.BinaryExpr, alternatives []move.Kind) []m.Mutant {
	mutants := make([]m.Mutant, 0, len(alternatives))
	for _, alt := range alternatives {
		mutants = append(mutants, newMutant(source, op, bin.OpPos, bin.OpEnd(), alt.String()))
	}

	return mutants
}

// replaceRange returns text with [start, end) replaced.
func replaceRange(text string, start, end int, replacement string) string {
	return text[:start] + replacement + text[end:]
}

// conditionOf returns the expression inside the parentheses of an if or while
// condition.
func conditionOf(n move.Node) (move.Expr, bool) {
	var cond move.Expr

	switch node := n.(type) {
	case *move.IfExpr:
		cond = node.Cond
	case *move.WhileExpr:
		cond = node.Cond
	default:
		return nil, false
	}

	paren, ok := cond.(*move.ParenExpr)
	if !ok {
		return nil, false
	}

	return paren.X, true
}

func alternativesOf(op move.Kind, group []move.Kind) []move.Kind {
	var alternatives []move.Kind

	for _, candidate := range group {
		if candidate != op {
			alternatives = append(alternatives, candidate)
		}
	}

	return alternatives
}

func contains(group []move.Kind, op move.Kind) bool {
	for _, candidate := range group {
		if candidate == op {
			return true
		}
	}

	return false
}
