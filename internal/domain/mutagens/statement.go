package mutagens

import (
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

// GenerateStatementDeletionMutations removes expression statements that only
// exist for their side effects: calls, assignments and aborts.
func GenerateStatementDeletionMutations(n move.Node, source m.SourceFile) []m.Mutant {
	stmt, ok := n.(*move.ExprStmt)
	if !ok || !stmt.Semi {
		return nil
	}

	switch stmt.X.(type) {
	case *move.CallExpr, *move.AssignExpr, *move.AbortExpr:
		return []m.Mutant{nodeMutant(source, m.OperatorStatementDeletion, stmt, "")}
	}

	return nil
}

// GenerateBreakContinueMutations swaps break and continue.
func GenerateBreakContinueMutations(n move.Node, source m.SourceFile) []m.Mutant {
	switch n.(type) {
	case *move.BreakExpr:
		return []m.Mutant{nodeMutant(source, m.OperatorBreakContinue, n, "continue")}
	case *move.ContinueExpr:
		return []m.Mutant{nodeMutant(source, m.OperatorBreakContinue, n, "break")}
	}

	return nil
}
