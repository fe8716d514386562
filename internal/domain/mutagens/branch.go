package mutagens

import (
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

// GenerateBranchMutations forces if and while conditions to a constant, so the
// branch is always or never taken.
func GenerateBranchMutations(n move.Node, source m.SourceFile) []m.Mutant {
	cond, ok := conditionOf(n)
	if !ok {
		return nil
	}

	if _, isLiteral := cond.(*move.BoolLit); isLiteral {
		return nil
	}

	return []m.Mutant{
		nodeMutant(source, m.OperatorConditionForcing, cond, "true"),
		nodeMutant(source, m.OperatorConditionForcing, cond, "false"),
	}
}
