package mutagens

import (
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

// GenerateUnaryMutations removes logical negations and negates loop and branch
// conditions.
func GenerateUnaryMutations(n move.Node, source m.SourceFile) []m.Mutant {
	if un, ok := n.(*move.UnaryExpr); ok {
		if un.Op != "!" {
			return nil
		}

		operand := source.Text[un.X.Pos():un.X.End()]

		return []m.Mutant{nodeMutant(source, m.OperatorUnaryNegation, un, operand)}
	}

	cond, ok := conditionOf(n)
	if !ok {
		return nil
	}

	negated := "!(" + source.Text[cond.Pos():cond.End()] + ")"

	return []m.Mutant{nodeMutant(source, m.OperatorUnaryNegation, cond, negated)}
}
