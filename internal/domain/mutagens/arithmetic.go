package mutagens

import (
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

var arithmeticOps = []move.Kind{move.PLUS, move.MINUS, move.STAR, move.SLASH, move.PERCENT}

// GenerateArithmeticMutations replaces an arithmetic operator with every other
// arithmetic operator.
func GenerateArithmeticMutations(n move.Node, source m.SourceFile) []m.Mutant {
	bin, ok := n.(*move.BinaryExpr)
	if !ok || !contains(arithmeticOps, bin.Op) {
		return nil
	}

	return opMutants(source, m.OperatorArithmetic, bin, alternativesOf(bin.Op, arithmeticOps))
}
