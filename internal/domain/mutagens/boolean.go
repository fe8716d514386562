package mutagens

import (
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

// GenerateBooleanMutations swaps && and ||.
func GenerateBooleanMutations(n move.Node, source m.SourceFile) []m.Mutant {
	bin, ok := n.(*move.BinaryExpr)
	if !ok {
		return nil
	}

	switch bin.Op {
	case move.AMPAMP:
		return opMutants(source, m.OperatorBoolean, bin, []move.Kind{move.PIPE2})
	case move.PIPE2:
		return opMutants(source, m.OperatorBoolean, bin, []move.Kind{move.AMPAMP})
	}

	return nil
}
