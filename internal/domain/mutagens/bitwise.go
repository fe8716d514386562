package mutagens

import (
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

var bitwiseSwap = map[move.Kind]move.Kind{
	move.AMP:   move.PIPE,
	move.PIPE:  move.AMP,
	move.CARET: move.AMP,
	move.SHL:   move.SHR,
	move.SHR:   move.SHL,
}

// GenerateBitwiseMutations swaps bitwise and shift operators.
func GenerateBitwiseMutations(n move.Node, source m.SourceFile) []m.Mutant {
	bin, ok := n.(*move.BinaryExpr)
	if !ok {
		return nil
	}

	swapped, ok := bitwiseSwap[bin.Op]
	if !ok {
		return nil
	}

	return opMutants(source, m.OperatorBitwise, bin, []move.Kind{swapped})
}
