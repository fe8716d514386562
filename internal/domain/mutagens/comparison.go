package mutagens

import (
	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

var inverseComparison = map[move.Kind]move.Kind{
	move.LT:   move.GE,
	move.GE:   move.LT,
	move.GT:   move.LE,
	move.LE:   move.GT,
	move.EQEQ: move.NE,
	move.NE:   move.EQEQ,
}

// GenerateRelationalMutations replaces a comparison with its logical inverse.
// The mutant covers the whole comparison so reports show both operands.
func GenerateRelationalMutations(n move.Node, source m.SourceFile) []m.Mutant {
	bin, ok := n.(*move.BinaryExpr)
	if !ok {
		return nil
	}

	inverse, ok := inverseComparison[bin.Op]
	if !ok {
		return nil
	}

	text := source.Text[bin.Pos():bin.End()]
	mutated := replaceRange(text, bin.OpPos-bin.Pos(), bin.OpEnd()-bin.Pos(), inverse.String())

	return []m.Mutant{nodeMutant(source, m.OperatorRelational, bin, mutated)}
}
