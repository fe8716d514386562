package domain

import (
	"fmt"

	"github.com/eigerco/move-spec-testing-old/internal/domain/mutagens"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// operator pairs a catalog name with the generator implementing it.
type operator struct {
	name     m.OperatorName
	generate mutagens.Generator
}

// catalog is the closed, ordered set of mutation operators. At every node the
// operators run in this order.
var catalog = []operator{
	{name: m.OperatorArithmetic, generate: mutagens.GenerateArithmeticMutations},
	{name: m.OperatorRelational, generate: mutagens.GenerateRelationalMutations},
	{name: m.OperatorBoolean, generate: mutagens.GenerateBooleanMutations},
	{name: m.OperatorBitwise, generate: mutagens.GenerateBitwiseMutations},
	{name: m.OperatorUnaryNegation, generate: mutagens.GenerateUnaryMutations},
	{name: m.OperatorLiteral, generate: mutagens.GenerateLiteralMutations},
	{name: m.OperatorStatementDeletion, generate: mutagens.GenerateStatementDeletionMutations},
	{name: m.OperatorBreakContinue, generate: mutagens.GenerateBreakContinueMutations},
	{name: m.OperatorConditionForcing, generate: mutagens.GenerateBranchMutations},
}

// Operators returns the names of all operators in catalog order.
func Operators() []m.OperatorName {
	names := make([]m.OperatorName, 0, len(catalog))
	for _, op := range catalog {
		names = append(names, op.name)
	}

	return names
}

// resolveOperators selects the requested operators, keeping catalog order.
// An empty request selects the whole catalog.
func resolveOperators(names []m.OperatorName) ([]operator, error) {
	if len(names) == 0 {
		return catalog, nil
	}

	requested := make(map[m.OperatorName]bool, len(names))

	for _, name := range names {
		if !isKnownOperator(name) {
			return nil, fmt.Errorf("%w: unsupported mutation operator %q", ErrConfiguration, name)
		}

		requested[name] = true
	}

	selected := make([]operator, 0, len(requested))

	for _, op := range catalog {
		if requested[op.name] {
			selected = append(selected, op)
		}
	}

	return selected, nil
}

func isKnownOperator(name m.OperatorName) bool {
	for _, op := range catalog {
		if op.name == name {
			return true
		}
	}

	return false
}
