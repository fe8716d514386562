package mutagens

import (
	"math/big"
	"strings"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

// Unsuffixed literals are checked against the widest integer type.
var suffixBits = map[string]uint{
	"u8": 8, "u16": 16, "u32": 32, "u64": 64, "u128": 128, "u256": 256, "": 256,
}

// GenerateLiteralMutations moves integer literals one step in each direction
// within the range of their type and flips boolean literals.
func GenerateLiteralMutations(n move.Node, source m.SourceFile) []m.Mutant {
	switch lit := n.(type) {
	case *move.BoolLit:
		flipped := "true"
		if lit.Value {
			flipped = "false"
		}

		return []m.Mutant{nodeMutant(source, m.OperatorLiteral, lit, flipped)}
	case *move.IntLit:
		return integerMutants(lit, source)
	}

	return nil
}

func integerMutants(lit *move.IntLit, source m.SourceFile) []m.Mutant {
	base := 10
	if lit.Hex {
		base = 16
	}

	value, ok := new(big.Int).SetString(lit.Digits, base)
	if !ok {
		return nil
	}

	bits, ok := suffixBits[lit.Suffix]
	if !ok {
		return nil
	}

	limit := new(big.Int).Lsh(big.NewInt(1), bits)

	var mutants []m.Mutant

	if next := new(big.Int).Add(value, big.NewInt(1)); next.Cmp(limit) < 0 {
		mutants = append(mutants, nodeMutant(source, m.OperatorLiteral, lit, formatInt(next, lit)))
	}

	if value.Sign() > 0 {
		prev := new(big.Int).Sub(value, big.NewInt(1))
		mutants = append(mutants, nodeMutant(source, m.OperatorLiteral, lit, formatInt(prev, lit)))
	}

	return mutants
}

func formatInt(v *big.Int, lit *move.IntLit) string {
	if !lit.Hex {
		return v.Text(10) + lit.Suffix
	}

	digits := v.Text(16)
	if strings.ToLower(lit.Digits) != lit.Digits {
		digits = strings.ToUpper(digits)
	}

	return "0x" + digits + lit.Suffix
}
