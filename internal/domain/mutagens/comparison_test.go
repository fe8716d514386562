package mutagens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
	"github.com/eigerco/move-spec-testing-old/internal/move"
)

func TestGenerateRelationalMutations(t *testing.T) {
	t.Run("single inverse over the whole comparison", func(t *testing.T) {
		text := "0123456789a < b"
		source := m.NewSourceFile("s.move", text)
		node := &move.BinaryExpr{
			Span:  move.Span{From: 10, To: 15},
			X:     &move.NameExpr{Span: move.Span{From: 10, To: 11}, Path: "a"},
			Op:    move.LT,
			OpPos: 12,
			Y:     &move.NameExpr{Span: move.Span{From: 14, To: 15}, Path: "b"},
		}

		mutants := GenerateRelationalMutations(node, source)

		require.Equal(t, []m.Mutant{{
			FileHash: source.Hash,
			Range:    m.Range{Start: 10, End: 15},
			Operator: m.OperatorRelational,
			OldValue: "a < b",
			NewValue: "a >= b",
		}}, mutants)
	})

	tests := []struct {
		expr     string
		expected string
	}{
		{"a < b", "a >= b"},
		{"a >= b", "a < b"},
		{"a > b", "a <= b"},
		{"a <= b", "a > b"},
		{"a == b", "a != b"},
		{"a != b", "a == b"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, mutants := generate(t, "if ("+tt.expr+") a else b", GenerateRelationalMutations)
			require.Len(t, mutants, 1)
			assert.Equal(t, tt.expr, mutants[0].OldValue)
			assert.Equal(t, tt.expected, mutants[0].NewValue)
		})
	}

	t.Run("keeps operand text", func(t *testing.T) {
		_, mutants := generate(t, "if (vector::length(&v) <  a + 1) a else b", GenerateRelationalMutations)
		require.Len(t, mutants, 1)
		assert.Equal(t, "vector::length(&v) >=  a + 1", mutants[0].NewValue)
	})
}
