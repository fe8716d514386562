package model

import "fmt"

// OperatorName identifies a mutation operator. Names appear verbatim in reports.
type OperatorName string

const (
	// OperatorArithmetic swaps arithmetic operators (+, -, *, /, %).
	OperatorArithmetic OperatorName = "arithmetic swap"
	// OperatorRelational replaces a comparison with its logical inverse.
	OperatorRelational OperatorName = "relational inversion"
	// OperatorBoolean swaps && and ||.
	OperatorBoolean OperatorName = "boolean operator swap"
	// OperatorBitwise swaps bitwise and shift operators.
	OperatorBitwise OperatorName = "bitwise swap"
	// OperatorUnaryNegation inserts or removes a logical negation.
	OperatorUnaryNegation OperatorName = "unary negation"
	// OperatorLiteral perturbs integer literals by one and flips booleans.
	OperatorLiteral OperatorName = "literal boundary"
	// OperatorStatementDeletion removes side-effecting expression statements.
	OperatorStatementDeletion OperatorName = "statement deletion"
	// OperatorBreakContinue swaps break and continue.
	OperatorBreakContinue OperatorName = "break continue swap"
	// OperatorConditionForcing replaces if/while conditions with constants.
	OperatorConditionForcing OperatorName = "condition forcing"
)

// Range is a half-open byte range [Start, End) inside a source file.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether the range fits into a text of the given length.
func (r Range) Valid(length int) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End <= length
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Mutant describes a single textual replacement in one source file. It only
// keeps the owning file hash; the text is always fetched through a Registry.
type Mutant struct {
	FileHash string
	Range    Range
	Operator OperatorName
	OldValue string
	NewValue string
}

// Key identifies a mutant for deduplication.
type Key struct {
	FileHash string
	Range    Range
	Operator OperatorName
	NewValue string
}

// Key returns the deduplication key of the mutant.
func (mu Mutant) Key() Key {
	return Key{FileHash: mu.FileHash, Range: mu.Range, Operator: mu.Operator, NewValue: mu.NewValue}
}

func (mu Mutant) String() string {
	return fmt.Sprintf("%s at %s: %q -> %q", mu.Operator, mu.Range, mu.OldValue, mu.NewValue)
}

// MaterializedMutant is a mutant applied to its source file.
type MaterializedMutant struct {
	Mutant        Mutant
	MutatedSource string
}
