package move

// Node is implemented by every AST node. Pos and End are byte offsets of the
// node's source span, End being exclusive.
type Node interface {
	Pos() int
	End() int
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for statements inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Span is embedded in nodes to provide Pos and End.
type Span struct {
	From int
	To   int
}

// Pos returns the start offset.
func (s Span) Pos() int { return s.From }

// End returns the end offset (exclusive).
func (s Span) End() int { return s.To }

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// File is the root of a parsed source file.
type File struct {
	Span
	Name    string
	Modules []*Module
}

// Module is a module or script block.
type Module struct {
	Span
	Name    string
	Script  bool
	Members []Node
}

// Function is a function declaration. Body is nil for native functions.
type Function struct {
	Span
	Name string
	Body *Block
}

// Const is a module constant.
type Const struct {
	Span
	Name  string
	Value Expr
}

// Opaque covers declarations and blocks that are never mutated, such as use
// declarations, struct definitions and spec blocks.
type Opaque struct {
	Span
	Kind string
}

func (*Opaque) stmtNode() {}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Block is a sequence of statements with an optional trailing expression.
type Block struct {
	Span
	Stmts  []Stmt
	Result Expr
}

// LetStmt binds a pattern. Value is nil for declarations without initializer.
type LetStmt struct {
	Span
	Pattern string
	Value   Expr
}

// ExprStmt is an expression used as a statement. Semi reports whether it was
// terminated by a semicolon (block-like expressions may omit it).
type ExprStmt struct {
	Span
	X    Expr
	Semi bool
}

func (*LetStmt) stmtNode()  {}
func (*ExprStmt) stmtNode() {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// BinaryExpr is X Op Y.
type BinaryExpr struct {
	Span
	X     Expr
	Op    Kind
	OpPos int
	Y     Expr
}

// OpEnd returns the end offset of the operator token.
func (b *BinaryExpr) OpEnd() int {
	return b.OpPos + len(b.Op.String())
}

// UnaryExpr is a prefix operator applied to X: !, &, &mut, *, move, copy.
type UnaryExpr struct {
	Span
	Op string
	X  Expr
}

// IntLit is an integer literal with an optional type suffix.
type IntLit struct {
	Span
	Digits string
	Hex    bool
	Suffix string
}

// BoolLit is true or false.
type BoolLit struct {
	Span
	Value bool
}

// OtherLit is an address or byte string literal.
type OtherLit struct {
	Span
	Kind Kind
}

// NameExpr is a possibly qualified name, including type arguments.
type NameExpr struct {
	Span
	Path string
}

// CallExpr is a function, macro or method call.
type CallExpr struct {
	Span
	Fun   Expr
	Macro bool
	Args  []Expr
}

// FieldExpr is X.Name.
type FieldExpr struct {
	Span
	X    Expr
	Name string
}

// IndexExpr is X[Index].
type IndexExpr struct {
	Span
	X     Expr
	Index Expr
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Span
	X Expr
}

// CastExpr is X as Type.
type CastExpr struct {
	Span
	X    Expr
	Type string
}

// TupleExpr is (a, b, ...) or the unit value ().
type TupleExpr struct {
	Span
	Elems []Expr
}

// VectorLit is vector[a, b, ...].
type VectorLit struct {
	Span
	Elems []Expr
}

// FieldInit is one field of a struct literal. Value is nil for shorthand fields.
type FieldInit struct {
	Name  string
	Value Expr
}

// StructLit is Name { field: value, ... }.
type StructLit struct {
	Span
	Name   string
	Fields []FieldInit
}

// IfExpr is if (Cond) Then else Else. Cond is always a *ParenExpr.
type IfExpr struct {
	Span
	Cond Expr
	Then Expr
	Else Expr
}

// WhileExpr is while (Cond) Body. Cond is always a *ParenExpr.
type WhileExpr struct {
	Span
	Cond Expr
	Body Expr
}

// LoopExpr is loop Body.
type LoopExpr struct {
	Span
	Body Expr
}

// ReturnExpr is return with an optional value.
type ReturnExpr struct {
	Span
	X Expr
}

// AbortExpr is abort X.
type AbortExpr struct {
	Span
	X Expr
}

// BreakExpr is break.
type BreakExpr struct{ Span }

// ContinueExpr is continue.
type ContinueExpr struct{ Span }

// AssignExpr is Lhs = Rhs.
type AssignExpr struct {
	Span
	Lhs Expr
	Rhs Expr
}

// LambdaExpr is |params| Body.
type LambdaExpr struct {
	Span
	Body Expr
}

func (*Block) exprNode()        {}
func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*IntLit) exprNode()       {}
func (*BoolLit) exprNode()      {}
func (*OtherLit) exprNode()     {}
func (*NameExpr) exprNode()     {}
func (*CallExpr) exprNode()     {}
func (*FieldExpr) exprNode()    {}
func (*IndexExpr) exprNode()    {}
func (*ParenExpr) exprNode()    {}
func (*CastExpr) exprNode()     {}
func (*TupleExpr) exprNode()    {}
func (*VectorLit) exprNode()    {}
func (*StructLit) exprNode()    {}
func (*IfExpr) exprNode()       {}
func (*WhileExpr) exprNode()    {}
func (*LoopExpr) exprNode()     {}
func (*ReturnExpr) exprNode()   {}
func (*AbortExpr) exprNode()    {}
func (*BreakExpr) exprNode()    {}
func (*ContinueExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*LambdaExpr) exprNode()   {}
