// Package move implements a lexer and parser for the subset of the Move
// language that the mutation operators work on.
//
// Every node records the byte offsets of its source span, so the original text
// of any node can be sliced out of the file and replaced in place.
package move

import "fmt"

// Kind is the lexical category of a token.
type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	IDENT   // foo, true, fun, ...
	NUMBER  // 42, 0x2a, 7u64
	ADDRESS // @0x1, @std
	BYTES   // b"abc", x"0a"

	LPAREN     // (
	RPAREN     // )
	LBRACE     // {
	RBRACE     // }
	LBRACK     // [
	RBRACK     // ]
	COMMA      // ,
	SEMI       // ;
	COLON      // :
	COLONCOLON // ::
	DOT        // .
	HASH       // #
	ARROW      // ->

	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	AMP     // &
	AMPAMP  // &&
	PIPE    // |
	PIPE2   // ||
	CARET   // ^
	SHL     // <<
	SHR     // >>
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	EQEQ    // ==
	NE      // !=
	BANG    // !
	ASSIGN  // =
)

var kindNames = map[Kind]string{
	EOF: "EOF", ILLEGAL: "ILLEGAL", IDENT: "identifier", NUMBER: "number",
	ADDRESS: "address", BYTES: "byte string",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACK: "[", RBRACK: "]",
	COMMA: ",", SEMI: ";", COLON: ":", COLONCOLON: "::", DOT: ".", HASH: "#", ARROW: "->",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	AMP: "&", AMPAMP: "&&", PIPE: "|", PIPE2: "||", CARET: "^", SHL: "<<", SHR: ">>",
	LT: "<", GT: ">", LE: "<=", GE: ">=", EQEQ: "==", NE: "!=", BANG: "!", ASSIGN: "=",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexical token. Pos and End are byte offsets into the source.
type Token struct {
	Kind Kind
	Lit  string
	Pos  int
	End  int
	Line int
	Col  int
}

// Is reports whether the token is an identifier with the given text.
func (t Token) Is(word string) bool {
	return t.Kind == IDENT && t.Lit == word
}
