package move

import "fmt"

// SyntaxError reports a lexing or parsing failure with its source position.
type SyntaxError struct {
	Filename string
	Line     int
	Col      int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Col, e.Msg)
}

type lexer struct {
	filename string
	src      string
	off      int
	line     int
	col      int
}

// Tokenize splits src into tokens, dropping whitespace and comments.
// The returned slice always ends with an EOF token.
func Tokenize(filename, src string) ([]Token, error) {
	lx := &lexer{filename: filename, src: src, line: 1, col: 1}

	var toks []Token

	for {
		if err := lx.skipTrivia(); err != nil {
			return nil, err
		}

		tok, err := lx.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func (lx *lexer) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{Filename: lx.filename, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) peekByte(ahead int) byte {
	if lx.off+ahead >= len(lx.src) {
		return 0
	}

	return lx.src[lx.off+ahead]
}

func (lx *lexer) advance(n int) {
	for i := 0; i < n && lx.off < len(lx.src); i++ {
		if lx.src[lx.off] == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}

		lx.off++
	}
}

func (lx *lexer) skipTrivia() error {
	for lx.off < len(lx.src) {
		c := lx.src[lx.off]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			lx.advance(1)
		case c == '/' && lx.peekByte(1) == '/':
			for lx.off < len(lx.src) && lx.src[lx.off] != '\n' {
				lx.advance(1)
			}
		case c == '/' && lx.peekByte(1) == '*':
			line, col := lx.line, lx.col
			lx.advance(2)

			for {
				if lx.off >= len(lx.src) {
					return lx.errorf(line, col, "unterminated block comment")
				}

				if lx.src[lx.off] == '*' && lx.peekByte(1) == '/' {
					lx.advance(2)
					break
				}

				lx.advance(1)
			}
		default:
			return nil
		}
	}

	return nil
}

var twoCharOps = map[string]Kind{
	"::": COLONCOLON, "->": ARROW, "&&": AMPAMP, "||": PIPE2,
	"<<": SHL, ">>": SHR, "<=": LE, ">=": GE, "==": EQEQ, "!=": NE,
}

var oneCharOps = map[byte]Kind{
	'(': LPAREN, ')': RPAREN, '{': LBRACE, '}': RBRACE, '[': LBRACK, ']': RBRACK,
	',': COMMA, ';': SEMI, ':': COLON, '.': DOT, '#': HASH,
	'+': PLUS, '-': MINUS, '*': STAR, '/': SLASH, '%': PERCENT,
	'&': AMP, '|': PIPE, '^': CARET, '<': LT, '>': GT, '!': BANG, '=': ASSIGN,
}

func (lx *lexer) next() (Token, error) {
	start, line, col := lx.off, lx.line, lx.col
	emit := func(kind Kind) Token {
		return Token{Kind: kind, Lit: lx.src[start:lx.off], Pos: start, End: lx.off, Line: line, Col: col}
	}

	if lx.off >= len(lx.src) {
		return emit(EOF), nil
	}

	c := lx.src[lx.off]

	switch {
	case (c == 'b' || c == 'x') && lx.peekByte(1) == '"':
		lx.advance(1)
		if err := lx.scanString(line, col); err != nil {
			return Token{}, err
		}

		return emit(BYTES), nil
	case isIdentStart(c):
		for lx.off < len(lx.src) && isIdentPart(lx.src[lx.off]) {
			lx.advance(1)
		}

		return emit(IDENT), nil
	case isDigit(c):
		for lx.off < len(lx.src) && isIdentPart(lx.src[lx.off]) {
			lx.advance(1)
		}

		return emit(NUMBER), nil
	case c == '@':
		lx.advance(1)

		if lx.off >= len(lx.src) || !isIdentPart(lx.src[lx.off]) {
			return Token{}, lx.errorf(line, col, "malformed address literal")
		}

		for lx.off < len(lx.src) && isIdentPart(lx.src[lx.off]) {
			lx.advance(1)
		}

		return emit(ADDRESS), nil
	}

	if lx.off+1 < len(lx.src) {
		if kind, ok := twoCharOps[lx.src[lx.off:lx.off+2]]; ok {
			lx.advance(2)
			return emit(kind), nil
		}
	}

	if kind, ok := oneCharOps[c]; ok {
		lx.advance(1)
		return emit(kind), nil
	}

	// Characters only valid inside spec blocks ($, ', ...) are kept as ILLEGAL
	// tokens; the parser skips spec blocks without looking at them.
	lx.advance(1)

	return emit(ILLEGAL), nil
}

func (lx *lexer) scanString(line, col int) error {
	lx.advance(1) // opening quote

	for {
		if lx.off >= len(lx.src) {
			return lx.errorf(line, col, "unterminated byte string")
		}

		switch lx.src[lx.off] {
		case '\\':
			lx.advance(2)
		case '"':
			lx.advance(1)
			return nil
		default:
			lx.advance(1)
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
