package move

import (
	"fmt"
	"strings"
)

// ParseFile parses a Move source file.
func ParseFile(filename string, src []byte) (*File, error) {
	toks, err := Tokenize(filename, string(src))
	if err != nil {
		return nil, err
	}

	p := &parser{filename: filename, src: string(src), toks: toks}

	return p.file()
}

type parser struct {
	filename string
	src      string
	toks     []Token
	i        int
}

func sp(from, to int) Span {
	return Span{From: from, To: to}
}

func (p *parser) peek() Token {
	return p.toks[p.i]
}

func (p *parser) peekN(n int) Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.i+n]
}

func (p *parser) next() Token {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}

	return t
}

func (p *parser) prevEnd() int {
	if p.i == 0 {
		return 0
	}

	return p.toks[p.i-1].End
}

func (p *parser) at(k Kind) bool {
	return p.peek().Kind == k
}

func (p *parser) atWord(word string) bool {
	return p.peek().Is(word)
}

func (p *parser) accept(k Kind) bool {
	if p.at(k) {
		p.next()
		return true
	}

	return false
}

func (p *parser) errorf(t Token, format string, args ...any) error {
	return &SyntaxError{Filename: p.filename, Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k Kind) (Token, error) {
	t := p.peek()
	if t.Kind != k {
		return t, p.errorf(t, "expected %s, found %q", k, t.Lit)
	}

	return p.next(), nil
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

func (p *parser) file() (*File, error) {
	f := &File{Span: sp(0, len(p.src)), Name: p.filename}

	for !p.at(EOF) {
		if err := p.skipAttributes(); err != nil {
			return nil, err
		}

		switch {
		case p.atWord("module"):
			mod, err := p.module(false)
			if err != nil {
				return nil, err
			}

			f.Modules = append(f.Modules, mod)
		case p.atWord("script"):
			mod, err := p.module(true)
			if err != nil {
				return nil, err
			}

			f.Modules = append(f.Modules, mod)
		case p.atWord("address"):
			mods, err := p.addressBlock()
			if err != nil {
				return nil, err
			}

			f.Modules = append(f.Modules, mods...)
		case p.atWord("spec"):
			if _, err := p.skipDecl(true); err != nil {
				return nil, err
			}
		case p.at(EOF):
		default:
			t := p.peek()
			return nil, p.errorf(t, "expected module, script or address block, found %q", t.Lit)
		}
	}

	return f, nil
}

func (p *parser) addressBlock() ([]*Module, error) {
	p.next()

	for !p.at(LBRACE) {
		if p.at(EOF) {
			return nil, p.errorf(p.peek(), "unterminated address block")
		}

		p.next()
	}

	p.next()

	var mods []*Module

	for !p.accept(RBRACE) {
		if err := p.skipAttributes(); err != nil {
			return nil, err
		}

		if !p.atWord("module") {
			t := p.peek()
			return nil, p.errorf(t, "expected module, found %q", t.Lit)
		}

		mod, err := p.module(false)
		if err != nil {
			return nil, err
		}

		mods = append(mods, mod)
	}

	return mods, nil
}

func (p *parser) module(script bool) (*Module, error) {
	start := p.next()
	mod := &Module{Script: script}

	nameStart := p.peek().Pos
	for !p.at(LBRACE) && !p.at(SEMI) {
		if p.at(EOF) {
			return nil, p.errorf(p.peek(), "unexpected end of file in module header")
		}

		p.next()
	}

	if p.peek().Pos > nameStart {
		mod.Name = strings.TrimSpace(p.src[nameStart:p.prevEnd()])
	}

	// Single-file form: `module a::b;` followed by members up to EOF.
	if p.accept(SEMI) {
		for !p.at(EOF) {
			member, err := p.member()
			if err != nil {
				return nil, err
			}

			mod.Members = append(mod.Members, member)
		}

		mod.Span = sp(start.Pos, len(p.src))

		return mod, nil
	}

	p.next()

	for !p.at(RBRACE) {
		if p.at(EOF) {
			return nil, p.errorf(p.peek(), "unterminated module %s", mod.Name)
		}

		member, err := p.member()
		if err != nil {
			return nil, err
		}

		mod.Members = append(mod.Members, member)
	}

	end := p.next()
	mod.Span = sp(start.Pos, end.End)

	return mod, nil
}

func (p *parser) member() (Node, error) {
	if err := p.skipAttributes(); err != nil {
		return nil, err
	}

	start := p.peek().Pos

	if err := p.skipModifiers(); err != nil {
		return nil, err
	}

	t := p.peek()

	switch {
	case t.Is("fun"):
		return p.function(start)
	case t.Is("const"):
		return p.constDecl(start)
	case t.Is("use"), t.Is("friend"):
		p.next()

		end, err := p.skipDecl(false)
		if err != nil {
			return nil, err
		}

		return &Opaque{Span: sp(start, end), Kind: t.Lit}, nil
	case t.Is("struct"), t.Is("enum"), t.Is("spec"):
		p.next()

		end, err := p.skipDecl(true)
		if err != nil {
			return nil, err
		}

		return &Opaque{Span: sp(start, end), Kind: t.Lit}, nil
	}

	return nil, p.errorf(t, "unexpected %q in module body", t.Lit)
}

func (p *parser) skipModifiers() error {
	for {
		t := p.peek()

		switch {
		case t.Is("public"):
			p.next()

			if p.at(LPAREN) {
				if err := p.skipBalanced(LPAREN, RPAREN); err != nil {
					return err
				}
			}
		case t.Is("entry"), t.Is("native"), t.Is("inline"):
			p.next()
		case (t.Is("friend") || t.Is("package")) && p.peekN(1).Is("fun"):
			p.next()
		default:
			return nil
		}
	}
}

func (p *parser) function(start int) (*Function, error) {
	p.next()

	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}

	if p.at(LT) {
		if err := p.skipAngles(); err != nil {
			return nil, err
		}
	}

	if !p.at(LPAREN) {
		return nil, p.errorf(p.peek(), "expected parameter list for function %s", name.Lit)
	}

	if err := p.skipBalanced(LPAREN, RPAREN); err != nil {
		return nil, err
	}

	if p.accept(COLON) {
		if err := p.skipType(); err != nil {
			return nil, err
		}
	}

	if p.atWord("acquires") {
		p.next()

		for {
			if err := p.skipType(); err != nil {
				return nil, err
			}

			if !p.accept(COMMA) {
				break
			}
		}
	}

	if p.at(SEMI) {
		end := p.next()
		return &Function{Span: sp(start, end.End), Name: name.Lit}, nil
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &Function{Span: sp(start, body.End()), Name: name.Lit, Body: body}, nil
}

func (p *parser) constDecl(start int) (*Const, error) {
	p.next()

	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}

	if err := p.skipType(); err != nil {
		return nil, err
	}

	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(SEMI)
	if err != nil {
		return nil, err
	}

	return &Const{Span: sp(start, end.End), Name: name.Lit, Value: value}, nil
}

// ---------------------------------------------------------------------------
// Skipping helpers
// ---------------------------------------------------------------------------

func (p *parser) skipAttributes() error {
	for p.at(HASH) {
		p.next()

		if err := p.skipBalanced(LBRACK, RBRACK); err != nil {
			return err
		}
	}

	return nil
}

// skipDecl consumes tokens up to a top-level semicolon. With stopAtBrace a
// top-level brace block also ends the declaration.
func (p *parser) skipDecl(stopAtBrace bool) (int, error) {
	depth := 0

	for {
		t := p.next()

		switch t.Kind {
		case EOF:
			return 0, p.errorf(t, "unexpected end of file")
		case LPAREN, LBRACK:
			depth++
		case RPAREN, RBRACK:
			depth--
		case LBRACE:
			end, err := p.skipBraceBody()
			if err != nil {
				return 0, err
			}

			if stopAtBrace && depth == 0 {
				p.accept(SEMI)
				return end, nil
			}
		case SEMI:
			if depth == 0 {
				return t.End, nil
			}
		}
	}
}

// skipBraceBody consumes tokens after an opening brace up to the matching
// closing brace and returns its end offset.
func (p *parser) skipBraceBody() (int, error) {
	depth := 1

	for {
		t := p.next()

		switch t.Kind {
		case EOF:
			return 0, p.errorf(t, "unbalanced braces")
		case LBRACE:
			depth++
		case RBRACE:
			depth--
			if depth == 0 {
				return t.End, nil
			}
		}
	}
}

func (p *parser) skipBalanced(open, closing Kind) error {
	first, err := p.expect(open)
	if err != nil {
		return err
	}

	depth := 1

	for depth > 0 {
		t := p.next()

		switch t.Kind {
		case EOF:
			return p.errorf(first, "unbalanced %s", open)
		case open:
			depth++
		case closing:
			depth--
		}
	}

	return nil
}

func (p *parser) skipPipes() error {
	first, err := p.expect(PIPE)
	if err != nil {
		return err
	}

	for {
		t := p.next()

		switch t.Kind {
		case EOF:
			return p.errorf(first, "unterminated lambda parameters")
		case PIPE:
			return nil
		}
	}
}

func (p *parser) skipAngles() error {
	first, err := p.expect(LT)
	if err != nil {
		return err
	}

	depth := 1

	for depth > 0 {
		t := p.next()

		switch t.Kind {
		case EOF:
			return p.errorf(first, "unbalanced type arguments")
		case LT:
			depth++
		case GT:
			depth--
		case SHR:
			depth -= 2
		}
	}

	return nil
}

func (p *parser) skipType() error {
	switch {
	case p.at(AMP):
		p.next()

		if p.atWord("mut") {
			p.next()
		}

		return p.skipType()
	case p.at(LPAREN):
		return p.skipBalanced(LPAREN, RPAREN)
	case p.at(PIPE):
		if err := p.skipPipes(); err != nil {
			return err
		}

		return p.skipType()
	}

	t := p.peek()
	if t.Kind != IDENT && t.Kind != ADDRESS && t.Kind != NUMBER {
		return p.errorf(t, "expected type, found %q", t.Lit)
	}

	p.next()

	for p.accept(COLONCOLON) {
		if _, err := p.expect(IDENT); err != nil {
			return err
		}
	}

	if p.at(LT) {
		return p.skipAngles()
	}

	return nil
}

// looksLikeTypeArgs decides whether the '<' at the cursor opens a type
// argument list (as in `borrow_global<Coin>(addr)`) rather than a comparison.
func (p *parser) looksLikeTypeArgs() bool {
	depth := 0

	for j := p.i; j < len(p.toks)-1; j++ {
		switch p.toks[j].Kind {
		case LT:
			depth++
		case GT:
			depth--
		case SHR:
			depth -= 2
		case IDENT, COLONCOLON, COMMA, AMP, ADDRESS:
		default:
			return false
		}

		if depth < 0 {
			return false
		}

		if depth == 0 {
			switch p.toks[j+1].Kind {
			case LPAREN, LBRACE, COLONCOLON, LBRACK:
				return true
			default:
				return false
			}
		}
	}

	return false
}

func (p *parser) looksLikeStructLit(path string) bool {
	if !p.at(LBRACE) {
		return false
	}

	last := path
	if i := strings.Index(last, "<"); i >= 0 {
		last = last[:i]
	}

	if i := strings.LastIndex(last, "::"); i >= 0 {
		last = last[i+2:]
	}

	if last == "" || last[0] < 'A' || last[0] > 'Z' {
		return false
	}

	first, second := p.peekN(1), p.peekN(2)
	if first.Kind == RBRACE {
		return true
	}

	return first.Kind == IDENT && (second.Kind == COLON || second.Kind == COMMA || second.Kind == RBRACE)
}

// ---------------------------------------------------------------------------
// Blocks and statements
// ---------------------------------------------------------------------------

func (p *parser) block() (*Block, error) {
	lb, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}

	b := &Block{}

	for !p.at(RBRACE) {
		if p.at(EOF) {
			return nil, p.errorf(lb, "unterminated block")
		}

		if p.atWord("let") {
			s, err := p.letStmt()
			if err != nil {
				return nil, err
			}

			b.Stmts = append(b.Stmts, s)

			continue
		}

		if p.atWord("spec") && p.peekN(1).Kind == LBRACE {
			start := p.next().Pos
			p.next()

			end, err := p.skipBraceBody()
			if err != nil {
				return nil, err
			}

			p.accept(SEMI)
			b.Stmts = append(b.Stmts, &Opaque{Span: sp(start, end), Kind: "spec"})

			continue
		}

		e, err := p.stmtExpr()
		if err != nil {
			return nil, err
		}

		switch {
		case p.at(SEMI):
			semi := p.next()
			b.Stmts = append(b.Stmts, &ExprStmt{Span: sp(e.Pos(), semi.End), X: e, Semi: true})
		case p.at(RBRACE):
			b.Result = e
		case isBlockLike(e):
			b.Stmts = append(b.Stmts, &ExprStmt{Span: sp(e.Pos(), e.End()), X: e})
		default:
			t := p.peek()
			return nil, p.errorf(t, "expected ';' or '}', found %q", t.Lit)
		}
	}

	rb := p.next()
	b.Span = sp(lb.Pos, rb.End)

	return b, nil
}

// stmtExpr parses an expression in statement position. A statement that
// starts with a block-like expression ends with it, so `if (c) { .. } *r = 1;`
// is two statements.
func (p *parser) stmtExpr() (Expr, error) {
	t := p.peek()
	if t.Kind == LBRACE || t.Is("if") || t.Is("while") || t.Is("loop") {
		return p.primary()
	}

	return p.expr()
}

// body parses the branch of an if or the body of a loop.
func (p *parser) body() (Expr, error) {
	if p.at(LBRACE) {
		return p.block()
	}

	return p.expr()
}

func isBlockLike(e Expr) bool {
	switch e.(type) {
	case *Block, *IfExpr, *WhileExpr, *LoopExpr:
		return true
	}

	return false
}

func (p *parser) letStmt() (*LetStmt, error) {
	start := p.next()
	patternStart := p.peek().Pos
	depth := 0

	for {
		t := p.peek()
		if t.Kind == EOF {
			return nil, p.errorf(start, "unterminated let statement")
		}

		if depth == 0 && (t.Kind == ASSIGN || t.Kind == SEMI) {
			break
		}

		switch t.Kind {
		case LPAREN, LBRACE, LBRACK:
			depth++
		case RPAREN, RBRACE, RBRACK:
			depth--
		}

		p.next()
	}

	s := &LetStmt{Pattern: strings.TrimSpace(p.src[patternStart:p.prevEnd()])}

	if p.accept(ASSIGN) {
		value, err := p.expr()
		if err != nil {
			return nil, err
		}

		s.Value = value
	}

	semi, err := p.expect(SEMI)
	if err != nil {
		return nil, err
	}

	s.Span = sp(start.Pos, semi.End)

	return s, nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// binaryPrec holds the binding power of every infix operator.
var binaryPrec = map[Kind]int{
	PIPE2:  1,
	AMPAMP: 2,
	EQEQ:   3, NE: 3, LT: 3, GT: 3, LE: 3, GE: 3,
	PIPE:  4,
	CARET: 5,
	AMP:   6,
	SHL:   7, SHR: 7,
	PLUS: 8, MINUS: 8,
	STAR: 9, SLASH: 9, PERCENT: 9,
}

func (p *parser) expr() (Expr, error) {
	lhs, err := p.binary(0)
	if err != nil {
		return nil, err
	}

	if !p.accept(ASSIGN) {
		return lhs, nil
	}

	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &AssignExpr{Span: sp(lhs.Pos(), rhs.End()), Lhs: lhs, Rhs: rhs}, nil
}

func (p *parser) binary(minPrec int) (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		t := p.peek()

		if t.Is("as") {
			p.next()
			typeStart := p.peek().Pos

			if err := p.skipType(); err != nil {
				return nil, err
			}

			left = &CastExpr{Span: sp(left.Pos(), p.prevEnd()), X: left, Type: p.src[typeStart:p.prevEnd()]}

			continue
		}

		prec, ok := binaryPrec[t.Kind]
		if !ok || prec <= minPrec {
			return left, nil
		}

		p.next()

		right, err := p.binary(prec)
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Span: sp(left.Pos(), right.End()), X: left, Op: t.Kind, OpPos: t.Pos, Y: right}
	}
}

func (p *parser) unary() (Expr, error) {
	t := p.peek()

	var op string

	switch {
	case t.Kind == BANG:
		op = "!"
	case t.Kind == STAR:
		op = "*"
	case t.Kind == MINUS:
		op = "-"
	case t.Kind == AMP:
		op = "&"
		if p.peekN(1).Is("mut") {
			op = "&mut"
		}
	case (t.Is("move") || t.Is("copy")) && p.peekN(1).Kind == IDENT:
		op = t.Lit
	default:
		return p.postfix()
	}

	p.next()

	if op == "&mut" {
		p.next()
	}

	x, err := p.unary()
	if err != nil {
		return nil, err
	}

	return &UnaryExpr{Span: sp(t.Pos, x.End()), Op: op, X: x}, nil
}

func (p *parser) postfix() (Expr, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.at(DOT):
			p.next()

			name, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}

			x = &FieldExpr{Span: sp(x.Pos(), name.End), X: x, Name: name.Lit}

			if p.at(LT) && p.looksLikeTypeArgs() {
				if err := p.skipAngles(); err != nil {
					return nil, err
				}
			}

			if p.at(LPAREN) {
				args, end, err := p.args()
				if err != nil {
					return nil, err
				}

				x = &CallExpr{Span: sp(x.Pos(), end), Fun: x, Args: args}
			}
		case p.at(LBRACK) && !isBlockLike(x):
			p.next()

			index, err := p.expr()
			if err != nil {
				return nil, err
			}

			rb, err := p.expect(RBRACK)
			if err != nil {
				return nil, err
			}

			x = &IndexExpr{Span: sp(x.Pos(), rb.End), X: x, Index: index}
		default:
			return x, nil
		}
	}
}

func (p *parser) primary() (Expr, error) {
	t := p.peek()

	switch t.Kind {
	case NUMBER:
		if p.peekN(1).Kind == COLONCOLON {
			return p.nameExpr()
		}

		p.next()

		return p.intLit(t)
	case ADDRESS, BYTES:
		p.next()
		return &OtherLit{Span: sp(t.Pos, t.End), Kind: t.Kind}, nil
	case LPAREN:
		return p.parenOrTuple()
	case LBRACE:
		return p.block()
	case PIPE, PIPE2:
		return p.lambda()
	case IDENT:
		return p.keywordOrName(t)
	}

	return nil, p.errorf(t, "unexpected %q in expression", t.Lit)
}

func (p *parser) keywordOrName(t Token) (Expr, error) {
	switch t.Lit {
	case "true", "false":
		p.next()
		return &BoolLit{Span: sp(t.Pos, t.End), Value: t.Lit == "true"}, nil
	case "if":
		return p.ifExpr()
	case "while":
		return p.whileExpr()
	case "loop":
		p.next()

		body, err := p.body()
		if err != nil {
			return nil, err
		}

		return &LoopExpr{Span: sp(t.Pos, body.End()), Body: body}, nil
	case "return":
		p.next()

		if !p.startsExpr() {
			return &ReturnExpr{Span: sp(t.Pos, t.End)}, nil
		}

		x, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &ReturnExpr{Span: sp(t.Pos, x.End()), X: x}, nil
	case "abort":
		p.next()

		x, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &AbortExpr{Span: sp(t.Pos, x.End()), X: x}, nil
	case "break":
		p.next()
		return &BreakExpr{Span: sp(t.Pos, t.End)}, nil
	case "continue":
		p.next()
		return &ContinueExpr{Span: sp(t.Pos, t.End)}, nil
	}

	return p.nameExpr()
}

func (p *parser) startsExpr() bool {
	switch p.peek().Kind {
	case SEMI, RBRACE, RPAREN, COMMA, EOF:
		return false
	}

	return !p.atWord("else")
}

func (p *parser) intLit(t Token) (Expr, error) {
	lit := &IntLit{Span: sp(t.Pos, t.End)}
	body := t.Lit

	for _, suffix := range []string{"u8", "u16", "u32", "u64", "u128", "u256"} {
		if strings.HasSuffix(body, suffix) && len(body) > len(suffix) {
			lit.Suffix = suffix
			body = strings.TrimSuffix(body, suffix)

			break
		}
	}

	if strings.HasPrefix(body, "0x") {
		lit.Hex = true
		body = body[2:]
	}

	body = strings.ReplaceAll(body, "_", "")
	if body == "" || !validDigits(body, lit.Hex) {
		return nil, p.errorf(t, "malformed number %q", t.Lit)
	}

	lit.Digits = body

	return lit, nil
}

func validDigits(s string, hex bool) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) {
			continue
		}

		if hex && (('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')) {
			continue
		}

		return false
	}

	return true
}

func (p *parser) ifExpr() (Expr, error) {
	start := p.next()

	cond, err := p.parenCond()
	if err != nil {
		return nil, err
	}

	then, err := p.body()
	if err != nil {
		return nil, err
	}

	n := &IfExpr{Cond: cond, Then: then}
	end := then.End()

	if p.atWord("else") {
		p.next()

		els, err := p.body()
		if err != nil {
			return nil, err
		}

		n.Else = els
		end = els.End()
	}

	n.Span = sp(start.Pos, end)

	return n, nil
}

func (p *parser) whileExpr() (Expr, error) {
	start := p.next()

	cond, err := p.parenCond()
	if err != nil {
		return nil, err
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}

	return &WhileExpr{Span: sp(start.Pos, body.End()), Cond: cond, Body: body}, nil
}

func (p *parser) parenCond() (*ParenExpr, error) {
	lp, err := p.expect(LPAREN)
	if err != nil {
		return nil, err
	}

	x, err := p.expr()
	if err != nil {
		return nil, err
	}

	rp, err := p.expect(RPAREN)
	if err != nil {
		return nil, err
	}

	return &ParenExpr{Span: sp(lp.Pos, rp.End), X: x}, nil
}

func (p *parser) parenOrTuple() (Expr, error) {
	lp := p.next()

	if p.at(RPAREN) {
		rp := p.next()
		return &TupleExpr{Span: sp(lp.Pos, rp.End)}, nil
	}

	first, err := p.expr()
	if err != nil {
		return nil, err
	}

	if !p.at(COMMA) {
		rp, err := p.expect(RPAREN)
		if err != nil {
			return nil, err
		}

		return &ParenExpr{Span: sp(lp.Pos, rp.End), X: first}, nil
	}

	elems := []Expr{first}

	for p.accept(COMMA) {
		if p.at(RPAREN) {
			break
		}

		e, err := p.expr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)
	}

	rp, err := p.expect(RPAREN)
	if err != nil {
		return nil, err
	}

	return &TupleExpr{Span: sp(lp.Pos, rp.End), Elems: elems}, nil
}

func (p *parser) lambda() (Expr, error) {
	start := p.peek()

	if p.at(PIPE2) {
		p.next()
	} else if err := p.skipPipes(); err != nil {
		return nil, err
	}

	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &LambdaExpr{Span: sp(start.Pos, body.End()), Body: body}, nil
}

func (p *parser) nameExpr() (Expr, error) {
	start := p.next()

	for {
		if p.accept(COLONCOLON) {
			if p.at(LT) {
				if err := p.skipAngles(); err != nil {
					return nil, err
				}

				continue
			}

			if _, err := p.expect(IDENT); err != nil {
				return nil, err
			}

			continue
		}

		if p.at(LT) && p.looksLikeTypeArgs() {
			if err := p.skipAngles(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	end := p.prevEnd()
	path := p.src[start.Pos:end]
	name := &NameExpr{Span: sp(start.Pos, end), Path: path}

	switch {
	case p.at(BANG) && p.peekN(1).Kind == LPAREN:
		p.next()

		args, argsEnd, err := p.args()
		if err != nil {
			return nil, err
		}

		return &CallExpr{Span: sp(start.Pos, argsEnd), Fun: name, Macro: true, Args: args}, nil
	case p.at(LPAREN):
		args, argsEnd, err := p.args()
		if err != nil {
			return nil, err
		}

		return &CallExpr{Span: sp(start.Pos, argsEnd), Fun: name, Args: args}, nil
	case p.at(LBRACK) && (path == "vector" || strings.HasPrefix(path, "vector<")):
		return p.vectorLit(start.Pos)
	case p.looksLikeStructLit(path):
		return p.structLit(start.Pos, path)
	}

	return name, nil
}

func (p *parser) args() ([]Expr, int, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, 0, err
	}

	var args []Expr

	for !p.at(RPAREN) {
		e, err := p.expr()
		if err != nil {
			return nil, 0, err
		}

		args = append(args, e)

		if !p.accept(COMMA) {
			break
		}
	}

	rp, err := p.expect(RPAREN)
	if err != nil {
		return nil, 0, err
	}

	return args, rp.End, nil
}

func (p *parser) vectorLit(start int) (Expr, error) {
	p.next()

	var elems []Expr

	for !p.at(RBRACK) {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)

		if !p.accept(COMMA) {
			break
		}
	}

	rb, err := p.expect(RBRACK)
	if err != nil {
		return nil, err
	}

	return &VectorLit{Span: sp(start, rb.End), Elems: elems}, nil
}

func (p *parser) structLit(start int, name string) (Expr, error) {
	p.next()

	lit := &StructLit{Name: name}

	for !p.at(RBRACE) {
		field, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}

		init := FieldInit{Name: field.Lit}

		if p.accept(COLON) {
			value, err := p.expr()
			if err != nil {
				return nil, err
			}

			init.Value = value
		}

		lit.Fields = append(lit.Fields, init)

		if !p.accept(COMMA) {
			break
		}
	}

	rb, err := p.expect(RBRACE)
	if err != nil {
		return nil, err
	}

	lit.Span = sp(start, rb.End)

	return lit, nil
}
