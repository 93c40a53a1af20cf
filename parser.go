// parser.go — recursive-descent parser for Mir blocks and objects.
//
// Grammar (EBNF, comments and whitespace elided):
//
//	Source    = Object | Block .
//	Object    = "object" string "{" "code" Block { Object | Data } "}" .
//	Data      = "data" string string .
//	Block     = "{" { Statement } "}" .
//	Statement = Block | FuncDef | VarDecl | Assignment | If | For
//	          | "break" | "continue" | "leave" | ExprStmt .
//	FuncDef   = "function" ident "(" [ IdentList ] ")" [ "->" IdentList ] Block .
//	VarDecl   = "let" IdentList [ ":=" Expr ] .
//	Assignment = IdentList ":=" Expr .
//	If        = "if" Expr Block .
//	For       = "for" Block Expr Block Block .
//	ExprStmt  = Call .
//	Expr      = Call | ident | Literal .
//	Call      = ident "(" [ Expr { "," Expr } ] ")" .
//
// A bare top-level Block is wrapped into a synthetic object named
// "object" so the rest of the system always sees a tree; ParseSource
// reports the wrapping so rendering can print just the block again.
// Sibling object/data names must be unique — dotted path resolution
// relies on that, so the parser rejects duplicates outright.
package mir

import "fmt"

// ParseError reports a syntax failure with 1-based Line and 0-based Col.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// BareObjectName is the name given to the synthetic object wrapped
// around a bare top-level code block.
const BareObjectName = "object"

type parser struct {
	toks []Token
	pos  int
}

// ParseSource parses a full source text into an object tree. The second
// result reports whether the input was a bare code block rather than
// object notation.
func ParseSource(src string) (*Object, bool, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, false, err
	}
	p := &parser{toks: toks}
	bare := p.peek().Type == LBRACE
	var obj *Object
	if bare {
		block, err := p.parseBlock()
		if err != nil {
			return nil, false, err
		}
		obj = &Object{Pos: block.Pos, Name: BareObjectName, Code: block}
	} else {
		obj, err = p.parseObject()
		if err != nil {
			return nil, false, err
		}
	}
	if tok := p.peek(); tok.Type != EOF {
		return nil, false, p.errorAt(tok, "expected end of input, found %q", tok.Lexeme)
	}
	return obj, bare, nil
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(tt TokenType) bool { return p.peek().Type == tt }

func (p *parser) expect(tt TokenType, what string) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errorAt(tok, "expected %s, found %q", what, tokenText(tok))
	}
	return p.next(), nil
}

func (p *parser) errorAt(tok Token, format string, args ...any) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}

func tokenText(tok Token) string {
	if tok.Type == EOF {
		return "end of input"
	}
	return tok.Lexeme
}

func tokenPos(tok Token) Pos { return Pos{Line: tok.Line, Col: tok.Col} }

func (p *parser) parseObject() (*Object, error) {
	kw, err := p.expect(OBJECT, "'object'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(STRING, "object name string")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE, "'{'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(CODE, "'code'"); err != nil {
		return nil, err
	}
	code, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	obj := &Object{Pos: tokenPos(kw), Name: name.Literal, Code: code}
	seen := map[string]bool{}
	for {
		switch p.peek().Type {
		case OBJECT:
			sub, err := p.parseObject()
			if err != nil {
				return nil, err
			}
			if seen[sub.Name] {
				return nil, p.errorAt(kw, "duplicate sub-node name %q in object %q", sub.Name, obj.Name)
			}
			seen[sub.Name] = true
			obj.SubNodes = append(obj.SubNodes, sub)
		case DATA:
			dataKw := p.next()
			dataName, err := p.expect(STRING, "data name string")
			if err != nil {
				return nil, err
			}
			dataVal, err := p.expect(STRING, "data value string")
			if err != nil {
				return nil, err
			}
			if seen[dataName.Literal] {
				return nil, p.errorAt(dataKw, "duplicate sub-node name %q in object %q", dataName.Literal, obj.Name)
			}
			seen[dataName.Literal] = true
			obj.SubNodes = append(obj.SubNodes, &Data{Pos: tokenPos(dataKw), Name: dataName.Literal, Value: dataVal.Literal})
		case RBRACE:
			p.next()
			return obj, nil
		default:
			return nil, p.errorAt(p.peek(), "expected 'object', 'data' or '}', found %q", tokenText(p.peek()))
		}
	}
}

func (p *parser) parseBlock() (*Block, error) {
	open, err := p.expect(LBRACE, "'{'")
	if err != nil {
		return nil, err
	}
	block := &Block{Pos: tokenPos(open)}
	for !p.at(RBRACE) {
		if p.at(EOF) {
			return nil, p.errorAt(p.peek(), "unterminated block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	p.next()
	return block, nil
}

func (p *parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case LBRACE:
		return p.parseBlock()
	case FUNCTION:
		return p.parseFuncDef()
	case LET:
		return p.parseVarDecl()
	case IF:
		p.next()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &If{Pos: tokenPos(tok), Cond: cond, Body: body}, nil
	case FOR:
		return p.parseFor()
	case BREAK:
		p.next()
		return &Break{Pos: tokenPos(tok)}, nil
	case CONTINUE:
		p.next()
		return &Continue{Pos: tokenPos(tok)}, nil
	case LEAVE:
		p.next()
		return &Leave{Pos: tokenPos(tok)}, nil
	case IDENT:
		return p.parseCallOrAssignment()
	default:
		return nil, p.errorAt(tok, "expected statement, found %q", tokenText(tok))
	}
}

func (p *parser) parseFuncDef() (Stmt, error) {
	kw := p.next()
	name, err := p.expect(IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	def := &FuncDef{Pos: tokenPos(kw), Name: name.Lexeme}
	if !p.at(RPAREN) {
		def.Params, err = p.parseIdentList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	if p.at(ARROW) {
		p.next()
		def.Returns, err = p.parseIdentList()
		if err != nil {
			return nil, err
		}
	}
	def.Body, err = p.parseBlock()
	if err != nil {
		return nil, err
	}
	return def, nil
}

func (p *parser) parseVarDecl() (Stmt, error) {
	kw := p.next()
	names, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	decl := &VarDecl{Pos: tokenPos(kw), Names: names}
	if p.at(DEFINE) {
		p.next()
		decl.Value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return decl, nil
}

func (p *parser) parseFor() (Stmt, error) {
	kw := p.next()
	init, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	post, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &For{Pos: tokenPos(kw), Init: init, Cond: cond, Post: post, Body: body}, nil
}

// parseCallOrAssignment disambiguates statements that begin with an
// identifier: `a, b := expr` is an assignment, `f(...)` an expression
// statement. Anything else is malformed.
func (p *parser) parseCallOrAssignment() (Stmt, error) {
	first := p.peek()
	names, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	if p.at(DEFINE) {
		p.next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &Assignment{Pos: tokenPos(first), Targets: names, Value: value}, nil
	}
	if len(names) == 1 && p.at(LPAREN) {
		call, err := p.parseCall(names[0])
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Pos: tokenPos(first), Call: call}, nil
	}
	return nil, p.errorAt(p.peek(), "expected ':=' or '(' after identifier, found %q", tokenText(p.peek()))
}

func (p *parser) parseIdentList() ([]*Identifier, error) {
	var names []*Identifier
	for {
		tok, err := p.expect(IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		names = append(names, &Identifier{Pos: tokenPos(tok), Name: tok.Lexeme})
		if !p.at(COMMA) {
			return names, nil
		}
		p.next()
	}
}

func (p *parser) parseExpression() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case IDENT:
		p.next()
		id := &Identifier{Pos: tokenPos(tok), Name: tok.Lexeme}
		if p.at(LPAREN) {
			return p.parseCall(id)
		}
		return id, nil
	case NUMBER:
		p.next()
		return &Literal{Pos: tokenPos(tok), Kind: NumberLiteral, Value: tok.Lexeme}, nil
	case STRING:
		p.next()
		return &Literal{Pos: tokenPos(tok), Kind: StringLiteral, Value: tok.Literal}, nil
	case BOOLEAN:
		p.next()
		return &Literal{Pos: tokenPos(tok), Kind: BoolLiteral, Value: tok.Lexeme}, nil
	default:
		return nil, p.errorAt(tok, "expected expression, found %q", tokenText(tok))
	}
}

func (p *parser) parseCall(fn *Identifier) (*FuncCall, error) {
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	call := &FuncCall{Pos: fn.Pos, Func: fn}
	if p.at(RPAREN) {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.at(COMMA) {
			p.next()
			continue
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return call, nil
	}
}
