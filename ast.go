// ast.go — syntax tree for Mir code blocks.
//
// Mir is a tiny expression-statement IR: blocks of statements over
// single-value expressions (calls, identifiers, literals). Every node
// carries the 1-based line and 0-based column of its first token so
// diagnostics can point back into the original source.
//
// The tree is plain mutable data. Optimizer passes rewrite it in place
// or swap whole subtrees; nothing here is shared between nodes except
// what a pass deliberately aliases, and CloneExpr exists so passes do
// not have to alias at all.
package mir

// Pos is a source position. Line is 1-based, Col is 0-based, matching
// the coordinates the lexer records on tokens.
type Pos struct {
	Line int
	Col  int
}

// Position returns the node's own position. Embedding Pos gives every
// node the method for free.
func (p Pos) Position() Pos { return p }

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Position() Pos
	stmtNode()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Position() Pos
	exprNode()
}

// Block is a braced sequence of statements. A Block is itself a valid
// statement (bare nested scope).
type Block struct {
	Pos
	Stmts []Stmt
}

// VarDecl is `let a, b := expr` or `let a` (zero-initialized).
// With more than one name the initializer must produce exactly that
// many values; with no initializer every name defaults independently.
type VarDecl struct {
	Pos
	Names []*Identifier
	Value Expr // nil when declared without initializer
}

// Assignment is `a, b := expr` over previously declared variables.
type Assignment struct {
	Pos
	Targets []*Identifier
	Value   Expr
}

// If has no else branch; lowering happens before this IR.
type If struct {
	Pos
	Cond Expr
	Body *Block
}

// For is `for <init-block> <cond> <post-block> <body-block>`.
// Variables declared in Init stay visible through Cond, Post and Body.
type For struct {
	Pos
	Init *Block
	Cond Expr
	Post *Block
	Body *Block
}

// FuncDef is `function name(p1, p2) -> r1, r2 { ... }`. Definitions are
// hoisted: a function is callable anywhere within its enclosing block.
type FuncDef struct {
	Pos
	Name    string
	Params  []*Identifier
	Returns []*Identifier
	Body    *Block
}

// ExprStmt is an expression in statement position. Only calls that
// produce zero values are legal here; the analyzer enforces that.
type ExprStmt struct {
	Pos
	Call *FuncCall
}

// Break and Continue are valid only inside a for body; Leave only
// inside a function body.
type Break struct{ Pos }
type Continue struct{ Pos }
type Leave struct{ Pos }

// FuncCall applies a user function or dialect builtin to argument
// expressions, each of which must produce exactly one value.
type FuncCall struct {
	Pos
	Func *Identifier
	Args []Expr
}

// Identifier is a variable or function reference.
type Identifier struct {
	Pos
	Name string
}

// LiteralKind discriminates Literal values.
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BoolLiteral
)

// Literal keeps the source spelling in Value; numeric literals are
// parsed on demand (see optimize's constant folder).
type Literal struct {
	Pos
	Kind  LiteralKind
	Value string
}

func (*Block) stmtNode()      {}
func (*VarDecl) stmtNode()    {}
func (*Assignment) stmtNode() {}
func (*If) stmtNode()         {}
func (*For) stmtNode()        {}
func (*FuncDef) stmtNode()    {}
func (*ExprStmt) stmtNode()   {}
func (*Break) stmtNode()      {}
func (*Continue) stmtNode()   {}
func (*Leave) stmtNode()      {}

func (*FuncCall) exprNode()   {}
func (*Identifier) exprNode() {}
func (*Literal) exprNode()    {}

// CloneExpr deep-copies an expression so a pass can substitute it in
// several places without aliasing mutable nodes.
func CloneExpr(e Expr) Expr {
	switch e := e.(type) {
	case *Literal:
		c := *e
		return &c
	case *Identifier:
		c := *e
		return &c
	case *FuncCall:
		c := &FuncCall{Pos: e.Pos, Func: &Identifier{Pos: e.Func.Pos, Name: e.Func.Name}}
		c.Args = make([]Expr, len(e.Args))
		for i, a := range e.Args {
			c.Args[i] = CloneExpr(a)
		}
		return c
	default:
		return e
	}
}
