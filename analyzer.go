// analyzer.go — scope and arity checking for Mir code blocks.
//
// The analyzer validates one object's code against the session dialect
// and produces AnalysisInfo, the per-node semantic metadata the
// optimizer passes consume. The info is valid only for the exact block
// value it was computed from; callers clear it before any structural
// rewrite.
//
// Scope rules (single namespace for variables and functions):
//   - identifiers must be declared before use; builtins are reserved
//   - no declaration may shadow any visible name or a builtin
//   - function definitions are hoisted to the top of their block
//   - function bodies cannot see enclosing variables, only functions
//   - break/continue only inside for bodies, leave only inside functions
//   - datasize/dataoffset arguments must be string literals naming a
//     data section or sub-object visible to the containing object
package mir

import (
	"fmt"
	"strings"
)

// FunctionSig is the arity of a user-defined function.
type FunctionSig struct {
	Params  int
	Returns int
}

// AnalysisInfo holds the semantic facts of one analyzed code block.
type AnalysisInfo struct {
	// Variables and Functions list every name declared anywhere in the
	// block, not just at top level.
	Variables map[string]bool
	Functions map[string]FunctionSig
	// DataNames are the qualified data names the block was checked
	// against.
	DataNames map[string]bool
}

// Diagnostic is one analysis finding with its source position.
type Diagnostic struct {
	Line int
	Col  int
	Msg  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Col+1, d.Msg)
}

// AnalysisError carries every diagnostic found in one analysis run.
type AnalysisError struct {
	Diagnostics []Diagnostic
}

func (e *AnalysisError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.String()
	}
	return "analysis failed: " + strings.Join(msgs, "; ")
}

type symKind int

const (
	symVar symKind = iota
	symFunc
)

type symbol struct {
	kind symKind
	sig  FunctionSig
}

// scope is one lexical level. barrier marks a function boundary:
// variable lookups stop there, function lookups pass through.
type scope struct {
	names   map[string]*symbol
	barrier bool
}

type analyzer struct {
	dialect *Dialect
	info    *AnalysisInfo
	scopes  []*scope
	loop    int
	diags   []Diagnostic
}

// AnalyzeBlock validates block and returns fresh metadata. dataNames may
// be nil when the block belongs to an object with no data sections. On
// failure the returned error is an *AnalysisError listing every finding.
func AnalyzeBlock(d *Dialect, block *Block, dataNames map[string]bool) (*AnalysisInfo, error) {
	a := &analyzer{
		dialect: d,
		info: &AnalysisInfo{
			Variables: map[string]bool{},
			Functions: map[string]FunctionSig{},
			DataNames: dataNames,
		},
	}
	a.checkBlock(block, false)
	if len(a.diags) > 0 {
		return nil, &AnalysisError{Diagnostics: a.diags}
	}
	return a.info, nil
}

func (a *analyzer) errorf(pos Pos, format string, args ...any) {
	a.diags = append(a.diags, Diagnostic{Line: pos.Line, Col: pos.Col, Msg: fmt.Sprintf(format, args...)})
}

func (a *analyzer) push(barrier bool) {
	a.scopes = append(a.scopes, &scope{names: map[string]*symbol{}, barrier: barrier})
}

func (a *analyzer) pop() { a.scopes = a.scopes[:len(a.scopes)-1] }

// visible reports whether name is already taken anywhere on the stack.
// Declaration conflicts ignore barriers: shadowing is always illegal.
func (a *analyzer) visible(name string) bool {
	for _, s := range a.scopes {
		if _, ok := s.names[name]; ok {
			return true
		}
	}
	return false
}

func (a *analyzer) lookupVar(name string) *symbol {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if sym, ok := a.scopes[i].names[name]; ok {
			return sym
		}
		if a.scopes[i].barrier {
			return nil
		}
	}
	return nil
}

func (a *analyzer) lookupFunc(name string) *symbol {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if sym, ok := a.scopes[i].names[name]; ok {
			return sym
		}
	}
	return nil
}

func (a *analyzer) declare(pos Pos, name string, sym *symbol) {
	if a.dialect.Builtin(name) != nil {
		a.errorf(pos, "%q is a builtin and cannot be redeclared", name)
		return
	}
	if a.visible(name) {
		a.errorf(pos, "%q is already declared in a visible scope", name)
		return
	}
	a.scopes[len(a.scopes)-1].names[name] = sym
	switch sym.kind {
	case symVar:
		a.info.Variables[name] = true
	case symFunc:
		a.info.Functions[name] = sym.sig
	}
}

// checkBlock opens a scope, hoists function definitions, then checks
// statements in order.
func (a *analyzer) checkBlock(b *Block, barrier bool) {
	a.push(barrier)
	defer a.pop()
	a.hoistFuncs(b)
	for _, stmt := range b.Stmts {
		a.checkStmt(stmt)
	}
}

func (a *analyzer) hoistFuncs(b *Block) {
	for _, stmt := range b.Stmts {
		if def, ok := stmt.(*FuncDef); ok {
			a.declare(def.Pos, def.Name, &symbol{
				kind: symFunc,
				sig:  FunctionSig{Params: len(def.Params), Returns: len(def.Returns)},
			})
		}
	}
}

func (a *analyzer) checkStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *Block:
		a.checkBlock(s, false)
	case *VarDecl:
		if s.Value != nil {
			a.checkExpr(s.Value, len(s.Names))
		}
		for _, name := range s.Names {
			a.declare(name.Pos, name.Name, &symbol{kind: symVar})
		}
	case *Assignment:
		seen := map[string]bool{}
		for _, target := range s.Targets {
			if seen[target.Name] {
				a.errorf(target.Pos, "duplicate assignment target %q", target.Name)
			}
			seen[target.Name] = true
			sym := a.lookupVar(target.Name)
			switch {
			case a.dialect.Builtin(target.Name) != nil:
				a.errorf(target.Pos, "cannot assign to builtin %q", target.Name)
			case sym == nil:
				a.errorf(target.Pos, "assignment to undeclared variable %q", target.Name)
			case sym.kind != symVar:
				a.errorf(target.Pos, "cannot assign to function %q", target.Name)
			}
		}
		a.checkExpr(s.Value, len(s.Targets))
	case *If:
		a.checkExpr(s.Cond, 1)
		a.checkBlock(s.Body, false)
	case *For:
		// The init block's scope extends over cond, post and body.
		a.push(false)
		a.hoistFuncs(s.Init)
		for _, st := range s.Init.Stmts {
			a.checkStmt(st)
		}
		a.checkExpr(s.Cond, 1)
		a.checkBlock(s.Post, false)
		a.loop++
		a.checkBlock(s.Body, false)
		a.loop--
		a.pop()
	case *FuncDef:
		// Name already hoisted in the enclosing block.
		a.checkBlock(funcScopeBlock(s), true)
	case *ExprStmt:
		a.checkExpr(s.Call, 0)
	case *Break:
		if a.loop == 0 {
			a.errorf(s.Pos, "break outside of for loop")
		}
	case *Continue:
		if a.loop == 0 {
			a.errorf(s.Pos, "continue outside of for loop")
		}
	case *Leave:
		if !a.inFunction() {
			a.errorf(s.Pos, "leave outside of function")
		}
	}
}

func (a *analyzer) inFunction() bool {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if a.scopes[i].barrier {
			return true
		}
	}
	return false
}

// funcScopeBlock builds the checking view of a function: parameters and
// return variables declared ahead of the body's own statements.
func funcScopeBlock(def *FuncDef) *Block {
	view := &Block{Pos: def.Body.Pos}
	if len(def.Params) > 0 {
		view.Stmts = append(view.Stmts, &VarDecl{Pos: def.Pos, Names: def.Params})
	}
	if len(def.Returns) > 0 {
		view.Stmts = append(view.Stmts, &VarDecl{Pos: def.Pos, Names: def.Returns})
	}
	view.Stmts = append(view.Stmts, def.Body.Stmts...)
	return view
}

// checkExpr validates an expression and its value count against the
// number of values the context consumes.
func (a *analyzer) checkExpr(e Expr, want int) {
	got := 1
	switch e := e.(type) {
	case *Literal:
		// fine as a single value
	case *Identifier:
		if a.dialect.Builtin(e.Name) != nil {
			a.errorf(e.Pos, "builtin %q used as a value", e.Name)
		} else if sym := a.lookupVar(e.Name); sym == nil {
			a.errorf(e.Pos, "undeclared identifier %q", e.Name)
		} else if sym.kind != symVar {
			a.errorf(e.Pos, "function %q used as a value", e.Name)
		}
	case *FuncCall:
		got = a.checkCall(e)
	}
	if got != want {
		a.errorf(e.Position(), "expression produces %d value(s), expected %d", got, want)
	}
}

func (a *analyzer) checkCall(call *FuncCall) int {
	name := call.Func.Name
	if b := a.dialect.Builtin(name); b != nil {
		if len(call.Args) != b.Params {
			a.errorf(call.Pos, "builtin %q takes %d argument(s), got %d", name, b.Params, len(call.Args))
		}
		for _, arg := range call.Args {
			if b.LiteralArgs {
				a.checkDataArg(name, arg)
				continue
			}
			a.checkExpr(arg, 1)
		}
		return b.Returns
	}
	sym := a.lookupFunc(name)
	if sym == nil {
		a.errorf(call.Pos, "call to undeclared function %q", name)
		return 1
	}
	if sym.kind != symFunc {
		a.errorf(call.Pos, "variable %q is not callable", name)
		return 1
	}
	if len(call.Args) != sym.sig.Params {
		a.errorf(call.Pos, "function %q takes %d argument(s), got %d", name, sym.sig.Params, len(call.Args))
	}
	for _, arg := range call.Args {
		a.checkExpr(arg, 1)
	}
	return sym.sig.Returns
}

func (a *analyzer) checkDataArg(builtin string, arg Expr) {
	lit, ok := arg.(*Literal)
	if !ok || lit.Kind != StringLiteral {
		a.errorf(arg.Position(), "%q expects a string literal data name", builtin)
		return
	}
	if !a.info.DataNames[lit.Value] {
		a.errorf(lit.Pos, "unknown data name %q", lit.Value)
	}
}
