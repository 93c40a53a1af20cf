// propagate.go — literal propagation into variable uses.
package optimize

import "github.com/mirvm/mir"

// LiteralPropagator replaces reads of variables bound once to a literal
// (`let x := 1` with x never reassigned) by a copy of that literal. The
// declaration itself stays; UnusedPruner removes it once nothing reads
// the variable anymore.
type LiteralPropagator struct{}

func (LiteralPropagator) Name() string { return "LiteralPropagator" }

func (LiteralPropagator) Run(ctx *Context, b *mir.Block) error {
	p := &propagator{reassigned: map[string]bool{}}
	// A name assigned anywhere disqualifies its binding everywhere;
	// Mir scoping forbids shadowing, so one block-wide set suffices.
	walkStmts(b, func(stmt mir.Stmt) {
		if assign, ok := stmt.(*mir.Assignment); ok {
			for _, t := range assign.Targets {
				p.reassigned[t.Name] = true
			}
		}
	}, func(mir.Expr) {})
	p.block(b)
	return nil
}

type propagator struct {
	reassigned map[string]bool
	// env stacks literal bindings per scope; a nil map marks a function
	// barrier, since function bodies cannot see enclosing variables.
	env []map[string]*mir.Literal
}

func (p *propagator) push(barrier bool) {
	if barrier {
		p.env = append(p.env, nil)
		return
	}
	p.env = append(p.env, map[string]*mir.Literal{})
}

func (p *propagator) pop() { p.env = p.env[:len(p.env)-1] }

func (p *propagator) lookup(name string) *mir.Literal {
	for i := len(p.env) - 1; i >= 0; i-- {
		if p.env[i] == nil {
			return nil
		}
		if lit, ok := p.env[i][name]; ok {
			return lit
		}
	}
	return nil
}

func (p *propagator) bind(name string, lit *mir.Literal) {
	top := p.env[len(p.env)-1]
	if top != nil {
		top[name] = lit
	}
}

func (p *propagator) block(b *mir.Block) {
	p.push(false)
	defer p.pop()
	for _, stmt := range b.Stmts {
		p.stmt(stmt)
	}
}

func (p *propagator) stmt(stmt mir.Stmt) {
	switch s := stmt.(type) {
	case *mir.Block:
		p.block(s)
	case *mir.VarDecl:
		if s.Value != nil {
			s.Value = p.expr(s.Value)
		}
		if len(s.Names) == 1 && s.Value != nil && !p.reassigned[s.Names[0].Name] {
			if lit, ok := s.Value.(*mir.Literal); ok {
				p.bind(s.Names[0].Name, lit)
			}
		}
	case *mir.Assignment:
		s.Value = p.expr(s.Value)
	case *mir.If:
		s.Cond = p.expr(s.Cond)
		p.block(s.Body)
	case *mir.For:
		p.push(false)
		for _, st := range s.Init.Stmts {
			p.stmt(st)
		}
		s.Cond = p.expr(s.Cond)
		p.block(s.Post)
		p.block(s.Body)
		p.pop()
	case *mir.FuncDef:
		p.push(true)
		p.block(s.Body)
		p.pop()
	case *mir.ExprStmt:
		for i, arg := range s.Call.Args {
			s.Call.Args[i] = p.expr(arg)
		}
	}
}

func (p *propagator) expr(e mir.Expr) mir.Expr {
	switch e := e.(type) {
	case *mir.Identifier:
		if lit := p.lookup(e.Name); lit != nil {
			return mir.CloneExpr(lit)
		}
		return e
	case *mir.FuncCall:
		for i, arg := range e.Args {
			e.Args[i] = p.expr(arg)
		}
		return e
	default:
		return e
	}
}
