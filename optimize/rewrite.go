// rewrite.go — bottom-up expression rewriting shared by the folding
// passes.
package optimize

import "github.com/mirvm/mir"

// rewriteExprs replaces every expression in the block with fn's result,
// visiting call arguments before the call itself so nested folds feed
// outer ones.
func rewriteExprs(b *mir.Block, fn func(mir.Expr) mir.Expr) {
	var rewrite func(e mir.Expr) mir.Expr
	rewrite = func(e mir.Expr) mir.Expr {
		if e == nil {
			return nil
		}
		if call, ok := e.(*mir.FuncCall); ok {
			for i, arg := range call.Args {
				call.Args[i] = rewrite(arg)
			}
		}
		return fn(e)
	}
	var walkBlock func(b *mir.Block)
	walkBlock = func(b *mir.Block) {
		for _, stmt := range b.Stmts {
			switch s := stmt.(type) {
			case *mir.Block:
				walkBlock(s)
			case *mir.VarDecl:
				if s.Value != nil {
					s.Value = rewrite(s.Value)
				}
			case *mir.Assignment:
				s.Value = rewrite(s.Value)
			case *mir.If:
				s.Cond = rewrite(s.Cond)
				walkBlock(s.Body)
			case *mir.For:
				walkBlock(s.Init)
				s.Cond = rewrite(s.Cond)
				walkBlock(s.Post)
				walkBlock(s.Body)
			case *mir.FuncDef:
				walkBlock(s.Body)
			case *mir.ExprStmt:
				// Statement calls must keep returning zero values, so
				// only their arguments are rewritten.
				for i, arg := range s.Call.Args {
					s.Call.Args[i] = rewrite(arg)
				}
			}
		}
	}
	walkBlock(b)
}

// isPureExpr reports whether evaluating e can have no side effect under
// the dialect: literals, identifiers, and pure builtin calls over pure
// arguments. User function calls are never assumed pure.
func isPureExpr(d *mir.Dialect, e mir.Expr) bool {
	switch e := e.(type) {
	case *mir.Literal, *mir.Identifier:
		return true
	case *mir.FuncCall:
		b := d.Builtin(e.Func.Name)
		if b == nil || !b.Pure {
			return false
		}
		for _, arg := range e.Args {
			if !isPureExpr(d, arg) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
