// names.go — AST walks over declared and referenced identifiers, shared
// by the renaming passes and the pruners.
package optimize

import "github.com/mirvm/mir"

// CollectNames adds every identifier occurring in the block (declaration
// sites and uses alike) to the given set.
func CollectNames(b *mir.Block, into map[string]bool) {
	walkStmts(b, func(stmt mir.Stmt) {
		switch s := stmt.(type) {
		case *mir.VarDecl:
			for _, id := range s.Names {
				into[id.Name] = true
			}
		case *mir.Assignment:
			for _, id := range s.Targets {
				into[id.Name] = true
			}
		case *mir.FuncDef:
			into[s.Name] = true
			for _, id := range s.Params {
				into[id.Name] = true
			}
			for _, id := range s.Returns {
				into[id.Name] = true
			}
		}
	}, func(e mir.Expr) {
		switch e := e.(type) {
		case *mir.Identifier:
			into[e.Name] = true
		case *mir.FuncCall:
			into[e.Func.Name] = true
		}
	})
}

// CollectTreeNames gathers every identifier used anywhere in the object
// tree. The driver rebuilds its name dispenser from this after each step.
func CollectTreeNames(root *mir.Object) map[string]bool {
	names := map[string]bool{}
	_ = mir.WalkPostOrder(root, func(o *mir.Object) error {
		CollectNames(o.Code, names)
		return nil
	})
	return names
}

// countReferences tallies identifier uses in the block, excluding
// declaration sites (let names, function names/params/returns) and
// assignment targets.
func countReferences(b *mir.Block) map[string]int {
	refs := map[string]int{}
	walkStmts(b, func(mir.Stmt) {}, func(e mir.Expr) {
		switch e := e.(type) {
		case *mir.Identifier:
			refs[e.Name]++
		case *mir.FuncCall:
			refs[e.Func.Name]++
		}
	})
	return refs
}

// walkStmts visits every statement and every expression in the block in
// document order. fnStmt sees each statement before its children; fnExpr
// sees each expression node including nested call arguments.
func walkStmts(b *mir.Block, fnStmt func(mir.Stmt), fnExpr func(mir.Expr)) {
	var walkExpr func(e mir.Expr)
	walkExpr = func(e mir.Expr) {
		if e == nil {
			return
		}
		fnExpr(e)
		if call, ok := e.(*mir.FuncCall); ok {
			for _, arg := range call.Args {
				walkExpr(arg)
			}
		}
	}
	var walkBlock func(b *mir.Block)
	walkBlock = func(b *mir.Block) {
		for _, stmt := range b.Stmts {
			fnStmt(stmt)
			switch s := stmt.(type) {
			case *mir.Block:
				walkBlock(s)
			case *mir.VarDecl:
				walkExpr(s.Value)
			case *mir.Assignment:
				walkExpr(s.Value)
			case *mir.If:
				walkExpr(s.Cond)
				walkBlock(s.Body)
			case *mir.For:
				walkBlock(s.Init)
				walkExpr(s.Cond)
				walkBlock(s.Post)
				walkBlock(s.Body)
			case *mir.FuncDef:
				walkBlock(s.Body)
			case *mir.ExprStmt:
				walkExpr(s.Call)
			}
		}
	}
	walkBlock(b)
}
