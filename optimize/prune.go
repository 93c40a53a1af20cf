// prune.go — removal of unreferenced declarations.
package optimize

import "github.com/mirvm/mir"

// UnusedPruner drops variable declarations nothing reads and function
// definitions nothing calls. It requires the tree-wide uniqueness
// invariant: with globally distinct names a block-wide reference count
// is exact, no scoping needed. Declarations whose initializer might
// have side effects are kept.
type UnusedPruner struct{}

func (UnusedPruner) Name() string { return "UnusedPruner" }

func (UnusedPruner) Run(ctx *Context, b *mir.Block) error {
	// Iterate to a fixed point: removing a declaration can strand the
	// names its initializer was the last reader of.
	for {
		if !pruneOnce(ctx.Dialect, b) {
			return nil
		}
	}
}

func pruneOnce(d *mir.Dialect, b *mir.Block) bool {
	reads := countReferences(b)
	assigned := map[string]bool{}
	walkStmts(b, func(stmt mir.Stmt) {
		if a, ok := stmt.(*mir.Assignment); ok {
			for _, t := range a.Targets {
				assigned[t.Name] = true
			}
		}
	}, func(mir.Expr) {})

	removable := func(stmt mir.Stmt) bool {
		switch s := stmt.(type) {
		case *mir.VarDecl:
			for _, id := range s.Names {
				if reads[id.Name] > 0 || assigned[id.Name] {
					return false
				}
			}
			return s.Value == nil || isPureExpr(d, s.Value)
		case *mir.FuncDef:
			return reads[s.Name] == 0
		default:
			return false
		}
	}

	changed := false
	var filter func(b *mir.Block)
	filter = func(b *mir.Block) {
		kept := b.Stmts[:0]
		for _, stmt := range b.Stmts {
			if removable(stmt) {
				changed = true
				continue
			}
			switch s := stmt.(type) {
			case *mir.Block:
				filter(s)
			case *mir.If:
				filter(s.Body)
			case *mir.For:
				filter(s.Init)
				filter(s.Post)
				filter(s.Body)
			case *mir.FuncDef:
				filter(s.Body)
			}
			kept = append(kept, stmt)
		}
		b.Stmts = kept
	}
	filter(b)
	return changed
}
