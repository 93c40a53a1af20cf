// varcleaner.go — human-friendly variable renaming.
package optimize

import (
	"fmt"

	"github.com/mirvm/mir"
)

// VarNameCleaner renames variables back to readable spellings by
// dropping the "_<n>" suffixes the disambiguator introduced, reusing the
// bare stem whenever it is free within the node. Function names are left
// alone.
//
// Cleaning works per node, so two nodes may end up declaring the same
// spelling again: running this pass revokes the tree-wide uniqueness
// guarantee, and the session must be marked not-disambiguated afterwards.
type VarNameCleaner struct{}

func (VarNameCleaner) Name() string { return "VarNameCleaner" }

// Run rewrites the block in place. It never fails.
func (VarNameCleaner) Run(ctx *Context, b *mir.Block) error {
	taken := ctx.Dialect.BuiltinNames()
	for name := range ctx.Reserved {
		taken[name] = true
	}
	// Function names keep their spelling and must not be claimed by a
	// cleaned variable.
	walkStmts(b, func(stmt mir.Stmt) {
		if def, ok := stmt.(*mir.FuncDef); ok {
			taken[def.Name] = true
		}
	}, func(mir.Expr) {})

	renameBlock(b, func(old string, kind declKind) string {
		if kind == declFunc {
			return old
		}
		stem := stripNameSuffix(old)
		candidate := stem
		for i := 1; taken[candidate]; i++ {
			candidate = fmt.Sprintf("%s_%d", stem, i)
		}
		taken[candidate] = true
		return candidate
	})
	return nil
}
