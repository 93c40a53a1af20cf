// disambiguate.go — the global identifier uniqueness pass.
package optimize

import "github.com/mirvm/mir"

// Disambiguate rewrites every declaration in the block so the name is
// unique within the dispenser's view. Running it over a whole object
// tree with one shared dispenser makes identifiers pairwise distinct
// across every node: the invariant later passes (pruning, flattening,
// stack compression) rely on.
//
// The node's analysis metadata must be fresh for the current code; the
// caller clears it afterwards since this is a structural rewrite.
// First occurrences keep their spelling, later collisions become
// "<stem>_<n>", so a second run changes nothing but is harmless.
func Disambiguate(disp *NameDispenser, b *mir.Block) {
	renameBlock(b, func(old string, _ declKind) string {
		return disp.NewName(old)
	})
}
