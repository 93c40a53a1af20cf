// Package optimize holds the Mir transformation passes: the step
// registry the driver dispatches into, plus the three fixed utilities
// (disambiguator, variable-name cleaner, stack compressor) and the
// fresh-name dispenser they share.
package optimize

import (
	"fmt"
	"strings"

	"github.com/mirvm/mir"
)

// NameDispenser hands out identifiers guaranteed not to collide with
// any name it has seen. It is cheap to rebuild and the driver discards
// it after every applied step so later passes count collisions from the
// real, current set of in-use names.
type NameDispenser struct {
	used map[string]bool
}

// NewNameDispenser seeds a dispenser with the dialect's builtins and an
// optional reserved set.
func NewNameDispenser(d *mir.Dialect, reserved map[string]bool) *NameDispenser {
	nd := &NameDispenser{used: d.BuiltinNames()}
	for name := range reserved {
		nd.used[name] = true
	}
	return nd
}

// Used reports whether a name has been handed out or marked.
func (nd *NameDispenser) Used(name string) bool { return nd.used[name] }

// MarkUsed records an externally chosen name.
func (nd *NameDispenser) MarkUsed(name string) { nd.used[name] = true }

// NewName returns base itself when still free, otherwise the first free
// "<stem>_<n>" where stem is base without any numeric suffix. The result
// is marked used.
func (nd *NameDispenser) NewName(base string) string {
	if !nd.used[base] {
		nd.used[base] = true
		return base
	}
	stem := stripNameSuffix(base)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", stem, i)
		if !nd.used[candidate] {
			nd.used[candidate] = true
			return candidate
		}
	}
}

// stripNameSuffix removes one trailing "_<digits>" group, if present.
func stripNameSuffix(name string) string {
	i := strings.LastIndexByte(name, '_')
	if i <= 0 || i == len(name)-1 {
		return name
	}
	for _, c := range name[i+1:] {
		if c < '0' || c > '9' {
			return name
		}
	}
	return name[:i]
}
