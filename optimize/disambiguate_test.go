// disambiguate_test.go
package optimize

import (
	"testing"

	"github.com/mirvm/mir"
)

func Test_Disambiguate_SiblingScopes(t *testing.T) {
	b := parseBlock(t, `{
    {
        let x := 1
        x := add(x, 1)
    }
    {
        let x := 2
    }
    function f(x) -> y {
        y := x
    }
}`)
	Disambiguate(NewNameDispenser(mir.DefaultDialect(), nil), b)
	wantBlock(t, mir.FormatBlock(b), `{
    {
        let x := 1
        x := add(x, 1)
    }
    {
        let x_1 := 2
    }
    function f(x_2) -> y {
        y := x_2
    }
}`)
}

func Test_Disambiguate_SecondRunIsIdentity(t *testing.T) {
	b := parseBlock(t, `{
    { let v := 1 }
    { let v := 2 }
    { let v := 3 }
}`)
	Disambiguate(NewNameDispenser(mir.DefaultDialect(), nil), b)
	first := mir.FormatBlock(b)

	Disambiguate(NewNameDispenser(mir.DefaultDialect(), nil), b)
	if got := mir.FormatBlock(b); got != first {
		t.Fatalf("second run changed the block:\nfirst:\n%s\nsecond:\n%s", first, got)
	}
}

func Test_Disambiguate_SharedDispenserSpansBlocks(t *testing.T) {
	// The driver threads one dispenser through every node of the object
	// tree. Names in the second block must not collide with the first.
	b1 := parseBlock(t, `{ let x := 1 }`)
	b2 := parseBlock(t, `{ let x := 2 }`)
	disp := NewNameDispenser(mir.DefaultDialect(), nil)
	Disambiguate(disp, b1)
	Disambiguate(disp, b2)

	wantBlock(t, mir.FormatBlock(b1), `{ let x := 1 }`)
	wantBlock(t, mir.FormatBlock(b2), `{ let x_1 := 2 }`)
}

func Test_Disambiguate_AvoidsBuiltinsAndReserved(t *testing.T) {
	b := parseBlock(t, `{
    { let add := 1 }
    { let keep := 2 }
}`)
	Disambiguate(NewNameDispenser(mir.DefaultDialect(), map[string]bool{"keep": true}), b)
	wantBlock(t, mir.FormatBlock(b), `{
    { let add_1 := 1 }
    { let keep_1 := 2 }
}`)
}
