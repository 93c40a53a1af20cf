// varcleaner_test.go
package optimize

import (
	"testing"

	"github.com/mirvm/mir"
)

func Test_VarNameCleaner_StripsSuffixes(t *testing.T) {
	got := runStep(t, VarNameCleaner{}, `{
    let x_1 := 1
    let x_2 := add(x_1, 1)
    x_2 := x_1
}`)
	wantBlock(t, got, `{
    let x := 1
    let x_1 := add(x, 1)
    x_1 := x
}`)
}

func Test_VarNameCleaner_LeavesFunctionNamesAlone(t *testing.T) {
	got := runStep(t, VarNameCleaner{}, `{
    function f_1(a_3) -> b_7 {
        b_7 := a_3
    }
    let r_2 := f_1(1)
}`)
	wantBlock(t, got, `{
    function f_1(a) -> b {
        b := a
    }
    let r := f_1(1)
}`)
}

func Test_VarNameCleaner_AvoidsBuiltinsAndFunctions(t *testing.T) {
	// "add" is a builtin and "f" is declared in the node, so neither stem
	// may be claimed by a cleaned variable.
	got := runStep(t, VarNameCleaner{}, `{
    function f() -> r {
        r := 1
    }
    let add_4 := 2
    let f_9 := add(add_4, f())
}`)
	wantBlock(t, got, `{
    function f() -> r {
        r := 1
    }
    let add_1 := 2
    let f_1 := add(add_1, f())
}`)
}

func Test_VarNameCleaner_RespectsReserved(t *testing.T) {
	b := parseBlock(t, `{ let keep_3 := 1 }`)
	ctx := testContext()
	ctx.Reserved["keep"] = true
	if err := (VarNameCleaner{}).Run(ctx, b); err != nil {
		t.Fatalf("cleaner failed: %v", err)
	}
	wantBlock(t, mir.FormatBlock(b), `{ let keep_1 := 1 }`)
}
