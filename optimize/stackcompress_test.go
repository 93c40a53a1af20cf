// stackcompress_test.go
package optimize

import (
	"testing"

	"github.com/mirvm/mir"
)

func Test_StackCompressor_RemovesLiteralChains(t *testing.T) {
	b := parseBlock(t, `{
    let a := 1
    let b := a
    let c := add(b, 2)
    store(0, c)
}`)
	before := StackPressure(b)
	if err := (StackCompressor{}).Run(testContext(), b); err != nil {
		t.Fatalf("compressor failed: %v", err)
	}
	wantBlock(t, mir.FormatBlock(b), `{
    let c := add(1, 2)
    store(0, c)
}`)
	if after := StackPressure(b); after >= before {
		t.Fatalf("pressure not reduced: before %d, after %d", before, after)
	}
}

func Test_StackCompressor_NeverFails(t *testing.T) {
	// Nothing to improve: side-effecting initializers pin every binding.
	b := parseBlock(t, `{
    let a := load(0)
    let b := load(a)
    store(a, b)
}`)
	want := mir.FormatBlock(b)
	if err := (StackCompressor{}).Run(testContext(), b); err != nil {
		t.Fatalf("compressor failed: %v", err)
	}
	if got := mir.FormatBlock(b); got != want {
		t.Fatalf("block changed:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func Test_StackPressure(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{`{ }`, 0},
		{`{ let a := 1 let b := 2 }`, 2},
		{`{ let a := 1 { let b := 2 let c := 3 } }`, 3},
		{`{
    let a := 1
    function f(p, q) -> r {
        let s := 1
    }
}`, 4},
		{`{
    for { let i := 0 } lt(i, 10) { i := add(i, 1) } {
        let t := i
    }
}`, 2},
	}
	for _, tc := range cases {
		b := parseBlock(t, tc.src)
		if got := StackPressure(b); got != tc.want {
			t.Errorf("StackPressure(%q) = %d, want %d", tc.src, got, tc.want)
		}
	}
}
