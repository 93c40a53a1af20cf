// printer_test.go
package mir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Printer_BlockLayout(t *testing.T) {
	obj, _, err := ParseSource(`{ let x := 1 if lt(x, 2) { x := add(x, 1) } }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := FormatBlock(obj.Code)
	want := `{
    let x := 1
    if lt(x, 2) {
        x := add(x, 1)
    }
}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rendering mismatch (-want +got):\n%s", diff)
	}
}

func Test_Printer_ObjectNotation(t *testing.T) {
	src := `object "A" {
    code {
        let s := datasize("B")
        store(0, s)
    }
    object "B" {
        code { }
    }
    data "blob" "c0de"
}`
	obj, bare, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bare {
		t.Fatal("object input misreported as bare")
	}
	if diff := cmp.Diff(src, FormatObject(obj)); diff != "" {
		t.Fatalf("rendering mismatch (-want +got):\n%s", diff)
	}
}

// Printing must be a fixed point: parse(print(T)) prints identically.
func Test_Printer_Idempotent(t *testing.T) {
	srcs := []string{
		`{ let x := 1 }`,
		`{ function f(a, b) -> r { r := add(a, b) } let q := f(1, 2) log(q) }`,
		`{ for { let i := 0 } lt(i, 10) { i := add(i, 1) } { if eq(i, 5) { break } continue } }`,
		`object "A" { code { let x := true } object "B" { code { leave_check() function leave_check() { } } } }`,
	}
	for _, src := range srcs {
		obj, bare, err := ParseSource(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		render := func(o *Object) string {
			if bare {
				return FormatBlock(o.Code)
			}
			return FormatObject(o)
		}
		first := render(obj)
		obj2, _, err := ParseSource(first)
		if err != nil {
			t.Fatalf("reparse failed for:\n%s\nerror: %v", first, err)
		}
		if diff := cmp.Diff(first, render(obj2)); diff != "" {
			t.Fatalf("printing not idempotent (-first +second):\n%s", diff)
		}
	}
}

func Test_Printer_EmptyBlock(t *testing.T) {
	obj, _, err := ParseSource(`{ }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := FormatBlock(obj.Code); got != "{ }" {
		t.Fatalf("empty block rendered as %q", got)
	}
}

func Test_Printer_StringQuoting(t *testing.T) {
	b := &Block{Stmts: []Stmt{
		&ExprStmt{Call: &FuncCall{
			Func: &Identifier{Name: "log"},
			Args: []Expr{&FuncCall{
				Func: &Identifier{Name: "datasize"},
				Args: []Expr{&Literal{Kind: StringLiteral, Value: `a"b\c`}},
			}},
		}},
	}}
	want := `{
    log(datasize("a\"b\\c"))
}`
	if diff := cmp.Diff(want, FormatBlock(b)); diff != "" {
		t.Fatalf("quoting mismatch (-want +got):\n%s", diff)
	}
}
