// parser_test.go
package mir

import (
	"strings"
	"testing"
)

func parseSrc(t *testing.T, src string) (*Object, bool) {
	t.Helper()
	obj, bare, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	return obj, bare
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	_, _, err := ParseSource(src)
	if err == nil {
		t.Fatalf("expected parse error for:\n%s", src)
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return perr
}

func Test_Parser_BareBlockIsWrapped(t *testing.T) {
	obj, bare := parseSrc(t, `{ let x := 1 }`)
	if !bare {
		t.Fatal("expected bare-block input to be reported")
	}
	if obj.Name != BareObjectName {
		t.Fatalf("wrapped object name = %q", obj.Name)
	}
	if len(obj.Code.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(obj.Code.Stmts))
	}
	decl, ok := obj.Code.Stmts[0].(*VarDecl)
	if !ok {
		t.Fatalf("expected *VarDecl, got %T", obj.Code.Stmts[0])
	}
	if len(decl.Names) != 1 || decl.Names[0].Name != "x" {
		t.Fatalf("decl names = %v", decl.Names)
	}
	lit, ok := decl.Value.(*Literal)
	if !ok || lit.Kind != NumberLiteral || lit.Value != "1" {
		t.Fatalf("decl value = %#v", decl.Value)
	}
}

func Test_Parser_NestedObjectsAndData(t *testing.T) {
	obj, bare := parseSrc(t, `
object "A" {
    code { let x := 1 }
    object "B" {
        code { let y := 2 }
        object "C" { code { let z := 3 } }
    }
    data "D" "00ff"
}`)
	if bare {
		t.Fatal("object notation misreported as bare block")
	}
	if obj.Name != "A" || len(obj.SubNodes) != 2 {
		t.Fatalf("root = %q with %d children", obj.Name, len(obj.SubNodes))
	}
	b := obj.SubObject("B")
	if b == nil || b.SubObject("C") == nil {
		t.Fatal("nested objects not parsed")
	}
	d, ok := obj.SubNodes[1].(*Data)
	if !ok || d.Name != "D" || d.Value != "00ff" {
		t.Fatalf("data section = %#v", obj.SubNodes[1])
	}
}

func Test_Parser_StatementForms(t *testing.T) {
	obj, _ := parseSrc(t, `{
    let a, b := f()
    a := add(a, 1)
    a, b := f()
    if lt(a, b) { store(0, a) }
    for { let i := 0 } lt(i, b) { i := add(i, 1) } {
        if eq(i, a) { break }
        continue
    }
    function f() -> x, y {
        x := 1
        y := 2
        leave
    }
    { let inner := 0 }
    log(a)
}`)
	want := []string{"*mir.VarDecl", "*mir.Assignment", "*mir.Assignment", "*mir.If", "*mir.For", "*mir.FuncDef", "*mir.Block", "*mir.ExprStmt"}
	if len(obj.Code.Stmts) != len(want) {
		t.Fatalf("statement count = %d, want %d", len(obj.Code.Stmts), len(want))
	}
	for i, stmt := range obj.Code.Stmts {
		if got := typeName(stmt); got != want[i] {
			t.Fatalf("stmt[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *VarDecl:
		return "*mir.VarDecl"
	case *Assignment:
		return "*mir.Assignment"
	case *If:
		return "*mir.If"
	case *For:
		return "*mir.For"
	case *FuncDef:
		return "*mir.FuncDef"
	case *Block:
		return "*mir.Block"
	case *ExprStmt:
		return "*mir.ExprStmt"
	default:
		return "?"
	}
}

func Test_Parser_DuplicateSiblingNamesRejected(t *testing.T) {
	err := parseErr(t, `
object "A" {
    code { }
    object "B" { code { } }
    data "B" "00"
}`)
	if !strings.Contains(err.Msg, "duplicate sub-node name") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Parser_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing code", `object "A" { data "B" "00" }`},
		{"unterminated block", `{ let x := 1`},
		{"trailing garbage", `{ let x := 1 } extra`},
		{"bad statement", `{ := 1 }`},
		{"ident without call or assign", `{ x }`},
		{"missing expression", `{ let x := }`},
		{"object name not string", `object A { code { } }`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parseErr(t, tc.src)
		})
	}
}

func Test_Parser_ErrorPosition(t *testing.T) {
	err := parseErr(t, "{\n    let := 1\n}")
	if err.Line != 2 {
		t.Fatalf("error line = %d, want 2", err.Line)
	}
}
