// analyzer_test.go
package mir

import (
	"strings"
	"testing"
)

func analyzeSrc(t *testing.T, src string, dataNames map[string]bool) (*AnalysisInfo, error) {
	t.Helper()
	obj, _, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	return AnalyzeBlock(DefaultDialect(), obj.Code, dataNames)
}

func wantDiagnostic(t *testing.T, src string, substr string) {
	t.Helper()
	_, err := analyzeSrc(t, src, nil)
	if err == nil {
		t.Fatalf("expected analysis error for:\n%s", src)
	}
	aerr, ok := err.(*AnalysisError)
	if !ok {
		t.Fatalf("expected *AnalysisError, got %T: %v", err, err)
	}
	if len(aerr.Diagnostics) == 0 {
		t.Fatal("analysis error with empty diagnostics")
	}
	for _, d := range aerr.Diagnostics {
		if strings.Contains(d.Msg, substr) {
			return
		}
	}
	t.Fatalf("no diagnostic containing %q in: %v", substr, aerr.Diagnostics)
}

func Test_Analyzer_ValidProgram(t *testing.T) {
	info, err := analyzeSrc(t, `{
    let a := 1
    let b := add(a, 2)
    function double(x) -> y {
        y := mul(x, 2)
    }
    b := double(b)
    if lt(a, b) { store(0, b) }
    for { let i := 0 } lt(i, b) { i := add(i, 1) } { log(i) }
}`, nil)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	for _, name := range []string{"a", "b", "x", "y", "i"} {
		if !info.Variables[name] {
			t.Fatalf("variable %q missing from info", name)
		}
	}
	sig, ok := info.Functions["double"]
	if !ok || sig.Params != 1 || sig.Returns != 1 {
		t.Fatalf("function signature = %+v, ok=%v", sig, ok)
	}
}

func Test_Analyzer_HoistedFunctionCallableBeforeDefinition(t *testing.T) {
	_, err := analyzeSrc(t, `{
    let a := f()
    function f() -> r { r := 7 }
}`, nil)
	if err != nil {
		t.Fatalf("hoisted call rejected: %v", err)
	}
}

func Test_Analyzer_Violations(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		substr string
	}{
		{"undeclared use", `{ let a := b }`, "undeclared identifier"},
		{"self reference", `{ let a := a }`, "undeclared identifier"},
		{"shadowing", `{ let a := 1 { let a := 2 } }`, "already declared"},
		{"redeclaration", `{ let a := 1 let a := 2 }`, "already declared"},
		{"assign undeclared", `{ a := 1 }`, "undeclared variable"},
		{"assign to function", `{ function f() { } f := 1 }`, "cannot assign to function"},
		{"assign to builtin", `{ add := 1 }`, "cannot assign to builtin"},
		{"declare builtin", `{ let add := 1 }`, "builtin"},
		{"builtin arity", `{ let a := add(1) }`, "takes 2 argument(s)"},
		{"function arity", `{ function f(x) { } f(1, 2) }`, "takes 1 argument(s)"},
		{"undeclared function", `{ g() }`, "undeclared function"},
		{"variable not callable", `{ let v := 1 v() }`, "not callable"},
		{"statement must drop values", `{ add(1, 2) }`, "expected 0"},
		{"multi-value mismatch", `{ function f() -> a, b { } let x := f() }`, "expected 1"},
		{"break outside loop", `{ break }`, "break outside"},
		{"continue outside loop", `{ continue }`, "continue outside"},
		{"leave outside function", `{ leave }`, "leave outside"},
		{"function sees no outer vars", `{ let a := 1 function f() -> r { r := a } }`, "undeclared identifier"},
		{"unknown data name", `{ let s := datasize("missing") }`, "unknown data name"},
		{"data arg must be literal", `{ let a := 1 let s := datasize(a) }`, "string literal data name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wantDiagnostic(t, tc.src, tc.substr)
		})
	}
}

func Test_Analyzer_DataNamesAccepted(t *testing.T) {
	_, err := analyzeSrc(t, `{ let s := datasize("setup") store(s, dataoffset("setup")) }`,
		map[string]bool{"setup": true})
	if err != nil {
		t.Fatalf("valid data reference rejected: %v", err)
	}
}

func Test_Analyzer_MultiReturnAssignment(t *testing.T) {
	_, err := analyzeSrc(t, `{
    function pair() -> a, b { a := 1 b := 2 }
    let x, y := pair()
    x, y := pair()
    log(add(x, y))
}`, nil)
	if err != nil {
		t.Fatalf("multi-return forms rejected: %v", err)
	}
}

func Test_Analyzer_DiagnosticsCarryPositions(t *testing.T) {
	_, err := analyzeSrc(t, "{\n    let a := nope\n}", nil)
	aerr := err.(*AnalysisError)
	d := aerr.Diagnostics[0]
	if d.Line != 2 {
		t.Fatalf("diagnostic line = %d, want 2", d.Line)
	}
}
