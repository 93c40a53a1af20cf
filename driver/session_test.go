// session_test.go
package driver

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mirvm/mir/optimize"
)

func newTestSession(t *testing.T, src, objectPath string) *Session {
	t.Helper()
	s := NewSession(Config{Out: &strings.Builder{}, ErrOut: &strings.Builder{}})
	if err := s.Parse(src, "test.mir", objectPath); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return s
}

func wantRender(t *testing.T, s *Session, wantSrc string) {
	t.Helper()
	ws := newTestSession(t, wantSrc, "")
	if diff := cmp.Diff(ws.Render(), s.Render()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func Test_Session_ParseBareBlock(t *testing.T) {
	s := newTestSession(t, `{ let x := 1 }`, "")
	if !s.BareBlock {
		t.Fatal("bare block input not flagged")
	}
	if got := s.Render(); strings.Contains(got, "object") {
		t.Fatalf("bare block rendered in object notation:\n%s", got)
	}
}

func Test_Session_ParseObjectPath(t *testing.T) {
	src := `object "A" {
    code { let a := 1 }
    object "B" {
        code { let b := 2 }
    }
}`
	s := newTestSession(t, src, "A.B")
	if s.Root.Name != "B" {
		t.Fatalf("selected object %q, want B", s.Root.Name)
	}
	if !strings.Contains(s.Render(), "let b := 2") {
		t.Fatalf("selected object renders wrong code:\n%s", s.Render())
	}
}

func Test_Session_ParseBadObjectPath(t *testing.T) {
	s := NewSession(Config{Out: &strings.Builder{}, ErrOut: &strings.Builder{}})
	err := s.Parse(`object "A" { code { } }`, "test.mir", "A.X")
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("got %v, want ConfigError", err)
	}
}

func Test_Session_ParseReportsAnalysisErrors(t *testing.T) {
	s := NewSession(Config{Out: &strings.Builder{}, ErrOut: &strings.Builder{}})
	err := s.Parse(`{ x := 1 }`, "test.mir", "")
	if err == nil {
		t.Fatal("undeclared assignment accepted")
	}
	if !strings.Contains(err.Error(), "ANALYSIS ERROR") {
		t.Fatalf("error lacks analysis snippet:\n%s", err)
	}
}

func Test_Session_Disambiguate_TreeWide(t *testing.T) {
	src := `object "A" {
    code { let x := 1 }
    object "B" {
        code { let x := 2 }
    }
}`
	s := newTestSession(t, src, "")
	if err := s.Disambiguate(); err != nil {
		t.Fatalf("disambiguate failed: %v", err)
	}
	got := s.Render()
	// Post-order walk reaches B before A, so B keeps the spelling.
	if !strings.Contains(got, "let x := 2") || !strings.Contains(got, "let x_1 := 1") {
		t.Fatalf("names not unique across nodes:\n%s", got)
	}
}

func Test_Session_RunBatch_MinimalRoundTrip(t *testing.T) {
	s := newTestSession(t, `{ let x := 1 }`, "")
	if err := s.RunBatch("u"); err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if !s.Disambiguated {
		t.Fatal("batch did not mark the session disambiguated")
	}
	wantRender(t, s, `{ }`)
}

func Test_Session_RunBatch_EmptySteps(t *testing.T) {
	s := newTestSession(t, `{ let x := 1 }`, "")
	err := s.RunBatch("")
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("got %v, want ConfigError", err)
	}
}

func Test_Session_RunSequence_UnknownCodeAbortsBeforeMutation(t *testing.T) {
	s := newTestSession(t, `{
    let a := add(1, 2)
    let unused := 3
}`, "")
	before := s.Render()
	err := s.RunSequence("fz")
	var unknown *optimize.UnknownStepError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownStepError", err)
	}
	if got := s.Render(); got != before {
		t.Fatalf("tree mutated despite invalid sequence:\nbefore:\n%s\nafter:\n%s", before, got)
	}
}

func Test_Session_RunSequence_AppliesStepsInOrder(t *testing.T) {
	s := newTestSession(t, `{
    let a := 1
    let b := add(a, 2)
    store(0, b)
}`, "")
	if err := s.RunSequence("pfu"); err != nil {
		t.Fatalf("sequence failed: %v", err)
	}
	wantRender(t, s, `{
    let b := 3
    store(0, b)
}`)
}

func Test_Session_RunSequence_RefreshesMetadata(t *testing.T) {
	s := newTestSession(t, `{ let x := 1 store(0, x) }`, "")
	if err := s.RunSequence("p"); err != nil {
		t.Fatalf("sequence failed: %v", err)
	}
	if s.Root.AnalysisInfo == nil {
		t.Fatal("analysis metadata missing after a successful step")
	}
}

func Test_Session_VarNameCleaner_RoundTrip(t *testing.T) {
	src := `object "A" {
    code { let x := 1 }
    object "B" {
        code { let x := 2 }
    }
}`
	s := newTestSession(t, src, "")
	if err := s.Disambiguate(); err != nil {
		t.Fatalf("disambiguate failed: %v", err)
	}
	if err := s.RunVarNameCleaner(); err != nil {
		t.Fatalf("cleaner failed: %v", err)
	}
	got := s.Render()
	if strings.Contains(got, "x_1") {
		t.Fatalf("suffix survived cleaning:\n%s", got)
	}
}
