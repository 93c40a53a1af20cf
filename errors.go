// errors.go — caret-snippet rendering for lex/parse/analysis errors.
//
// WrapErrorWithSource turns the typed errors produced elsewhere in this
// package (*LexError, *ParseError, *AnalysisError) into readable
// multi-line snippets with a caret pointing at the offending column:
//
//	PARSE ERROR at 3:12: expected expression, found ")"
//
//	   2 | let x := add(1,
//	   3 |            )
//	     |            ^
//	   4 | }
//
// Any other error is returned unchanged. Line is 1-based; columns come
// in 0-based from the lexer and are rendered 1-based. Out-of-range
// coordinates are clamped so rendering never panics.
package mir

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource augments err with a caret-annotated snippet of src.
// It recognizes this package's error types and leaves others untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("in
// <name>") included in the header when non-empty.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *AnalysisError:
		parts := make([]string, len(e.Diagnostics))
		for i, d := range e.Diagnostics {
			parts[i] = snippet(src, "ANALYSIS ERROR", srcName, d.Line, d.Col+1, d.Msg)
		}
		return fmt.Errorf("%s", strings.Join(parts, "\n"))
	default:
		return err
	}
}

// snippet builds a Python-like excerpt with a header and a caret. It
// shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
