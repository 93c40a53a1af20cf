// printer.go — deterministic source rendering of Mir blocks and objects.
//
// The output is parseable back into an identical tree, and printing is
// idempotent: Format(Parse(Format(x))) == Format(x). Indentation is four
// spaces per nesting level, one statement per line.
package mir

import "strings"

const indentUnit = "    "

// FormatBlock renders a code block in block notation.
func FormatBlock(b *Block) string {
	var sb strings.Builder
	writeBlock(&sb, b, "")
	return sb.String()
}

// FormatObject renders a full object, including nested objects and data
// sections.
func FormatObject(o *Object) string {
	var sb strings.Builder
	writeObject(&sb, o, "")
	return sb.String()
}

func writeObject(sb *strings.Builder, o *Object, indent string) {
	sb.WriteString(indent)
	sb.WriteString("object ")
	sb.WriteString(quoteString(o.Name))
	sb.WriteString(" {\n")
	inner := indent + indentUnit
	sb.WriteString(inner)
	sb.WriteString("code ")
	writeBlock(sb, o.Code, inner)
	sb.WriteString("\n")
	for _, n := range o.SubNodes {
		switch n := n.(type) {
		case *Object:
			writeObject(sb, n, inner)
			sb.WriteString("\n")
		case *Data:
			sb.WriteString(inner)
			sb.WriteString("data ")
			sb.WriteString(quoteString(n.Name))
			sb.WriteString(" ")
			sb.WriteString(quoteString(n.Value))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(indent)
	sb.WriteString("}")
}

// writeBlock renders a block starting at the cursor; indent is the level
// of the line the opening brace sits on.
func writeBlock(sb *strings.Builder, b *Block, indent string) {
	if len(b.Stmts) == 0 {
		sb.WriteString("{ }")
		return
	}
	sb.WriteString("{\n")
	inner := indent + indentUnit
	for _, stmt := range b.Stmts {
		sb.WriteString(inner)
		writeStmt(sb, stmt, inner)
		sb.WriteString("\n")
	}
	sb.WriteString(indent)
	sb.WriteString("}")
}

func writeStmt(sb *strings.Builder, stmt Stmt, indent string) {
	switch s := stmt.(type) {
	case *Block:
		writeBlock(sb, s, indent)
	case *VarDecl:
		sb.WriteString("let ")
		writeIdentList(sb, s.Names)
		if s.Value != nil {
			sb.WriteString(" := ")
			writeExpr(sb, s.Value)
		}
	case *Assignment:
		writeIdentList(sb, s.Targets)
		sb.WriteString(" := ")
		writeExpr(sb, s.Value)
	case *If:
		sb.WriteString("if ")
		writeExpr(sb, s.Cond)
		sb.WriteString(" ")
		writeBlock(sb, s.Body, indent)
	case *For:
		sb.WriteString("for ")
		writeBlock(sb, s.Init, indent)
		sb.WriteString(" ")
		writeExpr(sb, s.Cond)
		sb.WriteString(" ")
		writeBlock(sb, s.Post, indent)
		sb.WriteString(" ")
		writeBlock(sb, s.Body, indent)
	case *FuncDef:
		sb.WriteString("function ")
		sb.WriteString(s.Name)
		sb.WriteString("(")
		writeIdentList(sb, s.Params)
		sb.WriteString(")")
		if len(s.Returns) > 0 {
			sb.WriteString(" -> ")
			writeIdentList(sb, s.Returns)
		}
		sb.WriteString(" ")
		writeBlock(sb, s.Body, indent)
	case *ExprStmt:
		writeExpr(sb, s.Call)
	case *Break:
		sb.WriteString("break")
	case *Continue:
		sb.WriteString("continue")
	case *Leave:
		sb.WriteString("leave")
	}
}

func writeIdentList(sb *strings.Builder, ids []*Identifier) {
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(id.Name)
	}
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Identifier:
		sb.WriteString(e.Name)
	case *Literal:
		switch e.Kind {
		case StringLiteral:
			sb.WriteString(quoteString(e.Value))
		default:
			sb.WriteString(e.Value)
		}
	case *FuncCall:
		sb.WriteString(e.Func.Name)
		sb.WriteString("(")
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, arg)
		}
		sb.WriteString(")")
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
