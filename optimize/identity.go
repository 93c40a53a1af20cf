// identity.go — algebraic identity simplification.
package optimize

import "github.com/mirvm/mir"

// IdentityCleaner rewrites calls whose result is fixed by an identity
// operand: add(x, 0) → x, mul(x, 1) → x, mul(x, 0) → 0 and so on. An
// operand is only dropped when the surviving evaluation order cannot
// lose a side effect, so non-pure subexpressions block the rewrite.
type IdentityCleaner struct{}

func (IdentityCleaner) Name() string { return "IdentityCleaner" }

func (IdentityCleaner) Run(ctx *Context, b *mir.Block) error {
	rewriteExprs(b, func(e mir.Expr) mir.Expr {
		call, ok := e.(*mir.FuncCall)
		if !ok || len(call.Args) != 2 {
			return e
		}
		lhs, rhs := call.Args[0], call.Args[1]
		switch call.Func.Name {
		case "add", "or", "xor":
			if isNumber(rhs, "0") && isPureExpr(ctx.Dialect, rhs) {
				return lhs
			}
			if isNumber(lhs, "0") && isPureExpr(ctx.Dialect, lhs) {
				return rhs
			}
		case "sub":
			if isNumber(rhs, "0") {
				return lhs
			}
		case "mul":
			if isNumber(rhs, "1") {
				return lhs
			}
			if isNumber(lhs, "1") {
				return rhs
			}
			if isNumber(rhs, "0") && isPureExpr(ctx.Dialect, lhs) {
				return rhs
			}
			if isNumber(lhs, "0") && isPureExpr(ctx.Dialect, rhs) {
				return lhs
			}
		case "div":
			if isNumber(rhs, "1") {
				return lhs
			}
		case "and":
			if isNumber(rhs, "0") && isPureExpr(ctx.Dialect, lhs) {
				return rhs
			}
			if isNumber(lhs, "0") && isPureExpr(ctx.Dialect, rhs) {
				return lhs
			}
		}
		return e
	})
	return nil
}

// isNumber reports whether e is a number literal with the given value.
func isNumber(e mir.Expr, value string) bool {
	lit, ok := e.(*mir.Literal)
	if !ok || lit.Kind != mir.NumberLiteral {
		return false
	}
	if lit.Value == value {
		return true
	}
	n := parseNumber(lit.Value)
	want := parseNumber(value)
	return n != nil && want != nil && n.Cmp(want) == 0
}
