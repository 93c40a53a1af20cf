// fold.go — constant folding over pure arithmetic builtins.
package optimize

import (
	"math/big"

	"github.com/mirvm/mir"
)

// ConstantFolder replaces pure builtin calls whose arguments are all
// number literals with the computed literal. Division and modulo by
// zero, and subtractions that would go negative, are left in place:
// Mir numbers are unbounded non-negative integers and those cases have
// no literal spelling.
type ConstantFolder struct{}

func (ConstantFolder) Name() string { return "ConstantFolder" }

func (ConstantFolder) Run(ctx *Context, b *mir.Block) error {
	rewriteExprs(b, func(e mir.Expr) mir.Expr {
		call, ok := e.(*mir.FuncCall)
		if !ok {
			return e
		}
		folded := foldCall(ctx.Dialect, call)
		if folded == nil {
			return e
		}
		return folded
	})
	return nil
}

func foldCall(d *mir.Dialect, call *mir.FuncCall) *mir.Literal {
	builtin := d.Builtin(call.Func.Name)
	if builtin == nil || !builtin.Pure || builtin.LiteralArgs {
		return nil
	}
	args := make([]*big.Int, len(call.Args))
	for i, a := range call.Args {
		lit, ok := a.(*mir.Literal)
		if !ok || lit.Kind != mir.NumberLiteral {
			return nil
		}
		n := parseNumber(lit.Value)
		if n == nil {
			return nil
		}
		args[i] = n
	}
	result := evalBuiltin(call.Func.Name, args)
	if result == nil {
		return nil
	}
	return &mir.Literal{Pos: call.Pos, Kind: mir.NumberLiteral, Value: result.String()}
}

// parseNumber decodes a decimal or 0x-prefixed literal spelling.
func parseNumber(s string) *big.Int {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		if n, ok := new(big.Int).SetString(s[2:], 16); ok {
			return n
		}
		return nil
	}
	if n, ok := new(big.Int).SetString(s, 10); ok {
		return n
	}
	return nil
}

func boolInt(v bool) *big.Int {
	if v {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

// evalBuiltin computes a pure builtin over literal operands, or returns
// nil when the result is not representable.
func evalBuiltin(name string, args []*big.Int) *big.Int {
	switch name {
	case "add":
		return new(big.Int).Add(args[0], args[1])
	case "sub":
		if args[0].Cmp(args[1]) < 0 {
			return nil
		}
		return new(big.Int).Sub(args[0], args[1])
	case "mul":
		return new(big.Int).Mul(args[0], args[1])
	case "div":
		if args[1].Sign() == 0 {
			return nil
		}
		return new(big.Int).Div(args[0], args[1])
	case "mod":
		if args[1].Sign() == 0 {
			return nil
		}
		return new(big.Int).Mod(args[0], args[1])
	case "eq":
		return boolInt(args[0].Cmp(args[1]) == 0)
	case "lt":
		return boolInt(args[0].Cmp(args[1]) < 0)
	case "gt":
		return boolInt(args[0].Cmp(args[1]) > 0)
	case "iszero":
		return boolInt(args[0].Sign() == 0)
	case "and":
		return new(big.Int).And(args[0], args[1])
	case "or":
		return new(big.Int).Or(args[0], args[1])
	case "xor":
		return new(big.Int).Xor(args[0], args[1])
	default:
		// "not" has no fixed bit width to complement within.
		return nil
	}
}
