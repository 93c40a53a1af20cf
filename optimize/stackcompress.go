// stackcompress.go — best-effort reduction of operand stack pressure.
package optimize

import "github.com/mirvm/mir"

// maxCompressorRounds bounds the fixed-point iteration. Internal policy,
// not user-tunable.
const maxCompressorRounds = 16

// StackCompressor tries to lower the number of simultaneously live
// variables in a block by propagating literal bindings and pruning the
// declarations that become dead. It iterates until nothing changes or
// the round budget runs out, keeps the best result found, and never
// fails the session.
type StackCompressor struct{}

func (StackCompressor) Name() string { return "StackCompressor" }

func (StackCompressor) Run(ctx *Context, b *mir.Block) error {
	prev := mir.FormatBlock(b)
	for round := 0; round < maxCompressorRounds; round++ {
		// Both sub-passes are infallible.
		_ = LiteralPropagator{}.Run(ctx, b)
		_ = UnusedPruner{}.Run(ctx, b)
		cur := mir.FormatBlock(b)
		if cur == prev {
			break
		}
		prev = cur
	}
	return nil
}

// StackPressure estimates the peak number of variables live at once in
// the block: the deepest sum of declarations along any scope chain.
// Exposed for tests and diagnostics.
func StackPressure(b *mir.Block) int {
	return blockPressure(b, 0)
}

func blockPressure(b *mir.Block, inherited int) int {
	cur := inherited
	max := cur
	bump := func(v int) {
		if v > max {
			max = v
		}
	}
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *mir.VarDecl:
			cur += len(s.Names)
			bump(cur)
		case *mir.Block:
			bump(blockPressure(s, cur))
		case *mir.If:
			bump(blockPressure(s.Body, cur))
		case *mir.For:
			// Init declarations stay live for the whole loop.
			initDecls := 0
			for _, st := range s.Init.Stmts {
				if d, ok := st.(*mir.VarDecl); ok {
					initDecls += len(d.Names)
				}
			}
			bump(blockPressure(s.Init, cur))
			bump(blockPressure(s.Post, cur+initDecls))
			bump(blockPressure(s.Body, cur+initDecls))
		case *mir.FuncDef:
			// Function frames start fresh from params and returns.
			bump(blockPressure(s.Body, len(s.Params)+len(s.Returns)))
		}
	}
	return max
}
