// flatten.go — splicing bare nested blocks into their parents.
package optimize

import "github.com/mirvm/mir"

// BlockFlattener replaces every bare block statement with its contents.
// It requires the tree-wide uniqueness invariant: with globally distinct
// names, lifting declarations into the enclosing scope can never capture
// or collide. Structural blocks (if/for/function bodies, loop init and
// post) are flattened internally but never merged upward.
type BlockFlattener struct{}

func (BlockFlattener) Name() string { return "BlockFlattener" }

func (BlockFlattener) Run(ctx *Context, b *mir.Block) error {
	flattenBlock(b)
	return nil
}

func flattenBlock(b *mir.Block) {
	var out []mir.Stmt
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *mir.Block:
			flattenBlock(s)
			out = append(out, s.Stmts...)
			continue
		case *mir.If:
			flattenBlock(s.Body)
		case *mir.For:
			flattenBlock(s.Init)
			flattenBlock(s.Post)
			flattenBlock(s.Body)
		case *mir.FuncDef:
			flattenBlock(s.Body)
		}
		out = append(out, stmt)
	}
	b.Stmts = out
}
