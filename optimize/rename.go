// rename.go — scope-aware identifier rewriting.
//
// renameBlock drives both the disambiguator and the variable-name
// cleaner: it walks a block with a scope stack, asks a picker for the
// replacement of every declared name, and rewrites uses through the
// innermost binding. Names with no binding (builtins, externally
// reserved identifiers) pass through untouched. The analyzer has
// already rejected shadowing, so lookup is unambiguous.
package optimize

import "github.com/mirvm/mir"

// pickFunc chooses the new name for one declaration site. kind tells the
// picker what is being declared so it can skip categories it does not
// rename (returning the old name keeps it).
type pickFunc func(old string, kind declKind) string

type declKind int

const (
	declVar declKind = iota
	declFunc
)

type renamer struct {
	scopes []map[string]string
	pick   pickFunc
}

func renameBlock(b *mir.Block, pick pickFunc) {
	r := &renamer{pick: pick}
	r.block(b)
}

func (r *renamer) push() { r.scopes = append(r.scopes, map[string]string{}) }
func (r *renamer) pop()  { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *renamer) bind(old string, kind declKind) string {
	name := r.pick(old, kind)
	r.scopes[len(r.scopes)-1][old] = name
	return name
}

func (r *renamer) resolve(old string) string {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if name, ok := r.scopes[i][old]; ok {
			return name
		}
	}
	return old
}

func (r *renamer) block(b *mir.Block) {
	r.push()
	defer r.pop()
	// Function names are hoisted: bind them before any statement so
	// forward calls resolve.
	for _, stmt := range b.Stmts {
		if def, ok := stmt.(*mir.FuncDef); ok {
			def.Name = r.bind(def.Name, declFunc)
		}
	}
	for _, stmt := range b.Stmts {
		r.stmt(stmt)
	}
}

func (r *renamer) stmt(stmt mir.Stmt) {
	switch s := stmt.(type) {
	case *mir.Block:
		r.block(s)
	case *mir.VarDecl:
		// The initializer sees only the enclosing bindings.
		r.expr(s.Value)
		for _, id := range s.Names {
			id.Name = r.bind(id.Name, declVar)
		}
	case *mir.Assignment:
		for _, id := range s.Targets {
			id.Name = r.resolve(id.Name)
		}
		r.expr(s.Value)
	case *mir.If:
		r.expr(s.Cond)
		r.block(s.Body)
	case *mir.For:
		// Init declarations stay visible through cond, post and body.
		r.push()
		for _, st := range s.Init.Stmts {
			if def, ok := st.(*mir.FuncDef); ok {
				def.Name = r.bind(def.Name, declFunc)
			}
		}
		for _, st := range s.Init.Stmts {
			r.stmt(st)
		}
		r.expr(s.Cond)
		r.block(s.Post)
		r.block(s.Body)
		r.pop()
	case *mir.FuncDef:
		// Name already bound by hoisting in the enclosing block.
		r.push()
		for _, id := range s.Params {
			id.Name = r.bind(id.Name, declVar)
		}
		for _, id := range s.Returns {
			id.Name = r.bind(id.Name, declVar)
		}
		r.block(s.Body)
		r.pop()
	case *mir.ExprStmt:
		r.expr(s.Call)
	}
}

func (r *renamer) expr(e mir.Expr) {
	switch e := e.(type) {
	case *mir.Identifier:
		e.Name = r.resolve(e.Name)
	case *mir.FuncCall:
		e.Func.Name = r.resolve(e.Func.Name)
		for _, arg := range e.Args {
			r.expr(arg)
		}
	case nil:
	}
}
