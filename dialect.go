// dialect.go — the builtin function set fixed for a whole session.
package mir

// BuiltinFunction describes one dialect builtin. Params and Returns are
// exact counts; Mir has no variadic builtins. Pure builtins may be
// folded or dropped by optimizer passes; impure ones must stay put.
// LiteralArgs marks builtins whose arguments must be string literals
// naming a data section visible to the containing object.
type BuiltinFunction struct {
	Name        string
	Params      int
	Returns     int
	Pure        bool
	LiteralArgs bool
}

// Dialect is the grammar/semantics profile a session is validated
// against. It is immutable after construction and shared freely.
type Dialect struct {
	Name     string
	builtins map[string]*BuiltinFunction
}

// Builtin returns the named builtin, or nil if the dialect has none.
func (d *Dialect) Builtin(name string) *BuiltinFunction {
	return d.builtins[name]
}

// BuiltinNames returns the set of reserved builtin names.
func (d *Dialect) BuiltinNames() map[string]bool {
	names := make(map[string]bool, len(d.builtins))
	for name := range d.builtins {
		names[name] = true
	}
	return names
}

func newDialect(name string, fns []BuiltinFunction) *Dialect {
	d := &Dialect{Name: name, builtins: make(map[string]*BuiltinFunction, len(fns))}
	for i := range fns {
		d.builtins[fns[i].Name] = &fns[i]
	}
	return d
}

var defaultDialect = newDialect("mir", []BuiltinFunction{
	{Name: "add", Params: 2, Returns: 1, Pure: true},
	{Name: "sub", Params: 2, Returns: 1, Pure: true},
	{Name: "mul", Params: 2, Returns: 1, Pure: true},
	{Name: "div", Params: 2, Returns: 1, Pure: true},
	{Name: "mod", Params: 2, Returns: 1, Pure: true},
	{Name: "eq", Params: 2, Returns: 1, Pure: true},
	{Name: "lt", Params: 2, Returns: 1, Pure: true},
	{Name: "gt", Params: 2, Returns: 1, Pure: true},
	{Name: "and", Params: 2, Returns: 1, Pure: true},
	{Name: "or", Params: 2, Returns: 1, Pure: true},
	{Name: "xor", Params: 2, Returns: 1, Pure: true},
	{Name: "not", Params: 1, Returns: 1, Pure: true},
	{Name: "iszero", Params: 1, Returns: 1, Pure: true},
	{Name: "load", Params: 1, Returns: 1},
	{Name: "store", Params: 2, Returns: 0},
	{Name: "log", Params: 1, Returns: 0},
	{Name: "halt", Params: 0, Returns: 0},
	{Name: "datasize", Params: 1, Returns: 1, Pure: true, LiteralArgs: true},
	{Name: "dataoffset", Params: 1, Returns: 1, Pure: true, LiteralArgs: true},
})

// DefaultDialect returns the standard Mir builtin set.
func DefaultDialect() *Dialect { return defaultDialect }
