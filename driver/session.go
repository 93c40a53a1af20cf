// session.go — session state and the transformation sequencer.
//
// A Session owns one parsed object tree for its whole lifetime. Every
// operation here is tree-wide: it walks the object tree bottom-up,
// applies one rewrite per node, rebuilds the name dispenser from the
// tree's current identifiers, and re-analyzes every node before
// returning. An operation never reports success with stale or missing
// metadata; if re-analysis fails the exact diagnostics come back as the
// error and the tree is left as the step wrote it.
package driver

import (
	"io"
	"os"

	"github.com/mirvm/mir"
	"github.com/mirvm/mir/optimize"
)

// Config bundles the session collaborators. Zero values fall back to
// the default dialect and the process's standard streams.
type Config struct {
	Dialect  *mir.Dialect
	Reserved map[string]bool
	Columns  int // menu columns in interactive mode
	Out      io.Writer
	ErrOut   io.Writer
}

// Session drives exploration of one object tree. It is the tree's sole
// owner: passes and the analyzer borrow the tree for the duration of a
// single operation only.
type Session struct {
	Dialect  *mir.Dialect
	Root     *mir.Object
	Reserved map[string]bool

	// Disambiguated tracks whether the tree-wide identifier uniqueness
	// invariant currently holds. Only the variable-name cleaner revokes
	// it; the interactive loop repairs it before the next step.
	Disambiguated bool

	// BareBlock records that the input was a plain code block, so
	// rendering prints just the block instead of object notation.
	BareBlock bool

	source  string // original text, for caret snippets
	srcName string
	columns int
	out     io.Writer
	errOut  io.Writer
}

// NewSession creates an empty session; call Parse before anything else.
func NewSession(cfg Config) *Session {
	s := &Session{
		Dialect:  cfg.Dialect,
		Reserved: cfg.Reserved,
		columns:  cfg.Columns,
		out:      cfg.Out,
		errOut:   cfg.ErrOut,
	}
	if s.Dialect == nil {
		s.Dialect = mir.DefaultDialect()
	}
	if s.Reserved == nil {
		s.Reserved = map[string]bool{}
	}
	if s.columns <= 0 {
		s.columns = menuColumns
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.errOut == nil {
		s.errOut = os.Stderr
	}
	return s
}

// Parse loads the session tree from source text, selects the
// sub-object addressed by objectPath (empty selects the root), and runs
// the initial analysis. Parse and analysis failures are fatal for the
// session and come back wrapped with a caret snippet.
func (s *Session) Parse(src, srcName, objectPath string) error {
	s.source = src
	s.srcName = srcName
	root, bare, err := mir.ParseSource(src)
	if err != nil {
		return mir.WrapErrorWithName(err, srcName, src)
	}
	target, err := mir.ResolveSubObject(root, objectPath)
	if err != nil {
		return &ConfigError{Msg: err.Error()}
	}
	s.Root = target
	s.BareBlock = bare
	if err := s.analyzeTree(); err != nil {
		return mir.WrapErrorWithName(err, srcName, src)
	}
	return nil
}

// Render returns the current tree's textual form: just the code block
// when the input was a bare block, full object notation otherwise.
func (s *Session) Render() string {
	if s.BareBlock {
		return mir.FormatBlock(s.Root.Code)
	}
	return mir.FormatObject(s.Root)
}

// analyzeTree re-validates every node bottom-up and attaches fresh
// metadata. A failing node keeps its metadata cleared — its validity is
// unknown, not "still valid from before" — and the walk stops there.
func (s *Session) analyzeTree() error {
	return mir.WalkPostOrder(s.Root, func(o *mir.Object) error {
		o.AnalysisInfo = nil
		info, err := mir.AnalyzeBlock(s.Dialect, o.Code, o.QualifiedDataNames())
		if err != nil {
			return err
		}
		o.AnalysisInfo = info
		return nil
	})
}

// freshContext rebuilds the pass context from the tree's current
// identifiers, so every step counts collisions from real usage instead
// of a previous step's bookkeeping.
func (s *Session) freshContext() *optimize.Context {
	disp := optimize.NewNameDispenser(s.Dialect, s.Reserved)
	for name := range optimize.CollectTreeNames(s.Root) {
		disp.MarkUsed(name)
	}
	return &optimize.Context{Dialect: s.Dialect, Dispenser: disp, Reserved: s.Reserved}
}

// Disambiguate rewrites the whole tree so identifiers become pairwise
// distinct across every node. It requires fresh metadata on every node,
// clears it during the rewrite, and re-analyzes before returning.
func (s *Session) Disambiguate() error {
	// One dispenser spans the walk; per-node dispensers would only give
	// per-node uniqueness.
	disp := optimize.NewNameDispenser(s.Dialect, s.Reserved)
	err := mir.WalkPostOrder(s.Root, func(o *mir.Object) error {
		if o.AnalysisInfo == nil {
			return internalErrorf("disambiguating object %q without fresh analysis metadata", o.Name)
		}
		optimize.Disambiguate(disp, o.Code)
		o.AnalysisInfo = nil
		return nil
	})
	if err != nil {
		return err
	}
	return s.analyzeTree()
}

// RunSequence applies a string of registry step codes to every node,
// in code order per node. The whole sequence is validated up front: an
// unknown code aborts before any mutation. The tree is re-analyzed
// afterwards.
func (s *Session) RunSequence(steps string) error {
	if err := optimize.ValidateSequence(steps); err != nil {
		return err
	}
	ctx := s.freshContext()
	err := mir.WalkPostOrder(s.Root, func(o *mir.Object) error {
		o.AnalysisInfo = nil
		return optimize.RunSequence(ctx, steps, o.Code)
	})
	if err != nil {
		return err
	}
	return s.analyzeTree()
}

// RunVarNameCleaner renames variables to human-friendly spellings on
// every node. Cleaned nodes may collide with each other again, so the
// caller must drop the session's disambiguated flag.
func (s *Session) RunVarNameCleaner() error {
	ctx := s.freshContext()
	err := mir.WalkPostOrder(s.Root, func(o *mir.Object) error {
		o.AnalysisInfo = nil
		return optimize.VarNameCleaner{}.Run(ctx, o.Code)
	})
	if err != nil {
		return err
	}
	return s.analyzeTree()
}

// RunStackCompressor runs the bounded stack-pressure reduction on every
// node. The pass itself never fails; only re-analysis can surface
// diagnostics here.
func (s *Session) RunStackCompressor() error {
	ctx := s.freshContext()
	err := mir.WalkPostOrder(s.Root, func(o *mir.Object) error {
		o.AnalysisInfo = nil
		return optimize.StackCompressor{}.Run(ctx, o.Code)
	})
	if err != nil {
		return err
	}
	return s.analyzeTree()
}

// renderError expands this module's typed errors into caret snippets
// against the original source. Positions can drift as the tree mutates,
// but the original text is the only stable thing to point into.
func (s *Session) renderError(err error) string {
	return mir.WrapErrorWithName(err, s.srcName, s.source).Error()
}

func stepRegistered(code byte) (optimize.Step, bool) {
	step, ok := optimize.Registry[code]
	return step, ok
}

// RunBatch is the non-interactive entry point: disambiguate once, apply
// the steps string, and stop. Any fault is fatal to the whole run —
// batch mode has no operator to recover with.
func (s *Session) RunBatch(steps string) error {
	if steps == "" {
		return &ConfigError{Msg: "non-interactive mode requires a steps sequence"}
	}
	if err := s.Disambiguate(); err != nil {
		return err
	}
	s.Disambiguated = true
	return s.RunSequence(steps)
}
