// steps.go — the transformation step registry.
//
// Every generic optimizer pass is a Step registered under a single-byte
// code. Steps share no state; they receive a Context (dialect, fresh
// name dispenser, reserved identifiers) and one code block, and rewrite
// the block in place. The driver composes them freely, so a step must
// leave the block parseable and must not touch object structure or
// names of sibling nodes.
package optimize

import (
	"fmt"

	"github.com/mirvm/mir"
)

// Context carries the session facts a pass may depend on. A fresh one is
// built for every applied step; passes must not retain it.
type Context struct {
	Dialect   *mir.Dialect
	Dispenser *NameDispenser
	Reserved  map[string]bool
}

// Step is one named transformation over a single code block.
type Step interface {
	Name() string
	Run(ctx *Context, b *mir.Block) error
}

// StepFunc adapts a function to the Step interface.
type StepFunc struct {
	StepName string
	Fn       func(ctx *Context, b *mir.Block) error
}

func (s StepFunc) Name() string                         { return s.StepName }
func (s StepFunc) Run(ctx *Context, b *mir.Block) error { return s.Fn(ctx, b) }

// Registry maps step codes to the passes the driver may dispatch.
// Codes must never collide with the session controller's reserved
// control characters; the controller checks that at startup.
var Registry = map[byte]Step{
	'f': ConstantFolder{},
	'p': LiteralPropagator{},
	'u': UnusedPruner{},
	'i': IdentityCleaner{},
	'b': BlockFlattener{},
}

// CodeToNameMap returns the code-to-description view of the registry.
func CodeToNameMap() map[byte]string {
	m := make(map[byte]string, len(Registry))
	for code, step := range Registry {
		m[code] = step.Name()
	}
	return m
}

// UnknownStepError reports a step code missing from the registry.
type UnknownStepError struct {
	Code byte
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown optimizer step %q", string(e.Code))
}

// ValidateSequence checks every code against the registry. The driver
// calls this before mutating anything so a typo never leaves a tree
// half-transformed.
func ValidateSequence(steps string) error {
	for i := 0; i < len(steps); i++ {
		if _, ok := Registry[steps[i]]; !ok {
			return &UnknownStepError{Code: steps[i]}
		}
	}
	return nil
}

// RunSequence applies the named steps to one block in the order the
// codes appear. The sequence must have been validated already; an
// unknown code at this point aborts immediately.
func RunSequence(ctx *Context, steps string, b *mir.Block) error {
	for i := 0; i < len(steps); i++ {
		step, ok := Registry[steps[i]]
		if !ok {
			return &UnknownStepError{Code: steps[i]}
		}
		if err := step.Run(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
