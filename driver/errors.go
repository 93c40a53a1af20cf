// Package driver sequences transformation passes over a Mir object
// tree: tree-wide application of registry steps and fixed utilities,
// re-analysis after every step, and the interactive exploration loop.
package driver

import "fmt"

// ConfigError reports unusable session input: a missing required
// argument or an unresolvable object path. Always fatal, and always
// raised before any tree processing begins.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// InternalError reports a broken invariant the driver cannot safely
// continue past (metadata missing where required, menu code conflicts).
// It terminates the session immediately.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

func internalErrorf(format string, args ...any) error {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
