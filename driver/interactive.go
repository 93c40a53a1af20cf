// interactive.go — the choose-one-apply-validate loop.
//
// The loop is a small state machine: render the tree and menu, read one
// choice, dispatch it, validate the tree, back to reading. Faults from
// a step or from re-analysis are reported and the loop continues with
// the tree exactly as the failing step left it; there is no rollback —
// the operator sees the post-fault tree and decides how to proceed.
// Only an internal invariant violation tears the session down.
package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter supplies one operator choice per call. Implementations read
// a line from a line-buffered stream; the controller consumes the first
// byte. io.EOF means the operator is done and quits the session.
type Prompter interface {
	ReadChoice(prompt string) (string, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(prompt string) (string, error)

func (f PrompterFunc) ReadChoice(prompt string) (string, error) { return f(prompt) }

const separator = "----------------------"

// RunInteractive loops until the operator quits or input ends. The
// tree-wide uniqueness invariant is repaired at the top of every
// iteration when revoked — after the variable-name cleaner, the next
// step never runs against an un-disambiguated tree.
func (s *Session) RunInteractive(p Prompter) error {
	for {
		if !s.Disambiguated {
			if err := s.Disambiguate(); err != nil {
				// A valid tree cannot fail analysis just from
				// disambiguation; treat it as a broken precondition.
				return internalErrorf("analysis failed after disambiguation: %v", err)
			}
			s.Disambiguated = true
		}

		entries, err := menuEntries()
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, formatMenu(entries, s.columns))

		line, err := p.ReadChoice("? ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		choice := line[0]

		var stepErr error
		switch choice {
		case quitCode:
			return nil
		case cleanerCode:
			stepErr = s.RunVarNameCleaner()
			// The cleaner reintroduces colliding spellings across
			// nodes; the guarantee is gone until the next repair.
			s.Disambiguated = false
		case compressCode:
			stepErr = s.RunStackCompressor()
		default:
			if !registered(choice) {
				fmt.Fprintf(s.errOut, "invalid choice %q\n", string(choice))
				continue
			}
			stepErr = s.RunSequence(string(choice))
		}

		if stepErr != nil {
			var internal *InternalError
			if errors.As(stepErr, &internal) {
				return stepErr
			}
			fmt.Fprintln(s.errOut, "Error during optimizer step:")
			fmt.Fprintln(s.errOut, s.renderError(stepErr))
		}
		fmt.Fprintln(s.out, separator)
		fmt.Fprintln(s.out, s.Render())
	}
}

func registered(code byte) bool {
	_, ok := controlOptions[code]
	if ok {
		return true
	}
	_, ok = stepRegistered(code)
	return ok
}
