package lexer

import (
	"fmt"
	"strings"

	pingerrors "github.com/pingcap/errors"

	"github.com/Warfley/gold-parser-tools/table"
)

// LexError reports the position at which no DFA edge accepted the input
// character. The lexer never retries.
type LexError struct {
	Position int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at position %d: no token matches", e.Position)
}

func newLexError(pos int) error {
	return pingerrors.Trace(&LexError{Position: pos})
}

// AsLexError unwraps err (which may be wrapped by pingcap/errors.Trace)
// back to the underlying *LexError, if any.
func AsLexError(err error) (*LexError, bool) {
	cause := pingerrors.Cause(err)
	le, ok := cause.(*LexError)
	return le, ok
}

// OpenFrame describes one lexical group that was still open at end of
// input.
type OpenFrame struct {
	Group *table.Group
	Start int
}

// GroupError reports the groups still open when a Closed-mode group
// never met its end symbol before the input ran out. OpenFrames is
// ordered top-of-stack (innermost) first.
type GroupError struct {
	OpenFrames []OpenFrame
}

func (e *GroupError) Error() string {
	names := make([]string, len(e.OpenFrames))
	for i, f := range e.OpenFrames {
		names[i] = f.Group.Name
	}
	return fmt.Sprintf("unclosed group(s) at end of input: %s", strings.Join(names, ", "))
}

func newGroupError(frames []OpenFrame) error {
	return pingerrors.Trace(&GroupError{OpenFrames: frames})
}

// AsGroupError unwraps err (which may be wrapped by pingcap/errors.Trace)
// back to the underlying *GroupError, if any.
func AsGroupError(err error) (*GroupError, bool) {
	cause := pingerrors.Cause(err)
	ge, ok := cause.(*GroupError)
	return ge, ok
}
