package parser

import (
	"fmt"

	pingerrors "github.com/pingcap/errors"

	"github.com/Warfley/gold-parser-tools/lexer"
	"github.com/Warfley/gold-parser-tools/table"
)

// StackFrame is one read-only snapshot entry: the LALR state and the
// parse-tree node at that point of the stack. Observers and ParseError
// see a []StackFrame, never the live mutable stack.
type StackFrame struct {
	State *table.LALRState
	Node  Tree
}

// ParseError reports the offending look-ahead and a snapshot of the
// parser stack at the point of failure. LastToken is nil when the
// failure was end-of-input.
type ParseError struct {
	LastToken *lexer.Token
	Stack     []StackFrame
}

func (e *ParseError) Error() string {
	if e.LastToken == nil {
		return "syntax error: unexpected end of input"
	}
	return fmt.Sprintf("syntax error: unexpected token %q at position %d", e.LastToken.Symbol.Name, e.LastToken.Start)
}

func newParseError(lastToken *lexer.Token, stack []StackFrame) error {
	return pingerrors.Trace(&ParseError{LastToken: lastToken, Stack: stack})
}

// AsParseError unwraps err (which may be wrapped by pingcap/errors.Trace)
// back to the underlying *ParseError, if any.
func AsParseError(err error) (*ParseError, bool) {
	cause := pingerrors.Cause(err)
	pe, ok := cause.(*ParseError)
	return pe, ok
}

// CorruptGrammarError indicates the loaded grammar itself is
// inconsistent (a missing goto, a reduce with too few stack items, an
// unknown action kind, an accept at the wrong stack depth), never a
// user-input fault. The parser panics with this type rather than
// returning an error, since no caller can recover from a broken grammar
// mid-parse.
type CorruptGrammarError struct {
	Message string
}

func (e *CorruptGrammarError) Error() string { return "grammar corruption: " + e.Message }

func corrupt(format string, args ...any) {
	panic(&CorruptGrammarError{Message: fmt.Sprintf(format, args...)})
}
