// Package parser implements an LALR(1) stack automaton: it interleaves
// with a lexer.Lexer, producing a parse tree and invoking observer
// callbacks for shift/reduce/token events.
package parser

import (
	"context"

	"github.com/Warfley/gold-parser-tools/lexer"
	"github.com/Warfley/gold-parser-tools/table"
	"github.com/Warfley/gold-parser-tools/tree"
)

// Tree is the result of a successful parse: either a Leaf or an
// Internal node, per the tree package.
type Tree = tree.Node

// Observers holds the optional callback hooks a Parse invocation may
// subscribe to. All three are optional; a nil field is simply not
// called. None of them may mutate the stack snapshot they are given.
type Observers struct {
	// OnToken fires once for every non-Skippable token the lexer
	// produces, before it is used as a look-ahead.
	OnToken func(tok *lexer.Token)

	// OnShift fires after a shift: preState is the state the stack top
	// held before the shift, lookAhead is the token that was shifted,
	// and stack is a read-only snapshot taken after the push.
	OnShift func(preState *table.LALRState, lookAhead *lexer.Token, stack []StackFrame)

	// OnReduce fires after a reduce: preState is the state that decided
	// to reduce, lookAhead is the (unconsumed) look-ahead that triggered
	// it, and stack is a read-only snapshot taken after the goto push.
	OnReduce func(preState *table.LALRState, lookAhead *lexer.Token, stack []StackFrame)
}

// sentinelSymbol backs the bottom-of-stack item; it is never returned to
// a caller as parse output.
var sentinelSymbol = &table.Symbol{Index: -1, Name: "INITIAL_STATE", Kind: table.SymError}

// Parser drives a fixed Grammar's LALR automaton against a lexer.Lexer
// built from the same grammar. A Parser is immutable and safe for
// concurrent use: distinct goroutines may call Parse on the same
// *Parser simultaneously, each with its own stack.
type Parser struct {
	grammar *table.Grammar
	lex     *lexer.Lexer
}

// New creates a Parser bound to g.
func New(g *table.Grammar) *Parser {
	return &Parser{grammar: g, lex: lexer.New(g)}
}

type stackItem struct {
	state *table.LALRState
	node  Tree
}

func snapshot(stack []stackItem) []StackFrame {
	out := make([]StackFrame, len(stack))
	for i, it := range stack {
		out[i] = StackFrame{State: it.state, Node: it.node}
	}
	return out
}

// Parse runs the parser to completion against input, or until ctx is
// cancelled. obs may be nil.
//
// The returned error is one of *lexer.LexError, *lexer.GroupError,
// *ParseError, or ctx.Err() (typically context.Canceled) — never a
// bare generic error. The first three are wrapped with
// pingerrors.Trace for stack-trace capture; recover the concrete type
// with lexer.AsLexError, lexer.AsGroupError, or AsParseError rather
// than a type assertion.
func (p *Parser) Parse(ctx context.Context, input string, obs *Observers) (Tree, error) {
	if obs == nil {
		obs = &Observers{}
	}

	runes := []rune(input)
	stack := []stackItem{{state: p.grammar.LALRInitial, node: &tree.Internal{Sym: sentinelSymbol}}}

	var lookAhead *lexer.Token
	pos := 0

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if lookAhead == nil {
			tok, newPos, err := p.lex.Next(runes, pos)
			if err != nil {
				return nil, err
			}
			pos = newPos

			if tok.Symbol.Kind == table.Skippable {
				continue
			}

			lookAhead = tok
			if obs.OnToken != nil {
				obs.OnToken(tok)
			}
		}

		top := stack[len(stack)-1]
		s := top.state

		action, ok := s.Actions[lookAhead.Symbol.Name]
		if !ok {
			var lastToken *lexer.Token
			if lookAhead.Symbol.Kind != table.EndOfFile {
				lastToken = lookAhead
			}
			return nil, newParseError(lastToken, snapshot(stack))
		}

		switch action.Kind {
		case table.Accept:
			if len(stack) != 2 {
				corrupt("accept with unexpected stack depth %d, want sentinel + one node", len(stack))
			}
			return top.node, nil

		case table.Shift:
			stack = append(stack, stackItem{state: action.Target, node: &tree.Leaf{Token: lookAhead}})
			if obs.OnShift != nil {
				obs.OnShift(s, lookAhead, snapshot(stack))
			}
			lookAhead = nil

		case table.Reduce:
			rule := action.Rule
			n := len(rule.Consumes)
			if len(stack)-1 < n {
				corrupt("reduce by rule %d needs %d symbols, stack has only %d", rule.Index, n, len(stack)-1)
			}

			children := make([]tree.Node, n)
			for i, it := range stack[len(stack)-n:] {
				children[i] = it.node
			}
			stack = stack[:len(stack)-n]

			newNode := &tree.Internal{Sym: rule.Produces, Children: children}

			beneath := stack[len(stack)-1].state
			gotoState, ok := beneath.Gotos[rule.Produces.Name]
			if !ok {
				corrupt("no goto for non-terminal %q from state %d", rule.Produces.Name, beneath.Index)
			}

			stack = append(stack, stackItem{state: gotoState, node: newNode})
			if obs.OnReduce != nil {
				obs.OnReduce(s, lookAhead, snapshot(stack))
			}
			// look-ahead is not consumed by a reduce.

		default:
			corrupt("unknown LALR action kind %d in state %d", action.Kind, s.Index)
		}
	}
}
