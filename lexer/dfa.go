package lexer

import "github.com/Warfley/gold-parser-tools/table"

// Lexer performs lexical analysis against a fixed Grammar. Like the
// grammar it wraps, a Lexer is immutable and safe for concurrent use:
// NextToken and Next are pure functions of (input, pos), never mutating
// the Lexer or the Grammar. The caller threads position between calls.
type Lexer struct {
	grammar *table.Grammar
}

// New creates a Lexer bound to g.
func New(g *table.Grammar) *Lexer {
	return &Lexer{grammar: g}
}

// findEdge returns the first outgoing edge of state whose label matches
// ch, trying edges in file order.
func findEdge(state *table.DFAState, ch rune) (*table.DFAState, bool) {
	for _, e := range state.Edges {
		if e.Label.Contains(ch) {
			return e.Target, true
		}
	}
	return nil, false
}

// NextToken runs the longest-match DFA once, starting at input[pos]. It
// does not descend into groups; see Next for the full lexer contract.
//
// Returns the matched token and the position immediately after it, or a
// synthetic end-of-file token when pos is already at the end of input,
// or a *LexError when no DFA edge accepts input[pos].
func (l *Lexer) NextToken(input []rune, pos int) (*Token, int, error) {
	if pos >= len(input) {
		return eofToken(l.grammar, pos), pos, nil
	}

	state := l.grammar.DFAInitial
	curPos := pos

	var candidate *table.DFAState
	candidateEnd := pos

	for curPos < len(input) {
		next, ok := findEdge(state, input[curPos])
		if !ok {
			break
		}
		state = next
		curPos++
		if state.Accept != nil {
			candidate = state
			candidateEnd = curPos
		}
	}

	if candidate != nil {
		return &Token{
			Symbol: candidate.Accept,
			Text:   string(input[pos:candidateEnd]),
			Start:  pos,
		}, candidateEnd, nil
	}

	return nil, pos, newLexError(pos)
}

// Next runs the full lexer contract: a longest-match DFA step, extended
// with the group engine whenever the matched token opens a group.
func (l *Lexer) Next(input []rune, pos int) (*Token, int, error) {
	tok, newPos, err := l.NextToken(input, pos)
	if err != nil {
		return nil, pos, err
	}

	if tok.Symbol == nil || tok.Symbol.Kind != table.GroupStart {
		return tok, newPos, nil
	}

	return l.scanGroup(input, tok, newPos)
}
