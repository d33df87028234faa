// Package lexer implements a longest-match DFA driver and nestable
// group engine: it turns an input string into a stream of Tokens, one
// call at a time, threading position through the caller rather than
// keeping state of its own.
package lexer

import "github.com/Warfley/gold-parser-tools/table"

// Token is produced by the lexer: the emitting Symbol, the literal
// matched substring, and the start position in the input (a rune index,
// not a byte offset). A group token additionally carries the nested
// child tokens lexed within it.
type Token struct {
	Symbol   *table.Symbol
	Text     string
	Start    int
	Children []*Token
}

// eofToken builds the synthetic end-of-file token emitted once the
// lexer reaches the end of the input. grammar must contain a Symbol of
// kind table.EndOfFile; a corrupt or hand-built grammar lacking one is
// a loader/grammar-corruption bug, not a user-input error, so this
// panics rather than returning an error.
func eofToken(g *table.Grammar, pos int) *Token {
	for _, s := range g.Symbols {
		if s.Kind == table.EndOfFile {
			return &Token{Symbol: s, Text: "", Start: pos}
		}
	}
	panic("gold/lexer: grammar has no EndOfFile symbol")
}
