/*
Package gold is a runtime engine for grammars compiled by the GOLD Parser
Builder. Given a compiled grammar table (formats v1 and v5) and an input
string, it produces either a parse tree or a precisely-located error.

Consists of subpackages:
  - table: decodes a compiled grammar table file into an in-memory Grammar;
  - lexer: a longest-match DFA driver extended with a nestable group engine;
  - tree: parse-tree node types and a printer;
  - parser: an LALR(1) stack automaton that drives the lexer and builds a
    parse tree, invoking observer callbacks for shift/reduce/token events;
  - engine: wires a lexer and a parser together, skipping Skippable tokens;
  - cmd/goldrun: a small CLI front end over the engine.

Typical usage is:

 1. Compile a .grm grammar source with the external GOLD grammar builder,
    producing a .cgt (v1) or .egt (v5) table file.
 2. Load the table with table.Load.
 3. Call engine.Parse with the loaded grammar and an input string,
    optionally supplying observer hooks.
 4. Inspect the returned parse tree, or handle the typed error.
*/
package gold

import "github.com/Warfley/gold-parser-tools/engine"

// ParseResult is the outcome of a single parse. It is an
// alias for engine.Result so that callers of either package share one
// type.
type ParseResult = engine.Result

// ParseSuccessful reports whether r represents a successful parse, i.e.
// whether it is safe to use r.Tree.
func ParseSuccessful(r ParseResult) bool {
	return r.Successful()
}
