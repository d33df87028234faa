package table

import (
	"fmt"
	"strings"
)

// Load decodes a compiled GOLD grammar table (v1.0 "GOLD Parser
// Tables/v1.0" or v5.0 "GOLD Parser Tables/v5.0" header) into an
// immutable Grammar. It is a pure function of data: the same bytes
// always produce an equivalent Grammar.
func Load(data []byte) (*Grammar, error) {
	res, err := LoadWithWarnings(data)
	if err != nil {
		return nil, err
	}
	return res.Grammar, nil
}

// LoadWithWarnings behaves like Load but also returns non-fatal
// diagnostics, such as a failed v1 comment-line promotion heuristic
//.
func LoadWithWarnings(data []byte) (LoadResult, error) {
	r := newReader(data)

	version, err := readHeader(r)
	if err != nil {
		return LoadResult{}, err
	}

	d, err := decodeRecords(r, version)
	if err != nil {
		return LoadResult{}, err
	}

	g, warnings, err := link(d)
	if err != nil {
		return LoadResult{}, err
	}

	return LoadResult{Grammar: g, Warnings: warnings}, nil
}

const headerPrefix = "GOLD Parser Tables/v"

// readHeader reads the unterminated-tag UTF-16LE header string and
// returns the grammar version (1 or 5).
func readHeader(r *reader) (int, error) {
	header, err := r.readUTF16ZRaw()
	if err != nil {
		return 0, badHeaderErr(0, "could not read header string")
	}

	if !strings.HasPrefix(header, headerPrefix) {
		return 0, badHeaderErr(0, "missing \""+headerPrefix+"N.0\" identifier")
	}

	rest := strings.TrimPrefix(header, headerPrefix)
	rest = strings.TrimSuffix(rest, ".0")

	switch rest {
	case "1":
		return 1, nil
	case "5":
		return 5, nil
	default:
		version := 0
		for _, c := range rest {
			if c < '0' || c > '9' {
				return 0, badHeaderErr(0, fmt.Sprintf("unrecognized header %q", header))
			}
			version = version*10 + int(c-'0')
		}
		return 0, unsupportedVersionErr(0, version)
	}
}

// link performs two-phase index resolution: build the flat object
// arrays, then substitute every index reference with the actual object.
func link(d *decoded) (*Grammar, []string, error) {
	g := &Grammar{Version: d.version, Parameters: d.params}

	symbols, err := linkSymbols(d)
	if err != nil {
		return nil, nil, err
	}
	g.Symbols = symbols

	charsets, err := linkCharsets(d)
	if err != nil {
		return nil, nil, err
	}
	g.Charsets = charsets

	groups, err := linkGroups(d, symbols)
	if err != nil {
		return nil, nil, err
	}
	g.Groups = groups

	// Back-fill Symbol.Group for every GroupStart/GroupEnd symbol now that
	// groups exist: each such symbol belongs to exactly one group.
	for _, grp := range groups {
		if grp.Start != nil {
			grp.Start.Group = grp
		}
		if grp.End != nil {
			grp.End.Group = grp
		}
	}

	dfaStates, err := linkDFA(d, charsets, symbols)
	if err != nil {
		return nil, nil, err
	}
	g.DFAStates = dfaStates

	rules, err := linkRules(d, symbols)
	if err != nil {
		return nil, nil, err
	}
	g.Rules = rules

	lalrStates, err := linkLALR(d, symbols, rules)
	if err != nil {
		return nil, nil, err
	}
	g.LALRStates = lalrStates

	if d.initial.dfa < 0 || d.initial.dfa >= len(dfaStates) {
		return nil, nil, indexOutOfRangeErr(0, d.initial.dfa, len(dfaStates))
	}
	g.DFAInitial = dfaStates[d.initial.dfa]

	if d.initial.lalr < 0 || d.initial.lalr >= len(lalrStates) {
		return nil, nil, indexOutOfRangeErr(0, d.initial.lalr, len(lalrStates))
	}
	g.LALRInitial = lalrStates[d.initial.lalr]

	var warnings []string
	if d.version == 1 {
		w := promoteV1Comments(g)
		warnings = append(warnings, w...)
	}

	return g, warnings, nil
}

func maxIndex(base int, indices ...int) int {
	for _, i := range indices {
		if i+1 > base {
			base = i + 1
		}
	}
	return base
}

func linkSymbols(d *decoded) ([]*Symbol, error) {
	n := d.counts.symbols
	for _, s := range d.symbols {
		n = maxIndex(n, s.index)
	}
	symbols := make([]*Symbol, n)
	for _, s := range d.symbols {
		if s.index < 0 {
			return nil, indexOutOfRangeErr(0, s.index, n)
		}
		symbols[s.index] = &Symbol{Index: s.index, Name: s.name, Kind: symbolKind(s.kind)}
	}
	for i, s := range symbols {
		if s == nil {
			symbols[i] = &Symbol{Index: i, Name: "", Kind: SymError}
		}
	}
	return symbols, nil
}

func symbolKind(k int) SymbolKind {
	switch k {
	case 0:
		return NonTerminal
	case 1:
		return Terminal
	case 2:
		return Skippable
	case 3:
		return EndOfFile
	case 4:
		return GroupStart
	case 5:
		return GroupEnd
	case 6:
		return CommentLine
	case 7:
		return SymError
	default:
		return SymError
	}
}

func linkCharsets(d *decoded) ([]*Charset, error) {
	n := d.counts.charsets
	for _, c := range d.charsetsV1 {
		n = maxIndex(n, c.index)
	}
	for _, c := range d.charsetsV5 {
		n = maxIndex(n, c.index)
	}
	charsets := make([]*Charset, n)

	for _, c := range d.charsetsV1 {
		chars := make(map[rune]struct{}, len(c.chars))
		for _, r := range c.chars {
			chars[r] = struct{}{}
		}
		charsets[c.index] = &Charset{Index: c.index, Kind: Enumerated, Chars: chars}
	}

	for _, c := range d.charsetsV5 {
		charsets[c.index] = &Charset{
			Index:    c.index,
			Kind:     RangeSet,
			Codepage: resolveCodepage(c.codepage),
			Ranges:   c.ranges,
		}
	}

	for i, c := range charsets {
		if c == nil {
			charsets[i] = &Charset{Index: i, Kind: Enumerated, Chars: map[rune]struct{}{}}
		}
	}
	return charsets, nil
}

func linkDFA(d *decoded, charsets []*Charset, symbols []*Symbol) ([]*DFAState, error) {
	n := d.counts.dfaStates
	for _, s := range d.dfaStates {
		n = maxIndex(n, s.index)
	}
	states := make([]*DFAState, n)
	for _, s := range d.dfaStates {
		states[s.index] = &DFAState{Index: s.index}
	}
	for i, s := range states {
		if s == nil {
			states[i] = &DFAState{Index: i}
		}
	}

	for _, s := range d.dfaStates {
		st := states[s.index]
		if s.final {
			sym, err := symbolAt(symbols, s.symbolIdx)
			if err != nil {
				return nil, err
			}
			st.Accept = sym
		}
		st.Edges = make([]DFAEdge, 0, len(s.edges))
		for _, e := range s.edges {
			cs, err := charsetAt(charsets, e.charsetIdx)
			if err != nil {
				return nil, err
			}
			target, err := dfaAt(states, e.targetIdx)
			if err != nil {
				return nil, err
			}
			st.Edges = append(st.Edges, DFAEdge{Label: cs, Target: target})
		}
	}
	return states, nil
}

func linkRules(d *decoded, symbols []*Symbol) ([]*Rule, error) {
	n := d.counts.rules
	for _, r := range d.rules {
		n = maxIndex(n, r.index)
	}
	rules := make([]*Rule, n)
	for _, r := range d.rules {
		rules[r.index] = &Rule{Index: r.index}
	}
	for i, r := range rules {
		if r == nil {
			rules[i] = &Rule{Index: i}
		}
	}

	for _, r := range d.rules {
		ru := rules[r.index]
		sym, err := symbolAt(symbols, r.producesIdx)
		if err != nil {
			return nil, err
		}
		ru.Produces = sym
		ru.Consumes = make([]*Symbol, 0, len(r.consumesIdx))
		for _, idx := range r.consumesIdx {
			sym, err := symbolAt(symbols, idx)
			if err != nil {
				return nil, err
			}
			ru.Consumes = append(ru.Consumes, sym)
		}
	}
	return rules, nil
}

func linkGroups(d *decoded, symbols []*Symbol) ([]*Group, error) {
	n := d.counts.groups
	for _, g := range d.groups {
		n = maxIndex(n, g.index)
	}
	groups := make([]*Group, n)
	for _, g := range d.groups {
		groups[g.index] = &Group{Index: g.index}
	}
	for i, g := range groups {
		if g == nil {
			groups[i] = &Group{Index: i}
		}
	}

	for _, g := range d.groups {
		grp := groups[g.index]
		grp.Name = g.name

		emitted, err := symbolAt(symbols, g.emittedIdx)
		if err != nil {
			return nil, err
		}
		grp.Emitted = emitted

		start, err := symbolAt(symbols, g.startIdx)
		if err != nil {
			return nil, err
		}
		grp.Start = start

		end, err := symbolAt(symbols, g.endIdx)
		if err != nil {
			return nil, err
		}
		grp.End = end

		if g.advance == 1 {
			grp.Advance = AdvanceCharacter
		} else {
			grp.Advance = AdvanceToken
		}
		if g.ending == 1 {
			grp.Ending = EndingClosed
		} else {
			grp.Ending = EndingOpen
		}

		grp.Nestable = make(map[string]*Group, len(g.nestingIdx))
		for _, idx := range g.nestingIdx {
			nested, err := groupAt(groups, idx)
			if err != nil {
				return nil, err
			}
			grp.Nestable[nested.Name] = nested
		}
	}
	return groups, nil
}

func linkLALR(d *decoded, symbols []*Symbol, rules []*Rule) ([]*LALRState, error) {
	n := d.counts.lalrStates
	for _, s := range d.lalr {
		n = maxIndex(n, s.index)
	}
	states := make([]*LALRState, n)
	for _, s := range d.lalr {
		states[s.index] = &LALRState{
			Index:   s.index,
			Actions: map[string]LALRAction{},
			Gotos:   map[string]*LALRState{},
		}
	}
	for i, s := range states {
		if s == nil {
			states[i] = &LALRState{Index: i, Actions: map[string]LALRAction{}, Gotos: map[string]*LALRState{}}
		}
	}

	for _, s := range d.lalr {
		st := states[s.index]
		for _, a := range s.actions {
			sym, err := symbolAt(symbols, a.lookaheadIdx)
			if err != nil {
				return nil, err
			}

			switch a.actionType {
			case int(Shift):
				target, err := lalrAt(states, a.value)
				if err != nil {
					return nil, err
				}
				st.Actions[sym.Name] = LALRAction{Kind: Shift, Target: target}

			case int(Reduce):
				rule, err := ruleAt(rules, a.value)
				if err != nil {
					return nil, err
				}
				st.Actions[sym.Name] = LALRAction{Kind: Reduce, Rule: rule}

			case int(ActionGoto):
				target, err := lalrAt(states, a.value)
				if err != nil {
					return nil, err
				}
				st.Gotos[sym.Name] = target

			case int(Accept):
				st.Actions[sym.Name] = LALRAction{Kind: Accept}

			default:
				return nil, indexOutOfRangeErr(0, a.actionType, int(Accept)+1)
			}
		}
	}
	return states, nil
}

func symbolAt(symbols []*Symbol, idx int) (*Symbol, error) {
	if idx < 0 || idx >= len(symbols) {
		return nil, indexOutOfRangeErr(0, idx, len(symbols))
	}
	return symbols[idx], nil
}

func charsetAt(charsets []*Charset, idx int) (*Charset, error) {
	if idx < 0 || idx >= len(charsets) {
		return nil, indexOutOfRangeErr(0, idx, len(charsets))
	}
	return charsets[idx], nil
}

func dfaAt(states []*DFAState, idx int) (*DFAState, error) {
	if idx < 0 || idx >= len(states) {
		return nil, indexOutOfRangeErr(0, idx, len(states))
	}
	return states[idx], nil
}

func lalrAt(states []*LALRState, idx int) (*LALRState, error) {
	if idx < 0 || idx >= len(states) {
		return nil, indexOutOfRangeErr(0, idx, len(states))
	}
	return states[idx], nil
}

func ruleAt(rules []*Rule, idx int) (*Rule, error) {
	if idx < 0 || idx >= len(rules) {
		return nil, indexOutOfRangeErr(0, idx, len(rules))
	}
	return rules[idx], nil
}

func groupAt(groups []*Group, idx int) (*Group, error) {
	if idx < 0 || idx >= len(groups) {
		return nil, indexOutOfRangeErr(0, idx, len(groups))
	}
	return groups[idx], nil
}

// promoteV1Comments synthesizes a block-comment group from a
// GroupStart/GroupEnd pair, and a line-comment group from a
// CommentLine symbol paired with a
// case-insensitively named "newline" symbol.
func promoteV1Comments(g *Grammar) (warnings []string) {
	var start, end *Symbol
	for _, s := range g.Symbols {
		if s.Kind == GroupStart && start == nil {
			start = s
		}
		if s.Kind == GroupEnd && end == nil {
			end = s
		}
	}
	if start != nil && end != nil {
		blockGroup := &Group{
			Index:    len(g.Groups),
			Name:     "block comment",
			Emitted:  start,
			Start:    start,
			End:      end,
			Advance:  AdvanceCharacter,
			Ending:   EndingClosed,
			Nestable: map[string]*Group{},
		}
		start.Group = blockGroup
		end.Group = blockGroup
		g.Groups = append(g.Groups, blockGroup)
	}

	var commentLine *Symbol
	for _, s := range g.Symbols {
		if s.Kind == CommentLine {
			commentLine = s
			break
		}
	}
	if commentLine == nil {
		return warnings
	}

	var newline *Symbol
	for _, s := range g.Symbols {
		if strings.EqualFold(s.Name, "newline") {
			newline = s
			break
		}
	}
	if newline == nil {
		warnings = append(warnings, "v1 comment-line promotion: no symbol named \"newline\" found; "+
			"line comments introduced by \""+commentLine.Name+"\" will not be recognized as a group")
		return warnings
	}

	commentLine.Kind = GroupStart
	lineGroup := &Group{
		Index:    len(g.Groups),
		Name:     "line comment",
		Emitted:  commentLine,
		Start:    commentLine,
		End:      newline,
		Advance:  AdvanceCharacter,
		Ending:   EndingOpen,
		Nestable: map[string]*Group{},
	}
	commentLine.Group = lineGroup
	g.Groups = append(g.Groups, lineGroup)

	return warnings
}
