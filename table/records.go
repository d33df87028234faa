package table

import "strconv"

// Phase 1 of loading: decode every record into an index-referencing raw
// form. Phase 2 (in load.go) resolves indices into the linked object
// graph. Splitting the two phases lets records reference other records
// that appear later in the file.

type rawCounts struct {
	symbols, charsets, rules, dfaStates, lalrStates, groups int
}

type rawInitial struct {
	dfa, lalr int
}

type rawSymbol struct {
	index int
	name  string
	kind  int
}

type rawCharsetV1 struct {
	index int
	chars string
}

type rawCharsetV5 struct {
	index    int
	codepage int
	ranges   []CodepointRange
}

type rawEdge struct {
	charsetIdx, targetIdx int
}

type rawDFA struct {
	index     int
	final     bool
	symbolIdx int
	edges     []rawEdge
}

type rawAction struct {
	lookaheadIdx, actionType, value int
}

type rawLALR struct {
	index   int
	actions []rawAction
}

type rawRule struct {
	index       int
	producesIdx int
	consumesIdx []int
}

type rawGroup struct {
	index                         int
	name                          string
	emittedIdx, startIdx, endIdx  int
	advance, ending               int
	nestingIdx                    []int
}

// decoded accumulates every record parsed from the file, in raw
// index-referencing form.
type decoded struct {
	version int

	params map[string]string

	counts  rawCounts
	initial rawInitial

	symbols   []rawSymbol
	charsetsV1 []rawCharsetV1
	charsetsV5 []rawCharsetV5
	dfaStates []rawDFA
	lalr      []rawLALR
	rules     []rawRule
	groups    []rawGroup
}

func newDecoded(version int) *decoded {
	return &decoded{version: version, params: map[string]string{}}
}

// decodeRecords reads every 'M' record in r and dispatches it by its
// record-type byte (fields[0]).
func decodeRecords(r *reader, version int) (*decoded, error) {
	d := newDecoded(version)

	for {
		rec, ok, err := r.readRecord()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		typ, err := rec.byteField(0)
		if err != nil {
			return nil, err
		}

		if err := d.dispatch(typ, rec); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *decoded) dispatch(typ byte, rec record) error {
	switch typ {
	case 'P':
		return d.readParameterV1(rec)
	case 'p':
		return d.readPropertyV5(rec)
	case 'T', 't':
		return d.readCounts(rec)
	case 'I':
		return d.readInitial(rec)
	case 'C':
		return d.readCharsetV1(rec)
	case 'c':
		return d.readCharsetV5(rec)
	case 'S':
		return d.readSymbol(rec)
	case 'D':
		return d.readDFAState(rec)
	case 'L':
		return d.readLALRState(rec)
	case 'R':
		return d.readRule(rec)
	case 'g':
		return d.readGroup(rec)
	case 'n':
		return nil // group nesting: reserved, no payload semantics yet
	default:
		return unknownRecordErr(rec.offset, typ)
	}
}

func (d *decoded) readParameterV1(rec record) error {
	name, err := rec.stringField(1)
	if err != nil {
		return err
	}
	version, err := rec.stringField(2)
	if err != nil {
		return err
	}
	author, err := rec.stringField(3)
	if err != nil {
		return err
	}
	about, err := rec.stringField(4)
	if err != nil {
		return err
	}
	caseSensitive, err := rec.boolField(5)
	if err != nil {
		return err
	}
	startSymbol, err := rec.intField(6)
	if err != nil {
		return err
	}

	d.params["Name"] = name
	d.params["Version"] = version
	d.params["Author"] = author
	d.params["About"] = about
	if caseSensitive {
		d.params["CaseSensitive"] = "True"
	} else {
		d.params["CaseSensitive"] = "False"
	}
	d.params["StartSymbol"] = strconv.Itoa(startSymbol)
	return nil
}

func (d *decoded) readPropertyV5(rec record) error {
	// fields[1] is reserved (an index/ordinal), fields[2] name, fields[3] value.
	name, err := rec.stringField(2)
	if err != nil {
		return err
	}
	value, err := rec.stringField(3)
	if err != nil {
		return err
	}
	d.params[name] = value
	return nil
}

func (d *decoded) readCounts(rec record) error {
	vals := make([]int, 0, 7)
	for i := 1; i < len(rec.fields); i++ {
		v, err := rec.intField(i)
		if err != nil {
			return err
		}
		vals = append(vals, v)
	}
	if len(vals) < 5 {
		return truncatedRecordErr(rec.offset)
	}
	d.counts.symbols = vals[0]
	d.counts.charsets = vals[1]
	d.counts.rules = vals[2]
	d.counts.dfaStates = vals[3]
	d.counts.lalrStates = vals[4]
	if len(vals) >= 6 {
		d.counts.groups = vals[5]
	}
	return nil
}

func (d *decoded) readInitial(rec record) error {
	dfa, err := rec.intField(1)
	if err != nil {
		return err
	}
	lalr, err := rec.intField(2)
	if err != nil {
		return err
	}
	d.initial = rawInitial{dfa: dfa, lalr: lalr}
	return nil
}

func (d *decoded) readCharsetV1(rec record) error {
	index, err := rec.intField(1)
	if err != nil {
		return err
	}
	chars, err := rec.stringField(2)
	if err != nil {
		return err
	}
	d.charsetsV1 = append(d.charsetsV1, rawCharsetV1{index: index, chars: chars})
	return nil
}

func (d *decoded) readCharsetV5(rec record) error {
	index, err := rec.intField(1)
	if err != nil {
		return err
	}
	codepage, err := rec.intField(2)
	if err != nil {
		return err
	}
	count, err := rec.intField(3)
	if err != nil {
		return err
	}
	// fields[4] is reserved.
	ranges := make([]CodepointRange, 0, count)
	pos := 5
	for i := 0; i < count; i++ {
		lo, err := rec.intField(pos)
		if err != nil {
			return err
		}
		hi, err := rec.intField(pos + 1)
		if err != nil {
			return err
		}
		ranges = append(ranges, CodepointRange{Low: lo, High: hi})
		pos += 2
	}
	d.charsetsV5 = append(d.charsetsV5, rawCharsetV5{index: index, codepage: codepage, ranges: ranges})
	return nil
}

func (d *decoded) readSymbol(rec record) error {
	index, err := rec.intField(1)
	if err != nil {
		return err
	}
	name, err := rec.stringField(2)
	if err != nil {
		return err
	}
	kind, err := rec.intField(3)
	if err != nil {
		return err
	}
	d.symbols = append(d.symbols, rawSymbol{index: index, name: name, kind: kind})
	return nil
}

func (d *decoded) readDFAState(rec record) error {
	index, err := rec.intField(1)
	if err != nil {
		return err
	}
	final, err := rec.boolField(2)
	if err != nil {
		return err
	}
	symbolIdx, err := rec.intField(3)
	if err != nil {
		return err
	}
	// fields[4] is reserved.
	edges := make([]rawEdge, 0, rec.remaining(5)/3)
	pos := 5
	for rec.remaining(pos) >= 3 {
		charsetIdx, err := rec.intField(pos)
		if err != nil {
			return err
		}
		targetIdx, err := rec.intField(pos + 1)
		if err != nil {
			return err
		}
		// fields[pos+2] is reserved.
		edges = append(edges, rawEdge{charsetIdx: charsetIdx, targetIdx: targetIdx})
		pos += 3
	}
	d.dfaStates = append(d.dfaStates, rawDFA{index: index, final: final, symbolIdx: symbolIdx, edges: edges})
	return nil
}

func (d *decoded) readLALRState(rec record) error {
	index, err := rec.intField(1)
	if err != nil {
		return err
	}
	// fields[2] is reserved.
	actions := make([]rawAction, 0, rec.remaining(3)/4)
	pos := 3
	for rec.remaining(pos) >= 4 {
		lookaheadIdx, err := rec.intField(pos)
		if err != nil {
			return err
		}
		actionType, err := rec.intField(pos + 1)
		if err != nil {
			return err
		}
		value, err := rec.intField(pos + 2)
		if err != nil {
			return err
		}
		// fields[pos+3] is reserved.
		actions = append(actions, rawAction{lookaheadIdx: lookaheadIdx, actionType: actionType, value: value})
		pos += 4
	}
	d.lalr = append(d.lalr, rawLALR{index: index, actions: actions})
	return nil
}

func (d *decoded) readRule(rec record) error {
	index, err := rec.intField(1)
	if err != nil {
		return err
	}
	producesIdx, err := rec.intField(2)
	if err != nil {
		return err
	}
	// fields[3] is reserved.
	consumes := make([]int, 0, rec.remaining(4))
	for pos := 4; pos < len(rec.fields); pos++ {
		idx, err := rec.intField(pos)
		if err != nil {
			return err
		}
		consumes = append(consumes, idx)
	}
	d.rules = append(d.rules, rawRule{index: index, producesIdx: producesIdx, consumesIdx: consumes})
	return nil
}

func (d *decoded) readGroup(rec record) error {
	index, err := rec.intField(1)
	if err != nil {
		return err
	}
	name, err := rec.stringField(2)
	if err != nil {
		return err
	}
	emittedIdx, err := rec.intField(3)
	if err != nil {
		return err
	}
	startIdx, err := rec.intField(4)
	if err != nil {
		return err
	}
	endIdx, err := rec.intField(5)
	if err != nil {
		return err
	}
	advance, err := rec.intField(6)
	if err != nil {
		return err
	}
	ending, err := rec.intField(7)
	if err != nil {
		return err
	}
	// fields[8] is reserved.
	nestingCount, err := rec.intField(9)
	if err != nil {
		return err
	}
	nesting := make([]int, 0, nestingCount)
	for i := 0; i < nestingCount; i++ {
		idx, err := rec.intField(10 + i)
		if err != nil {
			return err
		}
		nesting = append(nesting, idx)
	}
	d.groups = append(d.groups, rawGroup{
		index: index, name: name,
		emittedIdx: emittedIdx, startIdx: startIdx, endIdx: endIdx,
		advance: advance, ending: ending, nestingIdx: nesting,
	})
	return nil
}

