package table_test

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Warfley/gold-parser-tools/table"
)

// The following helpers build a minimal, hand-encoded v1 grammar table
// byte stream: a header string, then a sequence of 'M'-tagged records
// with tag-prefixed fields, matching the loader's wire format. There
// is no encoder in the production package (only a decoder), so tests
// that exercise Load end to end build their own bytes here.

func utf16zBytes(s string) []byte {
	var buf bytes.Buffer
	for _, u := range utf16.Encode([]rune(s)) {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], u)
		buf.Write(b[:])
	}
	buf.Write([]byte{0, 0})
	return buf.Bytes()
}

func fByte(v byte) []byte { return []byte{'b', v} }

func fInt(v int) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	return append([]byte{'I'}, b[:]...)
}

func fString(s string) []byte { return append([]byte{'S'}, utf16zBytes(s)...) }

func fBool(v bool) []byte {
	if v {
		return []byte{'B', 1}
	}
	return []byte{'B', 0}
}

func fEmpty() []byte { return []byte{'E'} }

func record(fields ...[]byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('M')
	var count [2]byte
	binary.LittleEndian.PutUint16(count[:], uint16(len(fields)))
	buf.Write(count[:])
	for _, f := range fields {
		buf.Write(f)
	}
	return buf.Bytes()
}

// buildMinimalV1Table encodes a table recognizing a single Identifier
// token made of the letters a-c, with an empty (no-action) LALR state
// so Load can succeed without a real grammar of rules attached.
func buildMinimalV1Table(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.Write(utf16zBytes("GOLD Parser Tables/v1.0"))

	buf.Write(record(fByte('T'), fInt(2), fInt(1), fInt(0), fInt(2), fInt(1)))
	buf.Write(record(fByte('I'), fInt(0), fInt(0)))

	buf.Write(record(fByte('S'), fInt(0), fString("EOF"), fInt(3)))
	buf.Write(record(fByte('S'), fInt(1), fString("Identifier"), fInt(1)))

	buf.Write(record(fByte('C'), fInt(0), fString("abc")))

	buf.Write(record(fByte('D'), fInt(0), fBool(false), fInt(0), fEmpty(),
		fInt(0), fInt(1), fEmpty()))
	buf.Write(record(fByte('D'), fInt(1), fBool(true), fInt(1), fEmpty(),
		fInt(0), fInt(1), fEmpty()))

	buf.Write(record(fByte('L'), fInt(0), fEmpty()))

	return buf.Bytes()
}

func TestLoadMinimalV1Table(t *testing.T) {
	g, err := table.Load(buildMinimalV1Table(t))
	require.NoError(t, err)

	require.Len(t, g.Symbols, 2)
	ident, ok := g.SymbolByName("Identifier")
	require.True(t, ok)
	assert.Equal(t, table.Terminal, ident.Kind)

	require.Len(t, g.Charsets, 1)
	wantChars := map[rune]struct{}{'a': {}, 'b': {}, 'c': {}}
	if diff := cmp.Diff(wantChars, g.Charsets[0].Chars); diff != "" {
		t.Errorf("decoded charset mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, g.DFAStates, 2)
	assert.Same(t, g.DFAStates[0], g.DFAInitial)
	assert.True(t, g.DFAStates[1].Accept == ident)

	require.Len(t, g.LALRStates, 1)
	assert.Same(t, g.LALRStates[0], g.LALRInitial)
}

func TestLoadBadHeaderRejected(t *testing.T) {
	data := utf16zBytes("not a gold table")
	_, err := table.Load(data)
	require.Error(t, err)

	le, ok := table.AsLoadError(err)
	require.True(t, ok)
	assert.Equal(t, table.ErrBadHeader, le.Code)
}

func TestLoadUnsupportedVersionRejected(t *testing.T) {
	data := utf16zBytes("GOLD Parser Tables/v9.0")
	_, err := table.Load(data)
	require.Error(t, err)

	le, ok := table.AsLoadError(err)
	require.True(t, ok)
	assert.Equal(t, table.ErrUnsupportedVersion, le.Code)
}

func TestLoadTruncatedRecordRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utf16zBytes("GOLD Parser Tables/v1.0"))
	buf.WriteByte('M')
	buf.Write([]byte{5, 0}) // claims 5 fields, provides none

	_, err := table.Load(buf.Bytes())
	require.Error(t, err)

	le, ok := table.AsLoadError(err)
	require.True(t, ok)
	assert.Equal(t, table.ErrTruncatedRecord, le.Code)
}

func TestLoadIndexOutOfRangeRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utf16zBytes("GOLD Parser Tables/v1.0"))
	buf.Write(record(fByte('T'), fInt(1), fInt(0), fInt(0), fInt(1), fInt(1)))
	buf.Write(record(fByte('I'), fInt(5), fInt(0))) // dfa initial index out of range
	buf.Write(record(fByte('S'), fInt(0), fString("EOF"), fInt(3)))
	buf.Write(record(fByte('D'), fInt(0), fBool(false), fInt(0), fEmpty()))
	buf.Write(record(fByte('L'), fInt(0), fEmpty()))

	_, err := table.Load(buf.Bytes())
	require.Error(t, err)

	le, ok := table.AsLoadError(err)
	require.True(t, ok)
	assert.Equal(t, table.ErrIndexOutOfRange, le.Code)
}

// buildMinimalV5Table encodes a v5 table exercising the three record
// kinds v1 has no equivalent for: a range-set charset tagged with a
// non-Unicode codepage ('c'), a named property ('p'), and a group
// ('g'). The charset covers a Windows-1252 byte (0x80, the euro sign)
// alongside a plain ASCII range, so a passing test only happens if the
// codepage's byte encoding is actually consulted rather than the rune
// value itself.
func buildMinimalV5Table(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.Write(utf16zBytes("GOLD Parser Tables/v5.0"))

	buf.Write(record(fByte('T'), fInt(3), fInt(1), fInt(0), fInt(1), fInt(1), fInt(1)))
	buf.Write(record(fByte('I'), fInt(0), fInt(0)))

	buf.Write(record(fByte('p'), fInt(0), fString("Name"), fString("MiniV5")))

	buf.Write(record(fByte('S'), fInt(0), fString("EOF"), fInt(3)))
	buf.Write(record(fByte('S'), fInt(1), fString("CommentStart"), fInt(4)))
	buf.Write(record(fByte('S'), fInt(2), fString("CommentEnd"), fInt(5)))

	buf.Write(record(fByte('c'), fInt(0), fInt(table.CodepageWindows1252), fInt(2), fEmpty(),
		fInt(65), fInt(91), fInt(128), fInt(129)))

	buf.Write(record(fByte('D'), fInt(0), fBool(false), fInt(0), fEmpty()))

	buf.Write(record(fByte('L'), fInt(0), fEmpty()))

	buf.Write(record(fByte('g'), fInt(0), fString("Comment"), fInt(1), fInt(1), fInt(2),
		fInt(1), fInt(1), fEmpty(), fInt(0)))

	return buf.Bytes()
}

func TestLoadMinimalV5Table(t *testing.T) {
	g, err := table.Load(buildMinimalV5Table(t))
	require.NoError(t, err)
	assert.Equal(t, 5, g.Version)
	assert.Equal(t, "MiniV5", g.Parameters["Name"])

	require.Len(t, g.Charsets, 1)
	cs := g.Charsets[0]
	assert.Equal(t, table.RangeSet, cs.Kind)
	wantRanges := []table.CodepointRange{{Low: 65, High: 91}, {Low: 128, High: 129}}
	if diff := cmp.Diff(wantRanges, cs.Ranges); diff != "" {
		t.Errorf("decoded ranges mismatch (-want +got):\n%s", diff)
	}

	// 'A' is ASCII and matches the first range under any codepage. The
	// euro sign only falls in the second range (byte 0x80) if its
	// Windows-1252 encoding, not its rune value (U+20AC), is what gets
	// compared: this is what distinguishes a real charmap lookup from
	// the identity fallback.
	assert.True(t, cs.Contains('A'))
	assert.False(t, cs.Contains('a'))
	assert.True(t, cs.Contains('€'))

	require.Len(t, g.Groups, 1)
	grp := g.Groups[0]
	assert.Equal(t, "Comment", grp.Name)
	assert.Equal(t, "CommentStart", grp.Emitted.Name)
	assert.Equal(t, "CommentStart", grp.Start.Name)
	assert.Equal(t, "CommentEnd", grp.End.Name)
	assert.Equal(t, table.AdvanceCharacter, grp.Advance)
	assert.Equal(t, table.EndingClosed, grp.Ending)
	assert.Empty(t, grp.Nestable)

	start, ok := g.SymbolByName("CommentStart")
	require.True(t, ok)
	assert.Same(t, grp, start.Group)
}

func TestLoadV1CommentPromotionWarnsWithoutNewlineSymbol(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utf16zBytes("GOLD Parser Tables/v1.0"))
	buf.Write(record(fByte('T'), fInt(1), fInt(0), fInt(0), fInt(1), fInt(1)))
	buf.Write(record(fByte('I'), fInt(0), fInt(0)))
	buf.Write(record(fByte('S'), fInt(0), fString("Comment Line"), fInt(6))) // CommentLine
	buf.Write(record(fByte('D'), fInt(0), fBool(false), fInt(0), fEmpty()))
	buf.Write(record(fByte('L'), fInt(0), fEmpty()))

	res, err := table.LoadWithWarnings(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "newline")
}
