package table

import (
	"golang.org/x/text/encoding/charmap"
)

// Codepage converts an input rune to the numeric value a v5 range-set
// Charset's ranges are expressed in. Most modern GOLD tables tag their
// charsets with the Unicode codepage, in which case the numeric value is
// simply the rune itself; older tables built against a Windows code page
// need a real decode table, which is where golang.org/x/text's charmap
// package earns its keep.
type Codepage interface {
	Value(r rune) int
}

// identityCodepage is used for the Unicode codepage (and as the fallback
// for any codepage id this loader does not recognize): the numeric value
// of a rune under Unicode is the rune itself.
type identityCodepage struct{}

func (identityCodepage) Value(r rune) int { return int(r) }

// charmapCodepage adapts a golang.org/x/text/encoding/charmap.Charmap to
// the Codepage interface: a rune's numeric value under a single-byte
// Windows/Mac/ISO code page is the byte charmap.Encode produces for it,
// or -1 if the rune has no representation in that code page (in which
// case it can never match a range drawn from that code page's byte
// space).
type charmapCodepage struct {
	cm *charmap.Charmap
}

func (c charmapCodepage) Value(r rune) int {
	b, ok := c.cm.EncodeRune(r)
	if !ok {
		return -1
	}
	return int(b)
}

// GOLD codepage identifiers, as written into 'c' records by the grammar
// builder. 0 is the identifier every builder version uses for Unicode.
const (
	CodepageUnicode      = 0
	CodepageWindows1250  = 1250
	CodepageWindows1251  = 1251
	CodepageWindows1252  = 1252
	CodepageWindows1253  = 1253
	CodepageWindows1254  = 1254
	CodepageWindows1257  = 1257
)

// resolveCodepage maps a GOLD codepage identifier to a Codepage. Unknown
// identifiers fall back to the identity mapping rather than failing the
// load: a v5 table with an unrecognized codepage id still round-trips
// correctly for the (overwhelmingly common) case where its ranges happen
// to describe Unicode codepoints anyway.
func resolveCodepage(id int) Codepage {
	switch id {
	case CodepageWindows1250:
		return charmapCodepage{charmap.Windows1250}
	case CodepageWindows1251:
		return charmapCodepage{charmap.Windows1251}
	case CodepageWindows1252:
		return charmapCodepage{charmap.Windows1252}
	case CodepageWindows1253:
		return charmapCodepage{charmap.Windows1253}
	case CodepageWindows1254:
		return charmapCodepage{charmap.Windows1254}
	case CodepageWindows1257:
		return charmapCodepage{charmap.Windows1257}
	default:
		return identityCodepage{}
	}
}
