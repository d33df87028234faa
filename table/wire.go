package table

import (
	"encoding/binary"
	"unicode/utf16"
)

// Field tag bytes for the wire format's tagged fields.
const (
	tagBool   = 'B'
	tagInt    = 'I'
	tagString = 'S'
	tagByte   = 'b'
	tagEmpty  = 'E'
	tagMulti  = 'M'
)

// field is a single decoded record field, tagged by its wire type.
type field struct {
	tag  byte
	b    bool
	i    uint16
	s    string
	by   byte
}

// reader decodes the tag-prefixed field stream that makes up a grammar
// table file after its header.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) offset() int { return r.pos }

func (r *reader) eof() bool { return r.pos >= len(r.data) }

func (r *reader) readByteRaw() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, truncatedRecordErr(r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readU16LERaw() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, truncatedRecordErr(r.pos)
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// readUTF16ZRaw reads a NUL-terminated UTF-16LE string with no tag byte
// (used only for the file header).
func (r *reader) readUTF16ZRaw() (string, error) {
	start := r.pos
	var units []uint16
	for {
		if r.pos+2 > len(r.data) {
			return "", truncatedRecordErr(start)
		}
		u := binary.LittleEndian.Uint16(r.data[r.pos:])
		r.pos += 2
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units)), nil
}

// readField decodes one tagged field: a tag byte followed by a
// tag-specific payload.
func (r *reader) readField() (field, error) {
	off := r.pos
	tag, err := r.readByteRaw()
	if err != nil {
		return field{}, err
	}

	switch tag {
	case tagBool:
		b, err := r.readByteRaw()
		if err != nil {
			return field{}, err
		}
		return field{tag: tag, b: b != 0}, nil

	case tagInt:
		v, err := r.readU16LERaw()
		if err != nil {
			return field{}, err
		}
		return field{tag: tag, i: v}, nil

	case tagString:
		s, err := r.readUTF16ZRaw()
		if err != nil {
			return field{}, err
		}
		return field{tag: tag, s: s}, nil

	case tagByte:
		b, err := r.readByteRaw()
		if err != nil {
			return field{}, err
		}
		return field{tag: tag, by: b}, nil

	case tagEmpty:
		return field{tag: tag}, nil

	default:
		return field{}, unknownRecordErr(off, tag)
	}
}

// record is one fully-decoded 'M' record: fields[0] is always the record
// type byte field, fields[1:] are type-specific.
type record struct {
	offset int
	fields []field
}

// readRecord reads a single 'M'-tagged record, or returns io.EOF-shaped
// (false, nil) once the reader is exhausted.
func (r *reader) readRecord() (rec record, ok bool, err error) {
	if r.eof() {
		return record{}, false, nil
	}

	off := r.pos
	tag, err := r.readByteRaw()
	if err != nil {
		return record{}, false, err
	}
	if tag != tagMulti {
		return record{}, false, unknownRecordErr(off, tag)
	}

	count, err := r.readU16LERaw()
	if err != nil {
		return record{}, false, err
	}

	fields := make([]field, count)
	for i := range fields {
		fields[i], err = r.readField()
		if err != nil {
			return record{}, false, err
		}
	}

	return record{offset: off, fields: fields}, true, nil
}

// --- typed accessors used by records.go, all defensive against short or
// mistyped field lists (a truncated or corrupted table).

func (rec record) at(i int) (field, error) {
	if i < 0 || i >= len(rec.fields) {
		return field{}, truncatedRecordErr(rec.offset)
	}
	return rec.fields[i], nil
}

func (rec record) expect(i int, tag byte) (field, error) {
	f, err := rec.at(i)
	if err != nil {
		return field{}, err
	}
	if f.tag != tag {
		return field{}, unexpectedFieldTypeErr(rec.offset, tag, f.tag)
	}
	return f, nil
}

func (rec record) byteField(i int) (byte, error) {
	f, err := rec.expect(i, tagByte)
	if err != nil {
		return 0, err
	}
	return f.by, nil
}

func (rec record) intField(i int) (int, error) {
	f, err := rec.expect(i, tagInt)
	if err != nil {
		return 0, err
	}
	return int(f.i), nil
}

func (rec record) stringField(i int) (string, error) {
	f, err := rec.expect(i, tagString)
	if err != nil {
		return "", err
	}
	return f.s, nil
}

func (rec record) boolField(i int) (bool, error) {
	f, err := rec.expect(i, tagBool)
	if err != nil {
		return false, err
	}
	return f.b, nil
}

// remaining returns the number of fields from index i (inclusive) to the
// end of the record.
func (rec record) remaining(i int) int {
	n := len(rec.fields) - i
	if n < 0 {
		return 0
	}
	return n
}
