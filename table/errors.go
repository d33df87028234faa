package table

import (
	"fmt"

	pingerrors "github.com/pingcap/errors"
)

// Error codes, one per LoadError variant. Grouped the way llx groups
// per-package error classes.
const (
	ErrBadHeader = iota + 1
	ErrUnexpectedFieldType
	ErrTruncatedRecord
	ErrUnknownRecord
	ErrIndexOutOfRange
	ErrUnsupportedVersion
)

// LoadError is the single error type returned by Load. Code identifies
// which failure mode occurred; Offset is the byte offset in the source
// table at which the malformation was found.
type LoadError struct {
	Code    int
	Message string
	Offset  int
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s (at byte %d)", e.Message, e.Offset)
}

func newLoadError(offset, code int, format string, args ...any) error {
	e := &LoadError{Code: code, Offset: offset, Message: fmt.Sprintf(format, args...)}
	return pingerrors.Trace(e)
}

func badHeaderErr(offset int, detail string) error {
	return newLoadError(offset, ErrBadHeader, "bad grammar table header: %s", detail)
}

func unsupportedVersionErr(offset, version int) error {
	return newLoadError(offset, ErrUnsupportedVersion, "unsupported grammar table version %d", version)
}

func unexpectedFieldTypeErr(offset int, expected, found byte) error {
	return newLoadError(offset, ErrUnexpectedFieldType, "expected field tag %q, found %q", expected, found)
}

func truncatedRecordErr(offset int) error {
	return newLoadError(offset, ErrTruncatedRecord, "truncated record")
}

func unknownRecordErr(offset int, tag byte) error {
	return newLoadError(offset, ErrUnknownRecord, "unknown record type %q", tag)
}

func indexOutOfRangeErr(offset, index, limit int) error {
	return newLoadError(offset, ErrIndexOutOfRange, "index %d out of range (limit %d)", index, limit)
}

// AsLoadError unwraps err (which may be wrapped by pingcap/errors.Trace)
// back to the underlying *LoadError, if any.
func AsLoadError(err error) (*LoadError, bool) {
	cause := pingerrors.Cause(err)
	le, ok := cause.(*LoadError)
	return le, ok
}
