// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import "fmt"

// An ErrorCode classifies a parse failure. The zero value, Uninitialized,
// should never escape this package -- it exists only to catch a bug where
// the driver reports success or failure without setting a real code.
type ErrorCode int

// Error code values, matching spec.md §6/§7 exactly.
const (
	Uninitialized ErrorCode = iota
	Success
	Empty
	DepthError
	TapeError
	StringError
	NumberError
	TAtomError
	FAtomError
	NAtomError
)

var codeStr = [...]string{
	Uninitialized: "uninitialized",
	Success:       "success",
	Empty:         "empty",
	DepthError:    "depth exceeded",
	TapeError:     "invalid JSON grammar",
	StringError:   "invalid string",
	NumberError:   "invalid number",
	TAtomError:    "invalid literal (expected true)",
	FAtomError:    "invalid literal (expected false)",
	NAtomError:    "invalid literal (expected null)",
}

func (c ErrorCode) String() string {
	if int(c) < 0 || int(c) >= len(codeStr) {
		return "unknown error"
	}
	return codeStr[c]
}

// An Error reports a parse failure together with the byte offset of the
// structural index that was current when the failure was discovered.
// Because the structural index array is already fully built before Parse is
// called, this location is precise without adding hot-path cost (spec.md
// §7).
type Error struct {
	Code   ErrorCode
	Offset int // byte offset into the input, or -1 if not applicable
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return e.Code.String()
	}
	return fmt.Sprintf("%s at offset %d", e.Code.String(), e.Offset)
}

// Is reports whether target is an *Error with the same Code, so callers can
// write errors.Is(err, &tape.Error{Code: tape.DepthError}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Location resolves e's byte offset against input, the same slice originally
// passed to Parse, giving a caller a line and column to report instead of a
// bare offset. It returns the zero LineCol if e.Offset is not applicable.
func (e *Error) Location(input []byte) LineCol {
	if e.Offset < 0 {
		return LineCol{}
	}
	return LineColAt(input, e.Offset)
}

func parseErr(code ErrorCode, offset int) error { return &Error{Code: code, Offset: offset} }
