// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import "encoding/binary"

// isTerminator reports whether b is a valid byte to follow a JSON atom or
// number: whitespace, ',', ']', or '}'. The end of input is handled
// separately by isTerminatorOrEnd.
func isTerminator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ',', ']', '}':
		return true
	default:
		return false
	}
}

// validTrue reports whether buf begins with the exact spelling "true"
// followed by a structural terminator or end of input. When at least 8 bytes
// remain it compares with an 8-byte masked load; shorter buffers use the
// validAtomTail fallback, so no padding past the input is required.
func validTrue(buf []byte) bool {
	if len(buf) >= 8 {
		const want = uint64(0x0000000065757274) // "true" packed little-endian
		const mask = uint64(0x00000000ffffffff)
		got := binary.LittleEndian.Uint64(buf) & mask
		return got == want && isTerminatorOrEnd(buf, 4)
	}
	return validAtomTail(buf, "true")
}

// validFalse reports whether buf begins with the exact spelling "false".
func validFalse(buf []byte) bool {
	if len(buf) >= 8 {
		const want = uint64(0x00000065736c6166) // "false" packed little-endian
		const mask = uint64(0x000000ffffffffff)
		got := binary.LittleEndian.Uint64(buf) & mask
		return got == want && isTerminatorOrEnd(buf, 5)
	}
	return validAtomTail(buf, "false")
}

// validNull reports whether buf begins with the exact spelling "null".
func validNull(buf []byte) bool {
	if len(buf) >= 8 {
		const want = uint64(0x000000006c6c756e) // "null" packed little-endian
		const mask = uint64(0x00000000ffffffff)
		got := binary.LittleEndian.Uint64(buf) & mask
		return got == want && isTerminatorOrEnd(buf, 4)
	}
	return validAtomTail(buf, "null")
}

// isTerminatorOrEnd reports whether buf has no byte at index i (end of
// input) or the byte at i is a structural terminator.
func isTerminatorOrEnd(buf []byte, i int) bool {
	if i >= len(buf) {
		return true
	}
	return isTerminator(buf[i])
}

// validAtomTail is the end-of-buffer-aware fallback for when fewer than 8
// bytes of padded input remain, per spec.md §4.C's second flavor.
func validAtomTail(buf []byte, want string) bool {
	if len(buf) < len(want) {
		return false
	}
	if string(buf[:len(want)]) != want {
		return false
	}
	return isTerminatorOrEnd(buf, len(want))
}
