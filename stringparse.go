// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import "github.com/creachadair/jsontape/internal/escape"

// parseString scans the quoted JSON string beginning at buf[0] (which must
// be '"') and unescapes it into dst, per spec.md §4.D. It returns the number
// of input bytes the string literal spans (including both quotation marks)
// and the number of bytes written to dst, or ok=false on any invalid
// escape, unterminated string, or invalid \u surrogate.
//
// The caller is responsible for reserving a 4-byte length prefix and
// writing it once written is known -- this routine only fills in the bytes
// that follow that prefix, matching the "position dst 4 bytes past the
// reserved slot and back-fill" contract in spec.md §4.D.
func parseString(buf []byte, dst []byte) (consumed, written int, ok bool) {
	n, w, err := escape.WriteUnquoted(buf[1:], dst)
	if err != nil {
		return 0, 0, false
	}
	return 1 + n, w, true
}
