// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package structural is a scalar, non-SIMD stand-in for the stage-1
// structural index scanner that a production deployment of this parser
// would run ahead of tape.Parse. It exists only so tests and cmd/jsontape
// have something to feed tape.Parse with; the batched SIMD scan itself is
// out of scope for this package, per spec.md's Non-goals.
//
// The in-string/backslash-parity bookkeeping mirrors the byte-at-a-time
// logic in minio/simdjson-go's find_structural_indices, without its 64-byte
// SIMD batching.
package structural

// Find returns the sorted byte offsets of every structurally significant
// character in input: '{', '}', '[', ']', ',', ':', '"', and the leading
// byte of every atom or number ('t', 'f', 'n', '-', and '0'-'9').
//
// A '"' is reported only for the byte that opens a string; bytes inside a
// string, including its closing quote, are never reported, matching the
// contract tape.Parse expects from its structural index input (spec.md
// §4.B: the cursor advances index-to-index, not byte-to-byte).
func Find(input []byte) []uint32 {
	var out []uint32
	inString := false
	escaped := false
	inNumber := false
	for i := 0; i < len(input); i++ {
		b := input[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		if inNumber {
			if isNumberCont(b) {
				continue
			}
			inNumber = false
		}
		switch {
		case b == '"':
			inString = true
			out = append(out, uint32(i))
		case b == '{', b == '}', b == '[', b == ']', b == ',', b == ':':
			out = append(out, uint32(i))
		case b == 't', b == 'f', b == 'n':
			out = append(out, uint32(i))
		case b == '-', b >= '0' && b <= '9':
			inNumber = true
			out = append(out, uint32(i))
		}
	}
	return out
}

// isNumberCont reports whether b can continue a number token that has
// already started, so only the leading byte of a multi-byte number is ever
// reported as a structural index -- tape.Parse's number scanner consumes
// the rest directly from the input bytes, matching one cursor advance per
// number regardless of its digit count.
func isNumberCont(b byte) bool {
	switch b {
	case '.', '+', '-', 'e', 'E':
		return true
	}
	return b >= '0' && b <= '9'
}
