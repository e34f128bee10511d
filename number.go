// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import (
	"math"
	"strconv"
)

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func doubleBits(f float64) uint64 { return math.Float64bits(f) }

// scanNumber recognizes one JSON number production in buf starting at index
// 0, and reports the number of bytes it spans together with whether the
// value has a fractional or exponent part. It requires the byte immediately
// following the number to be a valid terminator (spec.md §4.E); the end of
// buf also counts as a terminator, so no padding past the input is needed.
//
// The grammar checks mirror jtree.Scanner.scanNumber: a leading zero must
// not be followed by another digit, a decimal point must be followed by at
// least one digit, and an exponent marker must be followed by an optional
// sign and at least one digit.
func scanNumber(buf []byte) (length int, isFloat bool, ok bool) {
	i := 0
	if buf[i] == '-' {
		i++
		if i >= len(buf) || !isDigit(buf[i]) {
			return 0, false, false
		}
	}
	if buf[i] == '0' {
		i++
	} else {
		for i < len(buf) && isDigit(buf[i]) {
			i++
		}
	}
	if i < len(buf) && buf[i] == '.' {
		isFloat = true
		i++
		fracStart := i
		for i < len(buf) && isDigit(buf[i]) {
			i++
		}
		if i == fracStart {
			return 0, false, false
		}
	}
	if i < len(buf) && (buf[i] == 'e' || buf[i] == 'E') {
		isFloat = true
		i++
		if i < len(buf) && (buf[i] == '+' || buf[i] == '-') {
			i++
		}
		expStart := i
		for i < len(buf) && isDigit(buf[i]) {
			i++
		}
		if i == expStart {
			return 0, false, false
		}
	}
	if !isTerminatorOrEnd(buf, i) {
		return 0, false, false
	}
	return i, isFloat, true
}

// parseNumber parses the JSON number at the start of buf and writes one or
// two tape words for it (spec.md §4.E): INT64 when the value fits a signed
// 64-bit integer with no fractional or exponent part, UINT64 when it is
// positive and exceeds the signed range but fits unsigned, DOUBLE otherwise.
// It returns the number of input bytes consumed, or ok=false on any grammar
// violation or out-of-range double (9e999 is NumberError, not +Inf, per
// spec.md §8 scenario 5).
func parseNumber(buf []byte, w writer) (length int, ok bool) {
	n, isFloat, valid := scanNumber(buf)
	if !valid {
		return 0, false
	}
	text := string(buf[:n])

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		w.append(TagDouble, 0)
		w.appendRaw(doubleBits(f))
		return n, true
	}

	if iv, err := strconv.ParseInt(text, 10, 64); err == nil {
		w.append(TagInt64, 0)
		w.appendRaw(uint64(iv))
		return n, true
	}
	if text[0] != '-' {
		if uv, err := strconv.ParseUint(text, 10, 64); err == nil {
			w.append(TagUint64, 0)
			w.appendRaw(uv)
			return n, true
		}
	}
	// An integer literal too wide for even uint64 (e.g. a 30-digit value)
	// still falls back to DOUBLE rather than failing outright.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	w.append(TagDouble, 0)
	w.appendRaw(doubleBits(f))
	return n, true
}
