// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// WriteUnquoted decodes the JSON string content in src -- which must begin
// just after the opening quotation mark and may extend arbitrarily far past
// the closing one -- into dst, which must have room for at least len(src)
// bytes (the decoded form is never longer than the source, since every
// multi-byte escape decodes to no more bytes than it occupies in src).
//
// It stops at the first unescaped '"' and returns the number of bytes of
// src consumed (including that closing quote) and the number of bytes
// written to dst. Unlike the teacher's Unquote, which is lenient and
// substitutes the Unicode replacement rune for bad escapes, WriteUnquoted
// reports an error for any invalid escape, unterminated string, unescaped
// control byte, or invalid \u surrogate -- component D of the tape builder
// (spec.md §4.D) must fail hard, since a bad string cannot be silently
// patched into a document whose structural indices were already computed
// on the assumption that the string is well-formed.
func WriteUnquoted(src, dst []byte) (nSrc, nDst int, err error) {
	i, j := 0, 0
	for {
		if i >= len(src) {
			return 0, 0, errors.New("unterminated string")
		}
		b := src[i]
		switch {
		case b == '"':
			return i + 1, j, nil
		case b == '\\':
			n, w, err := decodeEscape(src[i+1:], dst[j:])
			if err != nil {
				return 0, 0, err
			}
			i += 1 + n
			j += w
		case b < 0x20:
			return 0, 0, fmt.Errorf("unescaped control byte %#02x", b)
		default:
			dst[j] = b
			i++
			j++
		}
	}
}

// decodeEscape decodes a single escape sequence from src, which begins just
// after the backslash, writing its expansion to dst. It reports the number
// of src bytes consumed (not including the backslash) and dst bytes
// written.
func decodeEscape(src, dst []byte) (nSrc, nDst int, err error) {
	if len(src) == 0 {
		return 0, 0, errors.New("incomplete escape sequence")
	}
	switch src[0] {
	case '"', '\\', '/':
		dst[0] = src[0]
		return 1, 1, nil
	case 'b':
		dst[0] = '\b'
		return 1, 1, nil
	case 'f':
		dst[0] = '\f'
		return 1, 1, nil
	case 'n':
		dst[0] = '\n'
		return 1, 1, nil
	case 'r':
		dst[0] = '\r'
		return 1, 1, nil
	case 't':
		dst[0] = '\t'
		return 1, 1, nil
	case 'u':
		return decodeUnicodeEscape(src, dst)
	default:
		return 0, 0, fmt.Errorf("invalid escape %q", src[0])
	}
}

// decodeUnicodeEscape decodes a \uXXXX escape (src begins at 'u'), combining
// it with an immediately following \uXXXX low surrogate if src[0:4] encodes
// a high surrogate, per spec.md §4.D's surrogate-pair requirement. A lone
// surrogate that is not part of a valid pair is reported as an error.
func decodeUnicodeEscape(src, dst []byte) (nSrc, nDst int, err error) {
	if len(src) < 5 {
		return 0, 0, errors.New("incomplete Unicode escape")
	}
	hi, err := parseHex4(src[1:5])
	if err != nil {
		return 0, 0, err
	}
	if hi < 0xD800 || hi > 0xDFFF {
		n := utf8.EncodeRune(dst, rune(hi))
		return 5, n, nil
	}
	if hi > 0xDBFF {
		// A low surrogate with no preceding high surrogate.
		return 0, 0, errors.New("unpaired low surrogate")
	}
	// hi is a high surrogate; look for a following \uDCxx-\uDFxx low
	// surrogate to combine into a single supplementary-plane rune.
	if len(src) < 11 || src[5] != '\\' || src[6] != 'u' {
		return 0, 0, errors.New("unpaired high surrogate")
	}
	lo, err := parseHex4(src[7:11])
	if err != nil {
		return 0, 0, err
	}
	if lo < 0xDC00 || lo > 0xDFFF {
		return 0, 0, errors.New("high surrogate not followed by a low surrogate")
	}
	r := ((rune(hi) - 0xD800) << 10) | (rune(lo) - 0xDC00) + 0x10000
	n := utf8.EncodeRune(dst, r)
	return 11, n, nil
}

func parseHex4(data []byte) (int, error) {
	var v int
	for _, b := range data {
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int(b - '0')
		case 'a' <= b && b <= 'f':
			v += int(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
