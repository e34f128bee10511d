// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package domcheck

import (
	"strconv"

	"github.com/creachadair/jsontape/internal/escape"
	"go4.org/mem"
)

// Reencode serializes v back to compact JSON text, using the teacher's
// escape.Quote for string content. It exists to check the round-trip
// property from spec.md §8: re-parsing Reencode's output must reconstruct
// a value tree equal to v.
func Reencode(v Value) []byte {
	var buf []byte
	buf = appendValue(buf, v)
	return buf
}

func appendValue(buf []byte, v Value) []byte {
	switch x := v.(type) {
	case Object:
		buf = append(buf, '{')
		for i, m := range x.Members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, '"')
			buf = append(buf, escape.Quote(mem.S(m.Key))...)
			buf = append(buf, '"', ':')
			buf = appendValue(buf, m.Value)
		}
		return append(buf, '}')
	case Array:
		buf = append(buf, '[')
		for i, e := range x.Values {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendValue(buf, e)
		}
		return append(buf, ']')
	case String:
		buf = append(buf, '"')
		buf = append(buf, escape.Quote(mem.S(string(x)))...)
		return append(buf, '"')
	case Int64:
		return strconv.AppendInt(buf, int64(x), 10)
	case Uint64:
		return strconv.AppendUint(buf, uint64(x), 10)
	case Double:
		return strconv.AppendFloat(buf, float64(x), 'g', -1, 64)
	case Bool:
		if x {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case Null:
		return append(buf, "null"...)
	default:
		panic("domcheck: unreachable value type")
	}
}
